package protocol

// EncodeVLQ appends v, encoded as a signed variable-length quantity, to buf
// and returns the extended slice. The encoder selects the shortest of the
// five possible lengths: each non-terminal byte carries a set continuation
// bit (0x80); the terminal byte does not.
//
// The overlapping thresholds below are not an off-by-one: a positive value
// up to 3*2^k still fits in a k+1-bit field once the decoder sign-extends
// from the top two bits of the leading byte, so the boundary sits at 3*2^k,
// not 2^k.
func EncodeVLQ(buf []byte, v int32) []byte {
	sv := v
	switch {
	case sv < (3 << 5) && sv >= -(1 << 5):
		return append(buf, byte(v)&0x7f)
	case sv < (3 << 12) && sv >= -(1 << 12):
		return append(buf,
			byte(v>>7)&0x7f|0x80,
			byte(v)&0x7f)
	case sv < (3 << 19) && sv >= -(1 << 19):
		return append(buf,
			byte(v>>14)&0x7f|0x80,
			byte(v>>7)&0x7f|0x80,
			byte(v)&0x7f)
	case sv < (3 << 26) && sv >= -(1 << 26):
		return append(buf,
			byte(v>>21)&0x7f|0x80,
			byte(v>>14)&0x7f|0x80,
			byte(v>>7)&0x7f|0x80,
			byte(v)&0x7f)
	default:
		return append(buf,
			byte(v>>28)&0x7f|0x80,
			byte(v>>21)&0x7f|0x80,
			byte(v>>14)&0x7f|0x80,
			byte(v>>7)&0x7f|0x80,
			byte(v)&0x7f)
	}
}

// DecodeVLQ reads one variable-length-encoded signed integer from the front
// of buf and returns its value together with the number of bytes consumed.
// Unlike the bare-pointer original, it never reads past len(buf); a
// truncated encoding at the end of buf yields ErrFrameInvalid rather than
// an overread. Callers that must honor a shorter logical end than len(buf)
// (the parser's "maxend") are expected to slice buf down to that end first.
func DecodeVLQ(buf []byte) (v int32, n int, err error) {
	if len(buf) == 0 {
		return 0, 0, ErrFrameInvalid
	}
	c := buf[0]
	acc := int32(c & 0x7f)
	if c&0x60 == 0x60 {
		acc |= -0x20
	}
	n = 1
	for c&0x80 != 0 {
		if n >= len(buf) {
			return 0, 0, ErrFrameInvalid
		}
		c = buf[n]
		acc = (acc << 7) | int32(c&0x7f)
		n++
	}
	return acc, n, nil
}
