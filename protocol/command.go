package protocol

// Parse decodes one command's arguments from remaining (the bytes of the
// enclosing frame's payload from immediately after the command's MSG_ID
// byte to the end of that frame's payload — the original's "maxend" is
// simply len(remaining) here) according to entry, honoring the shutdown
// precondition from the original parsef: a shutdown-guarded command is
// skipped rather than parsed while the device is down.
//
// On success it returns the decoded arguments and the number of bytes of
// remaining consumed. On a bounds violation or unknown param type it
// returns a non-nil error and triggers shut.Shutdown(ReasonParserError);
// the caller must stop processing the frame.
func Parse(remaining []byte, entry ParserEntry, shut Shutdown) (args []Arg, consumed int, skip bool, err error) {
	if shut != nil && shut.IsShutdown() && entry.Flags&FlagInShutdown == 0 {
		return nil, 0, true, nil
	}

	args = make([]Arg, 0, entry.NumArgs)
	p := 0
	for _, t := range entry.ParamTypes {
		switch t {
		case ParamUint32, ParamInt32, ParamUint16, ParamInt16, ParamByte:
			if p >= len(remaining) {
				return parseBoundsError(shut)
			}
			v, n, derr := DecodeVLQ(remaining[p:])
			if derr != nil {
				return parseBoundsError(shut)
			}
			args = append(args, Arg{Kind: ArgInt, I32: v})
			p += n
		case ParamBuffer:
			if p >= len(remaining) {
				return parseBoundsError(shut)
			}
			l := int(remaining[p])
			p++
			if p+l > len(remaining) {
				return parseBoundsError(shut)
			}
			args = append(args, Arg{Kind: ArgInt, I32: int32(l)})
			args = append(args, Arg{Kind: ArgBuf, Buf: remaining[p : p+l]})
			p += l
		default:
			return parseBoundsError(shut)
		}
	}
	return args, p, false, nil
}

func parseBoundsError(shut Shutdown) ([]Arg, int, bool, error) {
	if shut != nil {
		shut.Shutdown(ReasonParserError)
	}
	return nil, 0, false, ErrParserBounds
}

// Encode writes entry's message id followed by each arg, encoded per
// entry.ParamTypes, into buf (which must have room for at most
// entry.MaxSize+1 bytes after offset 0). It returns the number of bytes
// written, or an error if the argument list's shape doesn't match the
// schema or a scalar argument would run past entry.MaxSize — truncation of
// buffer/progmem_buffer/string payloads at the available capacity is the
// specified behavior, not an error.
func Encode(buf []byte, rom ROMReader, entry EncoderEntry, args ...Arg) (n int, err error) {
	if len(args) != len(entry.ParamTypes) {
		return 0, ErrArgMismatch
	}
	buf[0] = entry.MsgID
	p := 1
	maxend := 1 + entry.MaxSize
	for i, t := range entry.ParamTypes {
		a := args[i]
		if p > maxend {
			return 0, ErrEncoderBounds
		}
		switch t {
		case ParamUint32, ParamInt32:
			if a.Kind != ArgInt {
				return 0, ErrArgMismatch
			}
			out := EncodeVLQ(buf[:p], a.I32)
			if len(out) > maxend {
				return 0, ErrEncoderBounds
			}
			p = len(out)
		case ParamUint16, ParamInt16, ParamByte:
			if a.Kind != ArgInt {
				return 0, ErrArgMismatch
			}
			masked := a.I32 & 0xffff
			out := EncodeVLQ(buf[:p], masked)
			if len(out) > maxend {
				return 0, ErrEncoderBounds
			}
			p = len(out)
		case ParamString:
			if a.Kind != ArgBuf {
				return 0, ErrArgMismatch
			}
			lenPos := p
			p++
			s := a.Buf
			for _, c := range s {
				if c == 0 || p >= maxend {
					break
				}
				buf[p] = c
				p++
			}
			buf[lenPos] = byte(p - lenPos - 1)
		case ParamBuffer, ParamProgmemBuffer:
			if a.Kind != ArgBuf {
				return 0, ErrArgMismatch
			}
			v := len(a.Buf)
			if v > maxend-p-1 {
				v = maxend - p - 1
			}
			if v < 0 {
				v = 0
			}
			buf[p] = byte(v)
			p++
			if t == ParamProgmemBuffer {
				rom.ReadROM(buf[p:p+v], a.Buf[:v])
			} else {
				copy(buf[p:p+v], a.Buf[:v])
			}
			p += v
		default:
			return 0, ErrUnknownParamType
		}
	}
	return p, nil
}
