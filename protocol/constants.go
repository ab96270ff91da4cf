package protocol

// Wire layout (platform independent). All higher layers depend on this file.
//
//	Offset        Field    Size
//	0              LEN      1     total frame length, inclusive of header/trailer
//	1              SEQ      1     bits 0-3 sequence, bits 4-6 destination tag (0x1), bit 7 zero
//	2 .. LEN-4     PAYLOAD  var   concatenation of id-prefixed commands
//	LEN-3, LEN-2   CRC      2     CCITT-16 over bytes [0, LEN-3), high byte first
//	LEN-1          SYNC     1     constant 0x7E
const (
	HeaderSize  = 2 // LEN + SEQ
	TrailerSize = 3 // CRC(2) + SYNC(1)

	MinFrameSize = 5  // empty-payload frame: header + trailer
	MaxFrameSize = 64

	MaxPayloadSize = MaxFrameSize - MinFrameSize // 59 bytes

	lenOffset = 0
	seqOffset = 1

	// SeqMask isolates the 4-bit rolling sequence number within the SEQ byte.
	SeqMask = 0x0F
	// DestTag is the constant bit pattern occupying bits 4-6 of the SEQ byte.
	DestTag = 0x10
	// SyncByte terminates every frame.
	SyncByte = 0x7E
)
