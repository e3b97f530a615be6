/*
NAME
  frameformat.go

DESCRIPTION
  frameformat.go defines the shared block-layout contract satisfied by
  FormatA and FormatB, plus the block iterator built on top of it.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package wmbus

// FrameFormat is the block-layout contract shared by FormatA and FormatB.
// The set of frame formats is closed (only A and B exist on the wire).
// ParseFormatA and ParseFormatB each name their concrete type (FormatA{} or
// FormatB{}); the shared parse pipeline and blockIter receive it as a
// FrameFormat value and call its methods through the interface.
type FrameFormat interface {
	// BlockHasCRC reports whether block i carries a trailing 2-byte CRC.
	BlockHasCRC(i int) bool

	// BlockMaxPayloadSize returns the maximum payload bytes of block i,
	// excluding any CRC trailer.
	BlockMaxPayloadSize(i int) int

	// BlockCountFromPayloadSize returns the number of blocks needed to
	// carry a payload of p bytes, or ErrBadLength if p is out of range.
	BlockCountFromPayloadSize(p int) (int, error)

	// BlockCountFromFrameSize returns the number of blocks in a frame of f
	// bytes (payload plus CRC trailers), or ErrBadLength if f is out of
	// range.
	BlockCountFromFrameSize(f int) (int, error)
}

// blockMaxFrameSize returns the maximum wire size of block i under ff:
// its payload size, plus 2 if it carries a CRC.
func blockMaxFrameSize(ff FrameFormat, i int) int {
	if ff.BlockHasCRC(i) {
		return ff.BlockMaxPayloadSize(i) + 2
	}
	return ff.BlockMaxPayloadSize(i)
}

// blockIter returns the block slices of frame under ff, in order. Each
// slice is one block including its CRC trailer when present; the
// concatenation of all slices' lengths equals len(frame), and the final
// block may be shorter than its maximum size.
func blockIter(ff FrameFormat, frame []byte) ([][]byte, error) {
	blockCount, err := ff.BlockCountFromFrameSize(len(frame))
	if err != nil {
		return nil, err
	}

	blocks := make([][]byte, 0, blockCount)
	offset := 0
	for i := 0; i < blockCount; i++ {
		max := blockMaxFrameSize(ff, i)
		size := len(frame) - offset
		if size > max {
			size = max
		}
		blocks = append(blocks, frame[offset:offset+size])
		offset += size
	}
	return blocks, nil
}
