/*
NAME
  formatb.go

DESCRIPTION
  formatb.go implements Format B block framing: only blocks at index >= 1
  carry a CRC, and a frame is either 2 or 3 blocks.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package wmbus

import "fmt"

// formatBBlockPayloadSizes are the per-block payload sizes of Format B: a
// 10-byte first block, a 116-byte second block, and an optional 130-byte
// third block.
var formatBBlockPayloadSizes = [3]int{10, 116, 130}

var (
	formatBMinPayloadSize = formatBBlockPayloadSizes[0] + 1 // CI field (block 2) is mandatory.
	formatBMaxPayloadSize = 256
)

// FormatB implements FrameFormat for wM-Bus Format B framing, which
// reduces CRC overhead to at most two CRCs per frame.
type FormatB struct{}

var _ FrameFormat = FormatB{}

// BlockHasCRC returns true for every block except the first.
func (FormatB) BlockHasCRC(i int) bool { return i > 0 }

// BlockMaxPayloadSize returns the payload capacity of block i.
func (FormatB) BlockMaxPayloadSize(i int) int { return formatBBlockPayloadSizes[i] }

// BlockCountFromPayloadSize returns 2 for payloads up to 126 bytes and 3
// for larger payloads up to the 256-byte maximum.
func (ff FormatB) BlockCountFromPayloadSize(p int) (int, error) {
	if p < formatBMinPayloadSize || p > formatBMaxPayloadSize {
		return 0, fmt.Errorf("wmbus: format b payload size %d: %w", p, ErrBadLength)
	}
	if p <= formatBBlockPayloadSizes[0]+formatBBlockPayloadSizes[1] {
		return 2, nil
	}
	return 3, nil
}

// BlockCountFromFrameSize returns 2 for frames up to 128 bytes, 3 for
// frames of 130 bytes or more, and fails for the 129-byte gap (too large
// for a 2-block frame, too small for a 3-block frame).
func (ff FormatB) BlockCountFromFrameSize(f int) (int, error) {
	minFrameSize := formatBMinPayloadSize + 2
	maxFrameSize := formatBMaxPayloadSize + 2*2
	if f < minFrameSize || f > maxFrameSize {
		return 0, fmt.Errorf("wmbus: format b frame size %d: %w", f, ErrBadLength)
	}

	twoBlockMax := formatBBlockPayloadSizes[0] + formatBBlockPayloadSizes[1] + 2
	threeBlockMin := twoBlockMax + 2
	switch {
	case f <= twoBlockMax:
		return 2, nil
	case f >= threeBlockMin:
		return 3, nil
	default:
		return 0, fmt.Errorf("wmbus: format b frame size %d falls in the invalid 2-to-3-block gap: %w", f, ErrBadLength)
	}
}
