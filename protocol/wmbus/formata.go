/*
NAME
  formata.go

DESCRIPTION
  formata.go implements Format A block framing: every block carries a
  2-byte CRC trailer, with payload sizes 10, then 16 repeated, then a final
  block of up to 6 bytes.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package wmbus

import "fmt"

// formatABlockPayloadSizes are the per-block payload sizes of Format A: the
// first block carries the 10-byte link layer header, the remainder carry
// up to 16 bytes each, and the table caps out at 17 blocks (256-byte
// maximum payload).
var formatABlockPayloadSizes = [17]int{
	10, 16, 16, 16, 16, 16, 16, 16, 16,
	16, 16, 16, 16, 16, 16, 16, 6,
}

var (
	formatAMinPayloadSize = formatABlockPayloadSizes[0] + 1 // CI field (block 2) is mandatory.
	formatAMaxPayloadSize = 256
)

// FormatA implements FrameFormat for wM-Bus Format A framing, in which
// every block is independently CRC-protected.
type FormatA struct{}

var _ FrameFormat = FormatA{}

// BlockHasCRC always returns true for Format A.
func (FormatA) BlockHasCRC(int) bool { return true }

// BlockMaxPayloadSize returns the payload capacity of block i.
func (FormatA) BlockMaxPayloadSize(i int) int { return formatABlockPayloadSizes[i] }

// BlockCountFromPayloadSize greedily peels off block payload sizes from p,
// stopping once a single remaining block's capacity suffices to hold what's
// left.
func (ff FormatA) BlockCountFromPayloadSize(p int) (int, error) {
	if p < formatAMinPayloadSize || p > formatAMaxPayloadSize {
		return 0, fmt.Errorf("wmbus: format a payload size %d: %w", p, ErrBadLength)
	}

	count := 0
	remaining := p
	for _, maxPayload := range formatABlockPayloadSizes {
		count++
		if remaining > maxPayload {
			remaining -= maxPayload
		} else {
			break
		}
	}
	return count, nil
}

// BlockCountFromFrameSize greedily peels off payload+CRC sizes from f,
// failing if the terminal block would hold no payload bytes beyond its
// CRC.
func (ff FormatA) BlockCountFromFrameSize(f int) (int, error) {
	minFrameSize := formatAMinPayloadSize + 2*2
	maxFrameSize := formatAMaxPayloadSize + 2*len(formatABlockPayloadSizes)
	if f < minFrameSize || f > maxFrameSize {
		return 0, fmt.Errorf("wmbus: format a frame size %d: %w", f, ErrBadLength)
	}

	count := 0
	remaining := f
	for _, maxPayload := range formatABlockPayloadSizes {
		count++
		blockSize := maxPayload + 2
		switch {
		case remaining > blockSize:
			remaining -= blockSize
		case remaining > 2:
			return count, nil
		default:
			return 0, fmt.Errorf("wmbus: format a frame size %d: terminal block has no payload: %w", f, ErrBadLength)
		}
	}
	return count, nil
}
