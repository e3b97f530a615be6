/*
NAME
  crc.go

DESCRIPTION
  crc.go implements CRC-16/EN-13757 (polynomial 0x3D65, init 0x0000, no
  input or output reflection, xorout 0xFFFF), the per-block checksum used by
  both Format A and Format B framing.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package wmbus

const crc16Poly = 0x3D65

// crc16Table is built once at package init, the same way
// container/mts/psi builds its CRC-32 table: shift the polynomial through
// each possible leading byte rather than reaching for a generic CRC
// library, since EN-13757's bit order (no reflection) doesn't match the
// reflected tables most off-the-shelf CRC-16 helpers assume.
var crc16Table [256]uint16

func init() {
	for i := range crc16Table {
		crc := uint16(i) << 8
		for b := 0; b < 8; b++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ crc16Poly
			} else {
				crc <<= 1
			}
		}
		crc16Table[i] = crc
	}
}

// crc16Update advances the running, un-finalized CRC register crc over p.
// Blocks that carry no CRC of their own still feed this running register,
// so a later block's CRC covers the concatenation of it and all preceding
// uncovered blocks.
func crc16Update(crc uint16, p []byte) uint16 {
	for _, b := range p {
		crc = crc16Table[byte(crc>>8)^b] ^ (crc << 8)
	}
	return crc
}

// crc16Finalize applies the algorithm's xorout to a running register
// produced by crc16Update.
func crc16Finalize(crc uint16) uint16 {
	return crc ^ 0xFFFF
}

// crc16 computes CRC-16/EN-13757 over p in one shot. The verification
// vector for this algorithm is crc16([]byte("123456789")) == 0xC2B7.
func crc16(p []byte) uint16 {
	return crc16Finalize(crc16Update(0, p))
}
