/*
NAME
  threeofsix.go

DESCRIPTION
  threeofsix.go implements the 3-out-of-6 line code used by wM-Bus mode T at
  100 kbps (Table 10, EN 13757-4): each 4-bit data nibble maps to one of 16
  DC-balanced 6-bit channel symbols, each carrying exactly three 1-bits.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package threeofsix provides the 3-out-of-6 bit-level line codec used by
// wM-Bus mode T, and the BitSequence type used to carry its not-necessarily
// byte-aligned output.
package threeofsix

import (
	"errors"
	"fmt"
)

// ErrNotAligned is returned by Decode when the input length is not a
// multiple of 12 bits (two 6-bit symbols per output byte).
var ErrNotAligned = errors.New("threeofsix: bit length is not a multiple of 12")

// ErrInvalidSymbol is returned by Decode when a 6-bit group does not
// correspond to any of the 16 valid 3-out-of-6 symbols.
var ErrInvalidSymbol = errors.New("threeofsix: invalid 6-bit symbol")

// encodeTable maps a 4-bit nibble to its 6-bit channel symbol (Table 10,
// EN 13757-4).
var encodeTable = [0x10]byte{
	22, 13, 14, 11, 28, 25, 26, 19,
	44, 37, 38, 35, 52, 49, 50, 41,
}

// decodeTable maps each of the 64 possible 6-bit symbols to the nibble it
// encodes, or to -1 if the symbol is not one of the 16 valid codes.
var decodeTable = [0x40]int8{
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, 3, -1, 1, 2, -1,
	-1, -1, -1, 7, -1, -1, 0, -1, -1, 5, 6, -1, 4, -1, -1, -1,
	-1, -1, -1, 11, -1, 9, 10, -1, -1, 15, -1, -1, 8, -1, -1, -1,
	-1, 13, 14, -1, 12, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
}

// BitSequence is a bit-vector of explicit length: not every BitSequence is a
// whole number of bytes, so the length is tracked separately from the
// backing byte slice rather than inferred from len(bits)*8.
type BitSequence struct {
	bits []byte
	n    int // number of valid bits.
}

// Len returns the number of bits in s.
func (s BitSequence) Len() int { return s.n }

// Bytes returns the backing bytes of s. Trailing bits beyond Len() in the
// final byte, if any, are zero.
func (s BitSequence) Bytes() []byte { return s.bits }

// bit returns the i-th bit of s, MSB-first within each byte, as 0 or 1.
func (s BitSequence) bit(i int) byte {
	return (s.bits[i/8] >> uint(7-i%8)) & 1
}

// Encode returns the 3-out-of-6 line code of data: every byte becomes two
// 6-bit symbols (high nibble first), each emitted MSB-first, for a total
// output length of 12*len(data) bits.
func Encode(data []byte) BitSequence {
	n := len(data) * 12
	out := make([]byte, (n+7)/8)

	bitPos := 0
	putBits := func(symbol byte, width int) {
		for i := width - 1; i >= 0; i-- {
			if symbol&(1<<uint(i)) != 0 {
				out[bitPos/8] |= 1 << uint(7-bitPos%8)
			}
			bitPos++
		}
	}

	for _, b := range data {
		putBits(encodeTable[b>>4], 6)
		putBits(encodeTable[b&0x0F], 6)
	}

	return BitSequence{bits: out, n: n}
}

// Decode reverses Encode. It fails with ErrNotAligned if s.Len() is not a
// multiple of 12, and with ErrInvalidSymbol if any 6-bit group is not one
// of the 16 valid 3-out-of-6 codes.
func Decode(s BitSequence) ([]byte, error) {
	if s.Len()%12 != 0 {
		return nil, fmt.Errorf("threeofsix: %d bits: %w", s.Len(), ErrNotAligned)
	}

	out := make([]byte, s.Len()/12)
	var carry int8 = -1
	byteIdx := 0
	for pos := 0; pos < s.Len(); pos += 6 {
		var symbol byte
		for i := 0; i < 6; i++ {
			symbol = symbol<<1 | s.bit(pos+i)
		}

		nibble := decodeTable[symbol]
		if nibble == -1 {
			return nil, fmt.Errorf("threeofsix: symbol %#b at bit %d: %w", symbol, pos, ErrInvalidSymbol)
		}

		if carry == -1 {
			carry = nibble
		} else {
			out[byteIdx] = byte(carry)<<4 | byte(nibble)
			carry = -1
			byteIdx++
		}
	}

	return out, nil
}
