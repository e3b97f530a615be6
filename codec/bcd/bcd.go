/*
NAME
  bcd.go

DESCRIPTION
  bcd.go provides a validating wrapper around packed binary-coded-decimal
  integers of width 16, 32 or 64 bits.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package bcd provides a nominal type for packed binary-coded-decimal
// integers, constructed only through validating factories so that an
// un-validated integer can never be passed where a BCD value is expected.
package bcd

import (
	"errors"
	"fmt"
	"unsafe"
)

// ErrInvalidBCD is returned when a nibble of a raw integer is not a valid
// decimal digit (i.e. >= 0xA).
var ErrInvalidBCD = errors.New("bcd: nibble is not a valid decimal digit")

// ErrOverflow is returned by Encode when the decimal value exceeds the
// capacity of the target width.
var ErrOverflow = errors.New("bcd: value exceeds field capacity")

// uintN is the set of unsigned integer widths this package supports packing
// BCD digits into.
type uintN interface {
	~uint16 | ~uint32 | ~uint64
}

// Number is an immutable packed binary-coded-decimal value. Every nibble of
// the wrapped integer, read most-significant first, is a decimal digit in
// 0..=9. The zero value is not meaningful; construct one with FromBCD or
// Encode.
type Number[T uintN] struct {
	raw T
}

// nibbles returns the number of 4-bit nibbles in T, i.e. 2*sizeof(T).
func nibbles[T uintN]() int {
	var zero T
	return int(unsafe.Sizeof(zero)) * 2
}

// FromBCD wraps raw as a Number, failing with ErrInvalidBCD if any of its
// nibbles is not a valid decimal digit.
func FromBCD[T uintN](raw T) (Number[T], error) {
	bcd := raw
	for i := 0; i < nibbles[T](); i++ {
		if bcd&0x0F >= 0x0A {
			return Number[T]{}, fmt.Errorf("bcd: nibble %d of %#x: %w", i, raw, ErrInvalidBCD)
		}
		bcd >>= 4
	}
	return Number[T]{raw: raw}, nil
}

// Encode packs a decimal value into a Number, failing with ErrOverflow if
// value exceeds the capacity of T (10^nibbles - 1).
func Encode[T uintN](value T) (Number[T], error) {
	max := T(1)
	for i := 0; i < nibbles[T](); i++ {
		max *= 10
	}
	max--
	if value > max {
		return Number[T]{}, fmt.Errorf("bcd: value %d exceeds max %d: %w", value, max, ErrOverflow)
	}

	n := nibbles[T]()
	digits := make([]T, n)
	rem := value
	for i := n - 1; i >= 0; i-- {
		digits[i] = rem % 10
		rem /= 10
	}

	var result T
	for _, d := range digits {
		result = result<<4 | d
	}
	return Number[T]{raw: result}, nil
}

// Decode returns the decimal value represented by n.
func (n Number[T]) Decode() T {
	bcd := n.raw
	var result T
	shift := uint(nibbles[T]()-1) * 4
	for i := 0; i < nibbles[T](); i++ {
		digit := (bcd >> shift) & 0x0F
		result = result*10 + digit
		shift -= 4
	}
	return result
}

// Raw returns the packed representation, i.e. the value originally passed
// to FromBCD or produced by Encode.
func (n Number[T]) Raw() T {
	return n.raw
}

// Number16, Number32 and Number64 are the widths named in the wire format:
// serial numbers and similar fields pack into one of these three sizes.
type (
	Number16 = Number[uint16]
	Number32 = Number[uint32]
	Number64 = Number[uint64]
)
