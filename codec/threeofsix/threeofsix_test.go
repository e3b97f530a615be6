/*
NAME
  threeofsix_test.go

DESCRIPTION
  threeofsix_test.go provides testing for functionality found in
  threeofsix.go.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package threeofsix

import (
	"bytes"
	"errors"
	"testing"

	"pgregory.net/rapid"
)

// exampleFrame is a real wM-Bus Format A frame payload used in
// threeoutofsix.rs's round-trip test.
var exampleFrame = []byte{
	0x2F, 0x44, 0x68, 0x50, 0x27, 0x21, 0x45, 0x30, 0x50, 0x62, 0xBD, 0xCC,
	0xA2, 0x06, 0x9F, 0x1B, 0x11, 0x06, 0xC0, 0x10, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x55, 0xA3, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xFF, 0xFF,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xFF, 0xFF,
}

var exampleEncoded = []byte{
	0x3a, 0x97, 0x1c, 0x6a, 0xc6, 0x56, 0x39, 0x33,
	0x8d, 0x71, 0x92, 0xd6, 0x65, 0x66, 0x8e, 0x8f,
	0x1d, 0x34, 0x98, 0xe5, 0x9a, 0x96, 0x93, 0x63,
	0x34, 0xd5, 0x9a, 0xd1, 0x63, 0x56, 0x59, 0x65,
	0x96, 0x59, 0x65, 0x96, 0x59, 0x65, 0x96, 0x59,
	0x65, 0x96, 0x65, 0x99, 0x8b, 0x59, 0x65, 0x96,
	0x59, 0x65, 0x96, 0x59, 0x65, 0x96, 0x59, 0x65,
	0x96, 0x59, 0x65, 0x96, 0x59, 0x65, 0x96, 0x59,
	0x65, 0x96, 0x59, 0x65, 0x96, 0xa6, 0x9a, 0x69,
	0x59, 0x65, 0x96, 0x59, 0x65, 0x96, 0x59, 0x65,
	0x96, 0xa6, 0x9a, 0x69,
}

func TestEncodeFullFrame(t *testing.T) {
	got := Encode(exampleFrame)
	wantLen := len(exampleFrame) * 12
	if got.Len() != wantLen {
		t.Fatalf("Len() = %d, want %d", got.Len(), wantLen)
	}
	if !bytes.Equal(got.Bytes(), exampleEncoded) {
		t.Errorf("Encode() bytes = %x, want %x", got.Bytes(), exampleEncoded)
	}
}

func TestDecodeFullFrame(t *testing.T) {
	got, err := Decode(Encode(exampleFrame))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(got, exampleFrame) {
		t.Errorf("Decode(Encode(x)) = %x, want %x", got, exampleFrame)
	}
}

// TestEncodeTerminalPadding covers a single byte, 0x12, whose high nibble
// (1) and low nibble (2) encode to symbols 13 and 14 respectively.
func TestEncodeTerminalPadding(t *testing.T) {
	got := Encode([]byte{0x12})
	if got.Len() != 12 {
		t.Fatalf("Len() = %d, want 12", got.Len())
	}
	want := []byte{0x34, 0xe0} // 0011 0100 1110 0000, padded to a full byte.
	if !bytes.Equal(got.Bytes(), want) {
		t.Errorf("bytes = %08b %08b, want %08b %08b", got.Bytes()[0], got.Bytes()[1], want[0], want[1])
	}
}

func TestDecodeNotAligned(t *testing.T) {
	s := BitSequence{bits: []byte{0xFF}, n: 7}
	if _, err := Decode(s); !errors.Is(err, ErrNotAligned) {
		t.Fatalf("Decode() error = %v, want ErrNotAligned", err)
	}
}

func TestDecodeInvalidSymbol(t *testing.T) {
	// 0b000000 is not one of the 16 valid symbols.
	s := BitSequence{bits: []byte{0x00, 0x00}, n: 12}
	if _, err := Decode(s); !errors.Is(err, ErrInvalidSymbol) {
		t.Fatalf("Decode() error = %v, want ErrInvalidSymbol", err)
	}
}

func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(t, "data")
		encoded := Encode(data)
		if encoded.Len() != len(data)*12 {
			t.Fatalf("Len() = %d, want %d", encoded.Len(), len(data)*12)
		}
		decoded, err := Decode(encoded)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if !bytes.Equal(decoded, data) {
			t.Fatalf("round trip mismatch: got %x, want %x", decoded, data)
		}
	})
}
