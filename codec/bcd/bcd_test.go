/*
NAME
  bcd_test.go

DESCRIPTION
  bcd_test.go provides testing for functionality found in bcd.go.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package bcd

import (
	"errors"
	"testing"

	"pgregory.net/rapid"
)

func TestEncodeU32(t *testing.T) {
	cases := []struct {
		name    string
		value   uint32
		want    uint32
		wantErr error
	}{
		{"basic", 11223344, 0x11223344, nil},
		{"all-nines", 99999999, 0x99999999, nil},
		{"overflow", 100000000, 0, ErrOverflow},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Encode(c.value)
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("Encode(%d) error = %v, want %v", c.value, err, c.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Encode(%d) unexpected error: %v", c.value, err)
			}
			if got.Raw() != c.want {
				t.Errorf("Encode(%d).Raw() = %#x, want %#x", c.value, got.Raw(), c.want)
			}
		})
	}
}

func TestFromBCDU32(t *testing.T) {
	cases := []struct {
		name    string
		raw     uint32
		want    uint32
		wantErr error
	}{
		{"valid", 0x11223344, 11223344, nil},
		{"all-nines", 0x99999999, 99999999, nil},
		{"invalid-nibble", 0x11F23344, 0, ErrInvalidBCD},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := FromBCD(c.raw)
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("FromBCD(%#x) error = %v, want %v", c.raw, err, c.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromBCD(%#x) unexpected error: %v", c.raw, err)
			}
			if got.Decode() != c.want {
				t.Errorf("FromBCD(%#x).Decode() = %d, want %d", c.raw, got.Decode(), c.want)
			}
		})
	}
}

func TestRoundTripU16(t *testing.T) {
	for v := uint16(0); v < 10000; v += 37 {
		n, err := Encode(v)
		if err != nil {
			t.Fatalf("Encode(%d): %v", v, err)
		}
		if got := n.Decode(); got != v {
			t.Errorf("round trip %d: got %d", v, got)
		}
	}
}

func TestRoundTripU64(t *testing.T) {
	values := []uint64{0, 1, 9, 10, 9999999999999999, 1234567890123456}
	for _, v := range values {
		n, err := Encode(v)
		if err != nil {
			t.Fatalf("Encode(%d): %v", v, err)
		}
		if got := n.Decode(); got != v {
			t.Errorf("round trip %d: got %d", v, got)
		}
	}
}

func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Uint32Range(0, 99999999).Draw(t, "value")
		n, err := Encode(v)
		if err != nil {
			t.Fatalf("Encode(%d): %v", v, err)
		}
		if got := n.Decode(); got != v {
			t.Fatalf("round trip %d: got %d", v, got)
		}
	})
}

func TestFromBCDNibbleDiscipline(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.Uint32().Draw(t, "raw")
		valid := true
		b := raw
		for i := 0; i < 8; i++ {
			if b&0x0F >= 0x0A {
				valid = false
				break
			}
			b >>= 4
		}
		_, err := FromBCD(raw)
		if valid && err != nil {
			t.Fatalf("FromBCD(%#x) should succeed, got %v", raw, err)
		}
		if !valid && err == nil {
			t.Fatalf("FromBCD(%#x) should fail", raw)
		}
	})
}
