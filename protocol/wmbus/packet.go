/*
NAME
  packet.go

DESCRIPTION
  packet.go assembles the wM-Bus parse pipeline: per-block CRC
  verification and payload concatenation (shared by Format A and Format B),
  followed by link-layer, extended-link-layer and application-layer
  extraction.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package wmbus

import (
	"encoding/binary"
	"fmt"
)

// linkLayerSize is the fixed size, in bytes, of the link layer header:
// length (1) + control (1) + 8-byte address.
const linkLayerSize = 10

// LinkLayer is the fixed-format header present at the start of every
// payload.
type LinkLayer struct {
	// Length is the L-field from the wire. It is absent (Length == nil)
	// only when a caller has already stripped it before handing the frame
	// to this package; this parser always populates it from the payload.
	Length  *uint8
	Control uint8
	Address Address
}

// ExtendedLinkLayerKind discriminates the four ExtendedLinkLayer shapes by
// their leading byte.
type ExtendedLinkLayerKind uint8

// Extended link layer discriminators.
const (
	ELLShort     ExtendedLinkLayerKind = 0x8C
	ELLLong      ExtendedLinkLayerKind = 0x8D
	ELLShortDest ExtendedLinkLayerKind = 0x8E
	ELLLongDest  ExtendedLinkLayerKind = 0x8F
)

// ellSizes maps each discriminator to its total size in bytes, including
// the discriminator itself.
var ellSizes = map[ExtendedLinkLayerKind]int{
	ELLShort:     3,
	ELLLong:      9,
	ELLShortDest: 11,
	ELLLongDest:  17,
}

// ExtendedLinkLayer is the optional header inserted between the link layer
// and the application layer. Kind determines which of the remaining
// fields are populated: Short sets only CC/ACC; Long additionally sets
// SN/PayloadCRC; ShortDest additionally sets Dest; LongDest sets all
// fields.
//
// PayloadCRC is a pointer, not a bare uint16, mirroring the original
// implementation's Option<u16>: this package parses it but never verifies
// it against application-layer data, so its presence is tracked honestly
// rather than defaulted to zero.
type ExtendedLinkLayer struct {
	Kind       ExtendedLinkLayerKind
	CC         uint8
	ACC        uint8
	Dest       *Address
	SN         uint32
	PayloadCRC *uint16
}

// Size returns the total wire size of ell, including its discriminator
// byte.
func (ell ExtendedLinkLayer) Size() int {
	return ellSizes[ell.Kind]
}

// parseExtendedLinkLayer parses the extended link layer, if present, at
// the start of rest. It returns a nil *ExtendedLinkLayer (size 0) if rest
// is empty or its first byte is not one of the four known discriminators.
func parseExtendedLinkLayer(rest []byte) (*ExtendedLinkLayer, error) {
	if len(rest) == 0 {
		return nil, nil
	}

	kind := ExtendedLinkLayerKind(rest[0])
	size, known := ellSizes[kind]
	if !known {
		return nil, nil
	}
	if len(rest) < size {
		return nil, fmt.Errorf("wmbus: extended link layer %#x needs %d bytes, have %d: %w", kind, size, len(rest), ErrTruncated)
	}

	ell := &ExtendedLinkLayer{Kind: kind, CC: rest[1], ACC: rest[2]}

	switch kind {
	case ELLShort:
		// CC, ACC only.
	case ELLLong:
		ell.SN = binary.LittleEndian.Uint32(rest[3:7])
		crc := binary.LittleEndian.Uint16(rest[7:9])
		ell.PayloadCRC = &crc
	case ELLShortDest:
		var id [8]byte
		copy(id[:], rest[3:11])
		dest, err := ParseAddress(id)
		if err != nil {
			return nil, err
		}
		ell.Dest = &dest
	case ELLLongDest:
		var id [8]byte
		copy(id[:], rest[3:11])
		dest, err := ParseAddress(id)
		if err != nil {
			return nil, err
		}
		ell.Dest = &dest
		ell.SN = binary.LittleEndian.Uint32(rest[11:15])
		crc := binary.LittleEndian.Uint16(rest[15:17])
		ell.PayloadCRC = &crc
	}

	debugf("wmbus: parsed extended link layer", "kind", kind, "size", size)
	return ell, nil
}

// ApplicationLayer is the opaque application-layer tail: a one-byte CI
// field identifying its encoding, and everything after it.
type ApplicationLayer struct {
	CI   uint8
	Data []byte
}

// Packet is a fully parsed wM-Bus frame.
type Packet struct {
	LinkLayer         LinkLayer
	ExtendedLinkLayer *ExtendedLinkLayer
	ApplicationLayer  ApplicationLayer
}

// ParseFormatA parses frame as a Format A frame: every block independently
// CRC-protected.
func ParseFormatA(frame []byte) (*Packet, error) {
	return parse(FormatA{}, frame)
}

// ParseFormatB parses frame as a Format B frame: only blocks at index >= 1
// carry a CRC.
func ParseFormatB(frame []byte) (*Packet, error) {
	return parse(FormatB{}, frame)
}

// parse runs the shared pipeline for ff: CRC-verify and concatenate
// blocks, then split the resulting payload into link, extended-link and
// application layers.
func parse(ff FrameFormat, frame []byte) (*Packet, error) {
	blocks, err := blockIter(ff, frame)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, 0, len(frame))
	var digest uint16
	for i, block := range blocks {
		if ff.BlockHasCRC(i) {
			if len(block) < 2 {
				return nil, fmt.Errorf("wmbus: block %d has no room for a crc trailer: %w", i, ErrTruncated)
			}
			body := block[:len(block)-2]
			want := binary.BigEndian.Uint16(block[len(block)-2:])
			digest = crc16Update(digest, body)
			got := crc16Finalize(digest)
			debugf("wmbus: verifying block crc", "block", i, "want", want, "got", got)
			if got != want {
				return nil, fmt.Errorf("wmbus: block %d: crc %#04x, want %#04x: %w", i, got, want, ErrBadCRC)
			}
			payload = append(payload, body...)
			digest = 0
		} else {
			payload = append(payload, block...)
			digest = crc16Update(digest, block)
		}
	}

	if len(payload) < linkLayerSize {
		return nil, fmt.Errorf("wmbus: payload %d bytes, need at least %d for the link layer: %w", len(payload), linkLayerSize, ErrTruncated)
	}

	var id [8]byte
	copy(id[:], payload[2:10])
	addr, err := ParseAddress(id)
	if err != nil {
		return nil, err
	}

	length := payload[0]
	ll := LinkLayer{
		Length:  &length,
		Control: payload[1],
		Address: addr,
	}

	rest := payload[linkLayerSize:]
	ell, err := parseExtendedLinkLayer(rest)
	if err != nil {
		return nil, err
	}
	ellSize := 0
	if ell != nil {
		ellSize = ell.Size()
	}
	rest = rest[ellSize:]

	if len(rest) < 1 {
		return nil, fmt.Errorf("wmbus: no room for the application layer ci field: %w", ErrTruncated)
	}
	apl := ApplicationLayer{
		CI:   rest[0],
		Data: append([]byte(nil), rest[1:]...),
	}

	return &Packet{
		LinkLayer:         ll,
		ExtendedLinkLayer: ell,
		ApplicationLayer:  apl,
	}, nil
}
