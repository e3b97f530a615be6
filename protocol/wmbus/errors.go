/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the sentinel errors returned by the wmbus package.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package wmbus

import "errors"

var (
	// ErrBadLength is returned when a frame or payload size falls outside
	// the valid range for the frame format in use.
	ErrBadLength = errors.New("wmbus: frame length invalid for this format")

	// ErrBadCRC is returned when a block's computed CRC-16/EN-13757 does
	// not match its trailing two bytes.
	ErrBadCRC = errors.New("wmbus: block crc mismatch")

	// ErrBadAddress is returned when the BCD serial number nibble of an
	// 8-byte meter identifier fails validation.
	ErrBadAddress = errors.New("wmbus: invalid meter address")

	// ErrTruncated is returned when a slice is shorter than the extended
	// link layer variant it claims to be.
	ErrTruncated = errors.New("wmbus: input truncated")
)
