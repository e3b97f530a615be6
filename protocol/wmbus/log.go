/*
NAME
  log.go

DESCRIPTION
  log.go provides an optional package-level logging hook, in the style of
  protocol/rtcp's Log function type: callers that want visibility into
  per-block CRC checks and extended-link-layer detection set Log; if left
  nil (the default), the package logs nothing.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package wmbus

import "github.com/ausocean/utils/logging"

// LogFunc describes a function signature required by this package for the
// purpose of logging: a level, a message and key/value arguments.
type LogFunc func(lvl int8, msg string, args ...interface{})

// Log is called, if non-nil, at key parse events: one Debug call per block
// CRC check and one per extended-link-layer variant decoded. It is nil by
// default so that this package imposes no logging dependency on callers
// that never set it.
var Log LogFunc

func debugf(msg string, args ...interface{}) {
	if Log != nil {
		Log(logging.Debug, msg, args...)
	}
}
