package attendance

import "errors"

// ErrNoActiveAttendanceRule aborts a scan or sweep outright: without the
// configured base charge amounts no charge can be computed.
var ErrNoActiveAttendanceRule = errors.New("no active attendance rule configured")

var ErrChargeNotPending = errors.New("charge is not pending")
