package errors

import "errors"

var ErrUnknownStorageBackend = errors.New("unknown storage backend")
var ErrSearchDisabled = errors.New("booking search is disabled")
var ErrNotConnected = errors.New("message broker is not connected")
