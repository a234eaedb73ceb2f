package service

import "errors"

// ErrInvalidInput marks request payloads the caller must fix: empty or
// malformed bodies, unparseable numerics or timestamps. Handlers map it
// to a client error; nothing wrapped in it triggers partial computation.
var ErrInvalidInput = errors.New("invalid input")
