// internal/writer/errcode.go
package writer

import (
	"errors"

	"github.com/tamzrod/safe-shutdown/internal/poller"
	"github.com/tamzrod/safe-shutdown/internal/status"
	"github.com/tamzrod/safe-shutdown/internal/telemetry"
)

// errorCode extracts a best-effort uint16 code from an error.
// Errors exposing their own code win; known sentinels map to fixed codes;
// anything else is generic.
func errorCode(err error) uint16 {
	if err == nil {
		return status.ErrorCodeNone
	}

	type coder interface{ Code() uint16 }

	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}

	switch {
	case errors.Is(err, poller.ErrReadFailuresExceeded):
		return status.ErrorCodeExhausted
	case errors.Is(err, telemetry.ErrShortBlock):
		return status.ErrorCodeShortBlock
	case errors.Is(err, poller.ErrRead):
		return status.ErrorCodeBusRead
	}

	return status.ErrorCodeGeneric
}
