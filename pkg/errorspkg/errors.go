// Package errorspkg holds errors shared by every layer that carry no domain meaning.
package errorspkg

import "errors"

// ErrInternal hides an infrastructure failure from callers. The cause is logged where it happens.
var ErrInternal = errors.New("internal error")
