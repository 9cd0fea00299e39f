package interfaces

import "errors"

// ErrNotFound is returned by every repository backend when a referenced
// record does not exist.
var ErrNotFound = errors.New("record not found")
