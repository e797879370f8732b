package driver

import (
	"encoding/json"
	"strconv"
)

// SearchHitDriver is a hit as decoded from the backend wire format.
type SearchHitDriver struct {
	Source map[string]json.RawMessage
}

// DriverError represents an error from the driver layer.
// StatusCode is zero when no HTTP response was received.
type DriverError struct {
	Op         string
	Err        string
	StatusCode int
}

func (e *DriverError) Error() string {
	if e.StatusCode != 0 {
		return e.Op + ": " + e.Err + " (status " + strconv.Itoa(e.StatusCode) + ")"
	}
	return e.Op + ": " + e.Err
}
