package domain

import "encoding/json"

// ProjectState is the opaque editor state submitted to /assist.
type ProjectState struct {
	CodeBase    json.RawMessage `json:"code_base"`
	OpenFiles   json.RawMessage `json:"open_files"`
	ActiveEdits json.RawMessage `json:"active_edits"`
}
