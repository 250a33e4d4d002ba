package elevenlabs

import (
	"encoding/json"
	"fmt"
)

// VendorError is any failure of an upstream API call: rejected auth,
// exceeded quota, malformed responses, or plain network errors. The original
// vendor status and message are preserved for diagnostics.
type VendorError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *VendorError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("elevenlabs: %s returned %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("elevenlabs: %s: %s", e.Endpoint, e.Message)
}

// errorMessage extracts the vendor's error detail from a response body,
// falling back to the HTTP status line.
func errorMessage(body []byte, status string) string {
	var parsed struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Detail) > 0 {
		var s string
		if json.Unmarshal(parsed.Detail, &s) == nil {
			return s
		}
		var obj struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		}
		if json.Unmarshal(parsed.Detail, &obj) == nil && obj.Message != "" {
			return obj.Message
		}
		return string(parsed.Detail)
	}
	if len(body) > 0 && len(body) < 512 {
		return string(body)
	}
	return status
}
