package api

import "encoding/json"

// envelope is the response wrapper some backend endpoints use:
// {"code": 200, "message": "ok", "result": {...}, "timestamp": "..."}.
// Other endpoints return the payload raw. decodeEnvelope accepts both.
type envelope struct {
	Code      *int            `json:"code"`
	Message   string          `json:"message"`
	Result    json.RawMessage `json:"result"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// decodeEnvelope unmarshals data into out, unwrapping the backend envelope
// when present.
func decodeEnvelope(data []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Code != nil && env.Result != nil {
		return json.Unmarshal(env.Result, out)
	}
	return json.Unmarshal(data, out)
}

// serverMessage extracts a human-readable message from an error body. It
// understands both the envelope shape and the flat {"error"|"message": "..."}
// shapes used across endpoints.
func serverMessage(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}
