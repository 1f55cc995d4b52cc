// Package types holds the wire envelopes shared by every API response.
package types

// SuccessEnvelope wraps every successful payload under a data key.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-visible error body. Details are included only
// for codes that allow them.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps an APIError under an error key.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
