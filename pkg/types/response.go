package types

// ErrorBody is the JSON written for every failed request.
type ErrorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

// MessageBody acknowledges deletes.
type MessageBody struct {
	Message string `json:"message"`
}
