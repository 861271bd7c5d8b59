package transport

import "encoding/json"

// Envelope is the standard API response wrapper used for both success and error payloads.
type Envelope struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  *ErrorBody  `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

// ErrorBody carries the numeric error class, a human-readable message and,
// for validation failures, every individual violated constraint.
type ErrorBody struct {
	Code    int              `json:"code"`
	Message string           `json:"message"`
	Fields  []FieldViolation `json:"fields,omitempty"`
}

// FieldViolation names one violated field constraint.
type FieldViolation struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

// NewError returns an error envelope.
func NewError(code int, message string, fields []FieldViolation) Envelope {
	return Envelope{
		Status: "error",
		Error: &ErrorBody{
			Code:    code,
			Message: message,
			Fields:  fields,
		},
	}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
