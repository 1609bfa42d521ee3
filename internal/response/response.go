// Package response defines the uniform JSON envelope every API endpoint
// answers with: {success: true, data} on the happy path and
// {success: false, error, message} on failure.
package response

// SuccessEnvelope wraps successful payloads.
type SuccessEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ErrorEnvelope wraps failures with a machine-readable code and a
// human-readable message. Fields is only populated on validation failures so
// the dashboard can highlight every invalid input at once.
type ErrorEnvelope struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func Success(data interface{}) SuccessEnvelope {
	return SuccessEnvelope{Success: true, Data: data}
}

func Error(code, message string) ErrorEnvelope {
	return ErrorEnvelope{Success: false, Error: code, Message: message}
}

func ValidationFailed(fields map[string]string) ErrorEnvelope {
	return ErrorEnvelope{
		Success: false,
		Error:   "VALIDATION_ERROR",
		Message: "one or more fields are invalid",
		Fields:  fields,
	}
}
