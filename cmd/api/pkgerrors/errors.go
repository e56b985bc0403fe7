package pkgerrors

import "fmt"

type ErrResponse struct {
	Code    int               `json:"error_code"`
	Message string            `json:"error_message"`
	Fields  map[string]string `json:"error_fields,omitempty"`
}

func (e ErrResponse) Error() string {
	return e.Message
}

/* Two responses are the same kind of error when they share the code, whatever the message says. */
func (e ErrResponse) Is(target error) bool {
	t, ok := target.(ErrResponse)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

/* Returns a copy of the error carrying a more specific message. */
func (e ErrResponse) WithMessage(format string, args ...any) ErrResponse {
	e.Message = fmt.Sprintf(format, args...)
	return e
}

var ErrResponseBookEntryInvalidFields = ErrResponse{Code: 100, Message: "the book entry has invalid fields."}
var ErrResponseBookNotFound = ErrResponse{Code: 101, Message: "book not found"}
var ErrResponseEntryInvalidJSON = ErrResponse{Code: 102, Message: "invalid json request."}
var ErrResponseBookAlreadyExists = ErrResponse{Code: 104, Message: "book already exists"}
var ErrResponseBookVersionConflict = ErrResponse{Code: 105, Message: "the book was modified by another request, try again."}
var ErrResponseUnauthenticated = ErrResponse{Code: 106, Message: "authentication is required to perform this operation."}
var ErrResponseForbidden = ErrResponse{Code: 107, Message: "the caller is not allowed to perform this operation."}
var ErrResponseRateLimitExceeded = ErrResponse{Code: 108, Message: "rate limit exceeded"}
var ErrResponseRequestTimeout = ErrResponse{Code: 109, Message: "error from context:"}
var ErrResponseInternal = ErrResponse{Code: 110, Message: "the server encountered a problem and could not process the request."}
