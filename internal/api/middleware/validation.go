package middleware

import (
	stderrors "errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Lorak9904/RhetorAI/internal/api/errors"
)

// Validator is implemented by request DTOs with rules that binding tags
// cannot express
type Validator interface {
	Validate() error
}

var tagMessages = map[string]string{
	"required": "is required",
	"min":      "is too short",
	"max":      "is too long",
	"oneof":    "must be one of the allowed values",
}

// ValidateRequest binds the JSON body into req, checks its binding tags and
// then its Validate method when it has one.
func ValidateRequest(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return bindingError(err)
	}

	if v, ok := req.(Validator); ok {
		return v.Validate()
	}
	return nil
}

func bindingError(err error) *errors.APIError {
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		reason := "invalid JSON format"
		if stderrors.Is(err, io.EOF) {
			reason = "body is empty"
		}
		return errors.NewValidationError("Validation failed", map[string]string{"request": reason})
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := tagMessages[fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		fields[strings.ToLower(fe.Field())] = msg
	}
	return errors.NewValidationError("Validation failed", fields)
}
