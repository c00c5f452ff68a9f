package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// entityValidate checks struct tags on the entity types. Initialized in
// init() with the custom validators below.
var entityValidate *validator.Validate

func init() {
	entityValidate = validator.New(validator.WithRequiredStructEnabled())
	_ = entityValidate.RegisterValidation("candidate_status", validateCandidateStatus)
}

// validateCandidateStatus accepts only the known pipeline statuses.
func validateCandidateStatus(fl validator.FieldLevel) bool {
	return validCandidateStatuses[CandidateStatus(fl.Field().String())]
}

// Validate checks the candidate's field formats. It returns an error
// wrapping ErrInvalidData that names every offending field.
func (c *Candidate) Validate() error {
	return validateEntity(c)
}

// Validate checks the position's field formats.
func (p *Position) Validate() error {
	return validateEntity(p)
}

// Validate checks the interview's scheduling fields.
func (i *Interview) Validate() error {
	return validateEntity(i)
}

func validateEntity(v any) error {
	err := entityValidate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidData, strings.Join(msgs, "; "))
}

// fieldMessage turns a validator failure into a short user-facing message.
func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "numeric":
		return field + " must contain only digits"
	case "alphanum":
		return "tags must be alphanumeric"
	case "min", "max":
		return fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}
