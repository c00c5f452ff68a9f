package types

import "errors"

// Lookup and data errors.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrInvalidID     = errors.New("invalid entity ID")
	ErrInvalidData   = errors.New("invalid entity data")
	ErrInvalidStatus = errors.New("invalid status value")
	ErrInvalidIndex  = errors.New("index is not in the displayed list")
)

// Edit command errors. All of them are raised before anything is written,
// so a failed command never leaves partial changes behind.
var (
	ErrNoFieldsEdited          = errors.New("at least one field to edit must be provided")
	ErrMultipleFieldsEdited    = errors.New("only one field can be edited at one time")
	ErrDuplicateCandidate      = errors.New("candidate already exists")
	ErrDuplicatePosition       = errors.New("position already exists")
	ErrDuplicateInterview      = errors.New("interview already exists")
	ErrIllegalStatusTransition = errors.New("illegal status transition")
	ErrPositionNotFound        = errors.New("position does not exist")
	ErrPositionClosed          = errors.New("position is closed")
)

// Interview assignment errors.
var (
	ErrNotEligible     = errors.New("candidate has not applied for the interview position")
	ErrAlreadyAssigned = errors.New("candidate is already assigned to the interview")
	ErrNotAssigned     = errors.New("candidate is not assigned to the interview")
)

// userErrors are caused by input or state rather than infrastructure; the
// CLI reports them with the user exit code.
var userErrors = []error{
	ErrNotFound, ErrInvalidID, ErrInvalidData, ErrInvalidStatus, ErrInvalidIndex,
	ErrNoFieldsEdited, ErrMultipleFieldsEdited, ErrDuplicateCandidate,
	ErrDuplicatePosition, ErrDuplicateInterview, ErrIllegalStatusTransition,
	ErrPositionNotFound, ErrPositionClosed, ErrNotEligible, ErrAlreadyAssigned,
	ErrNotAssigned,
}

// IsUserError reports whether err wraps one of the domain errors above.
func IsUserError(err error) bool {
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
