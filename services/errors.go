package services

// The error taxonomy the API surface translates into status codes:
// ValidationError -> 400, AuthError -> 401, ForbiddenError -> 403,
// ConflictError -> 400 (structured body when Code is set). Anything
// else is unexpected and becomes a generic 500.

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }

// ConflictError reports a store-level uniqueness loss. Code is a stable
// machine-readable tag ("SLOT_TAKEN" for the booking race); it is empty
// for conflicts that only need a plain message, like a duplicate email.
type ConflictError struct {
	Code    string
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// CodeSlotTaken marks the losing side of a booking race, and also a
// booking attempt against a slot id that does not exist. Callers are
// not told which of the two happened.
const CodeSlotTaken = "SLOT_TAKEN"
