package bind

// Purifiable defines the method that any request model passed to
// Context.FromJSON must implement.  It allows request models to validate
// themselves, keeping the validation of user-provided values out of
// handlers and middleware.
//
// The first return value is the name of the invalid field, the second is
// the error describing the problem.
type Purifiable interface {
	Purify() (string, error)
}
