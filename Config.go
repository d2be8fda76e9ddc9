package bind

// Config defines a set of configuration values that apply to every chain a
// Binder registers.
type Config struct {
	ProblemDetailsTypePrefix string
	DebuggingEnabled         bool
	JSONContentLengthLimit   int64
}

// DefaultConfig returns the configuration a Binder falls back to when none
// is provided: relative problem-details type URIs, debugging disabled, and
// a 1 MB JSON body limit.
func DefaultConfig() *Config {
	return &Config{
		ProblemDetailsTypePrefix: "",
		DebuggingEnabled:         false,
		JSONContentLengthLimit:   1 << 20,
	}
}
