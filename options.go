package oscaltypes

// Options controls how strictly a datatype validates raw input. The zero value
// disables date validation; use DefaultOptions for the usual configuration.
type Options struct {
	// DateValidation parses Date and DateTime values. When false both types
	// accept any text, which lets documents carry dates with a timezone.
	DateValidation bool
	// EnforcePatterns matches the declared pattern of every string type that
	// has one, and runs real format checks for the types whose pattern is
	// otherwise descriptive only (Base64, EmailAddress, Hostname).
	EnforcePatterns bool
	// EnforceBounds rejects numeric values outside the declared minimum and
	// maximum. Bounds are schema metadata only when false.
	EnforceBounds bool
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns date validation on, patterns and bounds advisory.
func DefaultOptions() Options {
	return Options{DateValidation: true}
}

// WithDateValidation toggles Date and DateTime parsing.
func WithDateValidation(enabled bool) Option {
	return func(o *Options) { o.DateValidation = enabled }
}

// WithPatternEnforcement toggles matching of declared patterns.
func WithPatternEnforcement(enabled bool) Option {
	return func(o *Options) { o.EnforcePatterns = enabled }
}

// WithBoundsEnforcement toggles numeric minimum/maximum checks.
func WithBoundsEnforcement(enabled bool) Option {
	return func(o *Options) { o.EnforceBounds = enabled }
}

// WithOptions replaces the whole option set.
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
