package oscaltypes

// UnknownPolicy controls how unknown keys are handled.
type UnknownPolicy int

const (
	UnknownStrict UnknownPolicy = iota // Report unknown keys as unknown_key issues.
	UnknownStrip                       // Drop unknown keys.
)

const (
	// defaultMaxDepth bounds nesting of decoded documents.
	defaultMaxDepth = 256
	// defaultMaxNodes bounds the expanded size of a document, counting every
	// YAML alias as a copy of its anchor.
	defaultMaxNodes = 1 << 20
)

type decodeConfig struct {
	validation    Options
	unknown       UnknownPolicy
	failFast      bool
	rejectDupKeys bool
	maxDepth      int
	maxNodes      int
}

// DecodeOption configures DecodeJSON and DecodeYAML.
type DecodeOption func(*decodeConfig)

// WithValidation sets the options every datatype leaf is constructed with.
func WithValidation(opts ...Option) DecodeOption {
	return func(c *decodeConfig) { c.validation = buildOptions(opts) }
}

// WithUnknownPolicy selects how keys without a matching struct field are treated.
// The default is UnknownStrip.
func WithUnknownPolicy(p UnknownPolicy) DecodeOption {
	return func(c *decodeConfig) { c.unknown = p }
}

// WithFailFast stops at the first issue.
func WithFailFast(enabled bool) DecodeOption {
	return func(c *decodeConfig) { c.failFast = enabled }
}

// WithDuplicateKeys reports repeated object keys as duplicate_key issues when
// reject is true. Otherwise the last occurrence wins.
func WithDuplicateKeys(reject bool) DecodeOption {
	return func(c *decodeConfig) { c.rejectDupKeys = reject }
}

// WithMaxDepth limits container nesting; deeper documents fail with parse_error.
// Values <= 0 restore the default.
func WithMaxDepth(n int) DecodeOption {
	return func(c *decodeConfig) { c.maxDepth = n }
}

// WithMaxNodes limits the number of values in the expanded document; larger
// documents fail with parse_error. Values <= 0 restore the default.
func WithMaxNodes(n int) DecodeOption {
	return func(c *decodeConfig) { c.maxNodes = n }
}

func buildDecodeConfig(opts []DecodeOption) decodeConfig {
	c := decodeConfig{
		validation: DefaultOptions(),
		unknown:    UnknownStrip,
		maxDepth:   defaultMaxDepth,
		maxNodes:   defaultMaxNodes,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&c)
		}
	}
	if c.maxDepth <= 0 {
		c.maxDepth = defaultMaxDepth
	}
	if c.maxNodes <= 0 {
		c.maxNodes = defaultMaxNodes
	}
	return c
}
