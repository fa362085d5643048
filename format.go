package oscaltypes

// Format is the schema metadata of a datatype. It belongs to the type, not to
// values, and never changes. Empty strings and nil bounds mean "absent".
type Format struct {
	Type            string // JSON Schema type: "string", "boolean", "integer", "number".
	Description     string
	Pattern         string // Regular expression, RE2 syntax.
	Format          string // Named format such as "ipv4", "duration" or "idn-hostname".
	ContentEncoding string // For example "base64".
	Bounds          Bounds
}

// Bounds holds the numeric limits of a datatype. Each type declares its own
// bounds at its declaration site; there is no inherited default.
type Bounds struct {
	Minimum *float64
	Maximum *float64
}

// IsZero reports whether neither limit is set.
func (b Bounds) IsZero() bool { return b.Minimum == nil && b.Maximum == nil }

// Contains reports whether v lies within the bounds (inclusive).
func (b Bounds) Contains(v float64) bool {
	if b.Minimum != nil && v < *b.Minimum {
		return false
	}
	if b.Maximum != nil && v > *b.Maximum {
		return false
	}
	return true
}

func (b Bounds) clone() Bounds {
	out := Bounds{}
	if b.Minimum != nil {
		out.Minimum = ptrFloat(*b.Minimum)
	}
	if b.Maximum != nil {
		out.Maximum = ptrFloat(*b.Maximum)
	}
	return out
}

func ptrFloat(v float64) *float64 { return &v }

// Storage is the underlying Go representation of a datatype.
type Storage uint8

const (
	StorageBool Storage = iota + 1
	StorageInt64
	StorageUint64
	StorageFloat64
	StorageString
)

// String returns the Go type name of the storage kind.
func (s Storage) String() string {
	switch s {
	case StorageBool:
		return "bool"
	case StorageInt64:
		return "int64"
	case StorageUint64:
		return "uint64"
	case StorageFloat64:
		return "float64"
	case StorageString:
		return "string"
	}
	return "invalid"
}

// Reference returns the Go type used to pass the value by reference: strings
// are already reference-like, booleans are passed by value and numbers by
// pointer.
func (s Storage) Reference() string {
	switch s {
	case StorageBool, StorageString:
		return s.String()
	case StorageInt64, StorageUint64, StorageFloat64:
		return "*" + s.String()
	}
	return "invalid"
}
