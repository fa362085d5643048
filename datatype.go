package oscaltypes

import "regexp"

// Datatype describes one datatype independently of any value: its registry
// name, schema metadata, storage kind and validation rule.
type Datatype interface {
	Name() string
	Format() Format
	Storage() Storage
	// Validate reports whether raw is an acceptable textual form of the type.
	// It has no side effects; calling it twice yields the same result.
	Validate(raw string, opts ...Option) error
}

// validateFunc is the per-type rule. It receives its own descriptor and
// resolved options.
type validateFunc func(d *descriptor, raw string, o Options) error

// descriptor is the single Datatype implementation shared by every type.
type descriptor struct {
	name     string
	format   Format
	storage  Storage
	validate validateFunc
	// strict runs only when Options.EnforcePatterns is set; it backs the
	// formats whose pattern is otherwise descriptive.
	strict validateFunc
	re     *regexp.Regexp
}

// newDescriptor compiles the declared pattern once at package init.
func newDescriptor(name string, storage Storage, f Format, validate, strict validateFunc) *descriptor {
	d := &descriptor{name: name, format: f, storage: storage, validate: validate, strict: strict}
	if f.Pattern != "" {
		d.re = regexp.MustCompile(f.Pattern)
	}
	return d
}

func (d *descriptor) Name() string     { return d.name }
func (d *descriptor) Storage() Storage { return d.storage }

// Format returns a copy; callers cannot change the type's metadata.
func (d *descriptor) Format() Format {
	f := d.format
	f.Bounds = f.Bounds.clone()
	return f
}

func (d *descriptor) Validate(raw string, opts ...Option) error {
	return d.check(raw, buildOptions(opts))
}

func (d *descriptor) check(raw string, o Options) error {
	if d.validate != nil {
		if err := d.validate(d, raw, o); err != nil {
			return err
		}
	}
	if !o.EnforcePatterns {
		return nil
	}
	if d.strict != nil {
		if err := d.strict(d, raw, o); err != nil {
			return err
		}
	}
	if d.re != nil && !d.re.MatchString(raw) {
		return newError(KindStringParse, "value does not match the "+d.name+" pattern", nil)
	}
	return nil
}

// permissive accepts any input.
func permissive(*descriptor, string, Options) error { return nil }
