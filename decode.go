package oscaltypes

import (
	"encoding"
	"errors"
	"reflect"

	"github.com/goccy/go-json"

	"github.com/reoring/oscaltypes/i18n"
)

// scalarDecoder is implemented by pointers to every datatype value type.
type scalarDecoder interface {
	decodeScalar(lit []byte, o Options) error
}

// textDecoder is implemented by the string-backed datatypes, which accept
// any YAML scalar by its source text.
type textDecoder interface {
	decodeText(s string, o Options) error
}

var (
	scalarDecoderType   = reflect.TypeOf((*scalarDecoder)(nil)).Elem()
	jsonUnmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// ErrInvalidTarget is returned when the decode target is not a non-nil pointer.
var ErrInvalidTarget = errors.New("oscaltypes: decode target must be a non-nil pointer")

// DecodeJSON decodes a JSON document into v, constructing every datatype
// field with the configured validation options. Failures are returned as
// Issues with JSON Pointer paths; fields whose value failed keep their
// previous content.
func DecodeJSON(data []byte, v any, opts ...DecodeOption) error {
	cfg := buildDecodeConfig(opts)
	rv, err := decodeTarget(v)
	if err != nil {
		return err
	}
	if !json.Valid(data) {
		var probe any
		cause := json.Unmarshal(data, &probe)
		return Issues{pathRef{}.withCause(CodeParseError, cause)}
	}
	b := &treeBuilder{cfg: &cfg}
	root, err := b.fromJSON(data)
	if err != nil {
		return Issues{pathRef{}.withCause(CodeParseError, err)}
	}
	return run(&cfg, b.issues, root, rv)
}

// DecodeYAML is DecodeJSON for YAML input. Issues carry the source line in
// Params["line"].
func DecodeYAML(data []byte, v any, opts ...DecodeOption) error {
	cfg := buildDecodeConfig(opts)
	rv, err := decodeTarget(v)
	if err != nil {
		return err
	}
	b := &treeBuilder{cfg: &cfg}
	root, err := b.fromYAML(data)
	if err != nil {
		return Issues{pathRef{}.withCause(CodeParseError, err)}
	}
	return run(&cfg, b.issues, root, rv)
}

func decodeTarget(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, ErrInvalidTarget
	}
	return rv.Elem(), nil
}

func run(cfg *decodeConfig, pre Issues, root *node, rv reflect.Value) error {
	d := &decoder{cfg: cfg, issues: pre}
	if !d.stop() {
		d.value(root, rv, pathRef{})
	}
	if len(d.issues) == 0 {
		return nil
	}
	if cfg.failFast {
		return d.issues[:1]
	}
	return d.issues
}

func msg(code string) string { return i18n.T(code, nil) }

func (p pathRef) withCause(code string, cause error) Issue {
	is := p.issue(code, msg(code))
	is.Cause = cause
	if cause != nil {
		is.Message += ": " + cause.Error()
	}
	return is
}

type decoder struct {
	cfg    *decodeConfig
	issues Issues
}

func (d *decoder) stop() bool { return d.cfg.failFast && len(d.issues) > 0 }

func (d *decoder) add(n *node, is Issue) {
	if n != nil && n.line > 0 {
		if is.Params == nil {
			is.Params = map[string]any{}
		}
		is.Params["line"] = n.line
	}
	d.issues = append(d.issues, is)
}

func (d *decoder) typeMismatch(n *node, path pathRef, want string) {
	d.add(n, path.issue(CodeInvalidType, msg(CodeInvalidType)+": expected "+want+", got "+n.kindName(),
		"expected", want, "got", n.kindName()))
}

// value decodes n into rv, which must be settable.
func (d *decoder) value(n *node, rv reflect.Value, path pathRef) {
	if d.stop() {
		return
	}
	if rv.CanAddr() && rv.Addr().Type().Implements(scalarDecoderType) {
		d.leaf(n, rv, path)
		return
	}
	switch rv.Kind() {
	case reflect.Pointer:
		if n.isNull() {
			rv.Set(reflect.Zero(rv.Type()))
			return
		}
		tmp := reflect.New(rv.Type().Elem())
		before := len(d.issues)
		d.value(n, tmp.Elem(), path)
		if len(d.issues) == before {
			rv.Set(tmp)
		}
		return
	case reflect.Interface:
		d.generic(n, rv, path)
		return
	}
	if reflect.PointerTo(rv.Type()).Implements(jsonUnmarshalerType) || reflect.PointerTo(rv.Type()).Implements(textUnmarshalerType) {
		d.generic(n, rv, path)
		return
	}
	switch rv.Kind() {
	case reflect.Struct:
		d.object(n, rv, path)
	case reflect.Slice:
		d.slice(n, rv, path)
	case reflect.Map:
		d.mapping(n, rv, path)
	default:
		d.generic(n, rv, path)
	}
}

// leaf constructs a datatype value. A null leaves the zero value in place.
func (d *decoder) leaf(n *node, rv reflect.Value, path pathRef) {
	if n.isNull() {
		return
	}
	if n.kind != nodeScalar {
		d.typeMismatch(n, path, "scalar")
		return
	}
	var err error
	if td, ok := rv.Addr().Interface().(textDecoder); ok && n.hasText {
		err = td.decodeText(n.text, d.cfg.validation)
	} else {
		err = rv.Addr().Interface().(scalarDecoder).decodeScalar(n.lit, d.cfg.validation)
	}
	if err != nil {
		is := path.issue(CodeInvalidFormat, err.Error())
		is.Cause = err
		if e, ok := AsError(err); ok {
			is.Params = map[string]any{"kind": e.Kind.String()}
		}
		d.add(n, is)
	}
}

func (d *decoder) object(n *node, rv reflect.Value, path pathRef) {
	if n.isNull() {
		return
	}
	if n.kind != nodeObject {
		d.typeMismatch(n, path, "object")
		return
	}
	fields := structFields(rv.Type())
	for _, k := range n.keys {
		if d.stop() {
			return
		}
		i, ok := fields[k]
		if !ok {
			if d.cfg.unknown == UnknownStrict {
				d.add(n.vals[k], path.Field(k).issue(CodeUnknownKey, msg(CodeUnknownKey)+": "+k, "key", k))
			}
			continue
		}
		d.value(n.vals[k], rv.Field(i), path.Field(k))
	}
}

func (d *decoder) slice(n *node, rv reflect.Value, path pathRef) {
	if n.isNull() {
		rv.Set(reflect.Zero(rv.Type()))
		return
	}
	if n.kind != nodeArray {
		d.typeMismatch(n, path, "array")
		return
	}
	out := reflect.MakeSlice(rv.Type(), len(n.items), len(n.items))
	before := len(d.issues)
	for i, it := range n.items {
		if d.stop() {
			return
		}
		d.value(it, out.Index(i), path.Index(i))
	}
	if len(d.issues) == before {
		rv.Set(out)
	}
}

func (d *decoder) mapping(n *node, rv reflect.Value, path pathRef) {
	if n.isNull() {
		rv.Set(reflect.Zero(rv.Type()))
		return
	}
	if rv.Type().Key().Kind() != reflect.String {
		d.generic(n, rv, path)
		return
	}
	if n.kind != nodeObject {
		d.typeMismatch(n, path, "object")
		return
	}
	if rv.IsNil() {
		rv.Set(reflect.MakeMapWithSize(rv.Type(), len(n.keys)))
	}
	et := rv.Type().Elem()
	for _, k := range n.keys {
		if d.stop() {
			return
		}
		before := len(d.issues)
		ev := reflect.New(et).Elem()
		d.value(n.vals[k], ev, path.Field(k))
		if len(d.issues) == before {
			rv.SetMapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()), ev)
		}
	}
}

// generic hands the subtree to goccy/go-json; used for plain Go leaves and
// types with their own unmarshalers.
func (d *decoder) generic(n *node, rv reflect.Value, path pathRef) {
	tmp := reflect.New(rv.Type())
	if err := json.Unmarshal(n.json(), tmp.Interface()); err != nil {
		is := path.issue(CodeInvalidType, msg(CodeInvalidType)+": "+err.Error())
		is.Cause = err
		d.add(n, is)
		return
	}
	rv.Set(tmp.Elem())
}
