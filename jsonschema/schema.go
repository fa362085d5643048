package jsonschema

import (
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/oscaltypes"
)

// Draft is the dialect every generated document declares.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a JSON Schema representation used for export.
// Only the keywords a datatype Format can express are modelled.
type Schema struct {
	// Document
	Schema      string `json:"$schema,omitempty" yaml:"$schema,omitempty"`
	ID          string `json:"$id,omitempty" yaml:"$id,omitempty"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Core
	Type            string `json:"type,omitempty" yaml:"type,omitempty"`
	Format          string `json:"format,omitempty" yaml:"format,omitempty"`
	Pattern         string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	ContentEncoding string `json:"contentEncoding,omitempty" yaml:"contentEncoding,omitempty"`

	// Number
	Minimum *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`

	Defs map[string]*Schema `json:"$defs,omitempty" yaml:"$defs,omitempty"`
}

// EncodeJSON renders the schema as indented JSON.
func (s *Schema) EncodeJSON() ([]byte, error) { return json.MarshalIndent(s, "", "  ") }

// EncodeYAML renders the schema as YAML.
func (s *Schema) EncodeYAML() ([]byte, error) { return yaml.Marshal(s) }

type generateConfig struct {
	id    string
	title string
	names []string
}

// GenerateOption configures Generate.
type GenerateOption func(*generateConfig)

// WithID sets the document $id.
func WithID(id string) GenerateOption { return func(c *generateConfig) { c.id = id } }

// WithTitle sets the document title.
func WithTitle(t string) GenerateOption { return func(c *generateConfig) { c.title = t } }

// WithTypes restricts the $defs to the named datatypes. Unknown names are
// reported by Generate.
func WithTypes(names ...string) GenerateOption {
	return func(c *generateConfig) { c.names = append(c.names, names...) }
}

// Generate builds a document with one $defs entry per registered datatype,
// keyed by registry name. Entries come from Format metadata only.
func Generate(opts ...GenerateOption) (*Schema, error) {
	cfg := generateConfig{title: "OSCAL datatypes"}
	for _, fn := range opts {
		if fn != nil {
			fn(&cfg)
		}
	}
	var dts []oscaltypes.Datatype
	if len(cfg.names) == 0 {
		dts = oscaltypes.Datatypes()
	} else {
		for _, n := range cfg.names {
			d, err := oscaltypes.Lookup(n)
			if err != nil {
				return nil, err
			}
			dts = append(dts, d)
		}
	}
	doc := &Schema{
		Schema: Draft,
		ID:     cfg.id,
		Title:  cfg.title,
		Defs:   make(map[string]*Schema, len(dts)),
	}
	for _, d := range dts {
		doc.Defs[d.Name()] = ForDatatype(d)
	}
	return doc, nil
}

// ForDatatype projects a datatype's Format into a schema.
func ForDatatype(d oscaltypes.Datatype) *Schema {
	f := d.Format()
	return &Schema{
		Description:     f.Description,
		Type:            f.Type,
		Format:          f.Format,
		Pattern:         f.Pattern,
		ContentEncoding: f.ContentEncoding,
		Minimum:         f.Bounds.Minimum,
		Maximum:         f.Bounds.Maximum,
	}
}

// DefRef returns the local reference to a generated definition.
func DefRef(name string) string { return "#/$defs/" + name }
