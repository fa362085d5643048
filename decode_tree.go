package oscaltypes

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

type nodeKind int

const (
	nodeScalar nodeKind = iota
	nodeObject
	nodeArray
)

// node is the format-neutral document tree the decoder walks. Scalars keep
// their JSON literal so datatype leaves see exactly what the document said.
type node struct {
	kind  nodeKind
	keys  []string // object keys in document order, without duplicates
	vals  map[string]*node
	items []*node
	lit   []byte
	line  int // 1-based source line; 0 when unknown
	// text is the YAML source of a scalar; text datatypes decode from it so
	// that unquoted 1.0 or true stay strings.
	text    string
	hasText bool
	// size counts the values in the expanded subtree. Nodes behind YAML
	// aliases are shared, so size can exceed the number of distinct nodes.
	size int
}

func (n *node) isNull() bool { return n.kind == nodeScalar && string(n.lit) == "null" }

func (n *node) kindName() string {
	switch n.kind {
	case nodeObject:
		return "object"
	case nodeArray:
		return "array"
	}
	switch {
	case n.isNull():
		return "null"
	case len(n.lit) > 0 && n.lit[0] == '"':
		return "string"
	case string(n.lit) == "true" || string(n.lit) == "false":
		return "boolean"
	}
	return "number"
}

// json re-renders the subtree as compact JSON.
func (n *node) json() []byte {
	switch n.kind {
	case nodeObject:
		var b bytes.Buffer
		b.WriteByte('{')
		for i, k := range n.keys {
			if i > 0 {
				b.WriteByte(',')
			}
			kb, _ := json.Marshal(k)
			b.Write(kb)
			b.WriteByte(':')
			b.Write(n.vals[k].json())
		}
		b.WriteByte('}')
		return b.Bytes()
	case nodeArray:
		var b bytes.Buffer
		b.WriteByte('[')
		for i, it := range n.items {
			if i > 0 {
				b.WriteByte(',')
			}
			b.Write(it.json())
		}
		b.WriteByte(']')
		return b.Bytes()
	}
	return n.lit
}

// treeBuilder turns a token stream or a YAML node graph into a node tree,
// collecting duplicate-key issues along the way.
type treeBuilder struct {
	cfg     *decodeConfig
	issues  Issues
	anchors map[*yaml.Node]*node
}

type depthError struct{ path string }

func (e depthError) Error() string { return "maximum nesting depth exceeded at " + e.path }

type sizeError struct {
	path  string
	limit int
}

func (e sizeError) Error() string {
	return "document expands to more than " + strconv.Itoa(e.limit) + " values at " + e.path
}

// grow adds child to the expanded size of n.
func (b *treeBuilder) grow(n, child *node, path pathRef) error {
	n.size += child.size
	if n.size > b.cfg.maxNodes {
		return sizeError{path: path.Pointer(), limit: b.cfg.maxNodes}
	}
	return nil
}

func (b *treeBuilder) object(n *node, key string, child *node, path pathRef) {
	if _, dup := n.vals[key]; dup {
		if b.cfg.rejectDupKeys {
			at := path.Field(key)
			b.issues = append(b.issues, at.issue(CodeDuplicateKey, msg(CodeDuplicateKey), "key", key))
		}
	} else {
		n.keys = append(n.keys, key)
	}
	n.vals[key] = child
}

func (b *treeBuilder) fromJSON(data []byte) (*node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return b.jsonValue(dec, tok, pathRef{}, 0)
}

func (b *treeBuilder) jsonValue(dec *json.Decoder, tok json.Token, path pathRef, depth int) (*node, error) {
	switch v := tok.(type) {
	case json.Delim:
		if depth >= b.cfg.maxDepth {
			return nil, depthError{path.Pointer()}
		}
		switch v {
		case '{':
			n := &node{kind: nodeObject, vals: map[string]*node{}, size: 1}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", kt)
				}
				vt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				child, err := b.jsonValue(dec, vt, path.Field(key), depth+1)
				if err != nil {
					return nil, err
				}
				if err := b.grow(n, child, path); err != nil {
					return nil, err
				}
				b.object(n, key, child, path)
			}
			_, err := dec.Token() // '}'
			return n, err
		case '[':
			n := &node{kind: nodeArray, size: 1}
			for i := 0; dec.More(); i++ {
				vt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				child, err := b.jsonValue(dec, vt, path.Index(i), depth+1)
				if err != nil {
					return nil, err
				}
				if err := b.grow(n, child, path); err != nil {
					return nil, err
				}
				n.items = append(n.items, child)
			}
			_, err := dec.Token() // ']'
			return n, err
		}
		return nil, fmt.Errorf("unexpected delimiter %v", v)
	case string:
		lit, err := json.Marshal(v)
		return &node{lit: lit, size: 1}, err
	case json.Number:
		return &node{lit: []byte(v.String()), size: 1}, nil
	case float64:
		return &node{lit: []byte(strconv.FormatFloat(v, 'g', -1, 64)), size: 1}, nil
	case bool:
		return &node{lit: []byte(strconv.FormatBool(v)), size: 1}, nil
	case nil:
		return &node{lit: []byte("null"), size: 1}, nil
	}
	return nil, fmt.Errorf("unexpected token %T", tok)
}

func (b *treeBuilder) fromYAML(data []byte) (*node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return &node{lit: []byte("null"), size: 1}, nil
	}
	b.anchors = map[*yaml.Node]*node{}
	return b.yamlValue(&doc, pathRef{}, 0)
}

// yamlValue converts y. Anchored nodes are converted once and shared by
// every alias; the tree is never mutated after building.
func (b *treeBuilder) yamlValue(y *yaml.Node, path pathRef, depth int) (*node, error) {
	if y.Kind == yaml.AliasNode {
		if n, ok := b.anchors[y.Alias]; ok {
			return n, nil
		}
		if depth >= b.cfg.maxDepth {
			return nil, depthError{path.Pointer()}
		}
		return b.yamlValue(y.Alias, path, depth+1)
	}
	n, err := b.yamlNode(y, path, depth)
	if err == nil && y.Anchor != "" {
		b.anchors[y] = n
	}
	return n, err
}

func (b *treeBuilder) yamlNode(y *yaml.Node, path pathRef, depth int) (*node, error) {
	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return &node{lit: []byte("null"), line: y.Line, size: 1}, nil
		}
		return b.yamlValue(y.Content[0], path, depth)
	case yaml.MappingNode:
		if depth >= b.cfg.maxDepth {
			return nil, depthError{path.Pointer()}
		}
		n := &node{kind: nodeObject, vals: map[string]*node{}, line: y.Line, size: 1}
		for i := 0; i+1 < len(y.Content); i += 2 {
			k := y.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			child, err := b.yamlValue(y.Content[i+1], path.Field(k.Value), depth+1)
			if err != nil {
				return nil, err
			}
			if err := b.grow(n, child, path); err != nil {
				return nil, err
			}
			b.object(n, k.Value, child, path)
		}
		return n, nil
	case yaml.SequenceNode:
		if depth >= b.cfg.maxDepth {
			return nil, depthError{path.Pointer()}
		}
		n := &node{kind: nodeArray, line: y.Line, size: 1}
		for i, c := range y.Content {
			child, err := b.yamlValue(c, path.Index(i), depth+1)
			if err != nil {
				return nil, err
			}
			if err := b.grow(n, child, path); err != nil {
				return nil, err
			}
			n.items = append(n.items, child)
		}
		return n, nil
	case yaml.ScalarNode:
		lit, err := yamlScalarLiteral(y)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", y.Line, err)
		}
		return &node{lit: lit, line: y.Line, text: y.Value, hasText: true, size: 1}, nil
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node", y.Line)
}

// yamlScalarLiteral maps a resolved YAML scalar to its JSON literal. Strings
// and timestamps keep their source text.
func yamlScalarLiteral(y *yaml.Node) ([]byte, error) {
	switch y.ShortTag() {
	case "!!null":
		return []byte("null"), nil
	case "!!bool", "!!int", "!!float":
		var v any
		if err := y.Decode(&v); err != nil {
			return nil, err
		}
		if lit, err := json.Marshal(v); err == nil {
			return lit, nil
		}
		// .inf and .nan have no JSON form; keep the source text.
	}
	return json.Marshal(y.Value)
}
