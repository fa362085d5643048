package oscaltypes_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/oscaltypes"
)

type metadata struct {
	Title        oscaltypes.String               `json:"title"`
	LastModified oscaltypes.DateTimeWithTimezone `json:"last-modified"`
	Version      oscaltypes.String               `json:"version"`
	Published    *oscaltypes.DateTime            `json:"published,omitempty"`
}

type party struct {
	UUID   oscaltypes.UUID           `json:"uuid"`
	Type   oscaltypes.Token          `json:"type"`
	Emails []oscaltypes.EmailAddress `json:"email-addresses,omitempty"`
}

type catalog struct {
	UUID     oscaltypes.UUID              `json:"uuid"`
	Metadata metadata                     `json:"metadata"`
	Parties  []party                      `json:"parties"`
	Props    map[string]oscaltypes.NCName `json:"props"`
	Revision oscaltypes.PositiveInteger   `json:"revision"`
	Notes    string                       `json:"notes"`
}

const validCatalog = `{
  "uuid": "A78F7E4C-A27A-4B1E-901B-EBFECF2B0301",
  "metadata": {
    "title": "Catalog",
    "last-modified": "2024-04-13T09:57:13Z",
    "version": "1.0",
    "published": "2024-04-13T09:57:13"
  },
  "parties": [{"uuid": "8c6a54f3-9f79-4b8e-8d2e-8d2b7f0c1a11", "type": "organization", "email-addresses": ["ops@example.com"]}],
  "props": {"marking": "internal"},
  "revision": 3,
  "notes": "free text"
}`

func issuePaths(iss oscaltypes.Issues) []string {
	out := make([]string, len(iss))
	for i, is := range iss {
		out[i] = is.Code + " " + is.Path
	}
	return out
}

func TestDecodeJSON_Valid(t *testing.T) {
	var c catalog
	if err := oscaltypes.DecodeJSON([]byte(validCatalog), &c); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if c.UUID.String() != "a78f7e4c-a27a-4b1e-901b-ebfecf2b0301" {
		t.Fatalf("uuid = %q", c.UUID.String())
	}
	if c.Metadata.Published == nil || c.Metadata.Published.String() != "2024-04-13T09:57:13" {
		t.Fatalf("published = %v", c.Metadata.Published)
	}
	if len(c.Parties) != 1 || c.Parties[0].Type.String() != "organization" || c.Parties[0].Emails[0].String() != "ops@example.com" {
		t.Fatalf("parties = %+v", c.Parties)
	}
	if c.Props["marking"].String() != "internal" || c.Revision.Uint64() != 3 || c.Notes != "free text" {
		t.Fatalf("decoded %+v", c)
	}
}

func TestDecodeJSON_CollectsIssuesWithPaths(t *testing.T) {
	doc := `{
  "uuid": "nope",
  "metadata": {"title": " padded", "last-modified": "2024-04-13T09:57:13"},
  "parties": [{"uuid": "8c6a54f3-9f79-4b8e-8d2e-8d2b7f0c1a11", "type": ":org"}],
  "props": {"a/b": "1x"},
  "revision": "3",
  "notes": 7
}`
	var c catalog
	err := oscaltypes.DecodeJSON([]byte(doc), &c)
	iss, ok := oscaltypes.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got %v", err)
	}
	want := []string{
		"invalid_format /uuid",
		"invalid_format /metadata/title",
		"invalid_format /metadata/last-modified",
		"invalid_format /parties/0/type",
		"invalid_format /props/a~1b",
		"invalid_format /revision",
		"invalid_type /notes",
	}
	if diff := cmp.Diff(want, issuePaths(iss)); diff != "" {
		t.Fatalf("issues (-want +got):\n%s", diff)
	}
	kinds := []string{"uuid_parse", "string_parse", "date_parse", "identifier_illegal_first_char", "identifier_illegal_first_char", "number_parse"}
	for i, k := range kinds {
		if iss[i].Params["kind"] != k {
			t.Fatalf("issue %d kind = %v want %s", i, iss[i].Params["kind"], k)
		}
		if _, ok := oscaltypes.AsError(iss[i].Cause); !ok {
			t.Fatalf("issue %d has no datatype cause", i)
		}
	}
	if !c.UUID.IsZero() || c.Parties != nil || c.Props["a/b"].String() != "" {
		t.Fatalf("failed values must not be assigned: %+v", c)
	}
}

func TestDecodeJSON_FailedFieldKeepsPreviousValue(t *testing.T) {
	c := catalog{Revision: oscaltypes.NewPositiveInteger()}
	if err := oscaltypes.DecodeJSON([]byte(`{"revision": -1}`), &c); err == nil {
		t.Fatalf("expected an issue")
	}
	if c.Revision.Uint64() != 1 {
		t.Fatalf("revision overwritten: %d", c.Revision.Uint64())
	}
}

func TestDecodeJSON_Options(t *testing.T) {
	doc := []byte(`{"metadata": {"published": "someday"}, "zzz": true}`)
	var c catalog
	if err := oscaltypes.DecodeJSON(doc, &c, oscaltypes.WithValidation(oscaltypes.WithDateValidation(false))); err != nil {
		t.Fatalf("unknown keys are stripped and date validation is off: %v", err)
	}
	if c.Metadata.Published.String() != "someday" {
		t.Fatalf("published = %v", c.Metadata.Published)
	}

	err := oscaltypes.DecodeJSON(doc, &catalog{}, oscaltypes.WithUnknownPolicy(oscaltypes.UnknownStrict))
	iss, _ := oscaltypes.AsIssues(err)
	if diff := cmp.Diff([]string{"invalid_format /metadata/published", "unknown_key /zzz"}, issuePaths(iss)); diff != "" {
		t.Fatalf("strict issues (-want +got):\n%s", diff)
	}

	err = oscaltypes.DecodeJSON(doc, &catalog{}, oscaltypes.WithUnknownPolicy(oscaltypes.UnknownStrict), oscaltypes.WithFailFast(true))
	iss, _ = oscaltypes.AsIssues(err)
	if len(iss) != 1 {
		t.Fatalf("fail-fast returned %d issues", len(iss))
	}
}

func TestDecodeJSON_StructuralErrors(t *testing.T) {
	err := oscaltypes.DecodeJSON([]byte(`{"metadata": [], "parties": {}}`), &catalog{})
	iss, _ := oscaltypes.AsIssues(err)
	if diff := cmp.Diff([]string{"invalid_type /metadata", "invalid_type /parties"}, issuePaths(iss)); diff != "" {
		t.Fatalf("issues (-want +got):\n%s", diff)
	}

	err = oscaltypes.DecodeJSON([]byte(`{"uuid":`), &catalog{})
	iss, _ = oscaltypes.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != oscaltypes.CodeParseError {
		t.Fatalf("expected parse_error, got %v", err)
	}

	if err := oscaltypes.DecodeJSON([]byte(`{}`), catalog{}); !errors.Is(err, oscaltypes.ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
}

func TestDecodeJSON_DuplicateKeys(t *testing.T) {
	doc := []byte(`{"notes": "a", "notes": "b"}`)
	var c catalog
	if err := oscaltypes.DecodeJSON(doc, &c); err != nil || c.Notes != "b" {
		t.Fatalf("last key wins by default: %q %v", c.Notes, err)
	}
	err := oscaltypes.DecodeJSON(doc, &catalog{}, oscaltypes.WithDuplicateKeys(true))
	iss, _ := oscaltypes.AsIssues(err)
	if diff := cmp.Diff([]string{"duplicate_key /notes"}, issuePaths(iss)); diff != "" {
		t.Fatalf("issues (-want +got):\n%s", diff)
	}
}

func TestDecodeJSON_MaxDepth(t *testing.T) {
	var v any
	err := oscaltypes.DecodeJSON([]byte(`[[[[1]]]]`), &v, oscaltypes.WithMaxDepth(2))
	iss, _ := oscaltypes.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != oscaltypes.CodeParseError {
		t.Fatalf("expected parse_error for depth, got %v", err)
	}
}

func TestDecodeYAML_LinesAndTags(t *testing.T) {
	src := `uuid: a78f7e4c-a27a-4b1e-901b-ebfecf2b0301
metadata:
  title: Catalog
  last-modified: 2024-04-13T09:57:13
  version: "1.0"
revision: 2
props:
  marking: internal
`
	var c catalog
	err := oscaltypes.DecodeYAML([]byte(src), &c)
	iss, ok := oscaltypes.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected one issue, got %v", err)
	}
	is := iss[0]
	if is.Path != "/metadata/last-modified" || is.Params["line"] != 4 || is.Params["kind"] != "date_parse" {
		t.Fatalf("issue = %+v", is)
	}
	if c.Revision.Uint64() != 2 || c.Metadata.Version.String() != "1.0" || c.Props["marking"].String() != "internal" {
		t.Fatalf("decoded %+v", c)
	}
}

func TestDecodeYAML_ParseError(t *testing.T) {
	err := oscaltypes.DecodeYAML([]byte("a: [1, 2"), &catalog{})
	iss, _ := oscaltypes.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != oscaltypes.CodeParseError {
		t.Fatalf("expected parse_error, got %v", err)
	}
}

func TestDecodeYAML_UnquotedScalarsIntoTextTypes(t *testing.T) {
	var doc struct {
		Version oscaltypes.String          `yaml:"version"`
		ID      oscaltypes.Token           `yaml:"id"`
		Count   oscaltypes.PositiveInteger `yaml:"count"`
		When    oscaltypes.Date            `yaml:"when"`
	}
	src := "version: 1.0\nid: true\ncount: 0x10\nwhen: 2024-02-10\n"
	if err := oscaltypes.DecodeYAML([]byte(src), &doc); err != nil {
		t.Fatalf("DecodeYAML: %v", err)
	}
	if doc.Version.String() != "1.0" || doc.ID.String() != "true" || doc.Count.Uint64() != 16 || doc.When.String() != "2024-02-10" {
		t.Fatalf("decoded %+v", doc)
	}
	// JSON keeps its types: a number is not a string.
	err := oscaltypes.DecodeJSON([]byte(`{"version": 1.0}`), &doc)
	iss, _ := oscaltypes.AsIssues(err)
	if diff := cmp.Diff([]string{"invalid_format /version"}, issuePaths(iss)); diff != "" {
		t.Fatalf("issues (-want +got):\n%s", diff)
	}
}

func TestDecodeYAML_AliasesAreShared(t *testing.T) {
	src := `base: &b {marking: internal}
copy: *b
`
	var doc map[string]map[string]oscaltypes.NCName
	if err := oscaltypes.DecodeYAML([]byte(src), &doc); err != nil {
		t.Fatalf("DecodeYAML: %v", err)
	}
	if doc["copy"]["marking"].String() != "internal" || doc["base"]["marking"].String() != "internal" {
		t.Fatalf("decoded %+v", doc)
	}
}

func TestDecodeYAML_AliasExpansionIsBounded(t *testing.T) {
	var b strings.Builder
	b.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= 8; i++ {
		fmt.Fprintf(&b, "l%d: &l%d [", i, i)
		for j := 0; j < 10; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "*l%d", i-1)
		}
		b.WriteString("]\n")
	}
	done := make(chan error, 1)
	go func() { done <- oscaltypes.DecodeYAML([]byte(b.String()), &map[string]any{}) }()
	select {
	case err := <-done:
		iss, _ := oscaltypes.AsIssues(err)
		if len(iss) != 1 || iss[0].Code != oscaltypes.CodeParseError {
			t.Fatalf("expected parse_error, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("alias expansion did not stop")
	}

	err := oscaltypes.DecodeJSON([]byte(`[1,2,3,4,5]`), &[]int{}, oscaltypes.WithMaxNodes(4))
	if iss, _ := oscaltypes.AsIssues(err); len(iss) != 1 || iss[0].Code != oscaltypes.CodeParseError {
		t.Fatalf("expected parse_error for node limit, got %v", err)
	}
}
