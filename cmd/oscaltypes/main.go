package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/reoring/oscaltypes"
	"github.com/reoring/oscaltypes/internal/log"
	"github.com/reoring/oscaltypes/jsonschema"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	switch args[0] {
	case "types":
		return typesCmd(args[1:], stdout, stderr)
	case "schema":
		return schemaCmd(args[1:], stdout, stderr)
	case "validate":
		return validateCmd(args[1:], stdout, stderr)
	case "decode":
		return decodeCmd(args[1:], stdout, stderr)
	default:
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `oscaltypes CLI

Usage:
  oscaltypes types
  oscaltypes schema [-format json|yaml] [-o out] [-type T1,T2,...]
  oscaltypes validate -type NAME [-no-date-validation] [-strict-patterns] [-strict-bounds] VALUE...
  oscaltypes decode -type NAME [-format json|yaml] [-strict] FILE

Notes:
  - decode expects a flat object whose values all have the datatype NAME.`)
}

// newFlagSet wires the flags every subcommand shares.
func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "enable verbose logs")
	return fs, verbose
}

func logger(stderr io.Writer, verbose bool) *slog.Logger {
	if verbose {
		return log.New(stderr, slog.LevelDebug)
	}
	return log.New(stderr, slog.LevelWarn)
}

func typesCmd(args []string, stdout, stderr io.Writer) int {
	fs, _ := newFlagSet("types", stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTORAGE\tREFERENCE\tFORMAT")
	for _, d := range oscaltypes.Datatypes() {
		f := d.Format()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Name(), d.Storage(), d.Storage().Reference(), orDash(f.Format))
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func schemaCmd(args []string, stdout, stderr io.Writer) int {
	fs, verbose := newFlagSet("schema", stderr)
	var format, out, typesCSV, id string
	fs.StringVar(&format, "format", "json", "output format: json or yaml")
	fs.StringVar(&out, "o", "", "output filename (default stdout)")
	fs.StringVar(&typesCSV, "type", "", "comma-separated datatype names (default all)")
	fs.StringVar(&id, "id", "", "$id of the generated document")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	lg := logger(stderr, *verbose)

	var opts []jsonschema.GenerateOption
	if typesCSV != "" {
		opts = append(opts, jsonschema.WithTypes(splitCSV(typesCSV)...))
	}
	if id != "" {
		opts = append(opts, jsonschema.WithID(id))
	}
	doc, err := jsonschema.Generate(opts...)
	if err != nil {
		lg.Error("generate schema", "error", err)
		return 1
	}
	var data []byte
	switch format {
	case "json":
		data, err = doc.EncodeJSON()
		data = append(data, '\n')
	case "yaml":
		data, err = doc.EncodeYAML()
	default:
		fmt.Fprintf(stderr, "unknown format %q\n", format)
		return 2
	}
	if err != nil {
		lg.Error("encode schema", "format", format, "error", err)
		return 1
	}
	if out == "" {
		_, _ = stdout.Write(data)
		return 0
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		lg.Error("creating output dir", "error", err)
		return 1
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		lg.Error("writing output", "error", err)
		return 1
	}
	lg.Debug("schema written", "path", out, "defs", len(doc.Defs))
	return 0
}

type validationFlags struct {
	noDates, patterns, bounds bool
}

func (v *validationFlags) register(fs *flag.FlagSet) {
	fs.BoolVar(&v.noDates, "no-date-validation", false, "accept any text for Date and DateTime")
	fs.BoolVar(&v.patterns, "strict-patterns", false, "enforce declared patterns and format checks")
	fs.BoolVar(&v.bounds, "strict-bounds", false, "enforce numeric minimum and maximum")
}

func (v *validationFlags) options() []oscaltypes.Option {
	return []oscaltypes.Option{
		oscaltypes.WithDateValidation(!v.noDates),
		oscaltypes.WithPatternEnforcement(v.patterns),
		oscaltypes.WithBoundsEnforcement(v.bounds),
	}
}

func validateCmd(args []string, stdout, stderr io.Writer) int {
	fs, verbose := newFlagSet("validate", stderr)
	var typeName string
	var vf validationFlags
	fs.StringVar(&typeName, "type", "", "datatype name, for example DateDatatype")
	vf.register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if typeName == "" || fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	lg := logger(stderr, *verbose)
	d, err := oscaltypes.Lookup(typeName)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	failed := 0
	for _, v := range fs.Args() {
		if err := d.Validate(v, vf.options()...); err != nil {
			failed++
			fmt.Fprintf(stdout, "invalid\t%s\t%v\n", v, err)
			lg.Debug("value rejected", "type", d.Name(), "value", v, "error", err)
			continue
		}
		fmt.Fprintf(stdout, "ok\t%s\n", v)
	}
	if failed > 0 {
		return 1
	}
	return 0
}

func decodeCmd(args []string, stdout, stderr io.Writer) int {
	fs, verbose := newFlagSet("decode", stderr)
	var typeName, format string
	var strict bool
	var vf validationFlags
	fs.StringVar(&typeName, "type", "", "datatype name of every value in the document")
	fs.StringVar(&format, "format", "", "input format: json or yaml (default from file extension)")
	fs.BoolVar(&strict, "strict", false, "report duplicate keys")
	vf.register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if typeName == "" || fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	lg := logger(stderr, *verbose)
	if _, err := oscaltypes.Lookup(typeName); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	target := documentTargets[typeName]
	path := fs.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		lg.Error("reading input", "path", path, "error", err)
		return 1
	}
	if format == "" {
		format = formatFromExt(path)
	}
	opts := []oscaltypes.DecodeOption{
		oscaltypes.WithValidation(vf.options()...),
		oscaltypes.WithDuplicateKeys(strict),
	}
	v := target()
	switch format {
	case "json":
		err = oscaltypes.DecodeJSON(data, v, opts...)
	case "yaml":
		err = oscaltypes.DecodeYAML(data, v, opts...)
	default:
		fmt.Fprintf(stderr, "unknown format %q\n", format)
		return 2
	}
	if err == nil {
		lg.Debug("document accepted", "path", path, "type", typeName)
		fmt.Fprintln(stdout, "ok")
		return 0
	}
	iss, ok := oscaltypes.AsIssues(err)
	if !ok {
		lg.Error("decode", "error", err)
		return 1
	}
	for _, is := range iss {
		lg.Debug("issue", "issue", is)
		if line, ok := is.Params["line"]; ok {
			fmt.Fprintf(stdout, "%s\t%s\tline %v\t%s\n", is.Path, is.Code, line, is.Message)
			continue
		}
		fmt.Fprintf(stdout, "%s\t%s\t%s\n", is.Path, is.Code, is.Message)
	}
	return 1
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "json"
}

func mapOf[T any]() any { return new(map[string]T) }

// documentTargets builds the decode target for each datatype name.
var documentTargets = map[string]func() any{
	"BooleanDatatype":              mapOf[oscaltypes.Boolean],
	"IntegerDatatype":              mapOf[oscaltypes.Integer],
	"NonNegativeIntegerDatatype":   mapOf[oscaltypes.NonNegativeInteger],
	"PositiveIntegerDatatype":      mapOf[oscaltypes.PositiveInteger],
	"DecimalDatatype":              mapOf[oscaltypes.Decimal],
	"StringDatatype":               mapOf[oscaltypes.String],
	"Base64Datatype":               mapOf[oscaltypes.Base64],
	"EmailAddressDatatype":         mapOf[oscaltypes.EmailAddress],
	"HostnameDatatype":             mapOf[oscaltypes.Hostname],
	"IPV4AddressDatatype":          mapOf[oscaltypes.IPv4Address],
	"IPV6AddressDatatype":          mapOf[oscaltypes.IPv6Address],
	"NCNameDatatype":               mapOf[oscaltypes.NCName],
	"TokenDatatype":                mapOf[oscaltypes.Token],
	"DateDatatype":                 mapOf[oscaltypes.Date],
	"DateTimeDatatype":             mapOf[oscaltypes.DateTime],
	"DateTimeWithTimezoneDatatype": mapOf[oscaltypes.DateTimeWithTimezone],
	"DayTimeDurationDatatype":      mapOf[oscaltypes.DayTimeDuration],
	"YearMonthDurationDatatype":    mapOf[oscaltypes.YearMonthDuration],
	"URIDatatype":                  mapOf[oscaltypes.URI],
	"URIReferenceDatatype":         mapOf[oscaltypes.URIReference],
	"UUIDDatatype":                 mapOf[oscaltypes.UUID],
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
