package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/kosmodev/ctxavail/internal/contract"
)

type Mode string

const (
	ModeAuto  Mode = "auto"
	ModeJSON  Mode = "json"
	ModeJSONL Mode = "jsonl"
	ModePlain Mode = "plain"
)

type Printer struct {
	Mode          Mode
	Command       string
	Fields        []string
	Quiet         bool
	NoColor       bool
	SchemaVersion string
	Out           io.Writer
	Err           io.Writer
}

func (p Printer) Success(data any, meta map[string]any, warnings []string) error {
	switch p.Mode {
	case ModeJSON:
		env := contract.SuccessEnvelope{
			SchemaVersion: p.schemaVersion(),
			Command:       p.Command,
			GeneratedAt:   time.Now().UTC(),
			Data:          data,
			Meta:          meta,
			Warnings:      warnings,
		}
		enc := json.NewEncoder(p.outWriter())
		enc.SetIndent("", "  ")
		return enc.Encode(env)
	case ModeJSONL:
		v := reflect.ValueOf(data)
		if v.IsValid() && v.Kind() == reflect.Slice {
			enc := json.NewEncoder(p.outWriter())
			for i := 0; i < v.Len(); i++ {
				if err := enc.Encode(v.Index(i).Interface()); err != nil {
					return err
				}
			}
			return nil
		}
		return json.NewEncoder(p.outWriter()).Encode(data)
	default:
		return p.printPlain(data)
	}
}

func (p Printer) Error(code contract.ErrorCode, message, hint string) error {
	if p.Mode == ModeJSON || p.Mode == ModeJSONL {
		env := contract.ErrorEnvelope{
			SchemaVersion: p.schemaVersion(),
			Error:         contract.ErrorBody{Code: code, Message: message, Hint: hint},
		}
		enc := json.NewEncoder(p.errWriter())
		enc.SetIndent("", "  ")
		return enc.Encode(env)
	}
	if hint != "" {
		_, _ = fmt.Fprintf(p.errWriter(), "%s: %s\nhint: %s\n", p.errorLabel(), message, hint)
		return nil
	}
	_, _ = fmt.Fprintf(p.errWriter(), "%s: %s\n", p.errorLabel(), message)
	return nil
}

func (p Printer) schemaVersion() string {
	if p.SchemaVersion == "" {
		return contract.SchemaVersion
	}
	return p.SchemaVersion
}

func (p Printer) printPlain(data any) error {
	v := reflect.ValueOf(data)
	if !v.IsValid() || (v.Kind() == reflect.Slice && v.Len() == 0) {
		if !p.Quiet {
			_, _ = fmt.Fprintln(p.outWriter(), "no results")
		}
		return nil
	}
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			if err := p.printPlainRecord(v.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	}
	return p.printPlainRecord(data)
}

// printPlainRecord renders one record in plain mode: a summary line of its
// scalar fields, followed by one indented line per entry of any nested
// struct-slice field. An AvailabilityResult nests its Conflicts and
// SuggestedSlots inside the decision it reports, unlike the teacher's flat
// Event rows, so a single tab-joined line can no longer carry the whole
// record — the nested rows give a reader the conflict/slot breakdown
// instead of a Go-syntax dump of the slice.
func (p Printer) printPlainRecord(v any) error {
	w := p.outWriter()
	if _, err := fmt.Fprintln(w, flatten(v, p.Fields)); err != nil {
		return err
	}
	if len(p.Fields) > 0 {
		return nil
	}
	for _, row := range nestedRows(v) {
		if _, err := fmt.Fprintln(w, row); err != nil {
			return err
		}
	}
	return nil
}

// nestedRows walks v's exported struct-slice fields (Conflicts,
// SuggestedSlots) and renders each element as its own indented, compact
// JSON line labeled by the field's JSON tag.
func nestedRows(v any) []string {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	var rows []string
	rt := rv.Type()
	for i := 0; i < rv.NumField(); i++ {
		fv := rv.Field(i)
		if fv.Kind() != reflect.Slice || fv.Type().Elem().Kind() != reflect.Struct {
			continue
		}
		label := jsonFieldName(rt.Field(i))
		for j := 0; j < fv.Len(); j++ {
			b, _ := json.Marshal(fv.Index(j).Interface())
			rows = append(rows, fmt.Sprintf("  %s: %s", label, string(b)))
		}
	}
	return rows
}

func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return strings.ToLower(f.Name)
	}
	name := strings.Split(tag, ",")[0]
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	return name
}

func (p Printer) outWriter() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return os.Stdout
}

func (p Printer) errWriter() io.Writer {
	if p.Err != nil {
		return p.Err
	}
	return os.Stderr
}

func (p Printer) errorLabel() string {
	if p.colorsEnabled() {
		return "\x1b[31merror\x1b[0m"
	}
	return "error"
}

func (p Printer) colorsEnabled() bool {
	if p.NoColor {
		return false
	}
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv("TERM")), "dumb") {
		return false
	}
	if f, ok := p.errWriter().(*os.File); ok {
		if info, err := f.Stat(); err == nil {
			return info.Mode()&os.ModeCharDevice != 0
		}
	}
	return false
}

func flatten(v any, fields []string) string {
	if len(fields) == 0 {
		return scalarSummary(v)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		b, _ := json.Marshal(v)
		return string(b)
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		fv := rv.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, strings.ReplaceAll(f, "_", "")) || strings.EqualFold(name, f)
		})
		if !fv.IsValid() {
			parts = append(parts, "")
			continue
		}
		parts = append(parts, fmt.Sprint(fv.Interface()))
	}
	return strings.Join(parts, "\t")
}

// scalarSummary JSON-encodes v with any struct-slice field omitted — those
// render as their own indented rows via nestedRows instead of inline
// Go-slice syntax or a duplicated nested JSON blob.
func scalarSummary(v any) string {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "null"
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		b, _ := json.Marshal(v)
		return string(b)
	}
	rt := rv.Type()
	summary := make(map[string]any, rv.NumField())
	for i := 0; i < rv.NumField(); i++ {
		fv := rv.Field(i)
		if fv.Kind() == reflect.Slice && fv.Type().Elem().Kind() == reflect.Struct {
			continue
		}
		summary[jsonFieldName(rt.Field(i))] = fv.Interface()
	}
	b, _ := json.Marshal(summary)
	return string(b)
}
