// Package encoding serializes parse results for machines: JSON in the shape
// of the ast package, YAML and CBOR of the canonical document, and a Go
// literal dump for debugging.
package encoding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/kr/pretty"
	"gopkg.in/yaml.v3"

	"github.com/aledsdavies/shparse/pkgs/ast"
	"github.com/aledsdavies/shparse/pkgs/errors"
)

// Encoder writes a parse result to w
type Encoder func(w io.Writer, pc *ast.ParsedCommand) error

var encoders = map[string]Encoder{
	"json": encodeJSON,
	"yaml": encodeYAML,
	"cbor": encodeCBOR,
	"go":   encodeGo,
}

// Formats lists the registered format names, sorted
func Formats() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the encoder for format
func Lookup(format string) (Encoder, bool) {
	enc, ok := encoders[format]
	return enc, ok
}

// Encode writes pc to w in format. Unknown formats fail with an
// UNKNOWN_FORMAT error carrying a suggestion when one is close.
func Encode(w io.Writer, format string, pc *ast.ParsedCommand) error {
	enc, ok := Lookup(format)
	if !ok {
		known := Formats()
		return errors.NewUnknownFormatError(format, known, SuggestFormat(format, known))
	}
	if err := enc(w, pc); err != nil {
		return errors.NewEncodeError(format, err)
	}
	return nil
}

// MarshalJSON returns the indented JSON form of pc. Shell operators are
// not HTML-escaped.
func MarshalJSON(pc *ast.ParsedCommand) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeJSON(&buf, pc); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func encodeJSON(w io.Writer, pc *ast.ParsedCommand) error {
	if pc == nil {
		pc = ast.Parsed()
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(pc)
}

func encodeYAML(w io.Writer, pc *ast.ParsedCommand) error {
	doc, err := Canonicalize(pc)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func encodeCBOR(w io.Writer, pc *ast.ParsedCommand) error {
	doc, err := Canonicalize(pc)
	if err != nil {
		return err
	}
	data, err := doc.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func encodeGo(w io.Writer, pc *ast.ParsedCommand) error {
	_, err := fmt.Fprintf(w, "%# v\n", pretty.Formatter(pc))
	return err
}
