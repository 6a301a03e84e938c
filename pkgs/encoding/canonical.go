package encoding

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/aledsdavies/shparse/pkgs/ast"
)

// CanonicalVersion is bumped whenever the canonical layout changes, so
// fingerprints from different layouts never collide.
const CanonicalVersion = 1

// Document is the encoder-neutral form of a ParsedCommand. Every argument
// carries an explicit kind tag so YAML and CBOR round-trip without the
// custom JSON marshalers of the ast package.
type Document struct {
	Version   uint8      `json:"version" yaml:"version"`
	Pipelines []Pipeline `json:"pipelines" yaml:"pipelines"`
}

type Pipeline struct {
	Commands []Command `json:"commands" yaml:"commands"`
	Operator string    `json:"operator,omitempty" yaml:"operator,omitempty"`
}

type Command struct {
	Name         string        `json:"command" yaml:"command"`
	Args         []Arg         `json:"args" yaml:"args"`
	Redirections []Redirection `json:"redirections" yaml:"redirections"`
	Background   bool          `json:"background" yaml:"background"`
	Subshell     bool          `json:"subshell" yaml:"subshell"`
}

// Arg is a tagged argument. Only the fields of its kind are set.
type Arg struct {
	Kind      string   `json:"kind" yaml:"kind"` // word, variable, command_substitution, brace_expansion
	Text      string   `json:"text,omitempty" yaml:"text,omitempty"`
	Name      string   `json:"name,omitempty" yaml:"name,omitempty"`
	Modifiers string   `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Values    []string `json:"values,omitempty" yaml:"values,omitempty"`
}

type Redirection struct {
	Kind       string `json:"type" yaml:"type"`
	Descriptor *int   `json:"descriptor,omitempty" yaml:"descriptor,omitempty"`
	Target     string `json:"target" yaml:"target"`
	Content    string `json:"content,omitempty" yaml:"content,omitempty"`
	Combined   bool   `json:"combined,omitempty" yaml:"combined,omitempty"`
}

// Canonicalize converts a ParsedCommand into its canonical document.
func Canonicalize(pc *ast.ParsedCommand) (*Document, error) {
	doc := &Document{Version: CanonicalVersion, Pipelines: []Pipeline{}}
	if pc == nil {
		return doc, nil
	}

	for i, p := range pc.Pipelines {
		cp := Pipeline{Commands: make([]Command, len(p.Commands)), Operator: string(p.Operator)}
		for j, c := range p.Commands {
			cc, err := canonicalizeCommand(c)
			if err != nil {
				return nil, fmt.Errorf("pipeline %d command %d: %w", i, j, err)
			}
			cp.Commands[j] = cc
		}
		doc.Pipelines = append(doc.Pipelines, cp)
	}
	return doc, nil
}

func canonicalizeCommand(c ast.Command) (Command, error) {
	cc := Command{
		Name:         c.Name,
		Args:         make([]Arg, len(c.Args)),
		Redirections: make([]Redirection, len(c.Redirections)),
		Background:   c.Background,
		Subshell:     c.Subshell,
	}

	for i, arg := range c.Args {
		switch a := arg.(type) {
		case ast.Word:
			cc.Args[i] = Arg{Kind: "word", Text: string(a)}
		case ast.Variable:
			cc.Args[i] = Arg{Kind: "variable", Name: a.Name, Modifiers: a.Modifiers}
		case ast.CommandSubstitution:
			cc.Args[i] = Arg{Kind: "command_substitution", Text: a.Command}
		case ast.BraceExpansion:
			cc.Args[i] = Arg{Kind: "brace_expansion", Values: append([]string{}, a.Values...)}
		default:
			return cc, fmt.Errorf("arg %d: unknown argument type %T", i, arg)
		}
	}

	for i, r := range c.Redirections {
		cr := Redirection{
			Kind:     r.Kind.String(),
			Target:   r.Target,
			Content:  r.Content,
			Combined: r.Combined,
		}
		if r.Descriptor != nil {
			cr.Descriptor = ast.FD(*r.Descriptor)
		}
		cc.Redirections[i] = cr
	}

	return cc, nil
}

// MarshalBinary produces deterministic CBOR encoding of the document.
func (d *Document) MarshalBinary() ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("failed to create CBOR encoder: %w", err)
	}

	// Alias so the encoder does not call MarshalBinary recursively
	type documentAlias Document
	data, err := encMode.Marshal((*documentAlias)(d))
	if err != nil {
		return nil, fmt.Errorf("CBOR encoding failed: %w", err)
	}
	return data, nil
}

// Fingerprint hashes the canonical CBOR of pc with BLAKE2b-256.
// Returns "blake2b:<hex>". Structurally equal commands share a fingerprint.
func Fingerprint(pc *ast.ParsedCommand) (string, error) {
	doc, err := Canonicalize(pc)
	if err != nil {
		return "", err
	}
	data, err := doc.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("failed to serialize command for fingerprint: %w", err)
	}
	return fmt.Sprintf("blake2b:%x", blake2b.Sum256(data)), nil
}
