// Package codegen lowers an Easy AST to Java source text.
//
// The output is a single public class whose main method holds the Easy
// main block; every Easy function becomes a public static method. Output
// is fully determined by the tree and the Config.
package codegen

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/easy-lang/easyc/internal/rtabi"
	"github.com/easy-lang/easyc/internal/syntax"
)

var (
	// ErrNilProgram is returned when there is no tree to lower.
	ErrNilProgram = errors.New("codegen: nil program")

	// ErrUnsupportedNode is returned for a node the generator cannot lower.
	ErrUnsupportedNode = errors.New("codegen: unsupported node")

	// ErrInvalidClassName is returned when Config.ClassName is not a Java identifier.
	ErrInvalidClassName = errors.New("codegen: invalid class name")
)

// Config controls the generated class.
type Config struct {
	ClassName string // name of the generated class; default "Main"
	Indent    string // one indentation step; default a tab
}

func (c *Config) normalize() {
	if c.ClassName == "" {
		c.ClassName = rtabi.DefaultClass
	}
	if c.Indent == "" {
		c.Indent = "\t"
	}
}

// generator holds the state of one lowering pass.
type generator struct {
	e    emitter
	conf Config
}

// Generate writes the Java translation of prog to w. A nil conf uses the
// defaults. The first write or lowering error is returned.
func Generate(w io.Writer, prog *syntax.Program, conf *Config) error {
	if prog == nil || prog.Main == nil {
		return ErrNilProgram
	}

	var c Config
	if conf != nil {
		c = *conf
	}
	c.normalize()
	if !IsJavaIdentifier(c.ClassName) {
		return fmt.Errorf("%w: %q", ErrInvalidClassName, c.ClassName)
	}

	g := &generator{e: emitter{w: w, indent: c.Indent}, conf: c}
	g.program(prog)
	return g.e.err
}

// GenerateString is like Generate but returns the text.
func GenerateString(prog *syntax.Program, conf *Config) (string, error) {
	var b strings.Builder
	if err := Generate(&b, prog, conf); err != nil {
		return "", err
	}
	return b.String(), nil
}

// unsupported records an ErrUnsupportedNode for n.
func (g *generator) unsupported(n syntax.Node, what string) {
	pos := "?"
	if n != nil {
		pos = n.Pos().String()
	}
	g.e.fail(fmt.Errorf("%w: %s at %s", ErrUnsupportedNode, what, pos))
}
