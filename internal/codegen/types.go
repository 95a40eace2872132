package codegen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/easy-lang/easyc/internal/rtabi"
	"github.com/easy-lang/easyc/internal/syntax"
)

// javaType maps an Easy type to its Java spelling.
func (g *generator) javaType(t syntax.Type) string {
	switch t := t.(type) {
	case *syntax.BaseType:
		switch t.Kind {
		case syntax.Void:
			return rtabi.JavaVoid
		case syntax.Int:
			return rtabi.JavaInt
		case syntax.Boolean:
			return rtabi.JavaBoolean
		case syntax.Float:
			return rtabi.JavaFloat
		}
		g.unsupported(t, "type "+t.Kind.String())
		return ""
	case *syntax.RefType:
		return t.Name.Value
	}
	g.unsupported(t, fmt.Sprintf("%T", t))
	return ""
}

// ClassName derives a Java class name from a source path: the base name
// up to its first dot, with characters Java does not allow in identifiers
// replaced by underscores.
func ClassName(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}

	var b strings.Builder
	for i, r := range base {
		switch {
		case isJavaLetter(r):
			b.WriteRune(r)
		case '0' <= r && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	name := b.String()
	switch {
	case name == "":
		return rtabi.DefaultClass
	case rtabi.IsReserved(name):
		return name + "_"
	}
	return name
}

// IsJavaIdentifier reports whether name can be used as a Java class name.
func IsJavaIdentifier(name string) bool {
	if name == "" || rtabi.IsReserved(name) {
		return false
	}
	for i, r := range name {
		if isJavaLetter(r) || i > 0 && '0' <= r && r <= '9' {
			continue
		}
		return false
	}
	return true
}

func isJavaLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_' || r == '$'
}
