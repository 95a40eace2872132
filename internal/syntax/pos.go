package syntax

import "fmt"

// Pos is the source location of a token or node. Diagnostics only use the
// line; the column orders nodes that share a line and shows up in dumps.
// The zero Pos is invalid.
type Pos struct {
	filename string
	line     uint32 // 1-based
	col      uint32 // 1-based, in runes
}

// NewPos returns the position at line and col of filename.
func NewPos(filename string, line, col uint32) Pos {
	return Pos{filename: filename, line: line, col: col}
}

// String formats p as "file:line:col", or "line:col" without a file name.
func (p Pos) String() string {
	if p.filename == "" {
		return fmt.Sprintf("%d:%d", p.line, p.col)
	}
	return fmt.Sprintf("%s:%d:%d", p.filename, p.line, p.col)
}

// IsValid reports whether p refers to a real line.
func (p Pos) IsValid() bool { return p.line > 0 }

func (p Pos) Line() uint32     { return p.line }
func (p Pos) Col() uint32      { return p.col }
func (p Pos) Filename() string { return p.filename }

// Before reports whether p comes earlier in the source than q.
// File names are not compared.
func (p Pos) Before(q Pos) bool {
	if p.line != q.line {
		return p.line < q.line
	}
	return p.col < q.col
}
