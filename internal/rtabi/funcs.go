// Package rtabi defines the Java runtime surface that generated programs
// bind to: the builtin calls Easy rewrites and the names the generated
// class must use.
package rtabi

// Host functions called by generated code
const (
	FnPrintln = "System.out.println"
	FnPrint   = "System.out.print"
	FnSqrt    = "Math.sqrt"
)

// Builtin describes an Easy function that lowers to a host call.
type Builtin struct {
	Name   string // name in Easy source
	Host   string // Java callee emitted instead
	Concat bool   // several arguments are joined into one string argument
}

// builtins lists every rewritten call. Other calls keep their name.
var builtins = []Builtin{
	{Name: "println", Host: FnPrintln, Concat: true},
	{Name: "print", Host: FnPrint, Concat: true},
	{Name: "sqrt", Host: FnSqrt},
}

// Builtins returns the rewritten calls in a fixed order.
func Builtins() []Builtin {
	out := make([]Builtin, len(builtins))
	copy(out, builtins)
	return out
}

// LookupBuiltin returns the builtin for an Easy function name.
func LookupBuiltin(name string) (Builtin, bool) {
	for _, b := range builtins {
		if b.Name == name {
			return b, true
		}
	}
	return Builtin{}, false
}
