package rtabi

// Java spellings of the built-in Easy types
const (
	JavaInt     = "int"
	JavaBoolean = "boolean"
	JavaVoid    = "void"
	JavaFloat   = "float"
)

// Generated class layout
const (
	// ClassHeader precedes the class name.
	ClassHeader = "public class"

	// MethodModifiers precede every generated method.
	MethodModifiers = "public static"

	// MainSignature is the entry point holding the Easy main block.
	MainSignature = "public static void main(String[] args)"

	// DefaultClass names the class when none can be derived.
	DefaultClass = "Main"
)

// File extensions
const (
	SourceExt = ".ez"
	JavaExt   = ".java"
	ClassExt  = ".class"
)

// Tools of the downstream toolchain
const (
	Javac = "javac"
	Java  = "java"
)

// reserved holds Java keywords and literals that cannot name a class.
var reserved = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true,
	"byte": true, "case": true, "catch": true, "char": true,
	"class": true, "const": true, "continue": true, "default": true,
	"do": true, "double": true, "else": true, "enum": true,
	"extends": true, "final": true, "finally": true, "float": true,
	"for": true, "goto": true, "if": true, "implements": true,
	"import": true, "instanceof": true, "int": true, "interface": true,
	"long": true, "native": true, "new": true, "package": true,
	"private": true, "protected": true, "public": true, "return": true,
	"short": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true,
	"throws": true, "transient": true, "try": true, "void": true,
	"volatile": true, "while": true, "true": true, "false": true,
	"null": true, "var": true, "record": true, "yield": true,
}

// IsReserved reports whether name is a Java keyword or literal.
func IsReserved(name string) bool {
	return reserved[name]
}
