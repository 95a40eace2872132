package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/easy-lang/easyc/internal/codegen"
	"github.com/easy-lang/easyc/internal/diag"
	"github.com/easy-lang/easyc/internal/rtabi"
	"github.com/easy-lang/easyc/internal/syntax"
)

// TestE2E runs end-to-end tests for all .ez files in testdata/.
// Each test:
//  1. Parses the program and lowers it to Java in-process
//  2. Compares the Java text against the .java golden file
//  3. If a JDK is installed, compiles and runs the class and compares
//     its stdout against the .out golden file
func TestE2E(t *testing.T) {
	testFiles, err := filepath.Glob("testdata/*" + rtabi.SourceExt)
	if err != nil {
		t.Fatal(err)
	}
	if len(testFiles) == 0 {
		t.Fatal("no .ez test files found in testdata/")
	}

	haveJDK := true
	for _, tool := range []string{rtabi.Javac, rtabi.Java} {
		if _, err := exec.LookPath(tool); err != nil {
			haveJDK = false
		}
	}

	for _, testFile := range testFiles {
		name := strings.TrimSuffix(filepath.Base(testFile), rtabi.SourceExt)
		t.Run(name, func(t *testing.T) {
			class := codegen.ClassName(testFile)
			java := compile(t, testFile, class)

			golden := readGolden(t, strings.TrimSuffix(testFile, rtabi.SourceExt)+rtabi.JavaExt)
			if diff := cmp.Diff(golden, java); diff != "" {
				t.Fatalf("generated Java mismatch (-want +got):\n%s", diff)
			}

			if !haveJDK {
				t.Skip("javac/java not found, skipping execution")
			}
			want := readGolden(t, strings.TrimSuffix(testFile, rtabi.SourceExt)+".out")
			if got := runJava(t, class, java); got != want {
				t.Errorf("output mismatch:\ngot:  %q\nwant: %q", got, want)
			}
		})
	}
}

// compile parses path and returns the Java translation.
func compile(t *testing.T, path, class string) string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	reporter := diag.NewReporter()
	prog := syntax.NewParser(path, f, reporter).Parse()
	if err := reporter.Err(); err != nil {
		t.Fatalf("diagnostics:\n%v", err)
	}

	java, err := codegen.GenerateString(prog, &codegen.Config{ClassName: class})
	if err != nil {
		t.Fatalf("codegen: %v", err)
	}
	return java
}

// runJava compiles the class with javac in a temp directory, runs it and
// returns its stdout.
func runJava(t *testing.T, class, java string) string {
	t.Helper()

	dir := t.TempDir()
	src := filepath.Join(dir, class+rtabi.JavaExt)
	if err := os.WriteFile(src, []byte(java), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cmd := exec.Command(rtabi.Javac, src)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("javac failed:\n%s\n%v", out, err)
	}

	var stdout, stderr bytes.Buffer
	cmd = exec.Command(rtabi.Java, "-cp", dir, class)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("java failed: %v\n%s", err, stderr.String())
	}
	return stdout.String()
}

func readGolden(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}
	return string(data)
}

// TestE2EDiagnostics checks that broken programs are rejected with the
// reported diagnostics and produce no Java.
func TestE2EDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "lexical and syntax errors",
			src:  "main\n  x = 1 $ 2\n  y = 'open",
			want: "SCAN ERROR(S):\n" +
				"\t-At line 2: unrecognized character '$' in input\n" +
				"\t-At line 3: unterminated string\n" +
				"PARSE ERROR(S):\n" +
				"\t-At line 2: expected statement but found ERROR \"ASCII: 36\"\n",
		},
		{
			name: "no main block",
			src:  "function f()\nend\n",
			want: "PARSE ERROR(S):\n\t-At line 3: missing main block\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reporter := diag.NewReporter()
			prog := syntax.NewParser("bad.ez", strings.NewReader(tt.src), reporter).Parse()
			if prog != nil {
				t.Fatal("Parse returned a program for broken input")
			}

			var b strings.Builder
			if err := reporter.Report(&b); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, b.String()); diff != "" {
				t.Errorf("report mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
