// Package main implements the Easy compiler entry point.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/easy-lang/easyc/internal/codegen"
	"github.com/easy-lang/easyc/internal/diag"
	"github.com/easy-lang/easyc/internal/rtabi"
	"github.com/easy-lang/easyc/internal/syntax"
)

// Compiler flags
var (
	emitTokens  = flag.Bool("emit-tokens", false, "Output token stream")
	emitAST     = flag.Bool("emit-ast", false, "Output AST")
	astFormat   = flag.String("ast-format", "text", "AST output format (text or json)")
	showPos     = flag.Bool("show-pos", false, "Show source positions in AST output")
	output      = flag.String("o", "", "Output file")
	className   = flag.String("class", "", "Name of the generated class (default: input file name)")
	runJavac    = flag.Bool("javac", true, "Compile the generated file with javac")
	trace       = flag.Bool("trace", false, "Output timing trace")
	interactive = flag.Bool("i", false, "Read programs interactively")
	doctor      = flag.Bool("doctor", false, "Check toolchain")
	version     = flag.Bool("version", false, "Print version")
)

// Version information
const Version = "0.1.0-dev"

// Exit codes
const (
	exitOK          = 0
	exitFailure     = 1 // bad invocation, unreadable input, internal error
	exitCompileErrs = 4 // scan or parse errors in the input
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Easy Compiler %s\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: easyc [options] <file%s>\n\n", rtabi.SourceExt)
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("easyc version %s\n", Version)
		fmt.Printf("go version %s\n", runtime.Version())
		os.Exit(exitOK)
	}

	if *doctor {
		os.Exit(runDoctor())
	}

	if *interactive {
		os.Exit(runInteractive())
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "error: no input file")
		fmt.Fprintf(os.Stderr, "usage: easyc [options] <file%s>\n", rtabi.SourceExt)
		os.Exit(exitFailure)
	}

	filename := args[0]
	if filepath.Ext(filename) != rtabi.SourceExt {
		fmt.Fprintf(os.Stderr, "error: %s: input must have the %s extension\n", filename, rtabi.SourceExt)
		os.Exit(exitFailure)
	}

	// Handle -emit-tokens
	if *emitTokens {
		os.Exit(runEmitTokens(filename))
	}

	// Handle -emit-ast
	if *emitAST {
		os.Exit(runEmitAST(filename))
	}

	os.Exit(runCompile(filename))
}

// traced prints the time spent in phase when -trace is set.
func traced(phase string, start time.Time) {
	if *trace {
		fmt.Fprintf(os.Stderr, "trace: %-10s %v\n", phase, time.Since(start))
	}
}

// parseFile parses filename, reporting diagnostics to the returned Reporter.
func parseFile(filename string) (*syntax.Program, *diag.Reporter, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	start := time.Now()
	reporter := diag.NewReporter()
	prog := syntax.NewParser(filename, f, reporter).Parse()
	traced("scan+parse", start)
	return prog, reporter, nil
}

// checkParse reports diagnostics and returns the exit code for a parse
// result, or -1 when prog may be used.
func checkParse(prog *syntax.Program, reporter *diag.Reporter) int {
	if reporter.HasErrors() {
		if err := reporter.Report(os.Stderr); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		return exitCompileErrs
	}
	if prog == nil {
		// A failed parse always reports an error.
		fmt.Fprintln(os.Stderr, "internal error: parser returned no program and no errors")
		return exitFailure
	}
	return -1
}

// runCompile translates filename to Java, writes the result next to the
// input and optionally compiles it with javac.
func runCompile(filename string) int {
	prog, reporter, err := parseFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitFailure
	}
	if code := checkParse(prog, reporter); code >= 0 {
		return code
	}

	class := *className
	if class == "" {
		class = codegen.ClassName(filename)
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := codegen.Generate(&buf, prog, &codegen.Config{ClassName: class}); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitFailure
	}
	traced("generate", start)

	// javac requires a public class to live in a file of the same name.
	outPath := *output
	if outPath == "" {
		outPath = filepath.Join(filepath.Dir(filename), class+rtabi.JavaExt)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitFailure
	}

	if !*runJavac {
		return exitOK
	}

	start = time.Now()
	defer traced("javac", start)
	if err := compileJava(outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitFailure
	}
	return exitOK
}

// errNoJavac is returned when javac cannot be found on PATH.
var errNoJavac = errors.New(rtabi.Javac + " not found in PATH (use -javac=false to skip compilation)")

// compileJava runs javac on path, forwarding its output to stderr.
func compileJava(path string) error {
	javac, err := exec.LookPath(rtabi.Javac)
	if err != nil {
		return errNoJavac
	}

	cmd := exec.Command(javac, path)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", rtabi.Javac, path, err)
	}
	return nil
}

// runEmitAST parses the input file and outputs the AST.
func runEmitAST(filename string) int {
	prog, reporter, err := parseFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitFailure
	}
	if code := checkParse(prog, reporter); code >= 0 {
		return code
	}

	conf := &syntax.PrintConfig{ShowPositions: *showPos}
	switch *astFormat {
	case "json":
		if err := syntax.FprintJSON(os.Stdout, prog, conf); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitFailure
		}
	case "text":
		syntax.Fprint(os.Stdout, prog, conf)
	default:
		fmt.Fprintf(os.Stderr, "error: unknown AST format %q (want text or json)\n", *astFormat)
		return exitFailure
	}
	return exitOK
}

// runEmitTokens scans the input file and prints all tokens with positions.
func runEmitTokens(filename string) int {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitFailure
	}
	defer f.Close()

	reporter := diag.NewReporter()
	s := syntax.NewScanner(filename, f, reporter)

	// Print header
	fmt.Printf("%-20s %-12s %s\n", "POSITION", "TOKEN", "LITERAL")
	fmt.Printf("%-20s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 20))

	for {
		tok := s.Scan()
		fmt.Printf("%-20s %-12s %s\n", tok.Pos, tok.Kind, formatLiteral(tok.Text))
		if tok.Kind.IsEOF() {
			break
		}
	}

	if reporter.HasErrors() {
		fmt.Println()
		if err := reporter.Report(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		return exitCompileErrs
	}
	return exitOK
}

// formatLiteral formats a literal for display, escaping special characters.
func formatLiteral(lit string) string {
	if lit == "" {
		return `""`
	}

	var b strings.Builder
	b.WriteRune('"')
	for _, r := range lit {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune('"')
	return b.String()
}

// runDoctor checks the toolchain and returns an exit code.
func runDoctor() int {
	fmt.Println("Easy Toolchain Doctor")
	fmt.Println("=====================")
	fmt.Println()

	fmt.Printf("Go:     %s ✓\n", runtime.Version())

	allOk := true

	// Check javac (required)
	javacVersion, javacOk := checkTool(rtabi.Javac, "-version")
	fmt.Printf("javac:  %s", javacVersion)
	if javacOk {
		fmt.Println(" ✓")
	} else {
		fmt.Println(" ✗ (not found)")
		allOk = false
	}

	// Check java (optional, needed only to run programs)
	javaVersion, javaOk := checkTool(rtabi.Java, "-version")
	fmt.Printf("java:   %s", javaVersion)
	if javaOk {
		fmt.Println(" ✓")
	} else {
		fmt.Println(" (optional, not found)")
	}

	fmt.Println()
	if allOk {
		fmt.Println("All required tools available!")
		return exitOK
	}

	fmt.Println("Some required tools are missing.")
	fmt.Println("Install a JDK, or run easyc with -javac=false.")
	return exitFailure
}

// checkTool runs a tool with the given arguments and returns the first line
// of its output. JDK tools print their version to stderr, so both streams
// are read.
func checkTool(name string, args ...string) (string, bool) {
	cmd := exec.Command(name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", false
	}

	line, _, _ := strings.Cut(string(out), "\n")
	line = strings.TrimSpace(line)
	if len(line) > 60 {
		line = line[:57] + "..."
	}
	return line, true
}

// ----------------------------------------------------------------------------
// Interactive mode

const (
	historyFile = ".easyc_history"
	promptMain  = "easy> "
	promptCont  = "....> "
)

// runInteractive reads programs from the terminal, one at a time, and
// prints the Java each one lowers to.
func runInteractive() int {
	fmt.Printf("Easy Compiler %s, interactive mode. Type :quit to exit.\n", Version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	class := *className
	if class == "" {
		class = rtabi.DefaultClass
	}

	for {
		src, ok := readProgram(ln.Prompt)
		if !ok {
			fmt.Println()
			return exitOK
		}

		switch strings.TrimSpace(src) {
		case "":
			continue
		case ":quit", ":q":
			return exitOK
		}

		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		translateSource(os.Stdout, os.Stderr, src, class)
	}
}

// readProgram collects lines until they form a complete program or fail
// for a reason other than missing input. ok is false at end of input.
func readProgram(prompt func(string) (string, error)) (src string, ok bool) {
	var b strings.Builder

	for {
		p := promptMain
		if b.Len() > 0 {
			p = promptCont
		}
		line, err := prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl-C discards the pending program.
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		trimmed := strings.TrimSpace(src)
		if trimmed == "" || strings.HasPrefix(trimmed, ":") {
			return src, true
		}

		probe := syntax.NewParser("<stdin>", strings.NewReader(src), nil)
		if probe.Parse() != nil || !probe.Incomplete() {
			return src, true
		}
	}
}

// translateSource parses src and writes the Java it lowers to, or the
// diagnostics, and returns the exit code a file compilation would use.
func translateSource(stdout, stderr io.Writer, src, class string) int {
	reporter := diag.NewReporter()
	prog := syntax.NewParser("<stdin>", strings.NewReader(src), reporter).Parse()
	if reporter.HasErrors() {
		_ = reporter.Report(stderr)
		return exitCompileErrs
	}
	if prog == nil {
		fmt.Fprintln(stderr, "internal error: parser returned no program and no errors")
		return exitFailure
	}

	if err := codegen.Generate(stdout, prog, &codegen.Config{ClassName: class}); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailure
	}
	return exitOK
}
