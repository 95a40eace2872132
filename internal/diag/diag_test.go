package diag

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReporterEmpty(t *testing.T) {
	var r Reporter
	if r.HasErrors() {
		t.Error("zero Reporter has errors")
	}
	if err := r.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}

	var b strings.Builder
	if err := r.Report(&b); err != nil {
		t.Fatal(err)
	}
	if b.Len() != 0 {
		t.Errorf("Report wrote %q for no diagnostics", b.String())
	}
}

func TestReporterReport(t *testing.T) {
	tests := []struct {
		name string
		add  func(r *Reporter)
		want string
	}{
		{
			name: "scan only",
			add: func(r *Reporter) {
				r.AddScanError(1, "unexpected character '@'")
			},
			want: "SCAN ERROR(S):\n\t-At line 1: unexpected character '@'\n",
		},
		{
			name: "parse only",
			add: func(r *Reporter) {
				r.AddParseError(3, "missing main block")
			},
			want: "PARSE ERROR(S):\n\t-At line 3: missing main block\n",
		},
		{
			name: "scan errors listed before parse errors",
			add: func(r *Reporter) {
				r.AddScanError(1, "a")
				r.AddParseError(2, "b")
				r.AddScanError(4, "c")
			},
			want: "SCAN ERROR(S):\n\t-At line 1: a\n\t-At line 4: c\n" +
				"PARSE ERROR(S):\n\t-At line 2: b\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReporter()
			tt.add(r)

			var b strings.Builder
			if err := r.Report(&b); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, b.String()); diff != "" {
				t.Errorf("Report mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReporterCounts(t *testing.T) {
	r := NewReporter()
	r.AddScanError(1, "x")
	r.AddScanError(2, "y")
	r.AddParseError(2, "z")

	if got := r.ScanErrors(); got != 2 {
		t.Errorf("ScanErrors() = %d, want 2", got)
	}
	if got := r.ParseErrors(); got != 1 {
		t.Errorf("ParseErrors() = %d, want 1", got)
	}

	want := []Diagnostic{
		{Kind: ScanError, Line: 1, Msg: "x"},
		{Kind: ScanError, Line: 2, Msg: "y"},
		{Kind: ParseError, Line: 2, Msg: "z"},
	}
	got := r.Diagnostics()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Diagnostics mismatch (-want +got):\n%s", diff)
	}

	// The returned slice is a copy.
	got[0].Msg = "changed"
	if r.Diagnostics()[0].Msg != "x" {
		t.Error("Diagnostics shares storage with the Reporter")
	}
}

func TestReporterErr(t *testing.T) {
	r := NewReporter()
	r.AddParseError(5, "expected expression but found EOF")

	err := r.Err()
	var list List
	if !errors.As(err, &list) {
		t.Fatalf("Err() = %T, want List", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1", len(list))
	}
	if got, want := err.Error(), "At line 5: expected expression but found EOF"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestListError(t *testing.T) {
	tests := []struct {
		list List
		want string
	}{
		{nil, "no errors"},
		{List{{Kind: ScanError, Line: 1, Msg: "a"}}, "At line 1: a"},
		{
			List{{Kind: ScanError, Line: 1, Msg: "a"}, {Kind: ParseError, Line: 2, Msg: "b"}},
			"At line 1: a\nAt line 2: b",
		},
	}
	for _, tt := range tests {
		if got := tt.list.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{
		ScanError:  "scan error",
		ParseError: "parse error",
		Kind(9):    "Kind(9)",
	} {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
