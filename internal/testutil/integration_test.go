package testutil

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestBinaryExitCodes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}
	bin := BuildBinary(t)
	valid := WriteDocument(t, Sample)
	broken := WriteDocument(t, "---\ntitle: [unclosed\n---\n# Heading\n")

	cases := []struct {
		name   string
		args   []string
		env    []string
		code   int
		stderr string
	}{
		{name: "no file", args: nil, code: 2, stderr: "FILE"},
		{name: "two files", args: []string{valid, valid}, code: 2, stderr: "FILE"},
		{name: "unknown flag", args: []string{"-bogus", valid}, code: 2},
		{name: "bad page size", args: []string{"-page-size", "0", valid}, code: 2, stderr: "page-size"},
		{name: "bad env debounce", args: []string{valid}, env: []string{"MQT_DEBOUNCE=-1s"}, code: 2, stderr: "debounce"},
		{name: "missing file", args: []string{filepath.Join(t.TempDir(), "nope.md")}, code: 1, stderr: "nope.md"},
		{name: "malformed front matter", args: []string{broken}, code: 1, stderr: "front matter"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			run := RunBinary(t, bin, tc.env, tc.args...)
			if run.Code != tc.code {
				t.Fatalf("expected exit %d, got %d (stderr %q)", tc.code, run.Code, run.Stderr)
			}
			if tc.stderr != "" && !strings.Contains(run.Stderr, tc.stderr) {
				t.Fatalf("expected stderr to mention %q, got %q", tc.stderr, run.Stderr)
			}
		})
	}
}
