package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/mqt/internal/app"
)

func cleanEnv(t *testing.T) []string {
	t.Helper()
	return []string{"XDG_CONFIG_HOME=" + t.TempDir()}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs([]string{"doc.md"}, cleanEnv(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Path != "doc.md" {
		t.Fatalf("expected path doc.md, got %q", cfg.App.Path)
	}
	if cfg.App.Debounce != app.DefaultDebounce {
		t.Fatalf("expected default debounce, got %s", cfg.App.Debounce)
	}
	if cfg.App.PageSize != 10 {
		t.Fatalf("expected page size 10, got %d", cfg.App.PageSize)
	}
	if cfg.App.ShowDetail || cfg.App.Watch || cfg.Logging.Trace {
		t.Fatalf("expected boolean options off, got %+v", cfg)
	}
	if cfg.File != "" {
		t.Fatalf("expected no config file, got %q", cfg.File)
	}
}

func TestLoadArgsFlags(t *testing.T) {
	args := []string{"-debounce", "50ms", "-page-size", "3", "-detail", "-watch", "-width", "90", "-height", "30", "-trace", "-log-file", "x.log", "doc.md"}
	cfg, err := LoadArgs(args, cleanEnv(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := app.Config{Path: "doc.md", Debounce: 50 * time.Millisecond, PageSize: 3, ShowDetail: true, Watch: true, Width: 90, Height: 30}
	if cfg.App != want {
		t.Fatalf("expected %+v, got %+v", want, cfg.App)
	}
	if cfg.Logging.FilePath != "x.log" || !cfg.Logging.Trace {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
	if cfg.Flags["pageSize"] != "3" || cfg.Flags["debounce"] != "50ms" {
		t.Fatalf("unexpected flag map %v", cfg.Flags)
	}
	if len(cfg.Args) != len(args) {
		t.Fatalf("expected args preserved, got %v", cfg.Args)
	}
}

func TestLoadArgsEnvironment(t *testing.T) {
	env := append(cleanEnv(t), "MQT_DEBOUNCE=250ms", "MQT_PAGE_SIZE=7", "MQT_DETAIL=true", "MQT_LOG_FILE=/tmp/mqt-test.log")
	cfg, err := LoadArgs([]string{"doc.md"}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Debounce != 250*time.Millisecond || cfg.App.PageSize != 7 || !cfg.App.ShowDetail {
		t.Fatalf("expected env values applied, got %+v", cfg.App)
	}
	if cfg.Logging.FilePath != "/tmp/mqt-test.log" {
		t.Fatalf("expected env log file, got %q", cfg.Logging.FilePath)
	}
}

func TestLoadArgsPrecedence(t *testing.T) {
	path := writeConfig(t, "debounce = \"300ms\"\npage_size = 4\nwatch = true\n")
	env := append(cleanEnv(t), "MQT_CONFIG="+path, "MQT_PAGE_SIZE=6")
	cfg, err := LoadArgs([]string{"-debounce", "10ms", "doc.md"}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Debounce != 10*time.Millisecond {
		t.Fatalf("expected flag to win, got %s", cfg.App.Debounce)
	}
	if cfg.App.PageSize != 6 {
		t.Fatalf("expected env to beat file, got %d", cfg.App.PageSize)
	}
	if !cfg.App.Watch {
		t.Fatalf("expected file value when nothing overrides it")
	}
	if cfg.File != path {
		t.Fatalf("expected applied file %q, got %q", path, cfg.File)
	}
}

func TestLoadArgsConfigFlag(t *testing.T) {
	path := writeConfig(t, "show_detail = true\n")
	for _, args := range [][]string{
		{"-config", path, "doc.md"},
		{"--config=" + path, "doc.md"},
	} {
		cfg, err := LoadArgs(args, cleanEnv(t))
		if err != nil {
			t.Fatalf("unexpected error for %v: %v", args, err)
		}
		if !cfg.App.ShowDetail {
			t.Fatalf("expected config file applied for %v", args)
		}
	}
}

func TestLoadArgsDefaultConfigLocation(t *testing.T) {
	xdg := t.TempDir()
	if err := os.MkdirAll(filepath.Join(xdg, "mqt"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(xdg, "mqt", "config.toml"), []byte("page_size = 12\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadArgs([]string{"doc.md"}, []string{"XDG_CONFIG_HOME=" + xdg})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.PageSize != 12 {
		t.Fatalf("expected page size from default config, got %d", cfg.App.PageSize)
	}
}

func TestLoadArgsErrors(t *testing.T) {
	badFile := writeConfig(t, "colour = \"red\"\n")
	cases := []struct {
		name string
		args []string
		env  []string
		want string
	}{
		{name: "no file", args: nil, want: "FILE"},
		{name: "two files", args: []string{"a.md", "b.md"}, want: "FILE"},
		{name: "unknown flag", args: []string{"-bogus", "a.md"}, want: "bogus"},
		{name: "zero page size", args: []string{"-page-size", "0", "a.md"}, want: "page-size"},
		{name: "negative width", args: []string{"-width", "-1", "a.md"}, want: "width"},
		{name: "negative env debounce", args: []string{"a.md"}, env: []string{"MQT_DEBOUNCE=-1s"}, want: "debounce"},
		{name: "malformed env debounce", args: []string{"a.md"}, env: []string{"MQT_DEBOUNCE=soon"}, want: "debounce"},
		{name: "missing explicit config", args: []string{"-config", filepath.Join(t.TempDir(), "none.toml"), "a.md"}, want: "config file"},
		{name: "unknown config key", args: []string{"-config", badFile, "a.md"}, want: "colour"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadArgs(tc.args, append(cleanEnv(t), tc.env...))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestUsageListsFlags(t *testing.T) {
	usage := Usage()
	for _, want := range []string{"FILE", "-debounce", "-page-size", "-watch", "-log-file"} {
		if !strings.Contains(usage, want) {
			t.Fatalf("expected %q in usage, got:\n%s", want, usage)
		}
	}
}
