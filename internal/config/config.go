package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/mqt/internal/app"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	// File is the config file that was applied, if any.
	File  string
	Flags map[string]string
	Args  []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfig   = "MQT_CONFIG"
	envDebounce = "MQT_DEBOUNCE"
	envPageSize = "MQT_PAGE_SIZE"
	envDetail   = "MQT_DETAIL"
	envWatch    = "MQT_WATCH"
	envWidth    = "MQT_WIDTH"
	envHeight   = "MQT_HEIGHT"
	envTrace    = "MQT_TRACE"
	envLogFile  = "MQT_LOG_FILE"

	defaultPageSize = 10
)

// fileConfig mirrors the keys accepted in config.toml. Fields absent from the
// file keep the values they held before decoding.
type fileConfig struct {
	Debounce   string `toml:"debounce"`
	PageSize   int    `toml:"page_size"`
	ShowDetail bool   `toml:"show_detail"`
	Watch      bool   `toml:"watch"`
	Trace      bool   `toml:"trace"`
	LogFile    string `toml:"log_file"`
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Values resolve
// in the order flag, environment, config file, default.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	configPath, explicit := configFilePath(args, env)
	file := fileConfig{
		Debounce: app.DefaultDebounce.String(),
		PageSize: defaultPageSize,
	}
	applied, err := readConfigFile(configPath, explicit, &file)
	if err != nil {
		return Config{}, err
	}
	fileDebounce, err := time.ParseDuration(file.Debounce)
	if err != nil {
		return Config{}, fmt.Errorf("debounce in %s: %w", configPath, err)
	}
	envDebounceValue, err := envOrDuration(env, envDebounce, fileDebounce)
	if err != nil {
		return Config{}, err
	}

	fs := newFlagSet()
	fs.String("config", configPath, "path to a TOML config file")
	debounce := fs.Duration("debounce", envDebounceValue, "delay between the last query edit and its evaluation")
	pageSize := fs.Int("page-size", envOrInt(env, envPageSize, file.PageSize), "rows moved by page up and page down")
	detail := fs.Bool("detail", envOrBool(env, envDetail, file.ShowDetail), "show the detail pane on startup")
	watch := fs.Bool("watch", envOrBool(env, envWatch, file.Watch), "reload the document when it changes on disk")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, file.Trace), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, file.LogFile), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() != 1 {
		return Config{}, fmt.Errorf("expected exactly one FILE argument (got %d)", fs.NArg())
	}

	cfg := Config{
		App: app.Config{
			Path:       fs.Arg(0),
			Debounce:   *debounce,
			PageSize:   *pageSize,
			ShowDetail: *detail,
			Watch:      *watch,
			Width:      *width,
			Height:     *height,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		File: applied,
		Flags: map[string]string{
			"config":   applied,
			"debounce": debounce.String(),
			"pageSize": strconv.Itoa(*pageSize),
			"detail":   strconv.FormatBool(*detail),
			"watch":    strconv.FormatBool(*watch),
			"width":    strconv.Itoa(*width),
			"height":   strconv.Itoa(*height),
			"trace":    strconv.FormatBool(*trace),
			"logFile":  *logFile,
		},
		Args: append([]string(nil), args...),
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("mqt", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	fs.Usage = func() {}
	return fs
}

// Usage describes the command line.
func Usage() string {
	var b strings.Builder
	b.WriteString("Usage: mqt [flags] FILE\n\nFlags:\n")
	fs := newFlagSet()
	fs.String("config", "", "path to a TOML config file")
	fs.Duration("debounce", app.DefaultDebounce, "delay between the last query edit and its evaluation")
	fs.Int("page-size", defaultPageSize, "rows moved by page up and page down")
	fs.Bool("detail", false, "show the detail pane on startup")
	fs.Bool("watch", false, "reload the document when it changes on disk")
	fs.Int("width", 0, "desired viewport width in cells (0 uses terminal width)")
	fs.Int("height", 0, "desired viewport height in rows (0 uses terminal height)")
	fs.Bool("trace", false, "enable verbose JSON trace logging")
	fs.String("log-file", "", "path to the log file")
	fs.SetOutput(&b)
	fs.PrintDefaults()
	return b.String()
}

// configFilePath finds the config file named by --config, MQT_CONFIG, or the
// XDG default. explicit reports whether the user named it.
func configFilePath(args []string, env map[string]string) (string, bool) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if v, ok := strings.CutPrefix(name, "config="); ok {
			return v, true
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1], true
		}
	}
	if v := strings.TrimSpace(env[envConfig]); v != "" {
		return v, true
	}
	base := env["XDG_CONFIG_HOME"]
	if base == "" {
		home := env["HOME"]
		if home == "" {
			return "", false
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "mqt", "config.toml"), false
}

// readConfigFile decodes path into out. A missing default file is not an
// error; a missing explicit one is.
func readConfigFile(path string, explicit bool, out *fileConfig) (string, error) {
	if path == "" {
		return "", nil
	}
	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("config file: %w", err)
	}
	defer f.Close()
	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return "", fmt.Errorf("config file %s: %s", path, strict.String())
		}
		return "", fmt.Errorf("config file %s: %w", path, err)
	}
	return path, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// envOrDuration differs from its siblings: a malformed duration is reported
// rather than ignored.
func envOrDuration(env map[string]string, key string, fallback time.Duration) (time.Duration, error) {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s: invalid debounce %q: %w", key, v, err)
	}
	return parsed, nil
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprint(os.Stdout, Usage())
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n\n%s", err, Usage())
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.Path) == "" {
		return errors.New("FILE must not be empty")
	}
	if cfg.App.Debounce < 0 {
		return fmt.Errorf("debounce must be >= 0 (got %s)", cfg.App.Debounce)
	}
	if cfg.App.PageSize < 1 {
		return fmt.Errorf("page-size must be >= 1 (got %d)", cfg.App.PageSize)
	}
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	return nil
}
