package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atomicstack/mqt/internal/backend"
	"github.com/atomicstack/mqt/internal/document"
	"github.com/atomicstack/mqt/internal/logging"
	"github.com/atomicstack/mqt/internal/markdown"
	"github.com/atomicstack/mqt/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

// DefaultDebounce is the quiet period between the last query edit and its
// evaluation.
const DefaultDebounce = 120 * time.Millisecond

// Config describes user-provided application options.
type Config struct {
	Path       string
	Debounce   time.Duration
	PageSize   int
	ShowDetail bool
	Watch      bool
	Width      int
	Height     int
}

// LoadError reports a document that could not be read or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads and parses the Markdown document at path.
func Load(path string) (*document.Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	doc, err := markdown.Parse(filepath.Base(path), src)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return doc, nil
}

// Run loads the document and executes the Bubble Tea program. Load failures
// are returned before the terminal is touched.
func Run(cfg Config) error {
	doc, err := Load(cfg.Path)
	if err != nil {
		return err
	}
	opts := ui.Options{
		Document:   doc,
		Debounce:   cfg.Debounce,
		PageSize:   cfg.PageSize,
		ShowDetail: cfg.ShowDetail,
		Width:      cfg.Width,
		Height:     cfg.Height,
	}
	var watcher *backend.Watcher
	if cfg.Watch {
		watcher, err = backend.NewWatcher(cfg.Path, Load, 0)
		if err != nil {
			return fmt.Errorf("watch %s: %w", cfg.Path, err)
		}
		opts.Watcher = watcher
	}

	model := ui.NewModel(opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	var group errgroup.Group
	group.Go(func() error {
		defer stopWatcher(watcher)
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})
	if watcher != nil {
		// The watch loop exits once the program goroutine stops it.
		group.Go(func() error {
			watcher.Wait()
			return nil
		})
	}
	err = group.Wait()
	logging.Info("session finished", "path", cfg.Path)
	return err
}

func stopWatcher(w *backend.Watcher) {
	if w != nil {
		w.Stop()
	}
}
