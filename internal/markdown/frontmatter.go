package markdown

import (
	"bytes"
	"fmt"

	"github.com/atomicstack/mqt/internal/document"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type frontMatter struct {
	kind  document.Kind
	value string
	// end is the byte offset just past the closing fence line.
	end int
	// lines is the number of source lines the block occupies.
	lines int
}

// splitFrontMatter detects a leading YAML (---) or TOML (+++) block. An
// unterminated fence is not front matter and is left to the Markdown parser.
func splitFrontMatter(src []byte) (*frontMatter, error) {
	var fence string
	var kind document.Kind
	switch {
	case hasFenceLine(src, "---"):
		fence, kind = "---", document.KindYAML
	case hasFenceLine(src, "+++"):
		fence, kind = "+++", document.KindTOML
	default:
		return nil, nil
	}
	offset := bytes.IndexByte(src, '\n') + 1
	lines := 1
	for offset < len(src) {
		next := bytes.IndexByte(src[offset:], '\n')
		lineEnd := len(src)
		if next >= 0 {
			lineEnd = offset + next
		}
		lines++
		line := bytes.TrimRight(src[offset:lineEnd], "\r")
		if string(line) == fence || (kind == document.KindYAML && string(line) == "...") {
			start := bytes.IndexByte(src, '\n') + 1
			fm := &frontMatter{
				kind:  kind,
				value: string(src[start:offset]),
				end:   min(lineEnd+1, len(src)),
				lines: lines,
			}
			if err := validateFrontMatter(fm); err != nil {
				return nil, err
			}
			return fm, nil
		}
		offset = lineEnd + 1
	}
	return nil, nil
}

func hasFenceLine(src []byte, fence string) bool {
	if !bytes.HasPrefix(src, []byte(fence)) {
		return false
	}
	rest := src[len(fence):]
	return bytes.HasPrefix(rest, []byte("\n")) || bytes.HasPrefix(rest, []byte("\r\n"))
}

func validateFrontMatter(fm *frontMatter) error {
	var out interface{}
	switch fm.kind {
	case document.KindYAML:
		if err := yaml.Unmarshal([]byte(fm.value), &out); err != nil {
			return fmt.Errorf("invalid YAML front matter: %w", err)
		}
	case document.KindTOML:
		if err := toml.Unmarshal([]byte(fm.value), &out); err != nil {
			return fmt.Errorf("invalid TOML front matter: %w", err)
		}
	}
	return nil
}
