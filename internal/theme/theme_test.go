package theme

import (
	"testing"

	"github.com/atomicstack/mqt/internal/document"
)

func TestKindStyles(t *testing.T) {
	if !Kind(document.KindHeading).GetBold() {
		t.Fatalf("expected headings to be bold")
	}
	if !Kind(document.KindEmphasis).GetItalic() {
		t.Fatalf("expected emphasis to be italic")
	}
	if Kind(document.KindTableCell) != Kind(document.KindHTML) {
		t.Fatalf("expected unlisted kinds to share the fallback style")
	}
	if Default().Cursor == nil {
		t.Fatalf("expected default cursor style")
	}
}
