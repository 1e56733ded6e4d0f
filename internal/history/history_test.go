package history

import (
	"testing"

	"pgregory.net/rapid"
)

func TestRecordSkipsEmptyAndConsecutiveDuplicates(t *testing.T) {
	b := New()
	if b.Record("") {
		t.Fatalf("expected empty query to be skipped")
	}
	if !b.Record(".h") {
		t.Fatalf("expected first query to be recorded")
	}
	if b.Record(".h") {
		t.Fatalf("expected duplicate to be collapsed")
	}
	if !b.Record(".code") || !b.Record(".h") {
		t.Fatalf("expected non-consecutive duplicate to be recorded")
	}
	if b.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", b.Len())
	}
}

func TestNavigateHoldsAtOldestAndRestoresDraft(t *testing.T) {
	b := New()
	b.Record(".h")
	b.Record(".code")

	got, moved := b.Navigate(Older, ".li")
	if !moved || got != ".code" {
		t.Fatalf("expected .code, got %q (moved=%v)", got, moved)
	}
	if !b.Navigating() {
		t.Fatalf("expected navigation to be active")
	}
	got, _ = b.Navigate(Older, got)
	if got != ".h" {
		t.Fatalf("expected .h, got %q", got)
	}
	got, moved = b.Navigate(Older, got)
	if moved || got != ".h" {
		t.Fatalf("expected to hold at oldest entry, got %q (moved=%v)", got, moved)
	}
	got, _ = b.Navigate(Newer, got)
	got, moved = b.Navigate(Newer, got)
	if !moved || got != ".li" {
		t.Fatalf("expected draft .li, got %q (moved=%v)", got, moved)
	}
	if _, moved = b.Navigate(Newer, got); moved {
		t.Fatalf("expected no movement past the draft")
	}
}

func TestNavigateOnEmptyBuffer(t *testing.T) {
	b := New()
	got, moved := b.Navigate(Older, "draft")
	if moved || got != "draft" {
		t.Fatalf("expected draft unchanged, got %q (moved=%v)", got, moved)
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	b := New()
	b.Record(".h")
	entries := b.Entries()
	entries[0] = "mutated"
	if b.Entries()[0] != ".h" {
		t.Fatalf("expected buffer to be unaffected by caller mutation")
	}
}

func TestHistoryProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := New()
		queries := rapid.SliceOf(rapid.SampledFrom([]string{"", ".h", ".code", ".list"})).Draw(t, "queries")
		for _, q := range queries {
			b.Record(q)
		}
		entries := b.Entries()
		for i := 1; i < len(entries); i++ {
			if entries[i] == entries[i-1] {
				t.Fatalf("consecutive duplicate %q at %d", entries[i], i)
			}
		}
		for _, e := range entries {
			if e == "" {
				t.Fatalf("empty entry recorded")
			}
		}

		draft := rapid.StringMatching(`[a-z.]{0,6}`).Draw(t, "draft")
		n := rapid.IntRange(0, len(entries)+3).Draw(t, "n")
		buf := draft
		for i := 0; i < n; i++ {
			if next, moved := b.Navigate(Older, buf); moved {
				buf = next
			}
		}
		for i := 0; i < n; i++ {
			if next, moved := b.Navigate(Newer, buf); moved {
				buf = next
			}
		}
		if buf != draft {
			t.Fatalf("expected draft %q after %d up/down steps, got %q", draft, n, buf)
		}
	})
}
