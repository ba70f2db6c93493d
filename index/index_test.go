package index

import (
	"errors"
	"sync"
	"testing"

	"github.com/redactkit/redactkit/coords"
	"github.com/redactkit/redactkit/glyphs"
)

func wordRun(text string, x float64) glyphs.Run {
	return glyphs.Run{
		Text:       text,
		Bounds:     coords.Rect{X: x, Y: 100, W: float64(len(text)) * 6, H: 10},
		Kind:       glyphs.SourceOCR,
		Confidence: 0.9,
	}
}

func TestBuildConcatenatesWithSeparators(t *testing.T) {
	runs := []glyphs.Run{wordRun("Account", 10), wordRun("Number", 60), wordRun("12345", 110)}
	idx, err := Build(0, runs)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if idx.Text != "Account Number 12345" {
		t.Fatalf("unexpected text: %q", idx.Text)
	}
	if len(idx.Text) != len(idx.CharMap) {
		t.Fatalf("text length %d != char map length %d", len(idx.Text), len(idx.CharMap))
	}
	// Separator slots carry no position.
	if _, ok := idx.PositionOf(len("Account")); ok {
		t.Fatal("separator byte must be unpositioned")
	}
	// Every byte of a word shares the word box.
	first, ok := idx.PositionOf(0)
	if !ok {
		t.Fatal("word byte must be positioned")
	}
	last, ok := idx.PositionOf(len("Account") - 1)
	if !ok || !first.Equal(last) {
		t.Fatalf("word bytes must share the box: %+v vs %+v", first, last)
	}
}

func TestBuildContinuationRunsFuse(t *testing.T) {
	items := []glyphs.NativeTextRun{{
		Text:      "078-05-1120",
		Transform: coords.Translate(72, 144),
		Width:     66,
		Height:    12,
	}}
	runs := glyphs.NativeAdapter{}.Runs(items)
	idx, err := Build(2, runs)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if idx.Text != "078-05-1120" {
		t.Fatalf("continuation runs must not be separated: %q", idx.Text)
	}
	if len(idx.CharMap) != len(idx.Text) {
		t.Fatalf("char map length mismatch")
	}
}

func TestBuildMixedSources(t *testing.T) {
	native := glyphs.NativeAdapter{}.Runs([]glyphs.NativeTextRun{{
		Text: "Name:", Transform: coords.Translate(10, 50), Width: 30, Height: 10,
	}})
	runs := append(native, wordRun("Doe", 50))
	idx, err := Build(1, runs)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if idx.Text != "Name: Doe" {
		t.Fatalf("unexpected text: %q", idx.Text)
	}
	if len(idx.SourceKinds) != 2 {
		t.Fatalf("expected both source kinds, got %v", idx.SourceKinds)
	}
}

func TestBuildUnpositionedFallbackRun(t *testing.T) {
	idx, err := Build(0, []glyphs.Run{{Text: "flat page text", Kind: glyphs.SourceOCR}})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if idx.Text != "flat page text" {
		t.Fatalf("unexpected text: %q", idx.Text)
	}
	for i := range idx.CharMap {
		if idx.CharMap[i].Valid {
			t.Fatalf("byte %d of fallback run must be unpositioned", i)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	idx, err := Build(7, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if idx.Text != "" || len(idx.CharMap) != 0 {
		t.Fatalf("empty build should yield empty index: %+v", idx)
	}
	if _, ok := idx.PositionOf(0); ok {
		t.Fatal("empty index has no positions")
	}
}

func TestBuildMultiByteRunes(t *testing.T) {
	idx, err := Build(0, []glyphs.Run{wordRun("naïve", 10)})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(idx.Text) != len(idx.CharMap) {
		t.Fatalf("multi-byte text length %d != char map length %d", len(idx.Text), len(idx.CharMap))
	}
}

func TestInternalErrorType(t *testing.T) {
	err := error(&InternalError{Msg: "boom"})
	var ie *InternalError
	if !errors.As(err, &ie) {
		t.Fatal("InternalError must be extractable with errors.As")
	}
	if ie.Error() == "" {
		t.Fatal("empty error text")
	}
}

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Get(0); !errors.Is(err, ErrPageNotIndexed) {
		t.Fatalf("expected ErrPageNotIndexed, got %v", err)
	}
	a, _ := Build(0, []glyphs.Run{wordRun("one", 0)})
	b, _ := Build(3, []glyphs.Run{wordRun("two", 0)})
	r.Put(a)
	r.Put(b)
	if got := r.Pages(); len(got) != 2 || got[0] != 0 || got[1] != 3 {
		t.Fatalf("unexpected pages: %v", got)
	}
	replacement, _ := Build(0, []glyphs.Run{wordRun("rebuilt", 0)})
	r.Put(replacement)
	idx, err := r.Get(0)
	if err != nil || idx.Text != "rebuilt" {
		t.Fatalf("replacement not visible: %v %v", idx, err)
	}
	r.Invalidate(3)
	if _, err := r.Get(3); !errors.Is(err, ErrPageNotIndexed) {
		t.Fatal("invalidated page should be absent")
	}
	r.Reset()
	if r.Len() != 0 {
		t.Fatalf("reset should clear registry, len = %d", r.Len())
	}
}

func TestRegistryConcurrentReplace(t *testing.T) {
	r := NewRegistry()
	idx, _ := Build(0, []glyphs.Run{wordRun("seed", 0)})
	r.Put(idx)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				replacement, _ := Build(0, []glyphs.Run{wordRun("swap", 0)})
				r.Put(replacement)
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got, err := r.Get(0)
				if err != nil {
					t.Errorf("Get() error = %v", err)
					return
				}
				if len(got.Text) != len(got.CharMap) {
					t.Error("reader observed inconsistent index")
					return
				}
			}
		}()
	}
	wg.Wait()
}
