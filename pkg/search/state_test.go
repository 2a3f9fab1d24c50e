package search

import (
	"testing"

	"github.com/tabpad/tabpad-cli/pkg/document"
)

func TestStateFindResetsToStart(t *testing.T) {
	d := document.NewWithContent("target middle target")
	d.SetCursor(d.Len())

	s := NewState(true)
	res := s.Find(d, "target")
	if res.Status != Found {
		t.Fatalf("Expected plain found on a fresh search, got %v", res.Status)
	}
	if res.Match != (Match{0, 6}) {
		t.Errorf("Expected first occurrence, got %+v", res.Match)
	}
}

func TestStateFindNextWraps(t *testing.T) {
	d := document.NewWithContent("target and text")
	s := NewState(true)
	s.LastQuery = "target"
	d.SetCursor(d.Len())

	res := s.FindNext(d)
	if res.Status != Wrapped {
		t.Fatalf("Expected wrapped, got %v", res.Status)
	}
	if d.SelectedText() != "target" {
		t.Errorf("Expected match selected, got %q", d.SelectedText())
	}
}

func TestStateWalk(t *testing.T) {
	d := document.NewWithContent("x1 x2 x3")
	s := NewState(true)

	steps := []struct {
		action func() Result
		start  int
		status Status
	}{
		{func() Result { return s.Find(d, "x") }, 0, Found},
		{func() Result { return s.FindNext(d) }, 3, Found},
		{func() Result { return s.FindNext(d) }, 6, Found},
		{func() Result { return s.FindNext(d) }, 0, Wrapped},
		{func() Result { return s.FindPrevious(d) }, 6, Wrapped},
		{func() Result { return s.FindPrevious(d) }, 3, Found},
	}

	for i, step := range steps {
		res := step.action()
		if res.Status != step.status || res.Match.Start != step.start {
			t.Errorf("step %d: got %v at %d, want %v at %d", i, res.Status, res.Match.Start, step.status, step.start)
		}
	}
}

func TestStateWithoutQuery(t *testing.T) {
	d := document.NewWithContent("abc")
	s := NewState(true)

	if s.FindNext(d).Found() || s.FindPrevious(d).Found() {
		t.Error("Find-next without a query must be a no-op")
	}
	if s.ReplaceAll(d, "x") != 0 {
		t.Error("ReplaceAll without a query must be a no-op")
	}
	if s.Replace(d, "x").Replaced {
		t.Error("Replace without a query must be a no-op")
	}
}

func TestStateCaseToggle(t *testing.T) {
	d := document.NewWithContent("Alpha")
	s := NewState(true)
	if s.Find(d, "alpha").Found() {
		t.Fatal("Case-sensitive search should miss")
	}
	s.CaseSensitive = false
	if !s.Find(d, "alpha").Found() {
		t.Error("Case-insensitive search should hit")
	}
}
