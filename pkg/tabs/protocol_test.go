package tabs

import (
	"testing"

	"github.com/spf13/afero"
)

func TestExitSweepStopsAtFirstCancel(t *testing.T) {
	c := New(afero.NewMemMapFs())
	_, _ = c.CreateTab("", "one")   // 0: modified, never reached
	_, _ = c.CreateTab("", "two")   // 1: modified, cancelled
	c.NewTab()                      // 2: clean, closed silently
	_, _ = c.CreateTab("", "three") // 3: modified, discarded

	p := &scriptedPrompter{decisions: []Decision{Discard, Cancel}}
	completed, err := c.CloseAll(p)
	if err != nil {
		t.Fatalf("CloseAll failed: %v", err)
	}
	if completed {
		t.Fatal("Expected the sweep to be cancelled")
	}

	// Tabs processed before the cancel stay closed, the rest are untouched
	if c.Len() != 2 {
		t.Fatalf("Expected 2 remaining tabs, got %d", c.Len())
	}
	for i, want := range []string{"one", "two"} {
		doc, _ := c.Document(i)
		if doc.Text() != want {
			t.Errorf("tab %d: expected %q, got %q", i, want, doc.Text())
		}
	}
	if len(p.asked) != 2 {
		t.Errorf("Expected 2 prompts, got %v", p.asked)
	}
}

func TestExitSweepCompletes(t *testing.T) {
	c := New(afero.NewMemMapFs())
	c.NewTab()
	_, _ = c.CreateTab("", "draft")

	emptied := false
	c.OnChange(func(ev Event) {
		if ev.Kind == Emptied {
			emptied = true
		}
	})

	completed, err := c.CloseAll(&scriptedPrompter{decisions: []Decision{Discard}})
	if err != nil {
		t.Fatalf("CloseAll failed: %v", err)
	}
	if !completed || c.Len() != 0 || !emptied {
		t.Errorf("Expected every tab closed, got completed=%v len=%d emptied=%v", completed, c.Len(), emptied)
	}
}

func TestSweepStepwise(t *testing.T) {
	c := New(afero.NewMemMapFs())
	_, _ = c.CreateTab("", "a")
	_, _ = c.CreateTab("", "b")

	s := c.NewExitSweep()

	doc, ok := s.Next()
	if !ok || doc.Text() != "b" {
		t.Fatalf("Expected to stop at b, got %v", doc)
	}
	if s.State() != SweepWaiting || s.Pending() != doc {
		t.Fatalf("Expected waiting on b, state %v", s.State())
	}

	// Asking again without resolving returns the same document
	again, _ := s.Next()
	if again != doc {
		t.Error("Next must return the pending document until resolved")
	}

	s.Resolve(Save, "/b.txt")
	doc, ok = s.Next()
	if !ok || doc.Text() != "a" {
		t.Fatalf("Expected to stop at a, got %v", doc)
	}
	s.Resolve(Discard, "")

	if _, ok := s.Next(); ok {
		t.Fatal("Expected sweep to finish")
	}
	if !s.Done() || s.Closed() != 2 {
		t.Errorf("Expected done with 2 closed, got state %v closed %d", s.State(), s.Closed())
	}
	if exists, _ := afero.Exists(c.fs, "/b.txt"); !exists {
		t.Error("Expected b to be saved")
	}
}

func TestSweepSaveWithoutPathCancels(t *testing.T) {
	c := New(afero.NewMemMapFs())
	_, _ = c.CreateTab("", "a")

	s := c.NewCloseSweep(0)
	if _, ok := s.Next(); !ok {
		t.Fatal("Expected a pending document")
	}
	s.Resolve(Save, "")
	if !s.Cancelled() {
		t.Error("Save of an unbound document without a path must cancel")
	}
	if c.Len() != 1 {
		t.Error("Cancelled sweep must keep the tab")
	}
}

func TestCloseSweepIgnoresInvalidIndexes(t *testing.T) {
	c := New(afero.NewMemMapFs())
	c.NewTab()
	s := c.NewCloseSweep(-1, 5, 0)
	if _, ok := s.Next(); ok {
		t.Fatal("Clean tab should close without a prompt")
	}
	if s.Closed() != 1 {
		t.Errorf("Expected 1 closed, got %d", s.Closed())
	}
}
