package tabs

import (
	"github.com/tabpad/tabpad-cli/pkg/document"
)

// Decision is the answer to "save changes before closing?".
type Decision int

const (
	Save Decision = iota
	Discard
	Cancel
)

func (d Decision) String() string {
	switch d {
	case Save:
		return "save"
	case Discard:
		return "discard"
	default:
		return "cancel"
	}
}

// Prompter asks the user about a modified document being closed.
type Prompter interface {
	// ConfirmClose asks whether to save, discard or keep doc.
	ConfirmClose(doc *document.Document) Decision
	// SavePath asks where to save an unbound document. It returns false
	// when the user dismissed the picker.
	SavePath(doc *document.Document) (string, bool)
}

// SweepState is the progress of a Sweep.
type SweepState int

const (
	SweepRunning SweepState = iota
	SweepWaiting
	SweepDone
	SweepCancelled
)

// Sweep closes a fixed list of documents one at a time. Clean documents are
// removed without asking. At a modified document the sweep waits for
// Resolve. The first Cancel, or a save that fails, stops the sweep: the
// documents already closed stay closed and the rest are left alone.
//
// A Sweep lets an interactive front end answer each prompt asynchronously.
type Sweep struct {
	c       *Collection
	queue   []*document.Document
	pending *document.Document
	state   SweepState
	closed  int
	err     error
}

// NewCloseSweep returns a sweep over the given tab indexes, processed in
// the order given. Invalid indexes are ignored.
func (c *Collection) NewCloseSweep(indexes ...int) *Sweep {
	s := &Sweep{c: c}
	for _, i := range indexes {
		if i >= 0 && i < len(c.docs) {
			s.queue = append(s.queue, c.docs[i])
		}
	}
	return s
}

// NewExitSweep returns a sweep over every tab, last tab first.
func (c *Collection) NewExitSweep() *Sweep {
	s := &Sweep{c: c}
	for i := len(c.docs) - 1; i >= 0; i-- {
		s.queue = append(s.queue, c.docs[i])
	}
	return s
}

// Next removes clean documents until it reaches one that needs a decision,
// which it returns. It returns false once the sweep is finished.
func (s *Sweep) Next() (*document.Document, bool) {
	if s.state == SweepWaiting {
		return s.pending, true
	}
	if s.state != SweepRunning {
		return nil, false
	}
	for len(s.queue) > 0 {
		doc := s.queue[0]
		s.queue = s.queue[1:]
		if s.c.IndexOf(doc) < 0 {
			continue
		}
		if !doc.IsModified() {
			s.close(doc)
			continue
		}
		s.pending = doc
		s.state = SweepWaiting
		return doc, true
	}
	s.state = SweepDone
	return nil, false
}

// Pending returns the document awaiting a decision, or nil.
func (s *Sweep) Pending() *document.Document {
	if s.state != SweepWaiting {
		return nil
	}
	return s.pending
}

// Resolve answers the pending prompt. For Save, path is used when non-empty
// and otherwise the bound path; an unbound document with no path cancels the
// sweep, as does a failed write.
func (s *Sweep) Resolve(decision Decision, path string) {
	if s.state != SweepWaiting {
		return
	}
	doc := s.pending
	s.pending = nil
	s.state = SweepRunning

	switch decision {
	case Discard:
		s.close(doc)
	case Save:
		index := s.c.IndexOf(doc)
		var err error
		switch {
		case index < 0:
			return
		case path != "":
			err = s.c.SaveAs(index, path)
		case doc.IsBound():
			err = s.c.Save(index, nil)
		default:
			s.state = SweepCancelled
			return
		}
		if err != nil {
			s.err = err
			s.state = SweepCancelled
			return
		}
		s.close(doc)
	default:
		s.state = SweepCancelled
	}
}

// State returns the sweep's progress.
func (s *Sweep) State() SweepState {
	return s.state
}

// Cancelled reports whether the sweep stopped before finishing.
func (s *Sweep) Cancelled() bool {
	return s.state == SweepCancelled
}

// Done reports whether every document was closed.
func (s *Sweep) Done() bool {
	return s.state == SweepDone
}

// Closed returns the number of documents removed so far.
func (s *Sweep) Closed() int {
	return s.closed
}

// Err returns the save error that cancelled the sweep, if any.
func (s *Sweep) Err() error {
	return s.err
}

func (s *Sweep) close(doc *document.Document) {
	s.c.remove(doc)
	s.closed++
}
