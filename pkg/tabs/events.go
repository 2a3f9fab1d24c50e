package tabs

// EventKind identifies a change to a Collection.
type EventKind int

const (
	// TabAdded fires after a tab is appended.
	TabAdded EventKind = iota
	// TabRemoved fires after a tab is removed. Index is the old position.
	TabRemoved
	// TabChanged fires when a tab's document is replaced or rebound.
	TabChanged
	// SelectionChanged fires when the current tab changes.
	SelectionChanged
	// Emptied fires when the last tab is removed. The owning window closes.
	Emptied
)

func (k EventKind) String() string {
	switch k {
	case TabAdded:
		return "tab-added"
	case TabRemoved:
		return "tab-removed"
	case TabChanged:
		return "tab-changed"
	case SelectionChanged:
		return "selection-changed"
	case Emptied:
		return "emptied"
	default:
		return "unknown"
	}
}

// Event describes a single change.
type Event struct {
	Kind  EventKind
	Index int
}

// OnChange registers fn to be called after every change. Observers run in
// registration order on the caller's goroutine.
func (c *Collection) OnChange(fn func(Event)) {
	c.observers = append(c.observers, fn)
}

func (c *Collection) emit(kind EventKind, index int) {
	ev := Event{Kind: kind, Index: index}
	for _, fn := range c.observers {
		fn(ev)
	}
}
