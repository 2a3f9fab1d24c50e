package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabpad/tabpad-cli/pkg/models"
	"github.com/tabpad/tabpad-cli/pkg/session"
	"github.com/tabpad/tabpad-cli/pkg/store"
	"github.com/tabpad/tabpad-cli/pkg/tabs"
	"github.com/tabpad/tabpad-cli/pkg/tui/testhelpers"
)

const testStatePath = "/state/state.yaml"

// fakeClipboard stands in for the system clipboard.
type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) ReadAll() (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

var errNoClipboard = errors.New("no clipboard")

type testEnv struct {
	*testhelpers.TestEnvironment
	kv       *store.Store
	sessions *session.Store
	recent   *tabs.RecentFiles
	clip     *fakeClipboard
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := testhelpers.NewTestEnvironment(t)
	kv, err := store.Open(env.Fs, testStatePath, nil)
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	sessions := session.NewStore(kv, nil)
	return &testEnv{
		TestEnvironment: env,
		kv:              kv,
		sessions:        sessions,
		recent:          tabs.NewRecentFiles(sessions, tabs.DefaultRecentLimit),
		clip:            &fakeClipboard{},
	}
}

func (e *testEnv) options() Options {
	return Options{
		Fs:        e.Fs,
		Settings:  models.DefaultSettings(),
		Sessions:  e.sessions,
		Recent:    e.recent,
		State:     e.kv,
		StatePath: testStatePath,
		Clipboard: e.clip,
	}
}

func (e *testEnv) newApp(t *testing.T, configure func(*Options)) *App {
	t.Helper()
	opts := e.options()
	if configure != nil {
		configure(&opts)
	}
	app := NewApp(opts)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return app
}

// send feeds msgs to the app one by one, dropping the returned commands.
func send(app *App, msgs ...tea.Msg) {
	for _, msg := range msgs {
		app.Update(msg)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func alt(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func keyOf(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// typeText sends s one rune at a time, the way a terminal delivers typing.
func typeText(app *App, s string) {
	for _, r := range s {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func statusText(w *Window) string {
	s, _ := w.status.GetStatus()
	return s
}
