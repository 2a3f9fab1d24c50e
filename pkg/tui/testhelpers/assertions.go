package testhelpers

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tabpad/tabpad-cli/pkg/document"
)

// AssertDocument checks the text and modified flag of a document
func AssertDocument(t *testing.T, doc *document.Document, text string, modified bool) {
	t.Helper()

	if doc == nil {
		t.Fatal("Expected a document, got nil")
	}
	if doc.Text() != text {
		t.Errorf("Document text mismatch: expected %q, got %q", text, doc.Text())
	}
	if doc.IsModified() != modified {
		t.Errorf("Document modified mismatch: expected %v, got %v", modified, doc.IsModified())
	}
}

// AssertSelection checks the selected range of a document
func AssertSelection(t *testing.T, doc *document.Document, start, end int) {
	t.Helper()

	want := document.Selection{Start: start, End: end}
	if got := doc.Selection(); got != want {
		t.Errorf("Selection mismatch: expected %+v, got %+v", want, got)
	}
}

// AssertFileContent checks the content of a file in the environment
func AssertFileContent(t *testing.T, env *TestEnvironment, name, expected string) {
	t.Helper()

	if got := env.ReadFile(name); got != expected {
		t.Errorf("File %s content mismatch: expected %q, got %q", env.Path(name), expected, got)
	}
}

// AssertViewContains checks if a view contains expected text
func AssertViewContains(t *testing.T, view, expected string) {
	t.Helper()

	if !strings.Contains(view, expected) {
		t.Errorf("View does not contain expected text: %q\nView:\n%s", expected, view)
	}
}

// AssertViewNotContains checks if a view does not contain certain text
func AssertViewNotContains(t *testing.T, view, unexpected string) {
	t.Helper()

	if strings.Contains(view, unexpected) {
		t.Errorf("View unexpectedly contains text: %q\nView:\n%s", unexpected, view)
	}
}

// AssertNoError checks that an error is nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertErrorContains checks that an error contains expected text
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()

	if err == nil {
		t.Fatal("Expected error, but got nil")
	}
	if !strings.Contains(err.Error(), expected) {
		t.Errorf("Error message does not contain expected text: %q\nGot: %v", expected, err)
	}
}

// AssertEqual reports a diff when expected and actual differ
func AssertEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()

	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("Mismatch (-want +got):\n%s", diff)
	}
}
