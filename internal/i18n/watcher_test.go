package i18n

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()

	tr, err := New("en", dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	reloaded := make(chan error, 10)
	w, err := Watch(tr, func(err error) { reloaded <- err })
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer w.Close()

	catalog := "locale: en\nmessages:\n  \"No data found\": \"Empty\"\n"
	if err := os.WriteFile(filepath.Join(dir, "en.yaml"), []byte(catalog), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-reloaded:
		if err != nil {
			t.Fatalf("reload error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	if got := tr.T("No data found"); got != "Empty" {
		t.Errorf("T(No data found) = %q, want Empty", got)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()

	tr, err := New("en", dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	reloaded := make(chan error, 10)
	w, err := Watch(tr, func(err error) { reloaded <- err })
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
		t.Error("unexpected reload for non-catalog file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatch_MissingDir(t *testing.T) {
	tr, err := New("en", "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	tr.dir = filepath.Join(t.TempDir(), "missing")

	if _, err := Watch(tr, nil); err == nil {
		t.Error("expected error watching a missing directory")
	}
}

func TestWatcher_CloseTwice(t *testing.T) {
	tr, err := New("en", t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	w, err := Watch(tr, nil)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first Close() = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}
