package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testLogger struct{ t *testing.T }

func (l testLogger) Infof(format string, args ...any) { l.t.Logf("info: "+format, args...) }
func (l testLogger) Warnf(format string, args ...any) { l.t.Logf("warn: "+format, args...) }

func writeCatalog(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brushes.json")
	writeCatalog(t, path, `{"brushes": [{"name": "grass", "kind": "ground", "server_id": 100}]}`)

	c := New()
	if err := c.LoadFile(path); err != nil {
		t.Fatal(err)
	}
	if c.Version() != 1 {
		t.Fatalf("initial version = %d", c.Version())
	}

	w, err := NewWatcher(c, path, testLogger{t})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	writeCatalog(t, path, `{"brushes": [
		{"name": "grass", "kind": "ground", "server_id": 100},
		{"name": "dirt", "kind": "ground", "server_id": 200}
	]}`)

	if !waitFor(t, 5*time.Second, func() bool { return w.Reloads() >= 1 }) {
		t.Fatalf("watcher never reloaded; version still %d", c.Version())
	}
	if c.Version() != 2 || c.Len() != 2 {
		t.Errorf("after reload: version %d, len %d", c.Version(), c.Len())
	}
	if _, ok := c.GetByName("dirt"); !ok {
		t.Error("reloaded definitions missing new brush")
	}
}

func TestWatcherKeepsOldDefinitionsOnBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brushes.json")
	writeCatalog(t, path, `{"brushes": [{"name": "grass", "kind": "ground", "server_id": 100}]}`)

	c := New()
	if err := c.LoadFile(path); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(c, path, testLogger{t})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	writeCatalog(t, path, `{"brushes": [{"name": "`)

	// Give the debounce window time to fire, then check nothing changed.
	time.Sleep(2 * watchDebounce)
	if c.Version() != 1 || c.Len() != 1 {
		t.Errorf("bad file changed the catalog: version %d, len %d", c.Version(), c.Len())
	}
	if _, ok := c.GetByName("grass"); !ok {
		t.Error("previous definitions lost")
	}
	if w.Reloads() != 0 {
		t.Errorf("Reloads = %d after a failed reload", w.Reloads())
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brushes.json")
	writeCatalog(t, path, `{"brushes": [{"name": "grass", "kind": "ground", "server_id": 100}]}`)

	c := New()
	w, err := NewWatcher(c, path, testLogger{t})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
