package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDisabledLoggerIsNoop(t *testing.T) {
	CloseAll()

	l := Get(CategoryRun)
	// Must not panic or write anywhere.
	l.Info("ignored %d", 1)
	l.Error("ignored")
}

func TestInitializeAndWrite(t *testing.T) {
	dir := t.TempDir()
	if err := Initialize(dir, "debug"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer CloseAll()

	Get(CategoryGraph).Info("built graph with %d modules", 2)
	Get(CategoryGraph).Debug("resolve ok")
	CloseAll()

	entries, err := os.ReadDir(filepath.Join(dir, "logs"))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	var found string
	for _, e := range entries {
		if strings.Contains(e.Name(), "graph") {
			found = filepath.Join(dir, "logs", e.Name())
		}
	}
	if found == "" {
		t.Fatal("no graph log file created")
	}

	data, err := os.ReadFile(found)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "built graph with 2 modules") {
		t.Errorf("log file missing info entry: %q", data)
	}
	if !strings.Contains(string(data), "resolve ok") {
		t.Errorf("log file missing debug entry: %q", data)
	}
}

func TestLevelFiltering(t *testing.T) {
	dir := t.TempDir()
	if err := Initialize(dir, "warn"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer CloseAll()

	Get(CategoryPool).Info("should be dropped")
	Get(CategoryPool).Warn("kept")
	CloseAll()

	entries, _ := os.ReadDir(filepath.Join(dir, "logs"))
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(dir, "logs", e.Name()))
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if strings.Contains(string(data), "should be dropped") {
			t.Error("info entry written despite warn level")
		}
	}
}

func TestInitializeRejectsBadLevel(t *testing.T) {
	if err := Initialize(t.TempDir(), "chatty"); err == nil {
		CloseAll()
		t.Fatal("expected error for unknown level")
	}
}
