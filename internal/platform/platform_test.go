package platform

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, map[string]string{"key": "value"}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	want := "{\n  \"key\": \"value\"\n}\n"
	if buf.String() != want {
		t.Errorf("WriteJSON() = %q, want %q", buf.String(), want)
	}
}

func TestWriteJSONUnsupported(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, make(chan int)); err == nil {
		t.Error("WriteJSON(chan) expected error")
	}
}

func TestWriteFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "index.html")
	if err := WriteFile(path, []byte("hi")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if !FileExists(path) {
		t.Fatal("file not created")
	}
	got, _ := os.ReadFile(path)
	if string(got) != "hi" {
		t.Errorf("content = %q", got)
	}
}

func TestCheckLink(t *testing.T) {
	tests := []struct {
		link string
		ok   bool
	}{
		{"https://example.com/tool", true},
		{"http://localhost:8080", true},
		{"#", false},
		{"", false},
		{"PASTE_TOOL_URL_HERE", false},
		{"javascript:alert(1)", false},
		{"file:///etc/passwd", false},
	}
	for _, tt := range tests {
		err := CheckLink(tt.link)
		if (err == nil) != tt.ok {
			t.Errorf("CheckLink(%q) = %v, want ok=%v", tt.link, err, tt.ok)
		}
		if err != nil && !errors.Is(err, ErrNotOpenable) {
			t.Errorf("CheckLink(%q) error %v is not ErrNotOpenable", tt.link, err)
		}
	}
}

func TestOpenURLRejectsPlaceholder(t *testing.T) {
	if err := OpenURL("#"); !errors.Is(err, ErrNotOpenable) {
		t.Errorf("OpenURL(#) = %v, want ErrNotOpenable", err)
	}
}

func TestOpener(t *testing.T) {
	for goos, want := range map[string]string{"darwin": "open", "windows": "rundll32", "linux": "xdg-open"} {
		if name, _ := opener(goos); name != want {
			t.Errorf("opener(%s) = %s, want %s", goos, name, want)
		}
	}
}

func TestResolveLogLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	if got := ResolveLogLevel(""); got != DefaultLogLevel {
		t.Errorf("ResolveLogLevel() = %q, want default", got)
	}
	t.Setenv(EnvLogLevel, "debug")
	if got := ResolveLogLevel(""); got != "debug" {
		t.Errorf("ResolveLogLevel() = %q, want env value", got)
	}
	if got := ResolveLogLevel("error"); got != "error" {
		t.Errorf("ResolveLogLevel(flag) = %q, want flag value", got)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("info", &buf)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	logger.Debug("hidden")
	logger.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected log output %q", buf.String())
	}

	if _, err := NewLogger("loud", &buf); err == nil {
		t.Error("NewLogger(loud) expected error")
	}
}

func TestNewTUILoggerDiscardsWithoutFile(t *testing.T) {
	t.Setenv(EnvLogFile, "")
	logger, closeFn, err := NewTUILogger("debug")
	if err != nil {
		t.Fatalf("NewTUILogger() error = %v", err)
	}
	defer closeFn()
	logger.Info("goes nowhere")
}

func TestNewTUILoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toolshub.log")
	t.Setenv(EnvLogFile, path)
	logger, closeFn, err := NewTUILogger("info")
	if err != nil {
		t.Fatalf("NewTUILogger() error = %v", err)
	}
	logger.Info("browser started")
	closeFn()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "browser started") {
		t.Errorf("log file = %q", data)
	}
}
