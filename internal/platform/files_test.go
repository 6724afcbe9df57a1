package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "user_data")

	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestTempName(t *testing.T) {
	name1 := TempName()
	name2 := TempName()

	if name1 == name2 {
		t.Error("Expected different temp names")
	}

	if filepath.Dir(name1) != filepath.Clean(os.TempDir()) {
		t.Errorf("Expected temp name under %s, got %s", os.TempDir(), name1)
	}

	base := filepath.Base(name1)
	if !strings.HasPrefix(base, TempFilePrefix) {
		t.Errorf("Expected name to start with '%s', got: %s", TempFilePrefix, base)
	}

	// prefix + 36 chars for UUID
	if len(base) != len(TempFilePrefix)+36 {
		t.Errorf("Expected name length %d, got %d for: %s", len(TempFilePrefix)+36, len(base), base)
	}

	if _, err := os.Stat(name1); !os.IsNotExist(err) {
		t.Errorf("TempName must not create the file: %s", name1)
	}
}

func TestExtensionForMIME(t *testing.T) {
	tests := []struct {
		contentType string
		expected    string
	}{
		{"image/jpeg", ".jpg"},
		{"image/png", ".png"},
		{"image/gif", ".gif"},
		{"image/webp", ".webp"},
		{"image/jpeg; charset=binary", ".jpg"},
		{"IMAGE/PNG", ".png"},
		{"", ""},
		{"application/x-definitely-not-a-type", ""},
	}

	for _, test := range tests {
		result := ExtensionForMIME(test.contentType)
		if result != test.expected {
			t.Errorf("ExtensionForMIME(%q) = %q, expected %q", test.contentType, result, test.expected)
		}
	}
}

func TestDefaultAppCommand(t *testing.T) {
	tests := []struct {
		goos     string
		expected []string
	}{
		{OSLinux, []string{XDGOpenCommand, "/tmp/a.jpg"}},
		{OSDarwin, []string{OpenCommand, "/tmp/a.jpg"}},
		{OSWindows, []string{CmdCommand, WindowsCmdFlag, StartCommand, "", "/tmp/a.jpg"}},
	}

	for _, test := range tests {
		cmd, err := defaultAppCommand(test.goos, "/tmp/a.jpg")
		if err != nil {
			t.Fatalf("defaultAppCommand(%s) returned error: %v", test.goos, err)
		}
		if len(cmd.Args) != len(test.expected) {
			t.Fatalf("%s: expected args %v, got %v", test.goos, test.expected, cmd.Args)
		}
		for i := range test.expected {
			if cmd.Args[i] != test.expected[i] {
				t.Errorf("%s: arg %d: expected %q, got %q", test.goos, i, test.expected[i], cmd.Args[i])
			}
		}
	}

	if _, err := defaultAppCommand("plan9", "/tmp/a.jpg"); err == nil {
		t.Error("Expected error for unsupported OS")
	}
}

func TestOpenFileWithDefaultApp_EmptyPath(t *testing.T) {
	err := OpenFileWithDefaultApp("")
	if err == nil {
		t.Fatal("Expected error for empty path, got nil")
	}
	if !strings.Contains(err.Error(), "file path is empty") {
		t.Errorf("Unexpected error message: %v", err)
	}
}
