package platform

import (
	"fmt"
	"mime"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand    = "open"
	XDGOpenCommand = "xdg-open"
	CmdCommand     = "cmd"
	StartCommand   = "start"
	WindowsCmdFlag = "/c"
)

// TempFilePrefix prefixes every name produced by TempName
const TempFilePrefix = "ghetto-skype-"

// Opener hands a completed file to whatever displays it
type Opener interface {
	Open(path string) error
}

// DefaultOpener launches the platform's default application for a file
type DefaultOpener struct{}

// Open implements Opener using OpenFileWithDefaultApp
func (DefaultOpener) Open(path string) error {
	return OpenFileWithDefaultApp(path)
}

// OpenFileWithDefaultApp spawns the default system application with the
// absolute path of filePath as its only argument. It does not wait for the
// application to exit.
func OpenFileWithDefaultApp(filePath string) error {
	if filePath == "" {
		return fmt.Errorf("file path is empty")
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	cmd, err := defaultAppCommand(runtime.GOOS, absPath)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", cmd.Path, err)
	}

	// Reap the child so it does not linger as a zombie
	go cmd.Wait()
	return nil
}

// defaultAppCommand builds the launcher command for goos
func defaultAppCommand(goos, absPath string) (*exec.Cmd, error) {
	switch goos {
	case OSDarwin:
		return exec.Command(OpenCommand, absPath), nil
	case OSWindows:
		return exec.Command(CmdCommand, WindowsCmdFlag, StartCommand, "", absPath), nil
	case OSLinux, "freebsd", "openbsd", "netbsd":
		return exec.Command(XDGOpenCommand, absPath), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// TempName returns a fresh, unique path in the system temp directory. The
// file itself is not created.
func TempName() string {
	return filepath.Join(os.TempDir(), TempFilePrefix+uuid.NewString())
}

// ExtensionForMIME derives a file extension, including the leading dot, from
// a Content-Type value. Parameters such as charset are ignored. Unknown types
// yield an empty string.
func ExtensionForMIME(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}
	if mediaType == "" {
		return ""
	}

	if m := mimetype.Lookup(mediaType); m != nil && m.Extension() != "" {
		return m.Extension()
	}

	// Fall back to the system table for types the detector does not know
	exts, err := mime.ExtensionsByType(mediaType)
	if err != nil || len(exts) == 0 {
		return ""
	}
	return exts[0]
}
