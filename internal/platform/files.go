package platform

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// File manager names tried when xdg-open is missing
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// OpenDirectory reveals dir in the system file manager
func OpenDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("directory does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}

	name, args, err := openDirectoryCommand(runtime.GOOS, dir)
	if err != nil {
		return err
	}

	if err := exec.Command(name, args...).Run(); err == nil || runtime.GOOS != OSLinux {
		return err
	}

	// Fallback to common file managers
	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}

// openDirectoryCommand returns the command that opens dir on goos
func openDirectoryCommand(goos, dir string) (string, []string, error) {
	switch {
	case goos == OSDarwin:
		return OpenCommand, []string{dir}, nil
	case goos == OSWindows:
		return ExplorerCommand, []string{dir}, nil
	case IsUnixFamily(goos):
		return XDGOpenCommand, []string{dir}, nil
	default:
		return "", nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}
