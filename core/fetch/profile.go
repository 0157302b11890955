package fetch

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// LocalChromeProfile returns the current user's Chrome profile directory,
// or an error when it does not exist.
func LocalChromeProfile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return ChromeProfileDir(runtime.GOOS, home)
}

// ChromeProfileDir resolves the Chrome user data directory for goos under
// home and checks that it exists.
func ChromeProfileDir(goos, home string) (string, error) {
	var dir string
	switch goos {
	case "darwin":
		dir = filepath.Join(home, "Library", "Application Support", "Google", "Chrome")
	case "windows":
		dir = filepath.Join(home, "AppData", "Local", "Google", "Chrome", "User Data")
	case "linux":
		dir = filepath.Join(home, ".config", "google-chrome")
	default:
		return "", fmt.Errorf("unsupported platform: %s", goos)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("chrome profile %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("chrome profile %s is not a directory", dir)
	}
	return dir, nil
}
