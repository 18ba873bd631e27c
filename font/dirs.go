package font

import "os"
import "runtime"
import "path/filepath"

// Returns the usual system and user font directories for the
// current platform. Directories are not checked for existence.
func DefaultDirs() []string {
	home, _ := os.UserHomeDir()
	var dirs []string
	switch runtime.GOOS {
	case "windows":
		winDir := os.Getenv("WINDIR")
		if winDir == "" { winDir = `C:\Windows` }
		dirs = append(dirs, filepath.Join(winDir, "Fonts"))
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			dirs = append(dirs, filepath.Join(local, "Microsoft", "Windows", "Fonts"))
		}
	case "darwin", "ios":
		dirs = append(dirs, "/System/Library/Fonts", "/Library/Fonts")
		if home != "" { dirs = append(dirs, filepath.Join(home, "Library", "Fonts")) }
	default:
		dirs = append(dirs, "/usr/share/fonts", "/usr/local/share/fonts")
		if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
			dirs = append(dirs, filepath.Join(dataHome, "fonts"))
		} else if home != "" {
			dirs = append(dirs, filepath.Join(home, ".local", "share", "fonts"))
		}
		if home != "" { dirs = append(dirs, filepath.Join(home, ".fonts")) }
	}
	return dirs
}
