package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the gridview configuration directory.
// Respects XDG_CONFIG_HOME on Unix, APPDATA on Windows.
func Dir() string {
	var base string

	if runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	} else {
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, _ := os.UserHomeDir()
			base = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(base, "gridview")
}

// ColumnsFile returns the path to the user's Lua column definitions.
func ColumnsFile() string {
	return filepath.Join(Dir(), "columns.lua")
}

// LogFile returns the path of the debug log.
func LogFile() string {
	return filepath.Join(Dir(), "gridview.log")
}

// Exists reports whether path names a regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
