package main

import (
	"os"
	"path/filepath"
	"runtime"
)

// dataDirPath holds the absolute path to the directory for settings,
// screenshots and cached resources. On macOS the path resolves to the app's
// container directory. On other platforms it sits next to the executable
// regardless of the current working directory.
var dataDirPath = func() string {
	if runtime.GOOS == "darwin" {
		if home, err := os.UserHomeDir(); err == nil {
			if filepath.Base(home) == "Data" && filepath.Base(filepath.Dir(home)) == "com.auviewer.app" {
				home = filepath.Dir(home)
			} else {
				home = filepath.Join(home, "Library", "Containers", "com.auviewer.app")
			}
			_ = os.MkdirAll(home, 0o755)
			return home
		}
	}
	if exe, err := os.Executable(); err == nil {
		if dir, err := filepath.Abs(filepath.Dir(exe)); err == nil {
			return filepath.Join(dir, "data")
		}
	}
	return "data"
}()

func ensureDataDir() error {
	if isWASM {
		return nil
	}
	return os.MkdirAll(dataDirPath, 0o755)
}
