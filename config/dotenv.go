package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FindNearest looks for filename in the working directory and then in each
// parent. It returns os.ErrNotExist when no directory has it.
func FindNearest(filename string) (string, error) {
	if filename == "" {
		filename = ".env"
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return findFileUp(cwd, filename)
}

func findFileUp(startDir, filename string) (string, error) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, filename)
		st, err := os.Stat(candidate)
		if err == nil && !st.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
