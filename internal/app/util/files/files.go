package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
)

// FileInfo describes a file found by ListFiles
type FileInfo struct {
	FullPath string
	ModTime  time.Time
	Name     string
}

// ListFiles returns the regular files in dir whose extension is one of exts,
// oldest first. Extensions are matched case-insensitively, with or without
// the leading dot. No exts means every file.
func ListFiles(dir string, exts ...string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	wanted := lo.Map(exts, func(e string, _ int) string {
		return "." + strings.TrimPrefix(strings.ToLower(e), ".")
	})

	var fileInfos []FileInfo
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if len(wanted) > 0 && !lo.Contains(wanted, strings.ToLower(filepath.Ext(entry.Name()))) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		fileInfos = append(fileInfos, FileInfo{
			FullPath: filepath.Join(dir, entry.Name()),
			ModTime:  info.ModTime(),
			Name:     entry.Name(),
		})
	}

	sort.SliceStable(fileInfos, func(i, j int) bool {
		if fileInfos[i].ModTime.Equal(fileInfos[j].ModTime) {
			return fileInfos[i].Name < fileInfos[j].Name
		}
		return fileInfos[i].ModTime.Before(fileInfos[j].ModTime)
	})

	return fileInfos, nil
}

// GetAbsolutePath expands a leading ~ and returns an absolute path
func GetAbsolutePath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}

// EnsureDir creates dir and its parents if missing
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// ReadTextFile reads the specified file and returns its trimmed text content.
func ReadTextFile(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(content)), nil
}
