package persist

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// ListScheduleFiles returns the names of schedule files in dir, sorted.
func ListScheduleFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), Extension) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
