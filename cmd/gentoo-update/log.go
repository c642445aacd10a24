package main

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var errNoRunLogs = errors.New("no run logs found in log directory")

// readLogLines reads a log file into a slice of lines.
func readLogLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	// Emerge lines with long USE flag lists can exceed the default token size.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// latestRunLog returns the newest log_* file in dir. Run log names
// embed a sortable timestamp, so lexical order is chronological.
func latestRunLog(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "log_") {
			continue
		}
		names = append(names, entry.Name())
	}
	if len(names) == 0 {
		return "", errNoRunLogs
	}

	sort.Strings(names)
	return filepath.Join(dir, names[len(names)-1]), nil
}
