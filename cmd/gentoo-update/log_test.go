package main

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReadLogLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log_2023-08-09-12-00")
	content := "[09-Aug-23 12:00:01 INFO] ::: first\n[09-Aug-23 12:00:02 INFO] ::: second\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	lines, err := readLogLines(path)
	if err != nil {
		t.Fatalf("readLogLines returned error: %v", err)
	}
	want := []string{
		"[09-Aug-23 12:00:01 INFO] ::: first",
		"[09-Aug-23 12:00:02 INFO] ::: second",
	}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %v, want %v", lines, want)
	}
}

func TestLatestRunLog(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"log_2023-08-08-09-00",
		"log_2023-08-09-12-00",
		"log_2023-07-01-08-30",
		"unrelated.txt",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := latestRunLog(dir)
	if err != nil {
		t.Fatalf("latestRunLog returned error: %v", err)
	}
	if got != filepath.Join(dir, "log_2023-08-09-12-00") {
		t.Errorf("latestRunLog = %q", got)
	}
}

func TestLatestRunLog_EmptyDir(t *testing.T) {
	_, err := latestRunLog(t.TempDir())
	if !errors.Is(err, errNoRunLogs) {
		t.Errorf("err = %v, want errNoRunLogs", err)
	}
}
