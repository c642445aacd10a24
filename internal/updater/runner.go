// Package updater runs the external update script and streams its
// output through the logger, producing the run log the parser package
// later consumes. The parsing pipeline itself never touches the
// process; this is the thin I/O collaborator in front of it.
package updater

import (
	"bufio"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/DevenBL/gentoo-update/internal/common/logger"
)

var (
	ErrScriptFailed = errors.New("update script failed")
)

// ShellRunner executes the update script as a child process.
type ShellRunner struct {
	script string
	log    *logger.Logger
}

// NewShellRunner creates a ShellRunner for the given script path,
// logging through log.
func NewShellRunner(script string, log *logger.Logger) *ShellRunner {
	return &ShellRunner{
		script: script,
		log:    log,
	}
}

// Script returns the path of the update script.
func (r *ShellRunner) Script() string {
	return r.script
}

// Run executes the update script. Stdout lines are logged at info
// level, stderr lines at error level; both end up in the run log. A
// non-zero exit status is returned as an error carrying the collected
// stderr output.
func (r *ShellRunner) Run(args ...string) error {
	cmd := exec.Command(r.script, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to open stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to open stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", r.script, err)
	}

	var stderrLines []string
	var stderrScanErr error
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stderr)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			stderrLines = append(stderrLines, line)
			r.log.Error("%s", line)
		}
		stderrScanErr = scanner.Err()
	}()

	scanner := bufio.NewScanner(stdout)
	// Emerge lines with long USE flag lists can exceed the default token size.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		r.log.Info("%s", scanner.Text())
	}
	stdoutScanErr := scanner.Err()

	wg.Wait()

	if stdoutScanErr != nil {
		cmd.Wait()
		return fmt.Errorf("failed to read script stdout: %w", stdoutScanErr)
	}
	if stderrScanErr != nil {
		cmd.Wait()
		return fmt.Errorf("failed to read script stderr: %w", stderrScanErr)
	}

	if err := cmd.Wait(); err != nil {
		msg := fmt.Sprintf("%s exited with an error: %v", r.script, err)
		if len(stderrLines) > 0 {
			msg += "\nstandard error output:\n" + strings.Join(stderrLines, "\n")
		}
		r.log.Error("%s", msg)
		return fmt.Errorf("%w: %v", ErrScriptFailed, err)
	}

	return nil
}

// Ensure ShellRunner implements Runner interface
var _ Runner = (*ShellRunner)(nil)
