package updater

// MockRunner implements Runner for testing.
// Each method can be configured with a custom function to control behavior.
type MockRunner struct {
	RunFunc func(args ...string) error
	script  string
}

// NewMockRunner creates a new MockRunner reporting the given script path.
func NewMockRunner(script string) *MockRunner {
	return &MockRunner{script: script}
}

// Run executes the configured function, or succeeds when none is set.
func (m *MockRunner) Run(args ...string) error {
	if m.RunFunc != nil {
		return m.RunFunc(args...)
	}
	return nil
}

// Script returns the configured script path.
func (m *MockRunner) Script() string {
	return m.script
}

// Ensure MockRunner implements Runner interface
var _ Runner = (*MockRunner)(nil)
