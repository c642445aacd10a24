package updater

// Runner defines the interface for executing the update script.
// This interface allows for mocking the script run in tests.
type Runner interface {
	// Run executes the update script with the given arguments, streaming
	// its output through the logger as the run log.
	Run(args ...string) error

	// Script returns the path of the update script.
	Script() string
}
