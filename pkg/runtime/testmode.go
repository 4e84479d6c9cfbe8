package runtime

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
)

// EnvVarInTest mirrors the source project's FUNCNODES_IN_TEST variable.
const EnvVarInTest = "FLOWCORE_IN_TEST"

var inTest atomic.Bool

func init() {
	if os.Getenv(EnvVarInTest) != "" {
		inTest.Store(true)
	}
}

// InTest reports whether the runtime believes it is executing under test.
func InTest() bool { return inTest.Load() }

// SetInTest toggles test mode for the remainder of the process, or until
// toggled back. The flag is reported by InTest only; pkg/config does not
// read it, so config loading does not move to TestDir in test mode.
func SetInTest(v bool) { inTest.Store(v) }

// TestDir returns a per-process scratch directory under the OS temp
// directory for use in test mode; nothing in this package redirects
// other state into it. A distinct directory per process id keeps
// concurrent test binaries from colliding.
func TestDir() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("flowcore_test_%d", os.Getpid()))
}

// ResetTestDir removes and recreates TestDir, matching the pytest fixture
// behavior of clearing state between test runs.
func ResetTestDir() error {
	dir := TestDir()
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}
