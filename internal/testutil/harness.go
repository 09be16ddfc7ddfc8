package testutil

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/dinersim/internal/app"
)

// SafeBuffer is a thread-safe buffer for capturing combined log and report
// output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// RunResult holds the outcomes of a full simulation run.
type RunResult struct {
	Output string
	Err    error
}

// WriteConfig drops a table configuration fixture into a temp dir and
// returns its path.
func WriteConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// SetupApp builds an App around the given configuration content, capturing
// everything it writes. The caller drives Run itself, which is what tests
// that need to observe a run mid-flight want.
func SetupApp(t *testing.T, hclContent string, monitorPort int) (*app.App, *SafeBuffer) {
	t.Helper()

	cfg, err := app.NewConfig(app.Config{
		ConfigPath:  WriteConfig(t, hclContent),
		LogFormat:   "text",
		LogLevel:    "debug",
		MonitorPort: monitorPort,
	})
	require.NoError(t, err)

	buf := &SafeBuffer{}
	return app.NewApp(buf, cfg), buf
}

// RunSimulation provides a standardized harness for running a whole
// simulation from a configuration string using a default background context.
func RunSimulation(t *testing.T, hclContent string) *RunResult {
	t.Helper()
	return RunSimulationWithContext(context.Background(), t, hclContent, 0)
}

// RunSimulationWithContext provides a standardized harness for running a
// whole simulation with a caller-provided context and monitor port.
func RunSimulationWithContext(ctx context.Context, t *testing.T, hclContent string, monitorPort int) *RunResult {
	t.Helper()

	testApp, buf := SetupApp(t, hclContent, monitorPort)
	runErr := testApp.Run(ctx)

	if os.Getenv("DINERSIM_TEST_LOGS") == "true" {
		t.Logf("--- Full output for %s ---\n%s", t.Name(), buf.String())
	}

	return &RunResult{Output: buf.String(), Err: runErr}
}

// FreePort reserves an ephemeral port and releases it for the caller. The
// port can be taken again between the release and the caller's bind, but in
// practice the window is too small to matter in tests.
func FreePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}
