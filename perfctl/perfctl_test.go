//go:build linux || darwin

package perfctl

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func makeFifo(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ctl_fifo")
	require.NoError(t, unix.Mkfifo(path, 0o600))
	return path
}

// drain reads from the fifo until want bytes have arrived, reopening it
// whenever the writer side closes.
func drain(path string, want int) <-chan string {
	out := make(chan string, 1)
	go func() {
		var got []byte
		for len(got) < want {
			f, err := os.Open(path)
			if err != nil {
				break
			}
			b, _ := io.ReadAll(f)
			f.Close()
			got = append(got, b...)
		}
		out <- string(got)
	}()
	return out
}

func TestFIFO(t *testing.T) {
	path := makeFifo(t)
	got := drain(path, len(enableCmd)+len(disableCmd))

	f := FIFO{Path: path}
	require.NoError(t, f.Start())
	require.NoError(t, f.Stop())

	select {
	case s := <-got:
		assert.Equal(t, "enable\x00disable\x00", s)
	case <-time.After(10 * time.Second):
		t.Fatal("reader did not receive both commands")
	}
}

func TestFIFOMissing(t *testing.T) {
	f := FIFO{Path: filepath.Join(t.TempDir(), "missing")}

	err := f.Start()
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	err = f.Stop()
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestNop(t *testing.T) {
	var o Observer = Nop{}
	assert.NoError(t, o.Start())
	assert.NoError(t, o.Stop())
}
