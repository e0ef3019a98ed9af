// Package perfctl signals an out-of-process profiler when the measured
// region starts and stops.
//
// FIFO speaks the control protocol of `perf record --control fifo:PATH`:
// one NUL-terminated command per write. The harness never reads counters
// itself.
package perfctl

import (
	"os"

	"github.com/cockroachdb/errors"
)

// DefaultPath is the control FIFO the CLI signals unless told otherwise.
const DefaultPath = "./ctl_fifo"

const (
	enableCmd  = "enable\x00"
	disableCmd = "disable\x00"
)

// Observer is notified around the measured region.
type Observer interface {
	Start() error
	Stop() error
}

// Nop ignores both notifications.
type Nop struct{}

func (Nop) Start() error { return nil }
func (Nop) Stop() error  { return nil }

// FIFO writes enable and disable commands to an existing named pipe. Each
// command opens the pipe write-only, writes once and closes it again, so
// the open blocks until a reader is attached.
type FIFO struct {
	Path string
}

func (f FIFO) Start() error {
	return f.send(enableCmd)
}

func (f FIFO) Stop() error {
	return f.send(disableCmd)
}

func (f FIFO) send(cmd string) error {
	fd, err := os.OpenFile(f.Path, os.O_WRONLY, 0)
	if err != nil {
		return errors.Wrap(err, "perfctl: open control fifo")
	}
	_, err = fd.WriteString(cmd)
	err = errors.Wrapf(err, "perfctl: write %q", cmd[:len(cmd)-1])
	return errors.CombineErrors(err, fd.Close())
}
