// Package harness runs one benchmark: it reserves and fills the buffers,
// warms up the selected search engine, times a single pass over the keys and
// reports the result.
package harness

import (
	"io"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slog"

	"github.com/mhr3/bsearch/dataset"
	"github.com/mhr3/bsearch/internal/barrier"
	"github.com/mhr3/bsearch/internal/pagealloc"
	"github.com/mhr3/bsearch/perfctl"
	"github.com/mhr3/bsearch/search"
)

// ErrInvalidConfig marks a Config rejected before anything is allocated.
var ErrInvalidConfig = errors.New("invalid benchmark config")

// Config describes one run. Zero-valued dependencies fall back to hugepages
// for the array, the heap for the keys, no observer and no logging.
type Config struct {
	Kind      search.Kind
	ArraySize int
	Searches  int
	Seed      uint64

	Allocator    pagealloc.Allocator
	KeyAllocator pagealloc.Allocator
	Observer     perfctl.Observer
	Logger       *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Allocator == nil {
		c.Allocator = pagealloc.HugePages{}
	}
	if c.KeyAllocator == nil {
		c.KeyAllocator = pagealloc.Heap{}
	}
	if c.Observer == nil {
		c.Observer = perfctl.Nop{}
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

func (c Config) validate() error {
	if c.ArraySize < 1 {
		return errors.Mark(errors.Newf("array size must be positive, got %d", c.ArraySize), ErrInvalidConfig)
	}
	if c.Searches < 1 {
		return errors.Mark(errors.Newf("number of searches must be positive, got %d", c.Searches), ErrInvalidConfig)
	}
	if !dataset.Fits(c.ArraySize) {
		return errors.Mark(errors.Newf("array size %d overflows int32 values", c.ArraySize), ErrInvalidConfig)
	}
	return nil
}

// Run executes the benchmark described by cfg. Buffers are released before
// Run returns, whether or not it succeeds.
func Run(cfg Config) (rep Report, err error) {
	if err := cfg.validate(); err != nil {
		return Report{}, err
	}
	cfg = cfg.withDefaults()
	logger := cfg.Logger.With("search", cfg.Kind.String())

	arrayBytes := 4 * cfg.ArraySize
	arrayMem, err := cfg.Allocator.Reserve(arrayBytes)
	if err != nil {
		return Report{}, errors.Wrap(err, "allocate sorted array")
	}
	defer func() {
		err = errors.CombineErrors(err, errors.Wrap(cfg.Allocator.Release(arrayMem), "release sorted array"))
	}()
	logger.Debug("sorted array reserved", "elements", cfg.ArraySize, "bytes", arrayBytes)

	keyMem, err := cfg.KeyAllocator.Reserve(4 * cfg.Searches)
	if err != nil {
		return Report{}, errors.Wrap(err, "allocate search keys")
	}
	defer func() {
		err = errors.CombineErrors(err, errors.Wrap(cfg.KeyAllocator.Release(keyMem), "release search keys"))
	}()

	sorted := pagealloc.AsInt32s(arrayMem, cfg.ArraySize)
	keys := pagealloc.AsInt32s(keyMem, cfg.Searches)
	dataset.FillSorted(sorted)
	dataset.FillKeys(keys, int32(2*cfg.ArraySize), dataset.NewRand(cfg.Seed))
	logger.Debug("data generated", "keys", cfg.Searches, "seed", cfg.Seed)

	warm := warmup(cfg.Kind, sorted, keys)
	runtime.KeepAlive(warm)
	logger.Debug("warmup done")

	elapsed, sink, err := measure(cfg.Kind, sorted, keys, cfg.Observer)
	if err != nil {
		return Report{}, err
	}
	logger.Debug("measured", "elapsed", elapsed)

	return Report{
		ArraySize:  cfg.ArraySize,
		ArrayBytes: uint64(arrayBytes),
		Searches:   cfg.Searches,
		SearchType: cfg.Kind.String(),
		Elapsed:    elapsed,
		Barrier:    barrier.Name(),
		Seed:       cfg.Seed,
		Sink:       sink,
	}, nil
}

func warmup(kind search.Kind, sorted, keys []int32) int64 {
	var sum int64
	switch kind {
	case search.KindBranchless:
		for _, k := range keys {
			sum += int64(search.Branchless(sorted, k))
		}
	default:
		for _, k := range keys {
			sum += int64(search.Binary(sorted, k))
		}
	}
	return sum
}

// measure times one pass over keys. The GC is off and the goroutine stays on
// its OS thread between Start and Stop; the observer calls fall outside the
// timed interval.
func measure(kind search.Kind, sorted, keys []int32, obs perfctl.Observer) (elapsed time.Duration, sink int64, err error) {
	runtime.GC()
	gcPercent := debug.SetGCPercent(-1)
	runtime.LockOSThread()
	defer func() {
		runtime.UnlockOSThread()
		debug.SetGCPercent(gcPercent)
	}()

	if err := obs.Start(); err != nil {
		return 0, 0, errors.Wrap(err, "start observer")
	}

	start := time.Now()
	switch kind {
	case search.KindBranchless:
		for _, k := range keys {
			sink += int64(search.Branchless(sorted, k))
			barrier.Speculation()
		}
	default:
		for _, k := range keys {
			sink += int64(search.Binary(sorted, k))
			barrier.Speculation()
		}
	}
	elapsed = time.Since(start)
	runtime.KeepAlive(sink)

	if err := obs.Stop(); err != nil {
		return 0, 0, errors.Wrap(err, "stop observer")
	}
	return elapsed, sink, nil
}
