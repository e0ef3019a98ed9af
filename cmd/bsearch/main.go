// Command bsearch times a batch of lookups against a large sorted array with
// either the regular or the branchless binary search.
//
// Usage:
//
//	bsearch [flags] <array_size> <search_keys_size> <search_type>
//
// search_type is "regular" or "branchless". By default the sorted array is
// placed on 1 GiB hugepages and ./ctl_fifo receives "enable" and "disable"
// around the measured region, e.g. for
//
//	mkfifo ctl_fifo
//	perf stat --control fifo:ctl_fifo -D -1 -- bsearch 100000000 1000000 branchless
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slog"

	"github.com/mhr3/bsearch/harness"
	"github.com/mhr3/bsearch/internal/pagealloc"
	"github.com/mhr3/bsearch/perfctl"
	"github.com/mhr3/bsearch/search"
)

// allocators builds the sorted-array allocator named by -alloc.
var allocators = map[string]func(pageShift int) pagealloc.Allocator{
	"hugepage": func(shift int) pagealloc.Allocator { return pagealloc.HugePages{Shift: shift} },
	"heap":     func(int) pagealloc.Allocator { return pagealloc.Heap{} },
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, "Usage: %s [flags] <array_size> <search_keys_size> <search_type>\n", fs.Name())
	fmt.Fprintln(w, "search_type: 'regular' for regular binary search, 'branchless' for branchless binary search")
	fmt.Fprintln(w, "flags:")
	fs.PrintDefaults()
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bsearch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr, fs) }

	ctl := fs.String("ctl", perfctl.DefaultPath, "control `fifo` signalled around the measured region; empty disables")
	alloc := fs.String("alloc", "hugepage", "sorted array allocator: hugepage or heap")
	pageShift := fs.Int("page-shift", pagealloc.DefaultHugePageShift, "log2 of the hugepage size")
	seed := fs.Uint64("seed", 0, "key generator seed; 0 seeds from the clock")
	asJSON := fs.Bool("json", false, "print the report as JSON")
	verbose := fs.Bool("v", false, "log benchmark phases to stderr")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if fs.NArg() != 3 {
		fs.Usage()
		return 1
	}

	arraySize, err := strconv.Atoi(fs.Arg(0))
	if err != nil || arraySize < 1 {
		fmt.Fprintf(stderr, "Invalid array size %q: must be a positive integer\n", fs.Arg(0))
		return 1
	}
	searches, err := strconv.Atoi(fs.Arg(1))
	if err != nil || searches < 1 {
		fmt.Fprintf(stderr, "Invalid search keys size %q: must be a positive integer\n", fs.Arg(1))
		return 1
	}
	kind, err := search.ParseKind(fs.Arg(2))
	if err != nil {
		fmt.Fprintln(stderr, "Invalid search type. Use 'regular' or 'branchless'")
		return 1
	}
	if err := (pagealloc.HugePages{Shift: *pageShift}).Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid page shift %d. Use %d to %d\n", *pageShift, pagealloc.MinHugePageShift, pagealloc.MaxHugePageShift)
		return 1
	}
	newAllocator, ok := allocators[*alloc]
	if !ok {
		fmt.Fprintf(stderr, "Invalid allocator %q. Use 'hugepage' or 'heap'\n", *alloc)
		return 1
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	var obs perfctl.Observer = perfctl.Nop{}
	if *ctl != "" {
		obs = perfctl.FIFO{Path: *ctl}
	}

	rep, err := harness.Run(harness.Config{
		Kind:      kind,
		ArraySize: arraySize,
		Searches:  searches,
		Seed:      *seed,
		Allocator: newAllocator(*pageShift),
		Observer:  obs,
		Logger:    logger,
	})
	if err != nil {
		printError(stderr, err)
		return 1
	}

	if *asJSON {
		err = rep.WriteJSON(stdout)
	} else {
		err = rep.WriteText(stdout)
	}
	if err != nil {
		printError(stderr, err)
		return 1
	}
	return 0
}

func printError(w io.Writer, err error) {
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintln(w, hint)
	}
	fmt.Fprintf(w, "error: %v\n", err)
}
