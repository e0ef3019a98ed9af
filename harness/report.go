package harness

import (
	"fmt"
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sugawarayuuta/sonnet"

	"github.com/mhr3/bsearch/humanize"
)

// Report is the outcome of a single Run.
type Report struct {
	ArraySize  int           `json:"array_size"`
	ArrayBytes uint64        `json:"array_bytes"`
	Searches   int           `json:"searches"`
	SearchType string        `json:"search_type"`
	Elapsed    time.Duration `json:"elapsed_ns"`
	Barrier    string        `json:"barrier"`
	Seed       uint64        `json:"seed"`
	// Sink is the sum of all returned indices. It only exists so the
	// searches cannot be optimized away.
	Sink int64 `json:"sink"`
}

// PerSearch is the mean time of one lookup.
func (r Report) PerSearch() time.Duration {
	if r.Searches == 0 {
		return 0
	}
	return r.Elapsed / time.Duration(r.Searches)
}

// WriteText prints the human-readable summary.
func (r Report) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "\nBinary Search Benchmark Results:\n"+
		"--------------------------------\n"+
		"Array size: %d elements (%s)\n"+
		"Number of searches: %d\n"+
		"Search type: %s\n"+
		"Total time: %s\n"+
		"Per search: %s\n"+
		"Barrier: %s\n"+
		"Seed: %d\n",
		r.ArraySize, humanize.FormatSize(r.ArrayBytes),
		r.Searches,
		r.SearchType,
		// FormatTime labels its input one step too small past 1000: a
		// microsecond count of 1500 prints as "1.50 µs" although it is 1.5ms.
		// Per search below is exact.
		humanize.FormatTime(uint64(r.Elapsed.Microseconds())),
		r.PerSearch(),
		r.Barrier,
		r.Seed,
	)
	return errors.Wrap(err, "write report")
}

// WriteJSON prints the report as a single JSON object followed by a newline.
func (r Report) WriteJSON(w io.Writer) error {
	b, err := sonnet.Marshal(r)
	if err != nil {
		return errors.Wrap(err, "encode report")
	}
	_, err = w.Write(append(b, '\n'))
	return errors.Wrap(err, "write report")
}
