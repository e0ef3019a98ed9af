// Package pagealloc reserves the memory backing the benchmark buffers.
//
// HugePages maps the sorted array onto large pages to keep TLB misses out of
// the measurement; Heap is ordinary Go memory, used for the key buffer and
// wherever hugepages are not configured.
package pagealloc

import (
	"strconv"
	"unsafe"

	"github.com/cockroachdb/errors"
)

var (
	// ErrNoHugePages marks a hugepage reservation the system could not satisfy.
	ErrNoHugePages = errors.New("hugepages unavailable")
	// ErrTooLarge marks a reservation above an allocator's limit.
	ErrTooLarge = errors.New("allocation too large")
)

// Allocator reserves and releases raw buffers.
type Allocator interface {
	// Reserve returns a zeroed buffer of exactly size bytes, aligned to at
	// least 8 bytes.
	Reserve(size int) ([]byte, error)
	// Release returns a buffer obtained from Reserve.
	Release(buf []byte) error
}

// DefaultHugePageShift selects 1 GiB pages.
const DefaultHugePageShift = 30

// Hugepage sizes from 2 MiB to 1 GiB are accepted.
const (
	MinHugePageShift = 21
	MaxHugePageShift = 30
)

// HugePages reserves anonymous mappings backed by hugepages of 1<<Shift
// bytes. The mapping length is rounded up to a whole number of pages.
type HugePages struct {
	Shift int
}

func (h HugePages) shift() int {
	if h.Shift == 0 {
		return DefaultHugePageShift
	}
	return h.Shift
}

// Validate rejects page sizes outside [MinHugePageShift, MaxHugePageShift].
func (h HugePages) Validate() error {
	if s := h.shift(); s < MinHugePageShift || s > MaxHugePageShift {
		return errors.Newf("pagealloc: hugepage shift %d outside [%d, %d]", s, MinHugePageShift, MaxHugePageShift)
	}
	return nil
}

// PageSize returns the hugepage size in bytes.
func (h HugePages) PageSize() int {
	return 1 << h.shift()
}

func (h HugePages) roundUp(size int) int {
	ps := h.PageSize()
	return (size + ps - 1) &^ (ps - 1)
}

// sysfsPath is the knob holding the number of reserved pages of this size.
func (h HugePages) sysfsPath() string {
	return "/sys/kernel/mm/hugepages/hugepages-" + strconv.Itoa(h.PageSize()>>10) + "kB/nr_hugepages"
}

func (h HugePages) unavailable(cause error, size int) error {
	pages := h.roundUp(size) / h.PageSize()
	path := h.sysfsPath()
	return errors.WithHintf(errors.Mark(cause, ErrNoHugePages),
		"Failed to allocate hugepage. Make sure hugepages are configured:\n"+
			"Check %s\n"+
			"You can set it with: echo %d > %s", path, pages, path)
}

// Heap reserves Go heap memory. A positive Limit caps a single reservation.
type Heap struct {
	Limit int
}

func (h Heap) Reserve(size int) ([]byte, error) {
	if size < 1 {
		return nil, errors.Newf("pagealloc: invalid size %d", size)
	}
	if h.Limit > 0 && size > h.Limit {
		return nil, errors.Mark(errors.Newf("pagealloc: %d bytes exceeds heap limit of %d", size, h.Limit), ErrTooLarge)
	}
	words := make([]uint64, (size+7)/8)
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), size), nil
}

func (Heap) Release([]byte) error {
	return nil
}

// AsInt32s views the first n int32 values of buf, which must come from
// Reserve and hold at least 4*n bytes.
func AsInt32s(buf []byte, n int) []int32 {
	if n == 0 {
		return nil
	}
	_ = buf[4*n-1]
	return unsafe.Slice((*int32)(unsafe.Pointer(unsafe.SliceData(buf))), n)
}
