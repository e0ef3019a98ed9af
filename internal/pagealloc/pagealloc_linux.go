//go:build linux

package pagealloc

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

func (h HugePages) Reserve(size int) ([]byte, error) {
	if size < 1 {
		return nil, errors.Newf("pagealloc: invalid size %d", size)
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	length := h.roundUp(size)
	flags := unix.MAP_PRIVATE | unix.MAP_ANONYMOUS | unix.MAP_HUGETLB | h.shift()<<unix.MAP_HUGE_SHIFT
	mem, err := unix.Mmap(-1, 0, length, unix.PROT_READ|unix.PROT_WRITE, flags)
	if err != nil {
		err = errors.Wrapf(err, "pagealloc: mmap %d bytes of %d-byte hugepages", length, h.PageSize())
		// ENOMEM: no free pages of this size; EINVAL: the size is not supported
		if errors.Is(err, unix.ENOMEM) || errors.Is(err, unix.EINVAL) {
			return nil, h.unavailable(err, size)
		}
		return nil, err
	}
	return mem[:size], nil
}

// Release unmaps the whole mapping behind buf, including the rounding past
// len(buf).
func (HugePages) Release(buf []byte) error {
	return errors.Wrap(unix.Munmap(buf[:cap(buf)]), "pagealloc: munmap")
}
