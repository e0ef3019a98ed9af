//go:build !linux

package pagealloc

import "github.com/cockroachdb/errors"

func (h HugePages) Reserve(size int) ([]byte, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	err := errors.Mark(errors.New("pagealloc: hugepages are only supported on linux"), ErrNoHugePages)
	return nil, errors.WithHint(err, "Run with -alloc=heap.")
}

func (HugePages) Release([]byte) error {
	return nil
}
