package search

import "github.com/cockroachdb/errors"

// Func searches a sorted slice for target.
type Func func(a []int32, target int32) int

// Binary returns the index of target in the sorted slice a, or -1 if target
// is not present.
func Binary(a []int32, target int32) int {
	left, right := 0, len(a)-1
	for left <= right {
		mid := left + (right-left)/2
		switch v := a[mid]; {
		case v == target:
			return mid
		case v < target:
			left = mid + 1
		default:
			right = mid - 1
		}
	}
	return -1
}

// Branchless narrows the window by halving it and moves the base with a
// sign mask instead of a conditional jump.
//
// It never checks for equality: the result is the lower-bound insertion
// point of target, clamped to len(a)-1. When target is present that is its
// first index; when it is absent the caller has to compare a[i] itself.
// An empty slice yields 0.
func Branchless(a []int32, target int32) int {
	base, n := 0, len(a)
	for n > 1 {
		half := n >> 1
		// all ones when a[base+half-1] < target, zero otherwise
		lt := int((int64(a[base+half-1]) - int64(target)) >> 63)
		base += half & lt
		n -= half
	}
	return base
}

// ErrUnknownKind is returned by ParseKind for names other than "regular"
// and "branchless".
var ErrUnknownKind = errors.New("unknown search type")

// Kind selects a search engine.
type Kind uint8

const (
	// KindRegular selects Binary.
	KindRegular Kind = iota
	// KindBranchless selects Branchless.
	KindBranchless
)

var kindNames = [...]string{
	KindRegular:    "regular",
	KindBranchless: "branchless",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Func returns the engine implementing k.
func (k Kind) Func() Func {
	if k == KindBranchless {
		return Branchless
	}
	return Binary
}

// ParseKind maps "regular" or "branchless" to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if s == name {
			return Kind(k), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownKind, "%q", s)
}
