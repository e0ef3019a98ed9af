//go:build amd64 && !noasm

package barrier

import (
	"golang.org/x/sys/cpu"
)

// CPUID 0x80000001, EDX bit 27
const rdtscpBit = 1 << 27

var (
	hasSSE2   = cpu.X86.HasSSE2
	hasRDTSCP = cpuidExtEDX()&rdtscpBit != 0
	name      = barrierName()
)

func barrierName() string {
	switch {
	case hasSSE2 && hasRDTSCP:
		return "rdtscp+lfence"
	case hasSSE2:
		return "lfence"
	}
	return "none"
}

func speculation() {
	if hasRDTSCP {
		rdtscpLfence()
		return
	}
	if hasSSE2 {
		lfence()
	}
}

func rdtscpLfence()

func lfence()

func cpuidExtEDX() uint32
