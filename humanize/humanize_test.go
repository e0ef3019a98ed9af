package humanize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  string
	}{
		{0, "0.00 B"},
		{1, "1.00 B"},
		{1023, "1023.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{4000, "3.91 KB"},
		{1048576, "1.00 MB"},
		{1 << 30, "1.00 GB"},
		{3 << 30, "3.00 GB"},
		// GB is the largest unit
		{1 << 40, "1024.00 GB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.bytes), "FormatSize(%d)", tt.bytes)
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 ns"},
		{1, "1000 ns"},
		{500, "500000 ns"},
		{999, "999000 ns"},
		{1000, "1.00 µs"},
		{1500, "1.50 µs"},
		{999999, "1000.00 µs"},
		{2500000, "2.50 ms"},
		{1000000000, "1.00 s"},
		{12345678901, "12.35 s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTime(tt.in), "FormatTime(%d)", tt.in)
	}
}
