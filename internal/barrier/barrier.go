// Package barrier provides the serialization point the harness places after
// every measured lookup, so the processor cannot overlap consecutive
// searches speculatively.
//
// Go cannot inline assembly, so on amd64 each barrier also costs a call.
// Elsewhere Speculation is a no-op and Available reports false.
package barrier

// Speculation waits for all earlier instructions to complete before any
// later instruction starts.
func Speculation() {
	speculation()
}

// Available reports whether Speculation emits a real barrier.
func Available() bool {
	return name != "none"
}

// Name describes the instruction sequence Speculation executes.
func Name() string {
	return name
}
