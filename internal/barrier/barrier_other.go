//go:build !amd64 || noasm

package barrier

const name = "none"

func speculation() {}
