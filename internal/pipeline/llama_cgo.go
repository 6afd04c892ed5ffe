//go:build llama

package pipeline

// cgo link directives for the in-process llama rewriter. libllama.so is
// expected next to the built binary (./bin): -L covers link time and the
// $ORIGIN rpath covers load time, so no loader environment is needed.
/*
#cgo LDFLAGS: -Wl,-rpath,'$ORIGIN' -L${SRCDIR}/../../bin -lllama
*/
import "C"
