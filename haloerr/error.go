/*Package haloerr contains simple functions for reporting haloflow errors,
mirroring the External/Internal error registers used throughout the rest of
this author's tools.
*/
package haloerr

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
)

// Debug gates the programming-error assertions raised by Internal. In debug
// builds (the default) an internal error is fatal, matching spec section 7's
// "fatal in debug, undefined in release" language for OutOfBounds,
// TagMismatch, and IteratorMismatch. Setting Debug to false is equivalent to
// a release build: the callers still run their checks, but Internal returns
// without reporting and execution continues past the violation.
var Debug = true

// External reports an error to stderr and kills the process. Use it when an
// error is something a caller could reasonably be expected to fix through
// changes to configuration or input data, e.g. UnevenPartition.
func External(format string, a ...interface{}) {
	log.Printf("haloflow exited early with the following error:\n"+format, a...)
	os.Exit(1)
}

// Internal reports an error to stderr along with a stack trace and kills the
// process. Use it when the error indicates a programming error: OutOfBounds,
// TagMismatch, IteratorMismatch. A no-op when Debug is false.
func Internal(format string, a ...interface{}) {
	if !Debug {
		return
	}
	log.Println("haloflow hit an internal invariant violation:")
	fmt.Fprintf(os.Stderr, format, a...)
	fmt.Fprintf(os.Stderr, "\n\n")
	debug.PrintStack()
	os.Exit(1)
}

// Transport reports a TransportFailure: fatal, naming the process rank.
func Transport(rank int, format string, a ...interface{}) {
	log.Fatalf("haloflow rank %d: transport failure: "+format, append([]interface{}{rank}, a...)...)
}
