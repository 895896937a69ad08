//go:build inkdebug

package ink

import "fmt"

// debugEnabled reports whether invariant checks are compiled in.
const debugEnabled = true

// debugAssert panics when cond is false. Compiled in only under the
// inkdebug build tag; production builds log and recover instead.
func debugAssert(cond bool, format string, args ...any) {
	if !cond {
		panic("ink: invariant violated: " + fmt.Sprintf(format, args...))
	}
}
