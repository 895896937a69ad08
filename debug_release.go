//go:build !inkdebug

package ink

// debugEnabled reports whether invariant checks are compiled in.
const debugEnabled = false

// debugAssert is a no-op in production builds. Callers that detect an
// invariant violation still clamp or recover on their own.
func debugAssert(cond bool, format string, args ...any) {}
