//go:build swrdebug

package swr

// debugChecks enables contract assertions in DrawPrimitives.
const debugChecks = true
