//go:build !swrdebug

package swr

const debugChecks = false
