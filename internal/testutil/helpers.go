// internal/testutil/helpers.go
package testutil

import (
	"testing"
	"time"
)

// Receive espera un valor del canal o falla el test tras timeout.
func Receive[T any](t *testing.T, ch <-chan T, timeout time.Duration) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(timeout):
		t.Fatalf("no value received within %v", timeout)
	}
	var zero T
	return zero
}
