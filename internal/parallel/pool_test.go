package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("pool should be running after creation")
	}
}

func TestWorkerPool_CreateZeroWorkers(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	if want := runtime.GOMAXPROCS(0); pool.Workers() != want {
		t.Errorf("Workers() = %d, want %d (GOMAXPROCS)", pool.Workers(), want)
	}
}

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	work := make([]func(), 100)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}
	pool.ExecuteAll(work)

	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}
}

func TestWorkerPool_ExecuteAllEmpty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	pool.ExecuteAll(nil)
	pool.ExecuteAll([]func(){})
}

func TestWorkerPool_ExecuteAfterClose(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()

	ran := 0
	pool.ExecuteAll([]func(){func() { ran++ }, func() { ran++ }})
	if ran != 2 {
		t.Errorf("ran = %d after Close, want 2 (inline execution)", ran)
	}
	if pool.IsRunning() {
		t.Error("IsRunning() = true after Close")
	}
}
