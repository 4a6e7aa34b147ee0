package swr

import "time"

// FragmentStats counts fragments by outcome. Every fragment entering the
// pipeline increments Count and exactly one of the other counters:
//
//	Count == DiscardScissor + DiscardDepth + DiscardShader + DiscardAlpha + Blending + Written
type FragmentStats struct {
	Count          uint64
	DiscardScissor uint64
	DiscardDepth   uint64
	DiscardShader  uint64
	DiscardAlpha   uint64
	Blending       uint64
	Written        uint64

	// Cycles is the time spent in the fragment pipeline. Only measured
	// when profiling is enabled.
	Cycles time.Duration
}

// Discarded returns the number of fragments rejected by any test.
func (s FragmentStats) Discarded() uint64 {
	return s.DiscardScissor + s.DiscardDepth + s.DiscardShader + s.DiscardAlpha
}

func (s *FragmentStats) add(o *FragmentStats) {
	s.Count += o.Count
	s.DiscardScissor += o.DiscardScissor
	s.DiscardDepth += o.DiscardDepth
	s.DiscardShader += o.DiscardShader
	s.DiscardAlpha += o.DiscardAlpha
	s.Blending += o.Blending
	s.Written += o.Written
	s.Cycles += o.Cycles
}

// RasterizerStats counts primitives and work done by the scan converter.
type RasterizerStats struct {
	Batches   uint64
	Points    uint64
	Lines     uint64
	Triangles uint64

	// Culled counts triangles removed by face culling. Rejected counts
	// primitives removed during setup: non-finite or behind-the-eye
	// positions, zero area, or entirely on the negative side of a clip
	// distance.
	Culled   uint64
	Rejected uint64

	// Blocks counts 2x2 pixel blocks with at least one covered pixel.
	Blocks uint64

	// Cycles is the time spent in DrawPrimitives. Only measured when
	// profiling is enabled.
	Cycles time.Duration
}

// Stats combines the fragment and rasterizer counters.
type Stats struct {
	Fragment   FragmentStats
	Rasterizer RasterizerStats
}

// ResetCounters zeroes all counters.
func (s *Stats) ResetCounters() {
	*s = Stats{}
}

// ResetFragmentCounters zeroes the fragment counters.
func (s *Stats) ResetFragmentCounters() {
	s.Fragment = FragmentStats{}
}

// ResetRasterizerCounters zeroes the rasterizer counters.
func (s *Stats) ResetRasterizerCounters() {
	s.Rasterizer = RasterizerStats{}
}
