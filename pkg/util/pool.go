package util

import "runtime"

// GetOptimalPoolSize returns the worker count for CPU-bound batch work
// (parser pools, per-component extraction workers).
//
// Formula: min(max(runtime.NumCPU() * 2, 4), 32)
//
//   - Minimum 4: some parallelism even on weak machines
//   - 2x CPU cores: CGO-heavy parsing blocks OS threads, so oversubscribe
//   - Maximum 32: caps memory held by per-worker parser instances
func GetOptimalPoolSize() int {
	poolSize := runtime.NumCPU() * 2

	if poolSize < 4 {
		poolSize = 4
	}
	if poolSize > 32 {
		poolSize = 32
	}

	return poolSize
}

// GetOptimalPoolSizeWithOverride returns the pool size, honoring an
// explicit override when it is positive (testing/tuning).
func GetOptimalPoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return GetOptimalPoolSize()
}
