package hashing

import "sync"

// ThreadSafeDuplicateDetector wraps DuplicateDetector with mutex protection for concurrent access.
type ThreadSafeDuplicateDetector struct {
	detector *DuplicateDetector
	mu       sync.RWMutex
}

// NewThreadSafeDuplicateDetector creates a new thread-safe detector.
func NewThreadSafeDuplicateDetector() *ThreadSafeDuplicateDetector {
	return &ThreadSafeDuplicateDetector{
		detector: NewDuplicateDetector(),
	}
}

// Observe atomically records hash for index.
func (d *ThreadSafeDuplicateDetector) Observe(hash uint64, index int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.detector.Observe(hash, index)
}

// IsDuplicate reports whether a lower index than index produced hash.
func (d *ThreadSafeDuplicateDetector) IsDuplicate(hash uint64, index int) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.detector.IsDuplicate(hash, index)
}

// FirstIndex returns the lowest index observed for hash.
func (d *ThreadSafeDuplicateDetector) FirstIndex(hash uint64) (int, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.detector.FirstIndex(hash)
}

// DuplicateCount returns the number of observations that repeated a hash.
func (d *ThreadSafeDuplicateDetector) DuplicateCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.detector.DuplicateCount()
}

// UniqueCount returns the number of distinct hashes observed.
func (d *ThreadSafeDuplicateDetector) UniqueCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.detector.UniqueCount()
}
