package hashing

// DuplicateDetector records which item index first produced each hash.
//
// Items may be observed in any order: the lowest index always owns a hash,
// so the set of duplicates does not depend on scheduling.
type DuplicateDetector struct {
	first        map[uint64]int
	observations int
}

// NewDuplicateDetector creates an empty detector.
func NewDuplicateDetector() *DuplicateDetector {
	return &DuplicateDetector{
		first: make(map[uint64]int),
	}
}

// Observe records that item index hashed to hash. It reports whether the
// hash had already been observed under any index.
func (d *DuplicateDetector) Observe(hash uint64, index int) bool {
	d.observations++
	owner, seen := d.first[hash]
	if !seen || index < owner {
		d.first[hash] = index
	}
	return seen
}

// FirstIndex returns the lowest index observed for hash.
func (d *DuplicateDetector) FirstIndex(hash uint64) (int, bool) {
	owner, ok := d.first[hash]
	return owner, ok
}

// IsDuplicate reports whether a lower index than index produced hash.
func (d *DuplicateDetector) IsDuplicate(hash uint64, index int) bool {
	owner, ok := d.first[hash]
	return ok && owner < index
}

// DuplicateCount returns the number of observations that repeated a hash.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.observations - len(d.first)
}

// UniqueCount returns the number of distinct hashes observed.
func (d *DuplicateDetector) UniqueCount() int {
	return len(d.first)
}
