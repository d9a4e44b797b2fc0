// Package strset provides an open-addressing hash set over strings.
//
// The set underlies identifier collection, the symbol-table name sets, and
// the dependency-closure working set, so membership must never produce a
// false negative, including across growth and rehashing.
package strset

const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211

	minCapacity = 16
)

// Set is a case-sensitive string set using 64-bit FNV-1a hashing with
// linear probing. Capacity is always a power of two so slots can be
// selected with a mask; the table doubles before the load factor would
// exceed 0.5. The empty string is reserved as the vacant-slot marker and
// cannot be stored.
type Set struct {
	keys []string
	size int
}

// New returns a set sized to hold at least hint keys before growing.
func New(hint int) *Set {
	capacity := minCapacity
	for capacity < hint*2 {
		capacity *= 2
	}
	return &Set{keys: make([]string, capacity)}
}

func hash(key string) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < len(key); i++ {
		h ^= uint64(key[i])
		h *= fnvPrime64
	}
	return h
}

// Add inserts key into the set. Adding a key that is already present, or
// the empty string, is a no-op.
func (s *Set) Add(key string) {
	if key == "" {
		return
	}
	if (s.size+1)*2 > len(s.keys) {
		s.grow()
	}
	mask := uint64(len(s.keys) - 1)
	idx := hash(key) & mask
	for s.keys[idx] != "" {
		if s.keys[idx] == key {
			return
		}
		idx = (idx + 1) & mask
	}
	s.keys[idx] = key
	s.size++
}

// Has reports whether key is a member of the set.
func (s *Set) Has(key string) bool {
	if key == "" {
		return false
	}
	mask := uint64(len(s.keys) - 1)
	idx := hash(key) & mask
	for s.keys[idx] != "" {
		if s.keys[idx] == key {
			return true
		}
		idx = (idx + 1) & mask
	}
	return false
}

// Len returns the number of keys in the set.
func (s *Set) Len() int {
	return s.size
}

// Keys returns all members in probe-slot order. The order is unspecified
// and callers must not rely on it.
func (s *Set) Keys() []string {
	out := make([]string, 0, s.size)
	for _, k := range s.keys {
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

func (s *Set) grow() {
	old := s.keys
	s.keys = make([]string, len(old)*2)
	s.size = 0
	for _, k := range old {
		if k != "" {
			s.Add(k)
		}
	}
}
