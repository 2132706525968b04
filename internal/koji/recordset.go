package koji

import (
	"github.com/elliotchance/orderedmap/v2"
)

// element is a record that can live in a recordSet.
type element[T any] interface {
	Hash() uint64
	Equal(other T) bool
}

// recordSet is a hashed set of records with structural membership.
// Buckets are keyed by Hash; records in one bucket are told apart with
// Equal. Iteration follows first insertion, which keeps encodings stable
// but is not part of set identity.
type recordSet[T element[T]] struct {
	buckets *orderedmap.OrderedMap[uint64, []T]
	size    int
}

func newRecordSet[T element[T]]() *recordSet[T] {
	return &recordSet[T]{buckets: orderedmap.NewOrderedMap[uint64, []T]()}
}

// add inserts v unless an equal record is already present.
func (s *recordSet[T]) add(v T) bool {
	h := v.Hash()
	bucket, _ := s.buckets.Get(h)
	for _, existing := range bucket {
		if existing.Equal(v) {
			return false
		}
	}
	s.buckets.Set(h, append(bucket, v))
	s.size++
	return true
}

func (s *recordSet[T]) contains(v T) bool {
	bucket, ok := s.buckets.Get(v.Hash())
	if !ok {
		return false
	}
	for _, existing := range bucket {
		if existing.Equal(v) {
			return true
		}
	}
	return false
}

func (s *recordSet[T]) len() int {
	if s == nil {
		return 0
	}
	return s.size
}

func (s *recordSet[T]) items() []T {
	if s == nil {
		return nil
	}
	out := make([]T, 0, s.size)
	for el := s.buckets.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value...)
	}
	return out
}

// equal compares membership only.
func (s *recordSet[T]) equal(o *recordSet[T]) bool {
	if s.len() != o.len() {
		return false
	}
	for _, v := range s.items() {
		if !o.contains(v) {
			return false
		}
	}
	return true
}

// hash combines element hashes with addition so insertion order is irrelevant.
func (s *recordSet[T]) hash() uint64 {
	var sum uint64
	for _, v := range s.items() {
		sum += v.Hash()
	}
	h := newHasher()
	h.int(int64(s.len()))
	h.uint(sum)
	return h.sum()
}
