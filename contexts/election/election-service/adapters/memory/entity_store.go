package memory

import (
	"fmt"
	"sync"

	domainerrors "ballotbox/contexts/election/election-service/domain/errors"
)

// Entity is the contract shared by candidates and voters: a stable identifier
// and a way to clear the field an election reset touches.
type Entity[T any] interface {
	EntityID() int
	Cleared() T
}

// EntityStore is an insertion-ordered collection with identifier lookup.
type EntityStore[T Entity[T]] struct {
	mu    sync.RWMutex
	items []T
	index map[int]int
}

func NewEntityStore[T Entity[T]]() *EntityStore[T] {
	return &EntityStore[T]{
		index: make(map[int]int),
	}
}

func (s *EntityStore[T]) Add(entity T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := entity.EntityID()
	if _, exists := s.index[id]; exists {
		return fmt.Errorf("%w: %d", domainerrors.ErrDuplicateIdentifier, id)
	}
	s.index[id] = len(s.items)
	s.items = append(s.items, entity)
	return nil
}

// Replace overwrites the stored entity carrying the same identifier.
func (s *EntityStore[T]) Replace(entity T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := entity.EntityID()
	pos, exists := s.index[id]
	if !exists {
		return fmt.Errorf("%w: %d", domainerrors.ErrSelectionMissing, id)
	}
	s.items[pos] = entity
	return nil
}

// FindAll returns a copy in insertion order.
func (s *EntityStore[T]) FindAll() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]T, len(s.items))
	copy(items, s.items)
	return items
}

func (s *EntityStore[T]) FindByID(id int) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pos, exists := s.index[id]
	if !exists {
		var zero T
		return zero, false
	}
	return s.items[pos], true
}

func (s *EntityStore[T]) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.items {
		s.items[i] = item.Cleared()
	}
}

func (s *EntityStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
