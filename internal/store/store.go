// Package store holds the ordered in-memory collection of contacts.
package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/smileynet/addressbook/internal/contact"
)

// ErrStaleMatch indicates a Match whose entry is no longer in the store.
var ErrStaleMatch = errors.New("store: match no longer present")

// Match is a search hit. Index is the entry's position when the search ran;
// ID identifies the entry for as long as it stays in the store.
type Match struct {
	Index   int
	ID      uuid.UUID
	Contact contact.Contact
}

type entry struct {
	id      uuid.UUID
	contact contact.Contact
}

// Store is an ordered collection of contacts. Insertion order is preserved
// and duplicate names are allowed. Store is not safe for concurrent use.
type Store struct {
	entries []entry
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// Add appends c to the end of the collection.
func (s *Store) Add(c contact.Contact) {
	s.entries = append(s.entries, entry{id: uuid.New(), contact: c})
}

// Remove deletes every contact whose name equals name exactly, keeping the
// relative order of the rest. It reports whether anything was removed.
func (s *Store) Remove(name string) bool {
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.contact.Name != name {
			kept = append(kept, e)
		}
	}
	removed := len(kept) != len(s.entries)
	// Zero the tail so dropped contacts can be collected.
	clear(s.entries[len(kept):])
	s.entries = kept
	return removed
}

// Search returns every contact named name in collection order, or nil.
func (s *Store) Search(name string) []Match {
	var matches []Match
	for i, e := range s.entries {
		if e.contact.Name == name {
			matches = append(matches, Match{Index: i, ID: e.id, Contact: e.contact})
		}
	}
	return matches
}

// Replace overwrites the entry m refers to with c. The entry keeps its
// position and ID.
func (s *Store) Replace(m Match, c contact.Contact) error {
	if m.Index >= 0 && m.Index < len(s.entries) && s.entries[m.Index].id == m.ID {
		s.entries[m.Index].contact = c
		return nil
	}
	// The index moved under a removal; fall back to the ID.
	for i := range s.entries {
		if s.entries[i].id == m.ID {
			s.entries[i].contact = c
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrStaleMatch, m.ID)
}

// All returns a copy of the contacts in collection order.
func (s *Store) All() []contact.Contact {
	out := make([]contact.Contact, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.contact
	}
	return out
}

// Size returns the number of contacts.
func (s *Store) Size() int {
	return len(s.entries)
}

// Clear removes every contact.
func (s *Store) Clear() {
	s.entries = nil
}
