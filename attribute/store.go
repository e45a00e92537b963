package attribute

import (
	"fmt"
	"sort"
)

// ElementType distinguishes the two element families of a graph.
type ElementType uint8

const (
	// ElementVertex addresses vertex attributes.
	ElementVertex ElementType = iota
	// ElementTransaction addresses transaction (edge) attributes.
	ElementTransaction
)

func (e ElementType) String() string {
	switch e {
	case ElementVertex:
		return "vertex"
	case ElementTransaction:
		return "transaction"
	default:
		return fmt.Sprintf("ElementType(%d)", uint8(e))
	}
}

// ParseElementType resolves "vertex" or "transaction".
func ParseElementType(s string) (ElementType, error) {
	switch s {
	case "vertex":
		return ElementVertex, nil
	case "transaction":
		return ElementTransaction, nil
	}
	return 0, fmt.Errorf("unknown element type %q", s)
}

// Attribute is one named column of a Store.
type Attribute struct {
	ID          int
	ElementType ElementType
	Name        string
	Description Description
}

type attrKey struct {
	et   ElementType
	name string
}

// Store holds the attributes of one graph. Like the graph itself it has a
// single writer; callers serialize mutation externally.
type Store struct {
	opts   []Option
	nextID int
	byID   map[int]*Attribute
	byName map[attrKey]int
}

// NewStore creates an empty store. The options apply to every column it
// creates.
func NewStore(opts ...Option) *Store {
	return &Store{
		opts:   opts,
		byID:   make(map[int]*Attribute),
		byName: make(map[attrKey]int),
	}
}

// Add creates an attribute of the named type and returns its id.
func (s *Store) Add(et ElementType, name, typeName string) (int, error) {
	d, err := NewByName(typeName, s.opts...)
	if err != nil {
		return 0, err
	}
	return s.Attach(et, name, d)
}

// Attach registers an existing column under a name.
func (s *Store) Attach(et ElementType, name string, d Description) (int, error) {
	id := s.nextID
	if err := s.AttachAt(id, et, name, d); err != nil {
		return 0, err
	}
	return id, nil
}

// AttachAt registers a column under a fixed id, as when restoring a saved
// store. Later ids continue above it.
func (s *Store) AttachAt(id int, et ElementType, name string, d Description) error {
	if id < 0 {
		return fmt.Errorf("attribute id %d out of range", id)
	}
	if _, ok := s.byID[id]; ok {
		return fmt.Errorf("%w: id %d", ErrDuplicateAttribute, id)
	}
	key := attrKey{et, name}
	if _, ok := s.byName[key]; ok {
		return fmt.Errorf("%w: %s %q", ErrDuplicateAttribute, et, name)
	}
	s.byID[id] = &Attribute{ID: id, ElementType: et, Name: name, Description: d}
	s.byName[key] = id
	s.nextID = max(s.nextID, id+1)
	return nil
}

// NextID returns the id the next Add or Attach will assign.
func (s *Store) NextID() int { return s.nextID }

// Reserve makes every later id at least next.
func (s *Store) Reserve(next int) { s.nextID = max(s.nextID, next) }

// Get returns the attribute with the given id.
func (s *Store) Get(id int) (*Attribute, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// Description returns the column of attribute id.
func (s *Store) Description(id int) (Description, bool) {
	a, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return a.Description, true
}

// ByName looks up an attribute by element type and name.
func (s *Store) ByName(et ElementType, name string) (*Attribute, bool) {
	id, ok := s.byName[attrKey{et, name}]
	if !ok {
		return nil, false
	}
	return s.byID[id], true
}

// Attributes returns all attributes ordered by id.
func (s *Store) Attributes() []*Attribute {
	out := make([]*Attribute, 0, len(s.byID))
	for _, a := range s.byID {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Remove deletes attribute id. Ids are never reused.
func (s *Store) Remove(id int) bool {
	a, ok := s.byID[id]
	if !ok {
		return false
	}
	delete(s.byID, id)
	delete(s.byName, attrKey{a.ElementType, a.Name})
	return true
}

// Len returns the number of attributes.
func (s *Store) Len() int { return len(s.byID) }
