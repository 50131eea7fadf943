package contact_test

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/contactdesk/internal/contact"
)

// memStore is an in-memory contact.Store.
type memStore struct {
	mu       sync.Mutex
	contacts []contact.Contact
	err      error
	lastList contact.Filter
}

func (s *memStore) Create(_ context.Context, c *contact.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	c.ID = bson.NewObjectID()
	s.contacts = append(s.contacts, *c)
	return nil
}

func (s *memStore) FindByID(_ context.Context, id string) (contact.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	oid, err := contact.ParseID(id)
	if err != nil {
		return contact.Contact{}, err
	}
	for _, c := range s.contacts {
		if c.ID == oid {
			return c, nil
		}
	}
	return contact.Contact{}, contact.ErrNotFound
}

func (s *memStore) List(_ context.Context, f contact.Filter) ([]contact.Contact, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastList = f
	if s.err != nil {
		return nil, 0, s.err
	}

	var matched []contact.Contact
	for _, c := range slices.Backward(s.contacts) {
		if f.Status == "" || c.Status == f.Status {
			matched = append(matched, c)
		}
	}
	total := int64(len(matched))
	start := min(int(f.Skip()), len(matched))
	end := min(start+f.Limit, len(matched))
	return matched[start:end], total, nil
}

func (s *memStore) UpdateStatus(_ context.Context, id string, status contact.Status, at time.Time) (contact.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	oid, err := contact.ParseID(id)
	if err != nil {
		return contact.Contact{}, err
	}
	for i, c := range s.contacts {
		if c.ID == oid {
			s.contacts[i].Status = status
			s.contacts[i].UpdatedAt = at
			return s.contacts[i], nil
		}
	}
	return contact.Contact{}, contact.ErrNotFound
}
