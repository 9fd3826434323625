// Package appstate owns the signed-in user shared by every screen of the
// client. Screens read snapshots; only the auth flows and the profile
// editor's success path write.
package appstate

import (
	"sync"

	"github.com/dmitrijs2005/gophprofile/internal/client/models"
)

type Store struct {
	mu     sync.RWMutex
	user   models.User
	subs   map[int]chan models.User
	nextID int
}

func NewStore() *Store {
	return &Store{subs: make(map[int]chan models.User)}
}

// Get returns a copy of the current user.
func (s *Store) Get() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Authenticated reports whether a user with a non-empty ID is present.
func (s *Store) Authenticated() bool {
	return s.Get().ID != ""
}

// Set replaces the user wholesale and notifies subscribers.
func (s *Store) Set(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
	s.publish(u)
}

// Clear signs the user out.
func (s *Store) Clear() {
	s.Set(models.User{})
}

// Subscribe returns a channel that receives the latest user after each
// change. A slow reader only ever sees the newest snapshot. cancel closes
// the channel.
func (s *Store) Subscribe() (<-chan models.User, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan models.User, 1)
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// publish must be called with mu held.
func (s *Store) publish(u models.User) {
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- u
	}
}
