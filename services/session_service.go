package services

import (
	"errors"
	"sync"

	"foodcart/cart"
	"foodcart/checkout"
)

// ErrSessionEnded is returned by Do on a session that End already dropped.
var ErrSessionEnded = errors.New("session ended")

// Session is one user's cart and checkout wizard. Every access goes through
// Do so calls are applied one at a time, in arrival order.
type Session struct {
	mu     sync.Mutex
	ended  bool
	cart   *cart.Store
	wizard *checkout.Wizard
}

func (s *Session) Do(fn func(c *cart.Store, w *checkout.Wizard) error) error {
	ok, err := s.run(fn)
	if !ok {
		return ErrSessionEnded
	}
	return err
}

func (s *Session) run(fn func(c *cart.Store, w *checkout.Wizard) error) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return false, nil
	}
	return true, fn(s.cart, s.wizard)
}

// SessionStore creates sessions on first use and drops them on End.
type SessionStore struct {
	mu       sync.Mutex
	promo    checkout.Promo
	sessions map[uint]*Session
}

func NewSessionStore(promo checkout.Promo) *SessionStore {
	return &SessionStore{promo: promo, sessions: make(map[uint]*Session)}
}

func (st *SessionStore) Get(userID uint) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[userID]; ok {
		return s
	}
	c := cart.New()
	s := &Session{cart: c, wizard: checkout.New(c, st.promo)}
	st.sessions[userID] = s
	return s
}

// Do runs fn on the user's live session. A session ended while the caller
// waited for its lock is skipped and fn runs on the one that replaced it.
func (st *SessionStore) Do(userID uint, fn func(c *cart.Store, w *checkout.Wizard) error) error {
	for {
		if ok, err := st.Get(userID).run(fn); ok {
			return err
		}
	}
}

// End tears the session down. A session with a submission in flight is kept.
func (st *SessionStore) End(userID uint) error {
	st.mu.Lock()
	s, ok := st.sessions[userID]
	st.mu.Unlock()
	if !ok {
		return nil
	}

	err := s.Do(func(_ *cart.Store, w *checkout.Wizard) error {
		if w.Submitting() {
			return checkout.ErrSubmitting
		}
		s.ended = true
		st.mu.Lock()
		// Get may have been raced by a new session; only drop the one we checked
		if st.sessions[userID] == s {
			delete(st.sessions, userID)
		}
		st.mu.Unlock()
		return nil
	})
	if errors.Is(err, ErrSessionEnded) {
		return nil
	}
	return err
}

func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
