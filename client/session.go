package client

import "sync"

// Session holds the token id returned by a successful save. The zero value is
// an unset session.
type Session struct {
	mu      sync.Mutex
	tokenID int64
	set     bool
}

func (s *Session) TokenID() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenID, s.set
}

func (s *Session) setTokenID(id int64) {
	s.mu.Lock()
	s.tokenID, s.set = id, true
	s.mu.Unlock()
}

// Reset returns the session to the state of a freshly loaded page.
func (s *Session) Reset() {
	s.mu.Lock()
	s.tokenID, s.set = 0, false
	s.mu.Unlock()
}
