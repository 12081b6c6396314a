package flags

import "errors"

// DefaultReason is recorded when a video is flagged without a reason
const DefaultReason = "Not supplied"

var (
	ErrAlreadyFlagged = errors.New("video is already flagged")
	ErrNotFlagged     = errors.New("video is not flagged")
)

// Store maps video ids to their moderation reason. Presence means the video is hidden.
type Store struct {
	reasons map[string]string
}

func NewStore() *Store {
	return &Store{reasons: make(map[string]string)}
}

// Flag records reason for id and returns the stored reason
func (s *Store) Flag(id, reason string) (string, error) {
	if _, exists := s.reasons[id]; exists {
		return "", ErrAlreadyFlagged
	}
	if reason == "" {
		reason = DefaultReason
	}
	s.reasons[id] = reason
	return reason, nil
}

func (s *Store) Unflag(id string) error {
	if _, exists := s.reasons[id]; !exists {
		return ErrNotFlagged
	}
	delete(s.reasons, id)
	return nil
}

func (s *Store) IsFlagged(id string) bool {
	_, ok := s.reasons[id]
	return ok
}

// Reason returns the flag reason for id, or "" when it is not flagged
func (s *Store) Reason(id string) string {
	return s.reasons[id]
}

// All returns a copy of every flag
func (s *Store) All() map[string]string {
	out := make(map[string]string, len(s.reasons))
	for id, reason := range s.reasons {
		out[id] = reason
	}
	return out
}
