package spawn

import "github.com/google/uuid"

// Session is the mutable state of one spawn run.
type Session struct {
	RunID        uuid.UUID
	Spawned      int
	ResetAllowed bool
	// Live holds handles created since the last reset, in spawn order.
	Live []Handle
}

func newSession() *Session {
	return &Session{RunID: uuid.New()}
}

// restart zeroes the counters and hands back the handles that need tearing down.
func (s *Session) restart() []Handle {
	live := s.Live
	s.Spawned = 0
	s.ResetAllowed = false
	s.Live = nil
	s.RunID = uuid.New()
	return live
}

func (s *Session) clone() Session {
	out := *s
	out.Live = append([]Handle(nil), s.Live...)
	return out
}

// Mode is the coarse state derived from the session and config.
type Mode int

const (
	ModeIdle Mode = iota
	ModeCounting
	ModeExhausted
	ModeUnlimited
)

func (m Mode) String() string {
	switch m {
	case ModeCounting:
		return "counting"
	case ModeExhausted:
		return "exhausted"
	case ModeUnlimited:
		return "unlimited"
	default:
		return "idle"
	}
}
