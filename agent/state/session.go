package state

import (
	"errors"
	"fmt"
	"strings"
	"time"

	contractx "github.com/foliopilot/foliopilot/agent/contract"
)

// maxTurnHistory bounds the transcript kept per session; older turns roll off.
const maxTurnHistory = 50

type Role string

const (
	RoleUser    Role = "user"
	RoleCopilot Role = "copilot"
)

// SessionState is the persistent record of one copilot conversation: the
// transcript, the topics extracted so far, and the haikus already generated.
type SessionState struct {
	SessionID   string `json:"session_id"`
	UserID      string `json:"user_id"`
	ChannelType string `json:"channel_type"`

	ActiveTopic string        `json:"active_topic,omitempty"`
	Turns       []Turn        `json:"turns,omitempty"`
	Haikus      []HaikuRecord `json:"haikus,omitempty"`

	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Turn struct {
	Role Role      `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

type HaikuRecord struct {
	Topic string          `json:"topic"`
	Haiku contractx.Haiku `json:"haiku"`
	At    time.Time       `json:"at"`
}

var (
	ErrEmptyTurn      = errors.New("turn text is empty")
	ErrInvalidRole    = errors.New("turn role is invalid")
	ErrInvalidHistory = errors.New("session history is invalid")
)

func NewSessionState(sessionID, userID, channelType string, now time.Time) *SessionState {
	return &SessionState{
		SessionID:   sessionID,
		UserID:      userID,
		ChannelType: channelType,
		Turns:       make([]Turn, 0, 8),
		Haikus:      make([]HaikuRecord, 0, 4),
		Version:     1,
		UpdatedAt:   now.UTC(),
	}
}

func (s *SessionState) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

// EnsureHistory makes sure the slice fields are initialized.
func (s *SessionState) EnsureHistory() {
	if s.Turns == nil {
		s.Turns = make([]Turn, 0, 8)
	}
	if s.Haikus == nil {
		s.Haikus = make([]HaikuRecord, 0, 4)
	}
}

// AppendTurn records one transcript entry, trimming history past the cap.
func (s *SessionState) AppendTurn(role Role, text string, now time.Time) error {
	if s == nil {
		return errors.New("nil session state")
	}
	if role != RoleUser && role != RoleCopilot {
		return fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyTurn
	}

	s.EnsureHistory()
	s.Turns = append(s.Turns, Turn{Role: role, Text: text, At: now.UTC()})
	if len(s.Turns) > maxTurnHistory {
		s.Turns = s.Turns[len(s.Turns)-maxTurnHistory:]
	}
	s.Touch(now)
	return nil
}

// RecordHaiku stores a generated haiku and promotes its topic to active.
func (s *SessionState) RecordHaiku(topic string, haiku contractx.Haiku, now time.Time) error {
	if s == nil {
		return errors.New("nil session state")
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return fmt.Errorf("%w: topic is empty", ErrInvalidHistory)
	}
	if err := haiku.Validate(); err != nil {
		return err
	}

	s.EnsureHistory()
	s.Haikus = append(s.Haikus, HaikuRecord{Topic: topic, Haiku: haiku, At: now.UTC()})
	s.ActiveTopic = topic
	s.Touch(now)
	return nil
}

// LastHaiku returns the most recent haiku record, if any.
func (s *SessionState) LastHaiku() (HaikuRecord, bool) {
	if s == nil || len(s.Haikus) == 0 {
		return HaikuRecord{}, false
	}
	return s.Haikus[len(s.Haikus)-1], true
}

func (s *SessionState) Validate() error {
	if strings.TrimSpace(s.SessionID) == "" {
		return ErrInvalidSession
	}
	for i, turn := range s.Turns {
		if turn.Role != RoleUser && turn.Role != RoleCopilot {
			return fmt.Errorf("%w: turn %d has role %q", ErrInvalidHistory, i, turn.Role)
		}
		if strings.TrimSpace(turn.Text) == "" {
			return fmt.Errorf("%w: turn %d is empty", ErrInvalidHistory, i)
		}
	}
	for i, rec := range s.Haikus {
		if strings.TrimSpace(rec.Topic) == "" {
			return fmt.Errorf("%w: haiku %d has no topic", ErrInvalidHistory, i)
		}
		if err := rec.Haiku.Validate(); err != nil {
			return fmt.Errorf("haiku %d: %w", i, err)
		}
	}
	return nil
}
