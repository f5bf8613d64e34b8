package importer

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State is the position of an import session in its lifecycle.
type State string

const (
	StateIdle          State = "idle"
	StateFileLoaded    State = "file_loaded"
	StateTypeDetected  State = "type_detected"
	StateReadyToCommit State = "ready_to_commit"
	StateCommitting    State = "committing"
	StateDone          State = "done"
	StateFailed        State = "failed"
)

// Session tracks one upload from file load through commit. No session state
// survives the process; every upload starts fresh.
type Session struct {
	mu sync.Mutex

	ID          string
	ProfessorID string
	State       State
	Type        DataType
	Forced      bool
	Sheet       *Sheet
	Detection   Detection
	CreatedAt   time.Time
}

// NewSession creates a session in the Idle state.
func NewSession(professorID string) *Session {
	return &Session{
		ID:          uuid.New().String(),
		ProfessorID: professorID,
		State:       StateIdle,
		Type:        TypeUnrecognized,
		CreatedAt:   time.Now(),
	}
}

// LoadFile attaches a parsed sheet and its detection result. A recognized
// type moves the session straight to ReadyToCommit; an unrecognized one
// parks it in TypeDetected until the caller forces a type.
func (s *Session) LoadFile(sheet *Sheet, detection Detection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State != StateIdle {
		return ErrInvalidTransition
	}

	s.Sheet = sheet
	s.Detection = detection
	s.Type = detection.Type
	if detection.Type == TypeUnrecognized {
		s.State = StateTypeDetected
	} else {
		s.State = StateReadyToCommit
	}
	return nil
}

// ForceType overrides an unrecognized (or detected) classification with an
// explicit one chosen by the user.
func (s *Session) ForceType(t DataType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State != StateTypeDetected && s.State != StateReadyToCommit {
		return ErrInvalidTransition
	}
	if t != TypeStudents && t != TypeGrades {
		return ErrInvalidTransition
	}

	s.Type = t
	s.Forced = true
	s.State = StateReadyToCommit
	return nil
}

// BeginCommit moves the session into Committing. A failed commit may be
// retried, so Failed is a legal starting point.
func (s *Session) BeginCommit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State != StateReadyToCommit && s.State != StateFailed {
		return ErrInvalidTransition
	}
	s.State = StateCommitting
	return nil
}

func (s *Session) FinishCommit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.State = StateDone
}

// FailCommit records a failed commit attempt. The session stays retryable.
func (s *Session) FailCommit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.State = StateFailed
}

// Cancel resets the session to Idle, discarding the loaded sheet. A commit
// in flight still reads the sheet, so cancelling while Committing is illegal.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State == StateCommitting {
		return ErrInvalidTransition
	}

	s.State = StateIdle
	s.Sheet = nil
	s.Type = TypeUnrecognized
	s.Forced = false
	s.Detection = Detection{}
	return nil
}

// Snapshot returns the current state and type without holding the lock for
// the caller.
func (s *Session) Snapshot() (State, DataType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.State, s.Type
}

// sessionTTL is how long an uncommitted upload is kept in memory.
const sessionTTL = 30 * time.Minute

// Store holds the in-memory import sessions for this process.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

func (st *Store) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
}

func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// StartJanitor starts the background sweep that drops expired sessions.
func (st *Store) StartJanitor() {
	go func() {
		log.Println("Import session janitor started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			cutoff := time.Now().Add(-sessionTTL)
			st.mu.Lock()
			for id, s := range st.sessions {
				if s.CreatedAt.Before(cutoff) {
					delete(st.sessions, id)
				}
			}
			st.mu.Unlock()
		}
	}()
}
