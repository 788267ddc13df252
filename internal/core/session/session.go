// Package session holds the state of one planning-poker session: its phase,
// the bound voter identity, and the task store.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/sprintpoker/internal/core/logging"
	"github.com/colonyops/sprintpoker/internal/core/poker"
)

var (
	// ErrNotActive is returned by task operations outside the active phase.
	ErrNotActive = errors.New("session is not active")
	// ErrInvalidTransition is returned when a phase change is not allowed.
	ErrInvalidTransition = errors.New("invalid phase transition")
	// ErrUserRequired is returned when voting before a name is bound.
	ErrUserRequired = errors.New("voter name is required")
	// ErrUserAlreadySet is returned when binding a second name.
	ErrUserAlreadySet = errors.New("voter name already set")
	// ErrIdentifierRequired is returned when adding a task with a blank identifier.
	ErrIdentifierRequired = errors.New("task identifier is required")
)

// EndReport describes the state of the session when it moved to the summary.
type EndReport struct {
	Tasks      int
	Unrevealed int
}

// Warning returns a note about unrevealed tasks, or "" when every task was
// revealed. Ending a session is never blocked by unrevealed tasks.
func (r EndReport) Warning() string {
	if r.Unrevealed == 0 || r.Tasks == 0 {
		return ""
	}
	return fmt.Sprintf("%d of %d task(s) have not had their votes revealed; their averages and votes are hidden in the export", r.Unrevealed, r.Tasks)
}

// Session is the single owner of all session state. Callers mutate it only
// through its methods.
type Session struct {
	ID string

	phase Phase
	user  string
	store *Store
	log   zerolog.Logger
}

// New returns a session in the pre-session phase.
func New() *Session {
	id := uuid.NewString()
	return &Session{
		ID:    id,
		phase: PhasePreSession,
		store: NewStore(),
		log:   logging.Component("session").With().Str("session_id", id).Logger(),
	}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// User returns the bound voter name, or "" when none is bound.
func (s *Session) User() string { return s.user }

// SetUser binds the voter name used for every later vote. The name is trimmed;
// it can be bound only once.
func (s *Session) SetUser(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrUserRequired
	}
	if s.user != "" {
		return ErrUserAlreadySet
	}
	s.user = name
	s.log.Debug().Str("user", name).Msg("voter bound")
	return nil
}

// Start moves from the pre-session phase to the active phase.
func (s *Session) Start() error {
	return s.transition(PhaseActive)
}

// End moves the active session to the summary.
func (s *Session) End() (EndReport, error) {
	if err := s.transition(PhaseSummary); err != nil {
		return EndReport{}, err
	}

	report := EndReport{Tasks: s.store.Len(), Unrevealed: s.store.Unrevealed()}
	if w := report.Warning(); w != "" {
		s.log.Warn().Int("unrevealed", report.Unrevealed).Msg("session ended with unrevealed tasks")
	}
	return report, nil
}

// StartNew leaves the summary for a fresh active session. All tasks and the
// selection are discarded; the voter name is kept.
func (s *Session) StartNew() error {
	if err := s.transition(PhaseActive); err != nil {
		return err
	}
	s.store.Reset()
	return nil
}

func (s *Session) transition(next Phase) error {
	if !s.phase.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.phase, next)
	}
	s.log.Debug().Stringer("from", s.phase).Stringer("to", next).Msg("phase change")
	s.phase = next
	return nil
}

func (s *Session) requireActive() error {
	if s.phase != PhaseActive {
		return fmt.Errorf("%w (phase %s)", ErrNotActive, s.phase)
	}
	return nil
}

// AddTask appends a task with the trimmed identifier.
func (s *Session) AddTask(identifier string) (poker.Task, error) {
	if err := s.requireActive(); err != nil {
		return poker.Task{}, err
	}

	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return poker.Task{}, ErrIdentifierRequired
	}

	t := s.store.AddTask(identifier)
	s.log.Debug().Str("task_id", t.ID).Str("identifier", identifier).Msg("task added")
	return t, nil
}

// AddTasks appends a batch of tasks in order. Identifiers are trimmed the same
// way AddTask trims them; blank ones are skipped.
func (s *Session) AddTasks(identifiers []string) ([]poker.Task, error) {
	if err := s.requireActive(); err != nil {
		return nil, err
	}

	cleaned := make([]string, 0, len(identifiers))
	for _, id := range identifiers {
		if id = strings.TrimSpace(id); id != "" {
			cleaned = append(cleaned, id)
		}
	}

	added := s.store.AddTasks(cleaned)
	if len(added) > 0 {
		s.log.Debug().Int("count", len(added)).Msg("tasks added")
	}
	return added, nil
}

// DeleteTask removes a task; unknown ids are ignored.
func (s *Session) DeleteTask(id string) error {
	if err := s.requireActive(); err != nil {
		return err
	}
	s.store.DeleteTask(id)
	return nil
}

// SelectTask sets the selection pointer.
func (s *Session) SelectTask(id string) error {
	if err := s.requireActive(); err != nil {
		return err
	}
	s.store.SelectTask(id)
	return nil
}

// Vote casts value on the task as the bound user.
func (s *Session) Vote(taskID string, value poker.Value) error {
	if s.user == "" {
		return ErrUserRequired
	}
	return s.CastVote(taskID, s.user, value)
}

// CastVote upserts voter's vote. A task id that does not resolve is a silent
// no-op.
func (s *Session) CastVote(taskID, voter string, value poker.Value) error {
	if err := s.requireActive(); err != nil {
		return err
	}
	if !s.store.CastVote(taskID, voter, value) {
		s.log.Debug().Str("task_id", taskID).Msg("vote for unknown task ignored")
	}
	return nil
}

// Reveal reveals the task's votes and snapshots the average.
func (s *Session) Reveal(taskID string) error {
	if err := s.requireActive(); err != nil {
		return err
	}
	s.store.Reveal(taskID)
	return nil
}

// ClearVotes resets the task's votes and reveal state.
func (s *Session) ClearVotes(taskID string) error {
	if err := s.requireActive(); err != nil {
		return err
	}
	s.store.ClearVotes(taskID)
	return nil
}

// Tasks returns copies of all tasks in insertion order.
func (s *Session) Tasks() []poker.Task { return s.store.Tasks() }

// Selected returns the selected task, if it still exists.
func (s *Session) Selected() (poker.Task, bool) { return s.store.Selected() }

// SelectedID returns the raw selection pointer.
func (s *Session) SelectedID() string { return s.store.SelectedID() }
