package session

import (
	"slices"

	"github.com/google/uuid"

	"github.com/colonyops/sprintpoker/internal/core/poker"
)

// Store is the ordered, in-memory task collection of a session plus the
// selection pointer. It has a single owner and is not safe for concurrent use.
type Store struct {
	tasks    []*poker.Task
	selected string
	newID    func() string
}

// NewStore returns an empty store that assigns random task ids.
func NewStore() *Store {
	return &Store{newID: uuid.NewString}
}

// AddTask appends a task. Identifiers are not required to be unique.
func (s *Store) AddTask(identifier string) poker.Task {
	t := poker.NewTask(s.newID(), identifier)
	s.tasks = append(s.tasks, t)
	return t.Clone()
}

// AddTasks appends one task per identifier in input order.
func (s *Store) AddTasks(identifiers []string) []poker.Task {
	if len(identifiers) == 0 {
		return nil
	}

	added := make([]poker.Task, 0, len(identifiers))
	for _, id := range identifiers {
		added = append(added, s.AddTask(id))
	}
	return added
}

// DeleteTask removes the task with the given id and clears the selection if it
// pointed at it. Unknown ids are ignored.
func (s *Store) DeleteTask(id string) {
	s.tasks = slices.DeleteFunc(s.tasks, func(t *poker.Task) bool { return t.ID == id })
	if s.selected == id {
		s.selected = ""
	}
}

// SelectTask points the selection at id without checking that it exists.
func (s *Store) SelectTask(id string) {
	s.selected = id
}

// SelectedID returns the raw selection pointer, which may be stale.
func (s *Store) SelectedID() string {
	return s.selected
}

// Selected returns the selected task, or false when nothing (or a missing
// task) is selected.
func (s *Store) Selected() (poker.Task, bool) {
	if s.selected == "" {
		return poker.Task{}, false
	}
	return s.Get(s.selected)
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id string) (poker.Task, bool) {
	t := s.find(id)
	if t == nil {
		return poker.Task{}, false
	}
	return t.Clone(), true
}

// CastVote upserts voter's vote on the task. It reports false when the task
// does not exist, in which case nothing changes.
func (s *Store) CastVote(taskID, voter string, value poker.Value) bool {
	t := s.find(taskID)
	if t == nil {
		return false
	}
	t.Cast(voter, value)
	return true
}

// Reveal reveals the task and snapshots its average.
func (s *Store) Reveal(taskID string) bool {
	t := s.find(taskID)
	if t == nil {
		return false
	}
	t.Reveal()
	return true
}

// ClearVotes empties the task's votes and hides it again.
func (s *Store) ClearVotes(taskID string) bool {
	t := s.find(taskID)
	if t == nil {
		return false
	}
	t.ClearVotes()
	return true
}

// Tasks returns copies of all tasks in insertion order.
func (s *Store) Tasks() []poker.Task {
	out := make([]poker.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Unrevealed counts tasks whose votes have not been revealed.
func (s *Store) Unrevealed() int {
	n := 0
	for _, t := range s.tasks {
		if !t.Revealed {
			n++
		}
	}
	return n
}

// Reset drops every task and the selection.
func (s *Store) Reset() {
	s.tasks = nil
	s.selected = ""
}

func (s *Store) find(id string) *poker.Task {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}
