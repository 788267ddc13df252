package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/sprintpoker/internal/core/poker"
)

func activeSession(t *testing.T) *Session {
	t.Helper()
	s := New()
	require.NoError(t, s.Start())
	return s
}

func TestSession_PhaseFlow(t *testing.T) {
	s := New()
	assert.Equal(t, PhasePreSession, s.Phase())

	_, err := s.End()
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.ErrorIs(t, s.StartNew(), ErrInvalidTransition)

	require.NoError(t, s.Start())
	assert.Equal(t, PhaseActive, s.Phase())
	require.ErrorIs(t, s.Start(), ErrInvalidTransition)

	_, err = s.End()
	require.NoError(t, err)
	assert.Equal(t, PhaseSummary, s.Phase())

	require.NoError(t, s.StartNew())
	assert.Equal(t, PhaseActive, s.Phase())
}

func TestSession_TaskOpsRequireActive(t *testing.T) {
	s := New()

	_, err := s.AddTask("A-1")
	require.ErrorIs(t, err, ErrNotActive)
	_, err = s.AddTasks([]string{"A-1"})
	require.ErrorIs(t, err, ErrNotActive)
	require.ErrorIs(t, s.DeleteTask("x"), ErrNotActive)
	require.ErrorIs(t, s.SelectTask("x"), ErrNotActive)
	require.ErrorIs(t, s.CastVote("x", "a", poker.Number(1)), ErrNotActive)
	require.ErrorIs(t, s.Reveal("x"), ErrNotActive)
	require.ErrorIs(t, s.ClearVotes("x"), ErrNotActive)
}

func TestSession_AddTaskValidation(t *testing.T) {
	s := activeSession(t)

	_, err := s.AddTask("   ")
	require.ErrorIs(t, err, ErrIdentifierRequired)

	task, err := s.AddTask("  PROJ-7 ")
	require.NoError(t, err)
	assert.Equal(t, "PROJ-7", task.Identifier)
}

func TestSession_AddTasksTrimsAndSkipsBlanks(t *testing.T) {
	s := activeSession(t)

	added, err := s.AddTasks([]string{" A-1 ", "   ", "", "B-2\r"})
	require.NoError(t, err)
	require.Len(t, added, 2)

	var ids []string
	for _, task := range s.Tasks() {
		ids = append(ids, task.Identifier)
	}
	assert.Equal(t, []string{"A-1", "B-2"}, ids)
}

func TestSession_SetUser(t *testing.T) {
	s := New()

	require.ErrorIs(t, s.SetUser("  "), ErrUserRequired)
	require.NoError(t, s.SetUser(" Alice "))
	assert.Equal(t, "Alice", s.User())
	require.ErrorIs(t, s.SetUser("Bob"), ErrUserAlreadySet)
	assert.Equal(t, "Alice", s.User())
}

func TestSession_VoteUsesBoundUser(t *testing.T) {
	s := activeSession(t)
	task, err := s.AddTask("A-1")
	require.NoError(t, err)

	require.ErrorIs(t, s.Vote(task.ID, poker.Number(3)), ErrUserRequired)

	require.NoError(t, s.SetUser("Alice"))
	require.NoError(t, s.Vote(task.ID, poker.Number(3)))
	require.NoError(t, s.Vote(task.ID, poker.Number(5)))

	got := s.Tasks()[0]
	votes := got.Votes()
	require.Len(t, votes, 1)
	assert.Equal(t, "Alice", votes[0].Voter)
	assert.Equal(t, "5", votes[0].Value.String())
}

func TestSession_VoteUnknownTaskIsSilent(t *testing.T) {
	s := activeSession(t)
	require.NoError(t, s.CastVote("missing", "Alice", poker.Number(1)))
}

func TestSession_EndReport(t *testing.T) {
	s := activeSession(t)
	tasks, err := s.AddTasks([]string{"A", "B", "C"})
	require.NoError(t, err)
	require.NoError(t, s.CastVote(tasks[0].ID, "x", poker.Number(1)))
	require.NoError(t, s.Reveal(tasks[0].ID))

	report, err := s.End()
	require.NoError(t, err)
	assert.Equal(t, EndReport{Tasks: 3, Unrevealed: 2}, report)
	assert.Contains(t, report.Warning(), "2 of 3")

	assert.Empty(t, EndReport{Tasks: 2, Unrevealed: 0}.Warning())
	assert.Empty(t, EndReport{}.Warning())
}

func TestSession_StartNewResets(t *testing.T) {
	s := activeSession(t)
	require.NoError(t, s.SetUser("Alice"))
	task, err := s.AddTask("A")
	require.NoError(t, err)
	require.NoError(t, s.SelectTask(task.ID))

	_, err = s.End()
	require.NoError(t, err)
	assert.Len(t, s.Tasks(), 1, "summary still shows tasks")

	require.NoError(t, s.StartNew())
	assert.Empty(t, s.Tasks())
	assert.Empty(t, s.SelectedID())
	assert.Equal(t, "Alice", s.User())
}
