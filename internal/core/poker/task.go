package poker

// Task is a unit of work being estimated.
//
// Votes are kept in cast order with a voter-name index so that a repeat vote
// from the same name replaces the earlier entry in place.
type Task struct {
	ID           string
	Identifier   string
	AverageScore *float64
	Revealed     bool

	votes   []Vote
	byVoter map[string]int
}

// NewTask creates an unrevealed task with no votes.
func NewTask(id, identifier string) *Task {
	return &Task{
		ID:         id,
		Identifier: identifier,
		byVoter:    make(map[string]int),
	}
}

// Votes returns a copy of the votes in cast order.
func (t *Task) Votes() []Vote {
	out := make([]Vote, len(t.votes))
	copy(out, t.votes)
	return out
}

// VoteOf returns the vote cast by voter, if any.
func (t *Task) VoteOf(voter string) (Vote, bool) {
	i, ok := t.byVoter[voter]
	if !ok {
		return Vote{}, false
	}
	return t.votes[i], true
}

// VoterCount returns the number of distinct voters.
func (t *Task) VoterCount() int {
	return len(t.byVoter)
}

// HasVotes reports whether anyone voted.
func (t *Task) HasVotes() bool {
	return len(t.votes) > 0
}

// Cast records value for voter, replacing any earlier vote by the same name.
// Casting after a reveal does not touch AverageScore; reveal again to refresh it.
func (t *Task) Cast(voter string, value Value) {
	if t.byVoter == nil {
		t.byVoter = make(map[string]int)
	}

	if i, ok := t.byVoter[voter]; ok {
		t.votes[i].Value = value
		return
	}

	t.byVoter[voter] = len(t.votes)
	t.votes = append(t.votes, Vote{Voter: voter, Value: value})
}

// Reveal marks the task revealed and snapshots the average of the current votes.
func (t *Task) Reveal() {
	t.Revealed = true
	t.AverageScore = Average(t.votes)
}

// ClearVotes drops every vote and returns the task to the unrevealed state.
func (t *Task) ClearVotes() {
	t.votes = nil
	t.byVoter = make(map[string]int)
	t.Revealed = false
	t.AverageScore = nil
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() Task {
	c := Task{
		ID:         t.ID,
		Identifier: t.Identifier,
		Revealed:   t.Revealed,
		votes:      t.Votes(),
		byVoter:    make(map[string]int, len(t.byVoter)),
	}
	for k, v := range t.byVoter {
		c.byVoter[k] = v
	}
	if t.AverageScore != nil {
		avg := *t.AverageScore
		c.AverageScore = &avg
	}
	return c
}
