package tracker

import (
	"context"
)

// State is one of Idle, Loading, Failed or Done. Exactly one holds at a time.
type State interface {
	isState()
}

// Idle means no import has been attempted since the flow was opened.
type Idle struct{}

// Loading means a fetch is in flight.
type Loading struct{}

// Failed means the last attempt did not add tasks. The flow stays open so
// the user can retry.
type Failed struct {
	Message string
	Err     error
}

// Done means the identifiers were appended and the flow can close.
type Done struct {
	Imported int
}

func (Idle) isState()    {}
func (Loading) isState() {}
func (Failed) isState()  {}
func (Done) isState()    {}

// Flow tracks a single import dialog. It is owned by the caller and is not
// safe for concurrent use.
type Flow struct {
	state State
}

// NewFlow returns an idle flow.
func NewFlow() *Flow {
	return &Flow{state: Idle{}}
}

// State returns the current state.
func (f *Flow) State() State {
	return f.state
}

// Loading reports whether a fetch is in flight.
func (f *Flow) Loading() bool {
	_, ok := f.state.(Loading)
	return ok
}

// Begin moves the flow to Loading. It fails with ErrBusy while a fetch is
// already in flight.
func (f *Flow) Begin() error {
	if f.Loading() {
		return ErrBusy
	}
	f.state = Loading{}
	return nil
}

// Finish records the outcome of a fetch. On success the identifiers are
// handed to add; if add fails, or the fetch failed, the flow moves to Failed
// and nothing is appended by this call.
func (f *Flow) Finish(keys []string, fetchErr error, add func([]string) error) State {
	if fetchErr != nil {
		f.state = Failed{Message: Message(fetchErr), Err: fetchErr}
		return f.state
	}

	if err := add(keys); err != nil {
		f.state = Failed{Message: Message(err), Err: err}
		return f.state
	}

	f.state = Done{Imported: len(keys)}
	return f.state
}

// Reset returns the flow to Idle, as when the dialog is reopened.
func (f *Flow) Reset() {
	f.state = Idle{}
}

// Run performs a complete attempt synchronously: validate, fetch, append.
func (f *Flow) Run(ctx context.Context, src Source, q Query, add func([]string) error) State {
	if err := f.Begin(); err != nil {
		return Failed{Message: err.Error(), Err: err}
	}

	q = q.Trimmed()
	if err := q.Validate(); err != nil {
		f.state = Failed{Message: "All Jira fields are required: " + err.Error(), Err: err}
		return f.state
	}

	keys, err := src.Fetch(ctx, q)
	return f.Finish(keys, err, add)
}
