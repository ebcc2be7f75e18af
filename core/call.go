package core

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

type CallID string

// Call records a single execution of SQL on a connection: what ran, how it
// went and how long it took.
type Call struct {
	mu sync.RWMutex

	id        CallID
	query     string
	state     CallState
	timeTaken time.Duration
	timestamp time.Time
	rows      int

	// any error that might occur during execution
	err error
}

// callPersistent is used for marshaling and unmarshaling the call
type callPersistent struct {
	ID        string `json:"id"`
	Query     string `json:"query"`
	State     string `json:"state"`
	TimeTaken int64  `json:"time_taken_us"`
	Timestamp int64  `json:"timestamp_us"`
	Rows      int    `json:"rows"`
	Error     string `json:"error,omitempty"`
}

func (c *Call) toPersistent() *callPersistent {
	c.mu.RLock()
	defer c.mu.RUnlock()

	errMsg := ""
	if c.err != nil {
		errMsg = c.err.Error()
	}

	return &callPersistent{
		ID:        string(c.id),
		Query:     c.query,
		State:     c.state.String(),
		TimeTaken: c.timeTaken.Microseconds(),
		Timestamp: c.timestamp.UnixMicro(),
		Rows:      c.rows,
		Error:     errMsg,
	}
}

func (c *Call) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.toPersistent())
}

func (c *Call) UnmarshalJSON(data []byte) error {
	var alias callPersistent
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var callErr error
	if alias.Error != "" {
		callErr = errors.New(alias.Error)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.id = CallID(alias.ID)
	c.query = alias.Query
	c.state = CallStateFromString(alias.State)
	c.timeTaken = time.Duration(alias.TimeTaken) * time.Microsecond
	c.timestamp = time.UnixMicro(alias.Timestamp)
	c.rows = alias.Rows
	c.err = callErr

	return nil
}

func newCall(query string) *Call {
	return &Call{
		id:        CallID(uuid.New().String()),
		query:     query,
		state:     CallStateUnknown,
		timestamp: time.Now(),
	}
}

// setState moves the call to state and reports whether it changed. Final
// states are never left.
func (c *Call) setState(state CallState, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.IsFinal() {
		return false
	}

	c.state = state
	if err != nil {
		c.err = err
	}
	if state.IsFinal() {
		c.timeTaken = time.Since(c.timestamp)
	}
	return true
}

func (c *Call) GetID() CallID {
	return c.id
}

func (c *Call) GetQuery() string {
	return c.query
}

func (c *Call) GetState() CallState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Call) GetTimeTaken() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.timeTaken
}

func (c *Call) GetTimestamp() time.Time {
	return c.timestamp
}

// GetRows returns the number of collected rows.
func (c *Call) GetRows() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rows
}

func (c *Call) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// ExecuteCall runs sql and collects all rows, reporting every state change
// of the call to onEvent. The call is returned also when execution fails;
// its state then tells at which stage it did.
func (c *Connection) ExecuteCall(ctx context.Context, sql string, onEvent func(CallState, *Call)) (*Call, *Result, error) {
	call := newCall(sql)

	transition := func(state CallState, err error) {
		if err != nil && ctx.Err() != nil {
			state = CallStateCanceled
		}
		if call.setState(state, err) && onEvent != nil {
			onEvent(state, call)
		}
	}

	transition(CallStateExecuting, nil)
	ds, err := c.Execute(ctx, sql)
	if err != nil {
		transition(CallStateExecutingFailed, err)
		return call, nil, err
	}

	transition(CallStateRetrieving, nil)
	res, err := Collect(ds)
	if err != nil {
		transition(CallStateRetrievingFailed, err)
		return call, nil, err
	}

	call.mu.Lock()
	call.rows = res.Len()
	call.mu.Unlock()

	transition(CallStateCollected, nil)
	return call, res, nil
}
