package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/yeremiapane/smart-pos/database"
	"github.com/yeremiapane/smart-pos/engine"
	"github.com/yeremiapane/smart-pos/models"
	"github.com/yeremiapane/smart-pos/utils"
)

// ErrTerminalClosed is returned by Dispatch after Close.
var ErrTerminalClosed = errors.New("terminal is closed")

// Listener is told about every applied intent with the resulting snapshot.
// Listeners run while the terminal is locked and must not block or call
// back into the terminal.
type Listener func(snap models.Snapshot, kind engine.IntentKind)

// Terminal is the single writer over the point-of-sale state. Intents are
// applied one at a time; every applied intent schedules a background save
// of the latest snapshot.
type Terminal struct {
	mu        sync.Mutex
	engine    *engine.Engine
	current   models.Snapshot
	listeners []Listener
	closed    bool

	store       database.SnapshotStore
	pending     chan models.Snapshot
	done        chan struct{}
	SaveTimeout time.Duration
	saveErr     error
}

func NewTerminal(eng *engine.Engine, store database.SnapshotStore, initial models.Snapshot) *Terminal {
	t := &Terminal{
		engine:      eng,
		current:     initial.Clone(),
		store:       store,
		pending:     make(chan models.Snapshot, 1),
		done:        make(chan struct{}),
		SaveTimeout: 5 * time.Second,
	}
	go t.saveLoop()
	return t
}

func (t *Terminal) Engine() *engine.Engine { return t.engine }

// Snapshot returns a private copy of the current state.
func (t *Terminal) Snapshot() models.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current.Clone()
}

// View calls fn with a copy of the current state while holding the
// terminal lock, so no intent is applied until fn returns. fn must not call
// back into the terminal.
func (t *Terminal) View(fn func(models.Snapshot)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.current.Clone())
}

// CurrentUser returns the signed-in account, or nil.
func (t *Terminal) CurrentUser() *models.User {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current.CurrentUser == nil {
		return nil
	}
	u := *t.current.CurrentUser
	return &u
}

// Subscribe registers l for every later applied intent.
func (t *Terminal) Subscribe(l Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, l)
}

// Dispatch applies in to the current snapshot and reports whether it took
// effect. The returned snapshot is a copy of the state after the intent.
func (t *Terminal) Dispatch(in engine.Intent) (models.Snapshot, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return models.Snapshot{}, false, ErrTerminalClosed
	}

	next, applied := t.engine.Apply(t.current, in)
	if !applied {
		return t.current.Clone(), false, nil
	}
	t.current = next
	t.scheduleSave(next)
	for _, l := range t.listeners {
		l(next.Clone(), in.Kind())
	}
	return next.Clone(), true, nil
}

// scheduleSave replaces any snapshot still waiting to be written. Callers
// hold t.mu, so the loop only competes with the saver draining the slot.
func (t *Terminal) scheduleSave(snap models.Snapshot) {
	for {
		select {
		case t.pending <- snap:
			return
		default:
		}
		select {
		case <-t.pending:
		default:
		}
	}
}

func (t *Terminal) saveLoop() {
	defer close(t.done)
	for snap := range t.pending {
		ctx, cancel := context.WithTimeout(context.Background(), t.SaveTimeout)
		err := t.store.Save(ctx, snap)
		cancel()

		t.mu.Lock()
		t.saveErr = err
		t.mu.Unlock()
		if err != nil {
			utils.ErrorLogger.Errorf("Failed to save snapshot: %v", err)
		}
	}
}

// Close stops accepting intents, waits for the last pending save and
// returns its error.
func (t *Terminal) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		<-t.done
		return nil
	}
	t.closed = true
	close(t.pending)
	t.mu.Unlock()

	<-t.done
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.saveErr
}
