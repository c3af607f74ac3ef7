package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yeremiapane/smart-pos/database"
	"github.com/yeremiapane/smart-pos/engine"
	"github.com/yeremiapane/smart-pos/models"
)

func newTestTerminal(store database.SnapshotStore) *Terminal {
	eng := engine.New(engine.WithIDSource(engine.NewSequenceSource()))
	return NewTerminal(eng, store, engine.SeedSnapshot())
}

func TestTerminalDispatchPersists(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := database.NewMemorySnapshotStore()
	term := newTestTerminal(store)

	snap, applied, err := term.Dispatch(engine.Authenticate{Username: "cashier1", Password: "123"})
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "user2", snap.CurrentUser.ID)

	_, applied, err = term.Dispatch(engine.RemoveFromCart{ProductID: "p1"})
	require.NoError(t, err)
	assert.False(t, applied)

	_, applied, _ = term.Dispatch(engine.AddToCart{ProductID: "p1"})
	require.True(t, applied)

	require.NoError(t, term.Close())

	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, term.Snapshot().Cart, saved.Cart)

	_, _, err = term.Dispatch(engine.ClearCart{})
	assert.ErrorIs(t, err, ErrTerminalClosed)
	assert.NoError(t, term.Close(), "second close is a no-op")
}

func TestTerminalSnapshotIsACopy(t *testing.T) {
	defer goleak.VerifyNone(t)

	term := newTestTerminal(database.NewMemorySnapshotStore())
	defer term.Close()

	snap := term.Snapshot()
	snap.Products[0].Stock = 0
	assert.Equal(t, 100, term.Snapshot().Products[0].Stock)
}

type gatedStore struct {
	*database.MemorySnapshotStore
	started chan struct{}
	gate    chan struct{}
}

func (g *gatedStore) Save(ctx context.Context, snap models.Snapshot) error {
	select {
	case g.started <- struct{}{}:
	default:
	}
	<-g.gate
	return g.MemorySnapshotStore.Save(ctx, snap)
}

func TestTerminalCoalescesPendingSaves(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := &gatedStore{
		MemorySnapshotStore: database.NewMemorySnapshotStore(),
		started:             make(chan struct{}, 1),
		gate:                make(chan struct{}),
	}
	term := newTestTerminal(store)

	_, _, err := term.Dispatch(engine.Authenticate{Username: "admin", Password: "123"})
	require.NoError(t, err)
	<-store.started

	for i := 0; i < 5; i++ {
		_, applied, err := term.Dispatch(engine.AddToCart{ProductID: "p2"})
		require.NoError(t, err)
		require.True(t, applied)
	}
	close(store.gate)
	require.NoError(t, term.Close())

	assert.Equal(t, 2, store.Saves(), "the first save plus one for the coalesced rest")
	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, saved.Cart, 1)
	assert.Equal(t, 5, saved.Cart[0].Quantity)
}

func TestTerminalReportsSaveErrorOnClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := database.NewMemorySnapshotStore()
	store.Err = errors.New("read-only filesystem")
	term := newTestTerminal(store)

	// dispatch keeps working while saves fail
	_, applied, err := term.Dispatch(engine.Authenticate{Username: "admin", Password: "123"})
	require.NoError(t, err)
	assert.True(t, applied)

	assert.Error(t, term.Close())
}

func TestTerminalListeners(t *testing.T) {
	defer goleak.VerifyNone(t)

	term := newTestTerminal(database.NewMemorySnapshotStore())
	defer term.Close()

	var kinds []engine.IntentKind
	var lastUser string
	term.Subscribe(func(snap models.Snapshot, kind engine.IntentKind) {
		kinds = append(kinds, kind)
		if snap.CurrentUser != nil {
			lastUser = snap.CurrentUser.Username
		}
	})

	term.Dispatch(engine.Authenticate{Username: "kitchen1", Password: "123"})
	term.Dispatch(engine.AddToCart{ProductID: "p1"})
	term.Dispatch(engine.SignOut{})

	assert.Equal(t, []engine.IntentKind{engine.KindAuthenticate, engine.KindSignOut}, kinds)
	assert.Equal(t, "kitchen1", lastUser)
}

func TestTerminalSerializesConcurrentIntents(t *testing.T) {
	defer goleak.VerifyNone(t)

	term := newTestTerminal(database.NewMemorySnapshotStore())
	_, _, err := term.Dispatch(engine.Authenticate{Username: "cashier1", Password: "123"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			term.Dispatch(engine.AddToCart{ProductID: "p9"})
		}()
	}
	wg.Wait()
	require.NoError(t, term.Close())

	snap := term.Snapshot()
	require.Len(t, snap.Cart, 1)
	assert.Equal(t, 25, snap.Cart[0].Quantity, "capped at stock")
}

func TestTerminalViewBlocksDispatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	term := newTestTerminal(database.NewMemorySnapshotStore())
	defer term.Close()

	dispatched := make(chan struct{})
	term.View(func(snap models.Snapshot) {
		assert.Nil(t, snap.CurrentUser)
		go func() {
			term.Dispatch(engine.Authenticate{Username: "admin", Password: "123"})
			close(dispatched)
		}()
		select {
		case <-dispatched:
			t.Error("intent applied while the view was held")
		case <-time.After(50 * time.Millisecond):
		}
	})
	<-dispatched
	assert.Equal(t, "user1", term.CurrentUser().ID)
}
