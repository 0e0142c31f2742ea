package store

import (
	"context"
	"errors"
	"testing"

	"github.com/robalobadob/bridge/internal/bridge"
)

func TestMemory_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	first := bridge.New(bridge.NewBridge(bridge.Up, bridge.Up, bridge.Up))
	second := bridge.New(bridge.NewBridge(bridge.Down, bridge.Down, bridge.Down))
	if err := st.Save(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := st.Save(ctx, second); err != nil {
		t.Fatal(err)
	}

	err := st.Do(ctx, first.ID, func(*bridge.Game) error { return nil })
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("old session err = %v, want ErrNotFound", err)
	}

	var got *bridge.Game
	if err := st.Do(ctx, second.ID, func(g *bridge.Game) error { got = g; return nil }); err != nil {
		t.Fatal(err)
	}
	if got != second {
		t.Error("Do did not receive the current session")
	}
}

func TestMemory_EmptyAndCanceled(t *testing.T) {
	st := NewMemoryStore()
	if err := st.Do(context.Background(), "x", func(*bridge.Game) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Errorf("empty store err = %v, want ErrNotFound", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := st.Save(ctx, bridge.New(bridge.Bridge{})); !errors.Is(err, context.Canceled) {
		t.Errorf("Save on canceled ctx err = %v", err)
	}
}

func TestMemory_DoPropagatesError(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	g := bridge.New(bridge.NewBridge(bridge.Up, bridge.Up, bridge.Up))
	_ = st.Save(ctx, g)

	boom := errors.New("boom")
	if err := st.Do(ctx, g.ID, func(*bridge.Game) error { return boom }); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}
