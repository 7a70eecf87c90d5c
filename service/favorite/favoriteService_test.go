package favorite_test

import (
	"context"
	"testing"

	"github.com/hanqt132-beep/kost-versi2/model"
	favoritesvc "github.com/hanqt132-beep/kost-versi2/service/favorite"
)

type repoMock struct {
	toggleFn func(ctx context.Context, userID, kostID int64) (bool, error)
	listFn   func(ctx context.Context, userID int64) ([]model.Kost, error)
	clearFn  func(ctx context.Context, userID int64) (int64, error)
}

func (m *repoMock) Toggle(ctx context.Context, userID, kostID int64) (bool, error) {
	return m.toggleFn(ctx, userID, kostID)
}
func (m *repoMock) List(ctx context.Context, userID int64) ([]model.Kost, error) {
	return m.listFn(ctx, userID)
}
func (m *repoMock) Clear(ctx context.Context, userID int64) (int64, error) {
	return m.clearFn(ctx, userID)
}

func TestToggle_FlipsBothWays(t *testing.T) {
	state := false
	m := &repoMock{
		toggleFn: func(ctx context.Context, userID, kostID int64) (bool, error) {
			state = !state
			return state, nil
		},
	}
	s := favoritesvc.New(m)

	on, err := s.Toggle(context.Background(), 7, 3)
	if err != nil || !on {
		t.Fatalf("first toggle got %v %v; want true nil", on, err)
	}
	on, err = s.Toggle(context.Background(), 7, 3)
	if err != nil || on {
		t.Fatalf("second toggle got %v %v; want false nil", on, err)
	}
}

func TestUnauthenticatedIsNoOp(t *testing.T) {
	called := false
	m := &repoMock{
		toggleFn: func(ctx context.Context, userID, kostID int64) (bool, error) {
			called = true
			return true, nil
		},
		listFn: func(ctx context.Context, userID int64) ([]model.Kost, error) {
			called = true
			return nil, nil
		},
		clearFn: func(ctx context.Context, userID int64) (int64, error) {
			called = true
			return 1, nil
		},
	}
	s := favoritesvc.New(m)

	if on, err := s.Toggle(context.Background(), 0, 3); err != nil || on {
		t.Fatalf("Toggle got %v %v; want false nil", on, err)
	}
	if ks, err := s.List(context.Background(), 0); err != nil || ks != nil {
		t.Fatalf("List got %v %v; want nil nil", ks, err)
	}
	if n, err := s.Clear(context.Background(), 0); err != nil || n != 0 {
		t.Fatalf("Clear got %v %v; want 0 nil", n, err)
	}
	if called {
		t.Fatal("repo should not be touched for user id 0")
	}
}

func TestListAndClearPassThrough(t *testing.T) {
	m := &repoMock{
		listFn: func(ctx context.Context, userID int64) ([]model.Kost, error) {
			return []model.Kost{{ID: 3, Name: "Kost Melati"}}, nil
		},
		clearFn: func(ctx context.Context, userID int64) (int64, error) { return 2, nil },
	}
	s := favoritesvc.New(m)

	ks, err := s.List(context.Background(), 7)
	if err != nil || len(ks) != 1 || ks[0].ID != 3 {
		t.Fatalf("List got %v %v", ks, err)
	}
	n, err := s.Clear(context.Background(), 7)
	if err != nil || n != 2 {
		t.Fatalf("Clear got %v %v; want 2 nil", n, err)
	}
}
