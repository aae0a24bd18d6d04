package binder_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardeditor/pkg/binder"
	"github.com/goliatone/go-cardeditor/pkg/model"
)

func TestBinderHandleNotifies(t *testing.T) {
	var announced []model.Config
	b := binder.New(binder.WithNotifier(binder.NotifierFunc(func(_ context.Context, cfg model.Config) error {
		announced = append(announced, cfg)
		return nil
	})))

	next, err := b.Handle(context.Background(), model.Config{"mode": "auto"}, binder.PlainChange{
		Source: binder.Source{ConfigValue: "mode"},
		Value:  "manual",
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(announced) != 1 {
		t.Fatalf("expected one notification, got %d", len(announced))
	}
	if diff := cmp.Diff(next, announced[0]); diff != "" {
		t.Fatalf("announced config mismatch (-want +got):\n%s", diff)
	}
}

func TestBinderHandleDoesNotNotifyOnError(t *testing.T) {
	called := false
	b := binder.New(binder.WithNotifier(binder.NotifierFunc(func(context.Context, model.Config) error {
		called = true
		return nil
	})))

	_, err := b.Handle(context.Background(), model.Config{}, binder.Toggle("tags", "a", true))
	if !errors.Is(err, binder.ErrNotArray) {
		t.Fatalf("expected ErrNotArray, got %v", err)
	}
	if called {
		t.Fatalf("notifier must not run for rejected changes")
	}
}

func TestBinderHandleWrapsNotifierError(t *testing.T) {
	boom := errors.New("host gone")
	b := binder.New(binder.WithNotifier(binder.NotifierFunc(func(context.Context, model.Config) error {
		return boom
	})))

	next, err := b.Handle(context.Background(), model.Config{}, binder.PlainChange{
		Source: binder.Source{ConfigValue: "title"},
		Value:  "x",
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped notifier error, got %v", err)
	}
	if next["title"] != "x" {
		t.Fatalf("expected config returned alongside notifier error, got %#v", next)
	}
}
