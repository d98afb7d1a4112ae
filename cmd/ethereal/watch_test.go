package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func startWatchLoop(t *testing.T, debounce time.Duration) (chan fsnotify.Event, chan error, chan struct{}, context.CancelFunc) {
	t.Helper()

	events := make(chan fsnotify.Event)
	errs := make(chan error)
	reruns := make(chan struct{}, 16)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	isRelevant := func(name string) bool {
		return strings.HasSuffix(name, ".et")
	}

	go func() {
		defer close(done)
		_ = watchLoop(ctx, events, errs, debounce, isRelevant, nil, func() {
			reruns <- struct{}{}
		})
	}()

	t.Cleanup(func() {
		cancel()
		<-done
	})

	return events, errs, reruns, cancel
}

func TestWatchLoop_DebouncesBursts(t *testing.T) {
	events, _, reruns, _ := startWatchLoop(t, 20*time.Millisecond)

	for range 3 {
		events <- fsnotify.Event{Name: "loops.et", Op: fsnotify.Write}
	}

	select {
	case <-reruns:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected a rerun after a burst of writes")
	}

	select {
	case <-reruns:
		t.Error("Expected a single rerun for one burst")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatchLoop_IgnoresIrrelevantEvents(t *testing.T) {
	events, errs, reruns, _ := startWatchLoop(t, 10*time.Millisecond)

	events <- fsnotify.Event{Name: "notes.txt", Op: fsnotify.Write}
	events <- fsnotify.Event{Name: "loops.et", Op: fsnotify.Chmod}
	errs <- errors.New("overflow")

	select {
	case <-reruns:
		t.Error("Expected no rerun for irrelevant events")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatchLoop_StopsOnCancel(t *testing.T) {
	events := make(chan fsnotify.Event)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := watchLoop(ctx, events, nil, time.Millisecond, func(string) bool { return true }, nil, func() {})
	if err != nil {
		t.Errorf("Expected a clean stop, got %s", err)
	}
}

func TestWatchLoop_StopsWhenEventsClose(t *testing.T) {
	events := make(chan fsnotify.Event)
	close(events)

	err := watchLoop(context.Background(), events, nil, time.Millisecond, func(string) bool { return true }, nil, func() {})
	if err != nil {
		t.Errorf("Expected a clean stop, got %s", err)
	}
}
