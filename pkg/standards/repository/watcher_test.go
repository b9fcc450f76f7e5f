package repository

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestDebouncerCoalesces(t *testing.T) {
	d := newDebouncer(30 * time.Millisecond)
	defer d.stop()

	var calls atomic.Int32
	for i := 0; i < 10; i++ {
		d.trigger(func() { calls.Add(1) })
	}

	time.Sleep(150 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := newDebouncer(50 * time.Millisecond)

	var calls atomic.Int32
	d.trigger(func() { calls.Add(1) })
	d.stop()

	time.Sleep(120 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("calls = %d, want 0", got)
	}
}

func TestShouldProcessEvent(t *testing.T) {
	fw := &FileWatcher{config: DefaultFileWatcherConfig()}

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"yaml write", fsnotify.Event{Name: "standards/av.yaml", Op: fsnotify.Write}, true},
		{"yml create", fsnotify.Event{Name: "standards/av.yml", Op: fsnotify.Create}, true},
		{"uppercase extension", fsnotify.Event{Name: "standards/AV.YAML", Op: fsnotify.Write}, true},
		{"chmod only", fsnotify.Event{Name: "standards/av.yaml", Op: fsnotify.Chmod}, false},
		{"other extension", fsnotify.Event{Name: "standards/notes.txt", Op: fsnotify.Write}, false},
		{"hidden file", fsnotify.Event{Name: "standards/.av.yaml", Op: fsnotify.Write}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := fw.shouldProcessEvent(tc.event); got != tc.want {
				t.Errorf("shouldProcessEvent(%v) = %v, want %v", tc.event, got, tc.want)
			}
		})
	}
}

func TestWatcherTriggersReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "av.yaml")
	if err := os.WriteFile(path, []byte(nodesFile), 0o644); err != nil {
		t.Fatal(err)
	}

	config := DefaultFileWatcherConfig()
	config.Path = dir
	config.DebounceInterval = 20 * time.Millisecond

	fw, err := NewFileWatcher(config, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher: %v", err)
	}

	reloaded := make(chan struct{}, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watchDone := make(chan error, 1)
	go func() {
		watchDone <- fw.Watch(ctx, func() error {
			select {
			case reloaded <- struct{}{}:
			default:
			}
			return nil
		})
	}()

	// Give the watcher time to register the directory.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte(nodesFile+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
	case <-time.After(3 * time.Second):
		t.Fatal("reload was not triggered")
	}

	if err := fw.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := <-watchDone; err != nil {
		t.Fatalf("Watch: %v", err)
	}
}
