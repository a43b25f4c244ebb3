package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jneufeld/slushy/pkg/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DebounceInterval != 100*time.Millisecond {
		t.Errorf("DebounceInterval = %v, want 100ms", cfg.DebounceInterval)
	}
	if len(cfg.Extensions) != 1 || cfg.Extensions[0] != ".txt" {
		t.Errorf("Extensions = %v, want [.txt]", cfg.Extensions)
	}
	if !cfg.SkipHidden {
		t.Error("SkipHidden = false, want true")
	}
}

func TestFromConfig(t *testing.T) {
	cfg := FromConfig("input.txt", &config.WatchConfig{
		DebounceInterval: 250 * time.Millisecond,
		Extensions:       []string{".in", ".txt"},
	})

	if cfg.Path != "input.txt" {
		t.Errorf("Path = %q, want input.txt", cfg.Path)
	}
	if cfg.DebounceInterval != 250*time.Millisecond {
		t.Errorf("DebounceInterval = %v, want 250ms", cfg.DebounceInterval)
	}
	if len(cfg.Extensions) != 2 {
		t.Errorf("Extensions = %v, want 2 entries", cfg.Extensions)
	}

	if got := FromConfig("x", nil); got.DebounceInterval != 100*time.Millisecond {
		t.Errorf("FromConfig(nil).DebounceInterval = %v, want default", got.DebounceInterval)
	}
}

func TestShouldProcess(t *testing.T) {
	dirWatcher := &FileWatcher{config: DefaultConfig()}
	fileWatcher := &FileWatcher{config: DefaultConfig(), target: filepath.Clean("/in/day13.txt")}

	tests := []struct {
		name  string
		fw    *FileWatcher
		event fsnotify.Event
		want  bool
	}{
		{"write txt", dirWatcher, fsnotify.Event{Name: "/in/a.txt", Op: fsnotify.Write}, true},
		{"create txt upper", dirWatcher, fsnotify.Event{Name: "/in/A.TXT", Op: fsnotify.Create}, true},
		{"chmod only", dirWatcher, fsnotify.Event{Name: "/in/a.txt", Op: fsnotify.Chmod}, false},
		{"other extension", dirWatcher, fsnotify.Event{Name: "/in/a.yaml", Op: fsnotify.Write}, false},
		{"hidden file", dirWatcher, fsnotify.Event{Name: "/in/.a.txt", Op: fsnotify.Write}, false},
		{"target file", fileWatcher, fsnotify.Event{Name: "/in/day13.txt", Op: fsnotify.Write}, true},
		{"target renamed over", fileWatcher, fsnotify.Event{Name: "/in/day13.txt", Op: fsnotify.Create}, true},
		{"sibling of target", fileWatcher, fsnotify.Event{Name: "/in/other.txt", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fw.shouldProcess(tt.event); got != tt.want {
				t.Errorf("shouldProcess(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func startWatcher(t *testing.T, path string) (*FileWatcher, <-chan string) {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Path = path
	cfg.DebounceInterval = 50 * time.Millisecond

	fw, err := NewFileWatcher(cfg, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher() error = %v", err)
	}

	changed := make(chan string, 10)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		_ = fw.Watch(ctx, func(p string) error {
			changed <- p
			return nil
		})
	}()

	t.Cleanup(func() {
		cancel()
		<-done
		_ = fw.Stop()
	})

	deadline := time.Now().Add(time.Second)
	for !fw.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	// Let the fsnotify watch be registered.
	time.Sleep(100 * time.Millisecond)

	return fw, changed
}

func TestFileWatcher_SingleFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "day13.txt")
	if err := os.WriteFile(file, []byte("[1]\n[2]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, changed := startWatcher(t, file)

	if err := os.WriteFile(file, []byte("[3]\n[4]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-changed:
		if filepath.Clean(p) != filepath.Clean(file) {
			t.Errorf("changed path = %q, want %q", p, file)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported within 2s")
	}
}

func TestFileWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "day13.txt")
	if err := os.WriteFile(file, []byte("[1]\n[2]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, changed := startWatcher(t, file)

	for i := range 5 {
		content := []byte("[" + string(rune('0'+i)) + "]\n[9]\n")
		if err := os.WriteFile(file, content, 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported within 2s")
	}

	select {
	case p := <-changed:
		t.Errorf("unexpected second callback for %q", p)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFileWatcher_DirectoryIgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	_, changed := startWatcher(t, dir)

	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-changed:
		t.Fatalf("callback for ignored file %q", p)
	case <-time.After(300 * time.Millisecond):
	}

	if err := os.WriteFile(filepath.Join(dir, "input.txt"), []byte("[1]\n[1]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-changed:
		if filepath.Base(p) != "input.txt" {
			t.Errorf("changed path = %q, want input.txt", p)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported within 2s")
	}
}

func TestFileWatcher_BurstAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	_, changed := startWatcher(t, dir)

	for _, name := range []string{"a.txt", "b.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("[1]\n[2]\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	seen := map[string]bool{}
	timeout := time.After(2 * time.Second)
	for len(seen) < 2 {
		select {
		case p := <-changed:
			seen[filepath.Base(p)] = true
		case <-timeout:
			t.Fatalf("changed files = %v, want a.txt and b.txt", seen)
		}
	}
}

func TestFileWatcher_AlreadyRunning(t *testing.T) {
	dir := t.TempDir()
	fw, _ := startWatcher(t, dir)

	if err := fw.Watch(context.Background(), func(string) error { return nil }); err != ErrAlreadyRunning {
		t.Errorf("second Watch() error = %v, want ErrAlreadyRunning", err)
	}
}

func TestFileWatcher_MissingPath(t *testing.T) {
	fw, err := NewFileWatcher(&Config{Path: filepath.Join(t.TempDir(), "missing.txt")}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = fw.Stop() }()

	if err := fw.Watch(context.Background(), func(string) error { return nil }); err == nil {
		t.Error("Watch() on missing path returned nil error")
	}
}

func TestFileWatcher_StopTwice(t *testing.T) {
	fw, err := NewFileWatcher(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := fw.Stop(); err != nil {
		t.Errorf("first Stop() error = %v", err)
	}
	if err := fw.Stop(); err != nil {
		t.Errorf("second Stop() error = %v", err)
	}
}

func TestDebouncer(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var calls atomic.Int32
	var last atomic.Int32

	for i := 1; i <= 3; i++ {
		n := int32(i)
		d.Trigger("day13.txt", func() {
			calls.Add(1)
			last.Store(n)
		})
	}

	time.Sleep(150 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
	if got := last.Load(); got != 3 {
		t.Errorf("last callback = %d, want 3", got)
	}
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var calls atomic.Int32

	d.Trigger("a.txt", func() { calls.Add(1) })
	d.Trigger("b.txt", func() { calls.Add(1) })
	d.Stop()
	d.Trigger("a.txt", func() { calls.Add(1) })

	time.Sleep(100 * time.Millisecond)

	if got := calls.Load(); got != 0 {
		t.Errorf("calls after Stop = %d, want 0", got)
	}
	if got := d.Pending(); got != 0 {
		t.Errorf("Pending() after Stop = %d, want 0", got)
	}
}

func TestDebouncer_KeysAreIndependent(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var mu sync.Mutex
	fired := map[string]int{}
	record := func(key string) func() {
		return func() {
			mu.Lock()
			defer mu.Unlock()
			fired[key]++
		}
	}

	d.Trigger("a.txt", record("a.txt"))
	d.Trigger("b.txt", record("b.txt"))
	d.Trigger("a.txt", record("a.txt"))

	if got := d.Pending(); got != 2 {
		t.Errorf("Pending() = %d, want 2", got)
	}

	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if fired["a.txt"] != 1 || fired["b.txt"] != 1 {
		t.Errorf("fired = %v, want one callback per key", fired)
	}
}
