package routes

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Source serves the current map and reloads it when the file changes.
// Commands read whatever map is current; a reload swaps the pointer, so
// an in-flight route computation keeps its consistent snapshot.
type Source struct {
	path string
	log  *zap.Logger

	mu      sync.RWMutex
	current *MapData
}

// NewSource loads the map at path. A missing or broken file is not fatal:
// the source starts empty and route commands report the load error until
// a valid file appears.
func NewSource(path string, log *zap.Logger) *Source {
	s := &Source{path: path, log: log}
	if err := s.reload(); err != nil {
		log.Warn("マップデータの初期読み込みに失敗しました",
			zap.String("path", path), zap.Error(err))
	}
	return s
}

// Map returns the current map, or false when no valid map has loaded yet.
func (s *Source) Map() (*MapData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current != nil
}

func (s *Source) reload() error {
	m, err := LoadMap(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.current = m
	s.mu.Unlock()
	s.log.Info("マップデータを読み込みました",
		zap.String("path", s.path), zap.Int("areas", len(m.nodes)))
	return nil
}

// Watch reloads the map whenever the file is written, created, or
// renamed, until ctx is cancelled. Events are debounced because editors
// and file copies produce bursts of writes for one logical save.
func (s *Source) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors that replace the file
	// (write temp + rename) would otherwise drop the watch.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	const debounce = 500 * time.Millisecond
	var timer *time.Timer
	var timerC <-chan time.Time

	target := filepath.Clean(s.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				timer.Reset(debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			s.log.Info("マップデータの更新を検知: 再読み込みします",
				zap.String("path", s.path))
			if err := s.reload(); err != nil {
				s.log.Error("マップデータの再読み込みに失敗しました",
					zap.String("path", s.path), zap.Error(err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("マップ監視でエラーが発生しました", zap.Error(err))
		}
	}
}
