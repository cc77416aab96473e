package knowledge

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yungbote/liftplan-backend/internal/platform/logger"
)

// Store publishes the current Base. Readers get an immutable snapshot;
// reloads swap the pointer.
type Store struct {
	cur atomic.Pointer[Base]
}

func NewStore(b *Base) *Store {
	s := &Store{}
	s.Set(b)
	return s
}

func (s *Store) Get() *Base {
	if s == nil {
		return nil
	}
	return s.cur.Load()
}

func (s *Store) Set(b *Base) {
	if b == nil {
		b = NewBase(nil)
	}
	s.cur.Store(b)
}

// Watch reloads dir into the store whenever a file in it changes, waiting
// for debounce of quiet first. A failed reload keeps the previous base.
// Watch blocks until ctx is done.
func Watch(ctx context.Context, dir string, store *Store, log *logger.Logger, debounce time.Duration) error {
	log = logger.OrNop(log).With("service", "KnowledgeWatcher", "dir", dir)
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}
	log.Info("Watching knowledge base")

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isDocument(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				timer.Reset(debounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("Knowledge watcher error", "error", err)
		case <-timer.C:
			b, err := LoadDir(dir)
			if err != nil {
				log.Warn("Knowledge reload failed; keeping previous base", "error", err)
				continue
			}
			store.Set(b)
			log.Info("Knowledge base reloaded", "blocks", b.Len())
		}
	}
}
