package project

import (
	"errors"
	"sync"
	"time"
)

// ErrSaveInFlight is returned when a save is requested while another save of
// the same file is still running. The request is dropped; the caller may
// retry once the running save completes.
var ErrSaveInFlight = errors.New("save already in flight")

const DefaultDebounce = 500 * time.Millisecond

// Saver owns the single in-memory project for the process lifetime and
// coalesces bursts of mutations into one save. The save path performs
// multi-step file I/O (write temp, verify, rename), so an in-flight flag
// keeps two saves from interleaving on the same target.
type Saver struct {
	path     string
	project  *Project
	debounce time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	saving bool
	done   chan struct{}
}

func NewSaver(path string, p *Project, debounce time.Duration) *Saver {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Saver{path: path, project: p, debounce: debounce}
}

func (s *Saver) Project() *Project {
	return s.project
}

func (s *Saver) Path() string {
	return s.path
}

// SaveNow persists immediately. A concurrent call while a save is running
// returns ErrSaveInFlight without blocking and without touching the file.
func (s *Saver) SaveNow() error {
	s.mu.Lock()
	if s.saving {
		s.mu.Unlock()
		return ErrSaveInFlight
	}
	s.saving = true
	s.done = make(chan struct{})
	s.mu.Unlock()

	err := Save(s.path, s.project)

	s.mu.Lock()
	s.saving = false
	close(s.done)
	s.mu.Unlock()

	return err
}

// Schedule arms (or re-arms) the debounced save. Each call resets the window,
// so a burst of mutations produces a single write.
func (s *Saver) Schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		if err := s.SaveNow(); errors.Is(err, ErrSaveInFlight) {
			// A save was already running; try again after another window so
			// the mutation that armed this timer is not lost.
			s.Schedule()
		}
	})
}

// Flush cancels any pending debounced save, waits for an in-progress save to
// finish, and then saves synchronously. Callers run it before shutdown so the
// last mutation always reaches disk.
func (s *Saver) Flush() error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	saving, done := s.saving, s.done
	s.mu.Unlock()

	if saving && done != nil {
		<-done
	}

	for {
		err := s.SaveNow()
		if !errors.Is(err, ErrSaveInFlight) {
			return err
		}
		s.mu.Lock()
		done = s.done
		s.mu.Unlock()
		if done != nil {
			<-done
		}
	}
}
