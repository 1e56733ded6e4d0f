package testutil

import (
	"sync"

	"github.com/atomicstack/mqt/internal/clipboard"
)

// RecordingSink is a clipboard.Sink that keeps every write in memory.
type RecordingSink struct {
	AcquireErr error
	WriteErr   error
	ReleaseErr error

	mu       sync.Mutex
	writes   []string
	acquired int
	released int
}

// Acquire implements clipboard.Sink.
func (s *RecordingSink) Acquire() (clipboard.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acquired++
	if s.AcquireErr != nil {
		return nil, s.AcquireErr
	}
	return &recordingSession{sink: s}, nil
}

// Writes returns the texts written so far.
func (s *RecordingSink) Writes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.writes...)
}

// Counts reports how many sessions were acquired and released.
func (s *RecordingSink) Counts() (acquired, released int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acquired, s.released
}

type recordingSession struct {
	sink *RecordingSink
}

func (r *recordingSession) Write(text string) error {
	r.sink.mu.Lock()
	defer r.sink.mu.Unlock()
	if r.sink.WriteErr != nil {
		return r.sink.WriteErr
	}
	r.sink.writes = append(r.sink.writes, text)
	return nil
}

func (r *recordingSession) Release() error {
	r.sink.mu.Lock()
	defer r.sink.mu.Unlock()
	r.sink.released++
	return r.sink.ReleaseErr
}
