package audit

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingWriter struct {
	mu     sync.Mutex
	events []Event
	fail   bool
}

func (w *recordingWriter) Log(ev Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, ev)
	if w.fail {
		return errors.New("db down")
	}
	return nil
}

func (w *recordingWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.events)
}

func TestDispatcherDeliversEvents(t *testing.T) {
	w := &recordingWriter{}
	d := NewDispatcher(w)

	d.Dispatch(Event{Action: "application_created", Entity: "application"})
	d.Dispatch(Event{Action: "application_deleted", Entity: "application"})

	assert.Eventually(t, func() bool { return w.count() == 2 }, time.Second, 10*time.Millisecond)
}

func TestDispatcherSurvivesWriterErrors(t *testing.T) {
	w := &recordingWriter{fail: true}
	d := NewDispatcher(w)

	d.Dispatch(Event{Action: "a"})
	d.Dispatch(Event{Action: "b"})

	assert.Eventually(t, func() bool { return w.count() == 2 }, time.Second, 10*time.Millisecond)
}

func TestDispatcherCloseDrainsQueue(t *testing.T) {
	w := &recordingWriter{}
	d := NewDispatcher(w)

	for i := 0; i < 10; i++ {
		d.Dispatch(Event{Action: "application_updated"})
	}
	d.Close()

	assert.Equal(t, 10, w.count())

	// late events are dropped instead of panicking on the closed queue
	d.Dispatch(Event{Action: "late"})
	d.Close()
	assert.Equal(t, 10, w.count())
}
