package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/shinuoyan888/HuXuYan/internal/session"
)

// Janitor periodically sweeps expired planner sessions out of the store.
// It never touches live display state; expired sessions are deleted whole.
type Janitor struct {
	scheduler *gocron.Scheduler
	store     *session.MemoryStore
	interval  time.Duration
}

// New creates a new Janitor.
func New(store *session.MemoryStore, interval time.Duration) *Janitor {
	s := gocron.NewScheduler(time.UTC)
	return &Janitor{
		scheduler: s,
		store:     store,
		interval:  interval,
	}
}

// Start schedules the periodic sweep and starts the underlying scheduler.
func (j *Janitor) Start() error {
	seconds := int(j.interval.Seconds())
	if seconds <= 0 {
		seconds = 300
	}

	_, err := j.scheduler.Every(seconds).Seconds().Do(func() {
		if removed := j.store.Sweep(); removed > 0 {
			log.Printf("janitor: swept %d expired planner session(s), %d remaining", removed, j.store.Len())
		}
	})
	if err != nil {
		return err
	}

	j.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future sweeps.
func (j *Janitor) Stop() {
	if j.scheduler != nil {
		j.scheduler.Stop()
	}
}
