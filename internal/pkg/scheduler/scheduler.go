// Package scheduler откладывает задания таймеров диспетчеризации и отдает сработавшие задания в канал.
package scheduler

import (
	"context"
	"sync"
	"time"

	"dispatch/internal/entities"
	"github.com/google/uuid"
)

const defaultBuffer = 256

type Scheduler struct {
	mu     sync.Mutex
	timers map[entities.TimerHandle]*time.Timer
	jobs   chan entities.TimerJob
	done   chan struct{}
	once   sync.Once
	now    func() time.Time
}

func New(buffer int) *Scheduler {
	if buffer <= 0 {
		buffer = defaultBuffer
	}

	return &Scheduler{
		timers: make(map[entities.TimerHandle]*time.Timer),
		jobs:   make(chan entities.TimerJob, buffer),
		done:   make(chan struct{}),
		now:    time.Now,
	}
}

// ScheduleAt ставит задание на момент at. Момент в прошлом срабатывает сразу.
func (s *Scheduler) ScheduleAt(at time.Time, job entities.TimerJob) entities.TimerHandle {
	handle := entities.TimerHandle(uuid.NewString())
	delay := at.Sub(s.now())
	if delay < 0 {
		delay = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.timers[handle] = time.AfterFunc(delay, func() {
		s.fire(handle, job)
	})

	return handle
}

// Cancel отменяет таймер. Повторная отмена и отмена сработавшего таймера ничего не делают.
func (s *Scheduler) Cancel(handle entities.TimerHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[handle]; ok {
		t.Stop()
		delete(s.timers, handle)
	}
}

func (s *Scheduler) Jobs() <-chan entities.TimerJob {
	return s.jobs
}

// Pending количество взведенных таймеров.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop останавливает все таймеры. Задания, уже попавшие в канал, остаются в нем.
func (s *Scheduler) Stop(_ context.Context) error {
	s.once.Do(func() {
		close(s.done)

		s.mu.Lock()
		defer s.mu.Unlock()
		for handle, t := range s.timers {
			t.Stop()
			delete(s.timers, handle)
		}
	})
	return nil
}

func (s *Scheduler) fire(handle entities.TimerHandle, job entities.TimerJob) {
	s.mu.Lock()
	_, ok := s.timers[handle]
	delete(s.timers, handle)
	s.mu.Unlock()

	if !ok {
		return
	}

	select {
	case s.jobs <- job:
	case <-s.done:
	}
}
