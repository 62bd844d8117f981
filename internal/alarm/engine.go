// Package alarm polls tasks for due alarms and fires each one exactly once.
//
// A task with an alarm time is pending until the clock reaches that time. On the
// first tick at or after it, the engine marks the task triggered, delivers a desktop
// notification (when permitted) and plays the alarm sound. Notification and sound
// are independent: either may fail without affecting the other or the transition.
// Subscribers receive an Event per fired alarm; the engine itself never renders.
package alarm

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/nakachan-ing/zentasks/internal/model"
	"github.com/nakachan-ing/zentasks/internal/notify"
)

const DefaultInterval = time.Second

const notificationTitle = "⏰ Task Reminder"

// TaskSource is the slice of the task store the engine needs.
type TaskSource interface {
	DueAlarms(now time.Time) []model.Task
	MarkAlarmTriggered(id int64) bool
	Reload() error
}

type Options struct {
	Interval time.Duration
	Sound    bool
	Volume   float64
	Payload  []byte
	// Reload re-reads tasks before every tick so edits made by other processes
	// are picked up.
	Reload bool
}

type Event struct {
	Task        model.Task
	FiredAt     time.Time
	Notified    bool
	SoundPlayed bool
}

type Engine struct {
	tasks      TaskSource
	dispatcher notify.Dispatcher
	player     notify.Player
	clock      clock.Clock
	opts       Options
	logger     *log.Logger

	mu          sync.Mutex
	subscribers map[int]func(Event)
	nextSub     int
}

func NewEngine(tasks TaskSource, dispatcher notify.Dispatcher, player notify.Player, clk clock.Clock, opts Options, logger *log.Logger) *Engine {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = log.Default()
	}
	if dispatcher == nil {
		dispatcher = notify.Disabled{}
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Payload == nil {
		opts.Payload = notify.AlarmSound
	}
	return &Engine{
		tasks:       tasks,
		dispatcher:  dispatcher,
		player:      player,
		clock:       clk,
		opts:        opts,
		logger:      logger,
		subscribers: make(map[int]func(Event)),
	}
}

// Subscribe registers fn for every fired alarm and returns its cancel func.
func (e *Engine) Subscribe(fn func(Event)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextSub
	e.nextSub++
	e.subscribers[id] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subscribers, id)
	}
}

func (e *Engine) publish(ev Event) {
	e.mu.Lock()
	subs := make([]func(Event), 0, len(e.subscribers))
	for _, fn := range e.subscribers {
		subs = append(subs, fn)
	}
	e.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}

// Tick fires every alarm that is due now and returns what fired.
func (e *Engine) Tick() []Event {
	if e.opts.Reload {
		if err := e.tasks.Reload(); err != nil {
			e.logger.Printf("⚠️ Failed to reload tasks, using last known state: %v", err)
		}
	}

	now := e.clock.Now()
	var fired []Event
	for _, task := range e.tasks.DueAlarms(now) {
		// marking first keeps the alarm at-most-once even if delivery misbehaves
		if !e.tasks.MarkAlarmTriggered(task.ID) {
			continue
		}
		task.AlarmTriggered = true

		ev := Event{Task: task, FiredAt: now}
		ev.Notified = e.notify(task)
		ev.SoundPlayed = e.playSound()

		e.logger.Printf("⏰ Alarm fired for task %d: %s", task.ID, task.Text)
		e.publish(ev)
		fired = append(fired, ev)
	}
	return fired
}

func (e *Engine) notify(task model.Task) bool {
	permission := e.dispatcher.Permission()
	if permission == notify.PermissionDefault {
		permission = e.dispatcher.RequestPermission()
	}
	if permission != notify.PermissionGranted {
		return false
	}
	if err := e.dispatcher.Notify(notificationTitle, task.Text); err != nil {
		e.logger.Printf("⚠️ Notification for task %d not delivered: %v", task.ID, err)
		return false
	}
	return true
}

func (e *Engine) playSound() bool {
	if !e.opts.Sound || e.player == nil {
		return false
	}
	err := e.player.Play(e.opts.Payload, e.opts.Volume)
	if errors.Is(err, notify.ErrMuted) {
		return false
	} else if err != nil {
		e.logger.Printf("⚠️ Alarm sound not played: %v", err)
		return false
	}
	return true
}

// Run ticks on the engine's interval until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	ticker := e.clock.Ticker(e.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			e.Tick()
		}
	}
}
