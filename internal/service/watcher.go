package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Roma7-7-7/homework-notifier/internal/homework"
)

//go:generate mockgen -package mocks -destination mocks/watcher.go . Poller,Notifier

const (
	msgAPIProblem  = "Проблема с получением API: "
	msgDataProblem = "Проблема с получением статуса ДЗ: "
)

type (
	Poller interface {
		HomeworkStatuses(ctx context.Context, from int64) (any, error)
	}

	Notifier interface {
		Notify(ctx context.Context, msg string)
	}

	// AlertState tells whether a failure of some class is still to be reported.
	AlertState int

	NotificationState struct {
		Cursor      int64
		API         AlertState
		Data        AlertState
		LastMessage string
	}

	Watcher struct {
		poller   Poller
		notifier Notifier
		state    NotificationState

		log *slog.Logger
		mx  *sync.Mutex
	}
)

const (
	// AlertActive means the next failure is reported.
	AlertActive AlertState = iota
	// AlertSuppressed means the failure was reported and further ones are only logged.
	AlertSuppressed
)

func (s AlertState) String() string {
	if s == AlertSuppressed {
		return "suppressed"
	}
	return "active"
}

func NewWatcher(poller Poller, notifier Notifier, from int64, log *slog.Logger) *Watcher {
	return &Watcher{
		poller:   poller,
		notifier: notifier,
		state:    NotificationState{Cursor: from},

		log: log.With("component", "service").With("service", "watcher"),
		mx:  &sync.Mutex{},
	}
}

func (w *Watcher) State() NotificationState {
	w.mx.Lock()
	defer w.mx.Unlock()
	return w.state
}

// Run polls immediately and then once per interval until ctx is done.
func (w *Watcher) Run(ctx context.Context, interval time.Duration) {
	defer func() {
		w.log.InfoContext(ctx, "Stopped watcher")
	}()

	w.log.InfoContext(ctx, "Starting watcher", "interval", interval, "from", w.State().Cursor)
	for {
		w.tickWithRecovery(ctx)

		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}

// Tick runs a single poll-validate-notify iteration.
func (w *Watcher) Tick(ctx context.Context) {
	w.mx.Lock()
	defer w.mx.Unlock()

	resp, err := w.poller.HomeworkStatuses(ctx, w.state.Cursor)
	if err != nil {
		if ctx.Err() != nil {
			w.log.InfoContext(ctx, "poll interrupted", "error", err)
			return
		}
		w.handleFailure(ctx, err)
		return
	}

	rec, ok, err := homework.CheckResponse(resp)
	if err != nil {
		w.handleFailure(ctx, err)
		return
	}

	if !ok {
		w.log.DebugContext(ctx, "no new homework", "from", w.state.Cursor)
	} else {
		msg, err := homework.ParseStatus(rec)
		if err != nil {
			w.handleFailure(ctx, err)
			return
		}
		w.notifyStatus(ctx, msg)
	}

	if cursor, ok := homework.CurrentDate(resp); ok {
		w.state.Cursor = cursor
	} else {
		w.log.DebugContext(ctx, "current_date is absent, keeping cursor", "cursor", w.state.Cursor)
	}
	w.state.API = AlertActive
	w.state.Data = AlertActive
}

func (w *Watcher) notifyStatus(ctx context.Context, msg string) {
	if msg == w.state.LastMessage {
		w.log.DebugContext(ctx, "homework status is unchanged")
		return
	}

	w.notifier.Notify(ctx, msg)
	w.state.LastMessage = msg
}

func (w *Watcher) handleFailure(ctx context.Context, err error) {
	class := homework.ClassOf(err)
	log := w.log.With("class", class.String(), "kind", homework.KindOf(err).String())

	state, prefix := &w.state.Data, msgDataProblem
	if class == homework.ClassAPI {
		state, prefix = &w.state.API, msgAPIProblem
	}

	log.ErrorContext(ctx, "failed to get homework status", "error", err, "alert", state.String())
	if *state == AlertSuppressed {
		return
	}

	w.notifier.Notify(ctx, prefix+err.Error())
	*state = AlertSuppressed
}

func (w *Watcher) tickWithRecovery(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			w.log.ErrorContext(ctx, "Recovered from panic", "error", r)
		}
	}()
	w.Tick(ctx)
}
