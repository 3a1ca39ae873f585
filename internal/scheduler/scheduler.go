package scheduler

import (
	"context"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"QuoteChart/internal/collector"
	"QuoteChart/internal/model"
	"QuoteChart/internal/notifier"
	"QuoteChart/internal/recorder"
	"QuoteChart/internal/strategy"
	"QuoteChart/internal/watchlist"
)

// Notifier delivers formatted messages.
type Notifier interface {
	Send(text string) error
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages all cron tasks and chat commands.
type Scheduler struct {
	Cron          *cron.Cron
	Collector     *collector.Collector
	Watchlist     *watchlist.Manager
	Notifier      Notifier // nil disables outgoing messages
	Recorder      recorder.Recorder
	DefaultWindow model.TimeWindow // used by /chart without a window
	Ctx           context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, wl *watchlist.Manager, n Notifier, rec recorder.Recorder) *Scheduler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron:          cron.New(cron.WithSeconds()),
		Collector:     col,
		Watchlist:     wl,
		Notifier:      n,
		Recorder:      rec,
		DefaultWindow: model.Month,
		Ctx:           ctx,
	}
}

// RegisterAll registers the refresh and digest tasks.
func (s *Scheduler) RegisterAll(refreshCron, digestCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	if _, err := s.Cron.AddFunc(digestCron, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for running tasks.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info("scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

// refreshTask builds a month snapshot for every watched symbol, records it and
// alerts when a symbol's RSI zone changes.
func (s *Scheduler) refreshTask() {
	symbols := s.Watchlist.Symbols()
	log.Infof("running refresh task for %d symbols", len(symbols))

	var failed []string
	for _, sym := range symbols {
		if err := s.refreshSymbol(sym); err != nil {
			log.WithField("symbol", sym).Errorf("refresh: %v", err)
			failed = append(failed, fmt.Sprintf("%s: %s", sym, collector.UserMessage(err)))
		}
	}
	if len(failed) > 0 {
		s.trySend("❌ Refresh failed\n" + strings.Join(failed, "\n"))
	}
}

func (s *Scheduler) refreshSymbol(symbol string) error {
	quotes, err := s.Collector.History(s.Ctx, symbol)
	if err != nil {
		return err
	}
	if err := s.Recorder.RecordQuotes(quotes); err != nil {
		log.WithField("symbol", symbol).Errorf("record quotes: %v", err)
	}

	snap := s.Collector.Build(symbol, model.Month, quotes)
	if err := s.Recorder.RecordSnapshot(snap); err != nil {
		log.WithField("symbol", symbol).Errorf("record snapshot: %v", err)
	}

	sig := strategy.Evaluate(snap)
	previous := s.Watchlist.Zone(symbol)
	if s.Watchlist.UpdateZone(symbol, sig.Zone) {
		log.WithField("symbol", symbol).Infof("RSI zone %s -> %s", previous, sig.Zone)
		s.trySend(notifier.FormatZoneAlert(sig, previous))
	}
	return nil
}

func (s *Scheduler) digestTask() {
	log.Info("running digest task")
	rows, err := s.Collector.OverviewFor(s.Ctx, s.Watchlist.Symbols())
	if err != nil {
		log.Errorf("digest overview: %v", err)
		s.trySend("❌ Digest failed: " + collector.UserMessage(err))
		return
	}
	s.trySend(notifier.FormatOverview(rows))
}

const helpText = "Available commands:\n" +
	"• /quotes - latest quotes of the watchlist\n" +
	"• /chart SYMBOL [week|month|sixMonths] - chart summary and signal\n" +
	"• /watch SYMBOL - add to the watchlist\n" +
	"• /unwatch SYMBOL - remove from the watchlist\n" +
	"• /list - show the watchlist\n" +
	"• /refresh - run the refresh task now"

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	cmd := strings.ToLower(fields[0])
	if i := strings.Index(cmd, "@"); i > 0 {
		cmd = cmd[:i] // "/chart@QuoteChartBot" in group chats
	}
	args := fields[1:]

	switch cmd {
	case "/quotes":
		rows, err := s.Collector.OverviewFor(s.Ctx, s.Watchlist.Symbols())
		if err != nil {
			return "❌ " + collector.UserMessage(err)
		}
		return notifier.FormatOverview(rows)

	case "/chart":
		if len(args) == 0 {
			return "Usage: /chart SYMBOL [week|month|sixMonths]"
		}
		window := s.DefaultWindow
		if len(args) > 1 {
			w, err := model.ParseTimeWindow(args[1])
			if err != nil {
				return "❌ Unknown window " + args[1] + ", use week, month or sixMonths"
			}
			window = w
		}
		snap, err := s.Collector.Chart(s.Ctx, args[0], window)
		if err != nil {
			return "❌ " + collector.UserMessage(err)
		}
		return notifier.FormatSnapshot(snap, strategy.Evaluate(snap))

	case "/watch":
		if len(args) == 0 {
			return "Usage: /watch SYMBOL"
		}
		added, err := s.Watchlist.Add(args[0])
		switch {
		case err != nil:
			return "❌ " + err.Error()
		case !added:
			return strings.ToUpper(args[0]) + " is already watched"
		}
		return "✅ Watching " + strings.ToUpper(args[0])

	case "/unwatch":
		if len(args) == 0 {
			return "Usage: /unwatch SYMBOL"
		}
		removed, err := s.Watchlist.Remove(args[0])
		switch {
		case err != nil:
			return "❌ " + err.Error()
		case !removed:
			return strings.ToUpper(args[0]) + " is not watched"
		}
		return "✅ Stopped watching " + strings.ToUpper(args[0])

	case "/list":
		return notifier.FormatWatchlist(s.Watchlist.Symbols())

	case "/refresh":
		s.refreshTask()
		return "✅ Refresh done"

	default:
		return helpText
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		log.Debugf("notifier disabled, dropping message: %.40q", text)
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Errorf("send notification: %v", err)
	}
}
