package worker

import (
	"context"
	"encoding/json"
	"time"

	"welldecore/pricetracker/internal/alert"
	"welldecore/pricetracker/internal/scraper"
	"welldecore/pricetracker/logger"
	"welldecore/pricetracker/services/notify"
	"welldecore/pricetracker/services/publisher"
)

const (
	startupNotice = "🤖 Bot started. Monitoring categories…"

	// dispatchPace is slept after each successful delivery so the messaging
	// sink never sees a burst of sends.
	dispatchPace = 600 * time.Millisecond

	// tickSlice is how long the loop idles between interval checks.
	tickSlice = 2 * time.Second
)

// Scraper fetches and extracts the listings of one category.
type Scraper interface {
	FetchListings(category scraper.Category) ([]scraper.Listing, error)
}

// Worker drives the poll loop: one pass over all categories immediately on
// start, then another pass whenever the configured interval has elapsed.
// Everything runs sequentially on the loop goroutine; stopping is done by
// cancelling the context passed to NewWorker.
type Worker struct {
	ctx        context.Context
	categories []scraper.Category
	scraper    Scraper
	rules      scraper.Rules
	composer   *alert.Composer
	notifier   notify.Notifier
	publisher  publisher.Publisher // optional alert mirror, may be nil
	interval   time.Duration
	pace       time.Duration
	tick       time.Duration
	log        *logger.Logger
}

// NewWorker creates a new worker. pub may be nil to disable alert mirroring.
func NewWorker(
	ctx context.Context,
	categories []scraper.Category,
	s Scraper,
	rules scraper.Rules,
	composer *alert.Composer,
	notifier notify.Notifier,
	pub publisher.Publisher,
	interval time.Duration,
) *Worker {
	return &Worker{
		ctx:        ctx,
		categories: categories,
		scraper:    s,
		rules:      rules,
		composer:   composer,
		notifier:   notifier,
		publisher:  pub,
		interval:   interval,
		pace:       dispatchPace,
		tick:       tickSlice,
		log:        logger.ForWorker(),
	}
}

// Start runs the polling loop until the context is cancelled. The startup
// notice is best-effort: a failed send is logged and the loop starts anyway.
func (w *Worker) Start() error {
	if err := w.notifier.Send(w.ctx, startupNotice); err != nil {
		w.log.Error().Err(err).Msg("Failed to send startup message")
	}

	w.runPass()
	lastPass := time.Now()

	for {
		select {
		case <-w.ctx.Done():
			return nil
		case <-time.After(w.tick):
			if time.Since(lastPass) >= w.interval {
				w.runPass()
				lastPass = time.Now()
			}
		}
	}
}

// runPass sweeps all categories in configured order.
func (w *Worker) runPass() {
	start := time.Now()
	sent := 0

	for _, category := range w.categories {
		messages := w.collectAlerts(category, time.Now())
		sent += w.dispatch(category, messages)
	}

	if w.publisher != nil {
		if err := w.publisher.Trim(); err != nil {
			w.log.Error().Err(err).Msg("Failed to trim alert stream")
		}
	}

	w.log.Info().
		Int("alerts_sent", sent).
		Dur("elapsed", time.Since(start)).
		Msg("Pass complete")
}

// collectAlerts runs fetch, extract, classify and compose for one category.
// A fetch failure yields zero messages for this pass; there is no retry.
func (w *Worker) collectAlerts(category scraper.Category, now time.Time) []alert.Message {
	listings, err := w.scraper.FetchListings(category)
	if err != nil {
		w.log.Warn().
			Str("category", category.Name).
			Err(err).
			Msg("Failed to check category")
		return nil
	}

	var messages []alert.Message
	for _, listing := range listings {
		classified := scraper.Classify(listing, w.rules)
		if !classified.Qualifies {
			continue
		}
		messages = append(messages, w.composer.Compose(classified, category.Name, now))
	}
	return messages
}

// dispatch delivers the messages in order and returns how many succeeded.
// A delivery failure is logged and the next message is attempted; after each
// successful delivery the loop sleeps for the pacing delay.
func (w *Worker) dispatch(category scraper.Category, messages []alert.Message) int {
	sent := 0
	for _, message := range messages {
		if err := w.notifier.Send(w.ctx, message.Text); err != nil {
			w.log.Warn().
				Str("category", category.Name).
				Err(err).
				Msg("Telegram send failed")
			continue
		}
		sent++
		w.mirror(message)
		time.Sleep(w.pace)
	}
	return sent
}

// mirror publishes a delivered alert to the stream when mirroring is enabled.
func (w *Worker) mirror(message alert.Message) {
	if w.publisher == nil {
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"category": message.Category,
		"title":    message.Listing.Title,
		"link":     message.Listing.Link,
		"price":    message.Listing.Price,
		"text":     message.Text,
	})
	if err != nil {
		w.log.Error().Err(err).Msg("Failed to marshal alert for mirroring")
		return
	}

	if err := w.publisher.Publish(message.Category, payload); err != nil {
		w.log.Error().Err(err).Msg("Failed to mirror alert")
	}
}
