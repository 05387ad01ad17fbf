package worker

import (
	"context"
	"time"

	"github.com/osse101/Mivy_Go/internal/event"
	"github.com/osse101/Mivy_Go/internal/logger"
)

// MembershipWorker sweeps expired memberships on a ticker and expires
// memberships activated during this process at their exact expiry
type MembershipWorker struct {
	BaseWorker
	service  Expirer
	interval time.Duration
	ticker   *time.Ticker
	now      func() time.Time
}

// NewMembershipWorker creates a new membership worker
func NewMembershipWorker(service Expirer, interval time.Duration) *MembershipWorker {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	w := &MembershipWorker{
		service:  service,
		interval: interval,
		now:      func() time.Time { return time.Now().UTC() },
	}
	w.init()
	return w
}

// Start runs a sweep immediately and then on every tick
func (w *MembershipWorker) Start() {
	logger.Info(LogMsgMembershipWorkerStart, "interval", w.interval)

	w.ticker = time.NewTicker(w.interval)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		w.Sweep(context.Background())

		for {
			select {
			case <-w.ticker.C:
				w.Sweep(context.Background())
			case <-w.shutdown:
				return
			}
		}
	}()
}

// Sweep expires every membership whose expiry has passed
func (w *MembershipWorker) Sweep(ctx context.Context) {
	log := logger.FromContext(ctx)
	n, err := w.service.ExpireDue(ctx, w.now())
	if err != nil {
		log.Error(LogMsgSweepFailed, "error", err)
		return
	}
	if n > 0 {
		log.Info(LogMsgSweepCompleted, "expired", n)
	}
}

// Subscribe schedules an exact expiry for activations that end before the next tick
func (w *MembershipWorker) Subscribe(bus event.Bus) {
	bus.Subscribe(event.MembershipActivated, w.handleActivated)
}

func (w *MembershipWorker) handleActivated(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.MembershipActivatedPayloadV1](evt.Payload)
	if err != nil {
		return err
	}

	wait := payload.ExpiresAt.Sub(w.now())
	if wait > w.interval {
		return nil
	}
	if wait < 0 {
		wait = 0
	}

	id, at := payload.MembershipID, payload.ExpiresAt
	logger.FromContext(ctx).Debug(LogMsgExpiryScheduled, "membership_id", id, "in", wait)
	w.schedule(id, wait, func() {
		if err := w.service.Expire(context.Background(), id, at); err != nil {
			logger.Error(LogMsgExpiryFailed, "membership_id", id, "error", err)
		}
	})
	return nil
}

// Shutdown stops the ticker, cancels pending expiries and waits for in-flight work
func (w *MembershipWorker) Shutdown(ctx context.Context) error {
	if w.ticker != nil {
		w.ticker.Stop()
	}
	return w.shutdownInternal(ctx, MembershipWorkerName)
}
