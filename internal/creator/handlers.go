package creator

import (
	"context"
	"fmt"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/Mivy_Go/internal/event"
	"github.com/osse101/Mivy_Go/internal/logger"
)

// appliedSteps remembers which stat updates already landed for a membership,
// so a bus retry after a partial failure only re-runs the failed step
type appliedSteps struct {
	lru *expirable.LRU[string, struct{}]
}

func newAppliedSteps() *appliedSteps {
	return &appliedSteps{lru: expirable.NewLRU[string, struct{}](AppliedStepsSize, nil, AppliedStepsTTL)}
}

// once runs fn unless step already succeeded for membershipID
func (a *appliedSteps) once(step, membershipID string, fn func() error) error {
	key := step + ":" + membershipID
	if membershipID != "" && a.lru.Contains(key) {
		return nil
	}
	if err := fn(); err != nil {
		return err
	}
	if membershipID != "" {
		a.lru.Add(key, struct{}{})
	}
	return nil
}

// RegisterStatsHandlers keeps creator stats in step with membership events.
// Patron count and volume are separate units; each is applied at most once
// per membership.
func RegisterStatsHandlers(bus event.Bus, svc Service) {
	applied := newAppliedSteps()

	bus.Subscribe(event.MembershipActivated, func(ctx context.Context, evt event.Event) error {
		p, err := event.DecodePayload[event.MembershipActivatedPayloadV1](evt.Payload)
		if err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", evt.Type, err)
		}
		// a renewal replaces a membership, so the patron count is unchanged
		if p.ReplacedID != "" {
			return nil
		}
		return applied.once(stepPatronAdded, p.MembershipID, func() error {
			if err := svc.AdjustPatrons(ctx, p.CreatorID, 1); err != nil {
				logger.FromContext(ctx).Error(LogMsgPatronAdjustFail, "creator_id", p.CreatorID, "error", err)
				return err
			}
			return nil
		})
	})

	bus.Subscribe(event.MembershipActivated, func(ctx context.Context, evt event.Event) error {
		p, err := event.DecodePayload[event.MembershipActivatedPayloadV1](evt.Payload)
		if err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", evt.Type, err)
		}
		if !p.PriceUSD.IsPositive() {
			return nil
		}
		return applied.once(stepVolumeAdded, p.MembershipID, func() error {
			if err := svc.AddVolume(ctx, p.CreatorID, p.PriceUSD); err != nil {
				logger.FromContext(ctx).Error(LogMsgVolumeAddFail, "creator_id", p.CreatorID, "error", err)
				return err
			}
			return nil
		})
	})

	bus.Subscribe(event.MembershipExpired, func(ctx context.Context, evt event.Event) error {
		p, err := event.DecodePayload[event.MembershipExpiredPayloadV1](evt.Payload)
		if err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", evt.Type, err)
		}
		return applied.once(stepPatronRemoved, p.MembershipID, func() error {
			if err := svc.AdjustPatrons(ctx, p.CreatorID, -1); err != nil {
				logger.FromContext(ctx).Error(LogMsgPatronAdjustFail, "creator_id", p.CreatorID, "error", err)
				return err
			}
			return nil
		})
	})

	logger.Info(LogMsgStatsHandlersWired)
}
