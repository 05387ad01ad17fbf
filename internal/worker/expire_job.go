package worker

import (
	"context"
	"time"
)

// Expirer is the slice of the membership service the workers drive
type Expirer interface {
	Expire(ctx context.Context, membershipID string, at time.Time) error
	ExpireDue(ctx context.Context, now time.Time) (int, error)
}

// ExpireMembershipJob expires one stale membership found by a read-time check
type ExpireMembershipJob struct {
	Service      Expirer
	MembershipID string
	At           time.Time
}

func (j *ExpireMembershipJob) Process(ctx context.Context) error {
	return j.Service.Expire(ctx, j.MembershipID, j.At)
}

// ExpiryQueue feeds stale memberships into the pool
type ExpiryQueue struct {
	pool    *Pool
	service Expirer
}

// NewExpiryQueue creates a queue that expires memberships on pool workers
func NewExpiryQueue(pool *Pool, service Expirer) *ExpiryQueue {
	return &ExpiryQueue{pool: pool, service: service}
}

// ScheduleExpiry never blocks the read path; a dropped job is picked up by the next sweep
func (q *ExpiryQueue) ScheduleExpiry(membershipID string, at time.Time) {
	q.pool.TryEnqueue(&ExpireMembershipJob{
		Service:      q.service,
		MembershipID: membershipID,
		At:           at,
	})
}
