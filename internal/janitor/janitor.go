package janitor

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/marawan13001/zmarketfr-sub000/internal/storage"
)

// Sweeper is the subset of a storage binding the janitor needs. The Redis
// binding does not implement it; there, session keys expire natively.
type Sweeper interface {
	DeleteOlderThan(ctx context.Context, prefix string, cutoff time.Time) (int, error)
}

// Janitor periodically drops session-scoped keys that have not been
// touched within the cart TTL. Losing abandoned cart state is explicitly
// acceptable.
type Janitor struct {
	cron    *cron.Cron
	sweeper Sweeper
	ttl     time.Duration
	logger  *log.Logger
}

func New(schedule string, sweeper Sweeper, ttl time.Duration, logger *log.Logger) (*Janitor, error) {
	j := &Janitor{
		cron:    cron.New(),
		sweeper: sweeper,
		ttl:     ttl,
		logger:  logger,
	}
	if _, err := j.cron.AddFunc(schedule, j.sweep); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *Janitor) Start() {
	j.cron.Start()
}

func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
}

func (j *Janitor) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-j.ttl)
	n, err := j.sweeper.DeleteOlderThan(ctx, storage.SessionPrefix(), cutoff)
	if err != nil {
		j.logger.Printf("janitor sweep: %v", err)
		return
	}
	if n > 0 {
		j.logger.Printf("janitor: removed %d expired session keys", n)
	}
}
