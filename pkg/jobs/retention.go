package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"agrow/pkg/logging"
)

const runTimeout = time.Minute

type Pruner interface {
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Retention deletes recommendation history older than a number of days on a
// cron schedule. Zero days disables it.
type Retention struct {
	p    Pruner
	days int
	cron *cron.Cron
	now  func() time.Time
}

func NewRetention(p Pruner, days int, spec string) (*Retention, error) {
	r := &Retention{p: p, days: days, cron: cron.New(), now: time.Now}
	if days <= 0 {
		return r, nil
	}
	if _, err := r.cron.AddFunc(spec, r.run); err != nil {
		return nil, fmt.Errorf("retention schedule %q: %w", spec, err)
	}
	return r, nil
}

func (r *Retention) Enabled() bool { return r.days > 0 }

// RunOnce prunes immediately and returns the number of rows removed.
func (r *Retention) RunOnce(ctx context.Context) (int64, error) {
	if !r.Enabled() {
		return 0, nil
	}
	cutoff := r.now().AddDate(0, 0, -r.days)
	return r.p.DeleteBefore(ctx, cutoff)
}

func (r *Retention) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	n, err := r.RunOnce(ctx)
	if err != nil {
		logging.Log.WithError(err).Error("[jobs] history retention failed")
		return
	}
	logging.Log.WithField("deleted", n).WithField("days", r.days).Info("[jobs] history retention done")
}

func (r *Retention) Start() {
	if !r.Enabled() {
		logging.Log.Info("[jobs] history retention disabled")
		return
	}
	r.cron.Start()
}

// Stop waits for a running prune to finish or ctx to expire.
func (r *Retention) Stop(ctx context.Context) {
	select {
	case <-r.cron.Stop().Done():
	case <-ctx.Done():
	}
}
