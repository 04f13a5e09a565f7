package serviceImp

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"agrow/pkg/dashboard/service"
)

type Deps struct {
	Crops   service.StatusCounter
	Tasks   service.StatusCounter
	Overdue service.OverdueCounter
	Logs    service.ActivityCounter
	Now     func() time.Time
}

type dashSvc struct{ d Deps }

func New(d Deps) service.DashboardService {
	if d.Now == nil {
		d.Now = time.Now
	}
	return &dashSvc{d}
}

// Summary runs the four counts concurrently. The first failure cancels the rest.
func (s *dashSvc) Summary(ctx context.Context, uid string) (service.Summary, error) {
	now := s.d.Now()
	out := service.Summary{GeneratedAt: now.UTC()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Crops, err = s.d.Crops.CountByStatus(gctx, uid)
		return wrap("crops", err)
	})
	g.Go(func() (err error) {
		out.Tasks, err = s.d.Tasks.CountByStatus(gctx, uid)
		return wrap("tasks", err)
	})
	g.Go(func() (err error) {
		out.OverdueTasks, err = s.d.Overdue.CountOverdue(gctx, uid, now)
		return wrap("overdue tasks", err)
	})
	g.Go(func() (err error) {
		out.RecentRecommendations, err = s.d.Logs.CountSince(gctx, uid, now.Add(-service.RecentWindow))
		return wrap("recommendations", err)
	})
	if err := g.Wait(); err != nil {
		return service.Summary{}, err
	}
	return out, nil
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("count %s: %w", what, err)
	}
	return nil
}
