package service

import (
	"context"
	"time"
)

// RecentWindow is how far back recommendation activity is counted.
const RecentWindow = 30 * 24 * time.Hour

type Summary struct {
	Crops                 map[string]int64 `json:"crops"`
	Tasks                 map[string]int64 `json:"tasks"`
	OverdueTasks          int64            `json:"overdue_tasks"`
	RecentRecommendations int64            `json:"recent_recommendations"`
	GeneratedAt           time.Time        `json:"generated_at"`
}

type StatusCounter interface {
	CountByStatus(ctx context.Context, uid string) (map[string]int64, error)
}

type OverdueCounter interface {
	CountOverdue(ctx context.Context, uid string, now time.Time) (int64, error)
}

type ActivityCounter interface {
	CountSince(ctx context.Context, uid string, since time.Time) (int64, error)
}

type DashboardService interface {
	Summary(ctx context.Context, uid string) (Summary, error)
}
