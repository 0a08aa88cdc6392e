package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/inkbill/inkbill/internal/ledger/dashboard"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDashboardRewarm recomputes the cached dashboard statistics.
	TaskDashboardRewarm = "dashboard:rewarm"
)

// NewDashboardRewarmTask constructs an Asynq task.
func NewDashboardRewarmTask() *asynq.Task {
	return asynq.NewTask(TaskDashboardRewarm, nil)
}

// NewDashboardRewarmHandler processes TaskDashboardRewarm tasks by bumping
// the stats cache and re-priming it.
func NewDashboardRewarmHandler(service *dashboard.Service, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		stats, err := service.Refresh(ctx)
		if err != nil {
			logger.Error("dashboard rewarm failed", slog.Any("error", err))
			return err
		}
		logger.Info("dashboard stats rewarmed",
			slog.Int("overdue", stats.OverdueCount),
			slog.Int("drafts", stats.DraftCount),
		)
		return nil
	}
}
