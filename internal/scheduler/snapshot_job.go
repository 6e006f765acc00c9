package scheduler

import (
	"context"

	"github.com/stocker-hk/stocker-backend/internal/service"
)

// SnapshotJob writes the daily account snapshot.
type SnapshotJob struct {
	snapshotService *service.SnapshotService
	accountID       string
}

// NewSnapshotJob creates the daily snapshot job for one account.
func NewSnapshotJob(snapshotService *service.SnapshotService, accountID string) *SnapshotJob {
	return &SnapshotJob{snapshotService: snapshotService, accountID: accountID}
}

// Name implements Job.
func (j *SnapshotJob) Name() string { return "daily_snapshot" }

// Run implements Job.
func (j *SnapshotJob) Run(ctx context.Context) error {
	_, err := j.snapshotService.RunSnapshot(ctx, j.accountID)
	return err
}
