package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"sports-federation-backend/app/formengine"
	"sports-federation-backend/app/model"
	"sports-federation-backend/app/repository"
)

const activityWriteTimeout = 3 * time.Second

// ActivityLogService mencatat dan membaca log aktivitas (MongoDB).
type ActivityLogService interface {
	Record(ctx context.Context, entry model.ActivityLog)
	List(ctx context.Context, filter repository.ActivityLogFilter) ([]model.ActivityLog, int64, error)
	Statistics(ctx context.Context, filter repository.ActivityLogFilter) (*model.ActivityStatistics, error)

	// ResolverLogger membuat formengine.Logf yang menulis ke log proses
	// sekaligus menyimpan entri level error dengan action tertentu.
	ResolverLogger(ctx context.Context, action, userID string) formengine.Logf
}

type activityLogService struct {
	repo repository.ActivityLogRepository
}

// NewActivityLogService membuat service log. repo nil berarti hanya log proses.
func NewActivityLogService(repo repository.ActivityLogRepository) ActivityLogService {
	return &activityLogService{repo: repo}
}

// Record menyimpan satu entri. Kegagalan simpan hanya dicatat ke log proses
// dan tidak pernah menggagalkan request.
func (s *activityLogService) Record(ctx context.Context, entry model.ActivityLog) {
	if s.repo == nil {
		return
	}
	if entry.Level == "" {
		entry.Level = model.LogLevelInfo
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), activityWriteTimeout)
	defer cancel()
	if err := s.repo.Insert(wctx, &entry); err != nil {
		log.Printf("[ACTIVITY] gagal menyimpan log action=%s: %v", entry.Action, err)
	}
}

func (s *activityLogService) List(ctx context.Context, filter repository.ActivityLogFilter) ([]model.ActivityLog, int64, error) {
	if filter.Level != "" && filter.Level != model.LogLevelInfo && filter.Level != model.LogLevelError {
		return nil, 0, badRequest("level harus info atau error")
	}
	if s.repo == nil {
		return []model.ActivityLog{}, 0, nil
	}
	return s.repo.List(ctx, filter)
}

func (s *activityLogService) Statistics(ctx context.Context, filter repository.ActivityLogFilter) (*model.ActivityStatistics, error) {
	if s.repo == nil {
		return &model.ActivityStatistics{ByAction: []model.ActivityStat{}, ByLevel: []model.ActivityStat{}}, nil
	}
	return s.repo.Statistics(ctx, filter)
}

func (s *activityLogService) ResolverLogger(ctx context.Context, action, userID string) formengine.Logf {
	return func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		log.Print(msg)
		s.Record(ctx, model.ActivityLog{
			Level:   model.LogLevelError,
			Action:  action,
			UserID:  userID,
			Message: msg,
		})
	}
}
