package repository

//go:generate mockgen -source=training_schedule_repository.go -destination=mocks/training_schedule_repository_mock.go -package=mocks

import (
	"context"
	"time"

	"sports-federation-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const sessionBatchSize = 200

// TrainingScheduleRepository mengelola jadwal latihan dan sesi hasil generate.
type TrainingScheduleRepository interface {
	Create(ctx context.Context, s *model.TrainingSchedule) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.TrainingSchedule, error)
	List(ctx context.Context, limit, offset int) ([]model.TrainingSchedule, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// CreateSessions menyisipkan sesi secara batch. Tanggal yang sudah punya
	// sesi untuk jadwal yang sama dilewati; yang dikembalikan hanya jumlah
	// baris yang benar-benar baru.
	CreateSessions(ctx context.Context, sessions []model.TrainingSession) (int64, error)
	ListSessions(ctx context.Context, scheduleID uuid.UUID, from, to *time.Time) ([]model.TrainingSession, error)
}

type trainingScheduleRepository struct {
	db *gorm.DB
}

// NewTrainingScheduleRepository membuat instance repository jadwal latihan.
func NewTrainingScheduleRepository(db *gorm.DB) TrainingScheduleRepository {
	return &trainingScheduleRepository{db: db}
}

func (r *trainingScheduleRepository) Create(ctx context.Context, s *model.TrainingSchedule) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *trainingScheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TrainingSchedule, error) {
	var s model.TrainingSchedule
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *trainingScheduleRepository) List(ctx context.Context, limit, offset int) ([]model.TrainingSchedule, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.TrainingSchedule{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.TrainingSchedule
	q = q.Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Delete menghapus jadwal beserta seluruh sesinya.
func (r *trainingScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("schedule_id = ?", id).Delete(&model.TrainingSession{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.TrainingSchedule{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *trainingScheduleRepository) CreateSessions(ctx context.Context, sessions []model.TrainingSession) (int64, error) {
	if len(sessions) == 0 {
		return 0, nil
	}
	tx := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "schedule_id"}, {Name: "session_date"}},
			DoNothing: true,
		}).
		CreateInBatches(sessions, sessionBatchSize)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (r *trainingScheduleRepository) ListSessions(ctx context.Context, scheduleID uuid.UUID, from, to *time.Time) ([]model.TrainingSession, error) {
	q := r.db.WithContext(ctx).Where("schedule_id = ?", scheduleID)
	if from != nil {
		q = q.Where("session_date >= ?", *from)
	}
	if to != nil {
		q = q.Where("session_date <= ?", *to)
	}
	var rows []model.TrainingSession
	if err := q.Order("session_date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
