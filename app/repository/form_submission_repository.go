package repository

//go:generate mockgen -source=form_submission_repository.go -destination=mocks/form_submission_repository_mock.go -package=mocks

import (
	"context"

	"sports-federation-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmissionFilter menentukan scope daftar submission sebuah template.
type SubmissionFilter struct {
	TemplateID  uuid.UUID
	ReferenceID *string
	Limit       int
	Offset      int
}

// FormSubmissionRepository mendefinisikan operasi database untuk submission form.
type FormSubmissionRepository interface {
	// Create menyimpan submission beserta seluruh nilainya secara atomik.
	Create(ctx context.Context, sub *model.FormSubmission) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.FormSubmission, error)
	List(ctx context.Context, filter SubmissionFilter) ([]model.FormSubmission, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CodeExists(ctx context.Context, code string) (bool, error)
}

type formSubmissionRepository struct {
	db *gorm.DB
}

// NewFormSubmissionRepository membuat instance repository submission.
func NewFormSubmissionRepository(db *gorm.DB) FormSubmissionRepository {
	return &formSubmissionRepository{db: db}
}

func orderedValues(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *formSubmissionRepository) Create(ctx context.Context, sub *model.FormSubmission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		values := sub.Values
		sub.Values = nil
		if err := tx.Create(sub).Error; err != nil {
			return err
		}
		for i := range values {
			values[i].SubmissionID = sub.ID
		}
		if len(values) > 0 {
			if err := tx.CreateInBatches(values, 200).Error; err != nil {
				return err
			}
		}
		sub.Values = values
		return nil
	})
}

func (r *formSubmissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.FormSubmission, error) {
	var sub model.FormSubmission
	err := r.db.WithContext(ctx).
		Preload("Values", orderedValues).
		Where("id = ?", id).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *formSubmissionRepository) List(ctx context.Context, filter SubmissionFilter) ([]model.FormSubmission, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.FormSubmission{}).Where("template_id = ?", filter.TemplateID)
	if filter.ReferenceID != nil {
		q = q.Where("reference_id = ?", *filter.ReferenceID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.FormSubmission
	q = q.Preload("Values", orderedValues).Order("created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *formSubmissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_id = ?", id).Delete(&model.FormSubmissionValue{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.FormSubmission{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *formSubmissionRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.FormSubmission{}).Where("submission_code = ?", code).Count(&n).Error
	return n > 0, err
}
