package repository

//go:generate mockgen -source=form_template_repository.go -destination=mocks/form_template_repository_mock.go -package=mocks

import (
	"context"
	"strings"

	"sports-federation-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TemplateFilter menentukan scope daftar template.
type TemplateFilter struct {
	Search   string // cocokkan nama (ILIKE)
	IsActive *bool
	Limit    int
	Offset   int
}

// FormTemplateRepository mendefinisikan operasi database untuk definisi form.
type FormTemplateRepository interface {
	Create(ctx context.Context, tpl *model.FormTemplate) error
	Update(ctx context.Context, tpl *model.FormTemplate) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.FormTemplate, error)
	List(ctx context.Context, filter TemplateFilter) ([]model.FormTemplate, int64, error)

	// Delete menghapus template beserta semua submission dan nilainya dalam
	// satu transaksi, lalu mengembalikan jumlah submission yang ikut terhapus.
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type formTemplateRepository struct {
	db *gorm.DB
}

// NewFormTemplateRepository membuat instance repository template.
func NewFormTemplateRepository(db *gorm.DB) FormTemplateRepository {
	return &formTemplateRepository{db: db}
}

func (r *formTemplateRepository) Create(ctx context.Context, tpl *model.FormTemplate) error {
	return r.db.WithContext(ctx).Create(tpl).Error
}

// Update menimpa seluruh kolom template (termasuk is_active = false).
func (r *formTemplateRepository) Update(ctx context.Context, tpl *model.FormTemplate) error {
	res := r.db.WithContext(ctx).
		Model(&model.FormTemplate{}).
		Where("id = ?", tpl.ID).
		Select("name", "description", "reference_model", "reference_display_field", "is_active", "sections").
		Updates(tpl)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *formTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.FormTemplate, error) {
	var tpl model.FormTemplate
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tpl).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *formTemplateRepository) List(ctx context.Context, filter TemplateFilter) ([]model.FormTemplate, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.FormTemplate{})
	if s := strings.TrimSpace(filter.Search); s != "" {
		q = q.Where("name ILIKE ?", "%"+s+"%")
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.FormTemplate
	q = q.Order("created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *formTemplateRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		submissionIDs := tx.Model(&model.FormSubmission{}).Select("id").Where("template_id = ?", id)

		if err := tx.Where("submission_id IN (?)", submissionIDs).Delete(&model.FormSubmissionValue{}).Error; err != nil {
			return err
		}

		res := tx.Where("template_id = ?", id).Delete(&model.FormSubmission{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected

		res = tx.Where("id = ?", id).Delete(&model.FormTemplate{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
