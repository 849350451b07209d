package repository

//go:generate mockgen -source=model_catalog_repository.go -destination=mocks/model_catalog_repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"sports-federation-backend/app/formengine"
	"sports-federation-backend/app/model"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// ErrUnknownModel dikembalikan bila key model tidak terdaftar di katalog.
var ErrUnknownModel = errors.New("model tidak dikenal")

// catalogEntry mendaftarkan satu tabel referensi yang boleh dipakai sebagai
// sumber data field form.
type catalogEntry struct {
	key   string
	name  string
	model any
}

var catalogEntries = []catalogEntry{
	{key: "athlete", name: "Atlet", model: &model.Athlete{}},
	{key: "coach", name: "Pelatih", model: &model.Coach{}},
	{key: "cabor", name: "Cabang Olahraga", model: &model.Cabor{}},
	{key: "venue", name: "Venue", model: &model.Venue{}},
	{key: "event", name: "Event", model: &model.Event{}},
}

// ModelCatalogRepository membaca metadata dan record model referensi.
// Memenuhi formengine.ModelCatalog.
type ModelCatalogRepository interface {
	formengine.ModelCatalog
	FindRecord(ctx context.Context, modelKey, id string) (formengine.Record, error)
}

type modelCatalogRepository struct {
	db      *gorm.DB
	schemas sync.Map
}

// NewModelCatalogRepository membuat instance katalog model referensi.
func NewModelCatalogRepository(db *gorm.DB) ModelCatalogRepository {
	return &modelCatalogRepository{db: db}
}

func lookupEntry(key string) (catalogEntry, error) {
	for _, e := range catalogEntries {
		if e.key == key {
			return e, nil
		}
	}
	return catalogEntry{}, fmt.Errorf("%w: %s", ErrUnknownModel, key)
}

func (r *modelCatalogRepository) parse(e catalogEntry) (*schema.Schema, error) {
	return schema.Parse(e.model, &r.schemas, r.db.NamingStrategy)
}

func (r *modelCatalogRepository) ListModels(ctx context.Context) ([]formengine.ModelInfo, error) {
	out := make([]formengine.ModelInfo, 0, len(catalogEntries))
	for _, e := range catalogEntries {
		out = append(out, formengine.ModelInfo{Key: e.key, Name: e.name})
	}
	return out, nil
}

// ListModelFields mengembalikan nama kolom tabel model (urut deklarasi struct).
func (r *modelCatalogRepository) ListModelFields(ctx context.Context, modelKey string) ([]string, error) {
	e, err := lookupEntry(modelKey)
	if err != nil {
		return nil, err
	}
	s, err := r.parse(e)
	if err != nil {
		return nil, err
	}
	return append([]string{}, s.DBNames...), nil
}

func (r *modelCatalogRepository) ListModelRecords(ctx context.Context, modelKey string) ([]formengine.Record, error) {
	e, err := lookupEntry(modelKey)
	if err != nil {
		return nil, err
	}
	s, err := r.parse(e)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	if err := r.db.WithContext(ctx).Table(s.Table).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]formengine.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, formengine.Record(row))
	}
	return out, nil
}

// FindRecord mengambil satu record berdasarkan id. Id bukan angka atau tidak
// ada → gorm.ErrRecordNotFound.
func (r *modelCatalogRepository) FindRecord(ctx context.Context, modelKey, id string) (formengine.Record, error) {
	e, err := lookupEntry(modelKey)
	if err != nil {
		return nil, err
	}
	s, err := r.parse(e)
	if err != nil {
		return nil, err
	}
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}

	var rows []map[string]any
	if err := r.db.WithContext(ctx).Table(s.Table).Where("id = ?", n).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return formengine.Record(rows[0]), nil
}
