package formengine

import (
	"context"
	"log"
	"sync"
)

// Record adalah satu record bebas dari sebuah model (selalu punya "id").
type Record map[string]any

// ID mengembalikan id record dalam bentuk teks.
func (r Record) ID() string { return Stringify(r["id"]) }

// ModelInfo menjelaskan satu koleksi entitas yang bisa menjadi sumber data field.
type ModelInfo struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// ModelCatalog adalah kolaborator eksternal "model metadata/records".
type ModelCatalog interface {
	ListModels(ctx context.Context) ([]ModelInfo, error)
	ListModelFields(ctx context.Context, modelKey string) ([]string, error)
	ListModelRecords(ctx context.Context, modelKey string) ([]Record, error)
}

// Logf dipakai resolver untuk mencatat kegagalan yang ditelan.
type Logf func(format string, args ...any)

// FieldResolver menghasilkan daftar opsi konkret untuk field pilihan.
type FieldResolver struct {
	catalog ModelCatalog
	logf    Logf
}

// NewFieldResolver membuat resolver. logf nil berarti log.Printf.
func NewFieldResolver(catalog ModelCatalog, logf Logf) *FieldResolver {
	if logf == nil {
		logf = log.Printf
	}
	return &FieldResolver{catalog: catalog, logf: logf}
}

// OptionsFromRecords memetakan record ke opsi {value, label}. Field yang
// tidak ada di record menjadi string kosong.
func OptionsFromRecords(records []Record, valueField, labelField string) []Option {
	out := make([]Option, 0, len(records))
	for _, rec := range records {
		out = append(out, Option{
			Value: Stringify(rec[valueField]),
			Label: Stringify(rec[labelField]),
		})
	}
	return out
}

// ResolveField mengembalikan opsi sebuah field. Field non-pilihan → nil.
// Kegagalan mengambil record dicatat dan menghasilkan daftar kosong.
func (r *FieldResolver) ResolveField(ctx context.Context, field Field) []Option {
	if !field.Type.IsChoice() {
		return nil
	}
	if field.DataSourceType != DataSourceModel {
		return append([]Option{}, field.Options...)
	}
	records, err := r.records(ctx, field.DataSourceModel, nil)
	if err != nil {
		return []Option{}
	}
	return OptionsFromRecords(records, field.ValueField(), field.LabelField())
}

// ResolveTemplate mengembalikan opsi untuk setiap field pilihan, dikunci field id.
// Record tiap model hanya diambil sekali per panggilan.
func (r *FieldResolver) ResolveTemplate(ctx context.Context, tpl Template) map[string][]Option {
	out := map[string][]Option{}
	memo := map[string][]Record{}
	for _, s := range tpl.Sections {
		for _, f := range s.Fields {
			if !f.Type.IsChoice() {
				continue
			}
			if f.DataSourceType != DataSourceModel {
				out[f.ID] = append([]Option{}, f.Options...)
				continue
			}
			records, err := r.records(ctx, f.DataSourceModel, memo)
			if err != nil {
				out[f.ID] = []Option{}
				continue
			}
			out[f.ID] = OptionsFromRecords(records, f.ValueField(), f.LabelField())
		}
	}
	return out
}

// Records mengambil record sebuah model untuk picker model_reference
// (mode own_model). Error ditelan seperti ResolveField.
func (r *FieldResolver) Records(ctx context.Context, modelKey string) []Record {
	records, err := r.records(ctx, modelKey, nil)
	if err != nil {
		return []Record{}
	}
	return records
}

func (r *FieldResolver) records(ctx context.Context, modelKey string, memo map[string][]Record) ([]Record, error) {
	if memo != nil {
		if recs, ok := memo[modelKey]; ok {
			return recs, nil
		}
	}
	if modelKey == "" || r.catalog == nil {
		return []Record{}, nil
	}
	recs, err := r.catalog.ListModelRecords(ctx, modelKey)
	if err != nil {
		r.logf("[FORM] gagal mengambil record model=%s: %v", modelKey, err)
		if memo != nil {
			memo[modelKey] = []Record{}
		}
		return nil, err
	}
	if recs == nil {
		recs = []Record{}
	}
	if memo != nil {
		memo[modelKey] = recs
	}
	return recs, nil
}

// ModelFieldCache menyimpan daftar nama field per model selama satu sesi
// builder. Model yang belum pernah dilihat diambil sekali; Invalidate
// dipanggil saat sesi berakhir.
type ModelFieldCache struct {
	catalog ModelCatalog

	mu      sync.Mutex
	models  []ModelInfo
	loaded  bool
	fields  map[string][]string
	fetches int
}

// NewModelFieldCache membuat cache kosong di atas catalog.
func NewModelFieldCache(catalog ModelCatalog) *ModelFieldCache {
	return &ModelFieldCache{catalog: catalog, fields: map[string][]string{}}
}

// Models mengembalikan daftar model (diambil sekali).
func (c *ModelFieldCache) Models(ctx context.Context) ([]ModelInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return c.models, nil
	}
	models, err := c.catalog.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	c.models, c.loaded = models, true
	return models, nil
}

// HasModel melaporkan apakah key termasuk model yang tersedia.
func (c *ModelFieldCache) HasModel(ctx context.Context, key string) (bool, error) {
	models, err := c.Models(ctx)
	if err != nil {
		return false, err
	}
	for _, m := range models {
		if m.Key == key {
			return true, nil
		}
	}
	return false, nil
}

// Fields mengembalikan nama-nama field sebuah model, dari cache bila ada.
func (c *ModelFieldCache) Fields(ctx context.Context, key string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if fs, ok := c.fields[key]; ok {
		return fs, nil
	}
	fs, err := c.catalog.ListModelFields(ctx, key)
	if err != nil {
		return nil, err
	}
	c.fetches++
	c.fields[key] = fs
	return fs, nil
}

// Fetches menghitung berapa kali ListModelFields benar-benar dipanggil.
func (c *ModelFieldCache) Fetches() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetches
}

// Invalidate mengosongkan cache.
func (c *ModelFieldCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.models, c.loaded = nil, false
	c.fields = map[string][]string{}
}
