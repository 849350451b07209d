package service

import (
	"context"
	"strings"

	"sports-federation-backend/app/formengine"
	"sports-federation-backend/app/model"
	"sports-federation-backend/app/repository"

	"github.com/google/uuid"
)

// TemplateInput adalah payload create/update template. Aturan name/field
// (wajib, unik, model ada, formula) diperiksa oleh formengine.Builder dan
// dilaporkan sebagai ValidationError per-field.
type TemplateInput struct {
	Name                  string               `json:"name" validate:"max=150"`
	Description           string               `json:"description" validate:"max=2000"`
	ReferenceModel        string               `json:"reference_model" validate:"max=50"`
	ReferenceDisplayField string               `json:"reference_display_field" validate:"max=50"`
	IsActive              *bool                `json:"is_active"`
	Sections              []formengine.Section `json:"sections"`
}

func (in TemplateInput) toEngine() formengine.Template {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return formengine.Template{
		Name:                  in.Name,
		Description:           strings.TrimSpace(in.Description),
		ReferenceModel:        in.ReferenceModel,
		ReferenceDisplayField: strings.TrimSpace(in.ReferenceDisplayField),
		IsActive:              active,
		Sections:              in.Sections,
	}
}

// FormOptions adalah semua data pilihan yang dibutuhkan untuk merender form.
type FormOptions struct {
	// Options: opsi field select/radio/checkbox, dikunci field id.
	Options map[string][]formengine.Option `json:"options"`
	// ReferenceRecords: isi picker referensi global ({value: id, label: display field}).
	ReferenceRecords []formengine.Option `json:"reference_records"`
	// FieldRecords: record untuk picker field model_reference ber-scope own_model.
	FieldRecords map[string][]formengine.Record `json:"field_records"`
}

// FormTemplateService mengelola definisi form dinamis.
type FormTemplateService interface {
	List(ctx context.Context, filter repository.TemplateFilter) ([]model.FormTemplate, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*model.FormTemplate, error)
	Create(ctx context.Context, userID uuid.UUID, in TemplateInput) (*model.FormTemplate, error)
	Update(ctx context.Context, id uuid.UUID, in TemplateInput) (*model.FormTemplate, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)

	ResolveOptions(ctx context.Context, id uuid.UUID, userID string) (*FormOptions, error)
	GetReferenceRecord(ctx context.Context, id uuid.UUID, referenceID string) (formengine.Record, error)
}

type formTemplateService struct {
	repo     repository.FormTemplateRepository
	catalog  repository.ModelCatalogRepository
	activity ActivityLogService
}

func NewFormTemplateService(repo repository.FormTemplateRepository, catalog repository.ModelCatalogRepository, activity ActivityLogService) FormTemplateService {
	return &formTemplateService{repo: repo, catalog: catalog, activity: activity}
}

func (s *formTemplateService) List(ctx context.Context, filter repository.TemplateFilter) ([]model.FormTemplate, int64, error) {
	return s.repo.List(ctx, filter)
}

func (s *formTemplateService) Get(ctx context.Context, id uuid.UUID) (*model.FormTemplate, error) {
	tpl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "template")
	}
	return tpl, nil
}

// build menjalankan satu sesi builder: normalisasi lalu validasi.
func (s *formTemplateService) build(ctx context.Context, in TemplateInput) (formengine.Template, error) {
	if err := validateStruct(in); err != nil {
		return formengine.Template{}, err
	}
	b := formengine.NewBuilder(in.toEngine(), s.catalog)
	defer b.Close()

	b.Normalize()
	if err := b.Validate(ctx); err != nil {
		return formengine.Template{}, err
	}
	return b.Template(), nil
}

func (s *formTemplateService) Create(ctx context.Context, userID uuid.UUID, in TemplateInput) (*model.FormTemplate, error) {
	tpl, err := s.build(ctx, in)
	if err != nil {
		return nil, err
	}
	row := &model.FormTemplate{ID: uuid.New(), CreatedBy: userID}
	row.ApplyEngine(tpl)
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *formTemplateService) Update(ctx context.Context, id uuid.UUID, in TemplateInput) (*model.FormTemplate, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "template")
	}
	tpl, err := s.build(ctx, in)
	if err != nil {
		return nil, err
	}
	row.ApplyEngine(tpl)
	if err := s.repo.Update(ctx, row); err != nil {
		return nil, notFound(err, "template")
	}
	return row, nil
}

// Delete menghapus template dan semua submission-nya.
func (s *formTemplateService) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, notFound(err, "template")
	}
	return n, nil
}

func (s *formTemplateService) ResolveOptions(ctx context.Context, id uuid.UUID, userID string) (*FormOptions, error) {
	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	tpl := row.ToEngine()
	logf := s.activity.ResolverLogger(ctx, "form.resolve", userID)
	resolver := formengine.NewFieldResolver(s.catalog, logf)

	out := &FormOptions{
		Options:          resolver.ResolveTemplate(ctx, tpl),
		ReferenceRecords: []formengine.Option{},
		FieldRecords:     map[string][]formengine.Record{},
	}

	if tpl.ReferenceModel != "" {
		display := tpl.ReferenceDisplayField
		if display == "" {
			display = formengine.DefaultDisplayField
		}
		recs := resolver.Records(ctx, tpl.ReferenceModel)
		out.ReferenceRecords = formengine.OptionsFromRecords(recs, formengine.DefaultValueField, display)
	}

	byModel := map[string][]formengine.Record{}
	for _, sec := range tpl.Sections {
		for _, f := range sec.Fields {
			if f.Type != formengine.FieldModelReference {
				continue
			}
			if tpl.ScopeOf(f) != formengine.ScopeOwnModel {
				continue
			}
			recs, ok := byModel[f.DataSourceModel]
			if !ok {
				recs = resolver.Records(ctx, f.DataSourceModel)
				byModel[f.DataSourceModel] = recs
			}
			out.FieldRecords[f.ID] = recs
		}
	}
	return out, nil
}

func (s *formTemplateService) GetReferenceRecord(ctx context.Context, id uuid.UUID, referenceID string) (formengine.Record, error) {
	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if row.ReferenceModel == "" {
		return nil, badRequest("template tidak memiliki reference_model")
	}
	rec, err := s.catalog.FindRecord(ctx, row.ReferenceModel, referenceID)
	if err != nil {
		return nil, notFound(unknownModel(err), "record referensi")
	}
	return rec, nil
}
