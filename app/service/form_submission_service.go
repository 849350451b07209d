package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sports-federation-backend/app/formengine"
	"sports-federation-backend/app/model"
	"sports-federation-backend/app/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	submissionCodePrefix   = "FRM"
	submissionCodeAttempts = 5
)

// FieldValueInput adalah nilai satu field yang dikirim klien.
type FieldValueInput struct {
	FieldID string           `json:"field_id" validate:"required"`
	Value   formengine.Value `json:"value"`
}

// FillInput adalah isi form yang dikirim untuk preview maupun submit.
type FillInput struct {
	ReferenceID *string           `json:"reference_id"`
	Values      []FieldValueInput `json:"values" validate:"dive"`
	// FieldRecords memetakan field id (model_reference own_model) ke id record pilihannya.
	FieldRecords map[string]string `json:"field_records"`
}

func (in FillInput) referenceID() string {
	if in.ReferenceID == nil {
		return ""
	}
	return strings.TrimSpace(*in.ReferenceID)
}

// FillPreview adalah hasil hitung server atas isian yang belum disimpan.
type FillPreview struct {
	Values     map[string]formengine.Value `json:"values"`
	Categories map[string]string           `json:"categories"`
	Errors     []formengine.FieldError     `json:"errors"`
}

// FormSubmissionService mengelola pengisian dan hasil submission form.
type FormSubmissionService interface {
	Preview(ctx context.Context, templateID uuid.UUID, in FillInput) (*FillPreview, error)
	Create(ctx context.Context, templateID, userID uuid.UUID, in FillInput) (*model.FormSubmission, error)
	List(ctx context.Context, filter repository.SubmissionFilter) ([]model.FormSubmission, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*model.FormSubmission, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type formSubmissionService struct {
	repo      repository.FormSubmissionRepository
	templates repository.FormTemplateRepository
	catalog   repository.ModelCatalogRepository
	activity  ActivityLogService
	now       func() time.Time
}

func NewFormSubmissionService(
	repo repository.FormSubmissionRepository,
	templates repository.FormTemplateRepository,
	catalog repository.ModelCatalogRepository,
	activity ActivityLogService,
) FormSubmissionService {
	return &formSubmissionService{
		repo:      repo,
		templates: templates,
		catalog:   catalog,
		activity:  activity,
		now:       time.Now,
	}
}

func (s *formSubmissionService) template(ctx context.Context, id uuid.UUID) (*model.FormTemplate, error) {
	row, err := s.templates.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "template")
	}
	return row, nil
}

// openSession membuka sesi pengisian dengan urutan: referensi global, record
// linked, record per-field, lalu nilai klien. Nilai klien terakhir supaya
// editan pada field hasil auto-fill yang tidak readonly ikut tersimpan.
func (s *formSubmissionService) openSession(ctx context.Context, tpl formengine.Template, userID string, in FillInput) (*formengine.FillSession, error) {
	sess := formengine.NewFillSession(tpl)
	fail := func(err error) (*formengine.FillSession, error) {
		sess.Close()
		return nil, err
	}

	if refID := in.referenceID(); refID != "" {
		if tpl.ReferenceModel == "" {
			return fail(badRequest("template tidak memiliki reference_model"))
		}
		rec, err := s.catalog.FindRecord(ctx, tpl.ReferenceModel, refID)
		if err != nil {
			return fail(notFound(unknownModel(err), "record referensi"))
		}
		if err := sess.SelectReference(rec); err != nil {
			return fail(err)
		}
		if err := s.applyLinked(ctx, sess, tpl, rec, userID); err != nil {
			return fail(err)
		}
	}

	for fieldID, recordID := range in.FieldRecords {
		f, ok := tpl.FieldByID(fieldID)
		if !ok {
			return fail(fmt.Errorf("%w: %s", formengine.ErrUnknownField, fieldID))
		}
		if f.Type != formengine.FieldModelReference || tpl.ScopeOf(f) != formengine.ScopeOwnModel {
			return fail(fmt.Errorf("%w: %s", formengine.ErrNotOwnModelField, f.Name))
		}
		var rec formengine.Record
		if strings.TrimSpace(recordID) != "" {
			found, err := s.catalog.FindRecord(ctx, f.DataSourceModel, recordID)
			if err != nil {
				return fail(notFound(unknownModel(err), "record "+f.Name))
			}
			rec = found
		}
		if err := sess.SelectFieldRecord(fieldID, rec); err != nil {
			return fail(err)
		}
	}

	values := make(map[string]formengine.Value, len(in.Values))
	for _, v := range in.Values {
		values[v.FieldID] = v.Value
	}
	if err := sess.Load(values); err != nil {
		return fail(err)
	}
	return sess, nil
}

// applyLinked mengisi field linked dari record yang id-nya ada di kolom
// linked_to_reference_field referensi. Kegagalan lookup dicatat dan field
// dibiarkan kosong.
func (s *formSubmissionService) applyLinked(ctx context.Context, sess *formengine.FillSession, tpl formengine.Template, ref formengine.Record, userID string) error {
	linked := tpl.LinkedFields()
	if len(linked) == 0 {
		return nil
	}
	logf := s.activity.ResolverLogger(ctx, "form.resolve", userID)
	for _, f := range linked {
		id := formengine.Stringify(ref[f.LinkedToReferenceField])
		if id == "" {
			continue
		}
		rec, err := s.catalog.FindRecord(ctx, f.DataSourceModel, id)
		if err != nil {
			logf("[FORM] gagal mengambil record %s/%s untuk field %s: %v", f.DataSourceModel, id, f.Name, err)
			continue
		}
		if err := sess.SelectLinkedRecord(f.ID, rec); err != nil {
			return err
		}
	}
	return nil
}

// Preview menghitung field kalkulasi, kategori grading, dan error validasi
// tanpa menyimpan apa pun.
func (s *formSubmissionService) Preview(ctx context.Context, templateID uuid.UUID, in FillInput) (*FillPreview, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	row, err := s.template(ctx, templateID)
	if err != nil {
		return nil, err
	}
	tpl := row.ToEngine()
	sess, err := s.openSession(ctx, tpl, "", in)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	out := &FillPreview{
		Values:     map[string]formengine.Value{},
		Categories: map[string]string{},
		Errors:     []formengine.FieldError{},
	}
	for _, sec := range tpl.Sections {
		for _, f := range sec.Fields {
			v := sess.Value(f.ID)
			out.Values[f.ID] = v
			if cat := formengine.Grade(f, v.String()); cat != "" && !v.IsMulti() {
				out.Categories[f.ID] = cat
			}
		}
	}
	if err := sess.Validate(); err != nil {
		ve, ok := formengine.AsValidation(err)
		if !ok {
			return nil, err
		}
		out.Errors = ve.Errors
	}
	return out, nil
}

// Create memvalidasi isian lalu menyimpan submission beserta seluruh nilainya.
func (s *formSubmissionService) Create(ctx context.Context, templateID, userID uuid.UUID, in FillInput) (*model.FormSubmission, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	row, err := s.template(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if !row.IsActive {
		return nil, badRequest("template %s tidak aktif", row.Name)
	}

	sess, err := s.openSession(ctx, row.ToEngine(), userID.String(), in)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	if err := sess.Validate(); err != nil {
		return nil, err
	}
	if err := sess.BeginSubmit(); err != nil {
		return nil, err
	}

	sub, err := s.persist(ctx, row.ID, userID, in.referenceID(), sess.BuildSubmission())
	sess.FinishSubmit(err)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, model.ActivityLog{
		Action:  "form.submit",
		UserID:  userID.String(),
		Message: fmt.Sprintf("submission %s untuk template %s", sub.SubmissionCode, row.Name),
	})
	return sub, nil
}

func (s *formSubmissionService) persist(ctx context.Context, templateID, userID uuid.UUID, refID string, values []formengine.SubmittedValue) (*model.FormSubmission, error) {
	code, err := s.newCode(ctx)
	if err != nil {
		return nil, err
	}
	sub := &model.FormSubmission{
		ID:             uuid.New(),
		TemplateID:     templateID,
		SubmissionCode: code,
		UserID:         userID,
		Values:         make([]model.FormSubmissionValue, 0, len(values)),
	}
	if refID != "" {
		sub.ReferenceID = &refID
	}
	for i, v := range values {
		sub.Values = append(sub.Values, model.FormSubmissionValue{
			ID:       uuid.New(),
			FieldID:  v.FieldID,
			Position: i,
			Value:    datatypes.NewJSONType(v.Value),
			Category: v.Category,
		})
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// newCode membuat kode FRM-YYYYMMDD-XXXXXX yang belum terpakai.
func (s *formSubmissionService) newCode(ctx context.Context) (string, error) {
	day := s.now().Format("20060102")
	for i := 0; i < submissionCodeAttempts; i++ {
		suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
		code := fmt.Sprintf("%s-%s-%s", submissionCodePrefix, day, suffix)
		exists, err := s.repo.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("gagal membuat kode submission unik setelah %d percobaan", submissionCodeAttempts)
}

func (s *formSubmissionService) List(ctx context.Context, filter repository.SubmissionFilter) ([]model.FormSubmission, int64, error) {
	if _, err := s.template(ctx, filter.TemplateID); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, filter)
}

func (s *formSubmissionService) Get(ctx context.Context, id uuid.UUID) (*model.FormSubmission, error) {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "submission")
	}
	return sub, nil
}

func (s *formSubmissionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, "submission")
	}
	return nil
}
