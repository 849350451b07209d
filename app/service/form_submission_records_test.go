package service

import (
	"context"
	"errors"
	"testing"

	"sports-federation-backend/app/formengine"
	"sports-federation-backend/app/model"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// withFields menambah field ke section pertama fitnessTemplate.
func withFields(row *model.FormTemplate, mutate func(*formengine.Template), fields ...formengine.Field) *model.FormTemplate {
	tpl := row.ToEngine()
	tpl.Sections[0].Fields = append(tpl.Sections[0].Fields, fields...)
	if mutate != nil {
		mutate(&tpl)
	}
	row.ApplyEngine(tpl)
	return row
}

var licenseField = formengine.Field{
	ID: "f-license", Name: "license", Label: "Lisensi Pelatih", Type: formengine.FieldModelReference,
	DataSourceModel: "coach", ReferenceField: "license", AutoFillScope: formengine.ScopeOwnModel,
}

var coachSari = formengine.Record{"id": 2, "name": "Sari", "license": "B"}

func TestFormSubmissionService_CreateKeepsEditedAutoFill(t *testing.T) {
	f := newSubmissionFixture(t)
	row := fitnessTemplate(true)
	f.templates.EXPECT().FindByID(gomock.Any(), row.ID).Return(row, nil)
	f.catalog.EXPECT().FindRecord(gomock.Any(), "athlete", "5").Return(athleteAndi, nil)
	f.repo.EXPECT().CodeExists(gomock.Any(), gomock.Any()).Return(false, nil)
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	in := fullInput()
	in.Values = append(in.Values, FieldValueInput{FieldID: "f-coach", Value: formengine.Text("Sari")})

	sub, err := f.svc.Create(context.Background(), row.ID, uuid.New(), in)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got := storedValues(sub)["f-coach"]; got != "Sari" {
		t.Errorf("coach = %q, want user edit Sari", got)
	}
}

func TestFormSubmissionService_ReadonlyAutoFillIgnoresClient(t *testing.T) {
	f := newSubmissionFixture(t)
	row := withFields(fitnessTemplate(true), func(tpl *formengine.Template) {
		tpl.Sections[0].Fields[0].IsReadonly = true
	})
	f.templates.EXPECT().FindByID(gomock.Any(), row.ID).Return(row, nil)
	f.catalog.EXPECT().FindRecord(gomock.Any(), "athlete", "5").Return(athleteAndi, nil)
	f.repo.EXPECT().CodeExists(gomock.Any(), gomock.Any()).Return(false, nil)
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	in := fullInput()
	in.Values = append(in.Values, FieldValueInput{FieldID: "f-coach", Value: formengine.Text("Sari")})

	sub, err := f.svc.Create(context.Background(), row.ID, uuid.New(), in)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got := storedValues(sub)["f-coach"]; got != "Budi" {
		t.Errorf("coach = %q, readonly auto-fill must win", got)
	}
}

func TestFormSubmissionService_OwnModelPickSurvivesReferenceChange(t *testing.T) {
	f := newSubmissionFixture(t)
	row := withFields(fitnessTemplate(true), nil, licenseField)
	f.templates.EXPECT().FindByID(gomock.Any(), row.ID).Return(row, nil).Times(3)
	f.catalog.EXPECT().FindRecord(gomock.Any(), "athlete", "5").Return(athleteAndi, nil)
	f.catalog.EXPECT().FindRecord(gomock.Any(), "athlete", "6").
		Return(formengine.Record{"id": 6, "name": "Rina", "coach_name": "Sari", "license": "Z"}, nil)
	f.catalog.EXPECT().FindRecord(gomock.Any(), "coach", "2").Return(coachSari, nil).Times(3)

	tests := []struct {
		ref       *string
		wantCoach string
	}{
		{strRef("5"), "Budi"},
		{strRef("6"), "Sari"},
		{nil, ""},
	}
	for _, tt := range tests {
		in := FillInput{ReferenceID: tt.ref, FieldRecords: map[string]string{"f-license": "2"}}
		got, err := f.svc.Preview(context.Background(), row.ID, in)
		if err != nil {
			t.Fatalf("Preview(%v) error = %v", tt.ref, err)
		}
		if v := got.Values["f-license"].String(); v != "B" {
			t.Errorf("ref %v: license = %q, want B", tt.ref, v)
		}
		if v := got.Values["f-coach"].String(); v != tt.wantCoach {
			t.Errorf("ref %v: coach = %q, want %q", tt.ref, v, tt.wantCoach)
		}
	}
}

func TestFormSubmissionService_FieldRecordsErrors(t *testing.T) {
	tests := []struct {
		name    string
		records map[string]string
		expect  func(f submissionFixture)
		wantErr error
	}{
		{
			name:    "field global",
			records: map[string]string{"f-coach": "1"},
			wantErr: formengine.ErrNotOwnModelField,
		},
		{
			name:    "bukan model_reference",
			records: map[string]string{"f-berat": "1"},
			wantErr: formengine.ErrNotOwnModelField,
		},
		{
			name:    "field tidak ada",
			records: map[string]string{"f-nope": "1"},
			wantErr: formengine.ErrUnknownField,
		},
		{
			name:    "record tidak ada",
			records: map[string]string{"f-license": "99"},
			expect: func(f submissionFixture) {
				f.catalog.EXPECT().FindRecord(gomock.Any(), "coach", "99").Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSubmissionFixture(t)
			row := withFields(fitnessTemplate(true), nil, licenseField)
			f.templates.EXPECT().FindByID(gomock.Any(), row.ID).Return(row, nil)
			if tt.expect != nil {
				tt.expect(f)
			}

			_, err := f.svc.Preview(context.Background(), row.ID, FillInput{FieldRecords: tt.records})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Preview() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFormSubmissionService_FieldRecordCleared(t *testing.T) {
	f := newSubmissionFixture(t)
	row := withFields(fitnessTemplate(true), nil, licenseField)
	f.templates.EXPECT().FindByID(gomock.Any(), row.ID).Return(row, nil)

	// id kosong mengosongkan field tanpa lookup ke catalog
	got, err := f.svc.Preview(context.Background(), row.ID, FillInput{FieldRecords: map[string]string{"f-license": " "}})
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if v := got.Values["f-license"]; !v.IsEmpty() {
		t.Errorf("license = %q, want empty", v.String())
	}
}

func TestFormSubmissionService_LinkedFieldResolvedFromReference(t *testing.T) {
	linked := formengine.Field{
		ID: "f-coach-license", Name: "coach_license", Label: "Lisensi", Type: formengine.FieldModelReference,
		DataSourceModel: "coach", ReferenceField: "license", LinkedToReferenceField: "coach_id",
		AutoFillScope: formengine.ScopeGlobal, IsReadonly: true,
	}
	andi := formengine.Record{"id": 5, "name": "Andi", "coach_id": 1, "coach_name": "Budi"}

	t.Run("record ditemukan", func(t *testing.T) {
		f := newSubmissionFixture(t)
		row := withFields(fitnessTemplate(true), nil, linked)
		f.templates.EXPECT().FindByID(gomock.Any(), row.ID).Return(row, nil)
		f.catalog.EXPECT().FindRecord(gomock.Any(), "athlete", "5").Return(andi, nil)
		f.catalog.EXPECT().FindRecord(gomock.Any(), "coach", "1").
			Return(formengine.Record{"id": 1, "name": "Budi", "license": "A"}, nil)

		got, err := f.svc.Preview(context.Background(), row.ID, FillInput{ReferenceID: strRef("5")})
		if err != nil {
			t.Fatalf("Preview() error = %v", err)
		}
		if v := got.Values["f-coach-license"].String(); v != "A" {
			t.Errorf("linked license = %q, want A", v)
		}
	})

	t.Run("lookup gagal dibiarkan kosong", func(t *testing.T) {
		f := newSubmissionFixture(t)
		row := withFields(fitnessTemplate(true), nil, linked)
		f.templates.EXPECT().FindByID(gomock.Any(), row.ID).Return(row, nil)
		f.catalog.EXPECT().FindRecord(gomock.Any(), "athlete", "5").Return(andi, nil)
		f.catalog.EXPECT().FindRecord(gomock.Any(), "coach", "1").Return(nil, gorm.ErrRecordNotFound)

		got, err := f.svc.Preview(context.Background(), row.ID, FillInput{ReferenceID: strRef("5")})
		if err != nil {
			t.Fatalf("Preview() error = %v", err)
		}
		if v := got.Values["f-coach-license"]; !v.IsEmpty() {
			t.Errorf("linked license = %q, want empty", v.String())
		}
	})

	t.Run("field linked tidak punya picker sendiri", func(t *testing.T) {
		f := newSubmissionFixture(t)
		row := withFields(fitnessTemplate(true), nil, linked)
		f.templates.EXPECT().FindByID(gomock.Any(), row.ID).Return(row, nil)

		_, err := f.svc.Preview(context.Background(), row.ID, FillInput{FieldRecords: map[string]string{"f-coach-license": "1"}})
		if !errors.Is(err, formengine.ErrNotOwnModelField) {
			t.Fatalf("Preview() error = %v, want ErrNotOwnModelField", err)
		}
	})
}
