package formengine

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func fillTemplate() Template {
	b := NewBuilder(Template{
		Name:           "Evaluasi Atlet",
		ReferenceModel: "athlete",
		Sections: []Section{
			{ID: "s1", Title: "Identitas", Fields: []Field{
				{ID: "coach", Label: "Pelatih", Name: "coach_name", Type: FieldModelReference, ReferenceField: "coach_name", IsReadonly: true},
				{ID: "nama", Label: "Nama Atlet", Name: "athlete_name", Type: FieldModelReference, DataSourceModel: "athlete", ReferenceField: "name"},
				{ID: "lisensi", Label: "Lisensi", Name: "license", Type: FieldModelReference, DataSourceModel: "coach"},
				{ID: "catatan", Label: "Catatan", Name: "catatan", Type: FieldTextarea},
			}},
			{ID: "s2", Title: "Fisik", Fields: []Field{
				{ID: "berat", Label: "Berat", Name: "berat", Type: FieldNumber, IsRequired: true},
				{ID: "tinggi", Label: "Tinggi", Name: "tinggi", Type: FieldNumber},
				{ID: "bmi", Label: "BMI", Name: "bmi", Type: FieldCalculated, CalculationFormula: "(berat / (tinggi/100)^2)", CalculationDependencies: []string{"berat", "tinggi"}},
				{ID: "hari", Label: "Hari Latihan", Name: "hari", Type: FieldCheckbox, Options: []Option{{Label: "Senin", Value: "1"}, {Label: "Rabu", Value: "3"}}},
			}},
		},
	}, nil)
	b.Normalize()
	return b.Template()
}

var athlete5 = Record{"id": 5, "name": "Andi", "coach_name": "Budi", "berat": 70, "tinggi": 175}

func TestFillSession_GlobalReferenceAutoFill(t *testing.T) {
	t.Parallel()

	s := NewFillSession(fillTemplate())
	if err := s.SelectReference(athlete5); err != nil {
		t.Fatalf("select: %v", err)
	}
	if got := s.Value("coach").String(); got != "Budi" {
		t.Fatalf("coach_name=%q, want Budi", got)
	}
	if got := s.Value("nama").String(); got != "Andi" {
		t.Fatalf("athlete_name=%q, want Andi", got)
	}
	// berat/tinggi kosong → diambil dari record referensi
	if got := s.Value("bmi").String(); got != "22.86" {
		t.Fatalf("bmi=%q, want 22.86", got)
	}

	if err := s.SelectReference(nil); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !s.Value("coach").IsEmpty() || !s.Value("nama").IsEmpty() {
		t.Fatalf("global fields must be cleared: coach=%q nama=%q", s.Value("coach"), s.Value("nama"))
	}
	if got := s.Value("bmi").String(); got != ErrorMarker {
		t.Fatalf("bmi=%q after clear, want %q", got, ErrorMarker)
	}
}

func TestFillSession_GlobalSelectionNeverTouchesOwnModelFields(t *testing.T) {
	t.Parallel()

	s := NewFillSession(fillTemplate())
	if err := s.SelectFieldRecord("lisensi", Record{"id": 1, "name": "Budi", "license": "A"}); err != nil {
		t.Fatalf("select field record: %v", err)
	}
	before := s.Value("lisensi")
	if before.String() != "A" {
		t.Fatalf("license=%q, want A", before.String())
	}

	for _, rec := range []Record{athlete5, {"id": 6, "license": "Z", "coach_name": "Citra"}, nil} {
		if err := s.SelectReference(rec); err != nil {
			t.Fatalf("select: %v", err)
		}
		if got := s.Value("lisensi"); !got.Equal(before) {
			t.Fatalf("own_model field changed to %q after global selection %v", got.String(), rec)
		}
	}

	if err := s.SelectFieldRecord("coach", athlete5); !errors.Is(err, ErrNotOwnModelField) {
		t.Fatalf("expected ErrNotOwnModelField, got %v", err)
	}
}

func TestFillSession_SetValueGuards(t *testing.T) {
	t.Parallel()

	s := NewFillSession(fillTemplate())
	if err := s.SetValue("coach", Text("x")); !errors.Is(err, ErrReadonlyField) {
		t.Fatalf("readonly: got %v", err)
	}
	if err := s.SetValue("bmi", Text("1")); !errors.Is(err, ErrReadonlyField) {
		t.Fatalf("calculated: got %v", err)
	}
	if err := s.SetValue("nope", Text("1")); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("unknown: got %v", err)
	}

	_ = s.SetValue("berat", Text("80"))
	_ = s.SetValue("tinggi", Text("200"))
	if got := s.Value("bmi").String(); got != "20.00" {
		t.Fatalf("bmi=%q, want 20.00", got)
	}
}

func TestFillSession_BuildSubmissionCoversEveryField(t *testing.T) {
	t.Parallel()

	tpl := fillTemplate()
	s := NewFillSession(tpl)
	_ = s.SetValue("berat", Text("70"))
	_ = s.SetValue("hari", MultiText("1", "3"))

	got := s.BuildSubmission()
	if len(got) != tpl.FieldCount() {
		t.Fatalf("values=%d, want %d", len(got), tpl.FieldCount())
	}

	want := []SubmittedValue{
		{FieldID: "coach", Value: Text("")},
		{FieldID: "nama", Value: Text("")},
		{FieldID: "lisensi", Value: Text("")},
		{FieldID: "catatan", Value: Text("")},
		{FieldID: "berat", Value: Text("70")},
		{FieldID: "tinggi", Value: Text("")},
		{FieldID: "bmi", Value: Text("0.00")},
		{FieldID: "hari", Value: MultiText("1", "3")},
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b Value) bool { return a.Equal(b) })); diff != "" {
		t.Fatalf("submission mismatch (-want +got):\n%s", diff)
	}
}

func TestFillSession_BuildSubmissionStoresGradingCategory(t *testing.T) {
	t.Parallel()

	limit := 20.0
	tpl := Template{Sections: []Section{{Type: SectionTable, Fields: []Field{
		{ID: "lari", Name: "lari", Type: FieldNumber, HasGrading: true, GradingRules: []GradingRule{
			{Max: &limit, Label: "Kurang"},
			{Min: &limit, Label: "Baik"},
		}},
	}}}}
	s := NewFillSession(tpl)
	_ = s.SetValue("lari", Text("25"))

	got := s.BuildSubmission()
	if got[0].Category != "Baik" {
		t.Fatalf("category=%q, want Baik", got[0].Category)
	}
}

func TestFillSession_ValidateRequiredPointsToSection(t *testing.T) {
	t.Parallel()

	s := NewFillSession(fillTemplate())
	err := s.Validate()
	ve, ok := AsValidation(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Errors) != 1 || ve.Errors[0].FieldID != "berat" {
		t.Fatalf("unexpected errors: %+v", ve.Errors)
	}
	if ve.FirstSection() != 1 {
		t.Fatalf("first section=%d, want 1", ve.FirstSection())
	}

	_ = s.SetValue("berat", Text("tujuh puluh"))
	if err := s.Validate(); err == nil {
		t.Fatalf("non-numeric value must be rejected")
	}
	_ = s.SetValue("berat", Text("70"))
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFillSession_ValidateFormats(t *testing.T) {
	t.Parallel()

	tpl := Template{Sections: []Section{{Fields: []Field{
		{ID: "email", Label: "Email", Name: "email", Type: FieldEmail},
		{ID: "lahir", Label: "Tanggal Lahir", Name: "lahir", Type: FieldDate},
	}}}}
	s := NewFillSession(tpl)
	_ = s.Load(map[string]Value{"email": Text("bukan-email"), "lahir": Text("01/02/2001")})
	ve, ok := AsValidation(s.Validate())
	if !ok || len(ve.Errors) != 2 {
		t.Fatalf("expected two format errors, got %v", ve)
	}

	_ = s.Load(map[string]Value{"email": Text("atlet@federasi.id"), "lahir": Text("2001-02-01")})
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFillSession_SubmitLifecycle(t *testing.T) {
	t.Parallel()

	s := NewFillSession(fillTemplate())
	_ = s.SetValue("berat", Text("70"))

	if err := s.BeginSubmit(); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := s.BeginSubmit(); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("second submit: got %v", err)
	}
	if err := s.SetValue("catatan", Text("x")); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("edit during submit: got %v", err)
	}

	s.FinishSubmit(errors.New("server error"))
	if s.State() != StateFilling {
		t.Fatalf("state=%v after failure, want filling", s.State())
	}
	if got := s.Value("berat").String(); got != "70" {
		t.Fatalf("values must survive failed submit, berat=%q", got)
	}

	_ = s.BeginSubmit()
	s.FinishSubmit(nil)
	if s.State() != StateSubmitted {
		t.Fatalf("state=%v, want submitted", s.State())
	}
	if !s.Value("berat").IsEmpty() {
		t.Fatalf("working values must be discarded after submit")
	}
	if err := s.BeginSubmit(); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("submit after done: got %v", err)
	}
}

func TestFillSession_ClosedSessionRejectsChanges(t *testing.T) {
	t.Parallel()

	s := NewFillSession(fillTemplate())
	_ = s.SelectReference(athlete5)
	s.Close()

	if s.State() != StateClosed {
		t.Fatalf("state=%v, want closed", s.State())
	}
	if err := s.SelectReference(athlete5); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("select after close: got %v", err)
	}
	if err := s.Load(map[string]Value{"catatan": Text("x")}); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("load after close: got %v", err)
	}
	if !s.Value("nama").IsEmpty() {
		t.Fatalf("working values must be discarded on close")
	}
}

func TestFillSession_LoadAfterAutoFillKeepsUserEdits(t *testing.T) {
	t.Parallel()

	s := NewFillSession(fillTemplate())
	_ = s.SelectReference(athlete5)

	// nama bisa diedit, coach readonly: hanya nama yang mengikuti isian klien
	err := s.Load(map[string]Value{"nama": Text("Andi Saputra"), "coach": Text("Sari"), "bmi": Text("99")})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := s.Value("nama").String(); got != "Andi Saputra" {
		t.Fatalf("athlete_name=%q, want user edit", got)
	}
	if got := s.Value("coach").String(); got != "Budi" {
		t.Fatalf("coach_name=%q, readonly must keep auto-fill", got)
	}
	if got := s.Value("bmi").String(); got != "22.86" {
		t.Fatalf("bmi=%q, want 22.86", got)
	}
}

func linkedTemplate() Template {
	b := NewBuilder(Template{
		Name:           "Evaluasi Pelatih",
		ReferenceModel: "athlete",
		Sections: []Section{{ID: "s1", Title: "Pelatih", Fields: []Field{
			{ID: "nama", Label: "Nama", Name: "athlete_name", Type: FieldModelReference, ReferenceField: "name"},
			{ID: "lisensi", Label: "Lisensi Pelatih", Name: "coach_license", Type: FieldModelReference,
				DataSourceModel: "coach", ReferenceField: "license", LinkedToReferenceField: "coach_id", IsReadonly: true},
		}}},
	}, nil)
	b.Normalize()
	return b.Template()
}

func TestFillSession_LinkedFieldFollowsGlobalReference(t *testing.T) {
	t.Parallel()

	tpl := linkedTemplate()
	if got := tpl.Sections[0].Fields[1].AutoFillScope; got != ScopeGlobal {
		t.Fatalf("linked scope=%q, want global", got)
	}
	if got := tpl.LinkedFields(); len(got) != 1 || got[0].ID != "lisensi" {
		t.Fatalf("linked fields=%+v", got)
	}

	s := NewFillSession(tpl)
	if err := s.SelectLinkedRecord("lisensi", Record{"id": 1, "license": "A"}); !errors.Is(err, ErrNoReference) {
		t.Fatalf("linked before reference: got %v", err)
	}
	if err := s.SelectFieldRecord("lisensi", Record{"id": 1, "license": "A"}); !errors.Is(err, ErrNotOwnModelField) {
		t.Fatalf("linked field has no own picker: got %v", err)
	}
	if err := s.SelectLinkedRecord("nama", Record{"id": 1}); !errors.Is(err, ErrNotLinkedField) {
		t.Fatalf("non-linked field: got %v", err)
	}

	_ = s.SelectReference(Record{"id": 5, "name": "Andi", "coach_id": 1, "license": "salah"})
	if !s.Value("lisensi").IsEmpty() {
		t.Fatalf("linked field must not copy from the reference record, got %q", s.Value("lisensi"))
	}
	if err := s.SelectLinkedRecord("lisensi", Record{"id": 1, "license": "A"}); err != nil {
		t.Fatalf("select linked: %v", err)
	}
	if got := s.Value("lisensi").String(); got != "A" {
		t.Fatalf("license=%q, want A", got)
	}

	_ = s.SelectReference(Record{"id": 6, "name": "Rina", "coach_id": 2})
	if !s.Value("lisensi").IsEmpty() {
		t.Fatalf("changing reference must clear linked value, got %q", s.Value("lisensi"))
	}
	_ = s.SelectReference(nil)
	if !s.Value("nama").IsEmpty() || !s.Value("lisensi").IsEmpty() {
		t.Fatalf("deselect must clear global fields")
	}
}

func TestFillSession_NumberRejectsNonDecimal(t *testing.T) {
	t.Parallel()

	tpl := Template{Sections: []Section{{Fields: []Field{
		{ID: "berat", Label: "Berat", Name: "berat", Type: FieldNumber},
	}}}}
	for _, raw := range []string{"NaN", "Inf", "-inf", "+Infinity", "0x1p3", "1_000"} {
		s := NewFillSession(tpl)
		_ = s.SetValue("berat", Text(raw))
		if err := s.Validate(); err == nil {
			t.Errorf("%q accepted as number", raw)
		}
	}
	for _, raw := range []string{"70", "-2.5", "1e3", " 42 "} {
		s := NewFillSession(tpl)
		_ = s.SetValue("berat", Text(raw))
		if err := s.Validate(); err != nil {
			t.Errorf("%q rejected: %v", raw, err)
		}
	}
}
