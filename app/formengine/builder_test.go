package formengine

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func strPtr(s string) *string { return &s }

func typePtr(t FieldType) *FieldType { return &t }

func sourcePtr(d DataSourceType) *DataSourceType { return &d }

func TestNewBuilder_EnsuresOneSection(t *testing.T) {
	t.Parallel()

	b := NewBuilder(Template{Name: "Kosong"}, nil)
	tpl := b.Template()
	if len(tpl.Sections) != 1 {
		t.Fatalf("sections=%d, want 1", len(tpl.Sections))
	}
	if tpl.Sections[0].Title != "Bagian 1" || tpl.Sections[0].Type != SectionNormal {
		t.Fatalf("unexpected default section: %+v", tpl.Sections[0])
	}
	if tpl.Sections[0].ID == "" {
		t.Fatalf("section id not assigned")
	}
}

func TestBuilder_AddRemoveSection(t *testing.T) {
	t.Parallel()

	b := NewBuilder(Template{Name: "Form"}, nil)
	idx := b.AddSection()
	if idx != 1 || b.Expanded() != 1 {
		t.Fatalf("idx=%d expanded=%d, want 1/1", idx, b.Expanded())
	}
	if got := b.Template().Sections[1].Title; got != "Bagian 2" {
		t.Fatalf("title=%q", got)
	}

	if err := b.RemoveSection(1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if b.Expanded() != 0 {
		t.Fatalf("expanded=%d after remove, want 0", b.Expanded())
	}
	if err := b.RemoveSection(0); !errors.Is(err, ErrLastSection) {
		t.Fatalf("expected ErrLastSection, got %v", err)
	}
	if err := b.RemoveSection(3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if len(b.Template().Sections) != 1 {
		t.Fatalf("last section must remain")
	}
}

func TestBuilder_AddFieldDefaults(t *testing.T) {
	t.Parallel()

	b := NewBuilder(Template{Name: "Form"}, nil)
	fi, err := b.AddField(0)
	if err != nil {
		t.Fatalf("add field: %v", err)
	}
	f := b.Template().Sections[0].Fields[fi]
	if f.ID == "" {
		t.Fatalf("field id not generated")
	}
	want := Field{ID: f.ID, Type: FieldText}
	if diff := cmp.Diff(want, f); diff != "" {
		t.Fatalf("default field mismatch (-want +got):\n%s", diff)
	}

	second, _ := b.AddField(0)
	if b.Template().Sections[0].Fields[second].ID == f.ID {
		t.Fatalf("field ids must be unique")
	}
	if _, err := b.AddField(5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if err := b.RemoveField(0, 0); err != nil {
		t.Fatalf("remove field: %v", err)
	}
	if n := len(b.Template().Sections[0].Fields); n != 1 {
		t.Fatalf("fields=%d, want 1", n)
	}
}

func TestBuilder_UpdateFieldEdgePolicies(t *testing.T) {
	t.Parallel()

	b := NewBuilder(Template{Name: "Form", ReferenceModel: "athlete"}, nil)
	fi, _ := b.AddField(0)

	err := b.UpdateField(0, fi, FieldPatch{
		Label:   strPtr("Cabor"),
		Name:    strPtr("cabor"),
		Type:    typePtr(FieldSelect),
		Options: []Option{{Label: "A", Value: "a"}},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := b.Template().Sections[0].Fields[fi].Options; len(got) != 1 {
		t.Fatalf("options=%v, want one custom option", got)
	}

	_ = b.UpdateField(0, fi, FieldPatch{DataSourceType: sourcePtr(DataSourceModel), DataSourceModel: strPtr("cabor")})
	f := b.Template().Sections[0].Fields[fi]
	if f.Options != nil {
		t.Fatalf("switching to model must discard options, got %v", f.Options)
	}
	if f.Label != "Cabor" {
		t.Fatalf("partial merge lost label: %q", f.Label)
	}

	ri, _ := b.AddField(0)
	_ = b.UpdateField(0, ri, FieldPatch{
		Type:            typePtr(FieldModelReference),
		DataSourceModel: strPtr("coach"),
		ReferenceField:  strPtr("license"),
	})
	_ = b.UpdateField(0, ri, FieldPatch{DataSourceModel: strPtr("cabor")})
	if got := b.Template().Sections[0].Fields[ri].ReferenceField; got != "" {
		t.Fatalf("changing model must reset reference_field, got %q", got)
	}

	// model yang sama tidak me-reset
	_ = b.UpdateField(0, ri, FieldPatch{ReferenceField: strPtr("name")})
	_ = b.UpdateField(0, ri, FieldPatch{DataSourceModel: strPtr("cabor")})
	if got := b.Template().Sections[0].Fields[ri].ReferenceField; got != "name" {
		t.Fatalf("reference_field=%q, want name", got)
	}
}

func TestBuilder_UpdateSection(t *testing.T) {
	t.Parallel()

	b := NewBuilder(Template{Name: "Form"}, nil)
	table := SectionTable
	if err := b.UpdateSection(0, SectionPatch{Title: strPtr("Tes Teknik"), Type: &table, TableColumns: []string{"Teknik", "Nilai"}}); err != nil {
		t.Fatalf("update section: %v", err)
	}
	s := b.Template().Sections[0]
	if s.Title != "Tes Teknik" || s.Type != SectionTable || len(s.TableColumns) != 2 {
		t.Fatalf("unexpected section: %+v", s)
	}
	if err := b.UpdateSection(2, SectionPatch{}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestBuilder_NormalizeSetsAutoFillScope(t *testing.T) {
	t.Parallel()

	b := NewBuilder(Template{
		Name:           " Evaluasi ",
		ReferenceModel: "athlete",
		Sections: []Section{{Title: "Data", Fields: []Field{
			{ID: "a", Label: "Pelatih", Name: "coach_name", Type: FieldModelReference},
			{ID: "b", Label: "Nama", Name: "athlete_name", Type: FieldModelReference, DataSourceModel: "athlete", ReferenceField: "name"},
			{ID: "c", Label: "Lisensi", Name: "license", Type: FieldModelReference, DataSourceModel: "coach"},
			{ID: "d", Label: "Cabor", Name: "cabor", Type: FieldSelect, DataSourceType: DataSourceModel, DataSourceModel: "cabor", Options: []Option{{Label: "x", Value: "y"}}},
		}}},
	}, nil)
	b.Normalize()
	tpl := b.Template()

	if tpl.Name != "Evaluasi" || tpl.ReferenceDisplayField != DefaultDisplayField {
		t.Fatalf("name=%q display=%q", tpl.Name, tpl.ReferenceDisplayField)
	}
	got := []AutoFillScope{}
	for _, f := range tpl.Sections[0].Fields[:3] {
		got = append(got, f.AutoFillScope)
	}
	if diff := cmp.Diff([]AutoFillScope{ScopeGlobal, ScopeGlobal, ScopeOwnModel}, got); diff != "" {
		t.Fatalf("scope mismatch (-want +got):\n%s", diff)
	}
	sel := tpl.Sections[0].Fields[3]
	if sel.Options != nil || sel.DataSourceValueField != "id" || sel.DataSourceLabelField != "name" {
		t.Fatalf("unexpected select normalisation: %+v", sel)
	}
}

func validTemplate() Template {
	return Template{
		Name:           "Tes Fisik",
		ReferenceModel: "athlete",
		Sections: []Section{{
			Title: "Data",
			Type:  SectionNormal,
			Fields: []Field{
				{ID: "f1", Label: "Pelatih", Name: "coach_name", Type: FieldModelReference, ReferenceField: "coach_name"},
				{ID: "f2", Label: "Berat", Name: "berat", Type: FieldNumber},
				{ID: "f3", Label: "Tinggi", Name: "tinggi", Type: FieldNumber},
				{ID: "f4", Label: "BMI", Name: "bmi", Type: FieldCalculated, CalculationFormula: "(berat / (tinggi/100)^2)", CalculationDependencies: []string{"berat", "tinggi"}},
				{ID: "f5", Label: "Cabor", Name: "cabor", Type: FieldSelect, DataSourceType: DataSourceModel, DataSourceModel: "cabor"},
			},
		}},
	}
}

func attributes(err error) []string {
	ve, ok := AsValidation(err)
	if !ok {
		return nil
	}
	out := []string{}
	for _, fe := range ve.Errors {
		out = append(out, fe.Attribute)
	}
	return out
}

func TestBuilder_ValidateAcceptsValidTemplate(t *testing.T) {
	t.Parallel()

	b := NewBuilder(validTemplate(), newFakeCatalog())
	if err := b.Validate(context.Background()); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestBuilder_ValidateRejectsDuplicateNames(t *testing.T) {
	t.Parallel()

	tpl := validTemplate()
	tpl.Sections = append(tpl.Sections, Section{Title: "Lain", Fields: []Field{
		{ID: "dup", Label: "Berat lagi", Name: "berat", Type: FieldNumber},
	}})
	err := NewBuilder(tpl, newFakeCatalog()).Validate(context.Background())
	ve, ok := AsValidation(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	var hits []FieldError
	for _, fe := range ve.Errors {
		if fe.Attribute == "name" {
			hits = append(hits, fe)
		}
	}
	if len(hits) != 2 {
		t.Fatalf("expected both duplicates flagged, got %+v", hits)
	}
	if hits[1].SectionIndex != 1 || hits[1].FieldIndex != 0 || hits[1].FieldID != "dup" {
		t.Fatalf("unexpected position: %+v", hits[1])
	}
}

func TestBuilder_ValidateRejectsDuplicateIDs(t *testing.T) {
	t.Parallel()

	tpl := validTemplate()
	tpl.Sections[0].ID = "s"
	tpl.Sections = append(tpl.Sections, Section{ID: "s", Title: "Lain", Fields: []Field{
		{ID: "f2", Label: "Catatan", Name: "catatan", Type: FieldTextarea},
	}})
	err := NewBuilder(tpl, newFakeCatalog()).Validate(context.Background())
	ve, ok := AsValidation(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	type pos struct{ Section, Field int }
	var got []pos
	for _, fe := range ve.Errors {
		if fe.Attribute == "id" {
			got = append(got, pos{fe.SectionIndex, fe.FieldIndex})
		}
	}
	want := []pos{{0, -1}, {0, 1}, {1, -1}, {1, 0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("duplicate id errors mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_ValidateLinkedReferenceField(t *testing.T) {
	t.Parallel()

	linked := Field{ID: "f6", Label: "Lisensi", Name: "coach_license", Type: FieldModelReference,
		DataSourceModel: "coach", ReferenceField: "license", LinkedToReferenceField: "coach_id"}

	tpl := validTemplate()
	tpl.Sections[0].Fields = append(tpl.Sections[0].Fields, linked)
	if err := NewBuilder(tpl, newFakeCatalog()).Validate(context.Background()); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	cases := map[string]func(*Template){
		"kolom tidak ada": func(t *Template) { t.Sections[0].Fields[5].LinkedToReferenceField = "pelatih_id" },
		"tanpa reference_model": func(t *Template) {
			t.ReferenceModel = ""
			t.Sections[0].Fields = t.Sections[0].Fields[1:]
		},
		"model sama dengan referensi": func(t *Template) { t.Sections[0].Fields[5].DataSourceModel = "athlete" },
	}
	for name, mutate := range cases {
		tpl := validTemplate()
		tpl.Sections[0].Fields = append(tpl.Sections[0].Fields, linked)
		mutate(&tpl)
		got := attributes(NewBuilder(tpl, newFakeCatalog()).Validate(context.Background()))
		if !contains(got, "linked_to_reference_field") {
			t.Errorf("%s: attributes=%v, want linked_to_reference_field", name, got)
		}
	}
}

func TestBuilder_ValidateErrors(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		mutate func(*Template)
		want   []string
	}{
		"empty template name": {
			mutate: func(t *Template) { t.Name = " " },
			want:   []string{"name"},
		},
		"unknown reference model": {
			mutate: func(t *Template) { t.ReferenceModel = "club" },
			want:   []string{"reference_model"},
		},
		"empty field name": {
			mutate: func(t *Template) { t.Sections[0].Fields[1].Name = "" },
			// berat hilang → bmi juga merujuk field yang tidak ada
			want: []string{"name", "calculation_dependencies"},
		},
		"empty label": {
			mutate: func(t *Template) { t.Sections[0].Fields[2].Label = "" },
			want:   []string{"label"},
		},
		"unknown type": {
			mutate: func(t *Template) { t.Sections[0].Fields[2].Type = "slider" },
			want:   []string{"type"},
		},
		"unknown select model": {
			mutate: func(t *Template) { t.Sections[0].Fields[4].DataSourceModel = "club" },
			want:   []string{"data_source_model"},
		},
		"model select without model": {
			mutate: func(t *Template) { t.Sections[0].Fields[4].DataSourceModel = "" },
			want:   []string{"data_source_model"},
		},
		"unknown reference field": {
			mutate: func(t *Template) { t.Sections[0].Fields[0].ReferenceField = "shoe_size" },
			want:   []string{"reference_field"},
		},
		"empty formula": {
			mutate: func(t *Template) { t.Sections[0].Fields[3].CalculationFormula = "" },
			want:   []string{"calculation_formula"},
		},
		"unparseable formula": {
			mutate: func(t *Template) { t.Sections[0].Fields[3].CalculationFormula = "berat / (" },
			want:   []string{"calculation_formula"},
		},
		"unlisted identifier": {
			mutate: func(t *Template) { t.Sections[0].Fields[3].CalculationFormula = "berat + umur" },
			want:   []string{"calculation_dependencies"},
		},
		"unknown dependency": {
			mutate: func(t *Template) { t.Sections[0].Fields[3].CalculationDependencies = []string{"berat", "tinggi", "umur"} },
			want:   []string{"calculation_dependencies"},
		},
	}

	for name, tc := range cases {
		tpl := validTemplate()
		tc.mutate(&tpl)
		err := NewBuilder(tpl, newFakeCatalog()).Validate(context.Background())
		if diff := cmp.Diff(tc.want, attributes(err)); diff != "" {
			t.Fatalf("%s: attributes mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestBuilder_ValidateRejectsCycles(t *testing.T) {
	t.Parallel()

	tpl := Template{Name: "Siklus", Sections: []Section{{Title: "S", Fields: []Field{
		{ID: "x", Label: "X", Name: "x", Type: FieldCalculated, CalculationFormula: "y + 1", CalculationDependencies: []string{"y"}},
		{ID: "y", Label: "Y", Name: "y", Type: FieldCalculated, CalculationFormula: "x * 2", CalculationDependencies: []string{"x"}},
	}}}}
	err := NewBuilder(tpl, newFakeCatalog()).Validate(context.Background())
	attrs := attributes(err)
	if len(attrs) == 0 {
		t.Fatalf("expected cycle error")
	}
	for _, a := range attrs {
		if a != "calculation_dependencies" {
			t.Fatalf("unexpected attribute %q", a)
		}
	}
}

func TestBuilder_ModelFieldCacheFetchesOncePerModel(t *testing.T) {
	t.Parallel()

	catalog := newFakeCatalog()
	tpl := validTemplate()
	tpl.Sections[0].Fields = append(tpl.Sections[0].Fields,
		Field{ID: "f6", Label: "Nama", Name: "athlete_name", Type: FieldModelReference, ReferenceField: "name"},
	)
	b := NewBuilder(tpl, catalog)

	for i := 0; i < 3; i++ {
		if err := b.Validate(context.Background()); err != nil {
			t.Fatalf("validate: %v", err)
		}
	}
	if catalog.fieldCalls["athlete"] != 1 {
		t.Fatalf("athlete fields fetched %d times, want 1", catalog.fieldCalls["athlete"])
	}
	if b.Cache().Fetches() != 1 {
		t.Fatalf("cache fetches=%d, want 1", b.Cache().Fetches())
	}

	b.Close()
	if _, err := b.Cache().Fields(context.Background(), "athlete"); err != nil {
		t.Fatalf("fields: %v", err)
	}
	if catalog.fieldCalls["athlete"] != 2 {
		t.Fatalf("after Close expected refetch, calls=%d", catalog.fieldCalls["athlete"])
	}
}
