package formengine

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SectionPatch adalah merge parsial atribut section. Nil berarti tidak diubah.
type SectionPatch struct {
	Title        *string
	Type         *SectionType
	TableColumns []string
}

// FieldPatch adalah merge parsial atribut field. Nil berarti tidak diubah.
type FieldPatch struct {
	Label                   *string
	Name                    *string
	Placeholder             *string
	Type                    *FieldType
	IsRequired              *bool
	Unit                    *string
	IsReadonly              *bool
	DataSourceType          *DataSourceType
	DataSourceModel         *string
	DataSourceValueField    *string
	DataSourceLabelField    *string
	Options                 []Option
	ReferenceField          *string
	LinkedToReferenceField  *string
	CalculationFormula      *string
	CalculationDependencies []string
	GroupLabel              *string
	SubLabel                *string
	Technique               *string
	HasGrading              *bool
	GradingRules            []GradingRule
}

// Builder menyusun graf Template → Section → Field sebelum disimpan.
// Satu Builder = satu sesi edit; Close mengosongkan cache field model.
type Builder struct {
	tpl      Template
	expanded int
	cache    *ModelFieldCache
}

// NewBuilder membuat builder dari template awal (boleh kosong). Template
// tanpa section langsung diberi satu section default. Field tanpa id diberi id.
func NewBuilder(tpl Template, catalog ModelCatalog) *Builder {
	b := &Builder{tpl: tpl.Clone(), expanded: 0}
	if catalog != nil {
		b.cache = NewModelFieldCache(catalog)
	}
	if len(b.tpl.Sections) == 0 {
		b.AddSection()
	}
	b.assignIDs()
	return b
}

func (b *Builder) assignIDs() {
	for si := range b.tpl.Sections {
		s := &b.tpl.Sections[si]
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		if s.Type == "" {
			s.Type = SectionNormal
		}
		for fi := range s.Fields {
			if s.Fields[fi].ID == "" {
				s.Fields[fi].ID = uuid.NewString()
			}
		}
	}
}

// Template mengembalikan salinan template saat ini.
func (b *Builder) Template() Template { return b.tpl.Clone() }

// Expanded adalah indeks section yang sedang terbuka di editor.
func (b *Builder) Expanded() int { return b.expanded }

// Cache mengembalikan cache field model milik sesi ini (nil tanpa catalog).
func (b *Builder) Cache() *ModelFieldCache { return b.cache }

// Close mengakhiri sesi edit dan membuang cache.
func (b *Builder) Close() {
	if b.cache != nil {
		b.cache.Invalidate()
	}
}

// AddSection menambah section normal berjudul default lalu membukanya.
func (b *Builder) AddSection() int {
	idx := len(b.tpl.Sections)
	b.tpl.Sections = append(b.tpl.Sections, Section{
		ID:     uuid.NewString(),
		Title:  fmt.Sprintf("Bagian %d", idx+1),
		Type:   SectionNormal,
		Fields: []Field{},
	})
	b.expanded = idx
	return idx
}

// RemoveSection menghapus section; section terakhir tidak bisa dihapus.
func (b *Builder) RemoveSection(index int) error {
	if index < 0 || index >= len(b.tpl.Sections) {
		return ErrIndexOutOfRange
	}
	if len(b.tpl.Sections) == 1 {
		return ErrLastSection
	}
	b.tpl.Sections = append(b.tpl.Sections[:index], b.tpl.Sections[index+1:]...)
	if b.expanded >= len(b.tpl.Sections) {
		b.expanded = len(b.tpl.Sections) - 1
	}
	return nil
}

// AddField menambah field bertipe text, tidak wajib, tanpa grading.
func (b *Builder) AddField(sectionIndex int) (int, error) {
	if sectionIndex < 0 || sectionIndex >= len(b.tpl.Sections) {
		return -1, ErrIndexOutOfRange
	}
	s := &b.tpl.Sections[sectionIndex]
	s.Fields = append(s.Fields, Field{
		ID:         uuid.NewString(),
		Type:       FieldText,
		IsRequired: false,
		HasGrading: false,
	})
	return len(s.Fields) - 1, nil
}

// RemoveField menghapus satu field dari section.
func (b *Builder) RemoveField(sectionIndex, fieldIndex int) error {
	if _, err := b.fieldAt(sectionIndex, fieldIndex); err != nil {
		return err
	}
	s := &b.tpl.Sections[sectionIndex]
	s.Fields = append(s.Fields[:fieldIndex], s.Fields[fieldIndex+1:]...)
	return nil
}

// UpdateSection menerapkan patch parsial pada section.
func (b *Builder) UpdateSection(index int, p SectionPatch) error {
	if index < 0 || index >= len(b.tpl.Sections) {
		return ErrIndexOutOfRange
	}
	s := &b.tpl.Sections[index]
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Type != nil {
		s.Type = *p.Type
	}
	if p.TableColumns != nil {
		s.TableColumns = append([]string{}, p.TableColumns...)
	}
	return nil
}

// UpdateField menerapkan patch parsial pada field. Keunikan name tidak
// dicek di sini, hanya saat Validate.
//
// Beralih ke data_source_type "model" membuang opsi custom; mengganti
// data_source_model field model_reference me-reset reference_field.
func (b *Builder) UpdateField(sectionIndex, fieldIndex int, p FieldPatch) error {
	f, err := b.fieldAt(sectionIndex, fieldIndex)
	if err != nil {
		return err
	}
	setStr(&f.Label, p.Label)
	setStr(&f.Name, p.Name)
	setStr(&f.Placeholder, p.Placeholder)
	if p.Type != nil {
		f.Type = *p.Type
	}
	setBool(&f.IsRequired, p.IsRequired)
	setStr(&f.Unit, p.Unit)
	setBool(&f.IsReadonly, p.IsReadonly)
	if p.Options != nil {
		f.Options = append([]Option{}, p.Options...)
	}
	if p.DataSourceType != nil {
		f.DataSourceType = *p.DataSourceType
	}
	if f.DataSourceType == DataSourceModel {
		f.Options = nil
	}
	if p.DataSourceModel != nil && *p.DataSourceModel != f.DataSourceModel {
		f.DataSourceModel = *p.DataSourceModel
		if f.Type == FieldModelReference {
			f.ReferenceField = ""
		}
	}
	setStr(&f.DataSourceValueField, p.DataSourceValueField)
	setStr(&f.DataSourceLabelField, p.DataSourceLabelField)
	setStr(&f.ReferenceField, p.ReferenceField)
	setStr(&f.LinkedToReferenceField, p.LinkedToReferenceField)
	setStr(&f.CalculationFormula, p.CalculationFormula)
	if p.CalculationDependencies != nil {
		f.CalculationDependencies = append([]string{}, p.CalculationDependencies...)
	}
	setStr(&f.GroupLabel, p.GroupLabel)
	setStr(&f.SubLabel, p.SubLabel)
	setStr(&f.Technique, p.Technique)
	setBool(&f.HasGrading, p.HasGrading)
	if p.GradingRules != nil {
		f.GradingRules = append([]GradingRule{}, p.GradingRules...)
	}
	return nil
}

func (b *Builder) fieldAt(si, fi int) (*Field, error) {
	if si < 0 || si >= len(b.tpl.Sections) {
		return nil, ErrIndexOutOfRange
	}
	s := &b.tpl.Sections[si]
	if fi < 0 || fi >= len(s.Fields) {
		return nil, ErrIndexOutOfRange
	}
	return &s.Fields[fi], nil
}

func setStr(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// Normalize merapikan template sebelum disimpan: trim, default
// reference_display_field, default value/label field, membuang opsi pada
// sumber model, dan menetapkan AutoFillScope setiap field model_reference.
func (b *Builder) Normalize() {
	t := &b.tpl
	t.Name = strings.TrimSpace(t.Name)
	t.ReferenceModel = strings.TrimSpace(t.ReferenceModel)
	if t.ReferenceDisplayField == "" {
		t.ReferenceDisplayField = DefaultDisplayField
	}
	for si := range t.Sections {
		s := &t.Sections[si]
		if s.Type == "" {
			s.Type = SectionNormal
		}
		if s.Type != SectionTable {
			s.TableColumns = nil
		}
		for fi := range s.Fields {
			f := &s.Fields[fi]
			f.Name = strings.TrimSpace(f.Name)
			f.Label = strings.TrimSpace(f.Label)
			f.DataSourceModel = strings.TrimSpace(f.DataSourceModel)
			if f.Type.IsChoice() && f.DataSourceType == DataSourceModel {
				f.Options = nil
				if f.DataSourceValueField == "" {
					f.DataSourceValueField = DefaultValueField
				}
				if f.DataSourceLabelField == "" {
					f.DataSourceLabelField = DefaultLabelField
				}
			}
			if f.Type == FieldModelReference {
				f.AutoFillScope = ScopeFor(*f, t.ReferenceModel)
			} else {
				f.AutoFillScope = ""
			}
			if !f.HasGrading {
				f.GradingRules = nil
			}
		}
	}
}

// ScopeFor menurunkan mode auto-fill sebuah field model_reference:
// tanpa data_source_model, sama dengan reference_model template, atau
// terhubung lewat linked_to_reference_field → global.
func ScopeFor(f Field, referenceModel string) AutoFillScope {
	if f.DataSourceModel == "" || f.DataSourceModel == referenceModel || f.IsLinked(referenceModel) {
		return ScopeGlobal
	}
	return ScopeOwnModel
}

// ScopeOf memakai auto_fill_scope tersimpan; template lama tanpa atribut itu
// diturunkan dengan ScopeFor.
func (t Template) ScopeOf(f Field) AutoFillScope {
	if f.AutoFillScope != "" {
		return f.AutoFillScope
	}
	return ScopeFor(f, t.ReferenceModel)
}

// Validate memeriksa template sebelum disimpan dan mengembalikan
// *ValidationError berisi semua pelanggaran, atau nil.
func (b *Builder) Validate(ctx context.Context) error {
	ve := &ValidationError{}
	t := b.tpl

	if strings.TrimSpace(t.Name) == "" {
		ve.Add(-1, -1, "", "name", "nama template wajib diisi")
	}
	if t.ReferenceModel != "" {
		if ok, err := b.hasModel(ctx, t.ReferenceModel); err != nil {
			return err
		} else if !ok {
			ve.Add(-1, -1, "", "reference_model", fmt.Sprintf("model %q tidak ditemukan", t.ReferenceModel))
		}
	}
	if len(t.Sections) == 0 {
		ve.Add(-1, -1, "", "sections", "minimal harus ada satu section")
	}

	names := map[string]int{}
	fieldIDs := map[string]int{}
	sectionIDs := map[string]int{}
	for _, s := range t.Sections {
		sectionIDs[s.ID]++
		for _, f := range s.Fields {
			fieldIDs[f.ID]++
			if f.Name != "" {
				names[f.Name]++
			}
		}
	}

	for si, s := range t.Sections {
		if strings.TrimSpace(s.Title) == "" {
			ve.Add(si, -1, "", "title", "judul section wajib diisi")
		}
		if sectionIDs[s.ID] > 1 {
			ve.Add(si, -1, "", "id", fmt.Sprintf("id section %q dipakai lebih dari satu section", s.ID))
		}
		if s.Type != SectionNormal && s.Type != SectionTable {
			ve.Add(si, -1, "", "type", fmt.Sprintf("tipe section %q tidak dikenal", s.Type))
		}
		for fi, f := range s.Fields {
			if strings.TrimSpace(f.Label) == "" {
				ve.Add(si, fi, f.ID, "label", "label wajib diisi")
			}
			if !f.Type.Valid() {
				ve.Add(si, fi, f.ID, "type", fmt.Sprintf("tipe field %q tidak dikenal", f.Type))
			}
			if fieldIDs[f.ID] > 1 {
				ve.Add(si, fi, f.ID, "id", fmt.Sprintf("id field %q dipakai lebih dari satu field", f.ID))
			}
			switch {
			case strings.TrimSpace(f.Name) == "":
				ve.Add(si, fi, f.ID, "name", "name wajib diisi")
			case names[f.Name] > 1:
				ve.Add(si, fi, f.ID, "name", fmt.Sprintf("name %q sudah dipakai field lain", f.Name))
			}
			if err := b.validateSource(ctx, si, fi, f, ve); err != nil {
				return err
			}
			if f.Type == FieldCalculated {
				b.validateFormula(si, fi, f, ve)
			}
			if f.HasGrading {
				for _, r := range f.GradingRules {
					if strings.TrimSpace(r.Label) == "" {
						ve.Add(si, fi, f.ID, "grading_rules", "label kategori wajib diisi")
						break
					}
				}
			}
		}
	}
	b.validateCycles(ve)
	return ve.OrNil()
}

func (b *Builder) validateSource(ctx context.Context, si, fi int, f Field, ve *ValidationError) error {
	switch {
	case f.Type.IsChoice() && f.DataSourceType == DataSourceModel:
		if f.DataSourceModel == "" {
			ve.Add(si, fi, f.ID, "data_source_model", "model sumber data wajib dipilih")
			return nil
		}
		ok, err := b.hasModel(ctx, f.DataSourceModel)
		if err != nil {
			return err
		}
		if !ok {
			ve.Add(si, fi, f.ID, "data_source_model", fmt.Sprintf("model %q tidak ditemukan", f.DataSourceModel))
		}
	case f.Type.IsChoice() && f.DataSourceType != DataSourceCustom:
		ve.Add(si, fi, f.ID, "data_source_type", fmt.Sprintf("sumber data %q tidak dikenal", f.DataSourceType))
	case f.Type == FieldModelReference:
		model := f.DataSourceModel
		if model == "" {
			model = b.tpl.ReferenceModel
		}
		if model == "" {
			ve.Add(si, fi, f.ID, "data_source_model", "template tidak punya reference_model dan field tidak memilih model")
			return nil
		}
		ok, err := b.hasModel(ctx, model)
		if err != nil {
			return err
		}
		if !ok {
			// reference_model yang hilang sudah dilaporkan di tingkat template
			if f.DataSourceModel != "" {
				ve.Add(si, fi, f.ID, "data_source_model", fmt.Sprintf("model %q tidak ditemukan", f.DataSourceModel))
			}
			return nil
		}
		if f.ReferenceField != "" && b.cache != nil {
			fields, err := b.cache.Fields(ctx, model)
			if err != nil {
				return err
			}
			if !contains(fields, f.ReferenceField) {
				ve.Add(si, fi, f.ID, "reference_field", fmt.Sprintf("field %q tidak ada di model %q", f.ReferenceField, model))
			}
		}
		return b.validateLink(ctx, si, fi, f, ve)
	}
	return nil
}

// validateLink: linked_to_reference_field harus kolom reference_model template.
func (b *Builder) validateLink(ctx context.Context, si, fi int, f Field, ve *ValidationError) error {
	if f.LinkedToReferenceField == "" {
		return nil
	}
	ref := b.tpl.ReferenceModel
	switch {
	case ref == "":
		ve.Add(si, fi, f.ID, "linked_to_reference_field", "template tidak punya reference_model untuk dihubungkan")
		return nil
	case f.DataSourceModel == "" || f.DataSourceModel == ref:
		ve.Add(si, fi, f.ID, "linked_to_reference_field", "field linked harus memilih data_source_model selain reference_model")
		return nil
	case b.cache == nil:
		return nil
	}
	if ok, err := b.hasModel(ctx, ref); err != nil || !ok {
		return err
	}
	fields, err := b.cache.Fields(ctx, ref)
	if err != nil {
		return err
	}
	if !contains(fields, f.LinkedToReferenceField) {
		ve.Add(si, fi, f.ID, "linked_to_reference_field", fmt.Sprintf("field %q tidak ada di model %q", f.LinkedToReferenceField, ref))
	}
	return nil
}

func (b *Builder) validateFormula(si, fi int, f Field, ve *ValidationError) {
	if strings.TrimSpace(f.CalculationFormula) == "" {
		ve.Add(si, fi, f.ID, "calculation_formula", "formula wajib diisi")
		return
	}
	if err := CheckFormula(f.CalculationFormula); err != nil {
		ve.Add(si, fi, f.ID, "calculation_formula", err.Error())
		return
	}
	idents, _ := FormulaIdentifiers(f.CalculationFormula)
	for _, id := range idents {
		if !contains(f.CalculationDependencies, id) {
			ve.Add(si, fi, f.ID, "calculation_dependencies", fmt.Sprintf("%q dipakai formula tetapi tidak terdaftar", id))
		}
	}
	for _, dep := range f.CalculationDependencies {
		if dep == f.Name {
			ve.Add(si, fi, f.ID, "calculation_dependencies", "formula tidak boleh merujuk dirinya sendiri")
			continue
		}
		if _, ok := b.tpl.FieldByName(dep); !ok {
			ve.Add(si, fi, f.ID, "calculation_dependencies", fmt.Sprintf("field %q tidak ditemukan", dep))
		}
	}
}

// validateCycles menolak rantai dependensi antar field kalkulasi yang melingkar.
func (b *Builder) validateCycles(ve *ValidationError) {
	const (
		white = iota
		grey
		black
	)
	color := map[string]int{}
	var walk func(name string) bool
	walk = func(name string) bool {
		f, ok := b.tpl.FieldByName(name)
		if !ok || f.Type != FieldCalculated {
			return false
		}
		switch color[name] {
		case grey:
			return true
		case black:
			return false
		}
		color[name] = grey
		for _, dep := range f.CalculationDependencies {
			if dep != name && walk(dep) {
				return true
			}
		}
		color[name] = black
		return false
	}
	for si, s := range b.tpl.Sections {
		for fi, f := range s.Fields {
			if f.Type != FieldCalculated || f.Name == "" || color[f.Name] == black {
				continue
			}
			if walk(f.Name) {
				ve.Add(si, fi, f.ID, "calculation_dependencies", "dependensi formula melingkar")
			}
		}
	}
}

func (b *Builder) hasModel(ctx context.Context, key string) (bool, error) {
	if b.cache == nil {
		return true, nil
	}
	return b.cache.HasModel(ctx, key)
}

func contains(list []string, s string) bool {
	for _, it := range list {
		if it == s {
			return true
		}
	}
	return false
}
