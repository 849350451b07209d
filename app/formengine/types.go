package formengine

// FieldType adalah tipe input sebuah field. Himpunannya tertutup (10 tipe).
type FieldType string

const (
	FieldText           FieldType = "text"
	FieldTextarea       FieldType = "textarea"
	FieldNumber         FieldType = "number"
	FieldEmail          FieldType = "email"
	FieldDate           FieldType = "date"
	FieldSelect         FieldType = "select"
	FieldRadio          FieldType = "radio"
	FieldCheckbox       FieldType = "checkbox"
	FieldModelReference FieldType = "model_reference"
	FieldCalculated     FieldType = "calculated"
)

var validFieldTypes = map[FieldType]bool{
	FieldText:           true,
	FieldTextarea:       true,
	FieldNumber:         true,
	FieldEmail:          true,
	FieldDate:           true,
	FieldSelect:         true,
	FieldRadio:          true,
	FieldCheckbox:       true,
	FieldModelReference: true,
	FieldCalculated:     true,
}

// Valid melaporkan apakah t termasuk salah satu dari 10 tipe field.
func (t FieldType) Valid() bool { return validFieldTypes[t] }

// IsChoice: select, radio, checkbox (punya daftar opsi).
func (t FieldType) IsChoice() bool {
	return t == FieldSelect || t == FieldRadio || t == FieldCheckbox
}

// SectionType menentukan cara sebuah section dirender.
type SectionType string

const (
	SectionNormal SectionType = "normal"
	SectionTable  SectionType = "table"
)

// DataSourceType untuk field pilihan: "" (opsi custom) atau "model".
type DataSourceType string

const (
	DataSourceCustom DataSourceType = ""
	DataSourceModel  DataSourceType = "model"
)

// AutoFillScope menentukan mode auto-fill field model_reference.
// Diisi saat template disimpan (lihat Builder.Normalize), bukan ditebak saat pengisian.
type AutoFillScope string

const (
	// ScopeGlobal mengikuti pilihan referensi global template.
	ScopeGlobal AutoFillScope = "global"
	// ScopeOwnModel memakai picker record sendiri dari model lain.
	ScopeOwnModel AutoFillScope = "own_model"
)

const (
	DefaultValueField   = "id"
	DefaultLabelField   = "name"
	DefaultDisplayField = "name"
)

// Template adalah definisi form dinamis (sections + fields).
type Template struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	Description           string    `json:"description"`
	ReferenceModel        string    `json:"reference_model"`
	ReferenceDisplayField string    `json:"reference_display_field"`
	IsActive              bool      `json:"is_active"`
	Sections              []Section `json:"sections"`
}

// Section adalah kelompok field berurutan di dalam template.
type Section struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Type         SectionType `json:"type"`
	TableColumns []string    `json:"table_columns,omitempty"`
	Fields       []Field     `json:"fields"`
}

// Option adalah pasangan label/value untuk field pilihan.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// GradingRule memetakan rentang nilai numerik ke label kategori.
// Min/Max nil berarti batas terbuka.
type GradingRule struct {
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
	Label string   `json:"label"`
}

// Field adalah satu definisi input bertipe di dalam section.
type Field struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Name        string    `json:"name"`
	Placeholder string    `json:"placeholder,omitempty"`
	Type        FieldType `json:"type"`
	IsRequired  bool      `json:"is_required"`
	Unit        string    `json:"unit,omitempty"`
	IsReadonly  bool      `json:"is_readonly"`

	// select / radio / checkbox
	DataSourceType       DataSourceType `json:"data_source_type"`
	DataSourceModel      string         `json:"data_source_model,omitempty"`
	DataSourceValueField string         `json:"data_source_value_field,omitempty"`
	DataSourceLabelField string         `json:"data_source_label_field,omitempty"`
	Options              []Option       `json:"options,omitempty"`

	// model_reference
	ReferenceField         string        `json:"reference_field,omitempty"`
	LinkedToReferenceField string        `json:"linked_to_reference_field,omitempty"`
	AutoFillScope          AutoFillScope `json:"auto_fill_scope,omitempty"`

	// calculated
	CalculationFormula      string   `json:"calculation_formula,omitempty"`
	CalculationDependencies []string `json:"calculation_dependencies,omitempty"`

	// khusus section tabel
	GroupLabel   string        `json:"group_label,omitempty"`
	SubLabel     string        `json:"sub_label,omitempty"`
	Technique    string        `json:"technique,omitempty"`
	HasGrading   bool          `json:"has_grading"`
	GradingRules []GradingRule `json:"grading_rules,omitempty"`
}

// SourceKey adalah nama field record sumber yang disalin oleh auto-fill.
func (f Field) SourceKey() string {
	if f.ReferenceField != "" {
		return f.ReferenceField
	}
	return f.Name
}

// IsLinked: field model_reference yang record sumbernya diambil dari
// kolom linked_to_reference_field pada record referensi global, bukan dari
// picker sendiri. Hanya berlaku bila data_source_model berbeda dari
// reference_model template.
func (f Field) IsLinked(referenceModel string) bool {
	return f.Type == FieldModelReference &&
		f.LinkedToReferenceField != "" &&
		referenceModel != "" &&
		f.DataSourceModel != "" &&
		f.DataSourceModel != referenceModel
}

// ValueField mengembalikan data_source_value_field atau default "id".
func (f Field) ValueField() string {
	if f.DataSourceValueField != "" {
		return f.DataSourceValueField
	}
	return DefaultValueField
}

// LabelField mengembalikan data_source_label_field atau default "name".
func (f Field) LabelField() string {
	if f.DataSourceLabelField != "" {
		return f.DataSourceLabelField
	}
	return DefaultLabelField
}

// FieldCount menghitung total field di semua section.
func (t Template) FieldCount() int {
	n := 0
	for _, s := range t.Sections {
		n += len(s.Fields)
	}
	return n
}

// FieldByName mencari field berdasarkan name (kunci formula).
func (t Template) FieldByName(name string) (Field, bool) {
	for _, s := range t.Sections {
		for _, f := range s.Fields {
			if f.Name == name {
				return f, true
			}
		}
	}
	return Field{}, false
}

// FieldByID mencari field berdasarkan id.
func (t Template) FieldByID(id string) (Field, bool) {
	for _, s := range t.Sections {
		for _, f := range s.Fields {
			if f.ID == id {
				return f, true
			}
		}
	}
	return Field{}, false
}

// LinkedFields mengembalikan semua field yang terhubung ke referensi global
// lewat linked_to_reference_field, urut section lalu field.
func (t Template) LinkedFields() []Field {
	var out []Field
	for _, s := range t.Sections {
		for _, f := range s.Fields {
			if f.IsLinked(t.ReferenceModel) {
				out = append(out, f)
			}
		}
	}
	return out
}

// locate mengembalikan posisi (section, field) dari sebuah field id.
func (t Template) locate(id string) (int, int, bool) {
	for si, s := range t.Sections {
		for fi, f := range s.Fields {
			if f.ID == id {
				return si, fi, true
			}
		}
	}
	return -1, -1, false
}

// Clone membuat salinan dalam supaya builder tidak berbagi slice dengan pemanggil.
func (t Template) Clone() Template {
	out := t
	out.Sections = make([]Section, len(t.Sections))
	for i, s := range t.Sections {
		cs := s
		cs.TableColumns = append([]string(nil), s.TableColumns...)
		cs.Fields = make([]Field, len(s.Fields))
		for j, f := range s.Fields {
			cs.Fields[j] = f.clone()
		}
		out.Sections[i] = cs
	}
	return out
}

func (f Field) clone() Field {
	out := f
	out.Options = append([]Option(nil), f.Options...)
	out.CalculationDependencies = append([]string(nil), f.CalculationDependencies...)
	out.GradingRules = append([]GradingRule(nil), f.GradingRules...)
	return out
}
