package formengine

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// SessionState adalah tahap sebuah sesi pengisian.
type SessionState int

const (
	StateFilling SessionState = iota
	StateSubmitting
	StateSubmitted
	StateClosed
)

func (s SessionState) String() string {
	switch s {
	case StateFilling:
		return "filling"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	default:
		return "closed"
	}
}

// SubmittedValue adalah satu baris nilai yang akan dipersist.
type SubmittedValue struct {
	FieldID  string `json:"field_id"`
	Value    Value  `json:"value"`
	Category string `json:"category,omitempty"`
}

var formatValidator = validator.New()

// FillSession menyimpan state satu pengisian form: nilai kerja, record
// referensi global, record per-field (own_model) dan record hasil
// linked_to_reference_field. Template hanya dibaca.
//
// Setiap perubahan ditulis dulu lalu field kalkulasi dihitung ulang dalam
// langkah yang sama, di bawah satu mutex.
type FillSession struct {
	mu sync.Mutex

	tpl          Template
	calc         *Calculator
	values       map[string]Value
	reference    Record
	fieldRecords map[string]Record
	linked       map[string]Record
	computed     map[string]CalcResult

	state SessionState
}

// NewFillSession membuka sesi pengisian untuk template.
func NewFillSession(tpl Template) *FillSession {
	t := tpl.Clone()
	s := &FillSession{
		tpl:          t,
		calc:         NewCalculator(t),
		values:       map[string]Value{},
		fieldRecords: map[string]Record{},
		linked:       map[string]Record{},
	}
	s.recompute()
	return s
}

func (s *FillSession) recompute() {
	s.computed = s.calc.ComputeAll(s.values, s.reference)
}

func (s *FillSession) writable() error {
	switch s.state {
	case StateSubmitting:
		return ErrSubmitInFlight
	case StateSubmitted, StateClosed:
		return ErrSessionClosed
	}
	return nil
}

// State mengembalikan tahap sesi.
func (s *FillSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetValue mengisi nilai input pengguna. Field readonly dan kalkulasi ditolak.
func (s *FillSession) SetValue(fieldID string, v Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return err
	}
	f, ok := s.tpl.FieldByID(fieldID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, fieldID)
	}
	if f.IsReadonly || f.Type == FieldCalculated {
		return fmt.Errorf("%w: %s", ErrReadonlyField, f.Name)
	}
	s.values[fieldID] = v
	s.recompute()
	return nil
}

// Load memuat nilai yang dikirim klien sekaligus, menimpa hasil auto-fill
// pada field yang bisa diedit. Nilai untuk field kalkulasi dan readonly
// diabaikan: keduanya selalu berasal dari server.
func (s *FillSession) Load(values map[string]Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return err
	}
	for id, v := range values {
		f, ok := s.tpl.FieldByID(id)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, id)
		}
		if f.Type == FieldCalculated || f.IsReadonly {
			continue
		}
		s.values[id] = v
	}
	s.recompute()
	return nil
}

// SelectReference memilih (rec != nil) atau mengosongkan (rec == nil)
// referensi global. Hanya field model_reference ber-scope global yang
// disentuh; field own_model tidak pernah diubah di sini.
func (s *FillSession) SelectReference(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return err
	}
	s.applyReference(rec)
	return nil
}

// applyReference mengganti referensi global. Field linked dikosongkan dan
// menunggu SelectLinkedRecord untuk record barunya.
func (s *FillSession) applyReference(rec Record) {
	s.reference = rec
	s.linked = map[string]Record{}
	for _, sec := range s.tpl.Sections {
		for _, f := range sec.Fields {
			if f.Type != FieldModelReference || s.scope(f) != ScopeGlobal {
				continue
			}
			if rec == nil || f.IsLinked(s.tpl.ReferenceModel) {
				delete(s.values, f.ID)
				continue
			}
			s.values[f.ID] = Text(Stringify(rec[f.SourceKey()]))
		}
	}
	s.recompute()
}

// SelectLinkedRecord mengisi field linked dari record data_source_model yang
// id-nya diambil dari kolom linked_to_reference_field referensi global.
// rec nil mengosongkan field tersebut.
func (s *FillSession) SelectLinkedRecord(fieldID string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return err
	}
	f, ok := s.tpl.FieldByID(fieldID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, fieldID)
	}
	if !f.IsLinked(s.tpl.ReferenceModel) {
		return fmt.Errorf("%w: %s", ErrNotLinkedField, f.Name)
	}
	if s.reference == nil {
		return fmt.Errorf("%w: %s", ErrNoReference, f.Name)
	}
	if rec == nil {
		delete(s.linked, fieldID)
		delete(s.values, fieldID)
	} else {
		s.linked[fieldID] = rec
		s.values[fieldID] = Text(Stringify(rec[f.SourceKey()]))
	}
	s.recompute()
	return nil
}

// SelectFieldRecord mengisi field own_model dari record pilihannya sendiri.
// rec nil mengosongkan field tersebut.
func (s *FillSession) SelectFieldRecord(fieldID string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return err
	}
	f, ok := s.tpl.FieldByID(fieldID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, fieldID)
	}
	if f.Type != FieldModelReference || s.scope(f) != ScopeOwnModel {
		return fmt.Errorf("%w: %s", ErrNotOwnModelField, f.Name)
	}
	if rec == nil {
		delete(s.fieldRecords, fieldID)
		delete(s.values, fieldID)
	} else {
		s.fieldRecords[fieldID] = rec
		s.values[fieldID] = Text(Stringify(rec[f.SourceKey()]))
	}
	s.recompute()
	return nil
}

func (s *FillSession) scope(f Field) AutoFillScope { return s.tpl.ScopeOf(f) }

// Reference mengembalikan record referensi global yang sedang dipilih.
func (s *FillSession) Reference() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reference
}

// Value mengembalikan nilai kerja sebuah field (kalkulasi: teks tampilannya).
func (s *FillSession) Value(fieldID string) Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.computed[fieldID]; ok {
		return Text(r.Display())
	}
	return s.values[fieldID]
}

// Computed mengembalikan hasil setiap field kalkulasi, dikunci field id.
func (s *FillSession) Computed() map[string]CalcResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]CalcResult, len(s.computed))
	for k, v := range s.computed {
		out[k] = v
	}
	return out
}

// Validate memeriksa field wajib dan format angka/email/tanggal.
// Error membawa indeks section supaya klien bisa kembali ke section itu.
func (s *FillSession) Validate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ve := &ValidationError{}
	for si, sec := range s.tpl.Sections {
		for fi, f := range sec.Fields {
			if f.Type == FieldCalculated {
				continue
			}
			v := s.values[f.ID]
			if v.IsEmpty() {
				if f.IsRequired {
					ve.Add(si, fi, f.ID, "value", fmt.Sprintf("%s wajib diisi", fieldTitle(f)))
				}
				continue
			}
			if msg := checkFormat(f, v); msg != "" {
				ve.Add(si, fi, f.ID, "value", msg)
			}
		}
	}
	return ve.OrNil()
}

func checkFormat(f Field, v Value) string {
	raw := strings.TrimSpace(v.String())
	switch f.Type {
	case FieldNumber:
		if _, err := parseNumber(raw); err != nil {
			return fmt.Sprintf("%s harus berupa angka", fieldTitle(f))
		}
	case FieldEmail:
		if err := formatValidator.Var(raw, "email"); err != nil {
			return fmt.Sprintf("%s harus berupa email yang valid", fieldTitle(f))
		}
	case FieldDate:
		if _, err := time.Parse("2006-01-02", raw); err != nil {
			return fmt.Sprintf("%s harus berformat YYYY-MM-DD", fieldTitle(f))
		}
	}
	return ""
}

func fieldTitle(f Field) string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// BuildSubmission menyusun daftar nilai: satu entri per field, urut
// section lalu field. Field kosong bernilai "", field kalkulasi dua desimal
// ("0.00" bila gagal).
func (s *FillSession) BuildSubmission() []SubmittedValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SubmittedValue, 0, s.tpl.FieldCount())
	for _, sec := range s.tpl.Sections {
		for _, f := range sec.Fields {
			var v Value
			if f.Type == FieldCalculated {
				v = Text(s.calcResult(f).Persisted())
			} else if cur, ok := s.values[f.ID]; ok {
				v = cur
			} else {
				v = Text("")
			}
			sv := SubmittedValue{FieldID: f.ID, Value: v}
			if !v.IsMulti() {
				sv.Category = Grade(f, v.String())
			}
			out = append(out, sv)
		}
	}
	return out
}

func (s *FillSession) calcResult(f Field) CalcResult {
	if r, ok := s.computed[f.ID]; ok {
		return r
	}
	return CalcResult{Err: ErrMissingDependency}
}

// BeginSubmit menandai submit sedang berjalan. Submit kedua selama yang
// pertama belum selesai ditolak dengan ErrSubmitInFlight.
func (s *FillSession) BeginSubmit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return err
	}
	s.state = StateSubmitting
	return nil
}

// FinishSubmit menutup submit. Gagal: sesi kembali bisa diedit dengan nilai
// utuh. Berhasil: sesi selesai dan state kerja dibuang.
func (s *FillSession) FinishSubmit(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateSubmitting {
		return
	}
	if err != nil {
		s.state = StateFilling
		return
	}
	s.state = StateSubmitted
	s.discard()
}

// Close menutup sesi; perubahan sesudahnya ditolak dengan ErrSessionClosed.
func (s *FillSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitted {
		return
	}
	s.state = StateClosed
	s.discard()
}

func (s *FillSession) discard() {
	s.values = map[string]Value{}
	s.fieldRecords = map[string]Record{}
	s.linked = map[string]Record{}
	s.reference = nil
	s.computed = map[string]CalcResult{}
}
