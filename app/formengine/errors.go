package formengine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrLastSection      = errors.New("formengine: minimal harus ada satu section")
	ErrIndexOutOfRange  = errors.New("formengine: indeks di luar jangkauan")
	ErrUnknownField     = errors.New("formengine: field tidak ditemukan")
	ErrReadonlyField    = errors.New("formengine: field hanya-baca")
	ErrNotOwnModelField = errors.New("formengine: field tidak memakai picker model sendiri")
	ErrSubmitInFlight   = errors.New("formengine: submit sedang diproses")
	ErrSessionClosed    = errors.New("formengine: sesi pengisian sudah ditutup")
	ErrNotLinkedField   = errors.New("formengine: field tidak terhubung ke referensi global")
	ErrNoReference      = errors.New("formengine: referensi global belum dipilih")
)

// FieldError adalah satu pesan validasi yang terikat ke posisi di template.
// SectionIndex/FieldIndex bernilai -1 untuk error tingkat template/section.
type FieldError struct {
	SectionIndex int    `json:"section_index"`
	FieldIndex   int    `json:"field_index"`
	FieldID      string `json:"field_id,omitempty"`
	Attribute    string `json:"attribute"`
	Message      string `json:"message"`
}

// ValidationError adalah kegagalan validasi (HTTP 422) dengan pesan per-field.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Errors) == 0 {
		return "formengine: validasi gagal"
	}
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		if fe.FieldIndex >= 0 {
			parts = append(parts, fmt.Sprintf("section %d field %d %s: %s", fe.SectionIndex, fe.FieldIndex, fe.Attribute, fe.Message))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Attribute, fe.Message))
	}
	return "formengine: validasi gagal: " + strings.Join(parts, "; ")
}

// Add menambahkan satu pesan.
func (e *ValidationError) Add(section, field int, fieldID, attr, msg string) {
	e.Errors = append(e.Errors, FieldError{
		SectionIndex: section,
		FieldIndex:   field,
		FieldID:      fieldID,
		Attribute:    attr,
		Message:      msg,
	})
}

// OrNil mengembalikan nil bila tidak ada pesan.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}

// FirstSection mengembalikan indeks section dari error pertama yang terikat
// ke section, untuk mengarahkan pengguna kembali ke section tersebut.
func (e *ValidationError) FirstSection() int {
	if e == nil {
		return -1
	}
	for _, fe := range e.Errors {
		if fe.SectionIndex >= 0 {
			return fe.SectionIndex
		}
	}
	return -1
}

// ByField mengelompokkan pesan per field id; pesan tanpa field id masuk kunci "".
func (e *ValidationError) ByField() map[string][]string {
	out := map[string][]string{}
	if e == nil {
		return out
	}
	for _, fe := range e.Errors {
		out[fe.FieldID] = append(out[fe.FieldID], fe.Message)
	}
	return out
}

// AsValidation membuka err menjadi *ValidationError bila memungkinkan.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
