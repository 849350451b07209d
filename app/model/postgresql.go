package model

import (
	"time"

	"sports-federation-backend/app/formengine"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// User merepresentasikan pengguna panel admin federasi (admin, operator)
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FullName     string    `gorm:"not null" json:"full_name"`
	RoleID       uuid.UUID `gorm:"type:uuid;not null" json:"role_id"`
	Role         Role      `gorm:"foreignKey:RoleID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"role"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Role menyimpan peran pengguna (admin, operator)
type Role struct {
	ID          uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string       `gorm:"unique;not null" json:"name"`
	Description string       `json:"description"`
	Permissions []Permission `gorm:"many2many:role_permissions;" json:"permissions,omitempty"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

// Permission menyimpan hak akses per resource & action, mis. "form_template:write"
type Permission struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"unique;not null" json:"name"`
	Resource    string    `json:"resource"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ===== Model referensi (sumber data field & auto-fill) =====

// Cabor adalah cabang olahraga
type Cabor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);unique;not null" json:"name"`
	Code      string    `gorm:"type:varchar(20)" json:"code"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Cabor) TableName() string { return "cabors" }

// Athlete adalah atlet binaan federasi
type Athlete struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"type:varchar(150);not null" json:"name"`
	Gender    string     `gorm:"type:varchar(1)" json:"gender"`
	BirthDate *time.Time `gorm:"type:date" json:"birth_date"`
	CaborID   *uint      `json:"cabor_id"`
	CoachID   *uint      `json:"coach_id"`
	CoachName string     `gorm:"type:varchar(150)" json:"coach_name"`
	Berat     float64    `json:"berat"`  // kg
	Tinggi    float64    `json:"tinggi"` // cm
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// Coach adalah pelatih
type Coach struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(150);not null" json:"name"`
	License   string    `gorm:"type:varchar(20)" json:"license"`
	CaborID   *uint     `json:"cabor_id"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Venue adalah tempat latihan / pertandingan
type Venue struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(150);not null" json:"name"`
	Address   string    `json:"address"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Event adalah kejuaraan / agenda federasi
type Event struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"type:varchar(150);not null" json:"name"`
	Location  string     `json:"location"`
	StartDate *time.Time `gorm:"type:date" json:"start_date"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// ===== Form dinamis =====

// FormTemplate menyimpan definisi form. Graf section → field disimpan utuh
// sebagai jsonb supaya urutan dan atribut field tidak tersebar ke banyak tabel.
type FormTemplate struct {
	ID                    uuid.UUID                                `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name                  string                                   `gorm:"type:varchar(150);not null;index" json:"name"`
	Description           string                                   `json:"description"`
	ReferenceModel        string                                   `gorm:"type:varchar(50)" json:"reference_model"`
	ReferenceDisplayField string                                   `gorm:"type:varchar(50);not null" json:"reference_display_field"`
	IsActive              bool                                     `gorm:"not null" json:"is_active"`
	Sections              datatypes.JSONType[[]formengine.Section] `gorm:"type:jsonb;not null" json:"sections"`
	CreatedBy             uuid.UUID                                `gorm:"type:uuid" json:"created_by"`
	CreatedAt             time.Time                                `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time                                `gorm:"autoUpdateTime" json:"updated_at"`
}

// ToEngine mengubah baris tabel menjadi formengine.Template.
func (t FormTemplate) ToEngine() formengine.Template {
	return formengine.Template{
		ID:                    t.ID.String(),
		Name:                  t.Name,
		Description:           t.Description,
		ReferenceModel:        t.ReferenceModel,
		ReferenceDisplayField: t.ReferenceDisplayField,
		IsActive:              t.IsActive,
		Sections:              t.Sections.Data(),
	}
}

// ApplyEngine menyalin isi template engine ke baris tabel (id tidak diubah).
func (t *FormTemplate) ApplyEngine(tpl formengine.Template) {
	t.Name = tpl.Name
	t.Description = tpl.Description
	t.ReferenceModel = tpl.ReferenceModel
	t.ReferenceDisplayField = tpl.ReferenceDisplayField
	t.IsActive = tpl.IsActive
	sections := tpl.Sections
	if sections == nil {
		sections = []formengine.Section{}
	}
	t.Sections = datatypes.NewJSONType(sections)
}

// FormSubmission adalah satu pengisian form yang sudah tersimpan
type FormSubmission struct {
	ID             uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TemplateID     uuid.UUID             `gorm:"type:uuid;not null;index" json:"template_id"`
	SubmissionCode string                `gorm:"type:varchar(32);uniqueIndex;not null" json:"submission_code"`
	ReferenceID    *string               `gorm:"type:varchar(64);index" json:"reference_id"`
	UserID         uuid.UUID             `gorm:"type:uuid;not null" json:"user_id"`
	Values         []FormSubmissionValue `gorm:"foreignKey:SubmissionID" json:"values"`
	CreatedAt      time.Time             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time             `gorm:"autoUpdateTime" json:"updated_at"`
}

// FormSubmissionValue adalah nilai satu field di sebuah submission.
// Position mengikuti urutan section → field pada template saat submit.
type FormSubmissionValue struct {
	ID           uuid.UUID                           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	SubmissionID uuid.UUID                           `gorm:"type:uuid;not null;index" json:"-"`
	FieldID      string                              `gorm:"type:varchar(64);not null" json:"field_id"`
	Position     int                                 `gorm:"not null" json:"-"`
	Value        datatypes.JSONType[formengine.Value] `gorm:"type:jsonb;not null" json:"value"`
	Category     string                              `gorm:"type:varchar(50)" json:"category,omitempty"`
}

// ===== Jadwal latihan =====

const (
	SessionStatusScheduled = "scheduled"
	SessionStatusDone      = "done"
	SessionStatusCanceled  = "canceled"
)

// TrainingSchedule adalah jadwal latihan mingguan. DayOfWeek: 0=Minggu..6=Sabtu.
type TrainingSchedule struct {
	ID        uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string        `gorm:"type:varchar(150);not null" json:"name"`
	CaborID   *uint         `json:"cabor_id"`
	VenueID   *uint         `json:"venue_id"`
	CoachID   *uint         `json:"coach_id"`
	DayOfWeek pq.Int64Array `gorm:"type:int[];not null" json:"day_of_week"`
	StartTime string        `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime   string        `gorm:"type:varchar(5);not null" json:"end_time"`
	IsActive  bool          `gorm:"not null" json:"is_active"`
	CreatedBy uuid.UUID     `gorm:"type:uuid" json:"created_by"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

// Weekdays mengembalikan DayOfWeek sebagai []int.
func (s TrainingSchedule) Weekdays() []int {
	out := make([]int, 0, len(s.DayOfWeek))
	for _, d := range s.DayOfWeek {
		out = append(out, int(d))
	}
	return out
}

// TrainingSession adalah satu pertemuan latihan hasil generate.
// Satu jadwal hanya punya satu sesi per tanggal.
type TrainingSession struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ScheduleID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_training_session_schedule_date" json:"schedule_id"`
	SessionDate time.Time `gorm:"type:date;not null;uniqueIndex:uq_training_session_schedule_date" json:"session_date"`
	StartTime   string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime     string    `gorm:"type:varchar(5);not null" json:"end_time"`
	Status      string    `gorm:"type:varchar(20);not null;check:status IN ('scheduled','done','canceled')" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
