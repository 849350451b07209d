package service

import (
	"context"
	"time"

	"sports-federation-backend/app/model"
	"sports-federation-backend/app/recurrence"
	"sports-federation-backend/app/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ScheduleInput adalah payload pembuatan jadwal latihan mingguan.
type ScheduleInput struct {
	Name      string `json:"name" validate:"required,max=150"`
	CaborID   *uint  `json:"cabor_id"`
	VenueID   *uint  `json:"venue_id"`
	CoachID   *uint  `json:"coach_id"`
	DayOfWeek []int  `json:"day_of_week" validate:"required,min=1,dive,min=0,max=6"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	IsActive  *bool  `json:"is_active"`
}

// GenerateResult: Count sesi baru yang dibuat, Skipped tanggal yang sudah ada.
type GenerateResult struct {
	Count   int64 `json:"count"`
	Skipped int64 `json:"skipped"`
}

// PreviewResult memuat tanggal yang akan di-generate untuk sebuah rentang.
type PreviewResult struct {
	Count int      `json:"count"`
	Dates []string `json:"dates"`
}

// TrainingScheduleService mengelola jadwal latihan dan generate sesinya.
type TrainingScheduleService interface {
	Create(ctx context.Context, userID uuid.UUID, in ScheduleInput) (*model.TrainingSchedule, error)
	Get(ctx context.Context, id uuid.UUID) (*model.TrainingSchedule, error)
	List(ctx context.Context, limit, offset int) ([]model.TrainingSchedule, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Preview(ctx context.Context, id uuid.UUID, dateFrom, dateTo string) (*PreviewResult, error)
	GenerateSessions(ctx context.Context, id uuid.UUID, dateFrom, dateTo string) (*GenerateResult, error)
	ListSessions(ctx context.Context, id uuid.UUID, dateFrom, dateTo string) ([]model.TrainingSession, error)
}

type trainingScheduleService struct {
	repo repository.TrainingScheduleRepository
	loc  *time.Location
}

// NewTrainingScheduleService membuat service jadwal. Tanggal dibaca di zona loc
// (nil → Asia/Jakarta).
func NewTrainingScheduleService(repo repository.TrainingScheduleRepository, loc *time.Location) TrainingScheduleService {
	if loc == nil {
		loc = recurrence.LoadLocation(recurrence.DefaultTimezone)
	}
	return &trainingScheduleService{repo: repo, loc: loc}
}

func (s *trainingScheduleService) Create(ctx context.Context, userID uuid.UUID, in ScheduleInput) (*model.TrainingSchedule, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	days, err := recurrence.NormalizeWeekdays(in.DayOfWeek)
	if err != nil {
		return nil, err
	}
	start, err := recurrence.ParseTimeOfDay(in.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := recurrence.ParseTimeOfDay(in.EndTime)
	if err != nil {
		return nil, err
	}
	// "HH:MM" dapat dibandingkan sebagai string
	if end <= start {
		return nil, badRequest("end_time harus setelah start_time")
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	dow := make(pq.Int64Array, 0, len(days))
	for _, d := range days {
		dow = append(dow, int64(d))
	}
	row := &model.TrainingSchedule{
		ID:        uuid.New(),
		Name:      in.Name,
		CaborID:   in.CaborID,
		VenueID:   in.VenueID,
		CoachID:   in.CoachID,
		DayOfWeek: dow,
		StartTime: start,
		EndTime:   end,
		IsActive:  active,
		CreatedBy: userID,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *trainingScheduleService) Get(ctx context.Context, id uuid.UUID) (*model.TrainingSchedule, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "jadwal")
	}
	return row, nil
}

func (s *trainingScheduleService) List(ctx context.Context, limit, offset int) ([]model.TrainingSchedule, int64, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *trainingScheduleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, "jadwal")
	}
	return nil
}

func (s *trainingScheduleService) dates(row *model.TrainingSchedule, dateFrom, dateTo string) ([]time.Time, error) {
	from, err := recurrence.ParseDate(dateFrom, s.loc)
	if err != nil {
		return nil, err
	}
	to, err := recurrence.ParseDate(dateTo, s.loc)
	if err != nil {
		return nil, err
	}
	return recurrence.Dates(row.Weekdays(), from, to)
}

// Preview memakai enumerasi yang sama persis dengan GenerateSessions.
func (s *trainingScheduleService) Preview(ctx context.Context, id uuid.UUID, dateFrom, dateTo string) (*PreviewResult, error) {
	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	dates, err := s.dates(row, dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	out := &PreviewResult{Count: len(dates), Dates: make([]string, 0, len(dates))}
	for _, d := range dates {
		out.Dates = append(out.Dates, d.Format(recurrence.DateLayout))
	}
	return out, nil
}

// GenerateSessions membuat satu sesi per tanggal yang cocok. Pemanggilan
// ulang dengan rentang yang sama tidak membuat sesi baru.
func (s *trainingScheduleService) GenerateSessions(ctx context.Context, id uuid.UUID, dateFrom, dateTo string) (*GenerateResult, error) {
	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !row.IsActive {
		return nil, badRequest("jadwal %s tidak aktif", row.Name)
	}
	dates, err := s.dates(row, dateFrom, dateTo)
	if err != nil {
		return nil, err
	}

	sessions := make([]model.TrainingSession, 0, len(dates))
	for _, d := range dates {
		sessions = append(sessions, model.TrainingSession{
			ID:          uuid.New(),
			ScheduleID:  row.ID,
			SessionDate: dateUTC(d),
			StartTime:   row.StartTime,
			EndTime:     row.EndTime,
			Status:      model.SessionStatusScheduled,
		})
	}
	created, err := s.repo.CreateSessions(ctx, sessions)
	if err != nil {
		return nil, err
	}
	return &GenerateResult{Count: created, Skipped: int64(len(sessions)) - created}, nil
}

func (s *trainingScheduleService) ListSessions(ctx context.Context, id uuid.UUID, dateFrom, dateTo string) ([]model.TrainingSession, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	var from, to *time.Time
	if dateFrom != "" {
		d, err := recurrence.ParseDate(dateFrom, s.loc)
		if err != nil {
			return nil, err
		}
		u := dateUTC(d)
		from = &u
	}
	if dateTo != "" {
		d, err := recurrence.ParseDate(dateTo, s.loc)
		if err != nil {
			return nil, err
		}
		u := dateUTC(d)
		to = &u
	}
	return s.repo.ListSessions(ctx, id, from, to)
}

// dateUTC menyimpan tanggal kalender lokal sebagai tengah malam UTC (kolom date).
func dateUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
