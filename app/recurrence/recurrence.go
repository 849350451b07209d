// Package recurrence menghitung tanggal sesi latihan dari jadwal mingguan.
// Fungsi yang sama dipakai untuk preview jumlah sesi dan untuk generate,
// sehingga angka preview selalu sama dengan hasil generate.
package recurrence

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	// DateLayout adalah format tanggal di query/JSON.
	DateLayout = "2006-01-02"
	// MaxRangeDays membatasi panjang rentang (inklusif) sekali generate.
	MaxRangeDays = 366
	// DefaultTimezone dipakai bila APP_TIMEZONE kosong atau tidak dikenal.
	DefaultTimezone = "Asia/Jakarta"
)

var (
	ErrInvalidRange   = errors.New("recurrence: rentang tanggal tidak valid")
	ErrInvalidWeekday = errors.New("recurrence: hari harus 0 (Minggu) sampai 6 (Sabtu)")
	ErrInvalidTime    = errors.New("recurrence: format jam harus HH:MM")
)

// LoadLocation memuat zona waktu; gagal → zona tetap WIB.
func LoadLocation(name string) *time.Location {
	if strings.TrimSpace(name) == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone(DefaultTimezone, 7*3600)
	}
	return loc
}

// ParseDate mem-parse "YYYY-MM-DD" sebagai awal hari di loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: tanggal %q harus berformat YYYY-MM-DD", ErrInvalidRange, s)
	}
	return t, nil
}

// StartOfDay memotong t ke pukul 00:00 di loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, loc)
}

// ParseTimeOfDay menerima "15:04" atau "15:04:05" dan mengembalikan "15:04".
func ParseTimeOfDay(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04"), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTime, s)
}

// NormalizeWeekdays memvalidasi dan mengurutkan hari (0=Minggu..6=Sabtu),
// membuang duplikat. Daftar kosong ditolak.
func NormalizeWeekdays(days []int) ([]int, error) {
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: minimal satu hari", ErrInvalidWeekday)
	}
	seen := map[int]bool{}
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidWeekday, d)
		}
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Ints(out)
	return out, nil
}

// Dates mengembalikan setiap tanggal di rentang tertutup [from, to] yang
// harinya termasuk days, urut naik. from dan to dipotong ke awal hari di
// zona from.
func Dates(days []int, from, to time.Time) ([]time.Time, error) {
	set, err := NormalizeWeekdays(days)
	if err != nil {
		return nil, err
	}
	loc := from.Location()
	start := StartOfDay(from, loc)
	end := StartOfDay(to, loc)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: date_to sebelum date_from", ErrInvalidRange)
	}
	if span := daysBetween(start, end) + 1; span > MaxRangeDays {
		return nil, fmt.Errorf("%w: maksimal %d hari, diminta %d", ErrInvalidRange, MaxRangeDays, span)
	}

	want := [7]bool{}
	for _, d := range set {
		want[d] = true
	}
	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if want[int(d.Weekday())] {
			out = append(out, d)
		}
	}
	return out, nil
}

// Count adalah jumlah tanggal yang akan dihasilkan Dates.
func Count(days []int, from, to time.Time) (int, error) {
	dates, err := Dates(days, from, to)
	if err != nil {
		return 0, err
	}
	return len(dates), nil
}

// daysBetween menghitung selisih hari kalender (aman terhadap DST).
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
