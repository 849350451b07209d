package formengine

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Value adalah nilai sebuah field: teks tunggal atau daftar teks (checkbox).
// Angka dan tanggal disimpan dalam bentuk string kanonik dan di-parse di tepi.
type Value struct {
	multi bool
	text  string
	items []string
}

// Text membuat Value teks tunggal.
func Text(s string) Value { return Value{text: s} }

// MultiText membuat Value daftar teks.
func MultiText(items ...string) Value {
	return Value{multi: true, items: append([]string{}, items...)}
}

// IsMulti melaporkan apakah v berupa daftar teks.
func (v Value) IsMulti() bool { return v.multi }

// Items mengembalikan isi daftar teks (nil untuk Value teks tunggal).
func (v Value) Items() []string {
	if !v.multi {
		return nil
	}
	return append([]string{}, v.items...)
}

// String mengembalikan teks; daftar digabung dengan koma.
func (v Value) String() string {
	if v.multi {
		return strings.Join(v.items, ",")
	}
	return v.text
}

// IsEmpty: teks kosong (setelah trim) atau daftar tanpa item.
func (v Value) IsEmpty() bool {
	if v.multi {
		return len(v.items) == 0
	}
	return strings.TrimSpace(v.text) == ""
}

// Equal membandingkan dua Value.
func (v Value) Equal(o Value) bool {
	if v.multi != o.multi {
		return false
	}
	if !v.multi {
		return v.text == o.text
	}
	if len(v.items) != len(o.items) {
		return false
	}
	for i := range v.items {
		if v.items[i] != o.items[i] {
			return false
		}
	}
	return true
}

// MarshalJSON: string untuk teks, array untuk daftar.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.multi {
		items := v.items
		if items == nil {
			items = []string{}
		}
		return json.Marshal(items)
	}
	return json.Marshal(v.text)
}

// UnmarshalJSON menerima string, angka, boolean, null, atau array.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*v = Text("")
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var raw []any
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("formengine: nilai array tidak valid: %w", err)
		}
		items := make([]string, 0, len(raw))
		for _, it := range raw {
			items = append(items, Stringify(it))
		}
		*v = MultiText(items...)
		return nil
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("formengine: nilai tidak valid: %w", err)
	}
	switch raw.(type) {
	case map[string]any:
		return errors.New("formengine: nilai object tidak didukung")
	}
	*v = Text(Stringify(raw))
	return nil
}

// Stringify mengubah nilai bebas dari record (hasil decode JSON / scan gorm)
// menjadi teks. nil menjadi "".
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint32:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case time.Time:
		return t.Format("2006-01-02")
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02")
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

var errNotDecimal = errors.New("formengine: bukan angka desimal")

// parseNumber membaca angka desimal biasa. NaN, Inf dan notasi hex yang
// diterima strconv.ParseFloat ditolak.
func parseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	digits := strings.TrimLeft(s, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, errNotDecimal
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, errNotDecimal
	}
	return n, nil
}
