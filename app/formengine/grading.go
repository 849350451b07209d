package formengine


// Grade mengembalikan label kategori untuk nilai numerik raw berdasarkan
// grading_rules field. Aturan pertama yang rentangnya memuat nilai menang.
// Field tanpa grading, nilai kosong, atau bukan angka → "".
func Grade(f Field, raw string) string {
	if !f.HasGrading || len(f.GradingRules) == 0 {
		return ""
	}
	n, err := parseNumber(raw)
	if err != nil {
		return ""
	}
	for _, r := range f.GradingRules {
		if r.Min != nil && n < *r.Min {
			continue
		}
		if r.Max != nil && n > *r.Max {
			continue
		}
		return r.Label
	}
	return ""
}
