package formengine

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrorMarker adalah teks tampilan untuk field kalkulasi yang gagal dievaluasi.
const ErrorMarker = "Error"

// ErrMissingDependency: dependensi formula tidak punya nilai.
var ErrMissingDependency = errors.New("formengine: dependensi formula tidak memiliki nilai")

// Evaluator aritmatika kecil tanpa jalur eksekusi kode:
//
//	number | identifier | ( expr ) | -expr | +expr
//	a ^ b   (pangkat, asosiatif kanan, prioritas tertinggi)
//	a * b, a / b
//	a + b, a - b
//
// Identifier dibaca dari vars; identifier yang tidak ada di vars adalah error.
func Evaluate(formula string, vars map[string]float64) (float64, error) {
	tokens, err := tokenizeFormula(formula)
	if err != nil {
		return 0, err
	}
	if len(tokens) == 0 {
		return 0, errors.New("formengine: formula kosong")
	}
	stream := &calcStream{tokens: tokens, vars: vars}
	result, err := stream.parseSum()
	if err != nil {
		return 0, err
	}
	if stream.pos < len(stream.tokens) {
		return 0, fmt.Errorf("formengine: token tidak terduga %q", stream.tokens[stream.pos].raw)
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, errors.New("formengine: hasil bukan angka")
	}
	return result, nil
}

// FormulaIdentifiers mengembalikan identifier unik yang dipakai sebuah formula,
// sesuai urutan kemunculan.
func FormulaIdentifiers(formula string) ([]string, error) {
	tokens, err := tokenizeFormula(formula)
	if err != nil {
		return nil, err
	}
	var out []string
	seen := map[string]bool{}
	for _, tok := range tokens {
		if tok.kind == calcIdent && !seen[tok.raw] {
			seen[tok.raw] = true
			out = append(out, tok.raw)
		}
	}
	return out, nil
}

// CheckFormula memastikan formula dapat di-parse, tanpa mengevaluasi nilai.
func CheckFormula(formula string) error {
	tokens, err := tokenizeFormula(formula)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return errors.New("formengine: formula kosong")
	}
	vars := map[string]float64{}
	for _, tok := range tokens {
		if tok.kind == calcIdent {
			vars[tok.raw] = 1
		}
	}
	stream := &calcStream{tokens: tokens, vars: vars, dryRun: true}
	if _, err := stream.parseSum(); err != nil {
		return err
	}
	if stream.pos < len(stream.tokens) {
		return fmt.Errorf("formengine: token tidak terduga %q", stream.tokens[stream.pos].raw)
	}
	return nil
}

type calcKind int

const (
	calcNumber calcKind = iota
	calcIdent
	calcOp
	calcLParen
	calcRParen
)

type calcToken struct {
	kind calcKind
	raw  string
	num  float64
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool { return (c >= '0' && c <= '9') || c == '.' }

func tokenizeFormula(input string) ([]calcToken, error) {
	var tokens []calcToken
	i := 0
	for i < len(input) {
		ch := input[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case ch == '(':
			tokens = append(tokens, calcToken{kind: calcLParen, raw: "("})
			i++
		case ch == ')':
			tokens = append(tokens, calcToken{kind: calcRParen, raw: ")"})
			i++
		case strings.IndexByte("+-*/^", ch) >= 0:
			tokens = append(tokens, calcToken{kind: calcOp, raw: string(ch)})
			i++
		case isDigit(ch):
			start := i
			for i < len(input) && isDigit(input[i]) {
				i++
			}
			// eksponen: 1e3, 2.5E-2
			if i < len(input) && (input[i] == 'e' || input[i] == 'E') {
				j := i + 1
				if j < len(input) && (input[j] == '+' || input[j] == '-') {
					j++
				}
				if j < len(input) && input[j] >= '0' && input[j] <= '9' {
					for j < len(input) && input[j] >= '0' && input[j] <= '9' {
						j++
					}
					i = j
				}
			}
			raw := input[start:i]
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("formengine: angka tidak valid %q", raw)
			}
			tokens = append(tokens, calcToken{kind: calcNumber, raw: raw, num: n})
		case isIdentStart(ch):
			start := i
			for i < len(input) && isIdentPart(input[i]) {
				i++
			}
			tokens = append(tokens, calcToken{kind: calcIdent, raw: input[start:i]})
		default:
			return nil, fmt.Errorf("formengine: karakter tidak dikenal %q", string(ch))
		}
	}
	return tokens, nil
}

type calcStream struct {
	tokens []calcToken
	pos    int
	vars   map[string]float64
	dryRun bool
}

func (s *calcStream) peek() (calcToken, bool) {
	if s.pos >= len(s.tokens) {
		return calcToken{}, false
	}
	return s.tokens[s.pos], true
}

func (s *calcStream) matchOp(ops string) (string, bool) {
	tok, ok := s.peek()
	if !ok || tok.kind != calcOp || !strings.Contains(ops, tok.raw) {
		return "", false
	}
	s.pos++
	return tok.raw, true
}

func (s *calcStream) parseSum() (float64, error) {
	left, err := s.parseProduct()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := s.matchOp("+-")
		if !ok {
			return left, nil
		}
		right, err := s.parseProduct()
		if err != nil {
			return 0, err
		}
		if op == "+" {
			left += right
		} else {
			left -= right
		}
	}
}

func (s *calcStream) parseProduct() (float64, error) {
	left, err := s.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := s.matchOp("*/")
		if !ok {
			return left, nil
		}
		right, err := s.parseUnary()
		if err != nil {
			return 0, err
		}
		if op == "*" {
			left *= right
			continue
		}
		if right == 0 && !s.dryRun {
			return 0, errors.New("formengine: pembagian dengan nol")
		}
		left /= right
	}
}

func (s *calcStream) parseUnary() (float64, error) {
	if op, ok := s.matchOp("+-"); ok {
		v, err := s.parseUnary()
		if err != nil {
			return 0, err
		}
		if op == "-" {
			return -v, nil
		}
		return v, nil
	}
	return s.parsePower()
}

// parsePower: -2^2 = -(2^2), 2^-1 diizinkan lewat parseUnary di sisi kanan.
func (s *calcStream) parsePower() (float64, error) {
	base, err := s.parsePrimary()
	if err != nil {
		return 0, err
	}
	if _, ok := s.matchOp("^"); ok {
		exp, err := s.parseUnary()
		if err != nil {
			return 0, err
		}
		return math.Pow(base, exp), nil
	}
	return base, nil
}

func (s *calcStream) parsePrimary() (float64, error) {
	tok, ok := s.peek()
	if !ok {
		return 0, errors.New("formengine: formula berakhir tiba-tiba")
	}
	switch tok.kind {
	case calcNumber:
		s.pos++
		return tok.num, nil
	case calcIdent:
		s.pos++
		v, ok := s.vars[tok.raw]
		if !ok {
			return 0, fmt.Errorf("formengine: identifier tidak dikenal %q", tok.raw)
		}
		return v, nil
	case calcLParen:
		s.pos++
		v, err := s.parseSum()
		if err != nil {
			return 0, err
		}
		next, ok := s.peek()
		if !ok || next.kind != calcRParen {
			return 0, errors.New("formengine: kurung tutup hilang")
		}
		s.pos++
		return v, nil
	default:
		return 0, fmt.Errorf("formengine: token tidak terduga %q", tok.raw)
	}
}

// CalcResult adalah hasil evaluasi satu field kalkulasi.
type CalcResult struct {
	Value float64
	Err   error
}

// OK melaporkan apakah evaluasi berhasil.
func (r CalcResult) OK() bool { return r.Err == nil }

// Display: dua desimal, atau "Error" bila gagal.
func (r CalcResult) Display() string {
	if r.Err != nil {
		return ErrorMarker
	}
	return formatFixed(r.Value)
}

// Persisted: dua desimal, atau "0.00" bila gagal.
func (r CalcResult) Persisted() string {
	if r.Err != nil {
		return formatFixed(0)
	}
	return formatFixed(r.Value)
}

func formatFixed(v float64) string {
	rounded := math.Round(v*100) / 100
	if rounded == 0 {
		rounded = 0 // hindari "-0.00"
	}
	return strconv.FormatFloat(rounded, 'f', 2, 64)
}

// ValueLookup mengembalikan nilai mentah untuk sebuah nama dependensi.
type ValueLookup func(name string) (string, bool)

// Compute mengevaluasi satu field kalkulasi. Tidak pernah panic: panic di
// dalam evaluasi diubah menjadi error pada hasil.
func Compute(field Field, lookup ValueLookup) (res CalcResult) {
	defer func() {
		if r := recover(); r != nil {
			res = CalcResult{Err: fmt.Errorf("formengine: evaluasi gagal: %v", r)}
		}
	}()
	if strings.TrimSpace(field.CalculationFormula) == "" {
		return CalcResult{Err: errors.New("formengine: formula kosong")}
	}
	vars := make(map[string]float64, len(field.CalculationDependencies))
	for _, dep := range field.CalculationDependencies {
		raw, ok := lookup(dep)
		if !ok || strings.TrimSpace(raw) == "" {
			return CalcResult{Err: fmt.Errorf("%w: %s", ErrMissingDependency, dep)}
		}
		n, err := parseNumber(raw)
		if err != nil {
			return CalcResult{Err: fmt.Errorf("formengine: nilai %s bukan angka: %q", dep, raw)}
		}
		vars[dep] = n
	}
	v, err := Evaluate(field.CalculationFormula, vars)
	if err != nil {
		return CalcResult{Err: err}
	}
	return CalcResult{Value: v}
}

// Calculator menghitung semua field kalkulasi sebuah template terhadap
// nilai-nilai saat ini. Fungsi murni: input sama menghasilkan output sama.
type Calculator struct {
	tpl Template
}

// NewCalculator membuat Calculator untuk template.
func NewCalculator(tpl Template) *Calculator { return &Calculator{tpl: tpl} }

// ComputeAll mengevaluasi setiap field kalkulasi. values dikunci field id,
// reference adalah record referensi global (boleh nil).
// Dependensi yang juga field kalkulasi memakai hasil hitungnya; siklus menjadi error.
func (c *Calculator) ComputeAll(values map[string]Value, reference Record) map[string]CalcResult {
	results := map[string]CalcResult{}
	visiting := map[string]bool{}

	var eval func(f Field) CalcResult
	eval = func(f Field) CalcResult {
		if r, ok := results[f.ID]; ok {
			return r
		}
		if visiting[f.ID] {
			return CalcResult{Err: fmt.Errorf("formengine: dependensi melingkar pada %s", f.Name)}
		}
		visiting[f.ID] = true
		lookup := func(name string) (string, bool) {
			dep, ok := c.tpl.FieldByName(name)
			if ok && dep.Type == FieldCalculated {
				r := eval(dep)
				if !r.OK() {
					return "", false
				}
				return formatFixed(r.Value), true
			}
			if ok {
				if v, has := values[dep.ID]; has && !v.IsEmpty() {
					return v.String(), true
				}
			}
			if reference != nil {
				if raw, has := reference[name]; has && raw != nil {
					return Stringify(raw), true
				}
			}
			return "", false
		}
		r := Compute(f, lookup)
		visiting[f.ID] = false
		results[f.ID] = r
		return r
	}

	for _, s := range c.tpl.Sections {
		for _, f := range s.Fields {
			if f.Type == FieldCalculated {
				eval(f)
			}
		}
	}
	return results
}
