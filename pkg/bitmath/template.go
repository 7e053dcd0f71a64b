package bitmath

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/karlseguin/ccache/v3"
)

// DefaultTemplate is the template of the process default formatter.
const DefaultTemplate = "{value} {unit}"

// Template keys.
const (
	KeyValue        = "value"
	KeyUnit         = "unit"
	KeyUnitSingular = "unit_singular"
	KeyUnitPlural   = "unit_plural"
	KeyBits         = "bits"
	KeyBytes        = "bytes"
	KeyBase         = "base"
	KeyPower        = "power"
	KeySystem       = "system"
	KeyBinary       = "binary"
	KeyBin          = "bin"
)

var templateKeys = map[string]bool{
	KeyValue: true, KeyUnit: true, KeyUnitSingular: true, KeyUnitPlural: true,
	KeyBits: true, KeyBytes: true, KeyBase: true, KeyPower: true,
	KeySystem: true, KeyBinary: true, KeyBin: true,
}

// Template is a compiled format template such as "{value:.2f} {unit}".
type Template struct {
	src      string
	parts    []templatePart
	hasValue bool
}

type templatePart struct {
	literal string
	key     string
	spec    formatSpec
}

func (p templatePart) isField() bool { return p.key != "" }

const templateTTL = time.Hour

var templates = ccache.New(
	ccache.Configure[*Template]().
		MaxSize(256).
		GetsPerPromote(3).
		ItemsToPrune(16),
)

func compileCached(src string) (*Template, error) {
	item, err := templates.Fetch(src, templateTTL, func() (*Template, error) {
		return CompileTemplate(src)
	})
	if err != nil {
		return nil, err
	}
	return item.Value(), nil
}

// CompileTemplate parses a template. Fields are written {key} or
// {key:spec}; {{ and }} are literal braces.
func CompileTemplate(src string) (*Template, error) {
	t := &Template{src: src}
	var lit strings.Builder
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch c {
		case '{':
			if i+1 < len(src) && src[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(src[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated field at offset %d in %q", ErrTemplate, i, src)
			}
			field := src[i+1 : i+1+end]
			key, rawSpec, _ := strings.Cut(field, ":")
			if !templateKeys[key] {
				return nil, fmt.Errorf("%w: unknown key %q in %q", ErrTemplate, key, src)
			}
			spec, err := parseFormatSpec(rawSpec)
			if err != nil {
				return nil, fmt.Errorf("%w: field %q: %v", ErrTemplate, field, err)
			}
			if lit.Len() > 0 {
				t.parts = append(t.parts, templatePart{literal: lit.String()})
				lit.Reset()
			}
			t.parts = append(t.parts, templatePart{key: key, spec: spec})
			if key == KeyValue {
				t.hasValue = true
			}
			i += end + 1
		case '}':
			if i+1 < len(src) && src[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return nil, fmt.Errorf("%w: single '}' at offset %d in %q", ErrTemplate, i, src)
		default:
			lit.WriteByte(c)
		}
	}
	if lit.Len() > 0 {
		t.parts = append(t.parts, templatePart{literal: lit.String()})
	}
	return t, nil
}

func (t *Template) String() string { return t.src }

// Render formats s. plural selects plural unit names for {unit}.
func (t *Template) Render(s Size, plural bool) string {
	return t.render(s, plural, nil)
}

// render formats s, replacing the format of every {value} field with
// valueSpec when it is not nil.
func (t *Template) render(s Size, plural bool, valueSpec *formatSpec) string {
	var b strings.Builder
	for _, p := range t.parts {
		if !p.isField() {
			b.WriteString(p.literal)
			continue
		}
		spec := p.spec
		if p.key == KeyValue && valueSpec != nil {
			spec = *valueSpec
		}
		switch p.key {
		case KeyValue:
			b.WriteString(spec.formatNumber(s.value))
		case KeyUnit:
			b.WriteString(spec.formatString(s.unitName(plural)))
		case KeyUnitSingular:
			b.WriteString(spec.formatString(s.unit.String()))
		case KeyUnitPlural:
			b.WriteString(spec.formatString(s.unit.Plural()))
		case KeyBits:
			b.WriteString(spec.formatNumber(s.bits))
		case KeyBytes:
			b.WriteString(spec.formatNumber(s.Bytes()))
		case KeyBase:
			b.WriteString(spec.formatInt(int64(s.Base())))
		case KeyPower:
			b.WriteString(spec.formatInt(int64(s.Exponent())))
		case KeySystem:
			b.WriteString(spec.formatString(s.System().String()))
		case KeyBinary, KeyBin:
			b.WriteString(spec.formatString(s.binary()))
		}
	}
	return b.String()
}

// formatSpec is the field format understood in
// template fields: [[fill]align][sign][0][width][,][.precision][type].
type formatSpec struct {
	fill  rune
	align byte
	sign  byte
	width int
	comma bool
	prec  int
	verb  byte
}

func parseFormatSpec(s string) (formatSpec, error) {
	spec := formatSpec{fill: ' ', prec: -1}
	if s == "" {
		return spec, nil
	}
	isAlign := func(c byte) bool { return c == '<' || c == '>' || c == '^' || c == '=' }

	r, size := utf8.DecodeRuneInString(s)
	if size < len(s) && isAlign(s[size]) {
		spec.fill, spec.align = r, s[size]
		s = s[size+1:]
	} else if isAlign(s[0]) {
		spec.align = s[0]
		s = s[1:]
	}
	if s != "" && (s[0] == '+' || s[0] == '-' || s[0] == ' ') {
		spec.sign = s[0]
		s = s[1:]
	}
	if s != "" && s[0] == '0' {
		if spec.align == 0 {
			spec.fill, spec.align = '0', '='
		}
		s = s[1:]
	}
	n := leadingDigits(s)
	if n > 0 {
		spec.width, _ = strconv.Atoi(s[:n])
		s = s[n:]
	}
	if s != "" && s[0] == ',' {
		spec.comma = true
		s = s[1:]
	}
	if s != "" && s[0] == '.' {
		n = leadingDigits(s[1:])
		if n == 0 {
			return spec, fmt.Errorf("missing precision")
		}
		spec.prec, _ = strconv.Atoi(s[1 : 1+n])
		s = s[1+n:]
	}
	if s != "" {
		if len(s) > 1 || !strings.ContainsRune("fFeEgG%ds", rune(s[0])) {
			return spec, fmt.Errorf("invalid format spec suffix %q", s)
		}
		spec.verb = s[0]
	}
	return spec, nil
}

func leadingDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

func (f formatSpec) formatNumber(v float64) string {
	neg := math.Signbit(v) && !math.IsNaN(v)
	abs := math.Abs(v)

	var digits string
	switch f.verb {
	case 'f', 'F':
		digits = strconv.FormatFloat(abs, 'f', f.precOr(6), 64)
	case 'e', 'E':
		digits = strconv.FormatFloat(abs, f.verb, f.precOr(6), 64)
	case 'g', 'G':
		digits = strconv.FormatFloat(abs, f.verb, max(f.precOr(6), 1), 64)
	case '%':
		digits = strconv.FormatFloat(abs*100, 'f', f.precOr(6), 64) + "%"
	case 'd':
		digits = strconv.FormatFloat(math.Trunc(abs), 'f', 0, 64)
	default:
		if f.prec >= 0 {
			digits = strconv.FormatFloat(abs, 'g', max(f.prec, 1), 64)
		} else {
			digits = formatFloat(abs)
		}
	}
	if f.verb == 'F' || f.verb == 'E' || f.verb == 'G' {
		digits = strings.ToUpper(digits)
	}
	if f.comma {
		digits = groupThousands(digits)
	}
	return f.pad(f.signOf(neg), digits, '>')
}

func (f formatSpec) formatInt(v int64) string {
	if f.verb != 0 && f.verb != 'd' {
		return f.formatNumber(float64(v))
	}
	neg := v < 0
	digits := strconv.FormatInt(v, 10)
	if neg {
		digits = digits[1:]
	}
	if f.comma {
		digits = groupThousands(digits)
	}
	return f.pad(f.signOf(neg), digits, '>')
}

func (f formatSpec) formatString(s string) string {
	if f.prec >= 0 && utf8.RuneCountInString(s) > f.prec {
		s = string([]rune(s)[:f.prec])
	}
	return f.pad("", s, '<')
}

func (f formatSpec) precOr(def int) int {
	if f.prec < 0 {
		return def
	}
	return f.prec
}

func (f formatSpec) signOf(neg bool) string {
	switch {
	case neg:
		return "-"
	case f.sign == '+':
		return "+"
	case f.sign == ' ':
		return " "
	default:
		return ""
	}
}

func (f formatSpec) pad(sign, body string, defaultAlign byte) string {
	n := utf8.RuneCountInString(sign) + utf8.RuneCountInString(body)
	if n >= f.width {
		return sign + body
	}
	fill := strings.Repeat(string(f.fill), f.width-n)
	align := f.align
	if align == 0 {
		align = defaultAlign
	}
	switch align {
	case '<':
		return sign + body + fill
	case '^':
		left := (f.width - n) / 2
		return fill[:left*len(string(f.fill))] + sign + body + fill[left*len(string(f.fill)):]
	case '=':
		return sign + fill + body
	default:
		return fill + sign + body
	}
}

// groupThousands inserts commas into the integer part of a rendered
// unsigned number.
func groupThousands(digits string) string {
	end := 0
	for end < len(digits) && digits[end] >= '0' && digits[end] <= '9' {
		end++
	}
	n, ok := new(big.Int).SetString(digits[:end], 10)
	if !ok {
		return digits
	}
	return humanize.BigComma(n) + digits[end:]
}

// formatFloat renders v the shortest way that reads back to v, keeping a
// trailing ".0" on integral values: 1.0, 0.5, 1e+16.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
