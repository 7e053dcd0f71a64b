package bitmath

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
)

// Formatter renders sizes through a template.
type Formatter struct {
	Template string
	// Plural selects plural unit names ("KiBs") for values other than 1.
	Plural bool
}

// Format renders s. A template that does not compile renders as
// %!(TEMPLATE=error), in the manner of fmt.
func (f Formatter) Format(s Size) string {
	t, err := compileCached(f.template())
	if err != nil {
		return "%!(TEMPLATE=" + err.Error() + ")"
	}
	return t.Render(s, f.Plural)
}

func (f Formatter) template() string {
	if f.Template == "" {
		return DefaultTemplate
	}
	return f.Template
}

// Validate reports whether the template compiles.
func (f Formatter) Validate() error {
	_, err := compileCached(f.template())
	return err
}

// The process default formatter is a base value plus a stack of scoped
// overrides. The effective formatter is the most recently pushed live scope,
// or the base when no scope is live.
var (
	formatMu     sync.Mutex
	formatBase   = Formatter{Template: DefaultTemplate}
	formatScopes []formatScope
	formatSeq    uint64
	formatTop    atomic.Pointer[Formatter]
)

type formatScope struct {
	id uint64
	f  Formatter
}

func init() {
	f := formatBase
	formatTop.Store(&f)
}

// DefaultFormatter returns the effective process-wide formatter.
func DefaultFormatter() Formatter { return *formatTop.Load() }

// SetDefaultFormatter replaces the base formatter and returns a function
// restoring the previous one. Live scopes keep precedence.
func SetDefaultFormatter(f Formatter) (restore func()) {
	formatMu.Lock()
	prev := formatBase
	formatBase = f
	publishLocked()
	formatMu.Unlock()

	return func() {
		formatMu.Lock()
		formatBase = prev
		publishLocked()
		formatMu.Unlock()
	}
}

func publishLocked() {
	f := formatBase
	if n := len(formatScopes); n > 0 {
		f = formatScopes[n-1].f
	}
	formatTop.Store(&f)
}

// FormatOption adjusts a scoped formatter.
type FormatOption func(*Formatter)

func WithTemplate(tmpl string) FormatOption {
	return func(f *Formatter) { f.Template = tmpl }
}

func WithPlural(plural bool) FormatOption {
	return func(f *Formatter) { f.Plural = plural }
}

// Scoped runs fn with the default formatter overridden by opts. Options not
// given are inherited from the formatter in effect when the scope starts.
// The override is removed when fn returns or panics. Scopes may nest.
//
// The override is process-wide: every goroutine formatting while fn runs
// sees it, and scopes entered from several goroutines at once replace one
// another. Use ScopedContext for overrides local to one call chain.
func Scoped(fn func(), opts ...FormatOption) {
	formatMu.Lock()
	f := *formatTop.Load()
	for _, opt := range opts {
		opt(&f)
	}
	formatSeq++
	id := formatSeq
	formatScopes = append(formatScopes, formatScope{id: id, f: f})
	publishLocked()
	formatMu.Unlock()

	defer func() {
		formatMu.Lock()
		formatScopes = slices.DeleteFunc(formatScopes, func(s formatScope) bool { return s.id == id })
		publishLocked()
		formatMu.Unlock()
	}()
	fn()
}

type formatterKey struct{}

// ContextWithFormatter returns a context carrying f.
func ContextWithFormatter(ctx context.Context, f Formatter) context.Context {
	return context.WithValue(ctx, formatterKey{}, f)
}

// ScopedContext returns a context carrying the formatter of ctx adjusted by
// opts. Unlike Scoped it leaves the process default untouched.
func ScopedContext(ctx context.Context, opts ...FormatOption) context.Context {
	f := FormatterFromContext(ctx)
	for _, opt := range opts {
		opt(&f)
	}
	return ContextWithFormatter(ctx, f)
}

// FormatterFromContext returns the formatter carried by ctx, or the process
// default.
func FormatterFromContext(ctx context.Context) Formatter {
	if f, ok := ctx.Value(formatterKey{}).(Formatter); ok {
		return f
	}
	return DefaultFormatter()
}

// String renders s with the default formatter, e.g. "1.0 KiB".
func (s Size) String() string { return DefaultFormatter().Format(s) }

// FormatTemplate renders s with tmpl and the default plural setting.
func (s Size) FormatTemplate(tmpl string) string {
	return Formatter{Template: tmpl, Plural: DefaultFormatter().Plural}.Format(s)
}

// Format implements fmt.Formatter. %v and %s print String(). The float and
// integer verbs (%f %e %g %d, with flags, width and precision) print the
// default template with the {value} field formatted by the verb; templates
// without {value} print unchanged.
func (s Size) Format(st fmt.State, verb rune) {
	def := DefaultFormatter()
	switch verb {
	case 'f', 'F', 'e', 'E', 'g', 'G', 'd':
	default:
		if verb == 'v' && st.Flag('#') {
			fmt.Fprint(st, s.GoString())
			return
		}
		if verb != 'v' && verb != 's' {
			fmt.Fprintf(st, "%%!%c(bitmath.Size=%s)", verb, s.String())
			return
		}
		fmt.Fprint(st, padState(st, def.Format(s)))
		return
	}

	t, err := compileCached(def.template())
	if err != nil {
		fmt.Fprint(st, "%!(TEMPLATE="+err.Error()+")")
		return
	}
	spec := formatSpec{fill: ' ', prec: -1, verb: byte(verb)}
	if p, ok := st.Precision(); ok {
		spec.prec = p
	}
	if w, ok := st.Width(); ok {
		spec.width = w
	}
	switch {
	case st.Flag('+'):
		spec.sign = '+'
	case st.Flag(' '):
		spec.sign = ' '
	}
	switch {
	case st.Flag('-'):
		spec.align = '<'
	case st.Flag('0'):
		spec.fill, spec.align = '0', '='
	}
	fmt.Fprint(st, t.render(s, def.Plural, &spec))
}

func padState(st fmt.State, s string) string {
	w, ok := st.Width()
	if !ok {
		return s
	}
	spec := formatSpec{fill: ' ', prec: -1, width: w, align: '>'}
	if st.Flag('-') {
		spec.align = '<'
	}
	return spec.formatString(s)
}
