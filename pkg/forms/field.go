// Package forms models the reusable input primitive every form in the
// application is built from: one field abstraction that renders as a
// text-like input, a select, or a textarea, with an explicit controlled or
// uncontrolled value mode chosen at construction time.
package forms

import (
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
)

// Kind discriminates the rendering target of a field. Kinds other than
// select and textarea behave as text-like inputs (text, number, date, ...).
type Kind string

const (
	KindText     Kind = "text"
	KindNumber   Kind = "number"
	KindDate     Kind = "date"
	KindSelect   Kind = "select"
	KindTextarea Kind = "textarea"
)

// Mode is fixed for the lifetime of a field.
type Mode int

const (
	// Uncontrolled fields own their value state internally.
	Uncontrolled Mode = iota
	// Controlled fields display exactly the caller-supplied value; the
	// caller re-supplies it in response to change events.
	Controlled
)

var (
	// ErrUncontrolled is returned when a caller tries to drive the value of
	// a field that owns its own state.
	ErrUncontrolled = errors.New("forms: field is uncontrolled, value is component-owned")
)

var idCounter atomic.Int64

// Option is a select choice. An Option whose Value is the empty string
// renders disabled, which represents a placeholder that cannot be
// re-selected once past.
type Option struct {
	Label string
	Value string
}

// Opt builds an Option whose label and value are the same string.
func Opt(s string) Option {
	return Option{Label: s, Value: s}
}

// Disabled reports whether the option is selectable.
func (o Option) Disabled() bool {
	return o.Value == ""
}

// Field is a single rendered input instance. Not safe for concurrent use;
// like the UI it models, a field belongs to one event loop.
type Field struct {
	kind     Kind
	mode     Mode
	id       string
	label    string
	value    string
	typed    any
	onChange func(string)
	focused  bool
	options  []Option
	attrs    map[string]string
}

// FieldOption configures a field at construction time.
type FieldOption func(*Field)

// WithLabel associates a label. A field without a label renders none.
func WithLabel(label string) FieldOption {
	return func(f *Field) { f.label = label }
}

// WithID overrides the generated element id.
func WithID(id string) FieldOption {
	return func(f *Field) { f.id = id }
}

// WithOptions sets the select choices.
func WithOptions(options ...Option) FieldOption {
	return func(f *Field) { f.options = options }
}

// WithAttr forwards an arbitrary attribute verbatim to the rendering target.
func WithAttr(key, value string) FieldOption {
	return func(f *Field) {
		if f.attrs == nil {
			f.attrs = make(map[string]string)
		}
		f.attrs[key] = value
	}
}

// NewUncontrolled builds a field that owns its value state, seeded from
// initial. onChange, when non-nil, still fires on every change event.
func NewUncontrolled(kind Kind, initial any, onChange func(string), opts ...FieldOption) *Field {
	f := newField(kind, Uncontrolled, initial, onChange, opts)
	return f
}

// NewControlled builds a field whose displayed value is always the last one
// supplied by the caller. The caller updates it via SetValue in response to
// onChange.
func NewControlled(kind Kind, value any, onChange func(string), opts ...FieldOption) *Field {
	return newField(kind, Controlled, value, onChange, opts)
}

func newField(kind Kind, mode Mode, value any, onChange func(string), opts []FieldOption) *Field {
	f := &Field{
		kind:     kind,
		mode:     mode,
		value:    coerce(value),
		typed:    value,
		onChange: onChange,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.id == "" {
		f.id = fmt.Sprintf("field-%d", idCounter.Add(1))
	}
	return f
}

// HandleChange processes a change event carrying the new raw value. The
// caller's onChange always fires first, exactly once, regardless of mode;
// only then does an uncontrolled field update its internal state.
func (f *Field) HandleChange(value string) {
	if f.onChange != nil {
		f.onChange(value)
	}
	if f.mode == Uncontrolled {
		f.value = value
		f.typed = value
	}
}

// SetValue re-supplies the displayed value of a controlled field. The typed
// value is preserved for the caller; display always uses its string form.
func (f *Field) SetValue(value any) error {
	if f.mode != Controlled {
		return ErrUncontrolled
	}
	f.value = coerce(value)
	f.typed = value
	return nil
}

// Value returns the displayed value.
func (f *Field) Value() string {
	return f.value
}

// TypedValue returns the last supplied value before string coercion.
func (f *Field) TypedValue() any {
	return f.typed
}

// Mode returns the value-ownership mode fixed at construction.
func (f *Field) Mode() Mode {
	return f.mode
}

// Kind returns the rendering kind.
func (f *Field) Kind() Kind {
	return f.kind
}

// ID returns the element id used for label association.
func (f *Field) ID() string {
	return f.id
}

// Label returns the label text; empty means no label element is rendered.
func (f *Field) Label() string {
	return f.label
}

// HasLabel reports whether a label element should render at all.
func (f *Field) HasLabel() bool {
	return f.label != ""
}

// Options returns the select choices.
func (f *Field) Options() []Option {
	return f.options
}

// Attrs returns the opaque attribute map forwarded to the rendering target.
func (f *Field) Attrs() map[string]string {
	return f.attrs
}

// Focus marks the field focused. Clicking the associated label focuses the
// underlying control, so label clicks route here too.
func (f *Field) Focus() {
	f.focused = true
}

// Blur clears focus.
func (f *Field) Blur() {
	f.focused = false
}

// Focused reports current focus state.
func (f *Field) Focused() bool {
	return f.focused
}

// LabelActive reports whether the label shows its "active" visual state:
// focused, holding a non-empty value, or a select (which always has a
// selected value).
func (f *Field) LabelActive() bool {
	return f.focused || f.value != "" || f.kind == KindSelect
}

// coerce renders any supplied value as its display string. Numeric and
// boolean values become their canonical text form; nil becomes empty.
func coerce(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
