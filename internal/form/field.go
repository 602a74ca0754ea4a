// Package form describes task form fields and resolves submitted values.
//
// A field can be a free-text input, a single-choice select, a checkbox or a
// radio group. Resolve turns a submission into a raw value, used for
// validation, and a display value, which is what gets stored and shown.
package form

import (
	"net/url"
	"strings"
	"unicode"
)

// Kind identifies the input element behind a field.
type Kind string

const (
	KindText     Kind = "text"
	KindSelect   Kind = "select"
	KindCheckbox Kind = "checkbox"
	KindRadio    Kind = "radio"
)

// Field identifiers. They double as form parameter names.
const (
	FieldName1 = "name1"
	FieldName2 = "name2"
	FieldDate  = "date"
)

// DefaultPlaceholder is the select value treated as "nothing chosen".
const DefaultPlaceholder = "empty"

// Display literals for a checkbox without a label.
const (
	CheckboxYes = "Sí"
	CheckboxNo  = "No"
)

// Option is one choice of a select or one member of a radio group.
type Option struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Text returns the label, or the value when the option has no label.
func (o Option) Text() string {
	if o.Label != "" {
		return o.Label
	}
	return o.Value
}

// Field describes one form input.
type Field struct {
	// ID is the form parameter name; set from the layout slot, not from YAML.
	ID string `yaml:"-"`

	Label string `yaml:"label"`
	Kind  Kind   `yaml:"kind"`

	// Options lists select choices or radio members.
	Options []Option `yaml:"options"`

	// Placeholder is the select value meaning "nothing chosen".
	Placeholder string `yaml:"placeholder"`

	// RequiredMessage overrides the default required-field message.
	RequiredMessage string `yaml:"required_message"`
}

// Value is a resolved submission for one field.
type Value struct {
	// Raw is the underlying value used for required checks. Empty means
	// missing.
	Raw string

	// Display is the human-readable text persisted and rendered.
	Display string
}

// Resolve extracts the raw and display values of f from values.
func Resolve(f Field, values url.Values) Value {
	submitted := values.Get(f.ID)

	switch f.Kind {
	case KindSelect:
		if submitted == "" || submitted == f.placeholder() {
			return Value{}
		}
		opt, ok := f.option(submitted)
		if !ok {
			return Value{}
		}
		return Value{Raw: opt.Value, Display: opt.Text()}

	case KindCheckbox:
		if submitted == "" {
			return Value{Display: CheckboxNo}
		}
		if f.Label != "" {
			return Value{Raw: "true", Display: f.Label}
		}
		return Value{Raw: "true", Display: CheckboxYes}

	case KindRadio:
		if submitted == "" {
			return Value{}
		}
		opt, ok := f.option(submitted)
		if !ok {
			return Value{}
		}
		return Value{Raw: opt.Value, Display: opt.Text()}

	default:
		text := strings.TrimSpace(stripControl(submitted))
		return Value{Raw: text, Display: text}
	}
}

// stripControl drops control characters, NUL included, which no text input
// can type and some stores reject.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// InputType returns the HTML input type for a text field.
func (f Field) InputType() string {
	if f.ID == FieldDate {
		return "date"
	}
	return "text"
}

// IsPlaceholder reports whether o is the select's "nothing chosen" option.
func (f Field) IsPlaceholder(o Option) bool {
	return f.Kind == KindSelect && o.Value == f.placeholder()
}

func (f Field) placeholder() string {
	if f.Placeholder != "" {
		return f.Placeholder
	}
	return DefaultPlaceholder
}

func (f Field) option(value string) (Option, bool) {
	for _, o := range f.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}
