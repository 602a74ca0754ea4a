package form

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/JamesPrial/tasklist/internal/storage"
)

// DefaultSlug names the page used when a layout doesn't name one.
const DefaultSlug = "default"

var slugRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Fields holds the three inputs of a task form.
type Fields struct {
	Name1 Field `yaml:"name1"`
	Name2 Field `yaml:"name2"`
	Date  Field `yaml:"date"`
}

// All returns the fields in validation order.
func (f Fields) All() []Field {
	return []Field{f.Name1, f.Name2, f.Date}
}

// Page is one task list page: a form, a table and the storage key they use.
type Page struct {
	Slug  string `yaml:"slug"`
	Title string `yaml:"title"`

	// Storage is the storage key; empty falls back to storage.DefaultKey.
	Storage string `yaml:"storage"`

	// Table controls whether the page renders its task table. Nil means yes.
	Table *bool `yaml:"table"`

	Fields Fields `yaml:"fields"`
}

// StorageKey returns the key the page's list is stored under.
func (p Page) StorageKey() string {
	if k := strings.TrimSpace(p.Storage); k != "" {
		return k
	}
	return storage.DefaultKey
}

// ShowTable reports whether the page has a task table.
func (p Page) ShowTable() bool {
	return p.Table == nil || *p.Table
}

// Layout is the set of pages served by one process.
type Layout struct {
	Pages []Page `yaml:"pages"`
}

// DefaultLayout returns a single text/text/date page stored under
// storage.DefaultKey.
func DefaultLayout() *Layout {
	l := &Layout{Pages: []Page{{}}}
	if err := l.normalize(); err != nil {
		// The zero page always normalizes.
		panic(err)
	}
	return l
}

// ParseLayout decodes a YAML layout and applies defaults.
//
// Unknown keys are rejected so typos in field names surface immediately.
func ParseLayout(r io.Reader) (*Layout, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var l Layout
	if err := dec.Decode(&l); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("layout has no pages")
		}
		return nil, fmt.Errorf("failed to decode layout: %w", err)
	}

	if err := l.normalize(); err != nil {
		return nil, err
	}
	return &l, nil
}

// LoadLayout reads a YAML layout file.
//
// If path is empty or the file doesn't exist and optional is true, the
// default layout is returned.
func LoadLayout(path string, optional bool) (*Layout, error) {
	if path == "" {
		return DefaultLayout(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return DefaultLayout(), nil
		}
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}

	l, err := ParseLayout(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Page returns the page with the given slug. An empty slug selects the first
// page.
func (l *Layout) Page(slug string) (Page, bool) {
	if slug == "" && len(l.Pages) > 0 {
		return l.Pages[0], true
	}
	for _, p := range l.Pages {
		if p.Slug == slug {
			return p, true
		}
	}
	return Page{}, false
}

func (l *Layout) normalize() error {
	if len(l.Pages) == 0 {
		return fmt.Errorf("layout has no pages")
	}

	seen := make(map[string]bool, len(l.Pages))
	for i := range l.Pages {
		p := &l.Pages[i]

		p.Slug = strings.TrimSpace(p.Slug)
		if p.Slug == "" {
			if i > 0 {
				return fmt.Errorf("page %d: slug is required", i+1)
			}
			p.Slug = DefaultSlug
		}
		if !slugRegex.MatchString(p.Slug) {
			return fmt.Errorf("page %q: slug must be lowercase letters, digits, '-' or '_'", p.Slug)
		}
		if seen[p.Slug] {
			return fmt.Errorf("page %q: duplicate slug", p.Slug)
		}
		seen[p.Slug] = true

		if p.Title == "" {
			p.Title = "Tareas"
		}

		if err := normalizeField(&p.Fields.Name1, FieldName1, "Nombre"); err != nil {
			return fmt.Errorf("page %q: %w", p.Slug, err)
		}
		if err := normalizeField(&p.Fields.Name2, FieldName2, "Descripción"); err != nil {
			return fmt.Errorf("page %q: %w", p.Slug, err)
		}
		if err := normalizeField(&p.Fields.Date, FieldDate, "Fecha"); err != nil {
			return fmt.Errorf("page %q: %w", p.Slug, err)
		}
		if p.Fields.Date.Kind != KindText {
			return fmt.Errorf("page %q: date field must be a text input, got %q", p.Slug, p.Fields.Date.Kind)
		}
	}

	return nil
}

func normalizeField(f *Field, id, label string) error {
	f.ID = id
	if f.Label == "" {
		f.Label = label
	}
	if f.Kind == "" {
		f.Kind = KindText
	}

	switch f.Kind {
	case KindText, KindCheckbox:
		if len(f.Options) > 0 {
			return fmt.Errorf("field %s: options are only valid for select and radio", id)
		}
	case KindSelect, KindRadio:
		if len(f.Options) == 0 {
			return fmt.Errorf("field %s: %s needs at least one option", id, f.Kind)
		}
	default:
		return fmt.Errorf("field %s: unknown kind %q", id, f.Kind)
	}

	return nil
}
