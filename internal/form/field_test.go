package form_test

import (
	"net/url"
	"testing"

	"github.com/JamesPrial/tasklist/internal/form"
)

func categoryField() form.Field {
	return form.Field{
		ID:   form.FieldName1,
		Kind: form.KindSelect,
		Options: []form.Option{
			{Value: "empty", Label: "-- Elige --"},
			{Value: "med", Label: "Médico"},
			{Value: "gym", Label: ""},
		},
	}
}

func Test_Resolve_Cases(t *testing.T) {
	t.Parallel()

	radio := form.Field{
		ID:   form.FieldName2,
		Kind: form.KindRadio,
		Options: []form.Option{
			{Value: "am", Label: "Mañana"},
			{Value: "pm"},
		},
	}
	checkbox := form.Field{ID: form.FieldName2, Kind: form.KindCheckbox, Label: "Urgente"}
	bareCheckbox := form.Field{ID: form.FieldName2, Kind: form.KindCheckbox}
	text := form.Field{ID: form.FieldName1, Kind: form.KindText}

	tests := []struct {
		name   string
		field  form.Field
		values url.Values
		want   form.Value
	}{
		{"text trimmed", text, url.Values{"name1": {"  Ana  "}}, form.Value{Raw: "Ana", Display: "Ana"}},
		{"text whitespace only", text, url.Values{"name1": {"   "}}, form.Value{}},
		{"text missing", text, url.Values{}, form.Value{}},
		{"text NUL stripped", text, url.Values{"name1": {"A\x00na"}}, form.Value{Raw: "Ana", Display: "Ana"}},
		{"text control characters stripped", text, url.Values{"name1": {"\tLu\x1bis\x7f\n"}}, form.Value{Raw: "Luis", Display: "Luis"}},
		{"text only control characters is empty", text, url.Values{"name1": {"\x00\x01"}}, form.Value{}},
		{"kindless field behaves as text", form.Field{ID: "name1"}, url.Values{"name1": {" x "}}, form.Value{Raw: "x", Display: "x"}},

		{"select uses option label", categoryField(), url.Values{"name1": {"med"}}, form.Value{Raw: "med", Display: "Médico"}},
		{"select option without label shows value", categoryField(), url.Values{"name1": {"gym"}}, form.Value{Raw: "gym", Display: "gym"}},
		{"select placeholder is empty", categoryField(), url.Values{"name1": {"empty"}}, form.Value{}},
		{"select nothing chosen", categoryField(), url.Values{}, form.Value{}},
		{"select unknown value", categoryField(), url.Values{"name1": {"hacked"}}, form.Value{}},

		{"checkbox checked uses label", checkbox, url.Values{"name2": {"on"}}, form.Value{Raw: "true", Display: "Urgente"}},
		{"checkbox unchecked", checkbox, url.Values{}, form.Value{Raw: "", Display: "No"}},
		{"checkbox without label checked", bareCheckbox, url.Values{"name2": {"on"}}, form.Value{Raw: "true", Display: "Sí"}},
		{"checkbox without label unchecked", bareCheckbox, url.Values{}, form.Value{Raw: "", Display: "No"}},

		{"radio member label", radio, url.Values{"name2": {"am"}}, form.Value{Raw: "am", Display: "Mañana"}},
		{"radio member without label shows raw", radio, url.Values{"name2": {"pm"}}, form.Value{Raw: "pm", Display: "pm"}},
		{"radio none checked", radio, url.Values{}, form.Value{}},
		{"radio unknown member", radio, url.Values{"name2": {"night"}}, form.Value{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := form.Resolve(tt.field, tt.values)
			if got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func Test_Resolve_CustomPlaceholder(t *testing.T) {
	t.Parallel()

	f := categoryField()
	f.Placeholder = "none"
	f.Options = append(f.Options, form.Option{Value: "none", Label: "Ninguna"})

	if got := form.Resolve(f, url.Values{"name1": {"none"}}); got.Raw != "" {
		t.Errorf("custom placeholder resolved to %+v, want empty raw", got)
	}
	// With a custom placeholder, "empty" is an ordinary option again.
	if got := form.Resolve(f, url.Values{"name1": {"empty"}}); got.Raw != "empty" {
		t.Errorf("\"empty\" option resolved to %+v, want raw \"empty\"", got)
	}
}

func Test_Field_InputType(t *testing.T) {
	t.Parallel()

	if got := (form.Field{ID: form.FieldDate}).InputType(); got != "date" {
		t.Errorf("date InputType() = %q, want date", got)
	}
	if got := (form.Field{ID: form.FieldName1}).InputType(); got != "text" {
		t.Errorf("name1 InputType() = %q, want text", got)
	}
}

func Test_Field_IsPlaceholder(t *testing.T) {
	t.Parallel()

	f := categoryField()
	if !f.IsPlaceholder(f.Options[0]) {
		t.Error("IsPlaceholder(empty option) = false, want true")
	}
	if f.IsPlaceholder(f.Options[1]) {
		t.Error("IsPlaceholder(med option) = true, want false")
	}
}
