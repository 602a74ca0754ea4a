package tasklist

import "github.com/JamesPrial/tasklist/internal/form"

// User-facing messages.
const (
	MsgRequired       = "Este campo es obligatorio."
	MsgChooseCategory = "Selecciona una categoría válida."
	MsgChooseOption   = "Selecciona una opción válida."
	MsgDateRequired   = "La fecha es obligatoria."
	MsgDateNotFuture  = "La fecha debe ser hoy o futura."
	MsgDuplicate      = "Ya existe un registro con estos datos."
	MsgAdded          = "✅ Tarea añadida correctamente"
)

// requiredMessage returns the message shown when f has no value.
func requiredMessage(f form.Field) string {
	if f.RequiredMessage != "" {
		return f.RequiredMessage
	}

	switch {
	case f.ID == form.FieldDate:
		return MsgDateRequired
	case f.Kind == form.KindSelect && f.ID == form.FieldName1:
		return MsgChooseCategory
	case f.Kind == form.KindText:
		return MsgRequired
	default:
		return MsgChooseOption
	}
}
