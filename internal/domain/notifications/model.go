package notifications

import "monkey-social/internal/domain/monkeys"

type Type string

const (
	TypeAutoSocial  Type = "auto_social"
	TypeInteraction Type = "interaction"
)

// Notification vive en notifications/{ownerId}/{id}. Se agrega una vez y nunca se edita.
type Notification struct {
	// ID es la clave asignada por el store; no se persiste dentro del registro.
	ID         string      `json:"id,omitempty"`
	Type       Type        `json:"type"`
	FromMonkey monkeys.Ref `json:"fromMonkey"`
	Summary    string      `json:"summary"`
	Timestamp  int64       `json:"timestamp"` // ms epoch
}
