package companion

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

type Outcome string

const (
	OutcomePositive Outcome = "positive"
	OutcomeNeutral  Outcome = "neutral"
	OutcomeNegative Outcome = "negative"
)

type DialogueLine struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
	Action  string `json:"action,omitempty"`
}

// Interaction es el guion de un encuentro entre dos monos.
type Interaction struct {
	Dialogue        []DialogueLine `json:"dialogue"`
	Outcome         Outcome        `json:"outcome"`
	RelationChange  int            `json:"relationChange"`
	Summary         string         `json:"summary"`
	NewSharedMemory string         `json:"newSharedMemory,omitempty"`
}

type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// InteractionOutcome indica si el guion vino del modelo o es el de respaldo, y por qué.
type InteractionOutcome struct {
	Interaction
	Source Source `json:"source"`
	Cause  error  `json:"-"`
}

var (
	ErrEmptyReply    = errors.New("companion: empty reply")
	ErrNoDialogue    = errors.New("companion: reply has no dialogue")
	ErrMalformedJSON = errors.New("companion: malformed interaction json")
)

// FallbackInteraction es el saludo fijo que se usa cuando no hay guion del modelo.
func FallbackInteraction(meName, otherName string) Interaction {
	return Interaction{
		Dialogue: []DialogueLine{
			{Speaker: meName, Text: "你好呀！", Action: "开心地挥手"},
			{Speaker: otherName, Text: "你好~", Action: "友好地回应"},
		},
		Outcome:        OutcomePositive,
		RelationChange: 1,
		Summary:        "两只猴子友好地打了招呼",
	}
}

type interactionWire struct {
	Dialogue        []DialogueLine `json:"dialogue"`
	Outcome         string         `json:"outcome"`
	RelationChange  json.Number    `json:"relationChange"`
	Summary         string         `json:"summary"`
	NewSharedMemory string         `json:"newSharedMemory"`
}

// ParseInteraction interpreta la respuesta del modelo. Acepta el JSON suelto o dentro de
// un bloque ```json. relationChange puede venir con decimales y se redondea.
func ParseInteraction(reply string) (Interaction, error) {
	body := extractJSON(reply)
	if body == "" {
		return Interaction{}, ErrEmptyReply
	}

	var w interactionWire
	if err := json.Unmarshal([]byte(body), &w); err != nil {
		return Interaction{}, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	if len(w.Dialogue) == 0 {
		return Interaction{}, ErrNoDialogue
	}

	change := 0
	if w.RelationChange != "" {
		f, err := w.RelationChange.Float64()
		if err != nil {
			return Interaction{}, fmt.Errorf("%w: relationChange %q", ErrMalformedJSON, w.RelationChange)
		}
		change = int(math.Round(f))
	}

	out := Interaction{
		Dialogue:        w.Dialogue,
		Outcome:         normalizeOutcome(w.Outcome),
		RelationChange:  change,
		Summary:         strings.TrimSpace(w.Summary),
		NewSharedMemory: strings.TrimSpace(w.NewSharedMemory),
	}
	return out, nil
}

func normalizeOutcome(s string) Outcome {
	switch Outcome(strings.ToLower(strings.TrimSpace(s))) {
	case OutcomePositive:
		return OutcomePositive
	case OutcomeNegative:
		return OutcomeNegative
	default:
		return OutcomeNeutral
	}
}

func extractJSON(reply string) string {
	s := strings.TrimSpace(reply)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimPrefix(s, "json")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	return s
}
