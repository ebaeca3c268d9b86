package companion

import (
	"context"
	"strings"

	"monkey-social/internal/domain/monkeys"
	"monkey-social/internal/domain/relations"
	"monkey-social/internal/platform/logger"
	"monkey-social/internal/ports/completion"
)

// WelcomeInput resume lo que pasó mientras el dueño no estaba.
type WelcomeInput struct {
	HoursAway float64  `json:"hoursAway"`
	Events    []string `json:"events"`
}

type Service struct {
	completer completion.Completer
	log       logger.Logger
}

func NewService(c completion.Completer, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{completer: c, log: log}
}

func (s *Service) ask(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return s.completer.Complete(ctx, []completion.Message{
		{Role: completion.RoleUser, Content: prompt},
	}, maxTokens)
}

// Personality describe al mono en una frase; nunca falla.
func (s *Service) Personality(ctx context.Context, traits monkeys.Traits) string {
	text, err := s.ask(ctx, personalityPrompt(traits), personalityMaxTokens)
	if err != nil {
		s.log.Warn("personality fallback", map[string]any{"err": err})
		return DefaultPersonality
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return DefaultPersonality
	}
	return text
}

// Welcome genera el saludo al volver el dueño. Sin respuesta devuelve completion.ErrNoResult.
func (s *Service) Welcome(ctx context.Context, m monkeys.Monkey, in WelcomeInput) (string, error) {
	text, err := s.ask(ctx, welcomePrompt(m, in), welcomeMaxTokens)
	if err != nil {
		s.log.Warn("welcome failed", map[string]any{"err": err, "monkey": m.ID})
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Interaction pide el guion del encuentro. Ante cualquier fallo devuelve el saludo fijo
// marcado como SourceFallback con la causa.
func (s *Service) Interaction(ctx context.Context, me, other monkeys.Monkey, kind string, rel relations.Relation) InteractionOutcome {
	reply, err := s.ask(ctx, interactionPrompt(me, other, kind, rel), interactionMaxTokens)
	if err == nil {
		var parsed Interaction
		parsed, err = ParseInteraction(reply)
		if err == nil {
			return InteractionOutcome{Interaction: parsed, Source: SourceModel}
		}
	}

	s.log.Warn("interaction fallback", map[string]any{"err": err, "me": me.ID, "other": other.ID})
	return InteractionOutcome{
		Interaction: FallbackInteraction(me.Name, other.Name),
		Source:      SourceFallback,
		Cause:       err,
	}
}
