package monkeys

import (
	"context"
	"errors"
	"strings"
	"time"

	"monkey-social/internal/ports/store"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("monkey not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Save escribe el registro completo. Siempre marca lastActive = ahora; si no trae id
// se genera uno. Devuelve el registro tal como quedó guardado.
func (s *Service) Save(ctx context.Context, m Monkey) (Monkey, error) {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return Monkey{}, ErrInvalidInput
	}
	m.ID = strings.TrimSpace(m.ID)
	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	now := s.now().UnixMilli()
	m.LastActive = now
	if m.CreatedAt == 0 {
		m.CreatedAt = now
	}
	if m.Status == "" {
		m.Status = StatusActive
	}
	if m.Mood != nil {
		mood := m.Mood.Clamped()
		m.Mood = &mood
	}
	m.ActivityLog = TrimLog(m.ActivityLog)

	if err := s.repo.Save(ctx, m); err != nil {
		return Monkey{}, err
	}
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Monkey, error) {
	if strings.TrimSpace(id) == "" {
		return Monkey{}, ErrInvalidInput
	}
	m, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, errRecordNotFound) {
		return Monkey{}, ErrNotFound
	}
	return m, err
}

// List devuelve todos los monos, incluidos los que hibernan.
func (s *Service) List(ctx context.Context) ([]Monkey, error) {
	return s.repo.List(ctx)
}

// SubscribeAll entrega la colección completa ahora y en cada cambio.
func (s *Service) SubscribeAll(ctx context.Context, fn func([]Monkey)) (store.Cancel, error) {
	return s.repo.Watch(ctx, fn)
}
