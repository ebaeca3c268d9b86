package relations

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrInvalidInput = errors.New("invalid input")

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

// Save reemplaza la arista owner -> friend. El nivel se recorta a [0,5].
func (s *Service) Save(ctx context.Context, ownerID, friendID string, r Relation) (Relation, error) {
	ownerID, friendID = strings.TrimSpace(ownerID), strings.TrimSpace(friendID)
	if ownerID == "" || friendID == "" || ownerID == friendID {
		return Relation{}, ErrInvalidInput
	}
	r.FriendID = friendID
	r.Level = ClampLevel(r.Level)
	r.SharedMemory = strings.TrimSpace(r.SharedMemory)
	r.UpdatedAt = s.now().UnixMilli()

	if err := s.repo.Save(ctx, ownerID, r); err != nil {
		return Relation{}, err
	}
	return r, nil
}

// Get devuelve la arista o una relación de nivel 0 si nunca se guardó.
func (s *Service) Get(ctx context.Context, ownerID, friendID string) (Relation, error) {
	r, ok, err := s.repo.Get(ctx, ownerID, friendID)
	if err != nil {
		return Relation{}, err
	}
	if !ok {
		return Relation{FriendID: friendID, Level: LevelStranger}, nil
	}
	return r, nil
}

// List devuelve las relaciones del dueño; lista vacía si no tiene ninguna.
func (s *Service) List(ctx context.Context, ownerID string) ([]Relation, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

// Apply aplica el resultado de una interacción: delta de nivel y, si viene, un recuerdo nuevo.
func (s *Service) Apply(ctx context.Context, ownerID, friendID, friendName string, delta int, memory string) (Relation, error) {
	cur, err := s.Get(ctx, ownerID, friendID)
	if err != nil {
		return Relation{}, err
	}
	cur.Level = ApplyChange(cur.Level, delta)
	if friendName != "" {
		cur.FriendName = friendName
	}
	if m := strings.TrimSpace(memory); m != "" {
		cur.SharedMemory = m
	}
	return s.Save(ctx, ownerID, friendID, cur)
}
