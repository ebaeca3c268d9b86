package notifications

import (
	"context"
	"errors"
	"strings"
	"time"

	"monkey-social/internal/ports/store"
)

var ErrInvalidInput = errors.New("invalid input")

// Retention es la ventana de vida de una notificación antes de que el job la pode.
const Retention = 7 * 24 * time.Hour

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

// Send agrega n a la bandeja de toOwnerID con timestamp = ahora y devuelve el id asignado.
func (s *Service) Send(ctx context.Context, toOwnerID string, n Notification) (Notification, error) {
	return s.SendAt(ctx, toOwnerID, n, s.now().UnixMilli())
}

// SendAt es Send con el timestamp (ms epoch) elegido por el llamador, p.ej. el reloj del tick.
func (s *Service) SendAt(ctx context.Context, toOwnerID string, n Notification, ts int64) (Notification, error) {
	if strings.TrimSpace(toOwnerID) == "" || strings.TrimSpace(n.Summary) == "" || n.Type == "" || ts <= 0 {
		return Notification{}, ErrInvalidInput
	}
	n.Timestamp = ts

	id, err := s.repo.Append(ctx, toOwnerID, n)
	if err != nil {
		return Notification{}, err
	}
	n.ID = id
	return n, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if strings.TrimSpace(ownerID) == "" || strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, ownerID, id)
}

// List devuelve la bandeja del dueño, más nueva primero.
func (s *Service) List(ctx context.Context, ownerID string) ([]Notification, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

// ListAll lee todas las bandejas (lo usa la poda del job).
func (s *Service) ListAll(ctx context.Context) (map[string][]Notification, error) {
	return s.repo.ListAll(ctx)
}

// Subscribe entrega la bandeja (más nueva primero) ahora y en cada cambio.
func (s *Service) Subscribe(ctx context.Context, ownerID string, fn func([]Notification)) (store.Cancel, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.WatchOwner(ctx, ownerID, fn)
}

// Expired indica si n quedó fuera de la ventana de retención en now (estrictamente más de 7 días).
func Expired(n Notification, now time.Time) bool {
	return now.UnixMilli()-n.Timestamp > Retention.Milliseconds()
}
