package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/dominion-roster/internal/domain"
	"github.com/spec-kit/dominion-roster/internal/events"
	"github.com/spec-kit/dominion-roster/internal/repository"
)

// BackupService mirrors the canonical roster into the backup blob and
// restores it during seeding. Mirroring is best-effort; a failed write is
// logged and the sync flow continues.
type BackupService struct {
	repo   repository.BackupRepository
	key    string
	logger *zap.Logger
}

// NewBackupService builds the service.
func NewBackupService(repo repository.BackupRepository, key string, logger *zap.Logger) *BackupService {
	return &BackupService{repo: repo, key: key, logger: logger}
}

// EncodeRoster serializes a member list to the backup blob format.
func EncodeRoster(members []domain.Member) (string, error) {
	payload, err := json.Marshal(members)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// DecodeRoster parses a backup blob back into a member list.
func DecodeRoster(payload string) ([]domain.Member, error) {
	var members []domain.Member
	if err := json.Unmarshal([]byte(payload), &members); err != nil {
		return nil, err
	}
	return members, nil
}

// Mirror writes the serialized roster to the backup key.
func (s *BackupService) Mirror(ctx context.Context, members []domain.Member) error {
	payload, err := EncodeRoster(members)
	if err != nil {
		return err
	}
	return s.repo.Set(ctx, s.key, payload)
}

// Restore returns the previously mirrored roster, or nil when no usable
// backup exists.
func (s *BackupService) Restore(ctx context.Context) ([]domain.Member, error) {
	payload, found, err := s.repo.Get(ctx, s.key)
	if err != nil {
		return nil, err
	}
	if !found || payload == "" {
		return nil, nil
	}
	members, err := DecodeRoster(payload)
	if err != nil {
		s.logger.Warn("ignoring unreadable roster backup", zap.Error(err))
		return nil, nil
	}
	return members, nil
}

// RegisterHandlers wires the mirror onto roster sync events.
func (s *BackupService) RegisterHandlers(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventRosterSynced, func(ctx context.Context, event events.Event) error {
		payload, ok := event.Payload.(events.RosterSyncedPayload)
		if !ok {
			return nil
		}
		if err := s.Mirror(ctx, payload.Members); err != nil {
			s.logger.Warn("roster backup mirror failed", zap.Error(err))
		}
		return nil
	})
}
