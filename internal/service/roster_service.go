package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/dominion-roster/internal/domain"
	"github.com/spec-kit/dominion-roster/internal/events"
	"github.com/spec-kit/dominion-roster/internal/observability"
	"github.com/spec-kit/dominion-roster/internal/store"
	apperrors "github.com/spec-kit/dominion-roster/pkg/util/errorutil"
)

// SyncState tracks the synchronizer lifecycle.
type SyncState string

const (
	StateDisconnected SyncState = "DISCONNECTED"
	StateSyncing      SyncState = "SYNCING"
	StateSynced       SyncState = "SYNCED"
)

// MemberInput carries member fields for create and edit calls. Nil pointers
// mean "field not supplied" so edits patch only what the caller sent.
type MemberInput struct {
	Name            *string
	Group           *string
	LineName        *string
	SeasonalHistory []domain.SeasonalStatus
}

// RosterDependencies bundles collaborator requirements for the roster service.
type RosterDependencies struct {
	Store      store.MemberStore
	Backup     *BackupService
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// RosterService owns the canonical in-memory member list. The list is only
// ever replaced by the snapshot handler; every mutation entry point writes
// through the store and waits for the next snapshot to observe its effect.
type RosterService struct {
	store      store.MemberStore
	backup     *BackupService
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	seasons    []string
	presets    []string
	newID      func() string

	mu          sync.RWMutex
	members     []domain.Member
	state       SyncState
	unsubscribe store.Unsubscribe
}

// NewRosterService builds the service for the given season list.
func NewRosterService(seasons []string, deps RosterDependencies) *RosterService {
	return &RosterService{
		store:      deps.Store,
		backup:     deps.Backup,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		seasons:    seasons,
		presets:    domain.PresetMemberNames,
		newID:      uuid.NewString,
		state:      StateDisconnected,
	}
}

// Start opens the persistent store subscription. The initial snapshot is
// delivered synchronously, so a non-empty store leaves the service Synced on
// return.
func (s *RosterService) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.unsubscribe != nil {
		s.mu.Unlock()
		return nil
	}
	s.state = StateSyncing
	s.mu.Unlock()

	unsubscribe, err := s.store.Subscribe(ctx, func(snapshot store.Snapshot) {
		s.handleSnapshot(ctx, snapshot)
	})
	if err != nil {
		s.mu.Lock()
		s.state = StateDisconnected
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.unsubscribe = unsubscribe
	s.mu.Unlock()
	return nil
}

// Stop ends the subscription; no further snapshots are applied.
func (s *RosterService) Stop() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.state = StateDisconnected
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// State reports the current sync state.
func (s *RosterService) State() SyncState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Seasons returns the configured season list.
func (s *RosterService) Seasons() []string {
	return append([]string{}, s.seasons...)
}

// Members returns a copy of the canonical list.
func (s *RosterService) Members() []domain.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Member{}, s.members...)
}

// handleSnapshot is the single writer of the canonical list. An empty
// snapshot triggers seeding and leaves in-memory state untouched; the seeded
// documents come back through the next snapshot.
func (s *RosterService) handleSnapshot(ctx context.Context, snapshot store.Snapshot) {
	if len(snapshot) == 0 {
		s.seed(ctx)
		return
	}

	members := make([]domain.Member, 0, len(snapshot))
	for id, member := range snapshot {
		member.ID = id
		if member.Name == "" {
			member.Name = domain.DefaultName
		}
		if member.Group == "" {
			member.Group = domain.DefaultGroup
		}
		member.SeasonalHistory = domain.NormalizeHistory(member.SeasonalHistory, s.seasons)
		members = append(members, member)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })

	s.mu.Lock()
	s.members = members
	s.state = StateSynced
	s.mu.Unlock()

	s.metrics.RecordSnapshot()
	s.publish(ctx, events.EventRosterSynced, events.RosterSyncedPayload{
		Members: append([]domain.Member{}, members...),
	})
}

// seed populates an empty store, preferring the backup blob over presets.
func (s *RosterService) seed(ctx context.Context) {
	s.metrics.RecordSeed()

	if s.backup != nil {
		restored, err := s.backup.Restore(ctx)
		if err != nil {
			s.logger.Warn("roster backup restore failed", zap.Error(err))
		}
		if len(restored) > 0 {
			s.logger.Info("seeding store from backup", zap.Int("count", len(restored)))
			for _, member := range restored {
				if err := s.store.Set(ctx, member); err != nil {
					s.logger.Warn("seed write failed",
						zap.String("member_id", member.ID), zap.Error(err))
				}
			}
			s.publish(ctx, events.EventRosterSeeded, events.RosterSeededPayload{
				Source: events.SeedSourceBackup,
				Count:  len(restored),
			})
			return
		}
	}

	s.logger.Info("seeding store from preset roster", zap.Int("count", len(s.presets)))
	for _, name := range s.presets {
		member := domain.Member{
			ID:              s.newID(),
			Name:            name,
			Group:           domain.DefaultGroup,
			LineName:        "",
			SeasonalHistory: domain.EmptyHistory(s.seasons),
		}
		if err := s.store.Set(ctx, member); err != nil {
			s.logger.Warn("seed write failed", zap.String("name", name), zap.Error(err))
		}
	}
	s.publish(ctx, events.EventRosterSeeded, events.RosterSeededPayload{
		Source: events.SeedSourcePresets,
		Count:  len(s.presets),
	})
}

// AddOrUpdateMember creates a member, or patches the supplied fields when
// editingID is given.
func (s *RosterService) AddOrUpdateMember(ctx context.Context, role domain.Role, input MemberInput, editingID string) (string, error) {
	if !role.CanEdit() {
		return "", apperrors.NewForbidden("admin role required")
	}

	if input.Group != nil && !domain.ValidGroup(*input.Group) {
		return "", apperrors.NewValidationError("invalid group", map[string]any{"group": *input.Group})
	}
	for _, entry := range input.SeasonalHistory {
		if !entry.Status.Valid() {
			return "", apperrors.NewValidationError("invalid status", map[string]any{"status": string(entry.Status)})
		}
	}

	if editingID != "" {
		fields := make(map[string]any)
		if input.Name != nil {
			fields["name"] = *input.Name
		}
		if input.Group != nil {
			fields["group"] = *input.Group
		}
		if input.LineName != nil {
			fields["lineName"] = *input.LineName
		}
		if input.SeasonalHistory != nil {
			fields["seasonalHistory"] = input.SeasonalHistory
		}
		if len(fields) == 0 {
			return "", apperrors.NewValidationError("no fields to update", nil)
		}
		if err := s.store.Update(ctx, editingID, fields); err != nil {
			return "", s.mapStoreError(err)
		}
		s.publish(ctx, events.EventMemberUpdated, events.MemberChangedPayload{MemberID: editingID})
		return editingID, nil
	}

	name := ""
	if input.Name != nil {
		name = strings.TrimSpace(*input.Name)
	}
	if name == "" {
		return "", apperrors.NewValidationError("member name required", nil)
	}

	member := domain.Member{
		ID:              s.newID(),
		Name:            name,
		Group:           domain.DefaultGroup,
		LineName:        "",
		SeasonalHistory: domain.NormalizeHistory(input.SeasonalHistory, s.seasons),
	}
	if input.Group != nil {
		member.Group = *input.Group
	}
	if input.LineName != nil {
		member.LineName = *input.LineName
	}

	if err := s.store.Set(ctx, member); err != nil {
		return "", apperrors.MapError(err)
	}
	s.publish(ctx, events.EventMemberCreated, events.MemberChangedPayload{MemberID: member.ID})
	return member.ID, nil
}

// UpdateStatus replaces or appends the season entry in the member's history
// and patches the full history array. The whole array is rewritten on every
// call so the store never needs a per-season sub-path scheme.
func (s *RosterService) UpdateStatus(ctx context.Context, role domain.Role, memberID, season string, status domain.DominionStatus) error {
	if !role.CanEdit() {
		return apperrors.NewForbidden("admin role required")
	}
	if !status.Valid() {
		return apperrors.NewValidationError("invalid status", map[string]any{"status": string(status)})
	}

	member, ok := s.findMember(memberID)
	if !ok {
		return apperrors.NewNotFound("member", map[string]any{"id": memberID})
	}

	history := append([]domain.SeasonalStatus{}, member.SeasonalHistory...)
	replaced := false
	for i := range history {
		if history[i].Season == season {
			history[i].Status = status
			replaced = true
			break
		}
	}
	if !replaced {
		history = append(history, domain.SeasonalStatus{Season: season, Status: status})
	}

	if err := s.store.Update(ctx, memberID, map[string]any{"seasonalHistory": history}); err != nil {
		return s.mapStoreError(err)
	}
	s.publish(ctx, events.EventMemberUpdated, events.MemberChangedPayload{
		MemberID: memberID, Field: "seasonalHistory",
	})
	return nil
}

// UpdateGroup patches the member's group symbol.
func (s *RosterService) UpdateGroup(ctx context.Context, role domain.Role, memberID, group string) error {
	if !role.CanEdit() {
		return apperrors.NewForbidden("admin role required")
	}
	if !domain.ValidGroup(group) {
		return apperrors.NewValidationError("invalid group", map[string]any{"group": group})
	}
	if err := s.store.Update(ctx, memberID, map[string]any{"group": group}); err != nil {
		return s.mapStoreError(err)
	}
	s.publish(ctx, events.EventMemberUpdated, events.MemberChangedPayload{
		MemberID: memberID, Field: "group",
	})
	return nil
}

// UpdateLineName patches the member's line contact name.
func (s *RosterService) UpdateLineName(ctx context.Context, role domain.Role, memberID, lineName string) error {
	if !role.CanEdit() {
		return apperrors.NewForbidden("admin role required")
	}
	if err := s.store.Update(ctx, memberID, map[string]any{"lineName": lineName}); err != nil {
		return s.mapStoreError(err)
	}
	s.publish(ctx, events.EventMemberUpdated, events.MemberChangedPayload{
		MemberID: memberID, Field: "lineName",
	})
	return nil
}

// RemoveMember deletes the member document.
func (s *RosterService) RemoveMember(ctx context.Context, role domain.Role, memberID string) error {
	if !role.CanEdit() {
		return apperrors.NewForbidden("admin role required")
	}
	if err := s.store.Remove(ctx, memberID); err != nil {
		return s.mapStoreError(err)
	}
	s.publish(ctx, events.EventMemberRemoved, events.MemberChangedPayload{MemberID: memberID})
	return nil
}

func (s *RosterService) findMember(id string) (domain.Member, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, member := range s.members {
		if member.ID == id {
			return member, true
		}
	}
	return domain.Member{}, false
}

func (s *RosterService) mapStoreError(err error) error {
	if err == store.ErrNotFound {
		return apperrors.NewNotFound("member", nil)
	}
	return apperrors.MapError(err)
}

func (s *RosterService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        s.newID(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
