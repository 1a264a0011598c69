package store

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/dominion-roster/internal/domain"
)

const (
	membersKey     = "members"
	changedChannel = "members:changed"
)

// RedisStore keeps member documents as JSON values in a single Redis hash and
// publishes a change notification after every write. Subscribers reload the
// full hash per notification, so each delivery is a complete snapshot.
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisStore builds the store over an established client.
func NewRedisStore(client *redis.Client, logger *zap.Logger) *RedisStore {
	return &RedisStore{client: client, logger: logger}
}

// Subscribe delivers the current collection immediately, then once per
// change notification until the returned Unsubscribe is called. Callbacks run
// on a single goroutine, so no two snapshots are applied concurrently.
func (s *RedisStore) Subscribe(ctx context.Context, onSnapshot func(Snapshot)) (Unsubscribe, error) {
	pubsub := s.client.Subscribe(ctx, changedChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	snapshot, err := s.load(ctx)
	if err != nil {
		_ = pubsub.Close()
		return nil, err
	}
	onSnapshot(snapshot)

	go func() {
		for range pubsub.Channel() {
			snapshot, err := s.load(ctx)
			if err != nil {
				s.logger.Warn("reload members snapshot", zap.Error(err))
				continue
			}
			onSnapshot(snapshot)
		}
	}()

	return func() { _ = pubsub.Close() }, nil
}

// Set writes the full member document.
func (s *RedisStore) Set(ctx context.Context, member domain.Member) error {
	payload, err := json.Marshal(member)
	if err != nil {
		return err
	}
	return s.writeAndNotify(ctx, member.ID, string(payload))
}

// Update patches only the supplied JSON fields of an existing document.
func (s *RedisStore) Update(ctx context.Context, id string, fields map[string]any) error {
	raw, err := s.client.HGet(ctx, membersKey, id).Result()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	doc := make(map[string]any)
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return err
	}
	for key, value := range fields {
		doc[key] = value
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return s.writeAndNotify(ctx, id, string(payload))
}

// Remove deletes the document.
func (s *RedisStore) Remove(ctx context.Context, id string) error {
	removed, err := s.client.HDel(ctx, membersKey, id).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrNotFound
	}
	return s.client.Publish(ctx, changedChannel, id).Err()
}

func (s *RedisStore) writeAndNotify(ctx context.Context, id, payload string) error {
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, membersKey, id, payload)
	pipe.Publish(ctx, changedChannel, id)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) load(ctx context.Context) (Snapshot, error) {
	raw, err := s.client.HGetAll(ctx, membersKey).Result()
	if err != nil {
		return nil, err
	}

	snapshot := make(Snapshot, len(raw))
	for id, doc := range raw {
		var member domain.Member
		if err := json.Unmarshal([]byte(doc), &member); err != nil {
			s.logger.Warn("skipping malformed member document",
				zap.String("id", id), zap.Error(err))
			continue
		}
		member.ID = id
		snapshot[id] = member
	}
	return snapshot, nil
}
