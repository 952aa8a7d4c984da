package combatsession

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/plaggbot/rpg-api/internal/entities"
	"github.com/plaggbot/rpg-api/internal/errors"
	"github.com/plaggbot/rpg-api/internal/pkg/clock"
	redisclient "github.com/plaggbot/rpg-api/internal/redis"
)

const (
	// Key pattern: combat_session:{player_id}
	sessionKeyPrefix = "combat_session:"

	// Error messages
	errSessionNil    = "session cannot be nil"
	errPlayerIDEmpty = "player ID cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedis creates a new Redis-backed session repository
func NewRedis(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	input.Session.Version = entities.SessionSchemaVersion
	input.Session.StartedAt = r.clock.Now().Unix()

	data, err := json.Marshal(input.Session)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session")
	}

	key := sessionKeyPrefix + input.Session.PlayerID
	created, err := r.client.SetNX(ctx, key, data, input.TTL).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store session")
	}
	if !created {
		return nil, errors.AlreadyExistsf("player %s already has an active session", input.Session.PlayerID)
	}

	return &CreateOutput{Session: input.Session}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	key := sessionKeyPrefix + input.PlayerID
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("player %s has no active session", input.PlayerID)
		}
		return nil, errors.Wrapf(err, "failed to get session")
	}

	var session entities.CombatSession
	if err := json.Unmarshal([]byte(result), &session); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal session")
	}
	if session.Version > entities.SessionSchemaVersion {
		return nil, errors.Internalf("session schema version %d is newer than supported %d",
			session.Version, entities.SessionSchemaVersion)
	}

	return &GetOutput{Session: &session}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	key := sessionKeyPrefix + input.Session.PlayerID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("player %s has no active session", input.Session.PlayerID)
	}

	input.Session.Version = entities.SessionSchemaVersion

	data, err := json.Marshal(input.Session)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session")
	}

	// KeepTTL preserves any expiry set at creation.
	if err := r.client.Set(ctx, key, data, redis.KeepTTL).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to save session")
	}

	return &SaveOutput{Session: input.Session}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	key := sessionKeyPrefix + input.PlayerID
	deleted, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete session")
	}
	if deleted == 0 {
		return nil, errors.NotFoundf("player %s has no active session", input.PlayerID)
	}

	return &DeleteOutput{}, nil
}
