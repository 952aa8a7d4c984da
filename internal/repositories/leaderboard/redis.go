package leaderboard

import (
	"context"

	redis "github.com/redis/go-redis/v9"

	"github.com/plaggbot/rpg-api/internal/errors"
	redisclient "github.com/plaggbot/rpg-api/internal/redis"
)

const (
	// Key pattern: leaderboard:{board}
	boardKeyPrefix = "leaderboard:"

	errPlayerIDEmpty = "player ID cannot be empty"
)

// RedisConfig contains configuration for the Redis leaderboard repository.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
}

// NewRedis creates a new Redis-backed leaderboard repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{client: cfg.Client}, nil
}

var _ Repository = (*redisRepository)(nil)

func boardKey(board Board) string {
	return boardKeyPrefix + string(board)
}

func (r *redisRepository) SetScores(ctx context.Context, input SetScoresInput) (*SetScoresOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	scores := map[Board]int{
		BoardLevel:          input.Scores.Level,
		BoardGold:           input.Scores.Gold,
		BoardVictories:      input.Scores.Victories,
		BoardMonstersKilled: input.Scores.MonstersKilled,
	}

	pipe := r.client.TxPipeline()
	for board, score := range scores {
		pipe.ZAdd(ctx, boardKey(board), redis.Z{
			Score:  float64(score),
			Member: input.PlayerID,
		})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to record scores for player %s", input.PlayerID)
	}

	return &SetScoresOutput{}, nil
}

func (r *redisRepository) Top(ctx context.Context, input TopInput) (*TopOutput, error) {
	if !input.Board.Valid() {
		return nil, errors.InvalidArgumentf("unknown board %q", input.Board)
	}
	if input.Limit <= 0 {
		return nil, errors.InvalidArgumentf("limit must be positive, got %d", input.Limit)
	}

	results, err := r.client.ZRevRangeWithScores(ctx, boardKey(input.Board), 0, int64(input.Limit-1)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list board %s", input.Board)
	}

	entries := make([]Entry, 0, len(results))
	for i, z := range results {
		playerID, ok := z.Member.(string)
		if !ok {
			return nil, errors.Internalf("unexpected member type %T on board %s", z.Member, input.Board)
		}
		entries = append(entries, Entry{
			PlayerID: playerID,
			Score:    int(z.Score),
			Rank:     i + 1,
		})
	}

	return &TopOutput{Entries: entries}, nil
}

func (r *redisRepository) Rank(ctx context.Context, input RankInput) (*RankOutput, error) {
	if !input.Board.Valid() {
		return nil, errors.InvalidArgumentf("unknown board %q", input.Board)
	}
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	key := boardKey(input.Board)

	rank, err := r.client.ZRevRank(ctx, key, input.PlayerID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("player %s is not on board %s", input.PlayerID, input.Board)
		}
		return nil, errors.Wrapf(err, "failed to rank player %s", input.PlayerID)
	}

	score, err := r.client.ZScore(ctx, key, input.PlayerID).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get score for player %s", input.PlayerID)
	}

	return &RankOutput{Entry: Entry{
		PlayerID: input.PlayerID,
		Score:    int(score),
		Rank:     int(rank) + 1,
	}}, nil
}

func (r *redisRepository) Remove(ctx context.Context, input RemoveInput) (*RemoveOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	pipe := r.client.TxPipeline()
	for _, board := range Boards {
		pipe.ZRem(ctx, boardKey(board), input.PlayerID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to remove player %s from boards", input.PlayerID)
	}

	return &RemoveOutput{}, nil
}
