package snapshot

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/feat-weaver/internal/errors"
	"github.com/KirkDiggler/feat-weaver/internal/modules"
	"github.com/KirkDiggler/feat-weaver/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/feat-weaver/internal/redis"
)

const (
	// Key pattern: snapshot:{sha256(path|size|mtime)}
	snapshotKeyPrefix = "snapshot:"
	defaultTTL        = 24 * time.Hour

	errPathEmpty = "package path cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for package snapshots
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Get loads the snapshots cached for a package fingerprint
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.Package.Path == "" {
		return nil, errors.InvalidArgument(errPathEmpty)
	}

	key := buildKey(input.Package)

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("snapshot not found").WithMeta("package", input.Package.Path)
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get snapshot from Redis")
	}

	return decode(data)
}

// decode rebuilds the modules of a stored record
func decode(data []byte) (*GetOutput, error) {
	var record packageRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to unmarshal snapshot")
	}

	output := &GetOutput{
		Modules:  make([]*modules.Module, 0, len(record.Modules)),
		CachedAt: record.CachedAt,
	}
	for _, mr := range record.Modules {
		m, err := mr.toModule()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decode cached module %s", mr.Name)
		}
		output.Modules = append(output.Modules, m)
	}
	return output, nil
}

// Put stores the snapshots of a package under its fingerprint
func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if input.Package.Path == "" {
		return nil, errors.InvalidArgument(errPathEmpty)
	}

	ttl := input.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}

	record := packageRecord{
		CachedAt: r.clock.Now(),
		Modules:  make([]moduleRecord, 0, len(input.Modules)),
	}
	for _, m := range input.Modules {
		record.Modules = append(record.Modules, toRecord(m))
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal snapshot")
	}

	key := buildKey(input.Package)
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to store snapshot in Redis")
	}

	return &PutOutput{Key: key}, nil
}

// Purge scans every snapshot key and deletes the ones selected by input
func (r *redisRepository) Purge(ctx context.Context, input PurgeInput) (*PurgeOutput, error) {
	output := &PurgeOutput{}

	iter := r.client.Scan(ctx, 0, snapshotKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		output.Checked++

		if input.CorruptOnly {
			data, err := r.client.Get(ctx, key).Bytes()
			if err != nil {
				if err == redis.Nil {
					continue
				}
				return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to read %s", key)
			}
			if _, err := decode(data); err == nil {
				continue
			}
		}

		output.Keys = append(output.Keys, key)
		if input.DryRun {
			continue
		}
		if err := r.client.Del(ctx, key).Err(); err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to delete %s", key)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to scan snapshots")
	}

	return output, nil
}

// buildKey hashes the fingerprint so a changed package never hits a stale entry
func buildKey(fp Fingerprint) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d", fp.Path, fp.Size, fp.ModTime)))
	return snapshotKeyPrefix + hex.EncodeToString(sum[:])
}
