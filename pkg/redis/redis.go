package redis

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const lockPrefix = "wellcommand:query-lock:"

type IRedis interface {
	AcquireQueryLock(ctx context.Context, key string, expiration time.Duration) (string, bool, error)
	ReleaseQueryLock(ctx context.Context, key, token string) error
	Close() error
}

// releaseScript deletes the lock only while it still holds the caller's
// token, so a holder whose lock expired cannot free a newer holder's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return NewFromClient(client)
}

func NewFromClient(client *redis.Client) IRedis {
	return &redisClient{client: client}
}

// AcquireQueryLock marks key as having a query in flight and returns the
// token that must be presented on release. It reports false when another
// holder already owns the key. The expiration frees the lock if the holder
// dies without releasing it.
func (r *redisClient) AcquireQueryLock(ctx context.Context, key string, expiration time.Duration) (string, bool, error) {
	logrus.Debug(fmt.Sprintf("Acquiring query lock for key %s with expiration %v", key, expiration))
	token := uuid.NewString()
	ok, err := r.client.SetNX(ctx, lockPrefix+key, token, expiration).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error acquiring query lock for key %s: %v", key, err))
		return "", false, err
	}
	if !ok {
		logrus.Debug(fmt.Sprintf("Query lock for key %s already held", key))
		return "", false, nil
	}
	return token, true, nil
}

func (r *redisClient) ReleaseQueryLock(ctx context.Context, key, token string) error {
	logrus.Debug(fmt.Sprintf("Releasing query lock for key %s", key))
	deleted, err := releaseScript.Run(ctx, r.client, []string{lockPrefix + key}, token).Int64()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error releasing query lock for key %s: %v", key, err))
		return err
	}

	if deleted == 0 {
		logrus.Debug(fmt.Sprintf("Query lock key %s expired or owned by another holder", key))
	}
	return nil
}

func (r *redisClient) Close() error {
	return r.client.Close()
}
