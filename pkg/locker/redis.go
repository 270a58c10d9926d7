package locker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix  = "salon:lock:"
	defaultRetryDelay = 25 * time.Millisecond
)

// releaseScript удаляет ключ, только если им владеет текущий токен
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Redis распределенные блокировки для нескольких инстансов сервиса (SET NX PX)
type Redis struct {
	client     *redis.Client
	ttl        time.Duration
	prefix     string
	retryDelay time.Duration
	logger     Logger
}

// NewRedis создает распределенный локер. ttl ограничивает время жизни ключа,
// если процесс упадет, не освободив его.
func NewRedis(client *redis.Client, ttl time.Duration, logger Logger) *Redis {
	return &Redis{
		client:     client,
		ttl:        ttl,
		prefix:     defaultKeyPrefix,
		retryDelay: defaultRetryDelay,
		logger:     logger,
	}
}

// Acquire захватывает key, ожидая не дольше wait
func (r *Redis) Acquire(ctx context.Context, key string, wait time.Duration) (Unlock, error) {
	fullKey := r.prefix + key
	token := uuid.NewString()
	deadline := time.Now().Add(wait)

	for {
		ok, err := r.client.SetNX(ctx, fullKey, token, r.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: setnx %s: %v", ErrInternal, fullKey, err)
		}
		if ok {
			break
		}

		if !time.Now().Add(r.retryDelay).Before(deadline) {
			return nil, ErrLockTimeout
		}

		select {
		case <-time.After(r.retryDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// Отдельный контекст: освобождение должно пройти и после отмены запроса
			releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := releaseScript.Run(releaseCtx, r.client, []string{fullKey}, token).Err(); err != nil {
				// ключ доживет до истечения ttl
				r.logger.Warn("Failed to release lock %s (expires in %s): %v", fullKey, r.ttl, err)
			}
		})
	}, nil
}
