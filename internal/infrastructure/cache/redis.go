package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisConfig contém os dados de conexão com o Redis
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// NewRedisClient conecta ao Redis. Endereço vazio devolve nil: cache e
// locks ficam desligados e a aplicação segue só com o banco.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	if cfg.Address == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("erro ao conectar ao redis: %w", err)
	}
	return rdb, nil
}

// ReportCache guarda relatórios serializados em JSON com TTL.
// Um ReportCache nil ou sem cliente não faz nada.
type ReportCache struct {
	rdb *redis.Client
	ttl time.Duration
	log logger.Logger
}

// NewReportCache cria o cache. rdb nil desliga o cache.
func NewReportCache(rdb *redis.Client, ttl time.Duration, log logger.Logger) *ReportCache {
	return &ReportCache{rdb: rdb, ttl: ttl, log: log}
}

func (c *ReportCache) enabled() bool {
	return c != nil && c.rdb != nil
}

// Get lê a chave em dest. Retorna false quando não há valor.
func (c *ReportCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !c.enabled() {
		return false, nil
	}

	val, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set grava o valor com o TTL configurado
func (c *ReportCache) Set(ctx context.Context, key string, value interface{}) error {
	if !c.enabled() {
		return nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

// InvalidatePrefix remove todas as chaves com o prefixo informado
func (c *ReportCache) InvalidatePrefix(ctx context.Context, prefix string) {
	if !c.enabled() {
		return
	}

	iter := c.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("erro ao listar chaves do cache", "prefix", prefix, "error", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("erro ao invalidar cache", "prefix", prefix, "error", err)
	}
}

// Locker obtém locks distribuídos por chave quando o Redis está disponível
type Locker struct {
	client *redislock.Client
	ttl    time.Duration
	log    logger.Logger
}

// NewLocker cria o locker. rdb nil gera um locker que nunca bloqueia.
func NewLocker(rdb *redis.Client, ttl time.Duration, log logger.Logger) *Locker {
	l := &Locker{ttl: ttl, log: log}
	if rdb != nil {
		l.client = redislock.New(rdb)
	}
	return l
}

// Acquire tenta obter o lock da chave. Sem Redis, ou se o lock não puder
// ser obtido, segue sem lock: a transação do banco continua garantindo a
// atomicidade. A função devolvida libera o lock e sempre pode ser chamada.
func (l *Locker) Acquire(ctx context.Context, key string) func() {
	noop := func() {}
	if l == nil || l.client == nil {
		return noop
	}

	lock, err := l.client.Obtain(ctx, "lock:"+key, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		l.log.Warn("lock ocupado; seguindo sem lock", "key", key)
		return noop
	}
	if err != nil {
		l.log.Warn("erro ao obter lock; seguindo sem lock", "key", key, "error", err)
		return noop
	}

	return func() {
		if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.log.Warn("erro ao liberar lock", "key", key, "error", err)
		}
	}
}
