package config

import (
	"time"

	redisdb "deltanote/pkg/db/redis"
)

// RedisConfig представляет конфигурацию для Redis.
type RedisConfig struct {
	Host       string        `yaml:"host" env:"NOTES_REDIS_HOST" env-default:"localhost"`
	Port       int           `yaml:"port" env:"NOTES_REDIS_PORT" env-default:"6379"`
	Password   string        `yaml:"password" env:"NOTES_REDIS_PASSWORD" env-default:""`
	DB         int           `yaml:"db" env:"NOTES_REDIS_DB" env-default:"0"`
	PoolSize   int           `yaml:"pool_size" env:"NOTES_REDIS_POOL_SIZE" env-default:"10"`
	Timeout    time.Duration `yaml:"timeout" env:"NOTES_REDIS_TIMEOUT" env-default:"5s"`
	DefaultTTL time.Duration `yaml:"default_ttl" env:"NOTES_REDIS_DEFAULT_TTL" env-default:"15m"`
}

// ToClientConfig переводит настройки в конфигурацию клиента Redis.
func (c *RedisConfig) ToClientConfig() *redisdb.Config {
	return &redisdb.Config{
		Host:     c.Host,
		Port:     c.Port,
		Password: c.Password,
		DB:       c.DB,
		PoolSize: c.PoolSize,
		Timeout:  c.Timeout,
	}
}
