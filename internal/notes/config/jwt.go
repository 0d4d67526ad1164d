package config

// JWTConfig содержит настройки проверки JWT токенов.
type JWTConfig struct {
	SecretKey string `yaml:"secret_key" env:"NOTES_JWT_SECRET_KEY" env-default:"super-secret-key-change-me-in-production"`
}
