package config

import "time"

type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	GinMode      string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

func LoadServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:         getEnv("SERVER_ADDR", ":8080"),
		ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		GinMode:      getEnv("GIN_MODE", "debug"),
	}
}

func LoadAuthConfig() *AuthConfig {
	return &AuthConfig{
		JWTSecret: getEnv("JWT_SECRET", "default-secret-key-change-in-production"),
		TokenTTL:  getEnvDuration("JWT_EXPIRY", 24*time.Hour),
	}
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := getEnv(key, ""); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
