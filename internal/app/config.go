package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/resethq/reset-backend/internal/logger"
	"github.com/resethq/reset-backend/internal/utils"
)

type Config struct {
	Port            string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	DataDir         string
	RedisAddr       string
	AllowOrigins    []string
}

// fileConfig is the optional YAML overlay (CONFIG_FILE). Env vars still win
// over file values.
type fileConfig struct {
	Port         string   `yaml:"port"`
	DataDir      string   `yaml:"data_dir"`
	RedisAddr    string   `yaml:"redis_addr"`
	AllowOrigins []string `yaml:"allow_origins"`
}

func LoadConfig(log *logger.Logger) (Config, error) {
	var fc fileConfig
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
		log.Info("Loaded config file overlay", "path", path)
	}

	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

	cfg := Config{
		Port:            utils.GetEnv("PORT", orDefault(fc.Port, "8080"), log),
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,
		DataDir:         utils.GetEnv("DATA_DIR", orDefault(fc.DataDir, "./data"), log),
		RedisAddr:       utils.GetEnv("REDIS_ADDR", fc.RedisAddr, log),
		AllowOrigins:    fc.AllowOrigins,
	}
	if origins := strings.TrimSpace(os.Getenv("ALLOW_ORIGINS")); origins != "" {
		cfg.AllowOrigins = strings.Split(origins, ",")
	}
	return cfg, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
