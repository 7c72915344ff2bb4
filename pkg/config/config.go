package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// Remote booking API
	APIBaseURL string `envconfig:"API_BASE_URL" default:"https://sport-reservation-api-bootcamp.do.dibimbing.id"`
	// Sessions
	RedisAddr     string        `envconfig:"REDIS_ADDR"` // empty means in-memory sessions
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	// Network
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
