package configs

import "time"

type Web struct {
	BaseURL    string        `env:"BASE_URL" envDefault:"http://localhost:3000"`
	Port       int           `env:"PORT" envDefault:"3000"`
	JWTSecret  string        `env:"JWT_SECRET,notEmpty"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"720h"`
}
