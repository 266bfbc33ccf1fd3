package configs

import "time"

type SpeedrunCom struct {
	APIURL         string        `env:"SRC_API_URL" envDefault:"https://www.speedrun.com/api/v1"`
	SiteURL        string        `env:"SRC_SITE_URL" envDefault:"https://www.speedrun.com"`
	RequestTimeout time.Duration `env:"SRC_REQUEST_TIMEOUT" envDefault:"10s"`
	Retries        int           `env:"SRC_RETRIES" envDefault:"2"`
}
