package configs

type Logger struct {
	AppName string `env:"APP_NAME" envDefault:"speedrun-vote-bot"`
	URL     string `env:"LOKI_URL"`
}
