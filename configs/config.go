package configs

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

type VoteBotConfig struct {
	App         App
	Logger      Logger
	DB          DB
	Discord     Discord
	SpeedrunCom SpeedrunCom
	Web         Web
}

func LoadVoteBotConfig() (VoteBotConfig, error) {
	var config VoteBotConfig

	if err := env.Parse(&config); err != nil {
		return VoteBotConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}
