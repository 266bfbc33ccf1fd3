package configs

type Discord struct {
	Token           string   `env:"DISCORD_BOT_TOKEN,notEmpty"`
	ClientID        string   `env:"DISCORD_CLIENT_ID"`
	ClientSecret    string   `env:"DISCORD_CLIENT_SECRET"`
	VoteChannelName string   `env:"VOTE_CHANNEL_NAME" envDefault:"vote"`
	EmbedColor      int      `env:"DISCORD_EMBED_COLOR" envDefault:"0"`
	DefaultGames    []string `env:"DEFAULT_SRC_GAMES" envDefault:"mkw"`
}
