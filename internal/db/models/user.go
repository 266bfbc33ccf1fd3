package models

// Game is a speedrun.com game reference kept on the user record so that
// moderator checks do not need an API round trip.
type Game struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type User struct {
	tableName struct{} `pg:"users"` //nolint:unused

	ID             string `json:"id" pg:"id,pk"`
	Username       string `json:"username" pg:",notnull"`
	Discriminator  string `json:"discriminator"`
	SrcID          string `json:"src_id"`
	SrcUsername    string `json:"src_username"`
	ModeratedGames []Game `json:"moderated_games" pg:"moderated_games,type:jsonb"`
}

// Linked reports whether the user has verified a speedrun.com account.
func (u *User) Linked() bool {
	return u.SrcID != ""
}

func (u *User) Moderates(gameID string) bool {
	for _, game := range u.ModeratedGames {
		if game.ID == gameID {
			return true
		}
	}
	return false
}

// Tag is the identity shown on a speedrun.com profile's Discord connection.
// Accounts created after the username migration have discriminator "0".
func (u *User) Tag() string {
	if u.Discriminator == "" || u.Discriminator == "0" {
		return u.Username
	}
	return u.Username + "#" + u.Discriminator
}
