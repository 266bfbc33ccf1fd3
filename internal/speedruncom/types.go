package speedruncom

// Game is a speedrun.com game the looked-up user moderates.
type Game struct {
	ID   string
	Name string
}

// Run is a personal best. HasVideo distinguishes proven runners.
type Run struct {
	GameID   string
	HasVideo bool
}

// ModeratorLevel is the standing a user holds on a game's moderator list.
type ModeratorLevel string

const (
	ModeratorLevelModerator      ModeratorLevel = "moderator"
	ModeratorLevelSuperModerator ModeratorLevel = "super-moderator"
)

func (l ModeratorLevel) rank() int {
	if l == ModeratorLevelSuperModerator {
		return 2
	}
	return 1
}

// AtLeast reports whether the level meets the given minimum.
func (l ModeratorLevel) AtLeast(min ModeratorLevel) bool {
	return l.rank() >= min.rank()
}

type userResponse struct {
	Data struct {
		ID    string `json:"id"`
		Names struct {
			International string `json:"international"`
		} `json:"names"`
	} `json:"data"`
}

type gamesResponse struct {
	Data []struct {
		ID    string `json:"id"`
		Names struct {
			International string `json:"international"`
		} `json:"names"`
		Moderators map[string]string `json:"moderators"`
	} `json:"data"`
	Pagination struct {
		Size int `json:"size"`
		Max  int `json:"max"`
	} `json:"pagination"`
}

type personalBestsResponse struct {
	Data []struct {
		Run struct {
			Game   string `json:"game"`
			Videos *struct {
				Links []struct {
					URI string `json:"uri"`
				} `json:"links"`
			} `json:"videos"`
		} `json:"run"`
	} `json:"data"`
}
