package models

type Guild struct {
	tableName struct{} `pg:"guilds"` //nolint:unused

	ID            string   `json:"id" pg:"id,pk"`
	Name          string   `json:"name"`
	Games         []string `json:"games" pg:",array"`
	RunnerRoleID  string   `json:"runner_role_id"`
	VoteChannelID string   `json:"vote_channel_id"`
	PollIDs       []string `json:"poll_ids" pg:"poll_ids,array"`
}
