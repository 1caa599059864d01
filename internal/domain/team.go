package domain

// Team represents a team in the directory. Teams are read-only from this
// service's perspective; the directory is maintained out of band.
type Team struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IconPath string `json:"icon_path"`
	HRP      int    `json:"hrp"`
}

// TeamView is a directory entry with its icon resolved to a fetchable URL
type TeamView struct {
	Team
	IconURL string `json:"icon_url"`
}

// UnknownTeamName is rendered when a vote references a team ID that no
// longer resolves in the directory. Never an error.
const UnknownTeamName = "Unknown Team"
