package domain

import (
	"time"
)

type Hero struct {
	ID          int64
	Name        string
	DisplayName string
	ShortName   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type League struct {
	ID        int64
	Name      string
	Tier      int
	IsOver    bool
	StartAt   *time.Time
	EndAt     *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type Series struct {
	ID         int64
	LeagueID   int64
	TeamOneID  int64
	TeamTwoID  int64
	SeriesType string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

type Team struct {
	ID        int64
	Name      string
	Tag       string
	Rank      int
	IsPro     bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Player struct {
	SteamAccountID int64
	Name           string
	IsPro          bool
	TeamID         int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Match is a single played game. LeagueID, SeriesID and DireTeamID are zero
// when the upstream record did not carry them.
type Match struct {
	ID              int64
	LeagueID        int64
	SeriesID        int64
	RadiantTeamID   int64
	DireTeamID      int64
	DidRadiantWin   bool
	DurationSeconds int64
	StartDateTime   time.Time
	EndDateTime     time.Time
	GameVersionID   int64
	GameMode        int64
	LobbyType       int64
	PickBans        []PickBan
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

type PickBan struct {
	MatchID               int64
	Order                 int
	HeroID                int64
	IsPick                bool
	IsRadiant             bool
	PlayerIndex           *int
	BannedHeroID          *int64
	WasBannedSuccessfully bool
}

type MatchPlayer struct {
	MatchID        int64
	SteamAccountID int64
	HeroID         int64
	IsRadiant      bool
	PlayerSlot     int
	Kills          int
	Deaths         int
	Assists        int
	IsVictory      bool
}

// PopularPickBan is the cached top-N hero graph for one scoped entity.
// HeroPicks and HeroBans hold compact JSON arrays of graph nodes.
type PopularPickBan struct {
	ID          string // nanoid
	EntityType  ScopeKind
	EntityID    int64
	HeroPicks   []byte
	HeroBans    []byte
	TimeStampAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
