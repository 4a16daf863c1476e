package export

import (
	"net/http"

	"github.com/mauv0809/courtside/internal/shotchart"
)

// Payload is the flat row posted to the export webhook.
type Payload struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Player    string  `json:"player"`
	Team      string  `json:"team"`
	Opponent  string  `json:"opponent"`
	Outcome   string  `json:"outcome"`
	Score     string  `json:"score"`
	Points    int     `json:"points"`
	FGM       int     `json:"fgm"`
	FGA       int     `json:"fga"`
	FG3M      int     `json:"fg3m"`
	FG3A      int     `json:"fg3a"`
	FTM       int     `json:"ftm"`
	FTA       int     `json:"fta"`
	Rebounds  int     `json:"rebounds"`
	OReb      int     `json:"oreb"`
	DReb      int     `json:"dreb"`
	Assists   int     `json:"assists"`
	Steals    int     `json:"steals"`
	Blocks    int     `json:"blocks"`
	Turnovers int     `json:"turnovers"`
	Fouls     int     `json:"fouls"`
	FGPct     float64 `json:"fgPct"`
	FG3Pct    float64 `json:"fg3Pct"`
	FTPct     float64 `json:"ftPct"`
	Notes     string  `json:"notes,omitempty"`
	ShotChart string  `json:"shotChart,omitempty"`
}

// Webhook posts saved games to a user-configured URL.
type Webhook struct {
	client *http.Client
	chart  shotchart.Options
}
