package settings

// Settings are the user preferences, each persisted under its own key.
type Settings struct {
	PlayerName     string   `json:"playerName"`
	TeamName       string   `json:"teamName"`
	PrimaryColor   string   `json:"primaryColor"`
	SecondaryColor string   `json:"secondaryColor"`
	LogoData       string   `json:"logoData"`
	SavedOpponents []string `json:"savedOpponents"`
	ExportURL      string   `json:"exportUrl"`
	AIKey          string   `json:"aiKey"`
}

const (
	keyPlayerName     = "playerName"
	keyTeamName       = "teamName"
	keyPrimaryColor   = "primaryColor"
	keySecondaryColor = "secondaryColor"
	keyLogoData       = "logoData"
	keySavedOpponents = "savedOpponents"
	keyExportURL      = "exportUrl"
	keyAIKey          = "aiKey"
)

// Defaults returns the settings used before anything has been saved.
func Defaults() Settings {
	return Settings{
		PrimaryColor:   "#1d4ed8",
		SecondaryColor: "#f59e0b",
		SavedOpponents: []string{},
	}
}
