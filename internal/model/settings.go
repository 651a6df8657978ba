package model

// Settings holds the user preferences persisted alongside the account. The
// core receives a snapshot at each call boundary and never consults global
// state.
type Settings struct {
	AutoSave             bool
	AutoProcessOnStartup bool
	Language             string
}

// DefaultSettings returns the settings used when a store has no SETTINGS
// section.
func DefaultSettings() Settings {
	return Settings{Language: "EN"}
}
