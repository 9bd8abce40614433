package config

import (
	"os"
	"path/filepath"
)

// defaultStatsFile is ~/.config/wordle/stats.json, or ./.wordle/stats.json
// when the home directory is unknown.
func defaultStatsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".wordle", "stats.json")
	}
	return filepath.Join(home, ".config", "wordle", "stats.json")
}
