package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/bundlebuilder/internal/logfields"
)

// envFiles are tried in order; variables already set are never overridden.
var envFiles = []string{".env", ".env.local"}

// LoadEnvFiles loads the .env files present in the working directory and
// returns the ones that were read. A malformed file is an error.
func LoadEnvFiles() ([]string, error) {
	var loaded []string
	for _, name := range envFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return loaded, err
		}
		slog.Debug("Loaded environment file", logfields.Path(name))
		loaded = append(loaded, name)
	}
	return loaded, nil
}
