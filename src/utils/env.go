package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const DEV_ENV_FILENAME = ".env.development"
const PROD_ENV_FILENAME = ".env.production"

// InitEnvironmentVariables loads the .env file for GO_ENV from envDir. Variables
// already present in the process environment win over the file.
func InitEnvironmentVariables(envDir string) error {
	// Scheduled production runs get their secrets from the scheduler, not from a file
	if os.Getenv("ENV") == "production" {
		log.Info("Running in production environment")
		return nil
	}

	// Determine which .env file to load
	envFile := filepath.Join(envDir, DEV_ENV_FILENAME) // default to development environment
	if os.Getenv("GO_ENV") == "production" {
		envFile = filepath.Join(envDir, PROD_ENV_FILENAME)
	}

	err := godotenv.Load(envFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Infof("no %s file found, relying on the process environment", envFile)
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to load %s file: %v", envFile, err)
	}

	return nil
}

// RequireEnv returns the values of the named variables, failing on the first one that is unset.
func RequireEnv(names ...string) (map[string]string, error) {
	values := make(map[string]string, len(names))
	for _, name := range names {
		v := os.Getenv(name)
		if v == "" {
			return nil, fmt.Errorf("missing %s environment variable", name)
		}

		values[name] = v
	}

	return values, nil
}
