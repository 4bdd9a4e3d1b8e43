package env

import (
	"github.com/akugone/kawayC/infrastructure/logger"
	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file when one is present. Inside the enclave the
// variables come from the runtime and the file is usually absent.
func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		logger.Info("no .env file loaded, using process environment")
	}
}
