package main

import (
	"context"
	"os"

	"github.com/akugone/kawayC/application/utils"
	"github.com/akugone/kawayC/infrastructure"
	"github.com/akugone/kawayC/infrastructure/env"
	"github.com/akugone/kawayC/infrastructure/logger"
)

func init() {
	env.LoadEnv()
}

func main() {
	logger.InitializeLogger()
	logger.WithRunID(utils.GenerateUULDString())

	err := infrastructure.RunVerification(context.Background())
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
