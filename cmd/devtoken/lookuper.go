package main

import (
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/sirpyerre/account-portal/internal/pkg/config"
)

// localLookuper reads the environment, with .env values as fallback, and
// forces the local provider so Firebase credentials are not required.
func localLookuper() envconfig.Lookuper {
	_ = godotenv.Load()
	return envconfig.MultiLookuper(
		envconfig.MapLookuper(map[string]string{"IDENTITY_PROVIDER": config.ProviderLocal}),
		envconfig.OsLookuper(),
	)
}
