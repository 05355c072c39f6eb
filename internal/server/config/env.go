package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/gophnotes/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// portEnv holds variables that do not map one-to-one onto Config fields.
type portEnv struct {
	Port string `env:"API_PORT"`
}

// parseEnv loads a dotenv file (-env-file, or ./.env when present) into the
// process environment and overlays Config with the variables that are set.
// Variables already present in the environment win over the file.
// API_PORT is a shorthand for listening on all interfaces; API_ADDR wins
// when both are given.
func parseEnv(config *Config) {
	envFile := flagx.EnvFileFlags()
	explicit := envFile != ""
	if !explicit {
		envFile = defaultEnvFile
	}

	if err := godotenv.Load(envFile); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	var p portEnv
	if err := env.Parse(&p); err != nil {
		panic(err)
	}
	if p.Port != "" {
		config.EndpointAddrHTTP = ":" + p.Port
	}

	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
