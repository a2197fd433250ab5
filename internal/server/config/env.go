package config

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// portEnv carries the PORT variable understood by most hosting platforms.
// It wins over HTTP_ADDRESS and binds on all interfaces.
type portEnv struct {
	Port string `env:"PORT"`
}

// parseEnv overlays values from the process environment. A .env file in the
// working directory (or its parent) is loaded first; variables that are
// already set in the environment are not overridden by it.
//
// Fields whose variable is unset keep their current value. A malformed
// value (for example TOKEN_VALIDITY=soon) panics, like a broken JSON file.
func parseEnv(config *Config) {
	loadEnvFile()

	if err := env.Parse(config); err != nil {
		panic(err)
	}

	var p portEnv
	if err := env.Parse(&p); err != nil {
		panic(err)
	}
	if p.Port != "" {
		config.EndpointAddrHTTP = ":" + p.Port
	}
}

func loadEnvFile() {
	if err := godotenv.Load(".env"); err == nil {
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}

	_ = godotenv.Load(filepath.Join(parent, ".env"))
}
