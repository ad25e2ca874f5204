// Package config loads the SDK configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	aditum "github.com/stremovskyy/go-aditum"
	"github.com/stremovskyy/go-aditum/payment"
)

// DefaultPrefix is the prefix of the variables Load reads by default.
const DefaultPrefix = "ADITUM_"

// Variable names, without prefix.
const (
	KeyAPIKey      = "API_KEY"
	KeyEnvironment = "ENVIRONMENT"
	KeyEnableLogs  = "ENABLE_LOGS"
	KeyTimeout     = "TIMEOUT"
)

// Load reads <prefix>API_KEY, <prefix>ENVIRONMENT, <prefix>ENABLE_LOGS and
// <prefix>TIMEOUT and validates them like any other SDK config.
//
// Variables from dotenvFiles fill in what the process environment lacks.
// When none are given the nearest ".env" in the working directory or its
// parents is used, if there is one.
func Load(prefix string, dotenvFiles ...string) (*payment.SdkConfig, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if len(dotenvFiles) == 0 {
		path, err := FindNearest(".env")
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if path != "" {
			dotenvFiles = []string{path}
		}
	}
	if len(dotenvFiles) > 0 {
		if err := godotenv.Load(dotenvFiles...); err != nil {
			return nil, fmt.Errorf("load dotenv: %w", err)
		}
	}

	k := koanf.New(".")
	if err := k.Load(env.Provider(prefix, ".", func(s string) string {
		return strings.TrimPrefix(s, prefix)
	}), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	return aditum.ValidateSdkConfig(rawConfig(k))
}

// MustLoad behaves like Load but panics on error.
func MustLoad(prefix string, dotenvFiles ...string) *payment.SdkConfig {
	cfg, err := Load(prefix, dotenvFiles...)
	if err != nil {
		panic(err)
	}
	return cfg
}

// rawConfig maps the variables onto the SdkConfig record. Values that do not
// parse are passed through as strings so validation reports them.
func rawConfig(k *koanf.Koanf) map[string]any {
	raw := map[string]any{}
	if k.Exists(KeyAPIKey) {
		raw["apiKey"] = k.String(KeyAPIKey)
	}
	if v := strings.TrimSpace(k.String(KeyEnvironment)); v != "" {
		raw["environment"] = v
	}
	if v := strings.TrimSpace(k.String(KeyEnableLogs)); v != "" {
		raw["enableLogs"] = parseBool(v)
	}
	if v := strings.TrimSpace(k.String(KeyTimeout)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			raw["timeout"] = n
		} else {
			raw["timeout"] = v
		}
	}
	return raw
}

func parseBool(value string) any {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return value
	}
}
