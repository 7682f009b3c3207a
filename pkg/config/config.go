// Package config loads typed configuration structs from the process
// environment, optionally seeded from a .env file. Callers declare an
// envconfig-tagged struct and load it with New or MustNew.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

const defaultEnvFile = ".env"

var (
	envFileFlag string
	flagOnce    sync.Once
)

// New loads a config struct of type T from the environment under the
// given prefix. When the -env flag points at a file, that file is
// exported into the process environment first; otherwise ./.env is
// used when present.
func New[T any](prefix string) (*T, error) {
	if err := seedEnvironment(); err != nil {
		return nil, err
	}

	var conf T
	if err := envconfig.Process(prefix, &conf); err != nil {
		return nil, fmt.Errorf("process env config (prefix %q): %w", prefix, err)
	}
	return &conf, nil
}

func MustNew[T any](prefix string) *T {
	conf, err := New[T](prefix)
	if err != nil {
		panic(err)
	}
	return conf
}

func seedEnvironment() error {
	flagOnce.Do(func() {
		if flag.Lookup("env") == nil {
			flag.StringVar(&envFileFlag, "env", "", "path to .env file")
		}
		if !flag.Parsed() {
			flag.Parse()
		}
	})

	path := strings.TrimSpace(envFileFlag)
	if path != "" {
		if err := exportEnvFile(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
		return nil
	}

	info, err := os.Stat(defaultEnvFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	if err := exportEnvFile(defaultEnvFile); err != nil {
		return fmt.Errorf("load default env file: %w", err)
	}
	return nil
}

// exportEnvFile reads a dotenv-style file with viper and exports every
// key into the process environment, uppercased, so envconfig can see
// it.
func exportEnvFile(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	for key, value := range v.AllSettings() {
		if err := os.Setenv(strings.ToUpper(key), fmt.Sprint(value)); err != nil {
			return err
		}
	}
	return nil
}
