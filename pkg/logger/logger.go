// Package logx configures the global zerolog logger for the process.
package logx

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Level        string `default:"info"`
	PrettyFormat bool   `split_words:"true" default:"false"`
}

// Init replaces the global logger. Pretty format writes
// human-readable console lines; the default is JSON on stdout.
// Unknown level strings fall back to info.
func Init(opts ...Config) {
	conf := Config{Level: "info"}
	if len(opts) > 0 {
		conf = opts[0]
	}

	var logger zerolog.Logger
	if conf.PrettyFormat {
		logger = zerolog.New(zerolog.NewConsoleWriter())
	} else {
		logger = zerolog.New(os.Stdout)
	}

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(conf.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	log.Logger = logger.Level(level).With().Timestamp().Caller().Logger()
}
