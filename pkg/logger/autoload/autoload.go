// Package autoload initializes the global zerolog logger from the
// LOG_* environment on import. Blank-import it from main.
package autoload

import (
	configx "github.com/mwilhelm/proposalforge/pkg/config"
	logx "github.com/mwilhelm/proposalforge/pkg/logger"
)

func init() {
	conf := configx.MustNew[logx.Config]("LOG")
	logx.Init(*conf)
}
