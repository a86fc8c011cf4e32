package cmd

import (
	"context"
	"io"

	"github.com/jimezsa/mxdl/internal/config"
	"github.com/jimezsa/mxdl/internal/exchange"
	"github.com/jimezsa/mxdl/internal/ui"
	"github.com/rs/zerolog"
)

type Context struct {
	Ctx        context.Context
	Out        io.Writer
	Err        io.Writer
	UI         *ui.UI
	Config     config.Config
	ConfigDir  string
	Logger     zerolog.Logger
	Verbose    bool
	JSONOutput bool
	PlainText  bool
	Version    string
	ColorMode  ui.ColorMode

	// Doer replaces the network client when set.
	Doer exchange.Doer
}

func (c *Context) context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}
