package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"
)

type VersionCmd struct{}

type versionInfo struct {
	Version string `json:"version"`
	Go      string `json:"go"`
}

func (v *VersionCmd) Run(ctx *Context) error {
	if ctx.JSONOutput {
		return json.NewEncoder(ctx.Out).Encode(versionInfo{Version: ctx.Version, Go: runtime.Version()})
	}
	_, err := fmt.Fprintf(ctx.Out, "mxdl %s\n", ctx.Version)
	return err
}
