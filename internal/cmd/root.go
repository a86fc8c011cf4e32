package cmd

import "github.com/alecthomas/kong"

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto" env:"MXDL_COLOR"`
	JSON    bool   `help:"JSON output to stdout; disables colors." env:"MXDL_JSON"`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging." env:"MXDL_VERBOSE"`

	VersionFlag kong.VersionFlag `name:"version" help:"Print version."`

	Download DownloadCmd `cmd:"" default:"withargs" help:"Search a site and download the matching maps (default)."`
	Version  VersionCmd  `cmd:"" help:"Print version."`
	Config   ConfigCmd   `cmd:"" help:"Inspect configuration."`
	Proxies  ProxiesCmd  `cmd:"" help:"Proxy utilities."`
}

func NewCLI() *CLI {
	return &CLI{}
}
