package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jimezsa/mxdl/internal/config"
	"github.com/jimezsa/mxdl/internal/exchange"
	"github.com/jimezsa/mxdl/internal/export"
	"github.com/jimezsa/mxdl/internal/history"
	"github.com/jimezsa/mxdl/internal/models"
	"github.com/jimezsa/mxdl/internal/network"
	"github.com/muesli/termenv"
)

const proxyBanDuration = 10 * time.Minute

const banner = `#################################################################
#               Mania-Exchange.com Map Downloader               #
#################################################################
`

const usage = `Usage:			mxdl tm/sm arg1=val1 arg2=val2
Possible arguments:	path (download path)
			limit (number of maps which get downloaded)
			newname (mx or gbx file names)
... and all arguments from this site at Track Search: https://api.mania-exchange.com/documents/reference
`

type DownloadCmd struct {
	Tokens   []string `arg:"" optional:"" name:"args" help:"Site (tm or sm) followed by key=value search arguments."`
	Yes      bool     `short:"y" help:"Download without asking for confirmation."`
	DryRun   bool     `name:"dry-run" help:"Fetch the map list and print it instead of downloading."`
	Manifest string   `help:"Write the fetched map list to this file."`
	Format   string   `help:"Output format: csv, json, md, tsv." enum:",csv,json,md,tsv" default:""`
	History  string   `help:"JSON file of already downloaded maps; known maps are skipped and new ones recorded."`
	Proxies  string   `help:"Comma-separated proxy URLs (default: MXDL_PROXIES or proxies.txt)."`
}

func (d *DownloadCmd) Run(ctx *Context) error {
	ui := ctx.UI
	if ctx.JSONOutput || ctx.PlainText {
		ui = ui.ToErr()
	}

	ui.Printf("%s", banner)
	if len(d.Tokens) == 0 {
		ui.Printf("%s", usage)
		return nil
	}

	req, err := exchange.ParseArgs(d.Tokens, ctx.Config.RunOptions())
	if err != nil {
		return err
	}
	if strings.TrimSpace(d.Manifest) != "" && pathsEqual(d.Manifest, d.History) {
		return fmt.Errorf("--manifest path must differ from --history")
	}

	site, ok := exchange.LookupSite(ctx.Config.Host, req.Site)
	if !ok {
		return fmt.Errorf("unknown site: %s", req.Site)
	}

	doer, err := d.doer(ctx)
	if err != nil {
		return err
	}
	client := exchange.NewClient(doer, site, ctx.Logger)
	runCtx := ctx.context()

	ui.Printf("Site:\t%s\n", req.Site)
	ui.Printf("Args:\t%s\n", req.Query)
	ui.Printf("Limit:\t%d\n\n", req.Options.Limit)

	count, err := client.Count(runCtx, req.Query)
	if err != nil {
		return err
	}
	ctx.Logger.Debug().Str("site", req.Site).Int("count", count).Msg("search counted")

	switch {
	case count > 0 && req.Options.Limited():
		ui.Infof("Found %d maps. Do you want to download %d of them now?", count, req.Options.Limit)
	case count > 0:
		ui.Infof("Found %d maps. Do you want to download them now?", count)
	default:
		ui.Warnf("No maps found for your search parameters. Try again!")
	}

	if !d.Yes {
		accepted, err := ui.Confirm(runCtx)
		if err != nil {
			return fmt.Errorf("read confirmation: %w", err)
		}
		if !accepted {
			ctx.Logger.Debug().Msg("download declined")
			return nil
		}
	}

	tracks, err := client.List(runCtx, req.Query, count, req.Options.Limit)
	if err != nil {
		return err
	}
	ui.Successf("\nGot map list!")

	if strings.TrimSpace(d.Manifest) != "" {
		if err := d.writeManifest(site, tracks); err != nil {
			return err
		}
	}

	if d.DryRun {
		format, err := d.resolveFormat(ctx)
		if err != nil {
			return err
		}
		return export.WriteTracks(ctx.Out, tracks, format, d.writeOptions(ctx, ctx.Out, site))
	}

	if strings.TrimSpace(d.History) != "" {
		known, err := history.ReadTracksAllowMissing(d.History)
		if err != nil {
			return fmt.Errorf("read --history: %w", err)
		}
		var stats history.DiffStats
		tracks, stats = history.Diff(tracks, known)
		if stats.Known > 0 {
			ui.Infof("Skipping %d maps already in history.", stats.Known)
		}
	}

	var done []models.Track
	loopErr := client.DownloadAll(runCtx, tracks, req.Options, func(res exchange.DownloadResult) {
		if res.Skipped {
			ui.Warnf("File '%s' already exists. Skipped!", res.Path)
		}
		done = append(done, res.Track)
	})

	if strings.TrimSpace(d.History) != "" && len(done) > 0 {
		stats, err := history.Update(d.History, done)
		if err != nil {
			if loopErr == nil {
				return err
			}
			ctx.Logger.Warn().Err(err).Msg("history not updated")
		}
		ctx.Logger.Debug().Int("added", stats.Added).Int("total", stats.TotalOut).Msg("history updated")
	}
	if loopErr != nil {
		return loopErr
	}

	ui.Successf("Downloaded maps!")
	return nil
}

func (d *DownloadCmd) doer(ctx *Context) (exchange.Doer, error) {
	if ctx.Doer != nil {
		return ctx.Doer, nil
	}

	proxies, err := config.LoadProxies(d.Proxies)
	if err != nil {
		return nil, err
	}
	var rotator *network.Rotator
	if len(proxies) > 0 {
		rotator, err = network.NewRotator(proxies, proxyBanDuration)
		if err != nil {
			return nil, err
		}
	}
	return network.NewClient(ctx.Config.ClientConfig(proxies), rotator)
}

func (d *DownloadCmd) writeManifest(site exchange.Site, tracks []models.Track) error {
	value := d.Format
	if value == "" {
		value = filepath.Ext(d.Manifest)
	}
	format, err := export.ParseFormat(value)
	if err != nil || format == export.FormatTable {
		format = export.FormatCSV
	}

	file, err := os.Create(d.Manifest)
	if err != nil {
		return fmt.Errorf("write --manifest: %w", err)
	}
	defer file.Close()

	if err := export.WriteTracks(file, tracks, format, export.WriteOptions{Host: site.Host}); err != nil {
		return fmt.Errorf("write --manifest: %w", err)
	}
	return file.Close()
}

func (d *DownloadCmd) resolveFormat(ctx *Context) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if d.Format != "" {
		return export.ParseFormat(d.Format)
	}
	if isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}

func (d *DownloadCmd) writeOptions(ctx *Context, w io.Writer, site exchange.Site) export.WriteOptions {
	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled
	return export.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   colorEnabled && isTTY(w),
		Host:         site.Host,
	}
}

func pathsEqual(a, b string) bool {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil {
		return absA == absB
	}
	return filepath.Clean(a) == filepath.Clean(b)
}

func isTTY(out io.Writer) bool {
	output := termenv.NewOutput(out)
	return output.ColorProfile() != termenv.Ascii
}
