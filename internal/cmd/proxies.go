package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/mxdl/internal/config"
	"github.com/jimezsa/mxdl/internal/exchange"
	"github.com/jimezsa/mxdl/internal/network"
)

type ProxiesCmd struct {
	Check ProxyCheckCmd `cmd:"" help:"Validate proxies against an exchange site."`
}

type ProxyCheckCmd struct {
	Site    string `help:"Site whose host is probed (tm or sm)." enum:"tm,sm" default:"tm"`
	Target  string `help:"Probe this URL instead of the site host."`
	Timeout int    `help:"Timeout in seconds." default:"15"`
}

type ProxyCheckResult struct {
	Proxy     string `json:"proxy"`
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

func (p *ProxyCheckCmd) Run(ctx *Context) error {
	proxies, err := config.LoadProxies("")
	if err != nil {
		return err
	}
	if len(proxies) == 0 {
		return fmt.Errorf("no proxies configured")
	}

	target, err := p.target(ctx)
	if err != nil {
		return err
	}

	results := make([]ProxyCheckResult, 0, len(proxies))
	for _, proxy := range proxies {
		results = append(results, checkProxy(ctx, proxy, target, time.Duration(p.Timeout)*time.Second))
	}

	return writeProxyResults(ctx, results)
}

func (p *ProxyCheckCmd) target(ctx *Context) (string, error) {
	if strings.TrimSpace(p.Target) != "" {
		return p.Target, nil
	}
	site, ok := exchange.LookupSite(ctx.Config.Host, p.Site)
	if !ok {
		return "", fmt.Errorf("unknown site: %s", p.Site)
	}
	return site.Host, nil
}

func checkProxy(ctx *Context, proxy string, target string, timeout time.Duration) ProxyCheckResult {
	result := ProxyCheckResult{Proxy: proxy}
	fail := func(err error) ProxyCheckResult {
		result.Status = "error"
		result.Error = err.Error()
		return result
	}

	rotator, err := network.NewRotator([]string{proxy}, 5*time.Minute)
	if err != nil {
		return fail(err)
	}
	client, err := network.NewClient(ctx.Config.ClientConfig([]string{proxy}), rotator)
	if err != nil {
		return fail(err)
	}

	req, err := fhttp.NewRequestWithContext(ctx.context(), fhttp.MethodGet, target, nil)
	if err != nil {
		return fail(err)
	}

	start := time.Now()
	resp, err := doWithTimeout(client, req, timeout)
	if err != nil {
		return fail(err)
	}
	_ = resp.Body.Close()

	result.LatencyMS = time.Since(start).Milliseconds()
	result.Status = fmt.Sprintf("%d", resp.StatusCode)
	ctx.Logger.Debug().Str("proxy", proxy).Int("status", resp.StatusCode).Int64("latency_ms", result.LatencyMS).Msg("proxy checked")
	return result
}

func doWithTimeout(client *network.Client, req *fhttp.Request, timeout time.Duration) (*fhttp.Response, error) {
	ctx, cancel := context.WithTimeout(req.Context(), timeout)
	defer cancel()
	return client.Do(req.WithContext(ctx))
}

func writeProxyResults(ctx *Context, results []ProxyCheckResult) error {
	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if ctx.PlainText {
		for _, res := range results {
			line := []string{res.Proxy, res.Status, fmt.Sprintf("%d", res.LatencyMS), res.Error}
			fmt.Fprintln(ctx.Out, strings.Join(line, "\t"))
		}
		return nil
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "proxy\tstatus\tlatency_ms\terror")
	for _, res := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", res.Proxy, res.Status, res.LatencyMS, res.Error)
	}
	return tw.Flush()
}
