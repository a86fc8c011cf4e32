package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jimezsa/mxdl/internal/exchange"
	"github.com/jimezsa/mxdl/internal/models"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName         = "mxdl"
	ConfigFileName  = "config.json"
	ProxiesFileName = "proxies.txt"
)

// Config contains the defaults a run starts from. Command-line tokens
// override every field.
type Config struct {
	DownloadPath      string  `json:"download_path"`
	NewName           string  `json:"newname"`
	Host              string  `json:"host"`
	TimeoutSeconds    int     `json:"timeout_seconds"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	UserAgent         string  `json:"user_agent,omitempty"`
}

func DefaultConfig() Config {
	opts := models.DefaultRunOptions()
	return Config{
		DownloadPath:   opts.Path,
		NewName:        opts.NewName,
		Host:           exchange.DefaultHostTemplate,
		TimeoutSeconds: 30,
	}
}

func ConfigDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv("MXDL_CONFIG_DIR")); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

func ProxiesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ProxiesFileName), nil
}

// Load reads the config file if present and applies MXDL_* environment
// overrides on top of it.
func Load() (Config, error) {
	cfg := DefaultConfig()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, err
	}

	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json5.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	cfg.DownloadPath = envString("MXDL_DOWNLOAD_PATH", cfg.DownloadPath)
	cfg.NewName = envString("MXDL_NEWNAME", cfg.NewName)
	cfg.Host = envString("MXDL_HOST", cfg.Host)
	cfg.TimeoutSeconds = envInt("MXDL_TIMEOUT", cfg.TimeoutSeconds)
	cfg.RequestsPerSecond = envFloat("MXDL_RPS", cfg.RequestsPerSecond)
	cfg.UserAgent = envString("MXDL_USER_AGENT", cfg.UserAgent)
	return cfg
}

// RunOptions returns the defaults ParseArgs starts from.
func (c Config) RunOptions() models.RunOptions {
	opts := models.DefaultRunOptions()
	if c.DownloadPath != "" {
		opts.Path = c.DownloadPath
	}
	if c.NewName != "" {
		opts.NewName = c.NewName
	}
	return opts
}

func (c Config) ClientConfig(proxies []string) models.ClientConfig {
	return models.ClientConfig{
		Proxies:           proxies,
		Timeout:           time.Duration(c.TimeoutSeconds) * time.Second,
		UserAgent:         c.UserAgent,
		RequestsPerSecond: c.RequestsPerSecond,
	}
}

func LoadProxies(flagValue string) ([]string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return splitCSV(flagValue), nil
	}

	if env := strings.TrimSpace(os.Getenv("MXDL_PROXIES")); env != "" {
		return splitCSV(env), nil
	}

	path, err := ProxiesPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var proxies []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		proxies = append(proxies, line)
	}
	return proxies, nil
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func envFloat(key string, fallback float64) float64 {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
