// Package config loads the proxy configuration from a YAML file with
// environment variable overrides. Durations accept human-friendly forms like
// "90s", "30m", or "1h30m".
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	str2duration "github.com/xhit/go-str2duration/v2"
	"gopkg.in/yaml.v3"

	"github.com/pokeproxy/go-cache/cache"
)

// Upstream describes the API the proxy fronts. The proxy layer consumes it;
// this package only parses and carries it.
type Upstream struct {
	APIURL       string
	Timeout      time.Duration
	CacheEnabled bool
}

// Config is the full process configuration.
type Config struct {
	Upstream Upstream
	Cache    cache.Config
}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() Config {
	return Config{
		Upstream: Upstream{
			APIURL:       "https://pokeapi.co/api/v2",
			Timeout:      30 * time.Second,
			CacheEnabled: true,
		},
		Cache: cache.DefaultConfig(),
	}
}

// raw* mirror the YAML document. Durations arrive as strings and optional
// fields as pointers so that absent keys fall back to defaults.
type rawUpstream struct {
	APIURL       string `yaml:"api_url"`
	Timeout      string `yaml:"timeout"`
	CacheEnabled *bool  `yaml:"cache_enabled"`
}

type rawCache struct {
	Kind       string `yaml:"kind"`
	MaxSize    *int   `yaml:"max_size"`
	Expiration string `yaml:"expiration"`
}

type rawConfig struct {
	Upstream rawUpstream `yaml:"upstream"`
	Cache    rawCache    `yaml:"cache"`
}

// Load reads the YAML file at path (skipped when path is empty or the file
// does not exist) and then applies environment overrides:
//
//	POKECACHE_UPSTREAM_API_URL, POKECACHE_UPSTREAM_TIMEOUT,
//	POKECACHE_UPSTREAM_CACHE_ENABLED, POKECACHE_CACHE_KIND,
//	POKECACHE_CACHE_MAX_SIZE, POKECACHE_CACHE_EXPIRATION
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		buf, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, errors.Wrapf(err, "reading config file %s", path)
			}
		} else {
			var raw rawConfig
			if err := yaml.Unmarshal(buf, &raw); err != nil {
				return cfg, errors.Wrapf(err, "parsing config file %s", path)
			}
			if err := raw.apply(&cfg); err != nil {
				return cfg, errors.Wrapf(err, "invalid config file %s", path)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (r rawConfig) apply(cfg *Config) error {
	if r.Upstream.APIURL != "" {
		cfg.Upstream.APIURL = r.Upstream.APIURL
	}
	if r.Upstream.Timeout != "" {
		d, err := str2duration.ParseDuration(r.Upstream.Timeout)
		if err != nil {
			return errors.Wrap(err, "upstream.timeout")
		}
		cfg.Upstream.Timeout = d
	}
	if r.Upstream.CacheEnabled != nil {
		cfg.Upstream.CacheEnabled = *r.Upstream.CacheEnabled
	}
	if r.Cache.Kind != "" {
		cfg.Cache.Kind = r.Cache.Kind
	}
	if r.Cache.MaxSize != nil {
		if *r.Cache.MaxSize < 0 {
			return errors.Newf("cache.max_size must not be negative, got %d", *r.Cache.MaxSize)
		}
		cfg.Cache.MaxSize = *r.Cache.MaxSize
	}
	if r.Cache.Expiration != "" {
		d, err := str2duration.ParseDuration(r.Cache.Expiration)
		if err != nil {
			return errors.Wrap(err, "cache.expiration")
		}
		cfg.Cache.Expiration = d
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("POKECACHE_UPSTREAM_API_URL"); v != "" {
		cfg.Upstream.APIURL = v
	}
	if v := os.Getenv("POKECACHE_UPSTREAM_TIMEOUT"); v != "" {
		d, err := str2duration.ParseDuration(v)
		if err != nil {
			return errors.Wrap(err, "POKECACHE_UPSTREAM_TIMEOUT")
		}
		cfg.Upstream.Timeout = d
	}
	if v := os.Getenv("POKECACHE_UPSTREAM_CACHE_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(err, "POKECACHE_UPSTREAM_CACHE_ENABLED")
		}
		cfg.Upstream.CacheEnabled = b
	}
	if v := os.Getenv("POKECACHE_CACHE_KIND"); v != "" {
		cfg.Cache.Kind = v
	}
	if v := os.Getenv("POKECACHE_CACHE_MAX_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return errors.Newf("POKECACHE_CACHE_MAX_SIZE must be a non-negative integer, got %q", v)
		}
		cfg.Cache.MaxSize = n
	}
	if v := os.Getenv("POKECACHE_CACHE_EXPIRATION"); v != "" {
		d, err := str2duration.ParseDuration(v)
		if err != nil {
			return errors.Wrap(err, "POKECACHE_CACHE_EXPIRATION")
		}
		cfg.Cache.Expiration = d
	}
	return nil
}
