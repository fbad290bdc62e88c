// cachedemo exercises the generic cache with several value types and a
// burst of concurrent operations. Useful as a smoke test and as living
// documentation for the API.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pokeproxy/go-cache/cache"
	"github.com/pokeproxy/go-cache/config"
	"github.com/pokeproxy/go-cache/logger"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "cachedemo",
	Short: "Demonstrates the generic in-memory cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		log := logger.NewConsoleLogger()

		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		log.Info("loaded configuration: cache kind=%s max_size=%d expiration=%s",
			cfg.Cache.Kind, cfg.Cache.MaxSize, cfg.Cache.Expiration)

		stringCacheExample(log)
		numericCacheExample(log)
		structCacheExample(log)
		sliceCacheExample(log)
		return concurrentExample(cmd.Context(), log)
	},
}

func stringCacheExample(log logger.Logger) {
	log.Info("string cache example")
	c := cache.New[string](cache.Config{Kind: cache.KindMemory, MaxSize: 500, Expiration: 30 * time.Minute}, cache.WithLogger(log))

	_ = c.Insert("user:123", `{"id": 123, "name": "John Doe"}`)
	_ = c.Insert("config:app", "debug=true,timeout=30")

	if user, found := c.Get("user:123"); found {
		log.Info("cached user data: %s", user)
	}
	if conf, found := c.Get("config:app"); found {
		log.Info("cached config: %s", conf)
	}
	log.Info("cache size: %d", c.Size())
}

func numericCacheExample(log logger.Logger) {
	log.Info("numeric cache example")
	c := cache.New[float64](cache.Config{Kind: cache.KindMemory, MaxSize: 100, Expiration: 5 * time.Minute}, cache.WithLogger(log))

	_ = c.Insert("pi", 3.14159)
	_ = c.Insert("e", 2.71828)
	_ = c.Insert("golden_ratio", 1.618033)

	if pi, found := c.Get("pi"); found {
		log.Info("pi = %v, area of circle (r=5): %v", pi, pi*5*5)
	}
	log.Info("math cache size: %d, hit rate: %.2f", c.Size(), c.HitRate())
}

type userSession struct {
	UserID      uint64
	Token       string
	ExpiresAt   uint64
	Permissions []string
}

func structCacheExample(log logger.Logger) {
	log.Info("struct cache example")
	c := cache.New[userSession](cache.Config{Kind: cache.KindMemory, MaxSize: 10000, Expiration: 2 * time.Hour}, cache.WithLogger(log))

	_ = c.Insert("session:abc123xyz", userSession{
		UserID:      123,
		Token:       "abc123xyz",
		ExpiresAt:   1234567890,
		Permissions: []string{"read", "write"},
	})

	if session, found := c.Get("session:abc123xyz"); found {
		log.Info("user session: id=%d permissions=%v", session.UserID, session.Permissions)
	}
	log.Info("session cache size: %d", c.Size())
}

func sliceCacheExample(log logger.Logger) {
	log.Info("slice cache example")
	c := cache.New[[]string](cache.Config{Kind: cache.KindMemory, MaxSize: 50, Expiration: 10 * time.Minute},
		cache.WithLogger(log), cache.WithSnapshot())

	_ = c.Insert("tasks:morning", []string{"check emails", "review PRs", "team standup"})
	_ = c.Insert("tasks:afternoon", []string{"deploy to staging", "write docs", "fix bugs"})

	if tasks, found := c.Get("tasks:morning"); found {
		log.Info("morning tasks (%d): %v", len(tasks), tasks)
	}
	if tasks, found := c.Get("tasks:afternoon"); found {
		log.Info("afternoon tasks (%d): %v", len(tasks), tasks)
	}
	log.Info("task cache size: %d", c.Size())
}

func concurrentExample(ctx context.Context, log logger.Logger) error {
	log.Info("concurrent cache example")
	c := cache.New[string](cache.Config{Kind: cache.KindMemory, MaxSize: 100, Expiration: time.Hour}, cache.WithLogger(log))

	cleanupCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go cache.RunCleanup(cleanupCtx, c, cache.DefaultCleanupInterval)

	g, _ := errgroup.WithContext(ctx)
	for i := 1; i <= 5; i++ {
		i := i
		g.Go(func() error {
			key := fmt.Sprintf("async_key_%d", i)
			if err := c.Insert(key, fmt.Sprintf("async_value_%d", i)); err != nil {
				return err
			}
			if val, found := c.Get(key); found {
				log.Info("retrieved: %s = %s", key, val)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	stats := c.Stats()
	log.Info("final cache size: %d, hits: %d, misses: %d", c.Size(), stats.Hits, stats.Misses)
	return nil
}

func main() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "path to YAML configuration file")
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
