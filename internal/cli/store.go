package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/protviz/protviz/pkg/cache"
)

// storeFlags holds the cache backend selection shared by the commands that
// talk to upstream services.
type storeFlags struct {
	noCache  bool
	redisURL string
}

func (f *storeFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&f.redisURL, "redis", "", "redis URL for a shared cache (default: local file cache)")
}

// open returns the cache backend the flags select: a no-op cache with
// --no-cache, Redis with --redis, and the local file cache otherwise.
func (f *storeFlags) open(ctx context.Context) (cache.Cache, error) {
	if f.noCache {
		return cache.NewNullCache(), nil
	}
	if f.redisURL != "" {
		store, err := cache.NewRedisCacheFromURL(ctx, f.redisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return store, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return nil, fmt.Errorf("get cache dir: %w", err)
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the local cache directory, following the platform
// convention (e.g. ~/.cache/protviz on Linux).
func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "protviz"), nil
}
