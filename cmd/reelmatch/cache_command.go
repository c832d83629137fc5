package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reelmatch/internal/resolver"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the canonical ID cache",
	}
	cacheCmd.AddCommand(newCacheShowCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	return cacheCmd
}

func newCacheShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show cache location and entry count",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cache := resolver.NewCache(cfg.Paths.ResolverCache, ctx.ensureLogger())
			out := cmd.OutOrStdout()
			if cfg.Paths.ResolverCache == "" {
				fmt.Fprintln(out, "Cache persistence is disabled (memory only)")
				return nil
			}
			fmt.Fprintf(out, "Cache file: %s\n", cfg.Paths.ResolverCache)
			fmt.Fprintf(out, "Entries: %d\n", cache.Count())
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop all cached resolutions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cache := resolver.NewCache(cfg.Paths.ResolverCache, ctx.ensureLogger())
			count := cache.Count()
			if err := cache.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached resolutions\n", count)
			return nil
		},
	}
}
