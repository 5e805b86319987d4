package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/newsverify/internal/cache"
)

var cacheDir string

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the article cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached article",
	Long: `Remove every article stored in the disk cache (cache.disk_dir).

The in-memory layer lives only as long as a verify, batch or serve process,
so only the disk layer outlives a run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("dir") {
			cfg.Cache.DiskDir = cacheDir
		}

		out := cmd.OutOrStdout()
		if cfg.Cache.DiskDir == "" {
			fmt.Fprintln(out, "No disk cache configured (cache.disk_dir); nothing to clear")
			return nil
		}

		cfg.Cache.Enabled = true
		if err := cache.New(cfg.Cache).Clear(); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}

		fmt.Fprintf(out, "✓ Cleared article cache: %s\n", cfg.Cache.DiskDir)
		return nil
	},
}

func init() {
	cacheClearCmd.Flags().StringVar(&cacheDir, "dir", "", "cache directory (overrides cache.disk_dir)")

	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
