// 样本转储：按 tier 生成并写入 store 文件
package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ic-timon/nd-rng/normal"
	"github.com/ic-timon/nd-rng/store"
)

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Generate samples with a tier and write them to a dump file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return dump(cfg, args[0])
		},
	}
	registerFlags(cmd)
	cmd.Flags().Bool("offheap", false, "generate into a C.malloc buffer (requires CGO)")
	return cmd
}

func dump(cfg *Config, path string) error {
	tier, err := resolveTier(cfg.Tier)
	if err != nil {
		return err
	}
	g := normal.New(cfg.Mean, cfg.Variance, normal.WithSeed(cfg.Seed))
	buf := normal.AllocBuffer(cfg.Count, cfg.Offheap)
	defer buf.Release()
	g.FillBuffer(tier, buf)

	h := &store.Header{
		Tier:     uint16(tier),
		Mean:     cfg.Mean,
		Variance: cfg.Variance,
		Seed:     g.Seed(),
	}
	if err := store.WriteFile(path, h, buf.Data()); err != nil {
		return fmt.Errorf("dump %s: %w", path, err)
	}
	st, err := os.Stat(path)
	if err != nil {
		return err
	}
	fmt.Printf("已写入 %s: %s samples (%s), tier %s, seed %d\n",
		path, humanize.Comma(int64(h.Count)), humanize.IBytes(uint64(st.Size())), tier, h.Seed)
	return nil
}
