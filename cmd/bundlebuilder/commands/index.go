package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/bundlebuilder/internal/assetdb"
	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
)

// IndexCmd implements the 'index' command.
type IndexCmd struct {
	Subdir string `name:"subdir" help:"Project subdirectory to scan" default:"Assets"`
}

func (i *IndexCmd) Run(ctx context.Context, _ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if cfg.AssetDatabase.Index == "" {
		return errors.ConfigError("asset_database.index is not configured").Build()
	}
	idx, err := assetdb.OpenSQLiteIndex(cfg.Resolve(cfg.AssetDatabase.Index))
	if err != nil {
		return err
	}
	defer func() { _ = idx.Close() }()

	stats, err := idx.Import(ctx, cfg.Resolve(cfg.AssetDatabase.ProjectRoot), i.Subdir)
	if err != nil {
		return err
	}
	total, err := idx.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Indexed %d assets (%d skipped), index holds %d\n", stats.Indexed, stats.Skipped, total)
	return nil
}
