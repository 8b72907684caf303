// Command migrate applies the versioned SQL migrations with the Atlas CLI.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"nest/internal/pkg/config"
	"nest/internal/pkg/errs"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/kelseyhightower/envconfig"
)

func main() {
	dir := flag.String("dir", "file://migrations", "migration directory URL")
	atlasBin := flag.String("atlas", "atlas", "path to the atlas binary")
	statusOnly := flag.Bool("status", false, "report pending migrations without applying them")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall timeout")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, logger, *atlasBin, *dir, *statusOnly); err != nil {
		logger.Error("migration failed", "error", err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, atlasBin, dir string, statusOnly bool) error {
	var db config.DBConfig
	if err := envconfig.Process("", &db); err != nil {
		return errs.Wrap(err, "load database config")
	}

	client, err := atlasexec.NewClient(".", atlasBin)
	if err != nil {
		return errs.Wrap(err, "init atlas client")
	}

	if statusOnly {
		status, err := client.MigrateStatus(ctx, &atlasexec.MigrateStatusParams{
			URL:    db.BuildDSN(),
			DirURL: dir,
		})
		if err != nil {
			return errs.Wrap(err, "migrate status")
		}
		logger.Info("migration status", "current", status.Current, "next", status.Next, "pending", len(status.Pending))
		return nil
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    db.BuildDSN(),
		DirURL: dir,
	})
	if err != nil {
		return errs.Wrap(err, "migrate apply")
	}
	logger.Info("migrations applied", "from", res.Current, "to", res.Target, "applied", len(res.Applied))
	return nil
}
