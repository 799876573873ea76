package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/skylark/droneops/app"
	"github.com/skylark/droneops/config"
	"github.com/skylark/droneops/core/store"
	"github.com/skylark/droneops/pkg/export"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export [missions|pilot_roster|drone_fleet]",
	Short: "Export a record table as JSON or CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format: json or csv")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	kind := store.Kind(args[0])
	if len(store.Columns(kind)) == 0 {
		return fmt.Errorf("unknown table %q", args[0])
	}
	switch exportFormat {
	case "json":
		return export.WriteJSON(ctx, os.Stdout, svc.Store(), kind)
	case "csv":
		return export.WriteCSV(ctx, os.Stdout, svc.Store(), kind)
	default:
		return fmt.Errorf("unknown format %q, expected json or csv", exportFormat)
	}
}
