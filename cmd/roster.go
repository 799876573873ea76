package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/skylark/droneops/app"
	"github.com/skylark/droneops/config"
)

var (
	rosterSkill    string
	rosterLocation string
)

var rosterCmd = &cobra.Command{
	Use:   "roster [pilots|drones]",
	Short: "List available pilots or drones",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoster,
}

func init() {
	rosterCmd.Flags().StringVar(&rosterSkill, "skill", "", "substring filter on skills or capabilities")
	rosterCmd.Flags().StringVar(&rosterLocation, "location", "", "substring filter on location")
	rootCmd.AddCommand(rosterCmd)
}

func runRoster(cmd *cobra.Command, args []string) error {
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

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	switch args[0] {
	case "pilots":
		pilots, err := svc.Pilots.Available(ctx, rosterSkill, rosterLocation)
		if err != nil {
			return err
		}
		return enc.Encode(pilots)
	case "drones":
		drones, err := svc.Drones.Available(ctx, rosterSkill, rosterLocation)
		if err != nil {
			return err
		}
		return enc.Encode(drones)
	default:
		return fmt.Errorf("unknown roster %q, expected pilots or drones", args[0])
	}
}
