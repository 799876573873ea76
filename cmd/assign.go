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
	assignUrgent bool
	assignPilot  string
	assignDrone  string
)

var assignCmd = &cobra.Command{
	Use:   "assign <mission-id>",
	Short: "Plan an assignment for a mission, optionally committing a pair",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssign,
}

func init() {
	assignCmd.Flags().BoolVar(&assignUrgent, "urgent", false, "relax the location constraint and allow overwriting an existing assignment")
	assignCmd.Flags().StringVar(&assignPilot, "pilot", "", "pilot to commit")
	assignCmd.Flags().StringVar(&assignDrone, "drone", "", "drone to commit")
	rootCmd.AddCommand(assignCmd)
}

func runAssign(cmd *cobra.Command, args []string) error {
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

	missionID := args[0]
	if (assignPilot == "") != (assignDrone == "") {
		return fmt.Errorf("--pilot and --drone must be provided together")
	}
	if assignPilot != "" {
		if err := svc.Coordinator.Commit(ctx, missionID, assignPilot, assignDrone, assignUrgent); err != nil {
			return err
		}
		fmt.Printf("mission %s assigned to %s / %s\n", missionID, assignPilot, assignDrone)
		return nil
	}

	plan, err := svc.Coordinator.Plan(ctx, missionID, assignUrgent)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}
