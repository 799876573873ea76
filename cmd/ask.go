package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/skylark/droneops/app"
	"github.com/skylark/droneops/config"
	"github.com/skylark/droneops/core/command"
)

var askCmd = &cobra.Command{
	Use:   "ask <request...>",
	Short: "Route a free-text operations request",
	Long: `Parses a free-text request like "assign mission M101 urgently" or
"which pilots are free in Austin" and routes it to the matching
operation.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
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

	text := strings.Join(args, " ")
	parsed, err := command.Fallback{}.Parse(ctx, text)
	if err != nil {
		return fmt.Errorf("parse request: %w", err)
	}
	outcome, err := svc.Coordinator.HandleCommand(ctx, parsed)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(outcome)
}
