package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"huskywatch/internal/engine"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run a full watch cycle (feed and portal)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPass(cmd, ctx, true, (*engine.Engine).Run)
		},
	}
}

func newFeedCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "feed",
		Short: "Run only the transaction feed pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPass(cmd, ctx, false, (*engine.Engine).RunFeed)
		},
	}
}

func newPortalCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "portal",
		Short: "Run only the transfer portal pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPass(cmd, ctx, true, (*engine.Engine).RunPortal)
		},
	}
}

func runPass(cmd *cobra.Command, ctx *commandContext, needPortal bool, pass func(*engine.Engine, context.Context) error) error {
	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	eng, err := ctx.buildEngine(signalCtx, needPortal)
	if err != nil {
		return err
	}
	return pass(eng, signalCtx)
}
