package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"moverconnect/internal/app"
	"moverconnect/internal/domain/entity"
	"moverconnect/internal/usecase"
	"moverconnect/pkg/config"
	"moverconnect/pkg/logger"
)

// opener connects the admin use case to a backend. The returned func
// releases it.
type opener func(ctx context.Context) (*usecase.AdminUseCase, func(), error)

func main() {
	if err := newRootCmd(openBackend).Execute(); err != nil {
		os.Exit(1)
	}
}

func openBackend(ctx context.Context) (*usecase.AdminUseCase, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logger.Init(cfg.Server.Environment); err != nil {
		return nil, nil, err
	}

	backend, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return usecase.NewAdminUseCase(backend.Movers, backend.Clients), func() {
		backend.Close()
		logger.Sync()
	}, nil
}

type cli struct {
	open    opener
	admin   *usecase.AdminUseCase
	release func()
}

func newRootCmd(open opener) *cobra.Command {
	c := &cli{open: open}

	rootCmd := &cobra.Command{
		Use:          "moverctl",
		Short:        "Operator tools for the mover connection portal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			admin, release, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			c.admin = admin
			c.release = release
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.release != nil {
				c.release()
			}
		},
	}

	rootCmd.AddCommand(c.backfillCmd())
	rootCmd.AddCommand(c.moversCmd())
	rootCmd.AddCommand(c.verifyCmd())
	return rootCmd
}

func (c *cli) backfillCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Fill in missing availability status and display name on movers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			touched, err := c.admin.BackfillMovers(cmd.Context(), dryRun)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, id := range touched {
				fmt.Fprintf(out, "- %s\n", id)
			}
			if dryRun {
				fmt.Fprintf(out, "%d movers would be updated (dry run)\n", len(touched))
			} else {
				fmt.Fprintf(out, "Updated %d movers\n", len(touched))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report movers that need changes without writing")
	return cmd
}

func (c *cli) moversCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "movers",
		Short: "List movers and their verification state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := c.admin.ListMovers(cmd.Context(), status)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "all=%d pending=%d approved=%d rejected=%d\n\n",
				list.Counts.All, list.Counts.Pending, list.Counts.Approved, list.Counts.Rejected)
			for _, m := range list.Movers {
				verification := string(m.VerificationStatus)
				if verification == "" {
					verification = "pending"
				}
				fmt.Fprintf(out, "%s  %-9s %-12s %s <%s>\n", m.ID, verification, m.Status, m.DisplayName(), m.Email)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "all", "Verification status: all, pending, approved or rejected")
	return cmd
}

func (c *cli) verifyCmd() *cobra.Command {
	var by string
	cmd := &cobra.Command{
		Use:   "verify <moverId> <approved|rejected|pending>",
		Short: "Set a mover's verification status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mover, err := c.admin.SetVerification(cmd.Context(), by, args[0], entity.VerificationStatus(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s (by %s)\n", mover.DisplayName(), mover.VerificationStatus, by)
			return nil
		},
	}
	cmd.Flags().StringVar(&by, "by", "", "Email of the admin making the change")
	_ = cmd.MarkFlagRequired("by")
	return cmd
}
