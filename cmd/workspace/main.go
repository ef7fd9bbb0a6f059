package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain/subscriptions"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/infra/db"
	httpx "github.com/Sheyzie/Cr8tive-Workspace-App/internal/infra/http"
)

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath = "config/example.yaml"
		a          *app
	)

	root := &cobra.Command{
		Use:           "workspace",
		Short:         "Cr8tive Workspace membership records",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			a, err = newApp(configPath)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a == nil {
				return nil
			}
			return a.Close()
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", configPath, "path to the YAML config file")

	current := func() *app { return a }
	root.AddCommand(migrateCmd(current), serveCmd(current), importCmd(current), exportCmd(current))
	return root
}

func migrateCmd(app func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			if err := db.Migrate(cmd.Context(), a.cfg.Database.Driver, a.cfg.Database.DSN); err != nil {
				a.log.Error("migrations failed", "err", err)
				return err
			}
			a.log.Info("migrations applied")
			return nil
		},
	}
}

func serveCmd(app func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve /health and /metrics until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := db.Migrate(ctx, a.cfg.Database.Driver, a.cfg.Database.DSN); err != nil {
				a.log.Error("migrations failed", "err", err)
				return err
			}
			a.log.Info("migrations applied")

			srv := httpx.New(a.cfg.HTTP.Addr, a.store, a.cfg.Metrics.Enabled)
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					a.log.Error("http server error", "err", err)
					stop()
				}
			}()
			a.log.Info("HTTP server started", "addr", a.cfg.HTTP.Addr)

			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
			a.log.Info("graceful shutdown complete")
			return nil
		},
	}
}

func importCmd(app func() *app) *cobra.Command {
	var header bool
	cmd := &cobra.Command{
		Use:       "import clients|plans FILE",
		Short:     "Create clients or plans from a CSV or XLSX file",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"clients", "plans"},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := app().backoffice()
			var err error
			switch args[0] {
			case "clients":
				res, ierr := svc.ImportClients(cmd.Context(), args[1], header)
				err = ierr
				report(cmd, res.Imported, len(res.Failed))
			case "plans":
				res, ierr := svc.ImportPlans(cmd.Context(), args[1], header)
				err = ierr
				report(cmd, res.Imported, len(res.Failed))
			default:
				return fmt.Errorf("unknown import target %q", args[0])
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&header, "header", true, "first row holds column names")
	return cmd
}

func report(cmd *cobra.Command, imported, failed int) {
	cmd.Printf("imported %d, failed %d\n", imported, failed)
}

func exportCmd(app func() *app) *cobra.Command {
	var (
		filter       subscriptions.ReportFilter
		subscription string
	)
	cmd := &cobra.Command{
		Use:   "export clients|plans|subscriptions|visits PATH",
		Short: "Write records to a CSV, XLSX or PDF file (visits: PDFs into the PATH directory)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := app().backoffice()
			ctx := cmd.Context()
			switch args[0] {
			case "clients":
				return svc.ExportClients(ctx, args[1])
			case "plans":
				return svc.ExportPlans(ctx, args[1])
			case "subscriptions":
				return svc.ExportSubscriptions(ctx, args[1], filter)
			case "visits":
				if subscription == "" {
					return errors.New("--subscription is required for visits")
				}
				paths, err := svc.ExportVisits(ctx, args[1], subscription)
				for _, p := range paths {
					cmd.Println(p)
				}
				return err
			}
			return fmt.Errorf("unknown export target %q", args[0])
		},
	}
	cmd.Flags().StringVar(&filter.ClientID, "client", "", "only subscriptions of this client key")
	cmd.Flags().StringVar(&filter.PlanID, "plan", "", "only subscriptions on this plan key")
	cmd.Flags().StringVar(&filter.Period, "period", "", "only subscriptions created in this year or month (2025, 2025-03)")
	cmd.Flags().StringVar(&subscription, "subscription", "", "subscription key for the visits export")
	return cmd
}
