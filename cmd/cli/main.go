package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/communitykitchen/eventdesk/cmd/cli/commands"
	"github.com/communitykitchen/eventdesk/internal/config"
	"github.com/communitykitchen/eventdesk/pkg/postgres"
	"github.com/communitykitchen/eventdesk/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "eventdesk",
		Short: "EventDesk CLI - Manage community event requests",
		Long:  `A CLI tool for coordinating event requests: staffing assignments, lifecycle status, toolkit emails, and roster publishing.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.AssignCmd(appRef()))
	rootCmd.AddCommand(commands.RemoveAssignmentCmd(appRef()))
	rootCmd.AddCommand(commands.SetVanDriverCmd(appRef()))
	rootCmd.AddCommand(commands.SetStatusCmd(appRef()))
	rootCmd.AddCommand(commands.ReactivateCmd(appRef()))
	rootCmd.AddCommand(commands.SendToolkitCmd(appRef()))
	rootCmd.AddCommand(commands.ResolveRecipientsCmd(appRef()))
	rootCmd.AddCommand(commands.MissingInfoCmd(appRef()))
	rootCmd.AddCommand(commands.FollowUpsCmd(appRef()))
	rootCmd.AddCommand(commands.PublishRosterCmd(appRef()))
	rootCmd.AddCommand(commands.ListRequestsCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext, created empty up front so command
// constructors can capture it before initApp fills it in
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger, config, and the database connection
func initApp() error {
	appRef()
	app.Ctx = context.Background()

	var err error
	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	app.Logger.Info("Loading OAuth client configuration")
	app.OAuthCfg, err = config.LoadOAuthClient()
	if err != nil {
		return fmt.Errorf("failed to load OAuth client config: %w", err)
	}
	app.Logger.Debug("OAuth configuration loaded successfully")

	connString, err := config.DatabaseURL()
	if err != nil {
		return err
	}

	app.Logger.Info("Connecting to database")
	database, err := postgres.NewDB(app.Ctx, connString)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app.Store = database
	app.Logger.Info("Database initialized successfully")

	return nil
}
