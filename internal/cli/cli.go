package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-taskassign/credentials/filerepo"
	"github.com/jrsteele09/go-taskassign/gateway"
	"github.com/jrsteele09/go-taskassign/internal/config"
	"github.com/jrsteele09/go-taskassign/session"
	"github.com/jrsteele09/go-taskassign/tasks"
	"github.com/jrsteele09/go-taskassign/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app wires the SDK together for the CLI: file-backed credential store,
// gateway, session manager and the domain API clients. The CLI stands in
// for the mobile UI the server was built for.
type app struct {
	cfg     config.Config
	manager *session.Manager
	tasks   *tasks.Client
	users   *users.Client
	log     zerolog.Logger
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	a := &app{}

	var (
		configPath string
		verbose    bool
	)

	root := &cobra.Command{
		Use:           "taskcli",
		Short:         "Client for the task-assignment server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(configPath, verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			figure.NewFigure(a.cfg.GetAppName(), "cybermedium", true).Print()
			return cmd.Help()
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: <data folder>/config.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.newLoginCmd(),
		a.newLogoutCmd(),
		a.newWhoamiCmd(),
		a.newTasksCmd(),
		a.newUsersCmd(),
	)

	return root.ExecuteContext(ctx)
}

func (a *app) init(configPath string, verbose bool) error {
	a.log = zerolog.Nop()
	if verbose {
		a.log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}

	if configPath == "" {
		configPath = filepath.Join(config.New().GetDataFolder(), "config.yaml")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return errors.Wrap(err, "[cli.init] load config")
	}
	a.cfg = cfg

	creds, err := filerepo.NewFileRepo(cfg.GetDataFolder())
	if err != nil {
		return errors.Wrap(err, "[cli.init] credential store")
	}

	gw, err := gateway.New(cfg.GetBaseURL(), creds,
		gateway.WithTimeout(cfg.GetRequestTimeout()),
		gateway.WithLogger(a.log),
	)
	if err != nil {
		return errors.Wrap(err, "[cli.init] gateway")
	}

	usersClient, err := users.NewClient(gw)
	if err != nil {
		return errors.Wrap(err, "[cli.init] users client")
	}
	tasksClient, err := tasks.NewClient(gw)
	if err != nil {
		return errors.Wrap(err, "[cli.init] tasks client")
	}

	manager, err := session.NewManager(session.Deps{
		Credentials: creds,
		Gateway:     gw,
		Users:       usersClient,
	}, session.WithLogger(a.log))
	if err != nil {
		return errors.Wrap(err, "[cli.init] session manager")
	}

	a.manager = manager
	a.tasks = tasksClient
	a.users = usersClient
	return nil
}

// requireSession resumes the stored session and fails with a user-facing
// message when no authenticated session can be derived.
func (a *app) requireSession(ctx context.Context) error {
	if err := a.manager.Resume(ctx); err != nil {
		return err
	}
	if a.manager.Status() != session.StatusAuthenticated {
		return errors.New("not logged in - run 'taskcli login' first")
	}
	return nil
}
