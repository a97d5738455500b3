package commands

import (
	"context"

	"course-scanner/internal/catalog"
	"course-scanner/internal/config"
	"course-scanner/internal/contact"
	"course-scanner/internal/scanner"
	"course-scanner/internal/search"
	"course-scanner/internal/selection"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// App holds the collaborators shared by every command.
type App struct {
	Cfg     *config.Config
	Log     zerolog.Logger
	Scanner *scanner.Client
	Brands  *catalog.BrandDirectory
	Search  *search.Service
	Contact *contact.Client

	metrics *metricsServer
}

func NewApp(cfg *config.Config, log zerolog.Logger) *App {
	sc := scanner.New(cfg.ScannerBaseURL, cfg.FetchTimeout)
	if cfg.RetryMaxAttempts > 0 {
		sc.Retry.MaxAttempts = cfg.RetryMaxAttempts
	}
	sc.Log = log.With().Str("component", "scanner").Logger()

	cc := contact.New(cfg.ContactURL, cfg.FetchTimeout)
	cc.Log = log.With().Str("component", "contact").Logger()

	svc := search.NewService(sc, log)
	if cfg.FetchTimeout > 0 {
		svc.Timeout = cfg.FetchTimeout
	}

	return &App{
		Cfg:     cfg,
		Log:     log,
		Scanner: sc,
		Brands:  catalog.NewBrandDirectory(sc, log),
		Search:  svc,
		Contact: cc,
	}
}

func (a *App) selection() *selection.Controller {
	return selection.New(a.Scanner,
		selection.WithLogger(a.Log.With().Str("component", "selection").Logger()),
		selection.WithTimeout(a.Cfg.FetchTimeout),
	)
}

func NewRootCmd(app *App) *cobra.Command {
	var metricsAddr string
	root := &cobra.Command{
		Use:           "coursescanner",
		Short:         "coursescanner compares training course offers across providers.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if metricsAddr == "" {
				return nil
			}
			ms, err := startMetrics(metricsAddr, app.Log)
			if err != nil {
				return err
			}
			app.metrics = ms
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.stopMetrics()
		},
	}
	root.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", app.Cfg.MetricsAddr, "serve Prometheus metrics on this address while the command runs, e.g. :9090")
	root.AddCommand(
		newBrandsCmd(app),
		newCoursesCmd(app),
		newSearchCmd(app),
		newFindCmd(app),
		newTopCmd(app),
		newContactCmd(app),
		newExportCmd(app),
	)
	return root
}

// ExecuteContext runs the CLI. The metrics server, if any, is stopped even
// when the command fails.
func ExecuteContext(ctx context.Context, app *App) error {
	defer app.stopMetrics()
	return NewRootCmd(app).ExecuteContext(ctx)
}

func (a *App) stopMetrics() {
	if a.metrics != nil {
		a.metrics.Stop()
		a.metrics = nil
	}
}
