package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/meander/pkg/jobstore"
	"github.com/matzehuels/meander/pkg/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	backend  backendFlags
	addr     string
	mongoURI string
	jobsDir  string
	jobTTL   time.Duration
	timeout  time.Duration
}

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tuner over HTTP",
		Long: `Serve runs the HTTP API. Jobs are kept in MongoDB when --mongo is set,
in --jobs-dir when given, and in memory otherwise. Results are cached in
Redis when --redis is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	opts.backend.register(cmd)
	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", os.Getenv(envMongoURI), "MongoDB URI for the job store")
	cmd.Flags().StringVar(&opts.jobsDir, "jobs-dir", "", "store jobs as files in this directory")
	cmd.Flags().DurationVar(&opts.jobTTL, "job-ttl", jobstore.DefaultTTL, "how long finished jobs are kept")
	cmd.Flags().DurationVar(&opts.timeout, "job-timeout", 5*time.Minute, "maximum tuning time per job")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, opts.backend, "api:")
	if err != nil {
		return err
	}
	defer runner.Close()

	store, err := newJobStore(ctx, opts)
	if err != nil {
		return err
	}
	defer store.Close()

	go cleanupJobs(ctx, store, opts.jobTTL)

	srv := server.New(runner, store, logger, server.Config{
		JobTTL:     opts.jobTTL,
		JobTimeout: opts.timeout,
	})
	return srv.ListenAndServe(ctx, opts.addr)
}

func newJobStore(ctx context.Context, opts *serveOpts) (jobstore.Store, error) {
	logger := loggerFromContext(ctx)
	switch {
	case opts.mongoURI != "":
		logger.Info("job store", "backend", "mongo")
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return jobstore.NewMongoStore(connectCtx, jobstore.MongoConfig{URI: opts.mongoURI})
	case opts.jobsDir != "":
		logger.Info("job store", "backend", "file", "dir", opts.jobsDir)
		return jobstore.NewFileStore(opts.jobsDir)
	default:
		logger.Info("job store", "backend", "memory")
		return jobstore.NewMemoryStore(), nil
	}
}

// cleanupJobs removes expired jobs periodically until ctx is done.
func cleanupJobs(ctx context.Context, store jobstore.Store, ttl time.Duration) {
	interval := min(max(ttl/4, time.Minute), time.Hour)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := store.Cleanup(ctx); err != nil {
				loggerFromContext(ctx).Warn("job cleanup failed", "error", err)
			}
		}
	}
}
