package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/feedbackboard/internal/buildinfo"
	"github.com/dmitrijs2005/feedbackboard/internal/client/cli"
	"github.com/dmitrijs2005/feedbackboard/internal/client/client"
	"github.com/dmitrijs2005/feedbackboard/internal/client/config"
	"github.com/dmitrijs2005/feedbackboard/internal/client/services"
	"github.com/dmitrijs2005/feedbackboard/internal/client/session"
	"github.com/dmitrijs2005/feedbackboard/internal/client/storage"
	"github.com/dmitrijs2005/feedbackboard/internal/logging"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(os.Args[1:], os.Environ())
	if err != nil {
		log.Fatalf("%v", err)
	}

	buildinfo.PrintBuildData(os.Stdout)
	if cfg.ShowVersion {
		return
	}

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("%v", err)
	}

}

func run(ctx context.Context, cfg *config.Config) error {
	logOut, closeLog, err := openLog(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	logger, err := logging.New(cfg.LogLevel, logOut)
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg.SessionDBPath)
	if err != nil {
		return err
	}

	sess := session.Open(ctx, store, session.WithLogger(logger))
	defer func() {
		if err := sess.Close(); err != nil {
			logger.Warn(ctx, "session store close failed", "error", err)
		}
	}()

	api, err := client.NewHTTPClient(cfg.APIBaseURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithRateLimit(cfg.RateLimit),
		client.WithTokenSource(sess),
		client.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	svc := cli.Services{
		Auth:       services.NewAuthService(api, sess, logger),
		Boards:     services.NewBoardService(api, sess, logger),
		Categories: services.NewCategoryService(api, logger),
		Feedback:   services.NewFeedbackService(api, sess, logger),
		Comments:   services.NewCommentService(api, sess, logger),
	}

	logger.Info(ctx, "starting", "version", buildinfo.Version, "api", cfg.APIBaseURL)
	cli.NewApp(sess, svc, logger, os.Stdin, os.Stdout).Run(ctx)
	return nil
}

// openStore keeps the session in SQLite, or in memory when no path is set.
func openStore(ctx context.Context, path string) (storage.Store, error) {
	if path == "" {
		return storage.NewMemoryStore(), nil
	}
	s, err := storage.OpenSQLite(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}
	return s, nil
}

func openLog(path string) (io.Writer, func(), error) {
	if path == "-" || path == "" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
