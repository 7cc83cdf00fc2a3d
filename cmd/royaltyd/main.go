// Command royaltyd serves the royalty ledger over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/openroyalty/libroyalty-go/authz"
	"github.com/openroyalty/libroyalty-go/config"
	"github.com/openroyalty/libroyalty-go/httpd"
	"github.com/openroyalty/libroyalty-go/ledger"
	"github.com/openroyalty/libroyalty-go/logger"
	"github.com/openroyalty/libroyalty-go/oracle"
	"github.com/openroyalty/libroyalty-go/types"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	if err := run(*cfgPath); err != nil {
		fmt.Fprintln(os.Stderr, "royaltyd:", err)
		os.Exit(1)
	}
}

func run(cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// Config validation already vetted every address string.
	auth, err := authz.New(types.MustParseAddress(cfg.Admin))
	if err != nil {
		return err
	}
	adminAddr := types.MustParseAddress(cfg.Admin)
	for _, s := range cfg.ServiceAccounts {
		if err := auth.GrantService(adminAddr, types.MustParseAddress(s)); err != nil {
			return err
		}
	}

	genesis, err := cfg.Genesis()
	if err != nil {
		return err
	}
	blocks := oracle.TimeBlocks{Genesis: genesis, BlockTime: cfg.BlockTime}

	l, err := ledger.Open(cfg.DBPath, auth, &logTreasury{log: log.Named("treasury")}, blocks)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	actors := make(map[string]types.Address, len(cfg.APIKeys))
	for key, addr := range cfg.APIKeys {
		actors[key] = types.MustParseAddress(addr)
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httpd.NewServer(l, log, actors),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.ListenAddr), zap.String("db", cfg.DBPath))
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
