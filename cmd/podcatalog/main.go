package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jessevdk/go-flags"
	"github.com/sourcegraph/conc"
	"github.com/spf13/afero"
	"golang.org/x/time/rate"

	"podcatalog/api"
	"podcatalog/config"
	"podcatalog/handlers"
	"podcatalog/internal/logging"
	"podcatalog/services/catalog"
	"podcatalog/services/imagerelay"
	"podcatalog/utils"
)

func checkFileExists(filepath string) bool {
	if _, err := os.Stat(filepath); errors.Is(err, os.ErrNotExist) {
		return false
	}
	return true
}

func main() {
	opts, p, err := config.ParseArgs(os.Args[1:])
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			p.WriteHelp(os.Stderr)
			os.Exit(2)
		}
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}

	settings := config.Default()
	if checkFileExists(opts.Conf) {
		loaded, err := config.Load(opts.Conf)
		if err != nil {
			log.Fatalf("[ERROR] can't load config %s, %v", opts.Conf, err)
		}
		settings = *loaded
	}
	settings.Apply(opts)
	if err := settings.Validate(); err != nil {
		log.Fatalf("[ERROR] invalid config: %v", err)
	}

	closer, err := logging.Setup(logging.Options{
		File:       settings.Logging.File,
		MaxSizeMB:  settings.Logging.MaxSizeMB,
		MaxBackups: settings.Logging.MaxBackups,
		MaxAgeDays: settings.Logging.MaxAgeDays,
		Debug:      settings.Logging.Debug,
	})
	if err != nil {
		log.Fatalf("[ERROR] can't set up logging, %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, settings)
	stop()
	closer.Close()
	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

// relayOptions maps the relay settings onto imagerelay.Options. A configured
// max_redirects of 0 turns redirects off.
func relayOptions(s config.Settings) imagerelay.Options {
	opts := imagerelay.Options{
		Timeout:      s.ImageRelay.Timeout,
		MaxRedirects: s.ImageRelay.MaxRedirects,
		MaxBytes:     s.ImageRelay.MaxBytes,
	}
	if opts.MaxRedirects == 0 {
		opts.MaxRedirects = imagerelay.NoRedirects
	}
	return opts
}

// run serves HTTP and performs the one-time catalog load until ctx is done.
func run(ctx context.Context, s config.Settings) error {
	catalogSvc := catalog.New(catalog.NewClient(s.Catalog.URL, s.Catalog.Timeout), nil)
	relay := imagerelay.New(nil, relayOptions(s))
	limiter := api.NewIPRateLimiter(ctx, rate.Limit(s.ImageRelay.RatePerSec), s.ImageRelay.Burst)

	r := utils.NewRouter(utils.OriginPolicy(s.Server.CORS))
	r.Use(api.RequestIDMiddleware(), api.AccessLogMiddleware(nil))
	handlers.Register(r, handlers.Routes{
		Catalog:         handlers.NewCatalogHandler(catalogSvc),
		Images:          handlers.NewImageHandler(relay),
		Version:         handlers.NewVersionHandler(),
		Static:          handlers.NewStaticHandler(afero.NewBasePathFs(afero.NewOsFs(), s.Server.DistDir)),
		RelayMiddleware: []mux.MiddlewareFunc{api.RateLimitMiddleware(limiter)},
	})

	ln, err := net.Listen("tcp", s.Server.Listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.Server.Listen, err)
	}

	srv := &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	var wg conc.WaitGroup
	wg.Go(func() {
		log.Printf("[INFO] podcatalog %s running on http://%s", handlers.GetVersion(), ln.Addr())
		log.Printf("[INFO] image proxy available at http://%s/proxy-image?url=<image-url>", ln.Addr())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	})
	wg.Go(func() {
		// Failures are logged by the service and surfaced through /api/catalog
		_ = catalogSvc.Load(ctx)
	})

	var runErr error
	select {
	case <-ctx.Done():
		log.Printf("[INFO] shutting down")
	case runErr = <-serveErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] graceful shutdown failed: %v", err)
	}
	wg.Wait()
	return runErr
}
