// Package main serves a fake engagement dashboard API for local demos.
package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/j-veylop/engagement-dashboard-tui/internal/fakeapi"
	"github.com/j-veylop/engagement-dashboard-tui/internal/logger"
)

func main() {
	addr := flag.String("addr", ":3000", "listen address")
	count := flag.Int("count", 120, "number of generated channels")
	seed := flag.Int64("seed", 1, "dataset seed")
	token := flag.String("token", "", "required X-Auth-Token, empty accepts any request")
	quiet := flag.Bool("quiet", false, "disable request logging")
	flag.Parse()

	if _, err := logger.Setup("", "info"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	channels := fakeapi.Generate(*count, time.Now(), *seed)
	handler := fakeapi.New(channels, fakeapi.Options{
		AuthToken:   *token,
		LogRequests: !*quiet,
	})

	srv := &http.Server{
		Addr:              *addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("fake engagement API listening", "addr", *addr, "channels", len(channels))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
