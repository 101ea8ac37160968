package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bare-web/bare"
	"github.com/bare-web/bare/config"
	"github.com/bare-web/bare/handlers"
	"github.com/bare-web/bare/router/inbuilt"
	"github.com/bare-web/bare/static"
)

func main() {
	cfg := config.Default()

	addr := flag.String("addr", "0.0.0.0:8080", "address to listen on")
	flag.StringVar(&cfg.Static.Root, "root", cfg.Static.Root, "directory static files are served from")
	flag.StringVar(&cfg.Static.Prefix, "prefix", cfg.Static.Prefix, "request path prefix of static files")
	flag.DurationVar(&cfg.NET.ReadTimeout, "read-timeout", cfg.NET.ReadTimeout, "how long a single read may block, 0 disables")
	flag.Parse()

	logger := log.Default()
	r := handlers.Register(inbuilt.New()).
		Resolver(static.New(cfg.Static, logger)).
		Build()

	app := bare.New(*addr).
		Tune(cfg).
		Logger(logger).
		NotifyOnStart(func() {
			logger.Printf("Server running on %s", *addr)
		}).
		NotifyOnStop(func() {
			logger.Print("Server stopped")
		})

	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
		<-signals
		app.Stop()
	}()

	if err := app.Serve(r); err != nil {
		log.Fatal(err)
	}
}
