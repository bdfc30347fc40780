package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/paljsingh/consultqueue"
	"github.com/paljsingh/consultqueue/internal/blob"
	"github.com/paljsingh/consultqueue/internal/clinic"
	"github.com/paljsingh/consultqueue/internal/config"
)

func main() {
	var cfgFile, rosterFile, commandsFile string
	var verbose bool
	flag.StringVar(&cfgFile, "config", "", "Config File")
	flag.StringVar(&rosterFile, "roster", "", "Roster file, overrides the config")
	flag.StringVar(&commandsFile, "commands", "", "Command file, overrides the config")
	flag.BoolVar(&verbose, "v", false, "Log every queue event")
	flag.Parse()

	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		fail(err)
	}
	if rosterFile != "" {
		cfg.RosterFile = rosterFile
	}
	if commandsFile != "" {
		cfg.CommandsFile = commandsFile
	}
	color.NoColor = color.NoColor || !cfg.Color

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	logger := stdLogger{l: log.New(os.Stderr, "consultq ", log.LstdFlags), debug: verbose}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if cfg.MetricsAddr != "" {
		ln, err := net.Listen("tcp", cfg.MetricsAddr)
		if err != nil {
			fail(err)
		}
		srv := serveMetrics(ln, reg, logger)
		defer func() {
			shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
			defer stop()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	res, err := run(ctx, cfg, reg, logger)
	if err != nil {
		fail(err)
	}
	printStatus(os.Stderr, res)

	if cfg.MetricsAddr != "" {
		logger.Info("serving metrics until interrupted", "addr", cfg.MetricsAddr)
		<-ctx.Done()
	}
}

// run executes one batch described by cfg.
func run(ctx context.Context, cfg config.Config, reg prometheus.Registerer, logger consultqueue.Logger) (clinic.Result, error) {
	if err := cfg.Validate(); err != nil {
		return clinic.Result{}, err
	}
	store, err := blob.Open(ctx, cfg.BlobOptions())
	if err != nil {
		return clinic.Result{}, fmt.Errorf("open blob store: %w", err)
	}

	roster, err := os.Open(cfg.RosterFile)
	if err != nil {
		return clinic.Result{}, err
	}
	defer roster.Close()
	commands, err := os.Open(cfg.CommandsFile)
	if err != nil {
		return clinic.Result{}, err
	}
	defer commands.Close()

	opts := append(cfg.QueueOptions(),
		consultqueue.WithLogger(logger),
		consultqueue.WithMetrics(consultqueue.NewMetrics(reg)),
	)
	q := consultqueue.NewConsultQueue(opts...)
	session := clinic.NewSession(q, store, clinic.WithLogger(logger), clinic.WithReportKey(cfg.ReportKey))
	return session.Run(ctx, roster, commands)
}

func serveMetrics(ln net.Listener, g prometheus.Gatherer, logger consultqueue.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "error", err)
		}
	}()
	return srv
}

func printStatus(w io.Writer, res clinic.Result) {
	ok := color.New(color.FgGreen, color.Bold)
	ok.Fprint(w, "OK ")
	fmt.Fprintf(w, "run %s: %d admitted, %d consulted, %d waiting", res.RunID, res.Admitted, res.Consulted, res.Waiting)
	if res.Skipped > 0 {
		color.New(color.FgYellow).Fprintf(w, ", %d skipped", res.Skipped)
	}
	fmt.Fprintf(w, " -> %s\n", res.Report.Key)
}

func fail(err error) {
	color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "FAIL ")
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
