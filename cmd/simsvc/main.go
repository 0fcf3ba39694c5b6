package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"duelsim/internal/api"
	"duelsim/internal/combat"
	"duelsim/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "simsvc:", err)
		os.Exit(1)
	}
}

func run() error {
	// settings seed the flag defaults, so -env is read ahead of flag.Parse
	envFile := envFileArg(os.Args[1:], ".env")
	settings, err := config.LoadSettings(envFile)
	if err != nil {
		return err
	}

	var cfgPath, out, idA, idB, addr string
	var seed int64
	var n, workers, maxTicks int
	var track, rawHistory, serve bool
	flag.StringVar(&envFile, "env", envFile, "env file preloaded before reading DUELSIM_* variables")
	flag.StringVar(&cfgPath, "config", filepath.Join("assets", "archetypes.yaml"), "archetype catalog")
	flag.StringVar(&idA, "a", "healer", "archetype id for side A")
	flag.StringVar(&idB, "b", "attacker", "archetype id for side B")
	flag.StringVar(&out, "out", "out.json", "report file")
	flag.Int64Var(&seed, "seed", settings.Seed, "seed (0 = now)")
	flag.IntVar(&n, "n", settings.Trials, "number of simulations")
	flag.IntVar(&workers, "workers", settings.Workers, "parallel workers (0 = GOMAXPROCS)")
	flag.IntVar(&maxTicks, "max-ticks", settings.MaxTicks, "tick ceiling per trial")
	flag.BoolVar(&track, "track", false, "record health per tick and write the average trajectory")
	flag.BoolVar(&rawHistory, "raw", false, "also write raw per-trial health samples (with -track)")
	flag.BoolVar(&serve, "serve", false, "serve the HTTP API instead of running one batch")
	flag.StringVar(&addr, "addr", settings.HTTPAddr, "HTTP listen address")
	flag.Parse()

	log, err := newLogger(settings.LogLevel, settings.LogFormat)
	if err != nil {
		return err
	}
	defer log.Sync()

	catalog, err := config.LoadCatalog(cfgPath)
	if err != nil {
		return err
	}
	sim := combat.NewSimulator(
		combat.WithWorkers(workers),
		combat.WithMaxTicks(maxTicks),
		combat.WithLogger(log.Named("combat")),
	)

	if serve {
		return serveHTTP(addr, api.NewHandler(sim, catalog, log.Named("api"), n), log)
	}

	a, err := catalog.Get(idA)
	if err != nil {
		return err
	}
	b, err := catalog.Get(idB)
	if err != nil {
		return err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	res, err := sim.Run(context.Background(), combat.Request{A: a, B: b, Trials: n, TrackHealth: track, Seed: seed})
	if err != nil {
		return err
	}

	rep := combat.NewReport(idA, idB, res, track && rawHistory)
	if err := os.WriteFile(out, combat.MarshalPretty(rep), 0644); err != nil {
		return err
	}
	fmt.Printf("%s vs %s: winner %s (%.2f%%), ties %d, stalemates %d -> %s\n",
		idA, idB, winnerLabel(rep.Leader, idA, idB), rep.LeaderRate, rep.Tally.Ties, rep.Tally.Stalemates, filepath.Base(out))
	return nil
}

// winnerLabel maps a report's leader onto archetype ids; an exact 50% stays "even".
func winnerLabel(leader, idA, idB string) string {
	switch leader {
	case "A":
		return idA
	case "B":
		return idB
	default:
		return "even"
	}
}

func envFileArg(args []string, def string) string {
	for i, arg := range args {
		switch {
		case arg == "-env" || arg == "--env":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(arg, "-env="):
			return strings.TrimPrefix(arg, "-env=")
		case strings.HasPrefix(arg, "--env="):
			return strings.TrimPrefix(arg, "--env=")
		}
	}
	return def
}

func serveHTTP(addr string, h *api.Handler, log *zap.Logger) error {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(api.RequestLogger(log.Named("http")))
	h.RegisterRoutes(e)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
