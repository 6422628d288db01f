// cmd/flightsim/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/opd-ai/go-flightsim/pkg/config"
	"github.com/opd-ai/go-flightsim/pkg/engine"
	"github.com/opd-ai/go-flightsim/pkg/entity"
	"github.com/opd-ai/go-flightsim/pkg/health"
	"github.com/opd-ai/go-flightsim/pkg/input"
	"github.com/opd-ai/go-flightsim/pkg/logging"
	"github.com/opd-ai/go-flightsim/pkg/presenter"
)

func main() {
	logger := logging.NewLogger()
	ctx := logging.WithRunID(context.Background(), logging.GenerateRunID())

	configPath := flag.String("config", "", "Path to configuration file (json, yaml or toml)")
	createDefault := flag.Bool("default", false, "Write the default configuration to -config and exit")
	scenario := flag.String("scenario", "", "Built-in body layout to fly: "+strings.Join(config.ListScenarios(), ", "))
	ticks := flag.Int("ticks", -1, "Ticks to run (overrides config; 0 runs until the session ends)")
	hold := flag.String("hold", "", "Comma separated controls held for the whole run, e.g. thrust_forward,rotate_right")
	target := flag.Uint64("autopilot", 0, "Lock this body and engage the autopilot on the first tick")
	realtime := flag.Bool("realtime", false, "Pace ticks to the wall clock")
	healthAddr := flag.String("health", "", "Serve /health and /ready on this address, e.g. :8080")
	flag.Parse()

	if *createDefault {
		if *configPath == "" {
			logger.Error(ctx, "No configuration path given", nil, "flag", "-config")
			os.Exit(1)
		}
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
		)
		os.Exit(1)
	}
	if *scenario != "" {
		if err := config.ApplyScenario(cfg, *scenario); err != nil {
			logger.Error(ctx, "Failed to apply scenario", err, "scenario", *scenario)
			os.Exit(1)
		}
	}
	if *ticks >= 0 {
		cfg.Session.Ticks = *ticks
	}
	if level, ok := logging.ParseLevel(cfg.Session.LogLevel); ok && os.Getenv(logging.LevelEnv) == "" {
		logger = logging.NewLoggerTo(os.Stdout, level)
	}

	held, err := parseHeld(*hold)
	if err != nil {
		logger.Error(ctx, "Invalid -hold controls", err, "hold", *hold)
		os.Exit(1)
	}

	session, err := engine.NewSession(cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to create session", err)
		os.Exit(1)
	}

	dispatcher := presenter.NewDispatcher(session.EventBus, presenter.Collaborators{}, logger)
	defer dispatcher.Close()

	controls := input.NewAggregator()
	for _, sig := range held {
		controls.Press(sig)
	}
	if *target != 0 {
		controls.LockOn(entity.ID(*target))
		controls.Press(input.ToggleAutopilot)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var healthServer *http.Server
	if *healthAddr != "" {
		healthServer = startHealthServer(ctx, logger, session, *healthAddr)
	}

	session.Start()
	run(ctx, logger, session, controls, *realtime)

	state := session.GetState()
	logger.Info(ctx, "Run complete",
		"ticks", state.Tick,
		"elapsed", state.Elapsed,
		"status", state.Status.String(),
		"end_reason", state.EndReason,
		"position", fmt.Sprintf("%.2f,%.2f,%.2f", state.Vessel.Position.X(), state.Vessel.Position.Y(), state.Vessel.Position.Z()),
		"speed", state.Vessel.Speed,
		"energy", state.Vessel.Energy,
		"hull", state.Vessel.Hull,
		"bodies", len(state.Bodies),
	)

	if healthServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := healthServer.Shutdown(shutdownCtx); err != nil {
			logger.Error(ctx, "Health check server shutdown failed", err)
		}
	}
}

// loadConfig reads path when given, otherwise the defaults with environment
// overrides
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadFromEnv()
	}
	return config.LoadConfig(path)
}

func parseHeld(list string) ([]input.Signal, error) {
	var signals []input.Signal
	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		sig, err := input.ParseSignal(name)
		if err != nil {
			return nil, err
		}
		signals = append(signals, sig)
	}
	return signals, nil
}

// run ticks the session until the configured count, the end of the session
// or an interrupt
func run(ctx context.Context, logger *logging.Logger, session *engine.Session, controls *input.Aggregator, realtime bool) {
	limit := session.Config.Session.Ticks

	var pace <-chan time.Time
	if realtime {
		ticker := time.NewTicker(time.Duration(session.Config.Session.Step * float64(time.Second)))
		defer ticker.Stop()
		pace = ticker.C
	}

	for i := 0; limit <= 0 || i < limit; i++ {
		if pace != nil {
			select {
			case <-ctx.Done():
				return
			case <-pace:
			}
		} else if ctx.Err() != nil {
			return
		}

		if _, err := session.Update(ctx, controls.Snapshot()); err != nil {
			if !errors.Is(err, engine.ErrSessionEnded) {
				logger.Error(ctx, "Tick failed", err, "tick", i)
			}
			return
		}
	}
}

func startHealthServer(ctx context.Context, logger *logging.Logger, session *engine.Session, addr string) *http.Server {
	checker := health.NewChecker()
	checker.AddCheck(health.NewSessionCheck(session.GetState))
	checker.AddCheck(health.NewVesselCheck(session.GetState))
	checker.AddCheck(health.NewProgressCheck(session.GetState, 2*time.Second))
	checker.AddCheck(health.NewMemoryCheck(500, func() int64 {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		return int64(m.Alloc / 1024 / 1024)
	}))

	mux := http.NewServeMux()
	mux.HandleFunc("/health", checker.LivenessHandler)
	mux.HandleFunc("/ready", checker.ReadinessHandler)

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info(ctx, "Starting health check server", "address", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "Health check server failed", err)
		}
	}()
	return server
}
