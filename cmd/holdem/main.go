package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/decred/slog"

	"github.com/vctt94/holdemengine/pkg/config"
	"github.com/vctt94/holdemengine/pkg/history"
	"github.com/vctt94/holdemengine/pkg/logging"
	"github.com/vctt94/holdemengine/pkg/poker"
	"github.com/vctt94/holdemengine/pkg/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "holdem: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath string
		seed       int64
		hands      int
		dbPath     string
		logFile    string
		debugLevel string
		headless   bool
	)
	flag.StringVar(&configPath, "config", "", "Path to a YAML table configuration")
	flag.Int64Var(&seed, "seed", 0, "Deterministic RNG seed for decks and bots (0 = random)")
	flag.IntVar(&hands, "hands", 0, "Stop after this many hands (0 = until one player remains)")
	flag.StringVar(&dbPath, "db", "", "Path to SQLite hand history (created if missing)")
	flag.StringVar(&logFile, "logfile", "", "Write logs to this rotated file")
	flag.StringVar(&debugLevel, "debuglevel", "", "Logging level: trace, debug, info, warn, error; or SUBSYS=level pairs")
	flag.BoolVar(&headless, "headless", false, "Seat bots in place of the human player and print results")
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	// Flags override the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = seed
		case "hands":
			cfg.Hands = hands
		case "db":
			cfg.DBPath = dbPath
		case "logfile":
			cfg.LogFile = logFile
		case "debuglevel":
			cfg.DebugLevel = debugLevel
		}
	})
	if headless {
		for i := range cfg.Players {
			if cfg.Players[i].Kind == config.KindHuman {
				cfg.Players[i].Kind = config.KindBot
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logBackend, err := logging.NewLogBackend(logging.LogConfig{
		LogFile:    cfg.LogFile,
		DebugLevel: cfg.DebugLevel,
	})
	if err != nil {
		return err
	}
	defer logBackend.Close()
	log := logBackend.Logger("MAIN")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	log.Infof("Starting with seed %d", cfg.Seed)
	rng := rand.New(rand.NewSource(cfg.Seed))

	var (
		requests chan poker.DecisionRequest
		events   chan poker.TableEvent
		observer poker.Observer
	)
	interactive := cfg.HasHuman()
	if interactive {
		requests = make(chan poker.DecisionRequest)
		events = make(chan poker.TableEvent, 64)
		observer = poker.NewEventPublisher(events)
	}

	players, err := buildPlayers(cfg, rng, requests)
	if err != nil {
		return err
	}

	var onHand func(poker.HandResult)
	if cfg.DBPath != "" {
		db, err := history.NewDB(cfg.DBPath, logBackend.Logger("HIST"))
		if err != nil {
			return fmt.Errorf("failed to open hand history: %w", err)
		}
		defer db.Close()
		for _, p := range players {
			if err := db.SeatPlayer(p.Name, p.Chips); err != nil {
				return err
			}
		}
		onHand = db.Recorder()
	}

	engine := poker.NewEngine(poker.EngineConfig{
		Log:      logBackend.Logger("ENGN"),
		Observer: observer,
	})
	session, err := poker.NewSession(engine, players, poker.SessionConfig{
		Log:            logBackend.Logger("SESS"),
		Blinds:         poker.Blinds{Small: cfg.SmallBlind, Big: cfg.BigBlind},
		MinRaise:       cfg.MinRaise,
		Hands:          cfg.Hands,
		Rand:           rng,
		OnHandComplete: onHand,
	})
	if err != nil {
		return err
	}

	if !interactive {
		err := session.Run(ctx)
		printStandings(log, session)
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	// The UI owns the terminal; logs stay in the buffer and the log file.
	logBackend.SetConsole(nil)
	done := make(chan error, 1)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		done <- session.Run(ctx)
	}()
	err = ui.Run(ctx, ui.Config{
		Player:   humanName(cfg),
		Requests: requests,
		Events:   events,
		Done:     done,
		Cancel:   cancel,
		LogLines: logBackend.LastLines,
	})
	cancel()
	<-finished
	printStandings(log, session)
	return err
}

// printStandings writes the final stacks, largest first.
func printStandings(log slog.Logger, s *poker.Session) {
	players := s.Players()
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Chips > players[j].Chips
	})
	log.Infof("Session finished after %d hands", s.HandsPlayed())
	fmt.Printf("Hands played: %d\n", s.HandsPlayed())
	for _, p := range players {
		fmt.Printf("  %-12s %d\n", p.Name, p.Chips)
	}
}
