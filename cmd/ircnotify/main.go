package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dalnet/ircnotify/internal/config"
	"github.com/dalnet/ircnotify/internal/irc"
	"github.com/dalnet/ircnotify/internal/observers"
	"golang.org/x/sync/errgroup"
)

// Version information - set at build time via ldflags
var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

func main() {
	// Command line flags
	configPath := flag.String("c", "./config.yaml", "Path to configuration file")
	showVersion := flag.Bool("v", false, "Show version information and exit")
	showVersionLong := flag.Bool("version", false, "Show version information and exit")
	flag.Parse()

	// Show version and exit
	if *showVersion || *showVersionLong {
		fmt.Printf("ircnotify version %s\n", version)
		fmt.Printf("Built: %s\n", buildDate)
		fmt.Printf("Commit: %s\n", gitCommit)
		os.Exit(0)
	}

	// Set version info in irc package
	irc.Version = version
	irc.BuildDate = buildDate
	irc.GitCommit = gitCommit

	if err := run(*configPath); err != nil {
		log.Fatal(err)
	}
}

func run(configPath string) error {
	// Make config path absolute
	if !filepath.IsAbs(configPath) {
		wd, _ := os.Getwd()
		configPath = filepath.Join(wd, configPath)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	client := irc.NewClient(cfg)
	if err := register(client, cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("Connecting to %s:%d...", cfg.Server, cfg.Port)
	if err := client.Connect(); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)
		client.Loop()
		log.Println("Connection closed")
		return nil
	})

	g.Go(func() error {
		select {
		case <-ctx.Done():
			log.Println("Received shutdown signal, disconnecting...")
			client.Quit("Received shutdown signal")
		case <-done:
		}
		return nil
	})

	return g.Wait()
}

// register adds the observers enabled in cfg, in a fixed order: identity
// and channel management first so later observers see the settled state.
func register(client *irc.Client, cfg *config.Config) error {
	listeners := []any{
		&observers.Identity{
			Nick:         cfg.Nick,
			NickPass:     cfg.NickPass,
			Alternate:    cfg.Alternate,
			RecoverAfter: 15 * time.Second,
		},
		&observers.AutoJoin{
			Channels:     cfg.Channels,
			JoinOnInvite: cfg.Observers.JoinInvite,
			RejoinOnKick: cfg.Observers.Rejoin,
		},
	}

	if cfg.Observers.Log {
		listeners = append(listeners, &observers.Logger{})
	}
	if cfg.Observers.CTCP {
		listeners = append(listeners, &observers.CTCPResponder{
			UserInfo: cfg.Observers.UserInfo,
			Finger:   cfg.Observers.Finger,
		})
	}
	if cfg.Observers.Record {
		rec, err := observers.NewRecorder(cfg.DataDir)
		if err != nil {
			return err
		}
		listeners = append(listeners, rec)
	}
	if cfg.Observers.Farewell != "" {
		listeners = append(listeners, &observers.Farewell{Message: cfg.Observers.Farewell})
	}

	for _, l := range listeners {
		if err := client.AddListener(l); err != nil {
			return fmt.Errorf("failed to register %T: %w", l, err)
		}
	}
	return nil
}
