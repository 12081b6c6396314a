package main

import (
	"Lumen/catalog"
	"Lumen/commands"
	"Lumen/config"
	"Lumen/db_client"
	"Lumen/handlers"
	"Lumen/player"
	"Lumen/redis_client"
	"Lumen/session"
	"Lumen/yt"
	"context"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Strum355/log"
	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
)

const consoleSessionKey = "console"

var (
	production *bool
	discord    *bool
)

func main() {
	production = flag.Bool("p", false, "enables production with json logging")
	discord = flag.Bool("discord", false, "serve commands in Discord instead of the console")
	flag.Parse()

	// Console output owns stdout, logs go to stderr
	logOutput := os.Stderr
	if *discord {
		logOutput = os.Stdout
	}
	if *production {
		log.InitJSONLogger(&log.Config{Output: logOutput})
	} else {
		log.InitSimpleLogger(&log.Config{Output: logOutput})
	}

	// Sets up Configurations for Viper
	config.InitConfig()

	ctx := context.Background()

	lib, err := loadCatalog(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to load video catalog")
		os.Exit(1)
	}
	log.WithFields(log.Fields{"videos": lib.Len()}).Info("Catalog loaded")

	sessions := session.NewManager(lib, randomSource(), snapshotStore(ctx))
	cmds := commands.NewRegistry()

	if *discord {
		runDiscord(cmds, sessions)
		return
	}
	runConsole(ctx, cmds, sessions)
}

// loadCatalog builds the catalog from YouTube when ids are configured, otherwise from the catalog file
func loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	refs := config.YouTubeRefs()
	if len(refs) == 0 {
		return catalog.LoadFile(viper.GetString("catalog.path"))
	}

	rdb, err := redis_client.Init(ctx)
	if err != nil {
		log.WithError(err).Error("Redis unavailable, fetching metadata without cache")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	ym := yt.NewYouTubeManager(rdb)
	return catalog.New(ym.Videos(ctx, refs, viper.GetInt("catalog.concurrency")))
}

// randomSource returns the per-session random factory, seeded from config when set
func randomSource() func() player.Random {
	seed := viper.GetInt64("random.seed")
	return func() player.Random {
		if seed == 0 {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		return rand.New(rand.NewSource(seed))
	}
}

// snapshotStore connects the session store when persistence is enabled
func snapshotStore(ctx context.Context) session.Store {
	if !viper.GetBool("database.enabled") {
		return nil
	}
	db, err := db_client.Init(ctx)
	if err != nil {
		log.WithError(err).Error("Unable to connect to database, sessions will not be saved")
		return nil
	}
	return db_client.NewSnapshotStore(db)
}

func runConsole(ctx context.Context, cmds *commands.Commands, sessions *session.Manager) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	console := &handlers.Console{
		Commands: cmds,
		Session:  sessions.Get(ctx, consoleSessionKey),
		In:       os.Stdin,
		Out:      os.Stdout,
	}

	done := make(chan error, 1)
	go func() {
		done <- console.Run(ctx)
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-done:
		if err != nil {
			log.WithError(err).Error("Console stopped")
		}
	case <-sc:
		log.Info("Interrupted")
	}

	sessions.CloseAll(context.Background())
}

func runDiscord(cmds *commands.Commands, sessions *session.Manager) {
	// Creates Discord Bot Session
	s, err := discordgo.New("Bot " + viper.GetString("discord.token"))
	if err != nil {
		log.WithError(err).Error("Failed to create Discord session")
		return
	}

	s.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Info("Bot has registered handlers")
	})

	// Configuring Intents and Adding Handlers
	handlers.HandlerConfig(s, cmds, sessions)

	// Connecting to Discord Server Gateway
	if err := s.Open(); err != nil {
		log.WithError(err).Error("Failed to connect to Discord")
		return
	}
	log.Info("Bot is initialising")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc
	gracefulShutdown(s, sessions)
}

// gracefulShutdown saves every channel session and closes the Discord connection
func gracefulShutdown(s *discordgo.Session, sessions *session.Manager) {
	log.Info("Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	sessions.CloseAll(ctx)

	if err := s.Close(); err != nil {
		log.WithError(err).Error("Failed to close Discord session")
	}

	log.Info("Cleanly exiting")
}
