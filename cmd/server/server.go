package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/plaggbot/rpg-api/internal/catalog"
	"github.com/plaggbot/rpg-api/internal/engine"
	v1alpha1 "github.com/plaggbot/rpg-api/internal/handlers/api/v1alpha1"
	"github.com/plaggbot/rpg-api/internal/orchestrators/character"
	"github.com/plaggbot/rpg-api/internal/orchestrators/combat"
	"github.com/plaggbot/rpg-api/internal/orchestrators/shop"
	"github.com/plaggbot/rpg-api/internal/redis"
	characterrepo "github.com/plaggbot/rpg-api/internal/repositories/character"
	combatsession "github.com/plaggbot/rpg-api/internal/repositories/combat_session"
	"github.com/plaggbot/rpg-api/internal/repositories/leaderboard"
)

// PLAGG_REDIS_ADDRESS maps to the redis-address flag.
var envKeyReplacer = strings.NewReplacer("-", "_")

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP API server",
	Long:  `Start the Plagg API server with all configured services.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().String("listen", ":8080", "HTTP listen address")
	serverCmd.Flags().String("redis-address", "localhost:6379", "Redis address")
	serverCmd.Flags().StringSlice("redis-cluster", nil, "Redis cluster endpoints, overrides redis-address")
	serverCmd.Flags().String("redis-sentinel-master", "", "Redis Sentinel master name")
	serverCmd.Flags().StringSlice("redis-sentinel-addrs", nil, "Redis Sentinel addresses")
	serverCmd.Flags().Duration("turn-delay", v1alpha1.DefaultTurnDelay, "delay before the monster's counter-turn")
	serverCmd.Flags().Duration("session-ttl", 0, "combat session expiry, 0 disables")
	serverCmd.Flags().String("config", "", "config file path")

	for _, flag := range []string{
		"listen", "redis-address", "redis-cluster",
		"redis-sentinel-master", "redis-sentinel-addrs",
		"turn-delay", "session-ttl",
	} {
		if err := viper.BindPFlag(flag, serverCmd.Flags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
	viper.SetEnvPrefix("PLAGG")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()
}

func runServer(cmd *cobra.Command, _ []string) error {
	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	handler, err := buildHandler()
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	handler.Register(mux)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	listen := viper.GetString("listen")
	srv := &http.Server{
		Addr:              listen,
		Handler:           handler.RequestLogger(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("http server starting", "address", listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down http server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		slog.Info("server stopped")
		return nil
	case err := <-errChan:
		return err
	}
}

// buildRedisClient picks the connection mode from config: Sentinel
// when a master name is set, cluster when endpoints are given,
// otherwise a single instance.
func buildRedisClient() (redis.Client, error) {
	if master := viper.GetString("redis-sentinel-master"); master != "" {
		return redis.NewFailoverClient(master, viper.GetStringSlice("redis-sentinel-addrs"), nil)
	}
	if endpoints := viper.GetStringSlice("redis-cluster"); len(endpoints) > 0 {
		return redis.NewClusterClient(endpoints, nil)
	}
	return redis.NewClient(viper.GetString("redis-address"), nil)
}

// buildHandler wires repositories, engine, and orchestrators into the
// versioned API handler.
func buildHandler() (*v1alpha1.Handler, error) {
	client, err := buildRedisClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	charRepo, err := characterrepo.NewRedis(&characterrepo.RedisConfig{Client: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create character repository: %w", err)
	}
	sessionRepo, err := combatsession.NewRedis(&combatsession.Config{Client: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create combat session repository: %w", err)
	}
	boards, err := leaderboard.NewRedis(&leaderboard.RedisConfig{Client: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create leaderboard repository: %w", err)
	}

	calc, err := engine.NewCalculator(&engine.CalculatorConfig{DiceRoller: dice.DefaultRoller})
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	content, err := catalog.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	characterService, err := character.NewOrchestrator(&character.Config{
		CharacterRepo: charRepo,
		SessionRepo:   sessionRepo,
		Leaderboard:   boards,
		Engine:        calc,
		Catalog:       content,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create character service: %w", err)
	}

	combatService, err := combat.NewOrchestrator(&combat.Config{
		CharacterRepo: charRepo,
		SessionRepo:   sessionRepo,
		Leaderboard:   boards,
		Engine:        calc,
		Catalog:       content,
		DiceRoller:    dice.DefaultRoller,
		SessionTTL:    viper.GetDuration("session-ttl"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create combat service: %w", err)
	}

	shopService, err := shop.NewOrchestrator(&shop.Config{
		CharacterRepo: charRepo,
		Catalog:       content,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create shop service: %w", err)
	}

	return v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		CharacterService: characterService,
		CombatService:    combatService,
		ShopService:      shopService,
		TurnDelay:        viper.GetDuration("turn-delay"),
	})
}
