// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/kaspa-ng/status-api/internal/api"
	"github.com/kaspa-ng/status-api/internal/config"
	"github.com/kaspa-ng/status-api/internal/docker"
	"github.com/kaspa-ng/status-api/internal/logs"
	"github.com/kaspa-ng/status-api/internal/node"
	"github.com/kaspa-ng/status-api/internal/stats"
)

// --- Version Info ---
var (
	version = "development"
	commit  = "none"
	date    = "unknown"
)

// --- Swagger annotations ---
// @title Kaspa Status API
// @version 1.0
// @description Read-only status, statistics, and log access for a kaspa deployment.
// @license.name ISC
// @schemes http https

func main() {
	// --- Define and Parse Command Line Flags ---
	var showVersion bool
	var envFile string
	defaultEnvFile := ".env"

	flag.BoolVar(&showVersion, "version", false, "Print server version and exit")
	flag.BoolVar(&showVersion, "v", false, "Print server version and exit (shorthand)")
	flag.StringVar(&envFile, "env-file", defaultEnvFile, "Path to the .env configuration file")
	flag.Parse()

	// --- Handle -v/--version flag ---
	if showVersion {
		fmt.Printf("kaspa-status-api version: %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
		os.Exit(0)
	}

	// --- Load configuration First ---
	basicLogger := log.New(os.Stderr)
	basicLogger.Infof("Attempting to load configuration from '%s' and environment variables...", envFile)
	err := config.LoadConfig(envFile)
	if err != nil {
		if errors.Is(err, config.ErrEnvFileNotFound) && envFile == defaultEnvFile {
			basicLogger.Infof("Default config file '%s' not found. Using environment variables and defaults.", defaultEnvFile)
			if err := config.LoadConfig(""); err != nil {
				basicLogger.Fatalf("Failed to load configuration: %v", err)
			}
		} else {
			basicLogger.Fatalf("Failed to load configuration: %v", err)
		}
	}
	cfg := config.AppConfig

	// --- Initialize Logger Based on Config ---
	log.SetOutput(os.Stderr)
	log.SetTimeFormat("2006-01-02 15:04:05")
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	default:
		log.Warnf("Invalid LOG_LEVEL '%s', defaulting to 'info'", cfg.LogLevel)
		log.SetLevel(log.InfoLevel)
	}
	log.Infof("kaspa-status-api version %s starting (flavor '%s')...", version, cfg.Flavor)

	deps := api.Dependencies{
		Flavor:            cfg.Flavor,
		Build:             api.BuildInfo{Version: version, Commit: commit, Date: date},
		StreamKeepalive:   cfg.StreamKeepalive,
		StreamMaxDuration: cfg.StreamMaxDuration,
		DiskPaths:         cfg.DiskPaths(),
	}

	// --- Initialize Container Runtime ---
	var dockerClient *docker.Client
	if cfg.ServesLogs() {
		dockerCfg := docker.DefaultConfig()
		dockerCfg.Host = cfg.DockerHost
		dockerClient, err = docker.NewClient(context.Background(), dockerCfg)
		if err != nil {
			log.Fatalf("Failed to initialize docker client: %v", err)
		}
		defer dockerClient.Close()

		services, err := cfg.Services()
		if err != nil {
			log.Fatalf("Failed to load service table: %v", err)
		}
		table := logs.ServiceTable(services)
		log.Infof("Serving logs for services %v (project '%s')", table.Keys(), cfg.Project())

		isNode := cfg.Flavor == config.FlavorNode
		deps.Resolver = logs.NewResolver(dockerClient, logs.ResolverOptions{
			Services:       table,
			Project:        cfg.Project(),
			IncludeStopped: !isNode,
		})
		deps.Fetcher = logs.NewFetcher(dockerClient, !isNode)
		deps.Streamer = logs.NewStreamer(dockerClient)
		deps.Admission = logs.NewAdmission(cfg.StreamMax, cfg.StreamMaxPerService)
		log.Infof("Log stream limits: %d total, %d per service", cfg.StreamMax, cfg.StreamMaxPerService)

		if isNode {
			deps.Tail = logs.NodeTail
			deps.Snapshot = api.SnapshotParsed
			deps.Node = node.NewReporter(deps.Resolver, deps.Fetcher, dockerClient, cfg.KaspadService)
		} else {
			deps.Tail = logs.GeneralTail
			deps.Snapshot = api.SnapshotText
		}
	}

	// --- Initialize Database Statistics ---
	if cfg.NeedsDatabase() {
		deps.Stats = stats.NewCollector(stats.PgxDialer(stats.DBConfig{
			Host:     cfg.DBAddress,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			Name:     cfg.DBName,
		}))
		log.Infof("Database statistics enabled for '%s' at %s:%d", cfg.DBName, cfg.DBAddress, cfg.DBPort)
	}

	// --- Initialize Gin router ---
	if strings.ToLower(cfg.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	log.Infof("Gin running in '%s' mode", gin.Mode())
	router := gin.Default()

	// Configure trusted proxies
	if cfg.TrustedProxies == "nil" {
		log.Info("Proxy trust disabled (TRUSTED_PROXIES=nil)")
		_ = router.SetTrustedProxies(nil)
	} else if cfg.TrustedProxies != "" {
		proxyList := strings.Split(cfg.TrustedProxies, ",")
		for i, proxy := range proxyList {
			proxyList[i] = strings.TrimSpace(proxy)
		}
		log.Infof("Setting trusted proxies: %v", proxyList)
		if err := router.SetTrustedProxies(proxyList); err != nil {
			log.Warnf("Error setting trusted proxies: %v. Using default.", err)
		}
	} else {
		log.Warn("All proxies are trusted (default). Set TRUSTED_PROXIES=nil or provide a list.")
	}

	// Setup API routes
	server := api.NewServer(deps)
	api.SetupRoutes(router, server)

	router.GET("/", func(c *gin.Context) {
		protocol := "http"
		if c.Request.Header.Get("X-Forwarded-Proto") == "https" {
			protocol = "https"
		}
		baseURL := fmt.Sprintf("%s://%s", protocol, c.Request.Host)

		c.JSON(http.StatusOK, gin.H{
			"message":       fmt.Sprintf("Kaspa Status API (Version: %s) is running.", version),
			"flavor":        cfg.Flavor,
			"documentation": fmt.Sprintf("%s/swagger/index.html", baseURL),
			"api_base_path": fmt.Sprintf("%s/api", baseURL),
		})
	})

	// --- Prepare Server Configuration ---
	listenAddr := fmt.Sprintf(":%s", cfg.APIPort)
	// Request contexts derive from baseCtx so open log streams end on shutdown.
	baseCtx, stopRequests := context.WithCancel(context.Background())
	defer stopRequests()
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	// --- Start Server Goroutine ---
	go func() {
		log.Infof("Starting HTTP server, accessible locally at http://localhost:%s", cfg.APIPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
		log.Info("Server listener stopped.")
	}()

	// --- Graceful Shutdown Handling ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Infof("Received signal: %s. Shutting down server...", sig)

	stopRequests()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warnf("Graceful shutdown incomplete, closing connections: %v", err)
		_ = srv.Close()
	}

	log.Info("Server exiting gracefully.")
}
