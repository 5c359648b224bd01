// checkflow runs a workflow document end to end and streams its lifecycle
// events as NDJSON, optionally also broadcasting them to live WebSocket
// dashboards.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/smilemakc/checkflow/pkg/engine"
	"github.com/smilemakc/checkflow/pkg/journal"
	"github.com/smilemakc/checkflow/pkg/journal/pgmirror"
	"github.com/smilemakc/checkflow/pkg/memory"
	"github.com/smilemakc/checkflow/pkg/models"
	"github.com/smilemakc/checkflow/pkg/provider"
	"github.com/smilemakc/checkflow/pkg/provider/builtin"
	"github.com/smilemakc/checkflow/pkg/sandbox"
	"github.com/smilemakc/checkflow/pkg/sink/ndjson"
	"github.com/smilemakc/checkflow/pkg/sink/wsjson"
	"github.com/smilemakc/checkflow/pkg/template"
	"github.com/smilemakc/checkflow/pkg/workflow"
)

const usage = `checkflow - run a workflow document

USAGE:
    checkflow -config <file> [options]

OPTIONS:
`

func main() {
	godotenv.Load()

	var (
		configPath  = flag.String("config", "", "path to the workflow YAML document (required)")
		event       = flag.String("event", "", "triggering event name (overrides the document's default)")
		title       = flag.String("title", "", "run title, available to templates/expressions as inputs.title")
		author      = flag.String("author", "", "run author")
		branch      = flag.String("branch", "", "branch under review")
		baseBranch  = flag.String("base-branch", "", "base branch under review")
		sessionID   = flag.String("session", "", "session id (random if omitted)")
		parallelism = flag.Int("max-parallelism", 4, "maximum checks run concurrently within a wave")
		wsAddr      = flag.String("ws-addr", "", "if set, also serve a live event WebSocket at this address (e.g. :8585)")
		redisAddr   = flag.String("redis-addr", getEnv("CHECKFLOW_REDIS_ADDR", ""), "if set, back the memory store with Redis instead of an in-process map")
		postgresDSN = flag.String("postgres-dsn", getEnv("CHECKFLOW_POSTGRES_DSN", ""), "if set, mirror committed journal entries to this Postgres database")
		logLevel    = flag.String("log-level", getEnv("LOG_LEVEL", "info"), "debug, info, warn or error")
		outPath     = flag.String("output", "", "write the final result as JSON to this file instead of stdout")
		quiet       = flag.Bool("quiet", false, "suppress NDJSON lifecycle events on stdout")
	)
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -config is required")
		flag.Usage()
		os.Exit(1)
	}

	log := newLogger(*logLevel)

	cfg, err := workflow.Load(*configPath)
	if err != nil {
		log.Error().Err(err).Str("path", *configPath).Msg("failed to load workflow document")
		os.Exit(1)
	}

	runEvent := cfg.DefaultEvent
	if *event != "" {
		runEvent = *event
	}

	inputs := models.RunInputs{
		Title:      *title,
		Author:     *author,
		Branch:     *branch,
		BaseBranch: *baseBranch,
		Event:      runEvent,
	}

	session := *sessionID
	if session == "" {
		session = uuid.New().String()
	}

	checks := make([]*models.Check, len(cfg.Checks))
	for i := range cfg.Checks {
		c := cfg.Checks[i]
		checks[i] = &c
	}

	sb := sandbox.New(1024, 5*time.Second)
	renderer := template.New(".", sb, log)

	memStore, err := newMemoryStore(*redisAddr)
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to redis")
		os.Exit(1)
	}

	j := journal.New()
	if *postgresDSN != "" {
		db, err := pgmirror.Open(*postgresDSN)
		if err != nil {
			log.Error().Err(err).Msg("failed to open postgres mirror")
			os.Exit(1)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := pgmirror.CreateSchema(ctx, db); err != nil {
			cancel()
			log.Error().Err(err).Msg("failed to create journal mirror schema")
			os.Exit(1)
		}
		cancel()
		mirror := pgmirror.New(db, log)
		j.SetMirror(mirror.Write)
		log.Info().Msg("journal mirror enabled")
	}

	reg := provider.NewRegistry()
	if err := builtin.RegisterBuiltins(reg, builtin.Dependencies{
		Renderer:     renderer,
		Sandbox:      sb,
		Memory:       memStore,
		Log:          log,
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
	}); err != nil {
		log.Error().Err(err).Msg("failed to register providers")
		os.Exit(1)
	}

	var sinks engine.MultiSink
	if !*quiet {
		sinks = append(sinks, ndjson.New(os.Stdout))
	}

	var wsServer *http.Server
	if *wsAddr != "" {
		hub := wsjson.NewHub()
		sinks = append(sinks, wsjson.New(hub))
		wsServer = startDashboardServer(*wsAddr, hub, log)
	}

	stats := engine.NewStatsCollector()
	dispatcher := &engine.Dispatcher{
		Journal:        j,
		Registry:       reg,
		Renderer:       renderer,
		Sandbox:        sb,
		Memory:         memStore,
		Stats:          stats,
		Sink:           sinks,
		MaxParallelism: *parallelism,
	}
	router := engine.NewRouter(sb, cfg.RoutingLoopBudget)
	runner := engine.NewRunner(j, dispatcher, router, stats, sinks)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := runner.Run(ctx, session, checks, inputs, envFromOS())
	if wsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		wsServer.Shutdown(shutdownCtx)
		cancel()
	}
	if err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}

	if err := writeResult(result, *outPath); err != nil {
		log.Error().Err(err).Msg("failed to write result")
		os.Exit(1)
	}

	if result.ReviewSummary.HasFatalIssues() {
		os.Exit(1)
	}
}

func newLogger(level string) zerolog.Logger {
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		l = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(l).With().Timestamp().Logger()
}

func newMemoryStore(redisAddr string) (memory.Store, error) {
	if redisAddr == "" {
		return memory.NewInMemoryStore(), nil
	}
	client := redis.NewClient(&redis.Options{Addr: redisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", redisAddr, err)
	}
	return memory.NewRedisStore(client), nil
}

// startDashboardServer upgrades connections at /ws to wsjson clients, each
// subscribed to every session's events (dashboards filter client-side).
func startDashboardServer(addr string, hub *wsjson.Hub, log zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		wsjson.ServeClient(hub, w, r, "")
	})
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		log.Info().Str("address", addr).Msg("dashboard websocket listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("dashboard server failed")
		}
	}()
	return srv
}

func writeResult(result *models.AnalysisResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(path, data, 0o644)
}

func envFromOS() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if i := strings.IndexByte(kv, '='); i >= 0 {
			env[kv[:i]] = kv[i+1:]
		}
	}
	return env
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
