package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/wodwise/wodwise/internal/analysis"
	"github.com/wodwise/wodwise/internal/config"
	"github.com/wodwise/wodwise/internal/db"
	"github.com/wodwise/wodwise/internal/llm"
	"github.com/wodwise/wodwise/internal/middleware"
	"github.com/wodwise/wodwise/internal/skills"
	"github.com/wodwise/wodwise/internal/telemetry/metrics"
	"github.com/wodwise/wodwise/internal/telemetry/tracing"
	"github.com/wodwise/wodwise/internal/vocabulary"
	"github.com/wodwise/wodwise/pkg"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	apiToken          string
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	catalog        *vocabulary.Catalog
	smartExtractor analysis.MovementExtractor
	noticeWriter   analysis.NoticeWriter

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config         *config.Config
	APIToken       string
	LLMAPIKey      string
	RedisPassword  string
	VersionInfo    string
	TracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": "wodwise_db"},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	otelShutdown, err := tracing.Setup(params.TracingEnabled, "wodwise-backend")
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	catalog := loadCatalog(ctx, dbPool)

	s := &Server{
		config:      params.Config,
		apiToken:    params.APIToken,
		versionInfo: params.VersionInfo,

		dbPool:      dbPool,
		redisClient: rdb,
		catalog:     catalog,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	if params.LLMAPIKey != "" {
		llmClient := llm.NewClient(llm.NewClientParams{
			BaseURL:    params.Config.LLMBaseURL,
			APIKey:     params.LLMAPIKey,
			Model:      params.Config.LLMModel,
			HTTPClient: tracedHttpClient,
		})
		s.smartExtractor = llm.NewExtractor(llmClient, catalog)
		s.noticeWriter = llm.NewNoticeWriter(llmClient)
	} else {
		log.Warnln("llm api key not set, smart extraction and notice generation disabled")
	}

	return s, nil
}

// loadCatalog merges the movement rows from the database over the
// built-in defaults. An unreachable database is degraded service, not a
// startup failure: the defaults still cover the common movements.
func loadCatalog(ctx context.Context, dbPool *pgxpool.Pool) *vocabulary.Catalog {
	catalog := vocabulary.Default()

	entries, err := vocabulary.NewRepo(dbPool).ListAll(ctx)
	if err != nil {
		log.Warnf("failed to load movement catalog from db, using defaults: %s", err)
		return catalog
	}
	if len(entries) == 0 {
		return catalog
	}

	log.Debugf("loaded %d movement catalog rows from db", len(entries))
	return catalog.MergedWith(vocabulary.NewCatalog(entries))
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("wodwise-router"))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, "ok")
	}).Methods("GET").Name("health")
	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET").Name("version")

	vocabularyHandler := vocabulary.NewHandler(s.catalog)
	r.HandleFunc("/vocabulary", vocabularyHandler.HandleList).Methods("GET", "OPTIONS").Name("list-vocabulary")

	analyzer := analysis.NewAnalyzer(s.catalog)
	analysisHandler := analysis.NewHandler(analysis.NewHandlerParams{
		Analyzer:       analyzer,
		SmartExtractor: s.smartExtractor,
		NoticeWriter:   s.noticeWriter,
		RedisClient:    s.redisClient,
		Metrics:        s.metricsManager,
	})
	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	r.Handle("/analysis",
		middleware.RateLimit(
			reqRateLimiter,
			"analysis",
			s.config.AnalysisRateLimitAllowedPerMin,
			s.metricsManager,
		)(http.HandlerFunc(analysisHandler.HandleAnalyze)),
	).Methods("POST", "OPTIONS").Name("analyze-program")

	skillsHandler := skills.NewHandler(
		skills.NewRanker(skills.DefaultSkills()),
		s.catalog,
		s.metricsManager,
	)
	r.HandleFunc("/skills/plan", skillsHandler.HandlePlan).Methods("POST", "OPTIONS").Name("plan-skills")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.apiToken)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(_ context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
