package bootstrap

import (
	"context"
	"strings"
	"time"

	"kyarte_server/adapter/out/mongodb"
	"kyarte_server/adapter/out/persistence"
	"kyarte_server/adapter/out/provider"
	"kyarte_server/config"
	"kyarte_server/core/agent/llm"
	"kyarte_server/core/domain"
	"kyarte_server/core/port/out"
	"kyarte_server/core/service/analysis"
	"kyarte_server/core/service/calendar"
	"kyarte_server/core/service/employee"
	"kyarte_server/core/service/folder"
	"kyarte_server/core/service/note"
	"kyarte_server/infra/database"
	"kyarte_server/pkg/cache"
	"kyarte_server/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Dependencies holds every shared resource and service the process wires
// at startup. Optional backends (Redis, MongoDB, OpenAI, Google Calendar)
// stay nil when not configured and the services degrade gracefully.
type Dependencies struct {
	Config  *config.Config
	DB      *pgxpool.Pool
	SQLDB   *sqlx.DB
	Redis   *redis.Client
	MongoDB *mongo.Client

	// Repositories
	FolderRepo   domain.FolderRepository
	EmployeeRepo domain.EmployeeRepository
	NoteRepo     domain.NoteRepository
	CalendarRepo domain.CalendarRepository
	AuditStore   out.AnalysisAuditStore

	// Services
	FolderService   *folder.Service
	EmployeeService *employee.Service
	NoteService     *note.Service
	NoteProcessor   *note.Processor
	CalendarService *calendar.Service
	CalendarSync    *calendar.SyncService
	AnalysisEngine  analysis.Engine

	LLMClient *llm.Client
}

// NewDependencies connects to every configured backend and builds the
// service graph. The returned cleanup function closes connections in
// reverse order of creation.
func NewDependencies(cfg *config.Config) (*Dependencies, func(), error) {
	deps := &Dependencies{Config: cfg}
	var cleanups []func()

	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	// Database (pgxpool, used for health checks)
	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	deps.DB = db
	cleanups = append(cleanups, func() { db.Close() })

	// Database (sqlx for the persistence adapters)
	sqlxURL := cfg.DatabaseURL
	if strings.Contains(sqlxURL, "?") {
		sqlxURL += "&default_query_exec_mode=simple_protocol"
	} else {
		sqlxURL += "?default_query_exec_mode=simple_protocol"
	}
	sqlDB, err := sqlx.Connect("pgx", sqlxURL)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	deps.SQLDB = sqlDB
	cleanups = append(cleanups, func() { sqlDB.Close() })

	// Redis (optional, employee reads fall back to Postgres without it)
	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		logger.Warn("Redis connection failed, employee cache disabled: %v", err)
	} else {
		deps.Redis = redisClient
		cleanups = append(cleanups, func() { redisClient.Close() })
	}

	// MongoDB (optional analysis audit trail)
	if cfg.MongoDBURL != "" {
		mongoClient, err := mongodb.NewClient(cfg.MongoDBURL)
		if err != nil {
			logger.Warn("MongoDB connection failed, analysis audit disabled: %v", err)
		} else {
			deps.MongoDB = mongoClient
			cleanups = append(cleanups, func() {
				mongoClient.Disconnect(context.Background())
			})

			auditAdapter := mongodb.NewAuditAdapter(mongoClient.Database(cfg.MongoDBName))
			if err := auditAdapter.EnsureIndexes(context.Background()); err != nil {
				logger.Warn("Failed to ensure audit indexes: %v", err)
			}
			deps.AuditStore = auditAdapter
			logger.Info("Analysis audit store initialized (db: %s)", cfg.MongoDBName)
		}
	}

	// Repositories
	deps.FolderRepo = persistence.NewFolderAdapter(sqlDB)
	deps.NoteRepo = persistence.NewNoteAdapter(sqlDB)
	deps.CalendarRepo = persistence.NewCalendarAdapter(sqlDB)

	employeeAdapter := persistence.NewEmployeeAdapter(sqlDB)
	if deps.Redis != nil {
		ttl := time.Duration(cfg.CacheEmployeeTTLMin) * time.Minute
		deps.EmployeeRepo = persistence.NewCachedEmployeeAdapter(
			employeeAdapter, cache.NewRedisCache(deps.Redis), ttl)
	} else {
		deps.EmployeeRepo = employeeAdapter
	}

	// Analysis engine: OpenAI-backed when a real key is configured,
	// rule-based otherwise. The LLM engine also falls back to the rule
	// engine per request on API failures.
	ruleEngine := analysis.NewRuleEngine()
	var generator out.TextGenerator
	if cfg.OpenAIConfigured() {
		deps.LLMClient = llm.NewClientWithConfig(llm.ClientConfig{
			APIKey:      cfg.OpenAIAPIKey,
			Model:       cfg.LLMModel,
			MaxTokens:   cfg.LLMMaxTokens,
			Temperature: cfg.LLMTemperature,
			Timeout:     cfg.LLMTimeout(),
		})
		generator = deps.LLMClient
		logger.Info("OpenAI analysis engine enabled (model: %s)", cfg.LLMModel)
	} else {
		logger.Info("OpenAI not configured, using rule-based analysis")
	}
	deps.AnalysisEngine = analysis.SelectEngine(generator, ruleEngine)

	// Services
	deps.EmployeeService = employee.NewService(deps.EmployeeRepo, deps.FolderRepo)
	deps.FolderService = folder.NewService(deps.FolderRepo, deps.EmployeeRepo)
	deps.CalendarService = calendar.NewService(deps.CalendarRepo)

	extractor := analysis.NewEventAttributeExtractor(deps.EmployeeRepo, analysis.EventDefaults{
		Hour:      cfg.EventDefaultHour,
		DayOffset: cfg.EventDefaultDayOffset,
		Duration:  cfg.EventDuration(),
	})
	deps.NoteProcessor = note.NewProcessor(
		deps.AnalysisEngine,
		deps.EmployeeService,
		deps.CalendarRepo,
		deps.NoteRepo,
		extractor,
		deps.AuditStore,
	)
	deps.NoteService = note.NewService(deps.NoteRepo, deps.NoteProcessor)

	// Google Calendar export (optional)
	var publisher out.CalendarPublisher
	if cfg.GoogleCalendarConfigured() {
		publisher = provider.NewGoogleCalendarAdapter(&provider.GoogleCalendarConfig{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			RefreshToken: cfg.GoogleRefreshToken,
			CalendarID:   cfg.GoogleCalendarID,
		})
		logger.Info("Google Calendar export enabled (calendar: %s)", cfg.GoogleCalendarID)
	}
	deps.CalendarSync = calendar.NewSyncService(deps.CalendarRepo, publisher)

	return deps, cleanup, nil
}
