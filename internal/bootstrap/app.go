package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "screening-backend/internal/auth"
	"screening-backend/internal/conditions"
	"screening-backend/internal/extract"
	"screening-backend/internal/llm"
	openai "screening-backend/internal/llm/openai"
	"screening-backend/internal/operators"
	"screening-backend/internal/screening"
	"screening-backend/internal/shared/config"
	"screening-backend/internal/shared/server"
	"screening-backend/internal/shared/storage/db"
	"screening-backend/internal/shared/storage/object"
	localstore "screening-backend/internal/shared/storage/object/local"
	s3store "screening-backend/internal/shared/storage/object/s3"
	"screening-backend/internal/talents"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	ConditionsRepo conditions.ConditionsRepo
	ScreeningRepo  screening.ResumesRepo
	TalentsRepo    talents.TalentsRepo
	OperatorsRepo  operators.Repo

	ConditionsService *conditions.Service
	ScreeningService  *screening.Service
	TalentsService    *talents.Service
	OperatorsService  *operators.Service

	ConditionHandler *conditions.Handler
	ScreeningHandler *screening.Handler
	TalentHandler    *talents.Handler
	OperatorHandler  *operators.Handler
	GoogleAuth       *googleauth.GoogleService
}

// Build prepares all dependencies and the wired router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		ConditionHandler: app.ConditionHandler,
		ScreeningHandler: app.ScreeningHandler,
		TalentHandler:    app.TalentHandler,
		OperatorHandler:  app.OperatorHandler,
		GoogleAuth:       app.GoogleAuth,
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) error {
	var condRepo conditions.ConditionsRepo
	var resumeRepo screening.ResumesRepo
	var talentRepo talents.TalentsRepo
	var operatorRepo operators.Repo

	if app.DB != nil {
		condRepo = &conditions.PGRepo{DB: app.DB}
		resumeRepo = &screening.PGRepo{DB: app.DB}
		talentRepo = &talents.PGRepo{DB: app.DB}
		operatorRepo = &operators.PGRepo{DB: app.DB}
	} else {
		condRepo = conditions.NewMemoryRepo()
		memResumes := screening.NewMemoryRepo()
		resumeRepo = memResumes
		talentRepo = talents.NewMemoryRepo(memResumes)
		operatorRepo = operators.NewMemoryRepo()
	}

	llmClient := llm.Client(llm.PlaceholderClient{})
	if app.Config.LLMProvider == "openai" {
		openaiClient, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), app.Config.LLMModel, app.Config.LLMBaseURL)
		if err != nil {
			return err
		}
		llmClient = openaiClient
	}

	condSvc := &conditions.Service{Repo: condRepo}
	screeningSvc := &screening.Service{
		Store:        app.Store,
		Parser:       &extract.Parser{},
		LLM:          llmClient,
		Conditions:   condSvc,
		Repo:         resumeRepo,
		ResumePrefix: app.Config.ResumePrefix,
		ImagePrefix:  app.Config.ImagePrefix,
	}
	talentSvc := &talents.Service{Repo: talentRepo}
	operatorSvc := operators.NewService(operatorRepo)

	app.ConditionsRepo = condRepo
	app.ScreeningRepo = resumeRepo
	app.TalentsRepo = talentRepo
	app.OperatorsRepo = operatorRepo
	app.ConditionsService = condSvc
	app.ScreeningService = screeningSvc
	app.TalentsService = talentSvc
	app.OperatorsService = operatorSvc
	app.ConditionHandler = conditions.NewHandler(condSvc)
	app.ScreeningHandler = screening.NewHandler(screeningSvc)
	app.TalentHandler = talents.NewHandler(talentSvc)
	app.OperatorHandler = operators.NewHandler(operatorSvc)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		operatorSvc,
	)
	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
