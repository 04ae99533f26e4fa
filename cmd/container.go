package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/autocareer/autocareer/internal/ai/embeddings"
	"github.com/autocareer/autocareer/internal/ai/llm"
	"github.com/autocareer/autocareer/internal/ai/retrieval"
	"github.com/autocareer/autocareer/internal/automation/fields"
	"github.com/autocareer/autocareer/internal/automation/submit"
	"github.com/autocareer/autocareer/internal/scrape"
	"github.com/autocareer/autocareer/pipeline/assessment/assessmentinfra"
	"github.com/autocareer/autocareer/pipeline/assessment/assessmentsrv"
	"github.com/autocareer/autocareer/pipeline/audit"
	"github.com/autocareer/autocareer/pipeline/audit/auditapi"
	"github.com/autocareer/autocareer/pipeline/audit/auditinfra"
	"github.com/autocareer/autocareer/pipeline/draft/draftinfra"
	"github.com/autocareer/autocareer/pipeline/draft/draftsrv"
	"github.com/autocareer/autocareer/pipeline/job/jobapi"
	"github.com/autocareer/autocareer/pipeline/job/jobinfra"
	"github.com/autocareer/autocareer/pipeline/job/jobsrv"
	"github.com/autocareer/autocareer/pipeline/orchestrator/orchestratorapi"
	"github.com/autocareer/autocareer/pipeline/orchestrator/orchestratorinfra"
	"github.com/autocareer/autocareer/pipeline/orchestrator/orchestratorsrv"
	"github.com/autocareer/autocareer/pipeline/orchestrator/worker"
	"github.com/autocareer/autocareer/pipeline/profile/profileapi"
	"github.com/autocareer/autocareer/pipeline/profile/profileinfra"
	"github.com/autocareer/autocareer/pipeline/profile/profilesrv"
	"github.com/autocareer/autocareer/pkg/fsx"
	"github.com/autocareer/autocareer/pkg/fsx/fsxs3"
	"github.com/autocareer/autocareer/pkg/logx"
)

const defaultBoardURL = "https://remotive.com/api/remote-jobs"

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client

	// AI clients
	Completer *llm.Client
	Embedder  *embeddings.Generator

	// Stores
	AuditStore audit.Store

	// Domain Services
	ProfileService    *profilesrv.ProfileService
	JobService        *jobsrv.JobService
	AssessmentService *assessmentsrv.AssessmentService
	DraftService      *draftsrv.DraftService
	PipelineService   *orchestratorsrv.PipelineService

	// Workers
	PipelineWorker *worker.PipelineWorker

	// API Handlers
	ProfileHandlers  *profileapi.Handlers
	JobHandlers      *jobapi.Handlers
	AuditHandlers    *auditapi.Handlers
	PipelineHandlers *orchestratorapi.Handlers
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initRepositories()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPass := os.Getenv("REDIS_PASS")
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPass,
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. Screenshot storage: S3 when a bucket is configured, local disk
	// otherwise
	awsBucket := os.Getenv("AWS_BUCKET")
	if awsBucket != "" {
		awsRegion := os.Getenv("AWS_REGION")
		cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(awsRegion))
		if err != nil {
			logx.Fatalf("unable to load SDK config, %v", err)
		}
		c.S3Client = s3.NewFromConfig(cfg)
		c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, awsBucket, "evidence")
	} else {
		dir := os.Getenv("EVIDENCE_DIR")
		if dir == "" {
			dir = "evidence"
		}
		logx.Warnf("AWS_BUCKET not set, storing evidence under ./%s", dir)
		c.FileSystem = fsx.NewLocalFileSystem(dir)
	}

	// 4. AI clients. An empty key degrades every AI path to its fallback
	// strategy instead of failing startup.
	openaiKey := os.Getenv("OPENAI_API_KEY")
	if openaiKey == "" {
		logx.Warn("OPENAI_API_KEY is not set; scoring and drafting will use fallback strategies")
	}
	c.Completer = llm.NewClient(openaiKey)
	if openaiKey != "" {
		c.Embedder = embeddings.NewGenerator(openaiKey)
	}
}

func (c *Container) initRepositories() {
	// --- Repositories ---
	profileRepo := profileinfra.NewPostgresProfileRepository(c.DB)
	jobRepo := jobinfra.NewPostgresJobRepository(c.DB)
	assessmentRepo := assessmentinfra.NewPostgresAssessmentRepository(c.DB)
	draftRepo := draftinfra.NewPostgresDraftRepository(c.DB)
	c.AuditStore = auditinfra.NewPostgresAuditStore(c.DB)

	// --- External Sources ---
	boardURL := os.Getenv("JOB_BOARD_URL")
	if boardURL == "" {
		boardURL = defaultBoardURL
	}
	jobSource := jobinfra.NewBoardSource(boardURL)

	// --- AI Pipeline Components ---
	var embedder embeddings.Embedder
	if c.Embedder != nil {
		embedder = c.Embedder
	}

	var retriever *retrieval.Retriever
	if embedder != nil {
		retriever = retrieval.NewRetriever(embedder, retrieval.DefaultConfig())
	}
	scraper := scrape.NewCompanyScraper(1)
	llmScorer := assessmentsrv.NewLLMScorer(c.Completer)
	generator := draftsrv.NewGenerator(c.Completer, retriever, scraper)

	// --- Browser Submission ---
	gateDelay := submit.DefaultGateDelay
	if raw := os.Getenv("SUBMIT_CONFIRM_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			gateDelay = time.Duration(secs) * time.Second
		}
	}
	controller := submit.NewController(fields.NewResolver(), c.FileSystem, gateDelay)
	submitter := orchestratorinfra.NewBrowserSubmitter(controller)

	// --- Run Queue ---
	queue := orchestratorinfra.NewRedisQueue(c.Redis, "pipeline:runs")

	// --- Domain Services ---
	c.ProfileService = profilesrv.NewProfileService(profileRepo, embedder)
	c.JobService = jobsrv.NewJobService(jobRepo, jobSource)
	c.AssessmentService = assessmentsrv.NewAssessmentService(assessmentRepo, llmScorer)
	c.DraftService = draftsrv.NewDraftService(draftRepo, generator)
	c.PipelineService = orchestratorsrv.NewPipelineService(
		profileRepo,
		jobRepo,
		c.AssessmentService,
		c.DraftService,
		submitter,
		c.AuditStore,
		queue,
	)

	// --- Workers ---
	workers := 2
	if raw := os.Getenv("PIPELINE_WORKERS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			workers = n
		}
	}
	c.PipelineWorker = worker.NewPipelineWorker(c.PipelineService, queue, workers)

	// --- Handlers ---
	c.ProfileHandlers = profileapi.NewHandlers(c.ProfileService)
	c.JobHandlers = jobapi.NewHandlers(c.JobService)
	c.AuditHandlers = auditapi.NewHandlers(c.AuditStore)
	c.PipelineHandlers = orchestratorapi.NewHandlers(c.PipelineService)
}
