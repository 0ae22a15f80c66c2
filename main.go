package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-mazeviz/api"
	api_i "github.com/beka-birhanu/vinom-mazeviz/api/i"
	"github.com/beka-birhanu/vinom-mazeviz/api/identity"
	visualizerapi "github.com/beka-birhanu/vinom-mazeviz/api/visualizer"
	"github.com/beka-birhanu/vinom-mazeviz/config"
	logger "github.com/beka-birhanu/vinom-mazeviz/infrastruture/log"
	"github.com/beka-birhanu/vinom-mazeviz/infrastruture/solvecache"
	"github.com/beka-birhanu/vinom-mazeviz/infrastruture/token"
	general_i "github.com/beka-birhanu/vinom-mazeviz/interfaces/general"
	"github.com/beka-birhanu/vinom-mazeviz/service"
	"github.com/beka-birhanu/vinom-mazeviz/service/i"
	"github.com/beka-birhanu/vinom-mazeviz/solver"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	sessionTokenTTL = 12 * time.Hour
	janitorInterval = time.Minute
)

// Global variables for dependencies
var (
	redisClient          *redis.Client
	mazeSolver           i.Solver
	sessionManager       *service.SessionManager
	jwtTokenizer         i.Tokenizer
	identityController   api_i.Controller
	visualizerController api_i.Controller
	router               *api.Router
	appLogger            general_i.Logger
)

func newLogger(prefix, color string) general_i.Logger {
	l, err := logger.New(prefix, color, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating %s logger: %v", prefix, err))
		os.Exit(1)
	}
	return l
}

func initSolver() {
	client, err := solver.NewClient(solver.Config{
		BaseURL: config.Envs.SolverURL,
		Timeout: config.Envs.SolverTimeout,
		Logger:  newLogger("SOLVER", config.ColorCyan),
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating solver client: %v", err))
		os.Exit(1)
	}
	mazeSolver = client
	appLogger.Info(fmt.Sprintf("Solver client initialized for %s", config.Envs.SolverURL))
}

// initSolveCache wraps the solver with the Redis cache when REDIS_ADDR is set.
func initSolveCache(ctx context.Context) {
	if config.Envs.RedisAddr == "" {
		appLogger.Info("REDIS_ADDR not set, solve cache disabled")
		return
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
		DB:       config.Envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}

	cache, err := solvecache.NewRedisSolveCache(redisClient, config.Envs.CacheTTL)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating solve cache: %v", err))
		os.Exit(1)
	}
	mazeSolver = service.NewCachingSolver(mazeSolver, cache, newLogger("SOLVE-CACHE", config.ColorPurple))
	appLogger.Info("Connected to Redis, solve cache enabled")
}

func initSessionManager() {
	var err error
	sessionManager, err = service.NewSessionManager(&service.Config{
		Rows:            config.Envs.GridRows,
		Cols:            config.Envs.GridCols,
		WallProbability: config.Envs.WallProbability,
		Algorithm:       solver.Dijkstra,
		Solver:          mazeSolver,
		Logger:          newLogger("SESSION-MANAGER", config.ColorBlue),
		IdleTTL:         config.Envs.SessionTTL,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Session manager initialized")
}

func initJWTTokenizer() {
	if config.Envs.JWTSecret == "" {
		appLogger.Error("Environment variable JWT_SECRET is not set")
		os.Exit(1)
	}
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initControllers() {
	apiLogger := newLogger("API", config.ColorMagenta)
	identityController = identity.NewIdentityServer(sessionManager, jwtTokenizer, sessionTokenTTL, apiLogger)

	var err error
	visualizerController, err = visualizerapi.NewVisualizerController(sessionManager, apiLogger)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating visualizer controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{identityController, visualizerController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)

	initSolver()
	initSolveCache(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}
	initSessionManager()
	go sessionManager.RunJanitor(ctx, janitorInterval)

	initJWTTokenizer()
	initControllers()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
