package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/beka-birhanu/vinom-mazeviz/maze"
	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP          string        // Host IP for the server
	RESTPort        int           // Port for the REST API
	GinMode         string        // Mode for the Gin framework (e.g., release, debug, test)
	SolverURL       string        // Base URL of the external maze solver
	SolverTimeout   time.Duration // Per-request deadline for solver calls
	GridRows        int           // Rows of every generated maze
	GridCols        int           // Columns of every generated maze
	WallProbability float64       // Chance that a generated cell is a wall
	JWTSecret       string        // Secret key for JWT signing; the API refuses to start without it
	JWTIssuer       string        // Issuer claim for JWTs
	SessionTTL      time.Duration // Idle time after which a session is dropped
	RedisAddr       string        // Redis address for the solve cache; empty disables it
	RedisPassword   string        // Password for Redis
	RedisDB         int           // Redis logical database
	CacheTTL        time.Duration // Lifetime of cached solve results
	LogFile         string        // Log destination for the terminal client; empty means discard
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:          getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:        getEnvAsIntWithDefault("REST_PORT", 8081),
		GinMode:         getEnvWithDefault("GIN_MODE", "release"),
		SolverURL:       getEnvWithDefault("SOLVER_URL", "http://localhost:8080"),
		SolverTimeout:   getEnvAsDurationWithDefault("SOLVER_TIMEOUT", 10*time.Second),
		GridRows:        getEnvAsIntWithDefault("GRID_ROWS", maze.DefaultRows),
		GridCols:        getEnvAsIntWithDefault("GRID_COLS", maze.DefaultCols),
		WallProbability: getEnvAsFloatWithDefault("WALL_PROBABILITY", maze.DefaultWallProbability),
		JWTSecret:       getEnvWithDefault("JWT_SECRET", ""),
		JWTIssuer:       getEnvWithDefault("JWT_ISSUER", "vinom-mazeviz"),
		SessionTTL:      getEnvAsDurationWithDefault("SESSION_TTL", 30*time.Minute),
		RedisAddr:       getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword:   getEnvWithDefault("REDIS_PASSWORD", ""),
		RedisDB:         getEnvAsIntWithDefault("REDIS_DB", 0),
		CacheTTL:        getEnvAsDurationWithDefault("CACHE_TTL", 10*time.Minute),
		LogFile:         getEnvWithDefault("LOG_FILE", ""),
	}
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

func getEnvAsFloatWithDefault(key string, defaultValue float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a number: %v", key, err)
	}
	return value
}

// getEnvAsDurationWithDefault accepts Go duration strings such as "10s" or "30m".
func getEnvAsDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a duration: %v", key, err)
	}
	return value
}
