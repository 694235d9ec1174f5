// Package constants provides centralized definitions of constants used throughout the application
package constants

// Environment variable names
const (
	// EnvDBHost is the environment variable containing the database host
	EnvDBHost = "DB_HOST"

	// EnvDBPort is the environment variable containing the database port
	EnvDBPort = "DB_PORT"

	// EnvDBUser is the environment variable containing the database user
	EnvDBUser = "DB_USER"

	// EnvDBPassword is the environment variable containing the database password
	EnvDBPassword = "DB_PASSWORD"

	// EnvDBName is the environment variable containing the database name
	EnvDBName = "DB_NAME"

	// EnvDBSSLMode is the environment variable containing the database SSL mode
	EnvDBSSLMode = "DB_SSL_MODE"

	// EnvLogLevel is the environment variable containing the log level
	EnvLogLevel = "LOG_LEVEL"

	// EnvTelegramBotToken is the environment variable containing the Telegram bot API token
	EnvTelegramBotToken = "TELEGRAM_BOT_TOKEN"

	// EnvFaceModelsDir is the environment variable containing the directory with the dlib model files
	EnvFaceModelsDir = "FACE_MODELS_DIR"

	// EnvListenAddr is the environment variable containing the API server listen address
	EnvListenAddr = "FACEWATCH_LISTEN_ADDR"

	// EnvServerAddress is the environment variable containing the API base URL used by the CLI
	EnvServerAddress = "FACEWATCH_SERVER_ADDRESS"

	// EnvDownloadDir is the environment variable containing the directory for downloaded Telegram images
	EnvDownloadDir = "FACEWATCH_DOWNLOAD_DIR"

	// EnvMatchThreshold is the environment variable containing the face match distance threshold
	EnvMatchThreshold = "FACEWATCH_MATCH_THRESHOLD"

	// EnvCacheTTL is the environment variable containing the embedding cache TTL
	EnvCacheTTL = "FACEWATCH_CACHE_TTL"
)
