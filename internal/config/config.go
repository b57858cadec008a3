package config

// Header constants.
const (
	HEADER_KEY_AUTHORIZATION = "Authorization"
)

// Environment variable keys.
const (
	ENV_KEY_APP_ENV = "APP_ENV"
	ENV_KEY_PORT    = "PORT"

	ENV_KEY_DB_DATABASE             = "DB_DATABASE"
	ENV_KEY_DB_PASSWORD             = "DB_PASSWORD"
	ENV_KEY_DB_USER                 = "DB_USER"
	ENV_KEY_DB_PORT                 = "DB_PORT"
	ENV_KEY_DB_HOST                 = "DB_HOST"
	ENV_KEY_DB_MAX_OPEN_CONNECTIONS = "DB_MAX_OPEN_CONNECTIONS"

	ENV_KEY_LOG_LEVEL = "LOG_LEVEL"

	ENV_KEY_JWT_SECRET       = "JWT_SECRET"
	ENV_KEY_JWT_EXPIRE_HOURS = "JWT_EXPIRE_HOURS"

	// STORAGE_DRIVER selects the blob store backend: local, minio or s3.
	ENV_KEY_STORAGE_DRIVER = "STORAGE_DRIVER"

	ENV_KEY_STORAGE_LOCAL_DIR  = "STORAGE_LOCAL_DIR"
	ENV_KEY_STORAGE_PUBLIC_URL = "STORAGE_PUBLIC_URL"

	ENV_KEY_STORAGE_BUCKET          = "STORAGE_BUCKET"
	ENV_KEY_MINIO_ENDPOINT          = "MINIO_ENDPOINT"
	ENV_KEY_MINIO_ACCESS_KEY_ID     = "MINIO_ACCESS_KEY_ID"
	ENV_KEY_MINIO_SECRET_ACCESS_KEY = "MINIO_SECRET_ACCESS_KEY"
	ENV_KEY_AWS_REGION              = "AWS_REGION"

	ENV_KEY_REDIS_ADDR     = "REDIS_ADDR"
	ENV_KEY_REDIS_PASSWORD = "REDIS_PASSWORD"
)

// STORAGE_TIMEOUT_SECONDS bounds every blob store and metadata store call.
// A backend that does not answer within the window surfaces as a storage
// error to the caller instead of hanging the request.
const STORAGE_TIMEOUT_SECONDS = 10

type ContextKey uint

const (
	_ ContextKey = iota
	CTX_KEY_USER_ID
)
