package config

const (
	// DefaultDatabasePath is the default location of the SQLite catalog database
	DefaultDatabasePath = "./library.db"

	// DefaultAPIKeyHeader is the request header carrying the API key
	DefaultAPIKeyHeader = "Authorization"
)
