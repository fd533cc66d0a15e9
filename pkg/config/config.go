package config

// this holds the resolved configuration values from CLI
var (
	DB                 string // connection string for the database
	LogLevel           string // sets the log level (zap log level values)
	SQLLogLevel        string // sets the log level for sql subsystem
	LogFormat          string // text vs json
	LogConfig          string // path to log config file (zapfilter rules)
	MigrationSourceURL string // location of migration files
	WaitForServices    string // duration to wait for other services to be ready
	Actor              string // reported as ingested_by on created races
	BatchSize          int    // number of lap rows per insert batch
)
