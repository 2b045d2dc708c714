package config

import "time"

// app constants
const (
	AppName        = "blogd"
	AppDescription = "Small HTTP service for blog posts backed by SQLite"
	Version        = "0.1.0"

	DefaultConfigFile = "blogd.yaml"
	EnvFile           = ".env"
	EnvPrefix         = "BLOGD"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// settings constants
const (
	DefaultName = "blogd"
	DefaultAge  = 0
	MaxAge      = 255
)

// server constants
const (
	DefaultAddress         = ":8000"
	DefaultShutdownTimeout = 5 * time.Second
	DefaultMaxInFlight     = 64
	DefaultQueueTimeout    = 2 * time.Second
	ReadHeaderTimeout      = 10 * time.Second
)

// database constants
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"

	DefaultDSN             = "data/blog.db"
	DefaultMaxOpenConns    = 10
	DefaultMaxIdleConns    = 5
	DefaultConnMaxLifetime = 30 * time.Minute
	BusyTimeout            = 5 * time.Second
)
