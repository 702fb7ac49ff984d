package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultHTTPAddr        = ":8000"
	DefaultGRPCAddr        = ":8080"
	DefaultBasePath        = "/api"
	DefaultReadTimeout     = 15 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultDriver          = DriverPostgres
	DefaultDBHost          = "localhost"
	DefaultDBPort          = 5432
	DefaultDBUser          = "postgres"
	DefaultDBName          = "companystats"
	DefaultDBSSLMode       = "disable"
	DefaultMaxOpenConns    = 10
	DefaultMaxIdleConns    = 2
	DefaultConnMaxLifetime = 30 * time.Minute
	DefaultSQLitePath      = "data/companystats.db"
	DefaultCacheTTL        = 10 * time.Minute
	DefaultCachePrefix     = "companystats:"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
)

func (c *Config) applyDefaults() {
	// Server defaults
	if c.Server.HTTPAddr == "" {
		c.Server.HTTPAddr = DefaultHTTPAddr
	}
	if c.Server.GRPCAddr == "" {
		c.Server.GRPCAddr = DefaultGRPCAddr
	}
	if c.Server.BasePath == "" {
		c.Server.BasePath = DefaultBasePath
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = DefaultReadTimeout
	}
	if c.Server.ShutdownTimeout.Duration == 0 {
		c.Server.ShutdownTimeout.Duration = DefaultShutdownTimeout
	}

	// Source defaults
	if c.Source.Driver == "" {
		c.Source.Driver = DefaultDriver
	}
	applyPostgresDefaults(&c.Source.Postgres)
	if c.Source.Driver == DriverSQLite && c.Source.SQLitePath == "" {
		c.Source.SQLitePath = DefaultSQLitePath
	}

	// Cache defaults
	if c.Cache.TTL.Duration == 0 {
		c.Cache.TTL.Duration = DefaultCacheTTL
	}
	if c.Cache.Prefix == "" {
		c.Cache.Prefix = DefaultCachePrefix
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

func applyPostgresDefaults(db *PostgresConfig) {
	if db.Host == "" {
		db.Host = DefaultDBHost
	}
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.User == "" {
		db.User = DefaultDBUser
	}
	if db.Name == "" {
		db.Name = DefaultDBName
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxOpenConns == 0 {
		db.MaxOpenConns = DefaultMaxOpenConns
	}
	if db.MaxIdleConns == 0 {
		db.MaxIdleConns = DefaultMaxIdleConns
	}
	if db.ConnMaxLifetime.Duration == 0 {
		db.ConnMaxLifetime.Duration = DefaultConnMaxLifetime
	}
}
