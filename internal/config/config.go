package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Tasks    TasksConfig    `mapstructure:"tasks"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// Environment controls cookie security attributes ("production" enables Secure/SameSite=None).
	Environment string `mapstructure:"environment" validate:"required,oneof=development production"`

	// AllowedOrigins lists the origins permitted by the CORS policy.
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"dive,url"`
}

// IsProduction reports whether the server runs in the production environment.
func (c ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Driver selects the storage backend.
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`

	// URL is a PostgreSQL connection URL or, for sqlite, a file path or ":memory:".
	URL string `mapstructure:"url" validate:"required"`

	MaxOpenConns int  `mapstructure:"max_open_conns" validate:"gte=1"`
	AutoMigrate  bool `mapstructure:"auto_migrate"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lte=43200"` // Max 30 days

	// ProtectRoutes requires a verified token on the /users and /allTasks routes.
	ProtectRoutes bool `mapstructure:"protect_routes"`
}

// TasksConfig contains task board settings.
type TasksConfig struct {
	Categories      []string `mapstructure:"categories"       validate:"required,min=1,dive,required,max=64"`
	DefaultCategory string   `mapstructure:"default_category" validate:"required"`
}
