package structures

import "time"

type Server struct {
	Host         string        `yaml:"host" validate:"required"`
	Port         int           `yaml:"port" validate:"required|uint|min:1"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
}

type Persistence struct {
	FilePath    string `yaml:"filePath" validate:"required"`
	Compression string `yaml:"compression" validate:"in:none,zstd"`
	OnCorrupt   string `yaml:"onCorrupt" validate:"in:fail,quarantine"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required"`
}

// CompletionConfig describes the hosted chat-completion endpoint.
type CompletionConfig struct {
	APIKey   string `yaml:"apiKey" validate:"required"`
	BaseURL  string `yaml:"baseURL"`
	Model    string `yaml:"model" validate:"required"`
	Referrer string `yaml:"referrer"`
	Title    string `yaml:"title"`
}

// Credential is one login allowed through the gate. PasswordHash is a bcrypt hash.
type Credential struct {
	Username     string `yaml:"username"`
	Name         string `yaml:"name"`
	PasswordHash string `yaml:"passwordHash"`
}

type CookieConfig struct {
	Name       string `yaml:"name" validate:"required"`
	Key        string `yaml:"key" validate:"required|minLen:16"`
	ExpiryDays int    `yaml:"expiryDays" validate:"required|uint|min:1"`
	Secure     bool   `yaml:"secure"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server           `yaml:"webServer"`
	Persistence Persistence      `yaml:"persistence"`
	Logger      LoggerConfig     `yaml:"logger"`
	Completion  CompletionConfig `yaml:"completion"`
	Credentials []Credential     `yaml:"credentials"`
	Cookie      CookieConfig     `yaml:"cookie"`
	Cache       CacheConfig      `yaml:"cache"`
	Metrics     MetricsConfig    `yaml:"metrics"`
}
