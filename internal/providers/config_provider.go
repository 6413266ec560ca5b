package providers

import (
	"blueghost/internal/structures"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 8501)
	v.SetDefault("webServer.readTimeout", 5*time.Second)
	v.SetDefault("webServer.writeTimeout", 90*time.Second)
	v.SetDefault("persistence.filePath", "stories.json")
	v.SetDefault("persistence.compression", "none")
	v.SetDefault("persistence.onCorrupt", "fail")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", "logs")
	v.SetDefault("completion.model", "gpt-4o-mini")
	v.SetDefault("cookie.name", "blueghost_session")
	v.SetDefault("cookie.expiryDays", 30)
	v.SetDefault("cache.size", 16)
	v.SetDefault("cache.ttl", 5*time.Minute)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")
	setConfigDefaults(v)

	v.BindEnv("logger.level", "BLUEGHOST_LOG_LEVEL")
	v.BindEnv("persistence.filePath", "BLUEGHOST_STORIES_FILE")
	v.BindEnv("completion.apiKey", "OPENAI_API_KEY")
	v.BindEnv("completion.baseURL", "OPENAI_BASE_URL")
	v.BindEnv("cookie.key", "BLUEGHOST_COOKIE_KEY")
	v.BindEnv("cache.enabled", "BLUEGHOST_CACHE_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "BlueGhostStudio"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
