package config

import (
	"Spotlight/internal/pkg/util"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg，环境变量 SPOTLIGHT_* 可覆盖文件中的值
func LoadConfig() error {
	cfg, err := Load("./configs")
	if err != nil {
		return err
	}
	Cfg = cfg
	return nil
}

// Load 依次在 paths 中查找 config.yaml，找不到时只用默认值和环境变量
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("spotlight")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := util.ValidateStruct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")

	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_idle", 5)
	v.SetDefault("database.max_open", 10)
	v.SetDefault("database.max_lifetime", 30)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("logstash.address", "")
	v.SetDefault("logstash.index", "logstash-spotlight")
	v.SetDefault("logstash.token", "")

	v.SetDefault("youtube.base_url", "https://www.googleapis.com/youtube/v3")
	v.SetDefault("youtube.api_key", "")
	v.SetDefault("youtube.timeout", 10)
	v.SetDefault("youtube.retry_max", 2)
	v.SetDefault("youtube.batch_size", 50)

	// 日榜按日本时间零点切日
	v.SetDefault("ranking.utc_offset_hours", 9)
	v.SetDefault("ranking.candidate_cap", 1000)
	v.SetDefault("ranking.default_page_size", 20)
	v.SetDefault("ranking.max_page_size", 100)

	v.SetDefault("hero.range", "7d")
	v.SetDefault("hero.take", 5)
	v.SetDefault("hero.max_take", 20)
	v.SetDefault("hero.pinned_ids", []string{})

	v.SetDefault("support.daily_limit", false)
	v.SetDefault("support.max_amount", 10)

	v.SetDefault("cron.enable", true)
	v.SetDefault("cron.refresh_spec", "0 */30 * * * *")
	v.SetDefault("cron.refresh_days", 30)
}
