package config

// Config 配置主体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	DB       DBConfig       `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Logstash LogstashConfig `mapstructure:"logstash"`
	YouTube  YouTubeConfig  `mapstructure:"youtube"`
	Ranking  RankingConfig  `mapstructure:"ranking"`
	Hero     HeroConfig     `mapstructure:"hero"`
	Support  SupportConfig  `mapstructure:"support"`
	Cron     CronConfig     `mapstructure:"cron"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int    `mapstructure:"port" validate:"min=1,max=65535"`
	Mode string `mapstructure:"mode" validate:"omitempty,oneof=debug release test"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// LogstashConfig 远程日志，Address 为空时只输出到 stdout
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// YouTubeConfig YouTube Data API
type YouTubeConfig struct {
	BaseURL   string `mapstructure:"base_url" validate:"url"`
	ApiKey    string `mapstructure:"api_key"`
	Timeout   int    `mapstructure:"timeout"`
	RetryMax  int    `mapstructure:"retry_max"`
	BatchSize int    `mapstructure:"batch_size" validate:"min=1,max=50"`
}

// RankingConfig 排序相关
type RankingConfig struct {
	UTCOffsetHours  int `mapstructure:"utc_offset_hours" validate:"min=-12,max=14"`
	CandidateCap    int `mapstructure:"candidate_cap" validate:"min=1"`
	DefaultPageSize int `mapstructure:"default_page_size" validate:"min=1,ltefield=MaxPageSize"`
	MaxPageSize     int `mapstructure:"max_page_size" validate:"min=1,max=100"`
}

// HeroConfig 首页轮播
type HeroConfig struct {
	Range     string   `mapstructure:"range" validate:"oneof=24h 48h 7d 30d"`
	Take      int      `mapstructure:"take" validate:"min=1,ltefield=MaxTake"`
	MaxTake   int      `mapstructure:"max_take" validate:"min=1,max=100"`
	PinnedIDs []string `mapstructure:"pinned_ids"`
}

// SupportConfig 应援
type SupportConfig struct {
	DailyLimit bool `mapstructure:"daily_limit"`
	MaxAmount  int  `mapstructure:"max_amount" validate:"min=1"`
}

// CronConfig 定时任务
type CronConfig struct {
	Enable      bool   `mapstructure:"enable"`
	RefreshSpec string `mapstructure:"refresh_spec"`
	RefreshDays int    `mapstructure:"refresh_days" validate:"min=1"`
}
