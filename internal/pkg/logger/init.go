package logger

import (
	"Spotlight/internal/api/config"
	"io"
	log "log/slog"
	"net"
	"os"
	"time"
)

var (
	LogWriter io.Writer = os.Stdout

	logToken = ""
	logIndex = "logstash-spotlight"
)

// InitLogger 标准输出始终开启；配置了 logstash 地址时额外上报带 trace_id 的日志
func InitLogger(cfg config.LogstashConfig) {
	hStdout := log.NewJSONHandler(os.Stdout, &log.HandlerOptions{Level: log.LevelInfo})

	var finalHandler log.Handler = hStdout
	if cfg.Index != "" {
		logIndex = cfg.Index
	}
	logToken = cfg.Token

	if cfg.Address != "" {
		conn, err := net.DialTimeout("tcp", cfg.Address, 3*time.Second)
		if err == nil {
			hRemote := log.NewJSONHandler(conn, &log.HandlerOptions{Level: log.LevelInfo}).
				WithAttrs([]log.Attr{
					log.String("target_index", logIndex),
					log.String("log_token", logToken),
				})

			finalHandler = &TeeHandler{
				handlers: []log.Handler{hStdout, &RemoteFilterHandler{next: hRemote}},
			}
			LogWriter = conn
		} else {
			log.Warn("Failed to connect to Logstash, logging to stdout only", "err", err)
		}
	}

	log.SetDefault(log.New(&ContextHandler{finalHandler}))
}
