package main

import (
	"Spotlight/internal/api/config"
	"Spotlight/internal/pkg/database"
	"Spotlight/internal/pkg/logger"
	"Spotlight/internal/pkg/redis"
	"Spotlight/internal/pkg/youtube"
	"Spotlight/internal/repository"
	"Spotlight/internal/service"
	"context"
	"errors"
	"flag"
	"fmt"
	log "log/slog"
	"os"
	"time"

	"github.com/google/uuid"
)

const usage = `usage:
  admin import <video id | url>...   拉取 YouTube 元数据并写入视频库
  admin refresh [-days N]            刷新最近 N 天发布的视频计数
  admin pin <video id>...            设置首页置顶（按顺序）
  admin pin -clear                   清空首页置顶，回退到配置
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err := config.LoadConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	logger.InitLogger(config.Cfg.Logstash)

	ctx, cancel := context.WithTimeout(
		logger.WithTraceID(context.Background(), "admin-"+uuid.NewString()), 10*time.Minute)
	defer cancel()

	if err := run(ctx, config.Cfg, os.Args[1], os.Args[2:]); err != nil {
		log.ErrorContext(ctx, "admin command failed", "cmd", os.Args[1], "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, cmd string, args []string) error {
	switch cmd {
	case "import":
		return runImport(ctx, cfg, args)
	case "refresh":
		return runRefresh(ctx, cfg, args)
	case "pin":
		return runPin(ctx, cfg, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runImport(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return errors.New("import needs at least one video id or url")
	}
	ingest, err := newIngestService(cfg)
	if err != nil {
		return err
	}
	n, err := ingest.Import(ctx, args)
	if err != nil {
		return err
	}
	fmt.Printf("imported %d of %d\n", n, len(args))
	return nil
}

func runRefresh(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("refresh", flag.ContinueOnError)
	days := fs.Int("days", cfg.Cron.RefreshDays, "刷新最近 N 天发布的视频")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ingest, err := newIngestService(cfg)
	if err != nil {
		return err
	}
	n, err := ingest.RefreshRecent(ctx, *days)
	if err != nil {
		return err
	}
	fmt.Printf("refreshed %d\n", n)
	return nil
}

func runPin(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("pin", flag.ContinueOnError)
	clearPins := fs.Bool("clear", false, "清空置顶")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ids := fs.Args()
	if !*clearPins && len(ids) == 0 {
		return errors.New("pin needs video ids, or -clear")
	}
	if *clearPins {
		ids = nil
	}

	rdb, err := redis.InitRedis(cfg.Redis)
	if err != nil {
		return err
	}
	defer func() {
		_ = rdb.Close()
	}()

	pins := service.NewHeroPinService(redis.NewStore(rdb), cfg.Hero.PinnedIDs)
	if err := pins.SetPinnedIDs(ctx, ids); err != nil {
		return err
	}
	fmt.Printf("hero pins: %v\n", pins.GetPinnedIDs(ctx))
	return nil
}

func newIngestService(cfg *config.Config) (service.IngestService, error) {
	if cfg.YouTube.ApiKey == "" {
		return nil, errors.New("youtube.api_key is empty, set SPOTLIGHT_YOUTUBE_API_KEY")
	}
	dbCfg := cfg.DB
	db, err := database.NewGormDB(&dbCfg)
	if err != nil {
		return nil, err
	}
	return service.NewIngestService(repository.NewVideoRepo(db), youtube.NewClient(cfg.YouTube)), nil
}
