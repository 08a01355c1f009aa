package main

import (
	"context"
	"flag"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/redis/go-redis/v9"

	"github.com/palemoky/go-fish/internal/anim"
	"github.com/palemoky/go-fish/internal/config"
	"github.com/palemoky/go-fish/internal/game/table"
	"github.com/palemoky/go-fish/internal/logger"
	"github.com/palemoky/go-fish/internal/network/feed"
	"github.com/palemoky/go-fish/internal/protocol"
	"github.com/palemoky/go-fish/internal/sound"
	"github.com/palemoky/go-fish/internal/storage"
	"github.com/palemoky/go-fish/internal/ui"
	"github.com/palemoky/go-fish/internal/ui/model"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	feedURL := flag.String("feed", "", "事件流地址，覆盖配置")
	redisAddr := flag.String("redis", "", "Redis 地址，覆盖配置")
	tableID := flag.String("table", "", "从快照恢复的牌桌 ID")
	flag.Parse()

	// 加载配置
	cfg, fromFile, err := config.LoadOrEnv(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if !fromFile {
		log.Printf("配置文件 %s 不存在，使用默认配置与环境变量", *configPath)
	}
	if *feedURL != "" {
		cfg.Feed.URL = *feedURL
	}
	if *redisAddr != "" {
		cfg.Redis.Addr = *redisAddr
	}

	lg, err := logger.New(cfg.Log)
	if err != nil {
		log.Printf("初始化日志失败，日志将被丢弃: %v", err)
		lg = logger.Discard()
	}
	defer lg.Close()
	defer func() {
		if r := recover(); r != nil {
			lg.LogPanic(r)
			panic(r)
		}
	}()

	display := &model.TermDisplay{}
	board := anim.NewBoard(cfg.Layout.Deck, 0)
	tbl, err := table.New(cfg.Layout, board, display, lg)
	if err != nil {
		log.Fatalf("创建牌桌失败: %v", err)
	}

	deps := model.Deps{
		Table:   tbl,
		Board:   board,
		Display: display,
		Tick:    cfg.Layout.TickInterval(),
		Log:     lg,
	}

	// Redis 不可用时不保存快照
	if rdb := connectRedis(cfg.Redis, lg); rdb != nil {
		defer func() { _ = rdb.Close() }()
		store := storage.NewSnapshotStore(rdb, cfg.Redis.SnapshotTTLDuration())
		deps.Store = store
		deps.Tally = storage.NewBookTally(rdb, cfg.Redis.SnapshotTTLDuration())

		if *tableID != "" {
			found, err := restore(tbl, store, *tableID)
			if err != nil {
				log.Fatalf("恢复牌桌失败: %v", err)
			}
			if found {
				lg.WithField("table", *tableID).Info("Table restored from snapshot")
			} else {
				tbl.SetID(*tableID)
				lg.WithField("table", *tableID).Info("No snapshot, starting a new table")
			}
		}
	} else if *tableID != "" {
		// 没有 Redis 时无法恢复，但保留牌桌 ID
		tbl.SetID(*tableID)
		lg.WithField("table", *tableID).Warn("Redis unavailable, table starts empty")
	}

	if !cfg.Sound.Mute {
		player := sound.NewPlayer(cfg.Sound.Dir, lg)
		if err := player.Init(); err != nil {
			lg.WithError(err).Warn("Sound disabled")
		} else {
			defer player.Close()
			deps.Sound = player
		}
	}

	var fc *feed.Client
	if cfg.Feed.URL != "" {
		fc = feed.New(cfg.Feed, lg)
		deps.Feed = fc
	}

	m := ui.NewTableModel(deps)
	if fc != nil {
		fc.OnMessage = func(msg *protocol.Message) { m.Forward(model.FeedMsg{Msg: msg}) }
		fc.OnError = func(err error) { lg.WithError(err).Warn("Feed connection lost") }
		fc.OnReconnecting = func(attempt, maxTries int) {
			m.Forward(model.ReconnectingMsg{Attempt: attempt, MaxTries: maxTries})
		}
		fc.OnReconnect = func() { m.Forward(model.ReconnectSuccessMsg{}) }
		fc.OnClose = func() { m.Forward(model.FeedClosedMsg{}) }
		defer fc.Close()
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("启动牌桌时出错: %v", err)
	}
}

func connectRedis(cfg config.RedisConfig, lg *logger.Logger) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		lg.WithError(err).WithField("addr", cfg.Addr).Warn("Redis unavailable, snapshots disabled")
		_ = rdb.Close()
		return nil
	}
	return rdb
}

// restore loads the snapshot of id into tbl; found is false when none is stored.
func restore(tbl *table.Table, store *storage.SnapshotStore, id string) (found bool, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	snap, found, err := store.Load(ctx, id)
	if err != nil || !found {
		return false, err
	}
	if snap.TableID == "" {
		snap.TableID = id
	}
	return true, tbl.Restore(*snap)
}
