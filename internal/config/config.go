package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/palemoky/go-fish/internal/game/geometry"
	"github.com/palemoky/go-fish/internal/game/layout"
)

// 默认值
const (
	defaultLocalName        = "You"
	defaultRemoteName       = "Bot"
	defaultCardOffset       = 1.0
	defaultBookOffset       = 1.5
	defaultStackOffset      = 0.3
	defaultMaxBookRotation  = 15.0
	defaultLandscapeLocal   = 10
	defaultLandscapeRemote  = 8
	defaultPortraitLocal    = 5
	defaultPortraitRemote   = 4
	defaultRedisAddr        = "localhost:6379"
	defaultSnapshotTTL      = 120 // 分钟
	defaultLogLevel         = "info"
	defaultLogDir           = ".go-fish"
	defaultReconnectTries   = 5
	defaultReconnectSeconds = 2
	defaultTickMillis       = 50
	defaultSoundDir         = "assets/sounds"
)

// Config 客户端配置
type Config struct {
	Layout LayoutConfig `yaml:"layout"`
	Redis  RedisConfig  `yaml:"redis"`
	Log    LogConfig    `yaml:"log"`
	Feed   FeedConfig   `yaml:"feed"`
	Sound  SoundConfig  `yaml:"sound"`
}

// SeatConfig 一侧玩家的锚点
type SeatConfig struct {
	Name      string        `yaml:"name"`
	Primary   geometry.Vec2 `yaml:"primary"`
	Secondary geometry.Vec2 `yaml:"secondary"`
	Book      geometry.Vec2 `yaml:"book"`
}

// LayoutConfig 牌桌布局配置
type LayoutConfig struct {
	Local           SeatConfig        `yaml:"local"`
	Remote          SeatConfig        `yaml:"remote"`
	RemoteIsAI      bool              `yaml:"remote_is_ai"`
	Deck            geometry.Vec2     `yaml:"deck"`              // 发牌起点
	CardOffset      float64           `yaml:"card_offset"`       // 手牌间距
	BookOffset      float64           `yaml:"book_offset"`       // 书堆间距
	StackOffset     float64           `yaml:"stack_offset"`      // 同点数叠放的上移量
	MaxBookRotation float64           `yaml:"max_book_rotation"` // 书堆随机旋转（度）
	Capacities      layout.Capacities `yaml:"capacities"`
	TickMillis      int               `yaml:"tick_millis"` // 方向检测间隔（毫秒）
}

// TickInterval 返回方向检测间隔
func (c *LayoutConfig) TickInterval() time.Duration {
	return time.Duration(c.TickMillis) * time.Millisecond
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr        string `yaml:"addr"`
	Password    string `yaml:"password"`
	DB          int    `yaml:"db"`
	SnapshotTTL int    `yaml:"snapshot_ttl"` // 快照过期时间（分钟）
}

// SnapshotTTLDuration 返回快照过期时长
func (c *RedisConfig) SnapshotTTLDuration() time.Duration {
	return time.Duration(c.SnapshotTTL) * time.Minute
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"` // 相对于用户目录
}

// FeedConfig 事件流配置
type FeedConfig struct {
	URL              string `yaml:"url"`
	ReconnectTries   int    `yaml:"reconnect_tries"`
	ReconnectSeconds int    `yaml:"reconnect_seconds"`
}

// SoundConfig 音效配置
type SoundConfig struct {
	Mute bool   `yaml:"mute"`
	Dir  string `yaml:"dir"`
}

// ReconnectInterval 返回重连间隔
func (c *FeedConfig) ReconnectInterval() time.Duration {
	return time.Duration(c.ReconnectSeconds) * time.Second
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return finish(&cfg)
}

// FromEnv 默认配置加环境变量覆盖，用于没有配置文件的情况
func FromEnv() (*Config, error) {
	return finish(&Config{})
}

// LoadOrEnv 加载配置文件；文件不存在时退回 FromEnv，其他错误原样返回
func LoadOrEnv(path string) (cfg *Config, fromFile bool, err error) {
	cfg, err = Load(path)
	if err == nil {
		return cfg, true, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, false, err
	}
	cfg, err = FromEnv()
	return cfg, false, err
}

func finish(cfg *Config) (*Config, error) {
	applyDefaults(cfg)
	applyEnv(cfg)
	if err := cfg.Layout.Capacities.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults 为零值字段设置默认值
func applyDefaults(cfg *Config) {
	l := &cfg.Layout
	if l.Local.Name == "" {
		l.Local.Name = defaultLocalName
	}
	if l.Remote.Name == "" {
		l.Remote.Name = defaultRemoteName
	}
	if l.Local.Primary == (geometry.Vec2{}) && l.Local.Secondary == (geometry.Vec2{}) {
		l.Local.Primary = geometry.Vec2{X: -6, Y: -3}
		l.Local.Secondary = geometry.Vec2{X: -6, Y: -4.5}
	}
	if l.Local.Book == (geometry.Vec2{}) {
		l.Local.Book = geometry.Vec2{X: -6, Y: -1.5}
	}
	if l.Remote.Primary == (geometry.Vec2{}) && l.Remote.Secondary == (geometry.Vec2{}) {
		l.Remote.Primary = geometry.Vec2{X: -6, Y: 4.5}
		l.Remote.Secondary = geometry.Vec2{X: -6, Y: 3}
	}
	if l.Remote.Book == (geometry.Vec2{}) {
		l.Remote.Book = geometry.Vec2{X: -6, Y: 1.5}
	}
	if l.CardOffset == 0 {
		l.CardOffset = defaultCardOffset
	}
	if l.BookOffset == 0 {
		l.BookOffset = defaultBookOffset
	}
	if l.StackOffset == 0 {
		l.StackOffset = defaultStackOffset
	}
	if l.MaxBookRotation == 0 {
		l.MaxBookRotation = defaultMaxBookRotation
	}
	if l.Capacities.Landscape.Local == 0 {
		l.Capacities.Landscape.Local = defaultLandscapeLocal
	}
	if l.Capacities.Landscape.Remote == 0 {
		l.Capacities.Landscape.Remote = defaultLandscapeRemote
	}
	if l.Capacities.Portrait.Local == 0 {
		l.Capacities.Portrait.Local = defaultPortraitLocal
	}
	if l.Capacities.Portrait.Remote == 0 {
		l.Capacities.Portrait.Remote = defaultPortraitRemote
	}
	if l.TickMillis == 0 {
		l.TickMillis = defaultTickMillis
	}

	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = defaultRedisAddr
	}
	if cfg.Redis.SnapshotTTL == 0 {
		cfg.Redis.SnapshotTTL = defaultSnapshotTTL
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaultLogLevel
	}
	if cfg.Log.Dir == "" {
		cfg.Log.Dir = defaultLogDir
	}
	if cfg.Feed.ReconnectTries == 0 {
		cfg.Feed.ReconnectTries = defaultReconnectTries
	}
	if cfg.Feed.ReconnectSeconds == 0 {
		cfg.Feed.ReconnectSeconds = defaultReconnectSeconds
	}
	if cfg.Sound.Dir == "" {
		cfg.Sound.Dir = defaultSoundDir
	}
}

// applyEnv 环境变量覆盖配置文件
func applyEnv(cfg *Config) {
	setInt := func(key string, dst *int) {
		if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
			*dst = v
		}
	}
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setInt("LAYOUT_LANDSCAPE_LOCAL", &cfg.Layout.Capacities.Landscape.Local)
	setInt("LAYOUT_LANDSCAPE_REMOTE", &cfg.Layout.Capacities.Landscape.Remote)
	setInt("LAYOUT_PORTRAIT_LOCAL", &cfg.Layout.Capacities.Portrait.Local)
	setInt("LAYOUT_PORTRAIT_REMOTE", &cfg.Layout.Capacities.Portrait.Remote)
	setString("REDIS_ADDR", &cfg.Redis.Addr)
	setString("REDIS_PASSWORD", &cfg.Redis.Password)
	setInt("REDIS_DB", &cfg.Redis.DB)
	setString("LOG_LEVEL", &cfg.Log.Level)
	setString("FEED_URL", &cfg.Feed.URL)
	if v, err := strconv.ParseBool(os.Getenv("SOUND_MUTE")); err == nil {
		cfg.Sound.Mute = v
	}
}
