package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
	// 单请求处理超时
	HandlerTimeoutSec int
	MaxBodyMB         int
	RateLimitRPS      float64
	RateLimitBurst    int
	MaxConcurrent     int64
}

type AdminHTTP struct {
	Host string
	Port int
}

type App struct {
	Name string
	Env  string
	// Zone 历史查询按该时区切分自然日
	Zone  string
	HTTP  HTTP
	Admin AdminHTTP
}

// Location validate 已校验过 Zone
func (a App) Location() *time.Location {
	loc, err := time.LoadLocation(a.Zone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type LogRotate struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level  string
	JSON   bool
	Rotate LogRotate
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
	// CookieSecure 登录 cookie 是否带 Secure；本地 http 调试时关闭
	CookieSecure bool
}

func (j JWT) TTL() time.Duration { return time.Duration(j.AccessTokenTTLMin) * time.Minute }

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTLSec   int    `mapstructure:"ttlsec"`
}

type DB struct {
	Driver             string // postgres | mysql | sqlite
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
	SlowThresholdMs    int
}

type MQTT struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
	QoS         byte
}

// Bootstrap 管理端首次启动时创建的管理员
type Bootstrap struct {
	AdminEmail    string
	AdminName     string
	AdminPassword string
}

type Config struct {
	App       App
	Log       Log
	JWT       JWT
	DB        DB
	Redis     Redis `mapstructure:"redis"`
	MQTT      MQTT  `mapstructure:"mqtt"`
	Bootstrap Bootstrap
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "plantya")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.zone", "UTC")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readtimeoutsec", 5)
	v.SetDefault("app.http.writetimeoutsec", 10)
	v.SetDefault("app.http.idletimeoutsec", 60)
	v.SetDefault("app.http.handlertimeoutsec", 10)
	v.SetDefault("app.http.maxbodymb", 16)
	v.SetDefault("app.http.ratelimitrps", 200)
	v.SetDefault("app.http.ratelimitburst", 400)
	v.SetDefault("app.http.maxconcurrent", 300)
	v.SetDefault("app.admin.host", "0.0.0.0")
	v.SetDefault("app.admin.port", 8081)
	v.SetDefault("log.level", "info")
	v.SetDefault("jwt.issuer", "plantya")
	v.SetDefault("jwt.accesstokenttlmin", 120)
	v.SetDefault("jwt.cookiesecure", true)
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.maxopenconns", 20)
	v.SetDefault("db.maxidleconns", 10)
	v.SetDefault("db.connmaxlifetimemin", 30)
	v.SetDefault("db.loglevel", "warn")
	v.SetDefault("db.slowthresholdms", 200)
	v.SetDefault("redis.ttlsec", 60)
	v.SetDefault("mqtt.clientid", "plantya-platform")
	v.SetDefault("mqtt.topicprefix", "plantya")
	v.SetDefault("mqtt.qos", 1)

	// 仅通过环境变量提供的 key 也要先声明，否则 Unmarshal 读不到
	for _, k := range []string{
		"jwt.secret", "db.dsn", "db.username", "db.password",
		"redis.addr", "redis.password", "mqtt.broker", "mqtt.username", "mqtt.password",
		"bootstrap.adminemail", "bootstrap.adminname", "bootstrap.adminpassword",
	} {
		v.SetDefault(k, "")
	}
}

// Load 读取 YAML + APP_ 前缀环境变量（如 APP_DB_DSN 覆盖 db.dsn）
func Load(path string) (*Config, error) {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// MustLoad 启动阶段使用，失败直接退出
func MustLoad(path string) *Config {
	c, err := Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	return c
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("db.driver %q not supported", c.DB.Driver)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required")
	}
	if _, err := time.LoadLocation(c.App.Zone); err != nil {
		return fmt.Errorf("app.zone %q: %w", c.App.Zone, err)
	}
	if c.MQTT.QoS > 2 {
		return fmt.Errorf("mqtt.qos must be 0, 1 or 2")
	}
	return nil
}
