package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      App
	Client   Client
	Feed     Feed
	Posts    Posts
	Comments Comments
	Postgres Postgres
	Redis    Redis
	Kafka    Kafka
	Minio    Minio
	Otel     Otel
	Secrets  Secrets
}

type App struct {
	Port     string
	LogLevel string
	Env      string
}

type Client struct {
	Origin string
}

type Feed struct {
	PageSize int
	CacheTTL time.Duration
}

type Posts struct {
	MinTextLen    int
	MaxTextLen    int
	MaxImageBytes int64
}

type Comments struct {
	MinTextLen int
}

type Postgres struct {
	URL         string
	MaxConns    int32
	AutoMigrate bool
}

type Redis struct {
	Enabled  bool
	Addr     string
	DB       int
	Password string
}

type Kafka struct {
	Brokers       string
	PostsTopic    string
	CommentsTopic string
}

type Minio struct {
	Endpoint  string
	Bucket    string
	UseSSL    bool
	AccessKey string
	SecretKey string
}

type Otel struct {
	Endpoint    string
	ServiceName string
	SampleRatio float64
}

type Secrets struct {
	AccessSecret string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", ":8080")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.env", "development")
	v.SetDefault("client.origin", "http://localhost:3000")

	v.SetDefault("feed.page_size", 10)
	v.SetDefault("feed.cache_ttl", 20*time.Second)

	v.SetDefault("posts.min_text_len", 10)
	v.SetDefault("posts.max_text_len", 500)
	v.SetDefault("posts.max_image_bytes", 5<<20)
	v.SetDefault("comments.min_text_len", 5)

	v.SetDefault("postgres.max_conns", 20)
	v.SetDefault("postgres.auto_migrate", true)

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.posts_topic", "posts.created")
	v.SetDefault("kafka.comments_topic", "comments.created")

	v.SetDefault("minio.endpoint", "")
	v.SetDefault("minio.bucket", "post-images")
	v.SetDefault("minio.use_ssl", false)

	v.SetDefault("otel.endpoint", "")
	v.SetDefault("otel.service_name", "post-service")
	v.SetDefault("otel.sample_ratio", 1.0)
}

// LoadEnv reads secrets from a .env file. A missing file is not an error:
// the variables may already be set in the environment.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

// Load reads app.yaml from the given directories (./ and ./configs when none
// are given). Missing file falls back to defaults; POST_SERVICE_* environment
// variables override any key.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if len(paths) == 0 {
		paths = []string{"./", "./configs"}
	}
	for _, path := range paths {
		v.AddConfigPath(path)
	}
	v.SetConfigType("yaml")
	v.SetConfigName("app")

	v.SetEnvPrefix("POST_SERVICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return &Config{
		App: App{
			Port:     v.GetString("app.port"),
			LogLevel: v.GetString("app.log_level"),
			Env:      v.GetString("app.env"),
		},
		Client: Client{
			Origin: v.GetString("client.origin"),
		},
		Feed: Feed{
			PageSize: v.GetInt("feed.page_size"),
			CacheTTL: v.GetDuration("feed.cache_ttl"),
		},
		Posts: Posts{
			MinTextLen:    v.GetInt("posts.min_text_len"),
			MaxTextLen:    v.GetInt("posts.max_text_len"),
			MaxImageBytes: v.GetInt64("posts.max_image_bytes"),
		},
		Comments: Comments{
			MinTextLen: v.GetInt("comments.min_text_len"),
		},
		Postgres: Postgres{
			URL:         os.Getenv("POSTGRES_URL"),
			MaxConns:    v.GetInt32("postgres.max_conns"),
			AutoMigrate: v.GetBool("postgres.auto_migrate"),
		},
		Redis: Redis{
			Enabled:  v.GetBool("redis.enabled"),
			Addr:     v.GetString("redis.addr"),
			DB:       v.GetInt("redis.db"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Kafka: Kafka{
			Brokers:       v.GetString("kafka.brokers"),
			PostsTopic:    v.GetString("kafka.posts_topic"),
			CommentsTopic: v.GetString("kafka.comments_topic"),
		},
		Minio: Minio{
			Endpoint:  v.GetString("minio.endpoint"),
			Bucket:    v.GetString("minio.bucket"),
			UseSSL:    v.GetBool("minio.use_ssl"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
		},
		Otel: Otel{
			Endpoint:    v.GetString("otel.endpoint"),
			ServiceName: v.GetString("otel.service_name"),
			SampleRatio: v.GetFloat64("otel.sample_ratio"),
		},
		Secrets: Secrets{
			AccessSecret: os.Getenv("ACCESS_SECRET"),
		},
	}, nil
}
