package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Env               string `env:"ENV"`
	LogLevel          string `env:"LOG_LEVEL"`
	Telegram          Telegram
	Postgres          Postgres
	Redis             Redis
	BooksApi          BooksApi
	S3                S3
	ItemsPerPage      int           `env:"ITEMS_PER_PAGE" envDefault:"6"`
	DefaultLanguage   string        `env:"DEFAULT_LANGUAGE" envDefault:"vi"`
	SessionExpiration time.Duration `env:"SESSION_EXPIRATION" envDefault:"2h"`
	Debounce          Debounce
}

type Telegram struct {
	Token      string `env:"TELEGRAM_TOKEN"`
	UpdTimeout int    `env:"TELEGRAM_UPD_TIMEOUT"`
}

type Postgres struct {
	Host     string `env:"PG_HOST"`
	Port     int    `env:"PG_PORT"`
	DbName   string `env:"PG_DB_NAME"`
	Password string `env:"PG_PASSWORD"`
	User     string `env:"PG_USER"`
}

type Redis struct {
	Host     string `env:"REDIS_HOST"`
	Port     int    `env:"REDIS_PORT"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB"`
}

type BooksApi struct {
	BaseUrl string        `env:"BOOKS_API_BASE_URL"`
	Timeout time.Duration `env:"BOOKS_API_TIMEOUT" envDefault:"10s"`
}

type S3 struct {
	Endpoint        string `env:"S3_ENDPOINT"`
	Region          string `env:"S3_REGION"`
	Bucket          string `env:"S3_BUCKET"`
	AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	PublicBaseUrl   string `env:"S3_PUBLIC_BASE_URL"`
}

// Debounce windows: each input kind settles on its own constant.
type Debounce struct {
	Search    time.Duration `env:"SEARCH_DEBOUNCE" envDefault:"500ms"`
	Recommend time.Duration `env:"RECOMMEND_DEBOUNCE" envDefault:"500ms"`
	Dirty     time.Duration `env:"DIRTY_DEBOUNCE" envDefault:"500ms"`
}

func MustLoad() *Config {
	_ = godotenv.Load(".env")

	cfg := &Config{}

	opts := env.Options{RequiredIfNoDef: true}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		log.Fatalf("parse config error: %s", err)
	}

	return cfg
}
