package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port           string   `mapstructure:"port"`
		Env            string   `mapstructure:"env"`
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"app"`
	AWS struct {
		Region   string `mapstructure:"region"`
		S3Bucket string `mapstructure:"s3_bucket"`
	} `mapstructure:"aws"`
	Auth struct {
		JWTSecret          string        `mapstructure:"jwt_secret"`
		TokenLifespan      time.Duration `mapstructure:"token_lifespan"`
		GoogleClientID     string        `mapstructure:"google_client_id"`
		GoogleClientSecret string        `mapstructure:"google_client_secret"`
		GoogleRedirectURL  string        `mapstructure:"google_redirect_url"`
	} `mapstructure:"auth"`
	Email struct {
		ResendAPIKey string `mapstructure:"resend_api_key"`
		From         string `mapstructure:"from"`
	} `mapstructure:"email"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Profiles struct {
		// Featured names are pinned to the top of the deck in this
		// order; Hidden names never appear in it.
		Featured []string      `mapstructure:"featured"`
		Hidden   []string      `mapstructure:"hidden"`
		CacheTTL time.Duration `mapstructure:"cache_ttl"`
	} `mapstructure:"profiles"`
}

func LoadConfig() (cfg Config, err error) {
	err = godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err = viper.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("auth.token_lifespan", 24*time.Hour)
	viper.SetDefault("profiles.cache_ttl", 30*time.Second)

	viper.BindEnv("app.port", "PORT")
	viper.BindEnv("app.env", "APP_ENV")
	viper.BindEnv("app.allowed_origins", "ALLOWED_ORIGINS")
	viper.BindEnv("aws.region", "AWS_REGION")
	viper.BindEnv("aws.s3_bucket", "S3_BUCKET_NAME")
	viper.BindEnv("auth.jwt_secret", "JWT_SECRET")
	viper.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")
	viper.BindEnv("auth.google_client_id", "GOOGLE_CLIENT_ID")
	viper.BindEnv("auth.google_client_secret", "GOOGLE_CLIENT_SECRET")
	viper.BindEnv("auth.google_redirect_url", "GOOGLE_REDIRECT_URL")
	viper.BindEnv("email.resend_api_key", "RESEND_API_KEY")
	viper.BindEnv("email.from", "EMAIL_FROM")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	err = viper.Unmarshal(&cfg)
	return
}
