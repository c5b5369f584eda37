package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig
	DB     DBConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Admin  AdminConfig
	Notify NotifyConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// AdminConfig holds the single admin account. PasswordHash is a bcrypt hash;
// plaintext passwords never appear in the environment.
type AdminConfig struct {
	Username     string
	PasswordHash string
}

type NotifyConfig struct {
	DispatchInterval time.Duration
	Sender           string // "log" or "sms"
	SMSGatewayURL    string
	SMSGatewayKey    string
	OwnerPhone       string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	dispatchInterval, err := time.ParseDuration(viper.GetString("NOTIFY_DISPATCH_INTERVAL"))
	if err != nil {
		dispatchInterval = 30 * time.Second
	}

	sender := viper.GetString("NOTIFY_SENDER")
	if sender == "" {
		sender = "log"
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       viper.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
		Admin: AdminConfig{
			Username:     viper.GetString("ADMIN_USERNAME"),
			PasswordHash: viper.GetString("ADMIN_PASSWORD_HASH"),
		},
		Notify: NotifyConfig{
			DispatchInterval: dispatchInterval,
			Sender:           sender,
			SMSGatewayURL:    viper.GetString("NOTIFY_SMS_GATEWAY_URL"),
			SMSGatewayKey:    viper.GetString("NOTIFY_SMS_GATEWAY_KEY"),
			OwnerPhone:       viper.GetString("NOTIFY_OWNER_PHONE"),
		},
	}

	return config, nil
}
