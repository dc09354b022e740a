package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	Storage StorageConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Clinic  ClinicConfig
}

type AppConfig struct {
	Port string
	Env  string
}

// StorageConfig points at the directory holding the JSON snapshot files.
type StorageConfig struct {
	DataDir string
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

// ClinicConfig describes the single clinic account this device is
// provisioned with. PasswordHash is a bcrypt hash of the account password.
type ClinicConfig struct {
	UserID       string
	Username     string
	Email        string
	PasswordHash string
	Role         string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 12 * time.Hour
	}

	dataDir := viper.GetString("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		Storage: StorageConfig{
			DataDir: dataDir,
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
		Clinic: ClinicConfig{
			UserID:       viper.GetString("CLINIC_USER_ID"),
			Username:     viper.GetString("CLINIC_USERNAME"),
			Email:        viper.GetString("CLINIC_EMAIL"),
			PasswordHash: viper.GetString("CLINIC_PASSWORD_HASH"),
			Role:         viper.GetString("CLINIC_ROLE"),
		},
	}

	return config, nil
}
