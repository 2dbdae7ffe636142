package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port                          string `mapstructure:"PORT"`
	DatabaseDriver                string `mapstructure:"DATABASE_DRIVER"`
	DatabasePath                  string `mapstructure:"DATABASE_PATH"`
	DatabaseDSN                   string `mapstructure:"DATABASE_DSN"`
	JWTSecret                     string `mapstructure:"JWT_SECRET"`
	ReceiptDir                    string `mapstructure:"RECEIPT_DIR"`
	MaxLoginAttempts              int    `mapstructure:"MAX_LOGIN_ATTEMPTS"`
	AdminUsername                 string `mapstructure:"ADMIN_USERNAME"`
	AdminPassword                 string `mapstructure:"ADMIN_PASSWORD"`
	SeedExampleData               bool   `mapstructure:"SEED_EXAMPLE_DATA"`
	DiscordBotToken               string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
}

// DSN returns the data source name for the configured driver.
func (c *Config) DSN() string {
	if c.DatabaseDriver == "mysql" {
		return c.DatabaseDSN
	}
	if c.DatabaseDSN != "" {
		return c.DatabaseDSN
	}
	return c.DatabasePath
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found, using environment variables only")
	}

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_PATH", "hotel_reservation.db")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("RECEIPT_DIR", "receipts")
	viper.SetDefault("MAX_LOGIN_ATTEMPTS", 3)
	viper.SetDefault("ADMIN_USERNAME", "")
	viper.SetDefault("ADMIN_PASSWORD", "")
	viper.SetDefault("SEED_EXAMPLE_DATA", false)

	viper.BindEnv("DATABASE_DSN")
	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("ADMIN_USERNAME")
	viper.BindEnv("ADMIN_PASSWORD")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	if config.JWTSecret == "" {
		log.Println("JWT_SECRET is empty; tokens are signed with an empty key")
	}
	if config.MaxLoginAttempts < 1 {
		config.MaxLoginAttempts = 3
	}

	return &config
}
