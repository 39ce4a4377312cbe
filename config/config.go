package config

import (
	"github.com/spf13/viper"
	"sync"
)

var once sync.Once

func InitConfig() {
	once.Do(func() {
		viper.AutomaticEnv()

		viper.BindEnv("telegram_bot_token", "TELEGRAM_BOT_TOKEN")
		viper.BindEnv("chat_id", "CHAT_ID")
		viper.BindEnv("openrouter_api_key", "OPENROUTER_API_KEY")
		viper.BindEnv("openrouter_model", "OPENROUTER_MODEL")
		viper.BindEnv("watchlist_path", "WATCHLIST_PATH")
		viper.BindEnv("db_path", "DB_PATH")
		viper.BindEnv("poll_interval_seconds", "POLL_INTERVAL_SECONDS")
		viper.BindEnv("metrics_port", "METRICS_PORT")
		viper.BindEnv("debug", "DEBUG")
		viper.BindEnv("lang", "BOT_LANG")

		viper.SetDefault("openrouter_model", "qwen/qwen3-235b-a22b-2507:free")
		viper.SetDefault("watchlist_path", "aktien.json")
		viper.SetDefault("db_path", "bot.db")
		viper.SetDefault("poll_interval_seconds", 60)
		viper.SetDefault("metrics_port", 9090)
		viper.SetDefault("debug", false)
		viper.SetDefault("lang", "de")
	})
}

func GetString(key string) string {
	InitConfig()
	return viper.GetString(key)
}

func GetInt(key string) int {
	InitConfig()
	return viper.GetInt(key)
}

func GetInt64(key string) int64 {
	InitConfig()
	return viper.GetInt64(key)
}

func GetBool(key string) bool {
	InitConfig()
	return viper.GetBool(key)
}
