package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"agrow/pkg/logging"
)

type AppConfig struct {
	Port          string
	DBDriver      string
	DBPath        string
	DatabaseURL   string
	LogLevel      string
	LogFormat     string
	AuthMode      string
	DefaultLang   string
	CatalogFile   string
	LLMAPIKey     string
	LLMBaseURL    string
	LLMModel      string
	GeminiAPIKey  string
	GeminiModel   string
	KBAllowed     []string
	KBMaxBytes    int
	RetentionDays int
	RetentionCron string
	RateLimitRPS  float64
}

var defaults = map[string]any{
	"PORT":                   "8080",
	"DB_DRIVER":              "sqlite",
	"DB_PATH":                "agrow.db",
	"DATABASE_URL":           "",
	"LOG_LEVEL":              "info",
	"LOG_FORMAT":             "text",
	"AUTH_MODE":              "dev",
	"DEFAULT_LANGUAGE":       "en",
	"CATALOG_FILE":           "",
	"OPENAI_API_KEY":         "",
	"OPENAI_BASE_URL":        "",
	"LLM_MODEL":              "gpt-4o-mini",
	"GEMINI_API_KEY":         "",
	"GEMINI_MODEL":           "gemini-2.0-flash",
	"KB_ALLOWED_DOMAINS":     "",
	"KB_MAX_BYTES_PER_PAGE":  1500000,
	"HISTORY_RETENTION_DAYS": 90,
	"RETENTION_SCHEDULE":     "@daily",
	"RATE_LIMIT_RPS":         20,
}

// Load reads .env (if present), then the environment, then an optional CONFIG_FILE.
// Environment values win over the file.
func Load() AppConfig {
	if err := godotenv.Load(); err != nil {
		logging.Log.Debugf("[cfg] no .env file loaded: %v", err)
	}

	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()
	if f := v.GetString("CONFIG_FILE"); f != "" {
		v.SetConfigFile(f)
		if err := v.ReadInConfig(); err != nil {
			logging.Log.WithError(err).Warnf("[cfg] cannot read %s", f)
		}
	}

	cfg := AppConfig{
		Port:          v.GetString("PORT"),
		DBDriver:      strings.ToLower(v.GetString("DB_DRIVER")),
		DBPath:        v.GetString("DB_PATH"),
		DatabaseURL:   v.GetString("DATABASE_URL"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		LogFormat:     v.GetString("LOG_FORMAT"),
		AuthMode:      strings.ToLower(v.GetString("AUTH_MODE")),
		DefaultLang:   v.GetString("DEFAULT_LANGUAGE"),
		CatalogFile:   v.GetString("CATALOG_FILE"),
		LLMAPIKey:     v.GetString("OPENAI_API_KEY"),
		LLMBaseURL:    v.GetString("OPENAI_BASE_URL"),
		LLMModel:      v.GetString("LLM_MODEL"),
		GeminiAPIKey:  v.GetString("GEMINI_API_KEY"),
		GeminiModel:   v.GetString("GEMINI_MODEL"),
		KBAllowed:     splitCSV(v.GetString("KB_ALLOWED_DOMAINS")),
		KBMaxBytes:    v.GetInt("KB_MAX_BYTES_PER_PAGE"),
		RetentionDays: v.GetInt("HISTORY_RETENTION_DAYS"),
		RetentionCron: v.GetString("RETENTION_SCHEDULE"),
		RateLimitRPS:  v.GetFloat64("RATE_LIMIT_RPS"),
	}
	logging.Log.WithFields(cfg.Fields()).Info("[cfg] loaded")
	return cfg
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}

// Fields is the loggable view of the config. API keys are never included.
func (c AppConfig) Fields() logrus.Fields {
	return logrus.Fields{
		"port":           c.Port,
		"db_driver":      c.DBDriver,
		"db_path":        c.DBPath,
		"auth_mode":      c.AuthMode,
		"default_lang":   c.DefaultLang,
		"catalog_file":   c.CatalogFile,
		"llm_model":      c.LLMModel,
		"llm_base_url":   c.LLMBaseURL,
		"llm_api_key":    redact(c.LLMAPIKey),
		"gemini_model":   c.GeminiModel,
		"gemini_api_key": redact(c.GeminiAPIKey),
		"kb_allowed":     c.KBAllowed,
		"retention_days": c.RetentionDays,
		"retention_cron": c.RetentionCron,
		"rate_limit_rps": c.RateLimitRPS,
	}
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(strings.ToLower(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
