package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Database  Database  `mapstructure:",squash"`
	Scraper   Scraper   `mapstructure:",squash"`
	Ingestion Ingestion `mapstructure:",squash"`
	RatesSync RatesSync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Scraper configures the interest.co.nz page client.
type Scraper struct {
	BaseURL    string        `mapstructure:"scraper_base_url"`
	UserAgent  string        `mapstructure:"scraper_user_agent"`
	Timeout    time.Duration `mapstructure:"scraper_timeout"`
	Retries    int           `mapstructure:"scraper_retries"`
	RetryDelay time.Duration `mapstructure:"scraper_retry_delay"`
}

// QualityThresholds are the static guardrail floors for one data type.
type QualityThresholds struct {
	MinEntities   int
	MinRatePoints int
}

// Ingestion carries everything the write path needs: the shared secret, the
// guardrail thresholds and the operator override. It is threaded explicitly
// through guardrail and store calls; nothing reads the environment ad hoc.
type Ingestion struct {
	IngestSecret        string  `mapstructure:"ingest_secret"`
	AllowSuspiciousData bool    `mapstructure:"allow_suspicious_data"`
	RelativeDropFactor  float64 `mapstructure:"quality_relative_drop_factor"`

	MortgageMinEntities       int `mapstructure:"quality_mortgage_min_entities"`
	MortgageMinRatePoints     int `mapstructure:"quality_mortgage_min_rate_points"`
	PersonalLoanMinEntities   int `mapstructure:"quality_personal_loan_min_entities"`
	PersonalLoanMinRatePoints int `mapstructure:"quality_personal_loan_min_rate_points"`
	CarLoanMinEntities        int `mapstructure:"quality_car_loan_min_entities"`
	CarLoanMinRatePoints      int `mapstructure:"quality_car_loan_min_rate_points"`
	CreditCardMinEntities     int `mapstructure:"quality_credit_card_min_entities"`
	CreditCardMinRatePoints   int `mapstructure:"quality_credit_card_min_rate_points"`
}

type RatesSync struct {
	CronSchedule string `mapstructure:"rates_sync_cron"`
	Enabled      bool   `mapstructure:"rates_sync_enabled"`
}

// ThresholdsFor returns the static floors for a data type key. Unknown keys
// get zero floors, which the guardrail treats as "no static constraint".
func (i Ingestion) ThresholdsFor(dataType string) QualityThresholds {
	switch dataType {
	case "mortgage-rates":
		return QualityThresholds{MinEntities: i.MortgageMinEntities, MinRatePoints: i.MortgageMinRatePoints}
	case "personal-loan-rates":
		return QualityThresholds{MinEntities: i.PersonalLoanMinEntities, MinRatePoints: i.PersonalLoanMinRatePoints}
	case "car-loan-rates":
		return QualityThresholds{MinEntities: i.CarLoanMinEntities, MinRatePoints: i.CarLoanMinRatePoints}
	case "credit-card-rates":
		return QualityThresholds{MinEntities: i.CreditCardMinEntities, MinRatePoints: i.CreditCardMinRatePoints}
	}
	return QualityThresholds{}
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/ratesapi")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SCRAPER_BASE_URL", "https://www.interest.co.nz")
	viper.SetDefault("SCRAPER_USER_AGENT", "ratesapi.nz scraper (+https://ratesapi.nz; contact: ops@ratesapi.nz)")
	viper.SetDefault("SCRAPER_TIMEOUT", "20s")
	viper.SetDefault("SCRAPER_RETRIES", 3)
	viper.SetDefault("SCRAPER_RETRY_DELAY", "1500ms")

	viper.SetDefault("INGEST_SECRET", "")
	viper.SetDefault("ALLOW_SUSPICIOUS_DATA", false)

	// Guardrail constants are empirical per market; tune per data type rather
	// than assuming they generalize.
	viper.SetDefault("QUALITY_RELATIVE_DROP_FACTOR", 0.55)
	viper.SetDefault("QUALITY_MORTGAGE_MIN_ENTITIES", 8)
	viper.SetDefault("QUALITY_MORTGAGE_MIN_RATE_POINTS", 80)
	viper.SetDefault("QUALITY_PERSONAL_LOAN_MIN_ENTITIES", 6)
	viper.SetDefault("QUALITY_PERSONAL_LOAN_MIN_RATE_POINTS", 20)
	viper.SetDefault("QUALITY_CAR_LOAN_MIN_ENTITIES", 6)
	viper.SetDefault("QUALITY_CAR_LOAN_MIN_RATE_POINTS", 20)
	viper.SetDefault("QUALITY_CREDIT_CARD_MIN_ENTITIES", 4)
	viper.SetDefault("QUALITY_CREDIT_CARD_MIN_RATE_POINTS", 25)

	viper.SetDefault("RATES_SYNC_CRON", "0 * * * *") // hourly
	viper.SetDefault("RATES_SYNC_ENABLED", true)

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("using environment variables loaded by godotenv (viper could not read .env): ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("could not determine working directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("loaded .env from: ", location)
			return
		}
	}

	logrus.Debug("no .env file found; relying on process environment")
}
