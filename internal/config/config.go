package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Auth          Auth          `mapstructure:",squash"`
	Import        Import        `mapstructure:",squash"`
	Finance       Finance       `mapstructure:",squash"`
	SellerRanking SellerRanking `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	MaxPeriodDays  int      `mapstructure:"api_max_period_days"`
}

type Database struct {
	DSN         string `mapstructure:"-"`
	Driver      string `mapstructure:"database_driver"`
	Password    string `mapstructure:"database_password"`
	URL         string `mapstructure:"database_url"`
	User        string `mapstructure:"database_user"`
	AutoMigrate bool   `mapstructure:"database_auto_migrate"`
	MaxOpenConn int    `mapstructure:"database_max_open_conns"`
}

type App struct {
	LogLevel string         `mapstructure:"log_level"`
	Timezone string         `mapstructure:"timezone"`
	Location *time.Location `mapstructure:"-"`
}

type Auth struct {
	Secret        string        `mapstructure:"auth_secret"`
	TokenDuration time.Duration `mapstructure:"auth_token_duration"`
}

// Import controla o processamento das planilhas de atendimento e vendas.
type Import struct {
	LookupConcurrency   int                 `mapstructure:"import_lookup_concurrency"`
	MaxUploadSizeMB     int64               `mapstructure:"import_max_upload_size_mb"`
	ExtraChannelAliases string              `mapstructure:"import_extra_channel_aliases"`
	ChannelAliases      map[string][]string `mapstructure:"-"`
}

type Finance struct {
	DefaultTicketMedio float64 `mapstructure:"finance_default_ticket_medio"`
}

type SellerRanking struct {
	CronSchedule string `mapstructure:"seller_ranking_cron"`
	SyncEnabled  bool   `mapstructure:"seller_ranking_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	viper.SetDefault("API_MAX_PERIOD_DAYS", 731) // Maior intervalo aceito em start_date/end_date

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/dashboard")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_AUTO_MIGRATE", false) // Cria tabelas e canais padrão ao subir a API
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_TOKEN_DURATION", "24h")

	viper.SetDefault("TIMEZONE", "America/Sao_Paulo")

	viper.SetDefault("IMPORT_LOOKUP_CONCURRENCY", 8)
	viper.SetDefault("IMPORT_MAX_UPLOAD_SIZE_MB", 20)
	viper.SetDefault("IMPORT_EXTRA_CHANNEL_ALIASES", "") // ex: "whatsapp=whatsapp|zap;tiktok=tiktok|tik tok"

	viper.SetDefault("FINANCE_DEFAULT_TICKET_MEDIO", 237)

	viper.SetDefault("SELLER_RANKING_CRON", "0 6 * * *")   // Todos os dias às 6h da manhã
	viper.SetDefault("SELLER_RANKING_SYNC_ENABLED", false) // Habilitar ranking mensal de vendedores

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
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

	location, err := time.LoadLocation(config.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone inválido %q: %w", config.App.Timezone, err)
	}
	config.App.Location = location

	config.Import.ChannelAliases, err = ParseChannelAliases(config.Import.ExtraChannelAliases)
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

// ParseChannelAliases lê o formato "canal=apelido1|apelido2;outro=apelido".
func ParseChannelAliases(raw string) (map[string][]string, error) {
	aliases := make(map[string][]string)
	if strings.TrimSpace(raw) == "" {
		return aliases, nil
	}

	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		key, values, found := strings.Cut(entry, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		if !found || key == "" {
			return nil, fmt.Errorf("apelido de canal inválido: %q", entry)
		}

		for _, alias := range strings.Split(values, "|") {
			alias = strings.ToLower(strings.TrimSpace(alias))
			if alias != "" {
				aliases[key] = append(aliases[key], alias)
			}
		}
	}

	return aliases, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
