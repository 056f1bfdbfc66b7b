package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/leads-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/leads-dashboard-api/infrastructure/migration"
	"github.com/vfg2006/leads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/leads-dashboard-api/internal/api"
	"github.com/vfg2006/leads-dashboard-api/internal/api/handler"
	"github.com/vfg2006/leads-dashboard-api/internal/config"
	"github.com/vfg2006/leads-dashboard-api/internal/scheduler"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/financing"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/importing"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/ranking"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/releasing"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/reporting"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if cfg.Database.AutoMigrate {
		if err := migration.Run(ctx, pgConn); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar migrações")
		}
	}

	releaseRepo := repository.NewReleaseRepository(pgConn, cfg.App.Location)
	sellerRepo := repository.NewSellerRepository(pgConn)
	channelRepo := repository.NewChannelRepository(pgConn)
	financeRepo := repository.NewFinanceRepository(pgConn)
	sellerRankingRepo := repository.NewSellerRankingRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)
	reporter := reporting.NewService(releaseRepo)
	releaser := releasing.NewService(releaseRepo)
	importer := importing.NewService(releaseRepo, sellerRepo, channelRepo, cfg)
	financer := financing.NewService(financeRepo, reporter, cfg)
	rankingService := ranking.NewSellerRankingService(sellerRankingRepo)

	sellerRankingSyncService := scheduler.NewSellerRankingService(releaseRepo, sellerRankingRepo, cfg)
	if err := sellerRankingSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do ranking de vendedores")
	} else {
		logrus.Info("Agendador do ranking de vendedores iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Authenticator:     authenticator,
		Reporter:          reporter,
		Releaser:          releaser,
		Importer:          importer,
		Financer:          financer,
		Ranking:           rankingService,
		SellerRepository:  sellerRepo,
		ChannelRepository: channelRepo,
		CronJobs: handler.CronJobServices{
			handler.CronJobTypeSellerRanking: sellerRankingSyncService,
		},
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
