// Comando importer: importa as planilhas de atendimento e vendas sem passar pela API.
//
//	go run ./cmd/importer leads --file atendimentos.xlsx --date 2024-03-15
//	go run ./cmd/importer combined --leads-file atendimentos.xlsx --sales-file vendas.xlsx
package main

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/leads-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/leads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/leads-dashboard-api/internal/config"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/importing"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	logrus.SetOutput(os.Stderr)

	app := newApp(os.Stdout, connect)
	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("Importação falhou")
	}
}

// connect carrega a configuração e monta o serviço de importação sobre o Postgres.
func connect(ctx context.Context) (importing.Importer, *time.Location, func(), error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	if level, err := logrus.ParseLevel(cfg.App.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, nil, nil, err
	}

	service := importing.NewService(
		repository.NewReleaseRepository(conn, cfg.App.Location),
		repository.NewSellerRepository(conn),
		repository.NewChannelRepository(conn),
		cfg,
	)

	closer := func() {
		if err := conn.Close(); err != nil {
			logrus.WithError(err).Warn("Erro ao fechar conexão com o banco")
		}
	}

	return service, cfg.App.Location, closer, nil
}
