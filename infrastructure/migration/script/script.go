// Comando de migração: cria o schema e cadastra os canais padrão.
//
//	go run ./infrastructure/migration/script
package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/leads-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/leads-dashboard-api/infrastructure/migration"
	"github.com/vfg2006/leads-dashboard-api/internal/config"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	logrus.Info("Iniciando script de migração...")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar configuração")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao banco de dados")
	}
	defer conn.Close()
	logrus.Info("Conexão com o banco de dados estabelecida com sucesso")

	start := time.Now()
	if err := migration.Run(ctx, conn); err != nil {
		logrus.WithError(err).Fatal("Erro ao executar migração")
	}

	logrus.WithField("duration", time.Since(start).String()).Info("Migração concluída com sucesso")
}
