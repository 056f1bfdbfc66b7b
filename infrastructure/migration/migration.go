// Package migration cria o schema do dashboard e cadastra os canais padrão.
package migration

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vfg2006/leads-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/leads-dashboard-api/pkg/log"
	"github.com/vfg2006/leads-dashboard-api/pkg/utils"
)

// DefaultChannels são os canais reconhecidos pelas planilhas de atendimento e vendas.
var DefaultChannels = []string{
	"E-commerce",
	"Facebook",
	"Google",
	"Landing Pages",
	"Sites",
	"Instagram",
	"Apucarana",
	"Tel 0800",
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS sellers (
		id         VARCHAR(21) PRIMARY KEY,
		name       TEXT NOT NULL,
		is_active  BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS channels (
		id         VARCHAR(21) PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS releases (
		id           VARCHAR(21) PRIMARY KEY,
		seller_id    VARCHAR(21) NOT NULL REFERENCES sellers(id),
		channel_id   VARCHAR(21) NOT NULL REFERENCES channels(id),
		date_release DATE NOT NULL,
		leads        INTEGER NOT NULL DEFAULT 0 CHECK (leads >= 0),
		vendas       INTEGER NOT NULL DEFAULT 0 CHECK (vendas >= 0),
		bats         INTEGER NOT NULL DEFAULT 0 CHECK (bats >= 0),
		created_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT releases_natural_key UNIQUE (seller_id, channel_id, date_release)
	)`,
	`CREATE INDEX IF NOT EXISTS releases_date_release_idx ON releases (date_release)`,
	`CREATE TABLE IF NOT EXISTS finances (
		id           SERIAL PRIMARY KEY,
		ticket_medio NUMERIC(12, 2) NOT NULL CHECK (ticket_medio > 0),
		created_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS seller_ranking (
		id              SERIAL PRIMARY KEY,
		seller_id       VARCHAR(21) NOT NULL REFERENCES sellers(id),
		month           CHAR(7) NOT NULL,
		leads           INTEGER NOT NULL DEFAULT 0,
		vendas          INTEGER NOT NULL DEFAULT 0,
		bats            INTEGER NOT NULL DEFAULT 0,
		taxa_conversao  NUMERIC(7, 2) NOT NULL DEFAULT 0,
		position        INTEGER NOT NULL,
		position_change INTEGER NOT NULL DEFAULT 0,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT seller_ranking_seller_month UNIQUE (seller_id, month)
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            SERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		active        BOOLEAN NOT NULL DEFAULT FALSE,
		role_id       INTEGER NOT NULL DEFAULT 3,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

// Migrate cria as tabelas que ainda não existem.
func Migrate(ctx context.Context, q postgres.Queryer) error {
	for i, statement := range schema {
		if _, err := q.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("erro ao executar migração %d: %w", i+1, err)
		}
	}

	log.L.Infof("Schema verificado: %d comandos executados", len(schema))
	return nil
}

// SeedChannels cadastra os canais que ainda não existem e devolve quantos foram inseridos.
func SeedChannels(ctx context.Context, q postgres.Queryer, names []string) (int, error) {
	inserted := 0

	for _, name := range names {
		id, err := utils.GenerateID()
		if err != nil {
			return inserted, fmt.Errorf("erro ao gerar id do canal %q: %w", name, err)
		}

		query, args, err := squirrel.
			Insert("channels").
			Columns("id", "name").
			Values(id, name).
			Suffix("ON CONFLICT (name) DO NOTHING").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return inserted, fmt.Errorf("erro ao construir a query: %w", err)
		}

		result, err := q.ExecContext(ctx, query, args...)
		if err != nil {
			return inserted, fmt.Errorf("erro ao inserir canal %q: %w", name, err)
		}

		if affected, err := result.RowsAffected(); err == nil && affected > 0 {
			inserted++
			log.L.WithField("channel", name).Debug("Canal cadastrado")
		}
	}

	return inserted, nil
}

// Run aplica o schema e o seed de canais numa única transação.
func Run(ctx context.Context, conn postgres.Conn) error {
	return conn.RunInTransaction(ctx, func(q postgres.Queryer) error {
		if err := Migrate(ctx, q); err != nil {
			return err
		}

		inserted, err := SeedChannels(ctx, q, DefaultChannels)
		if err != nil {
			return err
		}

		log.L.WithField("inseridos", inserted).Info("Canais padrão verificados")
		return nil
	})
}
