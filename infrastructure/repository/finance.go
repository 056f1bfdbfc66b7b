package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/leads-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/leads-dashboard-api/internal/domain"
)

//go:generate mockgen -source=finance.go -destination=mocks/finance_mock.go -package=mocks

const financesTable = "finances"

type FinanceRepository interface {
	GetLatest(ctx context.Context) (*domain.Finance, error)
	Save(ctx context.Context, finance *domain.Finance) (*domain.Finance, error)
}

type financeRepository struct {
	conn postgres.Conn
}

func NewFinanceRepository(conn postgres.Conn) FinanceRepository {
	return &financeRepository{conn: conn}
}

func (r *financeRepository) GetLatest(ctx context.Context) (*domain.Finance, error) {
	query, args, err := squirrel.
		Select("id", "ticket_medio", "created_at", "updated_at").
		From(financesTable).
		OrderBy("updated_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var finance domain.Finance
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&finance.ID,
		&finance.TicketMedio,
		&finance.CreatedAt,
		&finance.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar finanças: %w", err)
	}

	return &finance, nil
}

// Save atualiza o registro existente (ID > 0) ou cria o primeiro.
func (r *financeRepository) Save(ctx context.Context, finance *domain.Finance) (*domain.Finance, error) {
	var queryBuilder squirrel.Sqlizer
	if finance.ID > 0 {
		queryBuilder = squirrel.
			Update(financesTable).
			Set("ticket_medio", finance.TicketMedio).
			Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
			Where(squirrel.Eq{"id": finance.ID}).
			Suffix("RETURNING id, ticket_medio, created_at, updated_at").
			PlaceholderFormat(squirrel.Dollar)
	} else {
		queryBuilder = squirrel.
			Insert(financesTable).
			Columns("ticket_medio").
			Values(finance.TicketMedio).
			Suffix("RETURNING id, ticket_medio, created_at, updated_at").
			PlaceholderFormat(squirrel.Dollar)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	saved := &domain.Finance{}
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&saved.ID,
		&saved.TicketMedio,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("erro ao salvar finanças: %w", err)
	}

	return saved, nil
}
