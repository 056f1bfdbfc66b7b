package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/leads-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/leads-dashboard-api/internal/domain"
)

//go:generate mockgen -source=seller_ranking.go -destination=mocks/seller_ranking_mock.go -package=mocks

const (
	sellerRankingTable = "seller_ranking sr"
)

type SellerRankingRepository interface {
	GetSellerRanking(ctx context.Context, month string) (*domain.SellerRankingResponse, error)
	GetPositions(ctx context.Context, month string) (map[string]int, error)
	SaveOrUpdateSellerRanking(ctx context.Context, rankings []*domain.SellerRankingItem) error
}

type sellerRankingRepository struct {
	conn postgres.Conn
}

func NewSellerRankingRepository(conn postgres.Conn) SellerRankingRepository {
	return &sellerRankingRepository{
		conn: conn,
	}
}

func (r *sellerRankingRepository) GetSellerRanking(ctx context.Context, month string) (*domain.SellerRankingResponse, error) {
	queryBuilder := squirrel.
		Select(
			"sr.id",
			"sr.seller_id",
			"sr.month",
			"s.name",
			"sr.leads",
			"sr.vendas",
			"sr.bats",
			"sr.taxa_conversao",
			"sr.position",
			"sr.position_change",
			"sr.created_at",
			"sr.updated_at",
		).
		From(sellerRankingTable).
		Join("sellers s ON s.id = sr.seller_id").
		Where(squirrel.Eq{"sr.month": month}).
		OrderBy("sr.position ASC").
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return &domain.SellerRankingResponse{
				Ranking:    []domain.SellerRankingItem{},
				LastUpdate: time.Now(),
			}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	rankings := make([]domain.SellerRankingItem, 0)
	var lastUpdate time.Time

	for rows.Next() {
		var item domain.SellerRankingItem
		err := rows.Scan(
			&item.ID,
			&item.SellerID,
			&item.Month,
			&item.SellerName,
			&item.Leads,
			&item.Sales,
			&item.Bats,
			&item.ConversionRate,
			&item.Position,
			&item.PositionChange,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear item do ranking: %w", err)
		}

		rankings = append(rankings, item)

		if item.UpdatedAt.After(lastUpdate) {
			lastUpdate = item.UpdatedAt
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	if lastUpdate.IsZero() {
		lastUpdate = time.Now()
	}

	return &domain.SellerRankingResponse{
		Ranking:    rankings,
		LastUpdate: lastUpdate,
	}, nil
}

// GetPositions retorna a posição gravada de cada vendedor no mês (seller_id -> posição).
func (r *sellerRankingRepository) GetPositions(ctx context.Context, month string) (map[string]int, error) {
	query, args, err := squirrel.
		Select("sr.seller_id", "sr.position").
		From(sellerRankingTable).
		Where(squirrel.Eq{"sr.month": month}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar posições: %w", err)
	}
	defer rows.Close()

	positions := make(map[string]int)
	for rows.Next() {
		var sellerID string
		var position int
		if err := rows.Scan(&sellerID, &position); err != nil {
			return nil, fmt.Errorf("erro ao escanear posição: %w", err)
		}
		positions[sellerID] = position
	}

	return positions, rows.Err()
}

func (r *sellerRankingRepository) SaveOrUpdateSellerRanking(ctx context.Context, rankings []*domain.SellerRankingItem) error {
	if len(rankings) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("seller_ranking").
		Columns(
			"seller_id",
			"month",
			"leads",
			"vendas",
			"bats",
			"taxa_conversao",
			"position",
			"position_change",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, ranking := range rankings {
		query = query.Values(
			ranking.SellerID,
			ranking.Month,
			ranking.Leads,
			ranking.Sales,
			ranking.Bats,
			ranking.ConversionRate,
			ranking.Position,
			ranking.PositionChange,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (seller_id, month) DO UPDATE SET
			leads = EXCLUDED.leads,
			vendas = EXCLUDED.vendas,
			bats = EXCLUDED.bats,
			taxa_conversao = EXCLUDED.taxa_conversao,
			position = EXCLUDED.position,
			position_change = EXCLUDED.position_change,
			updated_at = CURRENT_TIMESTAMP
	`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao executar query de inserção: %w", err)
	}

	return nil
}
