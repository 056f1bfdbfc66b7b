package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/leads-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/leads-dashboard-api/internal/domain"
)

//go:generate mockgen -source=seller.go -destination=mocks/seller_mock.go -package=mocks

const (
	sellersTable  = "sellers"
	channelsTable = "channels"
)

type SellerRepository interface {
	ListActive(ctx context.Context) ([]domain.Seller, error)
}

type ChannelRepository interface {
	List(ctx context.Context) ([]domain.Channel, error)
}

type sellerRepository struct {
	conn postgres.Conn
}

func NewSellerRepository(conn postgres.Conn) SellerRepository {
	return &sellerRepository{conn: conn}
}

// ListActive retorna apenas vendedores ativos, ordenados pelo nome.
func (r *sellerRepository) ListActive(ctx context.Context) ([]domain.Seller, error) {
	query, args, err := squirrel.
		Select("id", "name", "is_active", "created_at", "updated_at").
		From(sellersTable).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vendedores: %w", err)
	}
	defer rows.Close()

	sellers := make([]domain.Seller, 0)
	for rows.Next() {
		var seller domain.Seller
		if err := rows.Scan(&seller.ID, &seller.Name, &seller.IsActive, &seller.CreatedAt, &seller.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao escanear vendedor: %w", err)
		}
		sellers = append(sellers, seller)
	}

	return sellers, rows.Err()
}

type channelRepository struct {
	conn postgres.Conn
}

func NewChannelRepository(conn postgres.Conn) ChannelRepository {
	return &channelRepository{conn: conn}
}

func (r *channelRepository) List(ctx context.Context) ([]domain.Channel, error) {
	query, args, err := squirrel.
		Select("id", "name", "created_at", "updated_at").
		From(channelsTable).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar canais: %w", err)
	}
	defer rows.Close()

	channels := make([]domain.Channel, 0)
	for rows.Next() {
		var channel domain.Channel
		if err := rows.Scan(&channel.ID, &channel.Name, &channel.CreatedAt, &channel.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao escanear canal: %w", err)
		}
		channels = append(channels, channel)
	}

	return channels, rows.Err()
}
