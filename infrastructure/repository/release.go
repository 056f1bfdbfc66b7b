// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/leads-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/leads-dashboard-api/internal/domain"
)

//go:generate mockgen -source=release.go -destination=mocks/release_mock.go -package=mocks

const (
	releasesTable   = "releases"
	releaseBatchMax = 1000

	uniqueViolation = "23505"
)

// ErrDuplicateRelease é retornado quando já existe lançamento para a chave natural.
var ErrDuplicateRelease = errors.New("release already exists for seller, channel and day")

type ReleaseRepository interface {
	FindByNaturalKey(ctx context.Context, sellerID, channelID string, date time.Time) (*domain.Release, error)
	GetByID(ctx context.Context, id string) (*domain.Release, error)
	ListByPeriod(ctx context.Context, filters domain.ReleaseFilters) ([]*domain.Release, error)
	Create(ctx context.Context, release *domain.Release) error
	Update(ctx context.Context, release *domain.Release) error
	Delete(ctx context.Context, id string) (bool, error)
	UpdateAll(ctx context.Context, releases []*domain.Release) error
	CreateAll(ctx context.Context, releases []*domain.Release) error
}

type releaseRepository struct {
	conn postgres.Conn
	loc  *time.Location
}

func NewReleaseRepository(conn postgres.Conn, loc *time.Location) ReleaseRepository {
	if loc == nil {
		loc = time.Local
	}
	return &releaseRepository{
		conn: conn,
		loc:  loc,
	}
}

func (r *releaseRepository) selectReleases() squirrel.SelectBuilder {
	return squirrel.
		Select(
			"r.id",
			"r.seller_id",
			"s.name",
			"r.channel_id",
			"c.name",
			"r.date_release",
			"r.leads",
			"r.vendas",
			"r.bats",
			"r.created_at",
			"r.updated_at",
		).
		From(releasesTable + " r").
		Join("sellers s ON s.id = r.seller_id").
		Join("channels c ON c.id = r.channel_id").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *releaseRepository) FindByNaturalKey(ctx context.Context, sellerID, channelID string, date time.Time) (*domain.Release, error) {
	query, args, err := r.selectReleases().
		Where(squirrel.Eq{
			"r.seller_id":    sellerID,
			"r.channel_id":   channelID,
			"r.date_release": date.Format(time.DateOnly),
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	release, err := r.scanRelease(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar lançamento: %w", err)
	}

	return release, nil
}

func (r *releaseRepository) GetByID(ctx context.Context, id string) (*domain.Release, error) {
	query, args, err := r.selectReleases().
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	release, err := r.scanRelease(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar lançamento: %w", err)
	}

	return release, nil
}

func (r *releaseRepository) ListByPeriod(ctx context.Context, filters domain.ReleaseFilters) ([]*domain.Release, error) {
	queryBuilder := r.selectReleases().
		Where(squirrel.GtOrEq{"r.date_release": filters.StartDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"r.date_release": filters.EndDate.Format(time.DateOnly)}).
		OrderBy("r.date_release DESC", "s.name ASC", "c.name ASC")

	if search := strings.TrimSpace(filters.Search); search != "" {
		pattern := "%" + search + "%"
		queryBuilder = queryBuilder.Where(squirrel.Or{
			squirrel.ILike{"s.name": pattern},
			squirrel.ILike{"c.name": pattern},
		})
	}

	if filters.ChannelID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"r.channel_id": filters.ChannelID})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	releases := make([]*domain.Release, 0)
	for rows.Next() {
		release, err := r.scanRelease(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear lançamento: %w", err)
		}
		releases = append(releases, release)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return releases, nil
}

func (r *releaseRepository) Create(ctx context.Context, release *domain.Release) error {
	return r.CreateAll(ctx, []*domain.Release{release})
}

func (r *releaseRepository) Update(ctx context.Context, release *domain.Release) error {
	err := r.updateRelease(ctx, r.conn, release)
	if isUniqueViolation(err) {
		return ErrDuplicateRelease
	}
	return err
}

func (r *releaseRepository) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := squirrel.
		Delete(releasesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao remover lançamento: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// UpdateAll atualiza os lançamentos em uma única transação.
func (r *releaseRepository) UpdateAll(ctx context.Context, releases []*domain.Release) error {
	if len(releases) == 0 {
		return nil
	}

	return r.conn.RunInTransaction(ctx, func(q postgres.Queryer) error {
		for _, release := range releases {
			if err := r.updateRelease(ctx, q, release); err != nil {
				return err
			}
		}
		return nil
	})
}

// CreateAll insere os lançamentos em INSERTs de várias linhas, dentro de uma transação.
func (r *releaseRepository) CreateAll(ctx context.Context, releases []*domain.Release) error {
	if len(releases) == 0 {
		return nil
	}

	err := r.conn.RunInTransaction(ctx, func(q postgres.Queryer) error {
		for start := 0; start < len(releases); start += releaseBatchMax {
			end := start + releaseBatchMax
			if end > len(releases) {
				end = len(releases)
			}

			queryBuilder := squirrel.
				Insert(releasesTable).
				Columns("id", "seller_id", "channel_id", "date_release", "leads", "vendas", "bats").
				PlaceholderFormat(squirrel.Dollar)

			for _, release := range releases[start:end] {
				queryBuilder = queryBuilder.Values(
					release.ID,
					release.SellerID,
					release.ChannelID,
					release.DateRelease.Format(time.DateOnly),
					release.Leads,
					release.Sales,
					release.Bats,
				)
			}

			query, args, err := queryBuilder.ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir query de inserção: %w", err)
			}

			if _, err := q.ExecContext(ctx, query, args...); err != nil {
				return err
			}
		}
		return nil
	})
	if isUniqueViolation(err) {
		return ErrDuplicateRelease
	}
	if err != nil {
		return fmt.Errorf("erro ao inserir lançamentos: %w", err)
	}

	return nil
}

func (r *releaseRepository) updateRelease(ctx context.Context, q postgres.Queryer, release *domain.Release) error {
	query, args, err := squirrel.
		Update(releasesTable).
		Set("seller_id", release.SellerID).
		Set("channel_id", release.ChannelID).
		Set("date_release", release.DateRelease.Format(time.DateOnly)).
		Set("leads", release.Leads).
		Set("vendas", release.Sales).
		Set("bats", release.Bats).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": release.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de atualização: %w", err)
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar lançamento %s: %w", release.ID, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *releaseRepository) scanRelease(row rowScanner) (*domain.Release, error) {
	release := &domain.Release{}
	var date time.Time

	err := row.Scan(
		&release.ID,
		&release.SellerID,
		&release.SellerName,
		&release.ChannelID,
		&release.ChannelName,
		&date,
		&release.Leads,
		&release.Sales,
		&release.Bats,
		&release.CreatedAt,
		&release.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// coluna DATE chega à meia-noite UTC; o dia civil é o que importa
	release.DateRelease = time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, r.loc)

	return release, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
