package ranking

import (
	"context"
	"errors"
	"time"

	"github.com/vfg2006/leads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/leads-dashboard-api/internal/domain"
)

var ErrInvalidMonth = errors.New("mês inválido, use o formato MM-AAAA")

type RankingService interface {
	GetSellerRanking(ctx context.Context, month string) (*domain.SellerRankingResponse, error)
}

type SellerRankingService struct {
	SellerRankingRepository repository.SellerRankingRepository
	now                     func() time.Time
}

func NewSellerRankingService(sellerRankingRepository repository.SellerRankingRepository) RankingService {
	return &SellerRankingService{
		SellerRankingRepository: sellerRankingRepository,
		now:                     time.Now,
	}
}

// GetSellerRanking devolve o ranking gravado para o mês (MM-AAAA). Sem mês, usa o de ontem,
// que é o último mês processado pelo agendador.
func (s *SellerRankingService) GetSellerRanking(ctx context.Context, month string) (*domain.SellerRankingResponse, error) {
	if month == "" {
		month = s.now().AddDate(0, 0, -1).Format("01-2006")
	} else if _, err := time.Parse("01-2006", month); err != nil {
		return nil, ErrInvalidMonth
	}

	ranking, err := s.SellerRankingRepository.GetSellerRanking(ctx, month)
	if err != nil {
		return nil, err
	}
	return ranking, nil
}
