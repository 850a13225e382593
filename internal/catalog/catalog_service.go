package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/Anuradha654321/faculty-leave-system/internal/shared/apperror"
)

// LeaveTypesCacheKey holds the full type list; types are immutable reference
// data so a long TTL is safe.
const LeaveTypesCacheKey = "catalog:leave_types"

const leaveTypesCacheTTL = time.Hour

var ErrLeaveTypeNotFound = apperror.New(
	apperror.CodeNotFound,
	"leave type not found",
	http.StatusNotFound,
)

//go:generate mockgen -source=catalog_service.go -destination=mock/catalog_service_mock.go -package=mock
type Service interface {
	ListTypes(ctx context.Context) ([]LeaveTypeResponse, error)
	GetType(ctx context.Context, id string) (LeaveTypeResponse, error)
	GetTypeByName(ctx context.Context, name string) (LeaveTypeResponse, error)
	ListBalances(ctx context.Context, userID string) ([]BalanceResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("catalog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("catalog.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) ListTypes(ctx context.Context) ([]LeaveTypeResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, LeaveTypesCacheKey).Result()
		if err == nil {
			var resp []LeaveTypeResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(LeaveTypesCacheKey, func() (interface{}, error) {
		types, err := s.repo.FindAllTypes(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToTypeListResponse(types)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, LeaveTypesCacheKey, jsonData, leaveTypesCacheTTL)
			}
		}

		return resp, nil
	})

	if err != nil {
		s.logger.Error("list leave types failed", zap.Error(err))
		return nil, err
	}

	return v.([]LeaveTypeResponse), nil
}

func (s *service) GetType(ctx context.Context, id string) (LeaveTypeResponse, error) {
	t, err := s.repo.FindTypeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}
	return mapToTypeResponse(*t), nil
}

func (s *service) GetTypeByName(ctx context.Context, name string) (LeaveTypeResponse, error) {
	t, err := s.repo.FindTypeByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}
	return mapToTypeResponse(*t), nil
}

func (s *service) ListBalances(ctx context.Context, userID string) ([]BalanceResponse, error) {
	year := time.Now().UTC().Year()

	rows, err := s.repo.FindBalances(ctx, userID, year)
	if err != nil {
		s.logger.Error("list balances failed",
			zap.String("user_id", userID),
			zap.Int("year", year),
			zap.Error(err),
		)
		return nil, err
	}

	resp := make([]BalanceResponse, len(rows))
	for i, row := range rows {
		b := BalanceResponse{
			LeaveTypeID: row.LeaveTypeID.String(),
			TypeName:    row.TypeName,
			Year:        year,
			TotalDays:   row.TotalDays,
			UsedDays:    row.UsedDays,
		}
		if row.TotalDays != nil && row.UsedDays != nil {
			remaining := *row.TotalDays - *row.UsedDays
			b.RemainingDays = &remaining
		}
		resp[i] = b
	}
	return resp, nil
}

func mapToTypeResponse(t LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:             t.ID.String(),
		Name:           t.Name,
		Description:    t.Description,
		DefaultBalance: t.DefaultBalance,
		Category:       string(CategoryOf(t.Name)),
	}
}

func mapToTypeListResponse(types []LeaveType) []LeaveTypeResponse {
	resp := make([]LeaveTypeResponse, len(types))
	for i, t := range types {
		resp[i] = mapToTypeResponse(t)
	}
	return resp
}
