package directory

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Anuradha654321/faculty-leave-system/internal/domain"
)

const searchLimit = 10

//go:generate mockgen -source=directory_service.go -destination=mock/directory_service_mock.go -package=mock
type Service interface {
	SearchFaculty(ctx context.Context, actor domain.Actor, query string) ([]FacultySuggestion, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("directory.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("directory.service")
	}
	return &service{repo: repo, logger: l}
}

// SearchFaculty returns up to ten active faculty in the actor's department
// whose first or last name contains the query. Disallowed roles and empty
// queries get an empty list, not an error.
func (s *service) SearchFaculty(ctx context.Context, actor domain.Actor, query string) ([]FacultySuggestion, error) {
	if !actor.CanApplyLeave() {
		return []FacultySuggestion{}, nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return []FacultySuggestion{}, nil
	}

	users, err := s.repo.SearchFaculty(ctx, actor.DeptID, actor.UserID, query, searchLimit)
	if err != nil {
		s.logger.Error("faculty search failed",
			zap.String("dept_id", actor.DeptID),
			zap.Error(err),
		)
		return nil, err
	}

	resp := make([]FacultySuggestion, len(users))
	for i, u := range users {
		resp[i] = FacultySuggestion{
			ID:   u.ID.String(),
			Name: u.FullName(),
		}
	}
	return resp, nil
}
