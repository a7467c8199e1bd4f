package service

import (
	"context"
	"errors"

	"github.com/yeol2/8-pumati-be/internal/dto"
	"github.com/yeol2/8-pumati-be/internal/repository"
	"github.com/yeol2/8-pumati-be/pkg/apperror"
)

type TeamService interface {
	// GetByTermAndNumber resolves a (term, number) pair to a team. A miss is
	// not an error: it returns (nil, nil) so callers can clear a member's team.
	GetByTermAndNumber(ctx context.Context, term, number int) (*dto.TeamResponse, error)
}

type teamService struct {
	repo repository.TeamRepository
}

func NewTeamService(repo repository.TeamRepository) TeamService {
	return &teamService{repo: repo}
}

func (s *teamService) GetByTermAndNumber(ctx context.Context, term, number int) (*dto.TeamResponse, error) {
	team, err := s.repo.FindByTermAndNumber(ctx, term, number)
	if err != nil {
		if errors.Is(err, apperror.ErrTeamNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return dto.NewTeamResponse(team), nil
}
