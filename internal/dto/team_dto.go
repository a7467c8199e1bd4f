package dto

import "github.com/yeol2/8-pumati-be/internal/model"

type TeamResponse struct {
	ID     uint `json:"id"`
	Term   int  `json:"term"`
	Number int  `json:"number"`
}

func NewTeamResponse(t *model.Team) *TeamResponse {
	return &TeamResponse{
		ID:     t.ID,
		Term:   t.Term,
		Number: t.Number,
	}
}
