package services

import "github.com/taskman/taskman/internal/models"

// Thin read-side projections attached to hydrated responses. The full
// models keep raw foreign keys; these carry only the joined fields the
// client renders.

type UserSummary struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

type ProjectSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

func summarizeUser(u *models.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		Avatar:   u.Avatar,
	}
}

func summarizeProject(p *models.Project) *ProjectSummary {
	if p == nil {
		return nil
	}
	return &ProjectSummary{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Color:       p.Color,
	}
}
