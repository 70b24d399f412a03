package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// OpportunityType categorizes opportunities (fellowship, research, job, ...).
type OpportunityType struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

const OpportunityTypeColumns = `id, name, description, color, is_active, created_at, updated_at`

func ScanOpportunityType(row pgx.Row) (*OpportunityType, error) {
	var t OpportunityType
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Color, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

type OpportunityTypeInput struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=500"`
	Color       string `json:"color" binding:"omitempty,hexcolor"`
	IsActive    *bool  `json:"isActive"`
}
