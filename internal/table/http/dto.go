package http

import (
	"time"

	"github.com/mesaflow/booking-backend/internal/table"
)

type TableResponse struct {
	ID          string    `json:"id"`
	BusinessID  string    `json:"business_id"`
	Name        string    `json:"name"`
	Capacity    int       `json:"capacity"`
	MinCapacity int       `json:"min_capacity"`
	Zone        string    `json:"zone,omitempty"`
	Priority    int       `json:"priority"`
	AutoAssign  bool      `json:"auto_assign"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewTableResponse(t *table.Table) TableResponse {
	return TableResponse{
		ID:          t.ID,
		BusinessID:  t.BusinessID,
		Name:        t.Name,
		Capacity:    t.Capacity,
		MinCapacity: t.MinCapacity,
		Zone:        t.Zone,
		Priority:    t.Priority,
		AutoAssign:  t.AutoAssign,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
	}
}

type CombinationResponse struct {
	ID            string          `json:"id"`
	BusinessID    string          `json:"business_id"`
	Name          string          `json:"name"`
	TableIDs      []string        `json:"table_ids"`
	TotalCapacity int             `json:"total_capacity"`
	MinCapacity   int             `json:"min_capacity"`
	Tables        []TableResponse `json:"tables,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func NewCombinationResponse(c *table.Combination) CombinationResponse {
	resp := CombinationResponse{
		ID:            c.ID,
		BusinessID:    c.BusinessID,
		Name:          c.Name,
		TableIDs:      c.TableIDs,
		TotalCapacity: c.TotalCapacity,
		MinCapacity:   c.MinCapacity,
		CreatedAt:     c.CreatedAt,
	}
	for _, t := range c.Tables {
		resp.Tables = append(resp.Tables, NewTableResponse(t))
	}
	return resp
}

type CreateTableRequest struct {
	BusinessID  string `json:"business_id" binding:"required,uuid"`
	Name        string `json:"name" binding:"required"`
	Capacity    int    `json:"capacity" binding:"required,min=1"`
	MinCapacity int    `json:"min_capacity" binding:"omitempty,min=1"`
	Zone        string `json:"zone" binding:"omitempty"`
	Priority    int    `json:"priority" binding:"omitempty,min=0"`
	AutoAssign  *bool  `json:"auto_assign" binding:"omitempty"`
}

type UpdateTableRequest struct {
	Name        *string `json:"name" binding:"omitempty"`
	Capacity    *int    `json:"capacity" binding:"omitempty,min=1"`
	MinCapacity *int    `json:"min_capacity" binding:"omitempty,min=1"`
	Zone        *string `json:"zone" binding:"omitempty"`
	Priority    *int    `json:"priority" binding:"omitempty,min=0"`
	AutoAssign  *bool   `json:"auto_assign" binding:"omitempty"`
	IsActive    *bool   `json:"is_active" binding:"omitempty"`
}

type ListTablesRequest struct {
	BusinessID string `form:"business_id" binding:"required,uuid"`
	Zone       string `form:"zone" binding:"omitempty"`
	OnlyActive bool   `form:"only_active" binding:"omitempty"`
	Page       int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

type CreateCombinationRequest struct {
	BusinessID  string   `json:"business_id" binding:"required,uuid"`
	Name        string   `json:"name" binding:"required"`
	TableIDs    []string `json:"table_ids" binding:"required,min=2,dive,uuid"`
	MinCapacity int      `json:"min_capacity" binding:"omitempty,min=1"`
}

type ListCombinationsRequest struct {
	BusinessID string `form:"business_id" binding:"required,uuid"`
}
