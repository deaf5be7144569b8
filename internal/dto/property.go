package dto

type CreatePropertyRequest struct {
	Name         string   `json:"name" binding:"required,max=100"`
	Address      string   `json:"address" binding:"required,max=255"`
	Price        *float64 `json:"price" binding:"omitempty,gte=0"`
	CodeInternal *string  `json:"code_internal" binding:"omitempty,max=50"`
	Year         *int     `json:"year" binding:"omitempty,gte=1800,lte=2100"`
	OwnerID      uint     `json:"owner_id" binding:"required"`
}

// UpdatePropertyRequest is a merge-patch: only set fields overwrite.
type UpdatePropertyRequest struct {
	Name         *string  `json:"name" binding:"omitempty,max=100"`
	Address      *string  `json:"address" binding:"omitempty,max=255"`
	Price        *float64 `json:"price" binding:"omitempty,gte=0"`
	CodeInternal *string  `json:"code_internal" binding:"omitempty,max=50"`
	Year         *int     `json:"year" binding:"omitempty,gte=1800,lte=2100"`
	OwnerID      *uint    `json:"owner_id"`
	Enabled      *bool    `json:"enabled"`
}

type ChangePriceRequest struct {
	Price *float64 `json:"price" binding:"required,gte=0"`
}

// PropertyFilterRequest binds the listing query string.
type PropertyFilterRequest struct {
	Name       string   `form:"name"`
	Address    string   `form:"address"`
	MinPrice   *float64 `form:"min_price"`
	MaxPrice   *float64 `form:"max_price"`
	MinYear    *int     `form:"min_year"`
	MaxYear    *int     `form:"max_year"`
	OwnerID    *uint    `form:"owner_id"`
	Enabled    *bool    `form:"enabled"`
	PageNumber int      `form:"page_number"`
	PageSize   int      `form:"page_size"`
}

type PropertyResponse struct {
	ID           uint                    `json:"id"`
	Name         string                  `json:"name"`
	Address      string                  `json:"address"`
	Price        *float64                `json:"price,omitempty"`
	CodeInternal *string                 `json:"code_internal,omitempty"`
	Year         *int                    `json:"year,omitempty"`
	OwnerID      uint                    `json:"owner_id"`
	OwnerName    string                  `json:"owner_name,omitempty"`
	Enabled      bool                    `json:"enabled"`
	Images       []PropertyImageResponse `json:"images,omitempty"`
	Traces       []PropertyTraceResponse `json:"traces,omitempty"`
}

// PagedPropertiesResponse pairs one page of rows with the count over the
// whole filtered set.
type PagedPropertiesResponse struct {
	Data       []PropertyResponse `json:"data"`
	TotalCount int64              `json:"total_count"`
	PageNumber int                `json:"page_number"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}
