package dto

import "time"

type CreatePropertyTraceRequest struct {
	DateSale time.Time `json:"date_sale" binding:"required"`
	Name     *string   `json:"name" binding:"omitempty,max=100"`
	Value    *float64  `json:"value" binding:"omitempty,gte=0"`
	Tax      *float64  `json:"tax" binding:"omitempty,gte=0"`
}

type PropertyTraceResponse struct {
	ID         uint      `json:"id"`
	PropertyID uint      `json:"property_id"`
	DateSale   time.Time `json:"date_sale"`
	Name       *string   `json:"name,omitempty"`
	Value      *float64  `json:"value,omitempty"`
	Tax        *float64  `json:"tax,omitempty"`
}
