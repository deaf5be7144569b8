package dto

type PropertyImageResponse struct {
	ID         uint `json:"id"`
	PropertyID uint `json:"property_id"`
	Enabled    bool `json:"enabled"`
	SizeBytes  int  `json:"size_bytes"`
}
