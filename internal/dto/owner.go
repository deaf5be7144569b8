package dto

import "time"

type CreateOwnerRequest struct {
	Name        string     `json:"name" binding:"required,max=100"`
	Address     *string    `json:"address" binding:"omitempty,max=255"`
	Birthday    *time.Time `json:"birthday"`
	PhotoBase64 string     `json:"photo_base64" binding:"omitempty,base64"`
}

// UpdateOwnerRequest is a merge-patch: only set fields overwrite.
type UpdateOwnerRequest struct {
	Name        *string    `json:"name" binding:"omitempty,max=100"`
	Address     *string    `json:"address" binding:"omitempty,max=255"`
	Birthday    *time.Time `json:"birthday"`
	PhotoBase64 string     `json:"photo_base64" binding:"omitempty,base64"`
}

type OwnerResponse struct {
	ID         uint               `json:"id"`
	Name       string             `json:"name"`
	Address    *string            `json:"address,omitempty"`
	Birthday   *time.Time         `json:"birthday,omitempty"`
	Photo      []byte             `json:"photo,omitempty"`
	Properties []PropertyResponse `json:"properties,omitempty"`
}
