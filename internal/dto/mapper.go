package dto

import (
	"math"

	"github.com/Payphone-Digital/property-api/internal/model"
)

// NewPropertyResponse maps a property row, including whatever associations
// were preloaded on it.
func NewPropertyResponse(p *model.Property) *PropertyResponse {
	resp := &PropertyResponse{
		ID:           p.ID,
		Name:         p.Name,
		Address:      p.Address,
		Price:        p.Price,
		CodeInternal: p.CodeInternal,
		Year:         p.Year,
		OwnerID:      p.OwnerID,
		Enabled:      p.Enabled,
	}

	if p.Owner.ID != 0 {
		resp.OwnerName = p.Owner.Name
	}

	for i := range p.Images {
		resp.Images = append(resp.Images, *NewPropertyImageResponse(&p.Images[i]))
	}
	for i := range p.Traces {
		resp.Traces = append(resp.Traces, *NewPropertyTraceResponse(&p.Traces[i]))
	}

	return resp
}

func NewPagedPropertiesResponse(items []PropertyResponse, total int64, pageNumber, pageSize int) *PagedPropertiesResponse {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(pageSize)))
	}

	return &PagedPropertiesResponse{
		Data:       items,
		TotalCount: total,
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

func NewOwnerResponse(o *model.Owner) *OwnerResponse {
	resp := &OwnerResponse{
		ID:       o.ID,
		Name:     o.Name,
		Address:  o.Address,
		Birthday: o.Birthday,
		Photo:    o.Photo,
	}

	for i := range o.Properties {
		resp.Properties = append(resp.Properties, *NewPropertyResponse(&o.Properties[i]))
	}

	return resp
}

// NewPropertyImageResponse reports the image size instead of its bytes so
// listings stay small. The binary itself is served by the download route.
func NewPropertyImageResponse(img *model.PropertyImage) *PropertyImageResponse {
	return &PropertyImageResponse{
		ID:         img.ID,
		PropertyID: img.PropertyID,
		Enabled:    img.Enabled,
		SizeBytes:  len(img.File),
	}
}

func NewPropertyTraceResponse(t *model.PropertyTrace) *PropertyTraceResponse {
	return &PropertyTraceResponse{
		ID:         t.ID,
		PropertyID: t.PropertyID,
		DateSale:   t.DateSale,
		Name:       t.Name,
		Value:      t.Value,
		Tax:        t.Tax,
	}
}
