package dtos

import "github.com/workbridge/workbridge/internal/models"

type JobCreationRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Category    string  `json:"category"`
	Tags        []string `json:"tags"`
	PayMin      float64 `json:"pay_min" binding:"omitempty,gte=0"`
	PayMax      float64 `json:"pay_max" binding:"omitempty,gtefield=PayMin"`
	Location    string  `json:"location"`
	Lat         float64 `json:"lat" binding:"omitempty,latitude"`
	Lng         float64 `json:"lng" binding:"omitempty,longitude"`
	// Defaults to "active"; "draft" is the only other status accepted at creation.
	Status string `json:"status" binding:"omitempty,oneof=active draft"`
}

type JobUpdateRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
	PayMin      *float64  `json:"pay_min"`
	PayMax      *float64  `json:"pay_max"`
	Location    *string   `json:"location"`
	Lat         *float64  `json:"lat"`
	Lng         *float64  `json:"lng"`
	Status      *string   `json:"status" binding:"omitempty,jobstatus"`
}

// JobFilter is the fixed set of named filters the listing accepts. Values
// are bound from the query string and applied as parameterized predicates.
type JobFilter struct {
	Keyword  string  `form:"keyword"`
	Status   string  `form:"status" binding:"omitempty,jobstatus"`
	Category string  `form:"category"`
	PayMin   float64 `form:"pay_min"`
	PayMax   float64 `form:"pay_max"`
	Lat      float64 `form:"lat"`
	Lng      float64 `form:"lng"`
	RadiusKm float64 `form:"radius_km"`
	Page     int     `form:"page"`
	Limit    int     `form:"limit"`
}

type JobResponse struct {
	models.Job
	CompanyName string `json:"company_name,omitempty"`
}
