package api

import (
	"time"

	"github.com/phrazzld/custom-cars-api/internal/domain"
	"github.com/phrazzld/custom-cars-api/internal/service"
)

// CarRequest is the payload for creating, replacing and previewing a car.
type CarRequest struct {
	Name          string  `json:"name"          validate:"required,max=255"`
	OptionIDs     []int64 `json:"optionIds"     validate:"required,min=1,dive,gt=0"`
	IsConvertible bool    `json:"isConvertible"`
}

// Proposal converts the request into a service proposal.
func (r CarRequest) Proposal() service.Proposal {
	return service.Proposal{
		Name:          r.Name,
		OptionIDs:     r.OptionIDs,
		IsConvertible: r.IsConvertible,
	}
}

// FeatureResponse is one feature of the catalog with its options.
type FeatureResponse struct {
	ID      int64                   `json:"id"`
	Name    string                  `json:"name"`
	Options []FeatureOptionResponse `json:"options"`
}

// FeatureOptionResponse is an option as listed in the catalog. Clients use
// requires_convertible to grey out options before submitting.
type FeatureOptionResponse struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	PriceInCents        int64  `json:"price_in_cents"`
	Image               string `json:"image"`
	RequiresConvertible bool   `json:"requires_convertible"`
}

// CarResponse is a materialized configuration.
type CarResponse struct {
	ID                int64               `json:"id"`
	Name              string              `json:"name"`
	CreatedAt         *time.Time          `json:"created_at,omitempty"`
	IsConvertible     bool                `json:"is_convertible"`
	TotalPriceInCents int64               `json:"total_price_in_cents"`
	TotalPrice        string              `json:"total_price"`
	Options           []CarOptionResponse `json:"options"`
}

// CarOptionResponse is a selected option of a car.
type CarOptionResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	PriceInCents int64  `json:"price_in_cents"`
	FeatureID    int64  `json:"feature_id"`
	Feature      string `json:"feature"`
	Image        string `json:"image"`
}

// CarSummary is the data returned after a create or replace.
type CarSummary struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	OptionIDs []int64 `json:"optionIds"`
}

func featuresToResponse(features []domain.Feature) []FeatureResponse {
	out := make([]FeatureResponse, 0, len(features))
	for _, f := range features {
		options := make([]FeatureOptionResponse, 0, len(f.Options))
		for _, o := range f.Options {
			options = append(options, FeatureOptionResponse{
				ID:                  o.ID,
				Name:                o.Name,
				PriceInCents:        o.PriceInCents,
				Image:               o.ImageRef,
				RequiresConvertible: o.RequiresConvertible,
			})
		}
		out = append(out, FeatureResponse{ID: f.ID, Name: f.Name, Options: options})
	}
	return out
}

func carToResponse(cfg *domain.Configuration) CarResponse {
	options := make([]CarOptionResponse, 0, len(cfg.Options))
	for _, o := range cfg.Options {
		options = append(options, CarOptionResponse{
			ID:           o.ID,
			Name:         o.Name,
			PriceInCents: o.PriceInCents,
			FeatureID:    o.FeatureID,
			Feature:      o.FeatureName,
			Image:        o.ImageRef,
		})
	}

	resp := CarResponse{
		ID:                cfg.ID,
		Name:              cfg.Name,
		IsConvertible:     cfg.IsConvertible,
		TotalPriceInCents: cfg.TotalPriceInCents(),
		TotalPrice:        cfg.TotalPrice(),
		Options:           options,
	}
	if !cfg.CreatedAt.IsZero() {
		createdAt := cfg.CreatedAt
		resp.CreatedAt = &createdAt
	}
	return resp
}

func carsToResponse(configs []*domain.Configuration) []CarResponse {
	out := make([]CarResponse, 0, len(configs))
	for _, cfg := range configs {
		out = append(out, carToResponse(cfg))
	}
	return out
}

func carToSummary(cfg *domain.Configuration) CarSummary {
	ids := cfg.OptionIDs()
	if ids == nil {
		ids = []int64{}
	}
	return CarSummary{ID: cfg.ID, Name: cfg.Name, OptionIDs: ids}
}
