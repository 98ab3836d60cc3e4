package service_test

import (
	"testing"

	"github.com/phrazzld/custom-cars-api/internal/domain"
	"github.com/stretchr/testify/require"
)

const (
	featureExterior int64 = 1
	featureRoof     int64 = 2

	optPolarWhite   int64 = 1
	optVelocityRed  int64 = 3
	optStandardRoof int64 = 5
	optSoftTop      int64 = 7
)

func testCatalog(t *testing.T) *domain.Catalog {
	t.Helper()

	catalog, err := domain.NewCatalog([]domain.Feature{
		{ID: featureExterior, Name: "Exterior", Options: []domain.Option{
			{ID: optPolarWhite, FeatureID: featureExterior, Name: "Polar White", PriceInCents: 0},
			{ID: optVelocityRed, FeatureID: featureExterior, Name: "Velocity Red", PriceInCents: 75000},
		}},
		{ID: featureRoof, Name: "Roof", Options: []domain.Option{
			{ID: optStandardRoof, FeatureID: featureRoof, Name: "Standard Roof", PriceInCents: 0},
			{ID: optSoftTop, FeatureID: featureRoof, Name: "Convertible Soft Top", PriceInCents: 250000,
				RequiresConvertible: true},
		}},
	})
	require.NoError(t, err)
	return catalog
}
