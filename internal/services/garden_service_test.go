package services_test

import (
	"testing"

	"sproutlog/internal/models"
	"sproutlog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGardenService_Gardens(t *testing.T) {
	gardens := new(MockGardenRepository)
	service := services.NewGardenService(gardens, new(MockSpeciesRepository))

	gardens.On("ListByUser", uint(1)).Return([]models.Garden{{ID: 1, UserID: 1, Name: "Backyard"}}, nil).Once()
	list, err := service.ListGardens(1)
	assert.NoError(t, err)
	assert.Len(t, list, 1)

	gardens.On("Create", mock.MatchedBy(func(g *models.Garden) bool {
		return g.UserID == 1 && g.Name == "Herb Spiral"
	})).Return(nil).Once()
	g, err := service.CreateGarden(1, services.CreateGardenRequest{Name: " Herb Spiral "})
	require.NoError(t, err)
	assert.Equal(t, "Herb Spiral", g.Name)

	_, err = service.CreateGarden(1, services.CreateGardenRequest{})
	var vErr *services.ValidationError
	assert.ErrorAs(t, err, &vErr)
	gardens.AssertExpectations(t)
}

func TestGardenService_Species(t *testing.T) {
	species := new(MockSpeciesRepository)
	service := services.NewGardenService(new(MockGardenRepository), species)

	seed := []models.Species{{CommonName: "Tomato", ScientificName: "Solanum lycopersicum"}}
	species.On("Seed", seed).Return(1, nil).Once()
	n, err := service.SeedSpecies(seed)
	assert.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = service.SeedSpecies([]models.Species{{ScientificName: "Nameless"}})
	var vErr *services.ValidationError
	assert.ErrorAs(t, err, &vErr)

	species.On("GetAll").Return(seed, nil).Once()
	all, err := service.ListSpecies()
	assert.NoError(t, err)
	assert.Equal(t, seed, all)
	species.AssertExpectations(t)
}
