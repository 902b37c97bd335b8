package dto

import (
	"citiesmanager/internal/domain/models"

	"github.com/google/uuid"
)

// CityResponse содержит данные города
type CityResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func ToCityResponse(city models.City) CityResponse {
	return CityResponse{ID: city.ID, Name: city.Name}
}

func ToCityResponses(cities []models.City) []CityResponse {
	resp := make([]CityResponse, 0, len(cities))
	for _, c := range cities {
		resp = append(resp, ToCityResponse(c))
	}

	return resp
}

func ToCityNames(cities []models.City) []string {
	names := make([]string, 0, len(cities))
	for _, c := range cities {
		names = append(names, c.Name)
	}

	return names
}
