package request

import "github.com/google/uuid"

type CityAddRequest struct {
	Name string `json:"name" validate:"required,notblank"`
}

type CityUpdateRequest struct {
	ID   uuid.UUID `json:"id" validate:"required"`
	Name string    `json:"name" validate:"required,notblank"`
}
