// Package mapper copies fields between store entities, API DTOs and
// repository commands. It performs no validation.
package mapper

import (
	"github.com/FACorreiaa/go-cityinfo-api/internal/models"
	"github.com/FACorreiaa/go-cityinfo-api/internal/repository"
	"github.com/FACorreiaa/go-cityinfo-api/internal/types"
)

func ToCityDto(c models.City) types.CityDto {
	pois := ToPointOfInterestDtos(c.PointsOfInterest)
	return types.CityDto{
		ID:                       c.ID,
		Name:                     c.Name,
		Description:              c.Description,
		NumberOfPointsOfInterest: len(pois),
		PointsOfInterest:         pois,
	}
}

func ToCityWithoutPointsOfInterestDto(c models.City) types.CityWithoutPointsOfInterestDto {
	return types.CityWithoutPointsOfInterestDto{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}

func ToCityWithoutPointsOfInterestDtos(cities []models.City) []types.CityWithoutPointsOfInterestDto {
	out := make([]types.CityWithoutPointsOfInterestDto, 0, len(cities))
	for _, c := range cities {
		out = append(out, ToCityWithoutPointsOfInterestDto(c))
	}
	return out
}

func ToPointOfInterestDto(p models.PointOfInterest) types.PointOfInterestDto {
	return types.PointOfInterestDto{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
	}
}

// ToPointOfInterestDtos never returns nil so the JSON encoding is [] rather than null.
func ToPointOfInterestDtos(pois []models.PointOfInterest) []types.PointOfInterestDto {
	out := make([]types.PointOfInterestDto, 0, len(pois))
	for _, p := range pois {
		out = append(out, ToPointOfInterestDto(p))
	}
	return out
}

func ToAddPointOfInterestCommand(dto types.PointOfInterestForCreationDto) repository.AddPointOfInterestCommand {
	return repository.AddPointOfInterestCommand{
		Name:        dto.Name,
		Description: dto.Description,
	}
}

// ToPointOfInterestForUpdateDto is the document a PATCH is applied to.
func ToPointOfInterestForUpdateDto(p models.PointOfInterest) types.PointOfInterestForUpdateDto {
	return types.PointOfInterestForUpdateDto{
		Name:        p.Name,
		Description: p.Description,
	}
}

func ToUpdatePointOfInterestCommand(cityID, poiID int, dto types.PointOfInterestForUpdateDto) repository.UpdatePointOfInterestCommand {
	return repository.UpdatePointOfInterestCommand{
		CityID:            cityID,
		PointOfInterestID: poiID,
		Name:              dto.Name,
		Description:       dto.Description,
	}
}

// ApplyUpdate returns p with the update's fields copied over it.
func ApplyUpdate(p models.PointOfInterest, dto types.PointOfInterestForUpdateDto) models.PointOfInterest {
	p.Name = dto.Name
	p.Description = dto.Description
	return p
}
