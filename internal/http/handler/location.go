package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"eggslist/internal/repository"
	"eggslist/internal/service"
)

// ListStates returns every state with its country name.
//
// @Summary List states
// @Tags locations
// @Produce json
// @Success 200 {array} model.StateView
// @Router /api/site-configuration/locations/states [get]
func ListStates(svc service.LocationService) fiber.Handler {
	return listHandler(svc.ListStates)
}

// ListCities returns cities, optionally narrowed by state or country slug
// and a free text search.
//
// @Summary List cities
// @Tags locations
// @Produce json
// @Param state query string false "state slug"
// @Param country query string false "country slug"
// @Param search query string false "search terms"
// @Success 200 {array} model.CityView
// @Router /api/site-configuration/locations/cities [get]
func ListCities(svc service.LocationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := repository.CityFilter{
			StateSlug:   c.Query("state"),
			CountrySlug: c.Query("country"),
			Search:      c.Query("search"),
		}
		res, err := svc.ListCities(c.UserContext(), f)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// ListZipCodes returns zip codes filtered by exact name, city slug or state slug.
//
// @Summary List zip codes
// @Tags locations
// @Produce json
// @Param name query string false "zip code"
// @Param city query string false "city slug"
// @Param state query string false "state slug"
// @Success 200 {array} model.ZipCodeView
// @Router /api/site-configuration/locations/zip-codes [get]
func ListZipCodes(svc service.LocationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := repository.ZipCodeFilter{
			Name:      c.Query("name"),
			CitySlug:  c.Query("city"),
			StateSlug: c.Query("state"),
		}
		res, err := svc.ListZipCodes(c.UserContext(), f)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// NearbyZipCodes returns zip codes within radius miles of lat/lng, nearest first.
//
// @Summary Zip codes near a point
// @Tags locations
// @Produce json
// @Param lat query number true "latitude"
// @Param lng query number true "longitude"
// @Param radius query number false "radius in miles"
// @Success 200 {array} model.ZipCodeView
// @Failure 400 {object} errorPayload
// @Router /api/site-configuration/locations/zip-codes/nearby [get]
func NearbyZipCodes(svc service.LocationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fields := map[string]string{}
		lat := queryFloat(c, "lat", true, fields)
		lng := queryFloat(c, "lng", true, fields)
		radius := queryFloat(c, "radius", false, fields)
		if len(fields) > 0 {
			return writeValidationError(c, fields)
		}

		res, err := svc.NearbyZipCodes(c.UserContext(), lat, lng, radius)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// queryFloat parses a numeric query parameter, recording a message in fields
// when it is malformed, or missing and required.
func queryFloat(c *fiber.Ctx, key string, required bool, fields map[string]string) float64 {
	raw := c.Query(key)
	if raw == "" {
		if required {
			fields[key] = "this field is required"
		}
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fields[key] = "a valid number is required"
		return 0
	}
	return v
}

// CreateCountry adds a country.
//
// @Summary Create country
// @Tags admin-locations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body service.CountryInput true "country"
// @Success 201 {object} model.Country
// @Router /api/admin/countries [post]
func CreateCountry(svc service.LocationService) fiber.Handler {
	return createHandler(svc.CreateCountry)
}

// CreateState adds a state under the country slug given in the body.
func CreateState(svc service.LocationService) fiber.Handler {
	return createHandler(svc.CreateState)
}

// CreateCity adds a city under the state slug given in the body.
func CreateCity(svc service.LocationService) fiber.Handler {
	return createHandler(svc.CreateCity)
}

// CreateZipCode adds a zip code under the city slug given in the body.
func CreateZipCode(svc service.LocationService) fiber.Handler {
	return createHandler(svc.CreateZipCode)
}

// DeleteLocation removes the row of level identified by the :slug param,
// together with everything below it.
//
// @Summary Delete a location
// @Tags admin-locations
// @Security BearerAuth
// @Param slug path string true "slug"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /api/admin/countries/{slug} [delete]
// @Router /api/admin/states/{slug} [delete]
// @Router /api/admin/cities/{slug} [delete]
// @Router /api/admin/zip-codes/{slug} [delete]
func DeleteLocation(svc service.LocationService, level repository.LocationLevel) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), level, c.Params("slug")); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
