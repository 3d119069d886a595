package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolhub/backend/internal/app/models/dto"
	"github.com/schoolhub/backend/internal/app/services"
	"github.com/schoolhub/backend/internal/middleware"
)

// GeoController proxies country/state/city lookups.
type GeoController struct {
	geoService *services.GeoService
}

// NewGeoController creates a new GeoController
func NewGeoController(geoService *services.GeoService) *GeoController {
	return &GeoController{geoService: geoService}
}

// GetCountries lists all countries
// @Summary List countries
// @Tags geo
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]services.Country}
// @Failure 502 {object} dto.APIResponse "Upstream geo API failure"
// @Router /geo/countries [get]
func (c *GeoController) GetCountries(ctx *gin.Context) {
	countries, err := c.geoService.GetCountries(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(countries))
}

// GetStates lists the states of a country
// @Summary List states of a country
// @Tags geo
// @Produce json
// @Param country path string true "Country name"
// @Success 200 {object} dto.APIResponse{data=[]services.State}
// @Failure 502 {object} dto.APIResponse "Upstream geo API failure"
// @Router /geo/countries/{country}/states [get]
func (c *GeoController) GetStates(ctx *gin.Context) {
	states, err := c.geoService.GetStates(ctx, ctx.Param("country"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(states))
}

// GetCities lists the cities of a state; the country comes from a query
// parameter because city names only make sense within one country.
// @Summary List cities of a state
// @Tags geo
// @Produce json
// @Param state path string true "State name"
// @Param country query string true "Country name"
// @Success 200 {object} dto.APIResponse{data=[]string}
// @Failure 502 {object} dto.APIResponse "Upstream geo API failure"
// @Router /geo/states/{state}/cities [get]
func (c *GeoController) GetCities(ctx *gin.Context) {
	country, ok := requireQuery(ctx, "country")
	if !ok {
		return
	}

	cities, err := c.geoService.GetCities(ctx, country, ctx.Param("state"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(cities))
}
