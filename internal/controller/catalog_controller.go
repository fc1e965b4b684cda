package controller

import (
	"math"
	"strconv"

	"github.com/alimikegami/storefront-service/internal/catalog"
	"github.com/alimikegami/storefront-service/internal/dto"
	"github.com/alimikegami/storefront-service/internal/service"
	"github.com/alimikegami/storefront-service/pkg/errs"
	"github.com/alimikegami/storefront-service/pkg/response"
	"github.com/labstack/echo/v4"
)

type CatalogController struct {
	service service.CatalogService
}

func CreateCatalogController(g *echo.Group, service service.CatalogService) {
	c := CatalogController{
		service: service,
	}
	g.GET("/catalog", c.Browse)
	g.GET("/recommendations", c.Recommendations)
}

// RegisterDashboard mounts the inventory summary page. Gating is left to the page gate middleware.
func RegisterDashboard(e *echo.Echo, service service.CatalogService) {
	c := CatalogController{
		service: service,
	}
	e.GET("/dashboard", c.Dashboard)
}

func (c *CatalogController) Browse(e echo.Context) error {
	req := dto.CatalogRequest{
		Category: e.QueryParam("category"),
		Query:    catalog.DecodeQueryState(e.QueryParams(), catalog.DefaultQueryState),
	}

	var err error
	if req.MinPrice, err = priceParam(e, "minPrice"); err != nil {
		return response.WriteErrorResponse(e, err, []response.ValidationError{{Field: "minPrice", Tag: "number"}})
	}
	if req.MaxPrice, err = priceParam(e, "maxPrice"); err != nil {
		return response.WriteErrorResponse(e, err, []response.ValidationError{{Field: "maxPrice", Tag: "number"}})
	}

	data, err := c.service.Browse(e.Request().Context(), req)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *CatalogController) Recommendations(e echo.Context) error {
	data, err := c.service.Recommendations(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *CatalogController) Dashboard(e echo.Context) error {
	data, err := c.service.Dashboard(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

// priceParam returns nil when the parameter is absent.
func priceParam(e echo.Context, name string) (*float64, error) {
	raw := e.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, errs.ErrValidation
	}
	return &v, nil
}
