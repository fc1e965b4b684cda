package controller

import (
	"github.com/alimikegami/storefront-service/internal/dto"
	"github.com/alimikegami/storefront-service/internal/service"
	"github.com/alimikegami/storefront-service/pkg/errs"
	"github.com/alimikegami/storefront-service/pkg/response"
	"github.com/alimikegami/storefront-service/pkg/validation"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type ProductController struct {
	service service.ProductService
}

func CreateProductController(g *echo.Group, service service.ProductService, requireAdmin echo.MiddlewareFunc) {
	c := ProductController{
		service: service,
	}
	g.GET("/products", c.GetProducts)
	g.GET("/products/:id", c.GetProduct)
	g.POST("/products", c.AddProduct, requireAdmin)
	g.PUT("/products/:id", c.UpdateProduct, requireAdmin)
	g.DELETE("/products/:id", c.DeleteProduct, requireAdmin)
}

func (c *ProductController) GetProducts(e echo.Context) error {
	filter := dto.ProductFilter{}
	if err := e.Bind(&filter); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "GetProducts").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	data, err := c.service.GetProducts(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteListResponse(e, "successfully retrieved products", data)
}

func (c *ProductController) GetProduct(e echo.Context) error {
	data, err := c.service.GetProduct(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *ProductController) AddProduct(e echo.Context) error {
	payload, fields, err := bindProduct(e, "AddProduct")
	if err != nil {
		return response.WriteErrorResponse(e, err, fields)
	}

	data, err := c.service.AddProduct(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "product created", data)
}

func (c *ProductController) UpdateProduct(e echo.Context) error {
	payload, fields, err := bindProduct(e, "UpdateProduct")
	if err != nil {
		return response.WriteErrorResponse(e, err, fields)
	}

	payload.ID = e.Param("id")
	data, err := c.service.UpdateProduct(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "product updated", data)
}

func (c *ProductController) DeleteProduct(e echo.Context) error {
	data, err := c.service.DeleteProduct(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, data.Message, data)
}

// bindProduct decodes and validates a product body, reporting every violated field.
func bindProduct(e echo.Context, component string) (dto.ProductRequest, []response.ValidationError, error) {
	payload := dto.ProductRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Warn().Err(err).Str("component", component).Msg("malformed product body")
		return payload, nil, errs.ErrClient
	}

	payload.Normalize()
	if err := e.Validate(&payload); err != nil {
		fields := validation.Errors(err)
		if fields == nil {
			return payload, nil, err
		}
		return payload, fields, errs.ErrValidation
	}

	return payload, nil, nil
}
