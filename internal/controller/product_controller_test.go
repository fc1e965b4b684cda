package controller

import (
	"errors"
	"net/http"

	"github.com/alimikegami/storefront-service/internal/domain"
	"github.com/alimikegami/storefront-service/internal/dto"
	"github.com/alimikegami/storefront-service/pkg/response"
)

type productEnvelope struct {
	Status  string                     `json:"status"`
	Message string                     `json:"message"`
	Count   *int                       `json:"count"`
	Data    dto.ProductResponse        `json:"data"`
	Errors  []response.ValidationError `json:"errors"`
}

func (s *ControllerTestSuite) Test_GetProducts() {
	type TestCase struct {
		Name          string
		Query         string
		ExpectedSlugs []string
	}

	testCases := []TestCase{
		{Name: "newest first", Query: "", ExpectedSlugs: []string{"macbook-air", "pixel-8", "iphone-15"}},
		{Name: "category", Query: "?category=mobiles", ExpectedSlugs: []string{"pixel-8", "iphone-15"}},
		{Name: "search is case insensitive", Query: "?search=PIXEL", ExpectedSlugs: []string{"pixel-8"}},
		{Name: "no match", Query: "?search=tablet", ExpectedSlugs: []string{}},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			resp := s.do(http.MethodGet, "/api/products"+tc.Query, "", nil)
			s.Equal(http.StatusOK, resp.StatusCode)

			var body struct {
				Count *int                  `json:"count"`
				Data  []dto.ProductResponse `json:"data"`
			}
			s.decode(resp, &body)

			slugs := []string{}
			for _, p := range body.Data {
				slugs = append(slugs, p.Slug)
			}
			s.Equal(tc.ExpectedSlugs, slugs)
			s.Require().NotNil(body.Count)
			s.Equal(len(tc.ExpectedSlugs), *body.Count)
		})
	}
}

func (s *ControllerTestSuite) Test_GetProduct() {
	type TestCase struct {
		Name           string
		Identifier     string
		ExpectedStatus int
	}

	testCases := []TestCase{
		{Name: "by slug", Identifier: "pixel-8", ExpectedStatus: http.StatusOK},
		{Name: "by id", Identifier: s.productID("pixel-8"), ExpectedStatus: http.StatusOK},
		{Name: "unknown slug", Identifier: "nokia-3310", ExpectedStatus: http.StatusNotFound},
		{Name: "unknown id", Identifier: "65f000000000000000000000", ExpectedStatus: http.StatusNotFound},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			resp := s.do(http.MethodGet, "/api/products/"+tc.Identifier, "", nil)
			s.Equal(tc.ExpectedStatus, resp.StatusCode)

			if tc.ExpectedStatus == http.StatusOK {
				var body productEnvelope
				s.decode(resp, &body)
				s.Equal("pixel-8", body.Data.Slug)
				s.Equal(domain.LowStock, body.Data.StockStatus)
			}
		})
	}
}

func (s *ControllerTestSuite) Test_CreateProduct() {
	type TestCase struct {
		Name           string
		Body           string
		Prepare        func(r *http.Request)
		Setup          func()
		ExpectedStatus int
		AssertResponse func(s *ControllerTestSuite, body productEnvelope)
	}

	testCases := []TestCase{
		{
			Name:           "Valid request",
			Body:           `{"name":" Galaxy S24 ","slug":"Galaxy-S24","price":799,"inventory":8,"category":"mobiles"}`,
			Prepare:        withAdminKey,
			ExpectedStatus: http.StatusCreated,
			AssertResponse: func(s *ControllerTestSuite, body productEnvelope) {
				s.Equal("Galaxy S24", body.Data.Name)
				s.Equal("galaxy-s24", body.Data.Slug)
				s.Equal(testPlaceholder, body.Data.Image)
				s.Equal(4, s.repo.Len())
			},
		},
		{
			Name:           "Inline image is uploaded",
			Body:           `{"name":"Pixel Fold","slug":"pixel-fold","price":1799,"image":"data:image/png;base64,iVBORw0KGgo="}`,
			Prepare:        withAdminKey,
			ExpectedStatus: http.StatusCreated,
			AssertResponse: func(s *ControllerTestSuite, body productEnvelope) {
				s.Contains(body.Data.Image, "https://ik.imagekit.io/shop/pixel-fold-")
				s.Equal(dto.DefaultCategory, body.Data.Category)
			},
		},
		{
			Name:           "Missing credential",
			Body:           `{"name":"Galaxy S24","slug":"galaxy-s24","price":799}`,
			ExpectedStatus: http.StatusUnauthorized,
			AssertResponse: func(s *ControllerTestSuite, body productEnvelope) {
				s.Equal("Unauthorized", body.Message)
				s.Equal(3, s.repo.Len())
			},
		},
		{
			Name:           "Every invalid field is reported",
			Body:           `{"slug":"bad slug!","price":-3}`,
			Prepare:        withAdminKey,
			ExpectedStatus: http.StatusBadRequest,
			AssertResponse: func(s *ControllerTestSuite, body productEnvelope) {
				s.ElementsMatch([]response.ValidationError{
					{Field: "name", Tag: "required"},
					{Field: "slug", Tag: "slug"},
					{Field: "price", Tag: "gte"},
				}, body.Errors)
			},
		},
		{
			Name:           "Missing price",
			Body:           `{"name":"Galaxy S24","slug":"galaxy-s24"}`,
			Prepare:        withAdminKey,
			ExpectedStatus: http.StatusBadRequest,
			AssertResponse: func(s *ControllerTestSuite, body productEnvelope) {
				s.Equal([]response.ValidationError{{Field: "price", Tag: "required"}}, body.Errors)
			},
		},
		{
			Name:           "Malformed body",
			Body:           `{"name":`,
			Prepare:        withAdminKey,
			ExpectedStatus: http.StatusBadRequest,
		},
		{
			Name:           "Duplicate slug",
			Body:           `{"name":"Another iPhone","slug":"iphone-15","price":1}`,
			Prepare:        withAdminKey,
			ExpectedStatus: http.StatusConflict,
			AssertResponse: func(s *ControllerTestSuite, body productEnvelope) {
				s.Equal("Slug already exists", body.Message)
				s.Equal(3, s.repo.Len())
			},
		},
		{
			Name:           "Image host down",
			Body:           `{"name":"Pixel Fold","slug":"pixel-fold","price":1799,"image":"data:image/png;base64,iVBORw0KGgo="}`,
			Prepare:        withAdminKey,
			Setup:          func() { s.images.err = errors.New("upload.imagekit.io: connection refused") },
			ExpectedStatus: http.StatusInternalServerError,
			AssertResponse: func(s *ControllerTestSuite, body productEnvelope) {
				s.Equal("Image upload failed", body.Message)
				s.Equal(3, s.repo.Len())
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			s.reset()
			if tc.Setup != nil {
				tc.Setup()
			}

			resp := s.do(http.MethodPost, "/api/products", tc.Body, tc.Prepare)
			s.Equal(tc.ExpectedStatus, resp.StatusCode)

			if tc.AssertResponse != nil {
				var body productEnvelope
				s.decode(resp, &body)
				tc.AssertResponse(s, body)
			}
		})
	}
}

func (s *ControllerTestSuite) Test_UpdateProduct() {
	type TestCase struct {
		Name           string
		Slug           string
		ID             string
		Body           string
		ExpectedStatus int
		AssertResponse func(s *ControllerTestSuite, body productEnvelope)
	}

	testCases := []TestCase{
		{
			Name:           "Omitted optional fields keep stored values",
			Slug:           "pixel-8",
			Body:           `{"name":"Pixel 8","slug":"pixel-8","price":649}`,
			ExpectedStatus: http.StatusOK,
			AssertResponse: func(s *ControllerTestSuite, body productEnvelope) {
				s.Equal(649.0, body.Data.Price)
				s.Equal("mobiles", body.Data.Category)
				s.Equal(4, body.Data.Inventory)
			},
		},
		{
			Name:           "Rename slug",
			Slug:           "pixel-8",
			Body:           `{"name":"Pixel 8 Pro","slug":"pixel-8-pro","price":899}`,
			ExpectedStatus: http.StatusOK,
			AssertResponse: func(s *ControllerTestSuite, body productEnvelope) {
				s.Equal("pixel-8-pro", body.Data.Slug)
				s.Contains(s.invalidator.paths[len(s.invalidator.paths)-1], "/products/pixel-8")
				s.Contains(s.invalidator.paths[len(s.invalidator.paths)-1], "/products/pixel-8-pro")
			},
		},
		{
			Name:           "Slug taken by another product",
			Slug:           "pixel-8",
			Body:           `{"name":"Pixel 8","slug":"iphone-15","price":649}`,
			ExpectedStatus: http.StatusConflict,
		},
		{
			Name:           "Unknown id",
			ID:             "65f000000000000000000000",
			Body:           `{"name":"Ghost","slug":"ghost","price":1}`,
			ExpectedStatus: http.StatusNotFound,
		},
		{
			Name:           "Invalid id",
			ID:             "not-an-id",
			Body:           `{"name":"Ghost","slug":"ghost","price":1}`,
			ExpectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			s.reset()

			id := tc.ID
			if tc.Slug != "" {
				id = s.productID(tc.Slug)
			}

			resp := s.do(http.MethodPut, "/api/products/"+id, tc.Body, withAdminKey)
			s.Equal(tc.ExpectedStatus, resp.StatusCode)

			if tc.AssertResponse != nil {
				var body productEnvelope
				s.decode(resp, &body)
				tc.AssertResponse(s, body)
			}
		})
	}
}

func (s *ControllerTestSuite) Test_DeleteProduct() {
	id := s.productID("macbook-air")

	resp := s.do(http.MethodDelete, "/api/products/"+id, "", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal(3, s.repo.Len())

	resp = s.do(http.MethodDelete, "/api/products/"+id, "", withAdminKey)
	s.Equal(http.StatusOK, resp.StatusCode)

	var body struct {
		Message string                    `json:"message"`
		Data    dto.DeleteProductResponse `json:"data"`
	}
	s.decode(resp, &body)
	s.Equal("Product deleted successfully", body.Message)
	s.Equal(id, body.Data.ID)
	s.Equal(2, s.repo.Len())

	resp = s.do(http.MethodDelete, "/api/products/"+id, "", withAdminKey)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp = s.do(http.MethodDelete, "/api/products/bogus", "", withAdminKey)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}
