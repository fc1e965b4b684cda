package controller

import (
	"net/http"

	"github.com/alimikegami/storefront-service/internal/auth"
	"github.com/alimikegami/storefront-service/internal/catalog"
	"github.com/alimikegami/storefront-service/internal/dto"
	"github.com/labstack/echo/v4"
)

func (s *ControllerTestSuite) Test_Browse() {
	type TestCase struct {
		Name           string
		Query          string
		ExpectedStatus int
		AssertResponse func(s *ControllerTestSuite, data dto.CatalogResponse)
	}

	testCases := []TestCase{
		{
			Name:           "Defaults",
			ExpectedStatus: http.StatusOK,
			AssertResponse: func(s *ControllerTestSuite, data dto.CatalogResponse) {
				s.Equal([]string{"iphone-15", "macbook-air", "pixel-8"}, slugsOf(data.Products))
				s.Equal(699.0, data.MinPrice)
				s.Equal(1199.0, data.MaxPrice)
				s.Equal(catalog.PriceRange{Low: 699, High: 1199}, data.PriceRange)
				s.Equal(map[string]int{"mobiles": 2, "laptops": 1}, data.CategoryCounts)
				s.Equal(catalog.SortNameAsc, data.Sort)
				s.Equal(1, data.Page)
				s.Equal(1, data.TotalPages)
				s.Equal(3, data.TotalItems)
				s.Equal(catalog.PageSize, data.PageSize)
				s.Equal("page=1&sort=name_asc", data.Query)
			},
		},
		{
			Name:           "Category and price sort",
			Query:          "?category=mobiles&sort=price_desc",
			ExpectedStatus: http.StatusOK,
			AssertResponse: func(s *ControllerTestSuite, data dto.CatalogResponse) {
				s.Equal([]string{"iphone-15", "pixel-8"}, slugsOf(data.Products))
				s.Equal("mobiles", data.Category)
				s.Equal(2, data.FilteredCount)
				s.Equal(3, data.TotalItems)
			},
		},
		{
			Name:           "Price range is clamped into the bounds",
			Query:          "?minPrice=0&maxPrice=1000",
			ExpectedStatus: http.StatusOK,
			AssertResponse: func(s *ControllerTestSuite, data dto.CatalogResponse) {
				s.Equal(catalog.PriceRange{Low: 699, High: 1000}, data.PriceRange)
				s.Equal([]string{"iphone-15", "pixel-8"}, slugsOf(data.Products))
			},
		},
		{
			Name:           "Page past the end falls back to the first page",
			Query:          "?page=5",
			ExpectedStatus: http.StatusOK,
			AssertResponse: func(s *ControllerTestSuite, data dto.CatalogResponse) {
				s.Equal(1, data.Page)
				s.Len(data.Products, 3)
				s.Equal("page=1&sort=name_asc", data.Query)
			},
		},
		{
			Name:           "Unparsable page uses the default",
			Query:          "?page=abc&sort=name_desc",
			ExpectedStatus: http.StatusOK,
			AssertResponse: func(s *ControllerTestSuite, data dto.CatalogResponse) {
				s.Equal(1, data.Page)
				s.Equal([]string{"pixel-8", "macbook-air", "iphone-15"}, slugsOf(data.Products))
			},
		},
		{
			Name:           "Unparsable price",
			Query:          "?minPrice=cheap",
			ExpectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			resp := s.do(http.MethodGet, "/api/catalog"+tc.Query, "", nil)
			s.Equal(tc.ExpectedStatus, resp.StatusCode)

			if tc.AssertResponse != nil {
				var body struct {
					Data dto.CatalogResponse `json:"data"`
				}
				s.decode(resp, &body)
				tc.AssertResponse(s, body.Data)
			}
		})
	}
}

func (s *ControllerTestSuite) Test_Recommendations() {
	resp := s.do(http.MethodGet, "/api/recommendations", "", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var body struct {
		Data dto.RecommendationsResponse `json:"data"`
	}
	s.decode(resp, &body)

	s.Equal([]string{"pixel-8"}, slugsOf(body.Data.Urgent))
	s.Equal([]string{"iphone-15", "macbook-air"}, slugsOf(body.Data.Popular))
}

func (s *ControllerTestSuite) Test_Dashboard() {
	resp := s.do(http.MethodGet, "/dashboard", "", nil)
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal(auth.LoginPath, resp.Header.Get(echo.HeaderLocation))

	token, expiresAt, err := s.sessions.Issue()
	s.Require().NoError(err)

	resp = s.do(http.MethodGet, "/dashboard", "", func(r *http.Request) {
		r.AddCookie(s.sessions.Cookie(token, expiresAt))
	})
	s.Equal(http.StatusOK, resp.StatusCode)

	var body struct {
		Data dto.DashboardResponse `json:"data"`
	}
	s.decode(resp, &body)

	s.Equal(3, body.Data.Total)
	s.Equal(0, body.Data.OutOfStock)
	s.Equal(1, body.Data.LowStock)
	s.Equal(2, body.Data.InStock)
	s.Equal(1, body.Data.HighStock)
	s.Len(body.Data.Products, 3)
}

func slugsOf(products []dto.ProductResponse) []string {
	out := []string{}
	for _, p := range products {
		out = append(out, p.Slug)
	}
	return out
}
