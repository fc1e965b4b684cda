package controller

import (
	"errors"
	"net/http"

	"github.com/alimikegami/storefront-service/internal/auth"
	"github.com/alimikegami/storefront-service/internal/dto"
)

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	return nil
}

func (s *ControllerTestSuite) Test_Login() {
	type TestCase struct {
		Name           string
		Body           string
		ExpectedStatus int
		ExpectedBody   dto.LoginResponse
		ExpectCookie   bool
	}

	testCases := []TestCase{
		{
			Name:           "Valid credentials",
			Body:           `{"email":"Admin@Shop.test","password":"s3cret"}`,
			ExpectedStatus: http.StatusOK,
			ExpectedBody:   dto.LoginResponse{Success: true},
			ExpectCookie:   true,
		},
		{
			Name:           "Wrong password",
			Body:           `{"email":"admin@shop.test","password":"guess"}`,
			ExpectedStatus: http.StatusUnauthorized,
			ExpectedBody:   dto.LoginResponse{Success: false, Message: "Invalid credentials"},
		},
		{
			Name:           "Missing fields",
			Body:           `{}`,
			ExpectedStatus: http.StatusUnauthorized,
			ExpectedBody:   dto.LoginResponse{Success: false, Message: "Invalid credentials"},
		},
		{
			Name:           "Malformed body",
			Body:           `{"email":`,
			ExpectedStatus: http.StatusBadRequest,
			ExpectedBody:   dto.LoginResponse{Success: false, Message: "Bad request"},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			resp := s.do(http.MethodPost, "/api/admin/login", tc.Body, nil)
			s.Equal(tc.ExpectedStatus, resp.StatusCode)

			var body dto.LoginResponse
			s.decode(resp, &body)
			s.Equal(tc.ExpectedBody, body)

			cookie := sessionCookie(resp)
			if !tc.ExpectCookie {
				s.Nil(cookie)
				return
			}

			s.Require().NotNil(cookie)
			s.True(cookie.HttpOnly)
			s.Equal("/", cookie.Path)
			s.Equal(3600, cookie.MaxAge)
			s.True(s.sessions.Verify(cookie.Value))
		})
	}
}

func (s *ControllerTestSuite) Test_SessionLifecycle() {
	check := func(prepare func(r *http.Request)) bool {
		resp := s.do(http.MethodGet, "/api/admin/check", "", prepare)
		s.Equal(http.StatusOK, resp.StatusCode)

		var body dto.SessionResponse
		s.decode(resp, &body)
		return body.IsAdmin
	}

	s.False(check(nil))
	s.False(check(func(r *http.Request) { r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "garbage"}) }))

	resp := s.do(http.MethodPost, "/api/admin/login", `{"email":"admin@shop.test","password":"s3cret"}`, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	cookie := sessionCookie(resp)
	s.Require().NotNil(cookie)

	s.True(check(func(r *http.Request) { r.AddCookie(cookie) }))

	resp = s.do(http.MethodPost, "/api/admin/logout", "", func(r *http.Request) { r.AddCookie(cookie) })
	s.Equal(http.StatusOK, resp.StatusCode)
	cleared := sessionCookie(resp)
	s.Require().NotNil(cleared)
	s.Empty(cleared.Value)
	s.Less(cleared.MaxAge, 0)

	// the session cookie doubles as the admin credential for mutations
	resp = s.do(http.MethodPost, "/api/products", `{"name":"Galaxy S24","slug":"galaxy-s24","price":799}`, func(r *http.Request) {
		r.AddCookie(cookie)
	})
	s.Equal(http.StatusCreated, resp.StatusCode)
}

func (s *ControllerTestSuite) Test_Revalidate() {
	type TestCase struct {
		Name           string
		Body           string
		Prepare        func(r *http.Request)
		Setup          func()
		ExpectedStatus int
		ExpectedBody   dto.RevalidateResponse
	}

	testCases := []TestCase{
		{
			Name:           "Valid path",
			Body:           `{"path":"/products/pixel-8"}`,
			Prepare:        withAdminKey,
			ExpectedStatus: http.StatusOK,
			ExpectedBody:   dto.RevalidateResponse{Revalidated: true, Path: "/products/pixel-8"},
		},
		{
			Name:           "Relative path",
			Body:           `{"path":"products"}`,
			Prepare:        withAdminKey,
			ExpectedStatus: http.StatusBadRequest,
			ExpectedBody:   dto.RevalidateResponse{Error: "path must start with /"},
		},
		{
			Name:           "Delivery failure",
			Body:           `{"path":"/"}`,
			Prepare:        withAdminKey,
			Setup:          func() { s.invalidator.err = errors.New("broker unreachable") },
			ExpectedStatus: http.StatusInternalServerError,
			ExpectedBody:   dto.RevalidateResponse{Error: "Error revalidating"},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			s.reset()
			if tc.Setup != nil {
				tc.Setup()
			}

			resp := s.do(http.MethodPost, "/api/revalidate", tc.Body, tc.Prepare)
			s.Equal(tc.ExpectedStatus, resp.StatusCode)

			var body dto.RevalidateResponse
			s.decode(resp, &body)
			s.Equal(tc.ExpectedBody, body)
		})
	}

	s.Run("Missing credential", func() {
		resp := s.do(http.MethodPost, "/api/revalidate", `{"path":"/"}`, nil)
		s.Equal(http.StatusUnauthorized, resp.StatusCode)
	})
}
