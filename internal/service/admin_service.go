package service

import (
	"context"
	"time"

	"github.com/alimikegami/storefront-service/internal/auth"
	"github.com/alimikegami/storefront-service/internal/dto"
	"github.com/alimikegami/storefront-service/pkg/errs"
	"github.com/rs/zerolog/log"
)

type Session struct {
	Token     string
	ExpiresAt time.Time
}

type AdminServiceImpl struct {
	admin       *auth.Admin
	sessions    *auth.Sessions
	invalidator Invalidator
}

func CreateAdminService(admin *auth.Admin, sessions *auth.Sessions, invalidator Invalidator) AdminService {
	return &AdminServiceImpl{admin: admin, sessions: sessions, invalidator: invalidator}
}

func (s *AdminServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (session Session, err error) {
	if !s.admin.CheckCredentials(req.Email, req.Password) {
		log.Ctx(ctx).Warn().Str("component", "Login").Msg("rejected admin login")
		return session, errs.ErrInvalidCredentials
	}

	token, expiresAt, err := s.sessions.Issue()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Login").Msg("")
		return
	}

	return Session{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AdminServiceImpl) Revalidate(ctx context.Context, path string) (err error) {
	return s.invalidator.Invalidate(ctx, path)
}
