package service

import (
	"context"

	"medibook/config"
	"medibook/infras/jwt"
	"medibook/infras/otel"
	"medibook/internal/domains/auth/model/dto"
	"medibook/shared/constant"
	"medibook/shared/failure"

	"github.com/rs/zerolog/log"
)

// Auth exchanges host-issued tokens. There is no local credential store:
// the initial pair is minted by the hosting platform with the shared
// secrets, this service only rotates it.
type Auth interface {
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
}

type serviceImpl struct {
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(cfg *config.Config, otel otel.Otel, jwtService jwt.JWT) Auth {
	return &serviceImpl{
		cfg:        cfg,
		otel:       otel,
		jwtService: jwtService,
	}
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokenPair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}
