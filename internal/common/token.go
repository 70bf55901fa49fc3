package common

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Pradipta/lokapasar/internal/config"
	"github.com/Pradipta/lokapasar/internal/constants"
	inErrors "github.com/Pradipta/lokapasar/internal/errors"
	"github.com/Pradipta/lokapasar/internal/log"
)

type jwtToken struct{}

func AttachJwtTokenToContext(c context.Context, token *jwt.Token) context.Context {
	return context.WithValue(c, jwtToken{}, token)
}

func JwtTokenFromContext(c context.Context) (*jwt.Token, error) {
	token, ok := c.Value(jwtToken{}).(*jwt.Token)
	if !ok {
		return nil, inErrors.ErrEmptyAuth
	}
	return token, nil
}

func VerifyToken(c context.Context, token string) (*jwt.Token, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "VerifyToken").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing config").Logger()
	c = logger.WithContext(c)
	cfg := config.InitConfig(c, constants.AppCartService)

	logger = logger.With().Str(log.KeyProcess, "parsing claims").Logger()
	jwtToken, err := jwt.ParseWithClaims(token,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.Application.SecretKey), nil
		},
		jwt.WithAudience(constants.AudienceShopper),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		err = fmt.Errorf("failed parsing with claims with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("parsed claims")

	if !jwtToken.Valid {
		logger.Error().Err(inErrors.ErrTokenInvalid).Msg(inErrors.ErrTokenInvalid.Error())
		return nil, inErrors.ErrTokenInvalid
	}

	return jwtToken, nil
}

// UserIdFromJwtToken resolves the shopper id from the verified token
// attached to the request context by the auth middleware.
func UserIdFromJwtToken(c context.Context) (uuid.UUID, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserIdFromJwtToken").
		Logger()

	token, err := JwtTokenFromContext(c)
	if err != nil {
		logger.Error().Err(err).Msg(err.Error())
		return uuid.Nil, err
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		logger.Error().Err(inErrors.ErrEmptySubject).Msg(inErrors.ErrEmptySubject.Error())
		return uuid.Nil, inErrors.ErrEmptySubject
	}

	userId, err := uuid.Parse(subject)
	if err != nil {
		err = fmt.Errorf("failed parsing subject=%s with error=%w", subject, err)
		logger.Error().Err(err).Msg(err.Error())
		return uuid.Nil, err
	}

	return userId, nil
}
