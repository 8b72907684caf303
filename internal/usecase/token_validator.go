package usecase

import (
	"nest/internal/domain/auth"
	"nest/internal/pkg/errs"
	"nest/internal/pkg/jwt"
)

// TokenValidator turns a bearer token into the calling principal.
type TokenValidator interface {
	ValidateToken(tokenString string) (auth.Principal, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (auth.Principal, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return auth.Principal{}, err
	}

	role, err := auth.NewRole(claims.Role)
	if err != nil {
		return auth.Principal{}, errs.Mark(err, jwt.ErrInvalidToken)
	}

	return auth.Principal{Subject: claims.Subject, Role: role}, nil
}
