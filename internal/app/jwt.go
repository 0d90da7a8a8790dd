package app

import (
	"github.com/saradorri/ffarena/internal/config"
	"github.com/saradorri/ffarena/internal/infrastructure/auth"
)

func (a *application) InitJWTService() auth.JWTService {
	cfg := &config.JWTConfig{
		Secret: a.config.JWT.Secret,
		Expiry: a.config.JWT.Expiry,
	}
	return auth.NewJWTService(cfg)
}
