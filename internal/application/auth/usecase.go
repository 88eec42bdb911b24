package auth

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-planilhas/internal/application/dto"
	"github.com/jhoicas/inventario-planilhas/internal/application/ports"
	"github.com/jhoicas/inventario-planilhas/internal/domain"
	"github.com/jhoicas/inventario-planilhas/internal/domain/access"
	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
	"github.com/jhoicas/inventario-planilhas/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase autentica contra la hoja de usuarios y emite el token de sesión.
type AuthUseCase struct {
	store    ports.TableStore
	jwtCfg   JWTConfig
	recorder ports.Recorder
	log      zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(store ports.TableStore, jwtCfg JWTConfig, recorder ports.Recorder, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{store: store, jwtCfg: jwtCfg, recorder: recorder, log: log.With().Str("component", "auth").Logger()}
}

// Login verifica usuario/contraseña, genera JWT y retorna token + usuario + permisos.
// Los errores distinguen usuario inexistente, contraseña incorrecta y hoja mal formada.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	t, err := uc.store.Tables(ctx, entity.TableUsers)
	if err != nil {
		uc.record("error")
		return nil, err
	}
	user, err := access.Authenticate(t.Users, t.MissingColumns[entity.TableUsers], in.Username, in.Password)
	if err != nil {
		uc.record(loginResult(err))
		uc.log.Warn().Err(err).Str("username", in.Username).Msg("inicio de sesión rechazado")
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.Username, string(user.Level), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		uc.record("error")
		return nil, err
	}
	uc.record("ok")
	uc.log.Info().Str("username", user.Username).Str("level", string(user.Level)).Msg("inicio de sesión")

	perms := []string{}
	for _, a := range access.Allowed(user.Level) {
		perms = append(perms, string(a))
	}
	return &dto.LoginResponse{
		Token:       token,
		User:        dto.UserResponse{Username: user.Username, AccessLevel: string(user.Level)},
		Permissions: perms,
	}, nil
}

// PrincipalFromToken valida el token y devuelve la identidad que transporta.
func (uc *AuthUseCase) PrincipalFromToken(token string) (access.Principal, error) {
	username, level, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return access.Principal{}, domain.ErrUnauthorized
	}
	lvl, ok := entity.ParseAccessLevel(level)
	if !ok {
		return access.Principal{}, domain.ErrUnauthorized
	}
	return access.Principal{Username: username, Level: lvl}, nil
}

func (uc *AuthUseCase) record(result string) {
	if uc.recorder != nil {
		uc.recorder.Login(result)
	}
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoSuchUser):
		return "no_such_user"
	case errors.Is(err, domain.ErrWrongPassword):
		return "wrong_password"
	case errors.Is(err, domain.ErrMalformedUserTable):
		return "malformed"
	}
	return "error"
}
