package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-planilhas/internal/application/dto"
	"github.com/jhoicas/inventario-planilhas/internal/application/ports"
	"github.com/jhoicas/inventario-planilhas/internal/domain"
	"github.com/jhoicas/inventario-planilhas/internal/domain/access"
	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
)

// UserOptions reglas configurables de la hoja de usuarios.
type UserOptions struct {
	Policy        domain.NamePolicy
	HashPasswords bool
}

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	store ports.TableStore
	opts  UserOptions
	log   zerolog.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(store ports.TableStore, opts UserOptions, log zerolog.Logger) *UserUseCase {
	return &UserUseCase{store: store, opts: opts, log: log.With().Str("component", "users").Logger()}
}

// List lista los usuarios sin contraseñas.
func (uc *UserUseCase) List(ctx context.Context, p access.Principal) ([]dto.UserResponse, error) {
	if err := p.Can(access.ActionManageUsers); err != nil {
		return nil, err
	}
	t, err := uc.store.Tables(ctx, entity.TableUsers)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(t.Users))
	for _, u := range t.Users {
		out = append(out, entityToUserResponse(u))
	}
	return out, nil
}

// Create agrega un usuario.
func (uc *UserUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := p.Can(access.ActionManageUsers); err != nil {
		return nil, err
	}
	u, err := uc.buildUser(in.Username, in.Password, in.AccessLevel)
	if err != nil {
		return nil, err
	}
	t, err := uc.store.Tables(ctx, entity.TableUsers)
	if err != nil {
		return nil, err
	}
	users, err := access.AddUser(t.Users, u, uc.opts.Policy)
	if err != nil {
		return nil, err
	}
	t.Users = users
	if err := uc.store.Commit(ctx, t, entity.TableUsers); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user", p.Username).Str("username", u.Username).Str("level", string(u.Level)).Msg("usuario agregado")
	resp := entityToUserResponse(u)
	return &resp, nil
}

// Update reemplaza al usuario oldUsername (coincidencia exacta).
func (uc *UserUseCase) Update(ctx context.Context, p access.Principal, oldUsername string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := p.Can(access.ActionManageUsers); err != nil {
		return nil, err
	}
	u, err := uc.buildUser(in.Username, in.Password, in.AccessLevel)
	if err != nil {
		return nil, err
	}
	t, err := uc.store.Tables(ctx, entity.TableUsers)
	if err != nil {
		return nil, err
	}
	users, err := access.EditUser(t.Users, oldUsername, u, uc.opts.Policy)
	if err != nil {
		return nil, err
	}
	t.Users = users
	if err := uc.store.Commit(ctx, t, entity.TableUsers); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user", p.Username).Str("username", u.Username).Msg("usuario actualizado")
	resp := entityToUserResponse(u)
	return &resp, nil
}

func (uc *UserUseCase) buildUser(username, password, level string) (entity.User, error) {
	lvl, ok := entity.ParseAccessLevel(level)
	if !ok {
		return entity.User{}, fmt.Errorf("%w: nivel de acceso %q", domain.ErrInvalidInput, level)
	}
	u := entity.User{
		Username: strings.TrimSpace(username),
		Password: strings.TrimSpace(password),
		Level:    lvl,
	}
	if u.Password == "" {
		return entity.User{}, domain.ErrInvalidInput
	}
	if uc.opts.HashPasswords {
		hash, err := access.HashPassword(u.Password)
		if err != nil {
			return entity.User{}, err
		}
		u.Password = hash
	}
	return u, nil
}

func entityToUserResponse(u entity.User) dto.UserResponse {
	return dto.UserResponse{Username: u.Username, AccessLevel: string(u.Level)}
}
