package auth_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-planilhas/internal/application/auth"
	"github.com/jhoicas/inventario-planilhas/internal/application/dto"
	"github.com/jhoicas/inventario-planilhas/internal/domain"
	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
	"github.com/jhoicas/inventario-planilhas/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-planilhas/internal/infrastructure/store"
)

type countRecorder struct{ results map[string]int }

func (c *countRecorder) MovementApplied(entity.MovementKind) {}
func (c *countRecorder) Login(result string)                { c.results[result]++ }

func newAuth(t *testing.T, seed *entity.Tables) (*auth.AuthUseCase, *countRecorder) {
	t.Helper()
	rec := &countRecorder{results: map[string]int{}}
	s := store.New(memory.NewGateway(seed), zerolog.Nop())
	uc := auth.NewAuthUseCase(s, auth.JWTConfig{Secret: "secreto", ExpMinutes: 5, Issuer: "test"}, rec, zerolog.Nop())
	return uc, rec
}

func users() *entity.Tables {
	t := entity.NewTables()
	t.Users = []entity.User{
		{Username: "Alice", Password: "secret", Level: entity.LevelOperator},
	}
	return t
}

func TestLogin_TokenConNivelYPermisos(t *testing.T) {
	uc, rec := newAuth(t, users())

	res, err := uc.Login(context.Background(), dto.LoginRequest{Username: " alice", Password: "secret "})
	require.NoError(t, err)
	assert.Equal(t, "Alice", res.User.Username)
	assert.Equal(t, "OPERATOR", res.User.AccessLevel)
	assert.Equal(t, []string{"view_catalog", "apply_movement", "view_history", "flush_store"}, res.Permissions)
	assert.Equal(t, 1, rec.results["ok"])

	p, err := uc.PrincipalFromToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "Alice", p.Username)
	assert.Equal(t, entity.LevelOperator, p.Level)
}

func TestLogin_Fallas(t *testing.T) {
	uc, rec := newAuth(t, users())
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Username: "bob", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrNoSuchUser)
	assert.ErrorIs(t, err, domain.ErrAuthFailure)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrWrongPassword)

	assert.Equal(t, 1, rec.results["no_such_user"])
	assert.Equal(t, 1, rec.results["wrong_password"])
}

func TestLogin_HojaSinColumnas(t *testing.T) {
	seed := users()
	seed.MissingColumns[entity.TableUsers] = []string{"senha"}
	uc, rec := newAuth(t, seed)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "alice", Password: "secret"})
	assert.ErrorIs(t, err, domain.ErrMalformedUserTable)
	assert.Equal(t, 1, rec.results["malformed"])
}

func TestPrincipalFromToken_Invalido(t *testing.T) {
	uc, _ := newAuth(t, users())
	_, err := uc.PrincipalFromToken("basura")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
