package access_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-planilhas/internal/domain"
	"github.com/jhoicas/inventario-planilhas/internal/domain/access"
	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
)

func sampleUsers() []entity.User {
	return []entity.User{
		{Username: "alice", Password: "secret", Level: entity.LevelManager},
		{Username: "bob", Password: "1234", Level: entity.LevelViewer},
	}
}

func TestAuthenticate_RecortaYComparaSinMayusculas(t *testing.T) {
	u, err := access.Authenticate(sampleUsers(), nil, "Alice ", " secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, entity.LevelManager, u.Level)
}

func TestAuthenticate_Fallos(t *testing.T) {
	_, err := access.Authenticate(sampleUsers(), nil, "carol", "x")
	assert.True(t, errors.Is(err, domain.ErrNoSuchUser))
	assert.True(t, errors.Is(err, domain.ErrAuthFailure))

	_, err = access.Authenticate(sampleUsers(), nil, "alice", "Secret")
	assert.True(t, errors.Is(err, domain.ErrWrongPassword))

	_, err = access.Authenticate(sampleUsers(), nil, "ali", "secret")
	assert.True(t, errors.Is(err, domain.ErrNoSuchUser), "nunca coincide parcialmente")

	_, err = access.Authenticate(nil, nil, "alice", "secret")
	assert.True(t, errors.Is(err, domain.ErrNoSuchUser))

	_, err = access.Authenticate(sampleUsers(), []string{"senha"}, "alice", "secret")
	assert.True(t, errors.Is(err, domain.ErrMalformedUserTable))
}

func TestAuthenticate_HashBcrypt(t *testing.T) {
	hash, err := access.HashPassword(" s3nha ")
	require.NoError(t, err)
	users := []entity.User{{Username: "ana", Password: hash, Level: entity.LevelOperator}}

	_, err = access.Authenticate(users, nil, "ANA", "s3nha")
	require.NoError(t, err)

	_, err = access.Authenticate(users, nil, "ana", hash)
	assert.True(t, errors.Is(err, domain.ErrWrongPassword), "el hash no sirve como contraseña")
}

func TestAddUser_Unicidad(t *testing.T) {
	users, err := access.AddUser(sampleUsers(), entity.User{Username: "carol", Password: "x", Level: entity.LevelOperator}, domain.NameCaseSensitive)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	_, err = access.AddUser(sampleUsers(), entity.User{Username: "alice", Password: "x", Level: entity.LevelViewer}, domain.NameCaseSensitive)
	assert.True(t, errors.Is(err, domain.ErrDuplicateName))

	_, err = access.AddUser(sampleUsers(), entity.User{Username: "ALICE", Password: "x", Level: entity.LevelViewer}, domain.NameCaseSensitive)
	assert.NoError(t, err)

	_, err = access.AddUser(sampleUsers(), entity.User{Username: "ALICE", Password: "x", Level: entity.LevelViewer}, domain.NameCaseInsensitive)
	assert.True(t, errors.Is(err, domain.ErrDuplicateName))

	_, err = access.AddUser(sampleUsers(), entity.User{Username: "dan", Password: "x", Level: "ROOT"}, domain.NameCaseSensitive)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestEditUser(t *testing.T) {
	users, err := access.EditUser(sampleUsers(), "bob", entity.User{Username: "bob", Password: "nova", Level: entity.LevelOperator}, domain.NameCaseSensitive)
	require.NoError(t, err)
	assert.Equal(t, entity.LevelOperator, users[1].Level)

	_, err = access.EditUser(sampleUsers(), "bob", entity.User{Username: "alice", Password: "x", Level: entity.LevelViewer}, domain.NameCaseSensitive)
	assert.True(t, errors.Is(err, domain.ErrDuplicateName))

	_, err = access.EditUser(sampleUsers(), "zed", entity.User{Username: "zed", Password: "x", Level: entity.LevelViewer}, domain.NameCaseSensitive)
	assert.True(t, errors.Is(err, domain.ErrNoSuchUser))
}

func TestAuthorize_Matriz(t *testing.T) {
	assert.NoError(t, access.Authorize(entity.LevelManager, access.ActionManageUsers))
	assert.NoError(t, access.Authorize(entity.LevelOperator, access.ActionApplyMovement))
	assert.NoError(t, access.Authorize(entity.LevelOperator, access.ActionViewHistory))
	assert.NoError(t, access.Authorize(entity.LevelViewer, access.ActionViewCatalog))

	assert.True(t, errors.Is(access.Authorize(entity.LevelOperator, access.ActionEditCatalog), domain.ErrForbidden))
	assert.True(t, errors.Is(access.Authorize(entity.LevelViewer, access.ActionApplyMovement), domain.ErrForbidden))
	assert.True(t, errors.Is(access.Authorize(entity.LevelViewer, access.ActionViewHistory), domain.ErrForbidden))
	assert.True(t, errors.Is(access.Authorize("", access.ActionViewCatalog), domain.ErrUnauthorized))

	assert.Equal(t, []access.Action{access.ActionViewCatalog}, access.Allowed(entity.LevelViewer))
}
