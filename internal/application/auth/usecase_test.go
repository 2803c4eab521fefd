package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Marketplace-api/internal/application/auth"
	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/infrastructure/memory"
	"github.com/jhoicas/Marketplace-api/internal/infrastructure/redis"
)

var jwtCfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "marketplace-test"}

func newUseCase(t *testing.T) (*auth.AuthUseCase, *memory.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	s := memory.NewStore()
	return auth.NewAuthUseCase(s.Users(), jwtCfg, redis.NewTokenStore(client)), s, mr
}

func registerOwner(t *testing.T, uc *auth.AuthUseCase, email string) *dto.UserResponse {
	t.Helper()
	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: email, Password: "secreto1", FirstName: "Owner", IsSupplierOwner: true,
	})
	require.NoError(t, err)
	return out
}

func loadUser(t *testing.T, s *memory.Store, id string) *entity.User {
	t.Helper()
	u, err := s.Users().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}

func TestRegisterUser_ConsumidorPorDefecto(t *testing.T) {
	uc, _, _ := newUseCase(t)

	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "  Ana@Test.CO ", Password: "secreto1", FirstName: "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@test.co", out.Email)
	assert.Equal(t, string(entity.RoleConsumer), out.Role)
	assert.True(t, out.IsConsumer)
	assert.False(t, out.IsSupplierOwner)
	assert.Nil(t, out.SupplierOwnerID)
}

func TestRegisterUser_Owner(t *testing.T) {
	uc, _, _ := newUseCase(t)
	out := registerOwner(t, uc, "owner@test.co")
	assert.Equal(t, string(entity.RoleOwner), out.Role)
	assert.False(t, out.IsConsumer)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc, _, _ := newUseCase(t)
	registerOwner(t, uc, "owner@test.co")

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "OWNER@test.co", Password: "secreto1", FirstName: "Otro",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_DatosInvalidos(t *testing.T) {
	uc, _, _ := newUseCase(t)
	cases := map[string]dto.RegisterRequest{
		"sin email":        {Password: "secreto1", FirstName: "Ana"},
		"password corto":   {Email: "a@test.co", Password: "123", FirstName: "Ana"},
		"nombre en blanco": {Email: "a@test.co", Password: "secreto1", FirstName: " "},
	}
	for name, in := range cases {
		_, err := uc.RegisterUser(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
}

func TestRegisterMember(t *testing.T) {
	uc, s, _ := newUseCase(t)
	ctx := context.Background()
	owner := loadUser(t, s, registerOwner(t, uc, "owner@test.co").ID)

	mgr, err := uc.RegisterMember(ctx, owner, dto.RegisterMemberRequest{
		Email: "mgr@test.co", Password: "secreto1", FirstName: "Mara", IsSupplierManager: true,
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.RoleManager), mgr.Role)
	require.NotNil(t, mgr.SupplierOwnerID)
	assert.Equal(t, owner.ID, *mgr.SupplierOwnerID)

	_, err = uc.RegisterMember(ctx, owner, dto.RegisterMemberRequest{
		Email: "both@test.co", Password: "secreto1", FirstName: "X", IsSupplierManager: true, IsSupplierRepr: true,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RegisterMember(ctx, owner, dto.RegisterMemberRequest{
		Email: "none@test.co", Password: "secreto1", FirstName: "X",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Un manager no puede dar de alta delegados.
	manager := loadUser(t, s, mgr.ID)
	_, err = uc.RegisterMember(ctx, manager, dto.RegisterMemberRequest{
		Email: "repr@test.co", Password: "secreto1", FirstName: "Rafa", IsSupplierRepr: true,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestTeam(t *testing.T) {
	uc, s, _ := newUseCase(t)
	ctx := context.Background()
	owner := loadUser(t, s, registerOwner(t, uc, "owner@test.co").ID)
	other := loadUser(t, s, registerOwner(t, uc, "other@test.co").ID)
	repr, err := uc.RegisterMember(ctx, owner, dto.RegisterMemberRequest{
		Email: "repr@test.co", Password: "secreto1", FirstName: "Rafa", IsSupplierRepr: true,
	})
	require.NoError(t, err)
	_, err = uc.RegisterMember(ctx, other, dto.RegisterMemberRequest{
		Email: "mgr2@test.co", Password: "secreto1", FirstName: "Mara", IsSupplierManager: true,
	})
	require.NoError(t, err)

	team, err := uc.Team(ctx, owner)
	require.NoError(t, err)
	require.Len(t, team, 1)
	assert.Equal(t, repr.ID, team[0].ID)

	// El representante ve el mismo equipo.
	team, err = uc.Team(ctx, loadUser(t, s, repr.ID))
	require.NoError(t, err)
	assert.Len(t, team, 1)

	consumer, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "c@test.co", Password: "secreto1", FirstName: "C"})
	require.NoError(t, err)
	_, err = uc.Team(ctx, loadUser(t, s, consumer.ID))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogin_Y_Authenticate(t *testing.T) {
	uc, _, _ := newUseCase(t)
	ctx := context.Background()
	owner := registerOwner(t, uc, "owner@test.co")

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "owner@test.co", Password: "secreto1"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.Nil(t, out.RefreshToken)
	assert.Equal(t, owner.ID, out.User.ID)

	user, claims, err := uc.Authenticate(ctx, out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, user.ID)
	assert.Equal(t, string(entity.RoleOwner), claims.Role)
	assert.Equal(t, jwtCfg.Issuer, claims.Issuer)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _, _ := newUseCase(t)
	ctx := context.Background()
	registerOwner(t, uc, "owner@test.co")

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "owner@test.co", Password: "incorrecta"})
	assert.True(t, auth.IsCredentialError(err))
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@test.co", Password: "secreto1"})
	assert.True(t, auth.IsCredentialError(err))
}

func TestAuthenticate_TokenInvalido(t *testing.T) {
	uc, _, _ := newUseCase(t)

	_, _, err := uc.Authenticate(context.Background(), "no-es-un-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Token bien firmado con otro secreto.
	otro := auth.NewAuthUseCase(memory.NewStore().Users(), auth.JWTConfig{Secret: "otro", ExpMinutes: 5}, nil)
	_, err = otro.RegisterUser(context.Background(), dto.RegisterRequest{Email: "x@test.co", Password: "secreto1", FirstName: "X"})
	require.NoError(t, err)
	login, err := otro.Login(context.Background(), dto.LoginRequest{Email: "x@test.co", Password: "secreto1"})
	require.NoError(t, err)
	_, _, err = uc.Authenticate(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogout_RevocaElToken(t *testing.T) {
	uc, _, mr := newUseCase(t)
	ctx := context.Background()
	registerOwner(t, uc, "owner@test.co")
	out, err := uc.Login(ctx, dto.LoginRequest{Email: "owner@test.co", Password: "secreto1"})
	require.NoError(t, err)
	_, claims, err := uc.Authenticate(ctx, out.AccessToken)
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, claims))
	_, _, err = uc.Authenticate(ctx, out.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// La revocación vence junto con el token.
	ttl := mr.TTL("revoked_token:" + claims.ID)
	assert.True(t, ttl > 0 && ttl <= time.Duration(jwtCfg.ExpMinutes)*time.Minute)

	// Un login nuevo emite otro jti y sigue siendo válido.
	again, err := uc.Login(ctx, dto.LoginRequest{Email: "owner@test.co", Password: "secreto1"})
	require.NoError(t, err)
	_, _, err = uc.Authenticate(ctx, again.AccessToken)
	assert.NoError(t, err)
}

func TestLogout_SinRevocador(t *testing.T) {
	s := memory.NewStore()
	uc := auth.NewAuthUseCase(s.Users(), jwtCfg, nil)
	assert.NoError(t, uc.Logout(context.Background(), nil))
}
