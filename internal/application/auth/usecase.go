package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/access"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
	"github.com/jhoicas/Marketplace-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TokenRevoker lista de tokens invalidados por logout (hasta su vencimiento).
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthUseCase casos de uso de identidad: registro, alta de delegados, login y sesión.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	revoker  TokenRevoker
}

// NewAuthUseCase construye el caso de uso de auth. revoker puede ser nil: logout solo
// borra la cookie y los tokens viven hasta vencer.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, revoker TokenRevoker) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, revoker: revoker}
}

// RegisterUser auto-registro de un consumidor o de un owner de proveedor.
// Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	user, err := uc.newUser(ctx, in.Email, in.Password, in.FirstName, in.LastName)
	if err != nil {
		return nil, err
	}
	user.IsSupplierOwner = in.IsSupplierOwner
	user.IsConsumer = !in.IsSupplierOwner
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// RegisterMember alta de un manager o representante bajo el owner actor.
// Solo owners (ErrForbidden en otro caso); exactamente un rol de delegado.
func (uc *AuthUseCase) RegisterMember(ctx context.Context, owner *entity.User, in dto.RegisterMemberRequest) (*dto.UserResponse, error) {
	if _, err := access.Require(owner, access.ActionRegisterMember); err != nil {
		return nil, err
	}
	if in.IsSupplierManager == in.IsSupplierRepr {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.newUser(ctx, in.Email, in.Password, in.FirstName, in.LastName)
	if err != nil {
		return nil, err
	}
	ownerID := owner.ID
	user.IsConsumer = false
	user.IsSupplierManager = in.IsSupplierManager
	user.IsSupplierRepr = in.IsSupplierRepr
	user.SupplierOwnerID = &ownerID
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica email/password y genera el JWT.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	role, err := user.Role()
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, string(role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		User:        *ToUserResponse(user),
	}, nil
}

// Authenticate valida el token, descarta los revocados y carga el usuario vigente.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entity.User, *jwt.Claims, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if uc.revoker != nil && claims.ID != "" {
		revoked, err := uc.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, nil, err
		}
		if revoked {
			return nil, nil, domain.ErrUnauthorized
		}
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, domain.ErrUnauthorized
	}
	return user, claims, nil
}

// Logout revoca el token hasta su vencimiento (si hay almacén de revocación).
func (uc *AuthUseCase) Logout(ctx context.Context, claims *jwt.Claims) error {
	if uc.revoker == nil || claims == nil || claims.ID == "" {
		return nil
	}
	until := claims.Expiry()
	if until.IsZero() || !until.After(time.Now()) {
		return nil
	}
	return uc.revoker.Revoke(ctx, claims.ID, until)
}

// Team lista los delegados del owner del equipo del actor.
func (uc *AuthUseCase) Team(ctx context.Context, actor *entity.User) ([]dto.UserResponse, error) {
	if _, err := access.Require(actor, access.ActionViewTeam); err != nil {
		return nil, err
	}
	ownerID, err := actor.TeamSupplierID()
	if err != nil {
		return nil, err
	}
	list, err := uc.userRepo.ListTeam(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *ToUserResponse(u))
	}
	return out, nil
}

func (uc *AuthUseCase) newUser(ctx context.Context, email, password, firstName, lastName string) (*entity.User, error) {
	email = normalizeEmail(email)
	if email == "" || len(password) < 6 || strings.TrimSpace(firstName) == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsCredentialError agrupa los errores de login que se responden como 401.
func IsCredentialError(err error) bool {
	return errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUnauthorized)
}

// ToUserResponse convierte la entidad a la salida pública (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	role, _ := u.Role()
	return &dto.UserResponse{
		ID:                u.ID,
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Role:              string(role),
		IsConsumer:        u.IsConsumer,
		IsSupplierOwner:   u.IsSupplierOwner,
		IsSupplierManager: u.IsSupplierManager,
		IsSupplierRepr:    u.IsSupplierRepr,
		SupplierOwnerID:   u.SupplierOwnerID,
		CreatedAt:         u.CreatedAt,
	}
}
