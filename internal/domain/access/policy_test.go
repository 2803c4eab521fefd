package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/access"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
)

func TestCan_Tabla(t *testing.T) {
	allowed := map[entity.Role][]access.Action{
		entity.RoleOwner: {
			access.ActionRegisterMember, access.ActionViewTeam, access.ActionDecideLink,
			access.ActionListSupplierLinks, access.ActionWriteProduct, access.ActionReadTeamCatalog,
			access.ActionChat,
		},
		entity.RoleManager: {
			access.ActionViewTeam, access.ActionDecideLink, access.ActionListSupplierLinks,
			access.ActionWriteProduct, access.ActionReadTeamCatalog, access.ActionChat,
		},
		entity.RoleRepresentative: {
			access.ActionViewTeam, access.ActionReadTeamCatalog, access.ActionChat,
		},
		entity.RoleConsumer: {
			access.ActionSendLinkRequest, access.ActionListConsumerLinks, access.ActionChat,
		},
	}
	all := []access.Action{
		access.ActionRegisterMember, access.ActionViewTeam, access.ActionSendLinkRequest,
		access.ActionDecideLink, access.ActionListConsumerLinks, access.ActionListSupplierLinks,
		access.ActionWriteProduct, access.ActionReadTeamCatalog, access.ActionChat,
	}
	for role, actions := range allowed {
		set := map[access.Action]bool{}
		for _, a := range actions {
			set[a] = true
		}
		for _, a := range all {
			assert.Equal(t, set[a], access.Can(role, a), "%s/%s", role, a)
		}
	}
}

func TestCan_RolDesconocido(t *testing.T) {
	assert.False(t, access.Can(entity.Role("admin"), access.ActionChat))
}

func TestRequire(t *testing.T) {
	owner := "o1"

	_, err := access.Require(nil, access.ActionChat)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	repr := &entity.User{ID: "r1", IsSupplierRepr: true, SupplierOwnerID: &owner}
	role, err := access.Require(repr, access.ActionWriteProduct)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, entity.RoleRepresentative, role)

	role, err = access.Require(repr, access.ActionReadTeamCatalog)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleRepresentative, role)

	broken := &entity.User{ID: "x", IsConsumer: true, IsSupplierOwner: true}
	_, err = access.Require(broken, access.ActionChat)
	assert.ErrorIs(t, err, domain.ErrIntegrity)
}
