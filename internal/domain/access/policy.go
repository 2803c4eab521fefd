// Package access contiene la tabla de autorización (rol, acción) del marketplace.
// Es el único lugar donde se decide qué rol puede hacer qué; los casos de uso
// consultan Can/Require en lugar de encadenar flags.
package access

import (
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
)

// Action operación sujeta a autorización por rol.
type Action string

const (
	ActionRegisterMember    Action = "register_member"
	ActionViewTeam          Action = "view_team"
	ActionSendLinkRequest   Action = "send_link_request"
	ActionDecideLink        Action = "decide_link" // aprobar o rechazar
	ActionListConsumerLinks Action = "list_consumer_links"
	ActionListSupplierLinks Action = "list_supplier_links"
	ActionWriteProduct      Action = "write_product"
	ActionReadTeamCatalog   Action = "read_team_catalog"
	ActionChat              Action = "chat"
)

var policy = map[entity.Role]map[Action]bool{
	entity.RoleOwner: {
		ActionRegisterMember:    true,
		ActionViewTeam:          true,
		ActionDecideLink:        true,
		ActionListSupplierLinks: true,
		ActionWriteProduct:      true,
		ActionReadTeamCatalog:   true,
		ActionChat:              true,
	},
	entity.RoleManager: {
		ActionViewTeam:          true,
		ActionDecideLink:        true,
		ActionListSupplierLinks: true,
		ActionWriteProduct:      true,
		ActionReadTeamCatalog:   true,
		ActionChat:              true,
	},
	entity.RoleRepresentative: {
		ActionViewTeam:        true,
		ActionReadTeamCatalog: true,
		ActionChat:            true,
	},
	entity.RoleConsumer: {
		ActionSendLinkRequest:   true,
		ActionListConsumerLinks: true,
		ActionChat:              true,
	},
}

// Can informa si el rol tiene permitida la acción.
func Can(role entity.Role, action Action) bool {
	return policy[role][action]
}

// Require resuelve el rol del usuario y verifica la acción.
// Devuelve el rol para que el caller no tenga que resolverlo otra vez.
func Require(u *entity.User, action Action) (entity.Role, error) {
	if u == nil {
		return "", domain.ErrUnauthorized
	}
	role, err := u.Role()
	if err != nil {
		return "", err
	}
	if !Can(role, action) {
		return role, domain.ErrForbidden
	}
	return role, nil
}
