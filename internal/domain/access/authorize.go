package access

import (
	"github.com/jhoicas/inventario-planilhas/internal/domain"
	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
)

// Action operación sujeta a autorización.
type Action string

const (
	ActionViewCatalog    Action = "view_catalog"
	ActionEditCatalog    Action = "edit_catalog"
	ActionApplyMovement  Action = "apply_movement"
	ActionViewHistory    Action = "view_history"
	ActionManageRegistry Action = "manage_registry" // responsables y unidades
	ActionManageUsers    Action = "manage_users"
	ActionFlushStore     Action = "flush_store"
)

// permissions matriz de permisos: gerente ve todo, operador movimenta y consulta historial,
// visualizador solo la lista de productos.
var permissions = map[entity.AccessLevel]map[Action]bool{
	entity.LevelManager: {
		ActionViewCatalog: true, ActionEditCatalog: true, ActionApplyMovement: true,
		ActionViewHistory: true, ActionManageRegistry: true, ActionManageUsers: true,
		ActionFlushStore: true,
	},
	entity.LevelOperator: {
		ActionViewCatalog: true, ActionApplyMovement: true, ActionViewHistory: true,
		ActionFlushStore: true,
	},
	entity.LevelViewer: {
		ActionViewCatalog: true,
	},
}

// Authorize devuelve ErrForbidden si el nivel no puede ejecutar la acción.
func Authorize(level entity.AccessLevel, action Action) error {
	if !level.Valid() {
		return domain.ErrUnauthorized
	}
	if !permissions[level][action] {
		return domain.ErrForbidden
	}
	return nil
}

// Allowed lista las acciones habilitadas para el nivel (para armar el menú).
func Allowed(level entity.AccessLevel) []Action {
	order := []Action{
		ActionViewCatalog, ActionApplyMovement, ActionEditCatalog, ActionManageUsers,
		ActionViewHistory, ActionManageRegistry, ActionFlushStore,
	}
	var out []Action
	for _, a := range order {
		if permissions[level][a] {
			out = append(out, a)
		}
	}
	return out
}

// Principal identidad ya autenticada que ejecuta una operación (sale de los claims del token).
type Principal struct {
	Username string
	Level    entity.AccessLevel
}

// Can verifica que el principal pueda ejecutar la acción.
func (p Principal) Can(action Action) error {
	return Authorize(p.Level, action)
}

// CanAny acepta si alguna de las acciones está permitida; devuelve el error de la última.
func (p Principal) CanAny(actions ...Action) error {
	err := domain.ErrForbidden
	for _, a := range actions {
		if err = p.Can(a); err == nil {
			return nil
		}
	}
	return err
}
