package sqlstore

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/walletwise/finance/pkg/models"
	"gorm.io/gorm"
)

// policy is the row-level security policy of a table. Both functions return
// a scope restricting a query to the rows the principal may read or write.
//
// The table argument is the name or alias the rows are selected from.
type policy struct {
	read  func(table string, principal uuid.UUID) func(*gorm.DB) *gorm.DB
	write func(table string, principal uuid.UUID) func(*gorm.DB) *gorm.DB
}

// memberOf selects the workspaces the principal is a member of. With roles,
// only memberships with one of the roles are considered.
func memberOf(principal uuid.UUID, roles ...models.WorkspaceRole) (string, []any) {
	if len(roles) == 0 {
		return "SELECT workspace_id FROM workspace_members WHERE user_id = ?", []any{principal}
	}

	return "SELECT workspace_id FROM workspace_members WHERE user_id = ? AND role IN ?", []any{principal, roles}
}

// ownedScope allows rows owned by the principal and rows of workspaces
// the principal is a member of with one of the roles.
func ownedScope(table string, principal uuid.UUID, roles ...models.WorkspaceRole) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		sub, args := memberOf(principal, roles...)
		return db.Where(
			fmt.Sprintf("(%[1]s.user_id = ? OR %[1]s.workspace_id IN (%[2]s))", table, sub),
			append([]any{principal}, args...)...,
		)
	}
}

// ownedPolicy is the policy of wallets, budgets, credit cards and transactions.
var ownedPolicy = policy{
	read: func(table string, principal uuid.UUID) func(*gorm.DB) *gorm.DB {
		return ownedScope(table, principal)
	},
	write: func(table string, principal uuid.UUID) func(*gorm.DB) *gorm.DB {
		return ownedScope(table, principal, models.WriteRoles...)
	},
}

// categoryPolicy additionally shows system categories to everyone and
// never allows to modify them.
var categoryPolicy = policy{
	read: func(table string, principal uuid.UUID) func(*gorm.DB) *gorm.DB {
		return func(db *gorm.DB) *gorm.DB {
			sub, args := memberOf(principal)
			return db.Where(
				fmt.Sprintf("(%[1]s.is_system = ? OR %[1]s.user_id = ? OR %[1]s.workspace_id IN (%[2]s))", table, sub),
				append([]any{true, principal}, args...)...,
			)
		}
	},
	write: func(table string, principal uuid.UUID) func(*gorm.DB) *gorm.DB {
		return func(db *gorm.DB) *gorm.DB {
			return db.Scopes(ownedScope(table, principal, models.WriteRoles...)).Where(fmt.Sprintf("%s.is_system = ?", table), false)
		}
	},
}

var workspacePolicy = policy{
	read: func(table string, principal uuid.UUID) func(*gorm.DB) *gorm.DB {
		return func(db *gorm.DB) *gorm.DB {
			sub, args := memberOf(principal)
			return db.Where(
				fmt.Sprintf("(%[1]s.owner_id = ? OR %[1]s.id IN (%[2]s))", table, sub),
				append([]any{principal}, args...)...,
			)
		}
	},
	write: func(table string, principal uuid.UUID) func(*gorm.DB) *gorm.DB {
		return func(db *gorm.DB) *gorm.DB {
			sub, args := memberOf(principal, models.RoleOwner, models.RoleAdmin)
			return db.Where(
				fmt.Sprintf("(%[1]s.owner_id = ? OR %[1]s.id IN (%[2]s))", table, sub),
				append([]any{principal}, args...)...,
			)
		}
	},
}

// memberPolicy lets members see each other. Only owners and admins manage
// members, but everybody may leave a workspace.
var memberPolicy = policy{
	read: func(table string, principal uuid.UUID) func(*gorm.DB) *gorm.DB {
		return func(db *gorm.DB) *gorm.DB {
			sub, args := memberOf(principal)
			return db.Where(
				fmt.Sprintf("(%[1]s.user_id = ? OR %[1]s.workspace_id IN (%[2]s))", table, sub),
				append([]any{principal}, args...)...,
			)
		}
	},
	write: func(table string, principal uuid.UUID) func(*gorm.DB) *gorm.DB {
		return func(db *gorm.DB) *gorm.DB {
			sub, args := memberOf(principal, models.RoleOwner, models.RoleAdmin)
			return db.Where(
				fmt.Sprintf("(%[1]s.user_id = ? OR %[1]s.workspace_id IN (%[2]s))", table, sub),
				append([]any{principal}, args...)...,
			)
		}
	},
}

// personalPolicy restricts rows to their owner.
var personalPolicy = policy{
	read: func(table string, principal uuid.UUID) func(*gorm.DB) *gorm.DB {
		return func(db *gorm.DB) *gorm.DB {
			return db.Where(fmt.Sprintf("%s.user_id = ?", table), principal)
		}
	},
	write: func(table string, principal uuid.UUID) func(*gorm.DB) *gorm.DB {
		return func(db *gorm.DB) *gorm.DB {
			return db.Where(fmt.Sprintf("%s.user_id = ?", table), principal)
		}
	},
}

// readOnlyPolicy is used for rows managed by the operator.
func readOnlyPolicy(read func(string, uuid.UUID) func(*gorm.DB) *gorm.DB) policy {
	return policy{
		read: read,
		write: func(_ string, _ uuid.UUID) func(*gorm.DB) *gorm.DB {
			return func(db *gorm.DB) *gorm.DB {
				return db.Where("1 = 0")
			}
		},
	}
}

func everyone(_ string, _ uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db
	}
}
