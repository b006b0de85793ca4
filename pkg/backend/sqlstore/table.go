package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/walletwise/finance/pkg/backend"
	"github.com/walletwise/finance/pkg/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// reference points to the row with the ID in a table. A nil ID is a
// reference that is not set. Rows changed through the reference, like the
// balance of a wallet, need write access.
type reference struct {
	table string
	id    *uuid.UUID
	write bool
}

// hook runs inside the transaction of a write. Returning an error rolls
// the write back.
type hook[T any] func(tx *gorm.DB, principal uuid.UUID, row T) error

// table implements backend.Table on a gorm model.
type table[T any] struct {
	store     *Store
	name      string
	policy    policy
	columns   []string
	readOnly  []string          // columns that cannot be patched
	relations map[string]string // join name to gorm association

	// references returns the rows in other tables the row points to.
	// They must be visible to the principal.
	references func(row T) []reference

	beforeInsert hook[*T]
	afterInsert  hook[T]
	afterUpdate  func(tx *gorm.DB, principal uuid.UUID, old, updated T) error
	beforeDelete hook[T]
	afterDelete  hook[T]
}

func newTable[T any](s *Store, name string, p policy) *table[T] {
	stmt := &gorm.Statement{DB: s.db}
	if err := stmt.Parse(new(T)); err != nil {
		panic(fmt.Sprintf("sqlstore: cannot parse schema of %s: %v", name, err))
	}

	return &table[T]{
		store:     s,
		name:      name,
		policy:    p,
		columns:   stmt.Schema.DBNames,
		readOnly:  []string{"id", "user_id", "created_at", "updated_at"},
		relations: map[string]string{},
	}
}

func (t *table[T]) hasColumn(column string) bool {
	return slices.Contains(t.columns, column)
}

// principal returns the ID of the session principal or uuid.Nil.
func principal(ctx context.Context) uuid.UUID {
	p, ok := backend.PrincipalFrom(ctx)
	if !ok {
		return uuid.Nil
	}
	return p.ID
}

// writer returns the session principal and fails if there is none.
func writer(ctx context.Context) (uuid.UUID, error) {
	p, ok := backend.PrincipalFrom(ctx)
	if !ok {
		return uuid.Nil, backend.ErrUnauthenticated
	}
	return p.ID, nil
}

func (t *table[T]) readable(ctx context.Context) *gorm.DB {
	return t.store.db.WithContext(ctx).Model(new(T)).Scopes(t.policy.read(t.name, principal(ctx)))
}

func (t *table[T]) Select(ctx context.Context, q backend.Query) ([]T, error) {
	scope, err := t.scope(q)
	if err != nil {
		return nil, err
	}

	rows := []T{}
	err = t.readable(ctx).Scopes(scope).Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}

	return rows, nil
}

func (t *table[T]) Single(ctx context.Context, q backend.Query) (T, error) {
	var zero T

	rows, err := t.Select(ctx, q.WithLimit(2))
	if err != nil {
		return zero, err
	}

	switch len(rows) {
	case 0:
		return zero, fmt.Errorf("%w: %s matching %s", backend.ErrNotFound, t.name, q)
	case 1:
		return rows[0], nil
	}

	return zero, fmt.Errorf("%w: more than one row in %s matches %s", backend.ErrInvalidQuery, t.name, q)
}

func (t *table[T]) Insert(ctx context.Context, row T) (T, error) {
	var zero T

	p, err := writer(ctx)
	if err != nil {
		return zero, err
	}

	err = t.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if t.beforeInsert != nil {
			if err := t.beforeInsert(tx, p, &row); err != nil {
				return err
			}
		}

		if err := t.checkReferences(tx, p, row); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			return err
		}

		if t.afterInsert != nil {
			return t.afterInsert(tx, p, row)
		}

		return nil
	})
	if err != nil {
		return zero, translate(err)
	}

	return t.reload(ctx, row, backend.NewQuery())
}

func (t *table[T]) Update(ctx context.Context, q backend.Query, patch backend.Patch) ([]T, error) {
	p, err := writer(ctx)
	if err != nil {
		return nil, err
	}

	for column := range patch {
		if !t.hasColumn(column) {
			return nil, fmt.Errorf("%w: %s has no column %q", backend.ErrInvalidQuery, t.name, column)
		}

		if slices.Contains(t.readOnly, column) {
			return nil, fmt.Errorf("%w: column %s.%s cannot be updated", backend.ErrForbidden, t.name, column)
		}
	}

	scope, err := t.scope(backend.Query{Predicates: q.Predicates})
	if err != nil {
		return nil, err
	}

	updated := []T{}
	err = t.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		olds, err := t.writable(tx, p, scope)
		if err != nil {
			return err
		}

		for _, old := range olds {
			row := old
			if err := tx.Model(&row).Omit(clause.Associations).Updates(map[string]any(patch)).Error; err != nil {
				return err
			}

			if err := tx.First(&row).Error; err != nil {
				return err
			}

			if err := t.checkReferences(tx, p, row); err != nil {
				return err
			}

			if t.afterUpdate != nil {
				if err := t.afterUpdate(tx, p, old, row); err != nil {
					return err
				}
			}

			updated = append(updated, row)
		}

		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	for i := range updated {
		updated[i], err = t.reload(ctx, updated[i], backend.Query{Joins: q.Joins})
		if err != nil {
			return nil, err
		}
	}

	return updated, nil
}

func (t *table[T]) Delete(ctx context.Context, q backend.Query) (int64, error) {
	p, err := writer(ctx)
	if err != nil {
		return 0, err
	}

	scope, err := t.scope(backend.Query{Predicates: q.Predicates})
	if err != nil {
		return 0, err
	}

	var deleted int64
	err = t.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		olds, err := t.writable(tx, p, scope)
		if err != nil {
			return err
		}

		for _, old := range olds {
			if t.beforeDelete != nil {
				if err := t.beforeDelete(tx, p, old); err != nil {
					return err
				}
			}

			row := old
			if err := tx.Delete(&row).Error; err != nil {
				return err
			}

			if t.afterDelete != nil {
				if err := t.afterDelete(tx, p, old); err != nil {
					return err
				}
			}

			deleted++
		}

		return nil
	})
	if err != nil {
		return 0, translate(err)
	}

	return deleted, nil
}

// writable returns the rows matching the scope the principal may write.
//
// If the principal can see matching rows but not write them, the request
// is rejected instead of silently matching nothing.
func (t *table[T]) writable(tx *gorm.DB, p uuid.UUID, scope func(*gorm.DB) *gorm.DB) ([]T, error) {
	rows := []T{}
	err := tx.Model(new(T)).Scopes(t.policy.write(t.name, p), scope).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	var visible int64
	err = tx.Model(new(T)).Scopes(t.policy.read(t.name, p), scope).Count(&visible).Error
	if err != nil {
		return nil, err
	}

	if visible > int64(len(rows)) {
		return nil, fmt.Errorf("%w: %d rows of %s are read-only for you", backend.ErrForbidden, visible-int64(len(rows)), t.name)
	}

	return rows, nil
}

// checkReferences verifies that the principal can see all rows the
// row points to, and write those referenced for writing.
func (t *table[T]) checkReferences(tx *gorm.DB, p uuid.UUID, row T) error {
	if t.references == nil {
		return nil
	}

	for _, ref := range t.references(row) {
		if ref.id == nil {
			continue
		}

		if ref.write {
			writable, err := t.store.has(tx, p, ref.table, *ref.id, true)
			if err != nil {
				return err
			}

			if writable {
				continue
			}
		}

		visible, err := t.store.has(tx, p, ref.table, *ref.id, false)
		if err != nil {
			return err
		}

		if !visible {
			return fmt.Errorf("%w: %s %s", models.ErrReferenceMissing, ref.table, *ref.id)
		}

		if ref.write {
			return fmt.Errorf("%w: %s %s is read-only for you", backend.ErrForbidden, ref.table, *ref.id)
		}
	}

	return nil
}

// has reports if the principal may read the row with the ID, or write it
// when write is set.
func (s *Store) has(tx *gorm.DB, p uuid.UUID, table string, id uuid.UUID, write bool) (bool, error) {
	scope := s.policies[table].read(table, p)
	if write {
		scope = s.policies[table].write(table, p)
	}

	var count int64
	err := tx.Table(table).Scopes(scope).Where(fmt.Sprintf("%s.id = ?", table), id).Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// reload reads the row again with the relations of the query.
func (t *table[T]) reload(ctx context.Context, row T, q backend.Query) (T, error) {
	scope, err := t.scope(backend.Query{Joins: q.Joins})
	if err != nil {
		return row, err
	}

	err = t.store.db.WithContext(ctx).Scopes(scope).First(&row).Error
	if err != nil {
		return row, translate(err)
	}

	return row, nil
}

// ownerCheck rejects rows that do not belong to the principal or to a
// workspace the principal may write to.
func ownerCheck[T models.Owned](tx *gorm.DB, p uuid.UUID, row T) error {
	if row.Owner() != p {
		return fmt.Errorf("%w: rows can only be created for yourself", backend.ErrForbidden)
	}

	if ws := row.Workspace(); ws != nil {
		var count int64
		sub, args := memberOf(p, models.WriteRoles...)
		err := tx.Raw(fmt.Sprintf("SELECT COUNT(*) FROM (%s) AS m WHERE m.workspace_id = ?", sub), append(args, *ws)...).Scan(&count).Error
		if err != nil {
			return err
		}

		if count == 0 {
			return fmt.Errorf("%w: you cannot create resources in workspace %s", backend.ErrForbidden, *ws)
		}
	}

	return nil
}

// translate maps database errors to backend errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case isBackendError(err):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %w", backend.ErrUnavailable, err)
	case errors.Is(err, models.ErrResourceNotFound):
		return fmt.Errorf("%w: %w", backend.ErrNotFound, err)
	case errors.Is(err, models.ErrGeneral):
		return fmt.Errorf("%w: %w", backend.ErrUnavailable, err)
	case errors.Is(err, models.ErrCategoryNameNotUnique),
		errors.Is(err, models.ErrWalletsNotDifferent),
		errors.Is(err, models.ErrReferenceMissing),
		errors.Is(err, models.ErrStillReferenced),
		errors.Is(err, models.ErrMemberNotUnique):
		return fmt.Errorf("%w: %w", backend.ErrConstraint, err)
	}

	return err
}

func isBackendError(err error) bool {
	for _, target := range []error{
		backend.ErrNotFound,
		backend.ErrUnauthenticated,
		backend.ErrForbidden,
		backend.ErrConstraint,
		backend.ErrFunctionUnavailable,
		backend.ErrUnavailable,
		backend.ErrInvalidQuery,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
