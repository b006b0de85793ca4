// Package sqlstore implements the backend on a SQLite database with gorm.
//
// Authorization is enforced with row-level policies on every table, and
// wallet balances are maintained as a side effect of transaction writes.
package sqlstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/walletwise/finance/pkg/backend"
	"github.com/walletwise/finance/pkg/models"
	"gorm.io/gorm"
)

// Store is a backend.Backend on a gorm database.
type Store struct {
	db       *gorm.DB
	now      func() time.Time
	policies map[string]policy

	wallets           *table[models.Wallet]
	categories        *table[models.Category]
	creditCards       *table[models.CreditCard]
	budgets           *table[models.Budget]
	transactions      *table[models.Transaction]
	workspaces        *table[models.Workspace]
	workspaceMembers  *table[models.WorkspaceMember]
	notifications     *table[models.Notification]
	subscriptions     *table[models.Subscription]
	subscriptionPlans *table[models.SubscriptionPlan]
}

var _ backend.Backend = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithClock sets the function used to determine the current time.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Open connects to the SQLite database at dsn, migrates it and seeds
// the system categories and subscription plans.
func Open(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	db, err := models.Connect(dsn)
	if err != nil {
		return nil, err
	}

	s := New(db, opts...)
	if err := s.Seed(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// New returns a Store on an already migrated database.
func New(db *gorm.DB, opts ...Option) *Store {
	s := &Store{
		db:  db,
		now: time.Now,
		policies: map[string]policy{
			backend.TableWallets:           ownedPolicy,
			backend.TableCategories:        categoryPolicy,
			backend.TableCreditCards:       ownedPolicy,
			backend.TableBudgets:           ownedPolicy,
			backend.TableTransactions:      ownedPolicy,
			backend.TableWorkspaces:        workspacePolicy,
			backend.TableWorkspaceMembers:  memberPolicy,
			backend.TableNotifications:     personalPolicy,
			backend.TableSubscriptions:     readOnlyPolicy(personalPolicy.read),
			backend.TableSubscriptionPlans: readOnlyPolicy(everyone),
		},
	}

	for _, o := range opts {
		o(s)
	}

	s.wallets = newTable[models.Wallet](s, backend.TableWallets, s.policies[backend.TableWallets])
	s.wallets.readOnly = append(s.wallets.readOnly, "balance")
	s.wallets.beforeInsert = func(tx *gorm.DB, p uuid.UUID, w *models.Wallet) error {
		return ownerCheck(tx, p, w)
	}
	s.wallets.afterInsert = func(tx *gorm.DB, _ uuid.UUID, w models.Wallet) error {
		return keepSingleDefault(tx, w)
	}
	s.wallets.afterUpdate = func(tx *gorm.DB, _ uuid.UUID, _, w models.Wallet) error {
		return keepSingleDefault(tx, w)
	}

	s.categories = newTable[models.Category](s, backend.TableCategories, s.policies[backend.TableCategories])
	s.categories.readOnly = append(s.categories.readOnly, "is_system")
	s.categories.beforeInsert = func(tx *gorm.DB, p uuid.UUID, c *models.Category) error {
		if c.IsSystem {
			return errSystemCategory
		}
		return ownerCheck(tx, p, c)
	}

	s.creditCards = newTable[models.CreditCard](s, backend.TableCreditCards, s.policies[backend.TableCreditCards])
	s.creditCards.relations["wallet"] = "Wallet"
	s.creditCards.references = func(c models.CreditCard) []reference {
		return []reference{{backend.TableWallets, &c.WalletID, false}}
	}
	s.creditCards.beforeInsert = func(tx *gorm.DB, p uuid.UUID, c *models.CreditCard) error {
		if err := checkCreditCard(*c); err != nil {
			return err
		}
		return ownerCheck(tx, p, c)
	}
	s.creditCards.afterUpdate = func(_ *gorm.DB, _ uuid.UUID, _, c models.CreditCard) error {
		return checkCreditCard(c)
	}

	s.budgets = newTable[models.Budget](s, backend.TableBudgets, s.policies[backend.TableBudgets])
	s.budgets.relations["category"] = "Category"
	s.budgets.references = func(b models.Budget) []reference {
		return []reference{{backend.TableCategories, &b.CategoryID, false}}
	}
	s.budgets.beforeInsert = func(tx *gorm.DB, p uuid.UUID, b *models.Budget) error {
		return ownerCheck(tx, p, b)
	}

	s.transactions = newTable[models.Transaction](s, backend.TableTransactions, s.policies[backend.TableTransactions])
	s.transactions.relations["wallet"] = "Wallet"
	s.transactions.relations["destination_wallet"] = "DestinationWallet"
	s.transactions.relations["category"] = "Category"
	s.transactions.relations["credit_card"] = "CreditCard"
	s.transactions.references = transactionReferences
	s.transactions.beforeInsert = func(tx *gorm.DB, p uuid.UUID, t *models.Transaction) error {
		if err := checkTransfer(*t); err != nil {
			return err
		}
		return ownerCheck(tx, p, t)
	}
	s.transactions.afterInsert = func(tx *gorm.DB, p uuid.UUID, t models.Transaction) error {
		return s.applyBalances(tx, p, models.Transaction{}, t)
	}
	s.transactions.afterUpdate = func(tx *gorm.DB, p uuid.UUID, old, t models.Transaction) error {
		if err := checkTransfer(t); err != nil {
			return err
		}
		return s.applyBalances(tx, p, old, t)
	}
	s.transactions.afterDelete = func(tx *gorm.DB, p uuid.UUID, t models.Transaction) error {
		return s.applyBalances(tx, p, t, models.Transaction{})
	}

	s.workspaces = newTable[models.Workspace](s, backend.TableWorkspaces, s.policies[backend.TableWorkspaces])
	s.workspaces.readOnly = append(s.workspaces.readOnly, "owner_id")
	s.workspaces.relations["members"] = "Members"
	s.workspaces.beforeInsert = func(_ *gorm.DB, p uuid.UUID, w *models.Workspace) error {
		if w.OwnerID != p {
			return errForeignOwner
		}
		return nil
	}
	s.workspaces.afterInsert = func(tx *gorm.DB, p uuid.UUID, w models.Workspace) error {
		return tx.Create(&models.WorkspaceMember{WorkspaceID: w.ID, UserID: p, Role: models.RoleOwner}).Error
	}
	s.workspaces.beforeDelete = func(tx *gorm.DB, _ uuid.UUID, w models.Workspace) error {
		return tx.Where("workspace_id = ?", w.ID).Delete(&models.WorkspaceMember{}).Error
	}

	s.workspaceMembers = newTable[models.WorkspaceMember](s, backend.TableWorkspaceMembers, s.policies[backend.TableWorkspaceMembers])
	s.workspaceMembers.readOnly = []string{"workspace_id", "user_id", "created_at", "updated_at"}
	s.workspaceMembers.beforeInsert = func(tx *gorm.DB, p uuid.UUID, m *models.WorkspaceMember) error {
		return memberCheck(tx, p, *m)
	}
	s.workspaceMembers.afterUpdate = func(tx *gorm.DB, p uuid.UUID, old, m models.WorkspaceMember) error {
		if err := roleCheck(tx, p, old, m); err != nil {
			return err
		}
		return keepOwner(tx, m.WorkspaceID)
	}
	s.workspaceMembers.afterDelete = func(tx *gorm.DB, _ uuid.UUID, m models.WorkspaceMember) error {
		return keepOwner(tx, m.WorkspaceID)
	}

	s.notifications = newTable[models.Notification](s, backend.TableNotifications, s.policies[backend.TableNotifications])
	s.notifications.beforeInsert = func(tx *gorm.DB, p uuid.UUID, n *models.Notification) error {
		return ownerCheck(tx, p, n)
	}

	s.subscriptions = newTable[models.Subscription](s, backend.TableSubscriptions, s.policies[backend.TableSubscriptions])
	s.subscriptions.relations["plan"] = "Plan"
	s.subscriptions.beforeInsert = forbidInsert[models.Subscription]

	s.subscriptionPlans = newTable[models.SubscriptionPlan](s, backend.TableSubscriptionPlans, s.policies[backend.TableSubscriptionPlans])
	s.subscriptionPlans.beforeInsert = forbidInsert[models.SubscriptionPlan]

	return s
}

// DB returns the underlying database. It is meant for administrative tasks
// like seeding and bypasses all policies.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Ping verifies that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Session returns the principal carried by the context.
func (s *Store) Session(ctx context.Context) (*backend.Principal, error) {
	if err := ctx.Err(); err != nil {
		return nil, translate(err)
	}

	p, ok := backend.PrincipalFrom(ctx)
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *Store) Wallets() backend.Table[models.Wallet] { return s.wallets }

func (s *Store) Categories() backend.Table[models.Category] { return s.categories }

func (s *Store) CreditCards() backend.Table[models.CreditCard] { return s.creditCards }

func (s *Store) Budgets() backend.Table[models.Budget] { return s.budgets }

func (s *Store) Transactions() backend.Table[models.Transaction] { return s.transactions }

func (s *Store) Workspaces() backend.Table[models.Workspace] { return s.workspaces }

func (s *Store) Notifications() backend.Table[models.Notification] { return s.notifications }

func (s *Store) Subscriptions() backend.Table[models.Subscription] { return s.subscriptions }

func (s *Store) WorkspaceMembers() backend.Table[models.WorkspaceMember] {
	return s.workspaceMembers
}

func (s *Store) SubscriptionPlans() backend.Table[models.SubscriptionPlan] {
	return s.subscriptionPlans
}
