package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/walletwise/finance/internal/types"
	"github.com/walletwise/finance/pkg/finance"
	"github.com/walletwise/finance/pkg/httputil"
	"github.com/walletwise/finance/pkg/models"
	"golang.org/x/exp/slices"
)

// defaultRecent is the number of recent transactions returned without limit.
const defaultRecent = 10

// TransactionQueryFilter is the query string of the transaction list.
//
// Fields are bound as plain values and converted to the filter of the
// client for the parameters that are set. This keeps zero values like
// isPaid=false as filters.
type TransactionQueryFilter struct {
	StartDate    types.Date `form:"startDate" example:"2024-03-01"`                                 // First day, inclusive
	EndDate      types.Date `form:"endDate" example:"2024-03-31"`                                   // Last day, inclusive
	Type         string     `form:"type" example:"expense"`                                         // income, expense, transfer or all
	WalletID     string     `form:"walletId" example:"d1b4a5c6-5a4d-4a17-92f4-1f9c7a9b1b35"`        // Source wallet
	CategoryID   string     `form:"categoryId" example:"8f1c7d4e-4b9a-4fd4-9f8e-4d9a2e7b3c11"`      // Category
	CreditCardID string     `form:"creditCardId" example:"0b8a3f5e-9e0f-4d2c-8c47-1bb3e7c6a8d2"`    // Credit card
	IsPaid       bool       `form:"isPaid" example:"true"`                                          // Paid state
	Search       string     `form:"search" example:"rent"`                                          // Search in the description
	MinAmount    string     `form:"minAmount" example:"10"`                                         // Minimum amount, inclusive
	MaxAmount    string     `form:"maxAmount" example:"99.99"`                                      // Maximum amount, inclusive
}

// model converts the query to a transaction filter. Only fields in
// setFields are used.
func (f TransactionQueryFilter) model(setFields []string) (finance.TransactionFilter, error) {
	var filter finance.TransactionFilter
	set := func(field string) bool {
		return slices.Contains(setFields, field)
	}

	if set("StartDate") {
		filter.StartDate = &f.StartDate
	}

	if set("EndDate") {
		filter.EndDate = &f.EndDate
	}

	if set("Type") {
		t := models.TransactionType(f.Type)
		filter.Type = &t
	}

	ids := []struct {
		field  string
		value  string
		target **uuid.UUID
	}{
		{"WalletID", f.WalletID, &filter.WalletID},
		{"CategoryID", f.CategoryID, &filter.CategoryID},
		{"CreditCardID", f.CreditCardID, &filter.CreditCardID},
	}

	for _, id := range ids {
		if !set(id.field) {
			continue
		}

		parsed, err := httputil.UUIDFromString(id.value)
		if err != nil {
			return finance.TransactionFilter{}, err
		}
		*id.target = &parsed
	}

	if set("IsPaid") {
		filter.IsPaid = &f.IsPaid
	}

	filter.Search = f.Search

	amounts := []struct {
		field  string
		value  string
		target **decimal.Decimal
	}{
		{"MinAmount", f.MinAmount, &filter.MinAmount},
		{"MaxAmount", f.MaxAmount, &filter.MaxAmount},
	}

	for _, a := range amounts {
		if !set(a.field) {
			continue
		}

		parsed, err := decimal.NewFromString(a.value)
		if err != nil {
			return finance.TransactionFilter{}, httputil.ErrInvalidQueryString
		}
		*a.target = &parsed
	}

	return filter, nil
}

type RecentQuery struct {
	Limit int `form:"limit" example:"10"` // Number of transactions
}

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetTransactions)
		r.POST("", co.CreateTransaction)
		r.OPTIONS("/recent", httputil.OptionsGet)
		r.GET("/recent", co.GetRecentTransactions)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetTransaction)
		r.PATCH("/:id", co.UpdateTransaction)
		r.DELETE("/:id", co.DeleteTransaction)
	}
}

// GetTransactions lists the transactions matching the query, newest first.
//
//	@Summary		List transactions
//	@Description	Returns the list of transactions
//	@Tags			Transactions
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[[]models.Transaction]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			startDate	query	string	false	"First day, inclusive"
//	@Param			endDate	query	string	false	"Last day, inclusive"
//	@Param			type	query	string	false	"income, expense, transfer or all"
//	@Param			walletId	query	string	false	"Filter by source wallet ID"
//	@Param			categoryId	query	string	false	"Filter by category ID"
//	@Param			creditCardId	query	string	false	"Filter by credit card ID"
//	@Param			isPaid	query	bool	false	"Filter by paid state"
//	@Param			search	query	string	false	"Search in the description, ignoring case"
//	@Param			minAmount	query	string	false	"Minimum amount, inclusive"
//	@Param			maxAmount	query	string	false	"Maximum amount, inclusive"
//	@Router			/v1/transactions [get]
func (co Controller) GetTransactions(c *gin.Context) {
	var query TransactionQueryFilter
	if err := c.ShouldBindQuery(&query); err != nil {
		fail(c, httputil.ErrInvalidQueryString)
		return
	}

	filter, err := query.model(httputil.GetURLFields(c.Request.URL, query))
	if err != nil {
		fail(c, err)
		return
	}

	transactions, err := co.Client.ListTransactions(c.Request.Context(), filter)
	respond(c, http.StatusOK, transactions, err)
}

// GetRecentTransactions returns the newest transactions.
//
//	@Summary		Recent transactions
//	@Description	Returns the newest transactions, 10 unless a limit is set
//	@Tags			Transactions
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[[]models.Transaction]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			limit	query	integer	false	"Maximum number of transactions"
//	@Router			/v1/transactions/recent [get]
func (co Controller) GetRecentTransactions(c *gin.Context) {
	query := RecentQuery{Limit: defaultRecent}
	if err := c.ShouldBindQuery(&query); err != nil || query.Limit < 1 {
		fail(c, httputil.ErrInvalidQueryString)
		return
	}

	transactions, err := co.Client.RecentTransactions(c.Request.Context(), query.Limit)
	respond(c, http.StatusOK, transactions, err)
}

// GetTransaction returns a single transaction.
//
//	@Summary		Get transaction
//	@Description	Returns a specific transaction
//	@Tags			Transactions
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[models.Transaction]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/transactions/{id} [get]
func (co Controller) GetTransaction(c *gin.Context) {
	id, err := param(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	transaction, err := co.Client.GetTransaction(c.Request.Context(), id)
	respond(c, http.StatusOK, transaction, err)
}

// CreateTransaction creates a transaction.
//
//	@Summary		Create transaction
//	@Description	Creates a new transaction
//	@Tags			Transactions
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201	{object}	Response[models.Transaction]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		403	{object}	httputil.HTTPError
//	@Failure		409	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			transaction	body	finance.TransactionInput	true	"Transaction"
//	@Router			/v1/transactions [post]
func (co Controller) CreateTransaction(c *gin.Context) {
	in, err := bind[finance.TransactionInput](c)
	if err != nil {
		fail(c, err)
		return
	}

	transaction, err := co.Client.CreateTransaction(c.Request.Context(), in)
	respond(c, http.StatusCreated, transaction, err)
}

// UpdateTransaction replaces all fields of the transaction.
//
//	@Summary		Update transaction
//	@Description	Updates a specific transaction. All fields are replaced.
//	@Tags			Transactions
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[models.Transaction]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		403	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		409	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Param			transaction	body	finance.TransactionInput	true	"Transaction"
//	@Router			/v1/transactions/{id} [patch]
func (co Controller) UpdateTransaction(c *gin.Context) {
	id, err := param(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	in, err := bind[finance.TransactionInput](c)
	if err != nil {
		fail(c, err)
		return
	}

	transaction, err := co.Client.UpdateTransaction(c.Request.Context(), id, in)
	respond(c, http.StatusOK, transaction, err)
}

// DeleteTransaction deletes the transaction.
//
//	@Summary		Delete transaction
//	@Description	Deletes a specific transaction
//	@Tags			Transactions
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		403	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		409	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/transactions/{id} [delete]
func (co Controller) DeleteTransaction(c *gin.Context) {
	id, err := param(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	done(c, co.Client.DeleteTransaction(c.Request.Context(), id))
}
