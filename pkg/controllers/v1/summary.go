package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/walletwise/finance/internal/types"
	"github.com/walletwise/finance/pkg/httputil"
	"github.com/walletwise/finance/pkg/models"
	"golang.org/x/exp/slices"
)

type MonthQuery struct {
	Year  int `form:"year" example:"2024"`
	Month int `form:"month" example:"3"`
}

type PeriodQuery struct {
	StartDate types.Date          `form:"startDate" example:"2024-03-01"`
	EndDate   types.Date          `form:"endDate" example:"2024-03-31"`
	Type      models.CategoryType `form:"type" example:"expense"`
}

// period returns the bounds that are set in the query string.
func (q PeriodQuery) period(setFields []string) (start, end *types.Date) {
	if slices.Contains(setFields, "StartDate") {
		start = &q.StartDate
	}

	if slices.Contains(setFields, "EndDate") {
		end = &q.EndDate
	}

	return
}

// RegisterSummaryRoutes registers the routes for the aggregated views with
// the RouterGroup that is passed.
func (co Controller) RegisterSummaryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/monthly", httputil.OptionsGet)
	r.GET("/monthly", co.GetMonthlySummary)
	r.OPTIONS("/categories", httputil.OptionsGet)
	r.GET("/categories", co.GetCategorySummary)
	r.OPTIONS("/cash-flow", httputil.OptionsGet)
	r.GET("/cash-flow", co.GetCashFlow)
}

// GetMonthlySummary returns income and expenses per month, optionally
// restricted to a year and month.
//
//	@Summary		Monthly summary
//	@Description	Returns income, expense and balance per month, newest first
//	@Tags			Summaries
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[[]models.MonthlySummary]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			year	query	integer	false	"Only this year"
//	@Param			month	query	integer	false	"Only this month, 1 to 12"
//	@Router			/v1/summaries/monthly [get]
func (co Controller) GetMonthlySummary(c *gin.Context) {
	var query MonthQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		fail(c, httputil.ErrInvalidQueryString)
		return
	}

	var year, month *int
	setFields := httputil.GetURLFields(c.Request.URL, query)
	if slices.Contains(setFields, "Year") {
		year = &query.Year
	}

	if slices.Contains(setFields, "Month") {
		month = &query.Month
	}

	summaries, err := co.Client.MonthlySummary(c.Request.Context(), year, month)
	respond(c, http.StatusOK, summaries, err)
}

// GetCategorySummary returns the totals per category. The type defaults
// to expense.
//
//	@Summary		Category summary
//	@Description	Returns the total and share per category. Uncategorized transactions form their own group.
//	@Tags			Summaries
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[[]models.CategorySummary]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			startDate	query	string	false	"First day, inclusive"
//	@Param			endDate	query	string	false	"Last day, inclusive"
//	@Param			type	query	string	false	"income or expense, defaults to expense"
//	@Router			/v1/summaries/categories [get]
func (co Controller) GetCategorySummary(c *gin.Context) {
	var query PeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		fail(c, httputil.ErrInvalidQueryString)
		return
	}

	if query.Type == "" {
		query.Type = models.CategoryTypeExpense
	}

	start, end := query.period(httputil.GetURLFields(c.Request.URL, query))
	summaries, err := co.Client.CategorySummary(c.Request.Context(), start, end, query.Type)
	respond(c, http.StatusOK, summaries, err)
}

// GetCashFlow returns income and expense per day, oldest first.
//
//	@Summary		Cash flow
//	@Description	Returns income, expense and balance per day, oldest first
//	@Tags			Summaries
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[[]models.CashFlow]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			startDate	query	string	false	"First day, inclusive"
//	@Param			endDate	query	string	false	"Last day, inclusive"
//	@Router			/v1/summaries/cash-flow [get]
func (co Controller) GetCashFlow(c *gin.Context) {
	var query PeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		fail(c, httputil.ErrInvalidQueryString)
		return
	}

	start, end := query.period(httputil.GetURLFields(c.Request.URL, query))
	flow, err := co.Client.CashFlow(c.Request.Context(), start, end)
	respond(c, http.StatusOK, flow, err)
}
