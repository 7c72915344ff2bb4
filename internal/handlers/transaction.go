package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hibried/SportNow/internal/api"
	"github.com/hibried/SportNow/internal/domain"
	"github.com/hibried/SportNow/internal/middlewares"
	"github.com/hibried/SportNow/internal/session"
)

type TransactionHandler struct {
	api   *api.Client
	store session.Store
}

func NewTransactionHandler(a *api.Client, store session.Store) *TransactionHandler {
	return &TransactionHandler{api: a, store: store}
}

// GET /my-transaction?page=1
func (h *TransactionHandler) List(c *gin.Context) {
	s := middlewares.Current(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	txs, pg, err := h.api.MyTransactions(c.Request.Context(), s.Token, page, perPage)
	if err != nil {
		if api.IsUnauthorized(err) {
			forceLogin(c, h.store)
			return
		}
		logrus.WithError(err).Warn("transaction fetch failed")
		pg = domain.Page{CurrentPage: page, LastPage: page}
	}
	if pg.CurrentPage > 0 {
		page = pg.CurrentPage
	}

	c.HTML(http.StatusOK, "transactions.html", gin.H{
		"User":         s.User,
		"Transactions": txs,
		"Page":         pg,
		"PrevPage":     page - 1,
		"NextPage":     page + 1,
		"Error":        c.Query("error"),
	})
}

// POST /transaction/:id/cancel
//
// Cancellation is server-authoritative: on success we redirect back to the
// list so it is re-fetched rather than patched locally.
func (h *TransactionHandler) Cancel(c *gin.Context) {
	s := middlewares.Current(c)
	id := domain.ID(c.Param("id"))

	if err := h.api.CancelTransaction(c.Request.Context(), s.Token, id); err != nil {
		if api.IsUnauthorized(err) {
			forceLogin(c, h.store)
			return
		}
		logrus.WithError(err).Warn("transaction cancel failed")
		c.Redirect(http.StatusFound, "/my-transaction?error="+url.QueryEscape(userMessage(err)))
		return
	}
	c.Redirect(http.StatusFound, "/my-transaction")
}

// GET /transaction/:id/confirm
func (h *TransactionHandler) Confirm(c *gin.Context) {
	s := middlewares.Current(c)
	h.renderConfirm(c, http.StatusOK, s, domain.ID(c.Param("id")), "")
}

// POST /transaction/:id/proof
func (h *TransactionHandler) UploadProof(c *gin.Context) {
	s := middlewares.Current(c)
	id := domain.ID(c.Param("id"))

	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		// Rejected locally, nothing goes over the wire.
		h.renderConfirm(c, http.StatusUnprocessableEntity, s, id, "Please choose a proof-of-payment file first.")
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.renderConfirm(c, http.StatusUnprocessableEntity, s, id, "Could not read the chosen file.")
		return
	}
	defer f.Close()

	if err := h.api.UploadProof(c.Request.Context(), s.Token, fh.Filename, f); err != nil {
		if api.IsUnauthorized(err) {
			forceLogin(c, h.store)
			return
		}
		logrus.WithError(err).Warn("proof upload failed")
		h.renderConfirm(c, http.StatusBadGateway, s, id, "Failed to submit payment proof.")
		return
	}
	c.Redirect(http.StatusFound, "/my-transaction")
}

func (h *TransactionHandler) renderConfirm(c *gin.Context, status int, s *session.Session, id domain.ID, errMsg string) {
	tx, err := h.api.Transaction(c.Request.Context(), s.Token, id)
	if err != nil {
		if api.IsUnauthorized(err) {
			forceLogin(c, h.store)
			return
		}
		logrus.WithError(err).Warn("transaction detail fetch failed")
		c.HTML(http.StatusBadGateway, "error.html", gin.H{"Message": "Transaction is unavailable right now."})
		return
	}
	c.HTML(status, "confirm.html", gin.H{
		"User":        s.User,
		"Transaction": tx,
		"Activity":    tx.TransactionItems.SportActivities,
		"Error":       errMsg,
	})
}
