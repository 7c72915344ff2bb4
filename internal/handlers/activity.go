package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hibried/SportNow/internal/api"
	"github.com/hibried/SportNow/internal/checkout"
	"github.com/hibried/SportNow/internal/domain"
	"github.com/hibried/SportNow/internal/middlewares"
	"github.com/hibried/SportNow/internal/session"
)

type ActivityHandler struct {
	api   *api.Client
	store session.Store
	now   func() time.Time
}

func NewActivityHandler(a *api.Client, store session.Store) *ActivityHandler {
	return &ActivityHandler{api: a, store: store, now: time.Now}
}

// GET /activity?page=1&category=3
//
// Picking a category always starts over at page 1: the category links carry
// no page parameter.
func (h *ActivityHandler) List(c *gin.Context) {
	s := middlewares.Current(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	category := domain.ID(c.Query("category"))

	// Category chips are decoration around the listing; a failed fetch
	// logs and renders without them.
	categories, err := h.api.SportCategories(c.Request.Context(), s.Token)
	if err != nil {
		if api.IsUnauthorized(err) {
			forceLogin(c, h.store)
			return
		}
		logrus.WithError(err).Warn("category fetch failed")
	}

	activities, pg, err := h.api.SportActivities(c.Request.Context(), s.Token, page, perPage, category)
	if err != nil {
		if api.IsUnauthorized(err) {
			forceLogin(c, h.store)
			return
		}
		logrus.WithError(err).Warn("activity fetch failed")
		pg = domain.Page{CurrentPage: page, LastPage: page}
	}
	if pg.CurrentPage > 0 {
		// The server's pagination window wins over whatever we asked for.
		page = pg.CurrentPage
	}

	c.HTML(http.StatusOK, "activities.html", gin.H{
		"User":       s.User,
		"Activities": activities,
		"Categories": categories,
		"Category":   category,
		"Page":       pg,
		"PrevPage":   page - 1,
		"NextPage":   page + 1,
	})
}

// GET /activity/:id?modal=1
func (h *ActivityHandler) Detail(c *gin.Context) {
	s := middlewares.Current(c)
	id := domain.ID(c.Param("id"))

	act, err := h.api.SportActivity(c.Request.Context(), s.Token, id)
	if err != nil {
		if api.IsUnauthorized(err) {
			forceLogin(c, h.store)
			return
		}
		logrus.WithError(err).Warn("activity detail fetch failed")
		c.HTML(http.StatusBadGateway, "error.html", gin.H{"Message": "Activity is unavailable right now."})
		return
	}
	h.reconcilePendingJoin(c, s, &act)

	flow := checkout.NewFlow(act, h.api)
	var methods []domain.PaymentMethod
	flowErr := c.Query("error")
	if c.Query("modal") == "1" {
		if err := flow.OpenModal(h.now()); err == nil {
			var methodErr string
			methods, methodErr = h.paymentMethods(c, s)
			if c.IsAborted() {
				return
			}
			if methodErr != "" {
				flowErr = methodErr
			}
		}
	}
	h.renderDetail(c, http.StatusOK, s, act, flow, methods, flowErr)
}

// POST /activity/:id/checkout
func (h *ActivityHandler) Checkout(c *gin.Context) {
	s := middlewares.Current(c)
	id := domain.ID(c.Param("id"))
	methodID := domain.ID(c.PostForm("payment_method_id"))

	if methodID == "" {
		// Rejected before anything goes over the wire.
		c.Redirect(http.StatusFound, "/activity/"+id.String()+"?modal=1&error="+url.QueryEscape("Select a payment method first."))
		return
	}

	act, err := h.api.SportActivity(c.Request.Context(), s.Token, id)
	if err != nil {
		if api.IsUnauthorized(err) {
			forceLogin(c, h.store)
			return
		}
		logrus.WithError(err).Warn("activity detail fetch failed")
		c.HTML(http.StatusBadGateway, "error.html", gin.H{"Message": "Activity is unavailable right now."})
		return
	}
	h.reconcilePendingJoin(c, s, &act)

	flow := checkout.NewFlow(act, h.api)
	if err := flow.OpenModal(h.now()); err != nil {
		// Full or ended since the page was rendered.
		c.Redirect(http.StatusFound, "/activity/"+id.String())
		return
	}

	if _, err := flow.Confirm(c.Request.Context(), s.Token, methodID); err != nil {
		if api.IsUnauthorized(err) {
			forceLogin(c, h.store)
			return
		}
		status := http.StatusBadGateway
		if api.IsValidation(err) {
			status = http.StatusUnprocessableEntity
		} else {
			logrus.WithError(err).Warn("transaction create failed")
		}
		methods, _ := h.paymentMethods(c, s)
		if c.IsAborted() {
			return
		}
		h.renderDetail(c, status, s, act, flow, methods, userMessage(err))
		return
	}

	s.RecordPendingJoin(act.ID)
	if err := h.store.Put(c.Request.Context(), s); err != nil {
		logrus.WithError(err).Warn("session save failed")
	}
	c.Redirect(http.StatusFound, flow.RedirectPath())
}

// reconcilePendingJoin folds the session's locally recorded join into the
// participant list until the server list names the user, then forgets it.
func (h *ActivityHandler) reconcilePendingJoin(c *gin.Context, s *session.Session, act *domain.Activity) {
	pending, ok := s.PendingJoins[act.ID]
	if !ok {
		return
	}
	for _, p := range act.Participants {
		if p.User.Email != "" && p.User.Email == s.User.Email {
			delete(s.PendingJoins, act.ID)
			if err := h.store.Put(c.Request.Context(), s); err != nil {
				logrus.WithError(err).Warn("session save failed")
			}
			return
		}
	}
	act.Participants = append(act.Participants, pending)
}

func (h *ActivityHandler) paymentMethods(c *gin.Context, s *session.Session) ([]domain.PaymentMethod, string) {
	methods, err := h.api.PaymentMethods(c.Request.Context(), s.Token)
	if err != nil {
		if api.IsUnauthorized(err) {
			forceLogin(c, h.store)
			return nil, ""
		}
		logrus.WithError(err).Warn("payment method fetch failed")
		return nil, "Payment methods are unavailable right now."
	}
	return methods, ""
}

func (h *ActivityHandler) renderDetail(c *gin.Context, status int, s *session.Session, act domain.Activity, flow *checkout.Flow, methods []domain.PaymentMethod, errMsg string) {
	now := h.now()
	c.HTML(status, "activity.html", gin.H{
		"User":        s.User,
		"Activity":    act,
		"CanJoin":     flow.CanJoin(now),
		"ButtonLabel": flow.ButtonLabel(now),
		"ModalOpen":   flow.State() == checkout.StateModalOpen,
		"Methods":     methods,
		"Error":       errMsg,
	})
}

func userMessage(err error) string {
	var ae *api.Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "Something went wrong, please try again."
}
