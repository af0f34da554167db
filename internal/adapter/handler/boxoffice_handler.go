package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/srgjo27/royale_boxoffice/internal/adapter/session"
	"github.com/srgjo27/royale_boxoffice/internal/core/domain"
	"github.com/srgjo27/royale_boxoffice/internal/core/services"
	"github.com/srgjo27/royale_boxoffice/internal/platform/logging"
)

type BoxOfficeHandler struct {
	sessions *session.Store
}

func NewBoxOfficeHandler(sessions *session.Store) *BoxOfficeHandler {
	return &BoxOfficeHandler{sessions: sessions}
}

func (h *BoxOfficeHandler) Register(e *echo.Echo) {
	e.POST("/sessions", h.CreateSession)

	g := e.Group("/sessions/:id")
	g.GET("/performances", h.SearchPerformances)
	g.GET("/basket", h.GetBasket)
	g.PUT("/basket/:performance_id", h.HoldTickets)
	g.DELETE("/basket/:performance_id", h.RemoveTickets)
	g.POST("/registration", h.RegisterPatron)
	g.POST("/checkout", h.Checkout)
}

type createSessionResponse struct {
	SessionID string `json:"session_id"`
}

type holdTicketsRequest struct {
	FullPrice  int `json:"full_price"`
	Concession int `json:"concession"`
}

type checkoutRequest struct {
	Profile *domain.Profile `json:"profile"`
}

type registrationResponse struct {
	PatronID int64 `json:"patron_id"`
}

type basketLineResponse struct {
	PerformanceID int64           `json:"performance_id"`
	Title         string          `json:"title"`
	StartDateTime time.Time       `json:"start_date_time"`
	FullPrice     int             `json:"full_price"`
	Concession    int             `json:"concession"`
	Cost          decimal.Decimal `json:"cost"`
}

type basketResponse struct {
	Tickets      []basketLineResponse `json:"tickets"`
	Total        decimal.Decimal      `json:"total"`
	Registered   bool                 `json:"registered"`
	LastCheckout string               `json:"last_checkout"`
}

type errorResponse struct {
	Error string `json:"error"`
	State string `json:"state,omitempty"`
}

func (h *BoxOfficeHandler) CreateSession(c echo.Context) error {
	sess := h.sessions.Create()

	return c.JSON(http.StatusCreated, createSessionResponse{SessionID: sess.ID.String()})
}

// SearchPerformances replaces the session's search results. date takes
// precedence over title; with neither, every performance is listed.
func (h *BoxOfficeHandler) SearchPerformances(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}

	ctx := c.Request().Context()

	var found []domain.Performance
	switch {
	case c.QueryParam("date") != "":
		found, err = sess.FindByDate(ctx, c.QueryParam("date"))
	case c.QueryParam("title") != "":
		found, err = sess.FindByTitle(ctx, c.QueryParam("title"))
	default:
		found, err = sess.Browse(ctx)
	}
	if err != nil {
		return writeError(c, err)
	}

	if found == nil {
		found = []domain.Performance{}
	}

	return c.JSON(http.StatusOK, found)
}

func (h *BoxOfficeHandler) GetBasket(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toBasketResponse(sess.Basket()))
}

func (h *BoxOfficeHandler) HoldTickets(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}

	performanceID, err := performanceIDParam(c)
	if err != nil {
		return writeError(c, err)
	}

	var req holdTicketsRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, domain.ErrMalformedInput)
	}

	if err := sess.Hold(performanceID, req.FullPrice, req.Concession); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *BoxOfficeHandler) RemoveTickets(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}

	performanceID, err := performanceIDParam(c)
	if err != nil {
		return writeError(c, err)
	}

	if err := sess.RemoveFromBasketByID(performanceID); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *BoxOfficeHandler) RegisterPatron(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}

	var profile domain.Profile
	if err := c.Bind(&profile); err != nil {
		return writeError(c, domain.ErrMalformedInput)
	}

	id, err := sess.Register(c.Request().Context(), profile)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, registrationResponse{PatronID: id})
}

func (h *BoxOfficeHandler) Checkout(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, domain.ErrMalformedInput)
	}

	ctx := logging.WithFields(c.Request().Context(), logrus.Fields{"session_id": sess.ID})

	confirmation, err := sess.Checkout(ctx, req.Profile)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, confirmation)
}

func (h *BoxOfficeHandler) session(c echo.Context) (*services.Session, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}

	return h.sessions.Get(id)
}

func performanceIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("performance_id"), 10, 64)
	if err != nil {
		return 0, domain.ErrMalformedInput
	}

	return id, nil
}

func toBasketResponse(view services.BasketView) basketResponse {
	return basketResponse{
		Tickets: lo.Map(view.Lines, func(l services.BasketLine, _ int) basketLineResponse {
			return basketLineResponse{
				PerformanceID: l.Ticket.PerformanceID,
				Title:         l.Ticket.Title,
				StartDateTime: l.Ticket.StartDateTime,
				FullPrice:     l.Ticket.FullPrice,
				Concession:    l.Ticket.Concession,
				Cost:          l.Cost,
			}
		}),
		Total:        view.Total,
		Registered:   view.Registered,
		LastCheckout: string(view.LastCheckout),
	}
}

var checkoutStatus = map[domain.CheckoutState]int{
	domain.AbortedIdentity:  http.StatusUnprocessableEntity,
	domain.AbortedPayment:   http.StatusPaymentRequired,
	domain.AbortedCapacity:  http.StatusConflict,
	domain.AbortedRecording: http.StatusServiceUnavailable,
}

func writeError(c echo.Context, err error) error {
	var cerr *domain.CheckoutError
	if errors.As(err, &cerr) {
		return c.JSON(checkoutStatus[cerr.State], errorResponse{Error: cerr.Err.Error(), State: string(cerr.State)})
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrPerformanceNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrCapacityExceeded), errors.Is(err, domain.ErrCheckoutInProgress):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidSelection),
		errors.Is(err, domain.ErrMalformedInput),
		errors.Is(err, domain.ErrRegistrationFailed),
		errors.Is(err, domain.ErrNotInSearchResults),
		errors.Is(err, domain.ErrEmptyBasket):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request().Context()).WithError(err).Error("Request failed")
		return c.JSON(status, errorResponse{Error: "internal server error"})
	}

	return c.JSON(status, errorResponse{Error: err.Error()})
}
