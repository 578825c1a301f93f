package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/solosphere/jobs-api/internal/api/metrics"
	"github.com/solosphere/jobs-api/internal/core/domain"
	"github.com/solosphere/jobs-api/internal/core/ports"
)

// BidHandler handles HTTP requests for bid operations.
type BidHandler struct {
	service ports.BidService
	placer  ports.BidPlacer
}

// NewBidHandler builds the bid endpoints. Placements go through placer when
// one is given (the per-key dispatcher) and straight to service otherwise.
func NewBidHandler(service ports.BidService, placer ports.BidPlacer) *BidHandler {
	if placer == nil {
		placer = service
	}
	return &BidHandler{service: service, placer: placer}
}

// List handles GET /bidjobs.
//
// @Summary      List all bids
// @Tags         bids
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}   domain.Bid
// @Failure      401  {object}  errorResponse
// @Router       /bidjobs [get]
func (h *BidHandler) List(c echo.Context) error {
	bids, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bids)
}

// Place handles POST /bidjobs.
//
// @Summary      Place a bid
// @Tags         bids
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      placeBidRequest  true  "Bid"
// @Success      200   {object}  insertResponse
// @Failure      400   {object}  errorResponse  "Invalid payload or duplicate bid"
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /bidjobs [post]
func (h *BidHandler) Place(c echo.Context) error {
	var req placeBidRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.placer.Place(c.Request().Context(), toBid(req))
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateBid) {
			metrics.BidDuplicatesTotal.Inc()
		}
		return err
	}
	metrics.BidsPlacedTotal.Inc()

	return c.JSON(http.StatusOK, insertResponse{Acknowledged: true, InsertedID: id})
}

// ListMine handles GET /bidjobs/:email: the bids placed by the session user.
//
// @Summary      List bids placed by a bidder
// @Tags         bids
// @Produce      json
// @Security     CookieAuth
// @Param        email  path      string  true  "Bidder email; must match the session"
// @Success      200    {array}   domain.Bid
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /bidjobs/{email} [get]
func (h *BidHandler) ListMine(c echo.Context) error {
	email, err := sessionIdentity(c)
	if err != nil {
		return err
	}

	bids, err := h.service.ListByBidder(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bids)
}

// ListRequests handles GET /bidrequests/:email: the bids on jobs the session
// user posted.
//
// @Summary      List bids received by a buyer
// @Tags         bids
// @Produce      json
// @Security     CookieAuth
// @Param        email  path      string  true  "Buyer email; must match the session"
// @Success      200    {array}   domain.Bid
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /bidrequests/{email} [get]
func (h *BidHandler) ListRequests(c echo.Context) error {
	email, err := sessionIdentity(c)
	if err != nil {
		return err
	}

	bids, err := h.service.ListRequests(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bids)
}

// UpdateStatus handles PATCH /bidjobs/:id.
//
// @Summary      Update a bid's status
// @Tags         bids
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string            true  "Bid id"
// @Param        body  body      bidStatusRequest  true  "New status"
// @Success      200   {object}  updateResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /bidjobs/{id} [patch]
func (h *BidHandler) UpdateStatus(c echo.Context) error {
	var req bidStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), domain.BidStatus(req.Status))
	if err != nil {
		return err
	}
	metrics.BidStatusUpdatesTotal.WithLabelValues(req.Status).Inc()

	return c.JSON(http.StatusOK, toUpdateResponse(res))
}
