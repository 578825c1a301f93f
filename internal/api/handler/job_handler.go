package handler

import (
	"math"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/solosphere/jobs-api/internal/api/metrics"
	"github.com/solosphere/jobs-api/internal/core/domain"
	"github.com/solosphere/jobs-api/internal/core/ports"
)

// JobHandler handles HTTP requests for job operations.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// List handles GET /alljobs.
//
// @Summary      List all jobs
// @Tags         jobs
// @Produce      json
// @Success      200  {array}   domain.Job
// @Failure      500  {object}  errorResponse
// @Router       /alljobs [get]
func (h *JobHandler) List(c echo.Context) error {
	jobs, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobs)
}

// Create handles POST /alljobs. Attributes beyond the typed job fields are
// stored as sent.
//
// @Summary      Post a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        body  body      domain.Job  true  "Job document"
// @Success      200   {object}  insertResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /alljobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	var job domain.Job
	if err := c.Bind(&job); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	id, err := h.service.Create(c.Request().Context(), &job)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, insertResponse{Acknowledged: true, InsertedID: id})
}

// Get handles GET /alljobs/:id.
//
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  domain.Job
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /alljobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// ListMine handles GET /alljobss/:email: the jobs posted by the session user.
//
// @Summary      List jobs posted by a buyer
// @Tags         jobs
// @Produce      json
// @Security     CookieAuth
// @Param        email  path      string  true  "Buyer email; must match the session"
// @Success      200    {array}   domain.Job
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /alljobss/{email} [get]
func (h *JobHandler) ListMine(c echo.Context) error {
	email, err := sessionIdentity(c)
	if err != nil {
		return err
	}

	jobs, err := h.service.ListByBuyer(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobs)
}

// Delete handles DELETE /alljobs/:id.
//
// @Summary      Delete a job
// @Tags         jobs
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  deleteResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /alljobs/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	n, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteResponse{Acknowledged: true, DeletedCount: n})
}

// Upsert handles PUT /alljobs/:id: sets the supplied fields, creating the job
// when the id does not exist yet.
//
// @Summary      Update or insert a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string      true  "Job id"
// @Param        body  body      domain.Job  true  "Fields to set"
// @Success      200   {object}  updateResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /alljobs/{id} [put]
func (h *JobHandler) Upsert(c echo.Context) error {
	var job domain.Job
	if err := c.Bind(&job); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	res, err := h.service.Upsert(c.Request().Context(), c.Param("id"), &job)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUpsertResponse(res))
}

// Count handles GET /alljobscount.
//
// @Summary      Count jobs
// @Tags         jobs
// @Produce      json
// @Param        filter  query     string  false  "Category"
// @Success      200     {object}  countResponse
// @Failure      500     {object}  errorResponse
// @Router       /alljobscount [get]
func (h *JobHandler) Count(c echo.Context) error {
	n, err := h.service.Count(c.Request().Context(), c.QueryParam("filter"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countResponse{Result: n})
}

// Page handles GET /newalljobs.
//
// @Summary      Page through jobs
// @Tags         jobs
// @Produce      json
// @Param        filter  query     string  false  "Category"
// @Param        sort    query     string  false  "asc orders by deadline ascending, any other value descending"
// @Param        page    query     int     true   "1-based page number"
// @Param        size    query     int     true   "Page size (1-100)"
// @Success      200     {array}   domain.Job
// @Failure      400     {object}  errorResponse
// @Failure      500     {object}  errorResponse
// @Router       /newalljobs [get]
func (h *JobHandler) Page(c echo.Context) error {
	var req listingRequest
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "page and size must be integers")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	// The skip offset (page-1)*size must fit in an int64.
	if int64(req.Page-1) > math.MaxInt64/int64(req.Size) {
		return echo.NewHTTPError(http.StatusBadRequest, "page out of range")
	}
	metrics.ListingPageSize.Observe(float64(req.Size))

	jobs, err := h.service.Page(c.Request().Context(), ports.ListJobsInput{
		Filter: req.Filter,
		Sort:   req.Sort,
		Page:   req.Page,
		Size:   req.Size,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobs)
}
