package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/prospectius/crm-backend/internal/api/metrics"
	"github.com/prospectius/crm-backend/internal/core/domain"
	"github.com/prospectius/crm-backend/internal/core/ports"
)

// ProspectHandler handles HTTP requests for prospect operations. Row-level
// scoping happens in the service; the handler only carries the actor through.
type ProspectHandler struct {
	service ports.ProspectService
}

func NewProspectHandler(service ports.ProspectService) *ProspectHandler {
	return &ProspectHandler{service: service}
}

// Create registers a new prospect.
//
// @Summary      Create a prospect
// @Tags         prospects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProspectRequest  true  "Prospect details"
// @Success      201   {object}  createProspectResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/prospects [post]
func (h *ProspectHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createProspectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.service.Create(c.Request().Context(), actor, ports.CreateProspectInput{
		Nomp:        req.Nomp,
		Prenomp:     req.Prenomp,
		Telephone:   req.Telephone,
		Email:       req.Email,
		Adresse:     req.Adresse,
		Type:        domain.ProspectType(req.Type),
		Assignation: req.Assignation,
	})
	if err != nil {
		return err
	}

	metrics.ProspectsCreatedTotal.WithLabelValues(req.Type).Inc()
	return c.JSON(http.StatusCreated, createProspectResponse{ID: id})
}

// Get returns one prospect with its owner's display identity.
//
// @Summary      Get a prospect
// @Tags         prospects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Prospect id"
// @Success      200  {object}  ports.ProspectWithOwner
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/prospects/{id} [get]
func (h *ProspectHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	prospect, err := h.service.GetByID(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prospect)
}

// List returns prospects visible to the actor, most recently updated first.
// Query parameters: assignation (account id), status, search.
//
// @Summary      List prospects
// @Tags         prospects
// @Produce      json
// @Security     BearerAuth
// @Param        assignation  query     int     false  "Filter by assigned account id"
// @Param        status       query     string  false  "Filter by pipeline status"
// @Param        search       query     string  false  "Substring match on name, email or phone"
// @Success      200          {array}   ports.ProspectWithOwner
// @Router       /v1/prospects [get]
func (h *ProspectHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var filter ports.ListProspectsFilter
	if raw := c.QueryParam("assignation"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid assignation")
		}
		filter.Assignation = id
	}
	filter.Status = c.QueryParam("status")
	filter.Search = c.QueryParam("search")

	prospects, err := h.service.List(c.Request().Context(), actor, filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prospects)
}

// Update rewrites the prospect fields present in the payload.
//
// @Summary      Update a prospect
// @Tags         prospects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                    true  "Prospect id"
// @Param        body  body      updateProspectRequest  true  "Fields to update"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/prospects/{id} [patch]
func (h *ProspectHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateProspectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	patch := domain.ProspectPatch{
		Nomp:        req.Nomp,
		Prenomp:     req.Prenomp,
		Telephone:   req.Telephone,
		Email:       req.Email,
		Adresse:     req.Adresse,
		Assignation: req.Assignation,
	}
	if req.Type != nil {
		t := domain.ProspectType(*req.Type)
		patch.Type = &t
	}
	if req.Status != nil {
		s := domain.ProspectStatus(*req.Status)
		patch.Status = &s
	}

	if err := h.service.Update(c.Request().Context(), actor, id, patch); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "prospect updated"})
}

// Delete removes the prospect and all of its interactions.
//
// @Summary      Delete a prospect and its history
// @Tags         prospects
// @Security     BearerAuth
// @Param        id  path  int  true  "Prospect id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/prospects/{id} [delete]
func (h *ProspectHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}

	metrics.ProspectsDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}
