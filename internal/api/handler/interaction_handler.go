package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prospectius/crm-backend/internal/api/metrics"
	"github.com/prospectius/crm-backend/internal/core/domain"
	"github.com/prospectius/crm-backend/internal/core/ports"
)

// InteractionHandler handles HTTP requests for contact-history operations.
type InteractionHandler struct {
	service ports.InteractionService
}

func NewInteractionHandler(service ports.InteractionService) *InteractionHandler {
	return &InteractionHandler{service: service}
}

type createInteractionRequest struct {
	Type string `json:"type" validate:"required,oneof=email appel sms reunion note"`
	Note string `json:"note"`
}

// Create records an interaction against a prospect. The author is always the
// authenticated account, never taken from the payload.
//
// @Summary      Record an interaction
// @Tags         interactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                       true  "Prospect id"
// @Param        body  body      createInteractionRequest  true  "Interaction details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/prospects/{id}/interactions [post]
func (h *InteractionHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	prospectID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req createInteractionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.service.Create(c.Request().Context(), actor, ports.CreateInteractionInput{
		ProspectID: prospectID,
		Type:       domain.InteractionType(req.Type),
		Note:       req.Note,
	})
	if err != nil {
		return err
	}

	metrics.InteractionsRecordedTotal.WithLabelValues(req.Type).Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "interaction recorded"})
}

// List returns the prospect's contact history, most recent first.
//
// @Summary      List a prospect's interactions
// @Tags         interactions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Prospect id"
// @Success      200  {array}   ports.InteractionWithAuthor
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/prospects/{id}/interactions [get]
func (h *InteractionHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	prospectID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	history, err := h.service.ListByProspect(c.Request().Context(), actor, prospectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, history)
}

// Delete removes one interaction.
//
// @Summary      Delete an interaction
// @Tags         interactions
// @Security     BearerAuth
// @Param        id  path  int  true  "Interaction id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/interactions/{id} [delete]
func (h *InteractionHandler) Delete(c echo.Context) error {
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

	return c.NoContent(http.StatusNoContent)
}
