package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clientlens/clientlens-api/internal/core/ports"
)

// DirectoryHandler lists selectable users and their client scopes.
type DirectoryHandler struct {
	svc ports.DirectoryService
}

func NewDirectoryHandler(svc ports.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{svc: svc}
}

// ListUsers returns every selectable user.
//
// @Summary      List users
// @Tags         directory
// @Produce      json
// @Success      200  {object}  envelope{data=[]domain.User}
// @Failure      500  {object}  envelope
// @Router       /api/users [get]
func (h *DirectoryHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(users))
}

// ListClients returns the clients a user may query, with contact details masked.
//
// @Summary      List a user's clients
// @Tags         directory
// @Produce      json
// @Param        userId  path      int  true  "User ID"
// @Success      200     {object}  envelope{data=[]domain.Client}
// @Failure      400     {object}  envelope
// @Failure      404     {object}  envelope
// @Router       /api/clients/{userId} [get]
func (h *DirectoryHandler) ListClients(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "userId must be a positive integer")
	}

	clients, err := h.svc.ListClients(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(clients))
}
