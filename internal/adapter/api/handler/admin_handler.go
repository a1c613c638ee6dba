package handler

import (
	"github.com/labstack/echo/v4"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/usecase"
	"moverconnect/pkg/response"
)

type AdminHandler struct {
	adminUseCase *usecase.AdminUseCase
}

func NewAdminHandler(adminUseCase *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
	}
}

type verificationRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

type notesRequest struct {
	Notes string `json:"notes"`
}

type backfillRequest struct {
	DryRun bool `json:"dry_run"`
}

// ListMovers takes ?status=all|pending|approved|rejected and defaults
// to every mover.
func (h *AdminHandler) ListMovers(c echo.Context) error {
	list, err := h.adminUseCase.ListMovers(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, list)
}

func (h *AdminHandler) SetVerification(c echo.Context) error {
	_, email := currentUser(c)

	var req verificationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	mover, err := h.adminUseCase.SetVerification(c.Request().Context(), email, c.Param("id"), entity.VerificationStatus(req.Status))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, mover)
}

func (h *AdminHandler) SaveNotes(c echo.Context) error {
	_, email := currentUser(c)

	var req notesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	mover, err := h.adminUseCase.SaveNotes(c.Request().Context(), email, c.Param("id"), req.Notes)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, mover)
}

func (h *AdminHandler) DeleteMover(c echo.Context) error {
	_, email := currentUser(c)
	if err := h.adminUseCase.DeleteMover(c.Request().Context(), email, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Mover deleted"})
}

func (h *AdminHandler) ListClients(c echo.Context) error {
	clients, err := h.adminUseCase.ListClients(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.List(c, clients, len(clients))
}

func (h *AdminHandler) DeleteClient(c echo.Context) error {
	_, email := currentUser(c)
	if err := h.adminUseCase.DeleteClient(c.Request().Context(), email, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Client deleted"})
}

func (h *AdminHandler) BackfillMovers(c echo.Context) error {
	var req backfillRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	touched, err := h.adminUseCase.BackfillMovers(c.Request().Context(), req.DryRun)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]interface{}{
		"dry_run": req.DryRun,
		"movers":  touched,
	})
}
