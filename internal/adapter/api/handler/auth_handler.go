package handler

import (
	"github.com/labstack/echo/v4"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/usecase"
	"moverconnect/pkg/response"
)

type AuthHandler struct {
	identityUseCase *usecase.IdentityUseCase
}

func NewAuthHandler(identityUseCase *usecase.IdentityUseCase) *AuthHandler {
	return &AuthHandler{
		identityUseCase: identityUseCase,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerClientRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
}

type registerMoverRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
	CompanyName   string `json:"company_name" validate:"required"`
	ServiceArea   string `json:"service_area" validate:"required"`
	ContactNumber string `json:"contact_number" validate:"required"`
}

type roleOption struct {
	Role     entity.Role `json:"role"`
	Label    string      `json:"label"`
	Register string      `json:"register"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	session, err := h.identityUseCase.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, session)
}

func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	session, err := h.identityUseCase.AdminLogin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, session)
}

// Roles backs the role chooser shown before registration.
func (h *AuthHandler) Roles(c echo.Context) error {
	return response.Success(c, []roleOption{
		{Role: entity.RoleClient, Label: "I need movers", Register: "/v1/auth/register/client"},
		{Role: entity.RoleMover, Label: "I am a mover", Register: "/v1/auth/register/mover"},
	})
}

func (h *AuthHandler) RegisterClient(c echo.Context) error {
	var req registerClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.identityUseCase.RegisterClient(c.Request().Context(), usecase.RegisterClientInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, result)
}

func (h *AuthHandler) RegisterMover(c echo.Context) error {
	var req registerMoverRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.identityUseCase.RegisterMover(c.Request().Context(), usecase.RegisterMoverInput{
		Email:         req.Email,
		Password:      req.Password,
		CompanyName:   req.CompanyName,
		ServiceArea:   req.ServiceArea,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, result)
}

func (h *AuthHandler) Me(c echo.Context) error {
	uid, email := currentUser(c)
	session, err := h.identityUseCase.Me(c.Request().Context(), uid, email)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, session)
}
