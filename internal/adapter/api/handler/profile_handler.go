package handler

import (
	"github.com/labstack/echo/v4"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/usecase"
	"moverconnect/pkg/errors"
	"moverconnect/pkg/logger"
	"moverconnect/pkg/response"
)

type ProfileHandler struct {
	profileUseCase *usecase.ProfileUseCase
}

func NewProfileHandler(profileUseCase *usecase.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

type updateProfileRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	CompanyName   string `json:"company_name"`
	ServiceArea   string `json:"service_area"`
	ContactNumber string `json:"contact_number"`
}

// owner checks that :role matches the caller's own role.
func (h *ProfileHandler) owner(c echo.Context) (usecase.ProfileOwner, error) {
	uid, email := currentUser(c)
	role := entity.Role(c.Param("role"))
	if role != entity.RoleClient && role != entity.RoleMover {
		return usecase.ProfileOwner{}, errors.BadRequest("Profile type must be client or mover", nil)
	}
	if role != currentRole(c) {
		return usecase.ProfileOwner{}, errors.Forbidden("You can only edit your own profile", nil)
	}
	return usecase.ProfileOwner{UID: uid, Email: email, Role: role}, nil
}

func (h *ProfileHandler) GetProfile(c echo.Context) error {
	owner, err := h.owner(c)
	if err != nil {
		return response.Error(c, err)
	}

	profile, err := h.profileUseCase.GetProfile(c.Request().Context(), owner)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, profile)
}

func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	owner, err := h.owner(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	profile, err := h.profileUseCase.UpdateProfile(c.Request().Context(), owner, usecase.UpdateProfileInput{
		Name:          req.Name,
		Phone:         req.Phone,
		CompanyName:   req.CompanyName,
		ServiceArea:   req.ServiceArea,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, profile)
}

func (h *ProfileHandler) UploadPhoto(c echo.Context) error {
	owner, err := h.owner(c)
	if err != nil {
		return response.Error(c, err)
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid photo", err))
	}
	src, err := file.Open()
	if err != nil {
		logger.Error("Error opening uploaded photo: %v", err)
		return response.Error(c, errors.Internal("Failed to read photo", err))
	}
	defer src.Close()

	url, err := h.profileUseCase.UploadPhoto(c.Request().Context(), owner, src, file.Header.Get("Content-Type"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"photo_url": url})
}
