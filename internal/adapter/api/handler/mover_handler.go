package handler

import (
	"io"

	"github.com/labstack/echo/v4"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/usecase"
	"moverconnect/pkg/errors"
	"moverconnect/pkg/logger"
	"moverconnect/pkg/response"
)

type MoverHandler struct {
	moverUseCase  *usecase.MoverUseCase
	reviewUseCase *usecase.ReviewUseCase
}

func NewMoverHandler(moverUseCase *usecase.MoverUseCase, reviewUseCase *usecase.ReviewUseCase) *MoverHandler {
	return &MoverHandler{
		moverUseCase:  moverUseCase,
		reviewUseCase: reviewUseCase,
	}
}

type availabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

// ListMovers supports ?q=, ?availability=available|unavailable and
// ?verification=pending|approved|rejected.
func (h *MoverHandler) ListMovers(c echo.Context) error {
	query := usecase.MoverQuery{
		Search:       c.QueryParam("q"),
		Availability: c.QueryParam("availability"),
		Verification: entity.VerificationStatus(c.QueryParam("verification")),
	}
	if query.Availability != "" && query.Availability != entity.AvailabilityAvailable && query.Availability != entity.AvailabilityUnavailable {
		return response.Error(c, errors.BadRequest("availability must be available or unavailable", nil))
	}
	if query.Verification != "" && !query.Verification.Valid() {
		return response.Error(c, errors.BadRequest("verification must be pending, approved or rejected", nil))
	}

	movers, err := h.moverUseCase.ListMovers(c.Request().Context(), query)
	if err != nil {
		return response.Error(c, err)
	}
	return response.List(c, movers, len(movers))
}

func (h *MoverHandler) SetAvailability(c echo.Context) error {
	uid, _ := currentUser(c)

	var req availabilityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	mover, err := h.moverUseCase.SetAvailability(c.Request().Context(), uid, *req.Available)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, mover)
}

// UploadCredentials accepts any number of files in the multipart field
// "files".
func (h *MoverHandler) UploadCredentials(c echo.Context) error {
	uid, _ := currentUser(c)

	form, err := c.MultipartForm()
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid files", err))
	}
	headers := form.File["files"]
	logger.Debug("Credential upload for %s with %d files", uid, len(headers))

	files := make([]usecase.CredentialFile, 0, len(headers))
	for _, fh := range headers {
		files = append(files, usecase.CredentialFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}

	result, err := h.moverUseCase.UploadCredentials(c.Request().Context(), uid, files)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}

func (h *MoverHandler) GetRating(c echo.Context) error {
	rating, err := h.reviewUseCase.GetMoverRating(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, rating)
}
