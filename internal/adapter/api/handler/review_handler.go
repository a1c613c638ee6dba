package handler

import (
	"github.com/labstack/echo/v4"

	"moverconnect/internal/usecase"
	"moverconnect/pkg/response"
)

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
	}
}

type createReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	uid, _ := currentUser(c)

	var req createReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.reviewUseCase.CreateReview(c.Request().Context(), uid, c.Param("id"), usecase.CreateReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, review)
}

func (h *ReviewHandler) CheckReviewable(c echo.Context) error {
	uid, _ := currentUser(c)
	reviewable, err := h.reviewUseCase.CheckReviewable(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]bool{"reviewable": reviewable})
}

func (h *ReviewHandler) ListMyReviews(c echo.Context) error {
	uid, _ := currentUser(c)
	reviews, err := h.reviewUseCase.ListClientReviews(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.List(c, reviews, len(reviews))
}
