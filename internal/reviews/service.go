package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amara-cosmetics/amara-backend/pkg/db"
	"github.com/amara-cosmetics/amara-backend/pkg/db/models"
	pkgerrors "github.com/amara-cosmetics/amara-backend/pkg/errors"
)

// CreateReviewRequest carries the rating payload for one product.
type CreateReviewRequest struct {
	Rating  int     `json:"rating" validate:"required,gte=1,lte=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

// ReviewDTO is the public view of a review row with the reviewer's name.
type ReviewDTO struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"product_id"`
	UserID       uuid.UUID `json:"user_id"`
	ReviewerName string    `json:"reviewer_name,omitempty"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReviewsPageDTO is a cursor-paginated review listing with the aggregate.
type ReviewsPageDTO struct {
	Reviews       []ReviewDTO `json:"reviews"`
	AverageRating float64     `json:"average_rating"`
	ReviewCount   int         `json:"review_count"`
	NextCursor    string      `json:"next_cursor,omitempty"`
}

type productFinder interface {
	FindActiveProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes review reads and writes.
type Service interface {
	ListReviews(ctx context.Context, productID uuid.UUID, cursor string, limit int) (ReviewsPageDTO, error)
	CreateReview(ctx context.Context, userID, productID uuid.UUID, req CreateReviewRequest) (ReviewDTO, error)
	DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) error
}

// ServiceParams groups dependencies for the review service.
type ServiceParams struct {
	ReviewRepo  *Repository
	CatalogRepo productFinder
}

type service struct {
	reviews *Repository
	catalog productFinder
}

// NewService builds a review service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ReviewRepo == nil {
		return nil, fmt.Errorf("review repository is required")
	}
	if params.CatalogRepo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	return &service{reviews: params.ReviewRepo, catalog: params.CatalogRepo}, nil
}

// ListReviews returns the product's reviews plus the computed aggregate.
func (s *service) ListReviews(ctx context.Context, productID uuid.UUID, cursor string, limit int) (ReviewsPageDTO, error) {
	if productID == uuid.Nil {
		return ReviewsPageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	rows, nextCursor, err := s.reviews.ListByProduct(ctx, productID, cursor, limit)
	if err != nil {
		return ReviewsPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	summary, err := s.reviews.SummaryForProduct(ctx, productID)
	if err != nil {
		return ReviewsPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load review summary")
	}

	reviews := make([]ReviewDTO, 0, len(rows))
	for i := range rows {
		reviews = append(reviews, fromModel(&rows[i]))
	}
	return ReviewsPageDTO{
		Reviews:       reviews,
		AverageRating: summary.Average,
		ReviewCount:   summary.Count,
		NextCursor:    nextCursor,
	}, nil
}

// CreateReview validates the product and rating bounds then stores the review.
func (s *service) CreateReview(ctx context.Context, userID, productID uuid.UUID, req CreateReviewRequest) (ReviewDTO, error) {
	if userID == uuid.Nil {
		return ReviewDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if productID == uuid.Nil {
		return ReviewDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return ReviewDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if req.Comment != nil && strings.TrimSpace(*req.Comment) == "" {
		req.Comment = nil
	}

	if _, err := s.catalog.FindActiveProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	review := &models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if _, err := s.reviews.Create(ctx, review); err != nil {
		if db.IsUniqueViolation(err, "reviews_product_user_key") {
			return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product already reviewed")
		}
		return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}
	return fromModel(review), nil
}

// DeleteReview removes the caller's own review.
func (s *service) DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) error {
	if userID == uuid.Nil || reviewID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id and review id are required")
	}
	affected, err := s.reviews.Delete(ctx, reviewID, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete review")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
	}
	return nil
}

func fromModel(review *models.Review) ReviewDTO {
	dto := ReviewDTO{
		ID:        review.ID,
		ProductID: review.ProductID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
	if review.User != nil {
		dto.ReviewerName = review.User.FullName
	}
	return dto
}
