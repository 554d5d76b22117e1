package service

import (
	"context"
	"unicode/utf8"

	"wishlist_api/internal/common"
	"wishlist_api/internal/domain/model"
	"wishlist_api/internal/domain/repository"
)

const (
	titleMaxLen = 200
	linkMaxLen  = 500
	notesMaxLen = 1000

	DefaultListLimit = 10
	MaxListLimit     = 100
)

type WishService struct {
	wishRepo repository.WishRepository
}

func NewWishService(wishRepo repository.WishRepository) *WishService {
	return &WishService{wishRepo: wishRepo}
}

// CreateWishRequest deliberately has no owner field: whatever owner the
// client smuggles into the body is dropped during decoding, and the owner
// is taken from the principal alone.
type CreateWishRequest struct {
	Title         string   `json:"title"`
	Link          *string  `json:"link"`
	PriceEstimate *float64 `json:"price_estimate"`
	Notes         *string  `json:"notes"`
}

func (req *CreateWishRequest) Validate() error {
	fields := common.FieldErrors{}
	if n := utf8.RuneCountInString(req.Title); n < 1 || n > titleMaxLen {
		fields["title"] = "must be between 1 and 200 characters"
	}
	validateOptionalFields(fields, req.Link, req.PriceEstimate, req.Notes)
	if len(fields) > 0 {
		return common.NewValidationError(fields)
	}
	return nil
}

// UpdateWishRequest is a partial patch: nil means "leave unchanged".
type UpdateWishRequest struct {
	Title         *string  `json:"title"`
	Link          *string  `json:"link"`
	PriceEstimate *float64 `json:"price_estimate"`
	Notes         *string  `json:"notes"`
}

func (req *UpdateWishRequest) Validate() error {
	fields := common.FieldErrors{}
	if req.Title != nil {
		if n := utf8.RuneCountInString(*req.Title); n < 1 || n > titleMaxLen {
			fields["title"] = "must be between 1 and 200 characters"
		}
	}
	validateOptionalFields(fields, req.Link, req.PriceEstimate, req.Notes)
	if len(fields) > 0 {
		return common.NewValidationError(fields)
	}
	return nil
}

// Length limits count characters, matching the VARCHAR columns they guard.
func validateOptionalFields(fields common.FieldErrors, link *string, price *float64, notes *string) {
	if link != nil && utf8.RuneCountInString(*link) > linkMaxLen {
		fields["link"] = "must be at most 500 characters"
	}
	if price != nil && *price < 0 {
		fields["price_estimate"] = "must be non-negative"
	}
	if notes != nil && utf8.RuneCountInString(*notes) > notesMaxLen {
		fields["notes"] = "must be at most 1000 characters"
	}
}

type ListWishesQuery struct {
	Limit       int
	Offset      int
	PriceFilter *float64
}

func (q *ListWishesQuery) Validate() error {
	fields := common.FieldErrors{}
	if q.Limit < 1 || q.Limit > MaxListLimit {
		fields["limit"] = "must be between 1 and 100"
	}
	if q.Offset < 0 {
		fields["offset"] = "must be non-negative"
	}
	if q.PriceFilter != nil && *q.PriceFilter < 0 {
		fields["price_filter"] = "must be non-negative"
	}
	if len(fields) > 0 {
		return common.NewValidationError(fields)
	}
	return nil
}

type WishListResponse struct {
	Items  []model.Wish `json:"items"`
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

func (s *WishService) Create(ctx context.Context, principal model.Principal, req CreateWishRequest) (*model.Wish, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	wish := &model.Wish{
		Title:         req.Title,
		Link:          req.Link,
		PriceEstimate: req.PriceEstimate,
		Notes:         req.Notes,
		OwnerID:       principal.UserID, // never from the request body
	}
	if err := s.wishRepo.Create(ctx, wish); err != nil {
		return nil, err
	}
	return wish, nil
}

func (s *WishService) Get(ctx context.Context, principal model.Principal, id int64) (*model.Wish, error) {
	return s.wishRepo.FindByID(ctx, id, principal.OwnerScope())
}

func (s *WishService) List(ctx context.Context, principal model.Principal, query ListWishesQuery) (*WishListResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	items, total, err := s.wishRepo.List(ctx, principal.OwnerScope(), query.Limit, query.Offset, query.PriceFilter)
	if err != nil {
		return nil, err
	}
	return &WishListResponse{
		Items:  items,
		Total:  total,
		Limit:  query.Limit,
		Offset: query.Offset,
	}, nil
}

// Update applies a partial patch to a wish the principal can access. The
// scoped read already hides other owners' wishes as 404; the scoped write
// repeats the predicate so the window between the two cannot be abused.
func (s *WishService) Update(ctx context.Context, principal model.Principal, id int64, req UpdateWishRequest) (*model.Wish, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	scope := principal.OwnerScope()
	wish, err := s.wishRepo.FindByID(ctx, id, scope)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		wish.Title = *req.Title
	}
	if req.Link != nil {
		wish.Link = req.Link
	}
	if req.PriceEstimate != nil {
		wish.PriceEstimate = req.PriceEstimate
	}
	if req.Notes != nil {
		wish.Notes = req.Notes
	}

	if err := s.wishRepo.Update(ctx, wish, scope); err != nil {
		return nil, err
	}
	return wish, nil
}

func (s *WishService) Delete(ctx context.Context, principal model.Principal, id int64) error {
	return s.wishRepo.Delete(ctx, id, principal.OwnerScope())
}
