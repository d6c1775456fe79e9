package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zoobutik/zoobutik.bg/internal/domain"
	"github.com/zoobutik/zoobutik.bg/internal/repository"
	apperrors "github.com/zoobutik/zoobutik.bg/pkg/errors"
	"github.com/zoobutik/zoobutik.bg/pkg/slug"
)

// CategoryInput holds the fields for creating or updating a category. Slug is
// optional: when empty it is derived from the name by transliteration.
type CategoryInput struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	Slug      string `json:"slug" validate:"max=100"`
	ParentID  *int64 `json:"parent_id"`
	Visible   bool   `json:"visible"`
	SortOrder int    `json:"sort_order"`
	Href      string `json:"href" validate:"max=200"`
	Icon      string `json:"icon" validate:"max=40"`
}

// NavigationService implements the navigation tree and the admin category CRUD.
type NavigationService struct {
	repo   repository.CategoryRepository
	logger *slog.Logger
}

// NewNavigationService creates a new navigation service.
func NewNavigationService(repo repository.CategoryRepository, logger *slog.Logger) *NavigationService {
	return &NavigationService{
		repo:   repo,
		logger: logger,
	}
}

// Tree returns the two-level navigation tree of visible categories.
func (s *NavigationService) Tree(ctx context.Context) ([]domain.NavigationNode, error) {
	categories, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("build navigation tree: %w", err)
	}

	return domain.BuildNavigationTree(categories), nil
}

// ListCategories returns every category for the admin back-office.
func (s *NavigationService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListAll(ctx)
}

// GetCategory retrieves a category by id.
func (s *NavigationService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateCategory creates a new category, deriving the slug from the name if
// none was supplied. Only one level of nesting is allowed: a parent must be a
// top-level category.
func (s *NavigationService) CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	if err := s.validateParent(ctx, input.ParentID, 0); err != nil {
		return nil, err
	}

	catSlug := input.Slug
	if catSlug == "" {
		catSlug = slug.Generate(input.Name)
	}
	if catSlug == "" {
		return nil, apperrors.InvalidInput("category name yields an empty slug")
	}

	now := time.Now().UTC()
	c := &domain.Category{
		Name:      input.Name,
		Slug:      catSlug,
		ParentID:  input.ParentID,
		Visible:   input.Visible,
		SortOrder: input.SortOrder,
		Href:      input.Href,
		Icon:      input.Icon,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.logger.InfoContext(ctx, "category created",
		slog.Int64("category_id", c.ID),
		slog.String("slug", c.Slug),
	)

	return c, nil
}

// UpdateCategory updates an existing category.
func (s *NavigationService) UpdateCategory(ctx context.Context, id int64, input CategoryInput) (*domain.Category, error) {
	if err := s.validateParent(ctx, input.ParentID, id); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	catSlug := input.Slug
	if catSlug == "" {
		catSlug = slug.Generate(input.Name)
	}
	if catSlug == "" {
		return nil, apperrors.InvalidInput("category name yields an empty slug")
	}

	c.Name = input.Name
	c.Slug = catSlug
	c.ParentID = input.ParentID
	c.Visible = input.Visible
	c.SortOrder = input.SortOrder
	c.Href = input.Href
	c.Icon = input.Icon

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	s.logger.InfoContext(ctx, "category updated",
		slog.Int64("category_id", c.ID),
	)

	return c, nil
}

// DeleteCategory removes a category. Its children become orphans and drop out
// of the navigation tree until reassigned.
func (s *NavigationService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "category deleted",
		slog.Int64("category_id", id),
	)

	return nil
}

// validateParent checks that the declared parent exists and is itself
// top-level. selfID guards against a category becoming its own parent.
func (s *NavigationService) validateParent(ctx context.Context, parentID *int64, selfID int64) error {
	if parentID == nil {
		return nil
	}
	if selfID != 0 && *parentID == selfID {
		return apperrors.InvalidInput("category cannot be its own parent")
	}

	parent, err := s.repo.GetByID(ctx, *parentID)
	if err != nil {
		return fmt.Errorf("validate parent category: %w", err)
	}
	if parent.ParentID != nil {
		return apperrors.InvalidInput("navigation supports two levels only; parent must be a top-level category")
	}

	return nil
}
