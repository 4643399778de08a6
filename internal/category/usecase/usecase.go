package usecase

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/apperr"
	"github.com/fekuna/omnipos-storefront-service/internal/category"
	"github.com/fekuna/omnipos-storefront-service/internal/category/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	nonSlugRe    = regexp.MustCompile(`[^a-z0-9-]`)
)

// Slugify derives the URL slug from a category name: lowercase, whitespace
// to hyphens, everything outside [a-z0-9-] stripped.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = whitespaceRe.ReplaceAllString(slug, "-")
	return nonSlugRe.ReplaceAllString(slug, "")
}

type categoryUseCase struct {
	repo   category.Repository
	logger *zap.Logger
}

func NewCategoryUseCase(repo category.Repository, log *zap.Logger) category.UseCase {
	return &categoryUseCase{repo: repo, logger: log}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, orgID string, input *dto.CategoryInput) (*model.Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperr.InvalidInput("category name is required")
	}

	cat := &model.Category{
		CategoryID:       "cat_" + uuid.New().String(),
		OrganizationID:   orgID,
		Name:             input.Name,
		Slug:             Slugify(input.Name),
		Description:      input.Description,
		ImageURL:         input.ImageURL,
		ParentCategoryID: input.ParentCategoryID,
	}

	if err := uc.repo.Save(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, orgID, categoryID string, input *dto.CategoryInput) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, orgID, categoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperr.NotFound("category %s not found", categoryID)
	}

	cat.Name = input.Name
	cat.Slug = Slugify(input.Name)
	cat.Description = input.Description
	cat.ImageURL = input.ImageURL
	cat.ParentCategoryID = input.ParentCategoryID

	if err := uc.repo.Save(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, orgID string) ([]model.Category, error) {
	return uc.repo.FindAllByOrg(ctx, orgID)
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, orgID, categoryID string) error {
	// TODO: reject deletion while products still reference the category.
	return uc.repo.Delete(ctx, orgID, categoryID)
}
