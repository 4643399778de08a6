package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/apperr"
	"github.com/fekuna/omnipos-storefront-service/internal/category/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type fakeCategoryRepo struct {
	categories map[string]*model.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[string]*model.Category{}}
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, orgID, categoryID string) (*model.Category, error) {
	c, ok := f.categories[orgID+"/"+categoryID]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategoryRepo) Save(_ context.Context, category *model.Category) error {
	cp := *category
	f.categories[category.OrganizationID+"/"+category.CategoryID] = &cp
	return nil
}

func (f *fakeCategoryRepo) FindAllByOrg(_ context.Context, orgID string) ([]model.Category, error) {
	var out []model.Category
	for _, c := range f.categories {
		if c.OrganizationID == orgID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, orgID, categoryID string) error {
	delete(f.categories, orgID+"/"+categoryID)
	return nil
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Medicines", "medicines"},
		{"spaces become hyphens", "Baby Care Products", "baby-care-products"},
		{"punctuation stripped", "Vitamins & Supplements!", "vitamins--supplements"},
		{"collapsed whitespace", "Skin   Care", "skin-care"},
		{"already a slug", "first-aid", "first-aid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestCreateCategory(t *testing.T) {
	repo := newFakeCategoryRepo()
	uc := NewCategoryUseCase(repo, zap.NewNop())

	cat, err := uc.CreateCategory(context.Background(), "org-1", &dto.CategoryInput{
		Name:        "Baby Care",
		Description: "Everything for infants",
	})
	require.NoError(t, err)

	assert.True(t, len(cat.CategoryID) > 4 && cat.CategoryID[:4] == "cat_")
	assert.Equal(t, "baby-care", cat.Slug)
	assert.Equal(t, "org-1", cat.OrganizationID)
	assert.Len(t, repo.categories, 1)
}

func TestCreateCategoryRequiresName(t *testing.T) {
	uc := NewCategoryUseCase(newFakeCategoryRepo(), zap.NewNop())

	_, err := uc.CreateCategory(context.Background(), "org-1", &dto.CategoryInput{Name: "   "})
	assert.True(t, apperr.IsInvalidInput(err))
}

func TestUpdateCategoryNotFound(t *testing.T) {
	uc := NewCategoryUseCase(newFakeCategoryRepo(), zap.NewNop())

	_, err := uc.UpdateCategory(context.Background(), "org-1", "cat_missing", &dto.CategoryInput{Name: "X"})
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdateCategoryRewritesSlug(t *testing.T) {
	repo := newFakeCategoryRepo()
	repo.categories["org-1/cat_1"] = &model.Category{
		CategoryID:     "cat_1",
		OrganizationID: "org-1",
		Name:           "Old Name",
		Slug:           "old-name",
	}
	uc := NewCategoryUseCase(repo, zap.NewNop())

	cat, err := uc.UpdateCategory(context.Background(), "org-1", "cat_1", &dto.CategoryInput{
		Name:             "Wound Care",
		ParentCategoryID: "cat_0",
	})
	require.NoError(t, err)

	assert.Equal(t, "wound-care", cat.Slug)
	assert.Equal(t, "cat_0", cat.ParentCategoryID)
}
