package media

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/media/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type UseCase interface {
	AddImage(ctx context.Context, orgID, productID string, file *dto.UploadedFile, altText string, displayOrder int) (*model.Product, error)
	DeleteImage(ctx context.Context, orgID, productID, assetID string) (*model.Product, error)
	ReplaceImageSet(ctx context.Context, orgID, productID string, input *dto.ReplaceImageSetInput) (*model.Product, error)
}
