package usecase

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/apperr"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog"
	"github.com/fekuna/omnipos-storefront-service/internal/media"
	"github.com/fekuna/omnipos-storefront-service/internal/media/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/pkg/blobstore"
)

// Resolution variants generated for every uploaded image, alongside the
// untouched original.
var variants = []struct {
	name   string
	width  int
	height int
}{
	{"thumb_200x200", 200, 200},
	{"medium_600x600", 600, 600},
	{"large_1200x1200", 1200, 1200},
}

type mediaUseCase struct {
	repo   catalog.Repository
	store  blobstore.Store
	logger *zap.Logger
}

func NewMediaUseCase(repo catalog.Repository, store blobstore.Store, log *zap.Logger) media.UseCase {
	return &mediaUseCase{
		repo:   repo,
		store:  store,
		logger: log,
	}
}

// AddImage decodes the upload, writes the original plus three resized
// variants under images/{org}/{product}/{asset}/ and appends the asset to the
// product. Nothing is written to storage before the payload decodes.
func (uc *mediaUseCase) AddImage(ctx context.Context, orgID, productID string, file *dto.UploadedFile, altText string, displayOrder int) (*model.Product, error) {
	product, err := uc.repo.FindByID(ctx, orgID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperr.NotFound("product %s not found", productID)
	}

	asset, err := uc.uploadAsset(ctx, orgID, productID, file)
	if err != nil {
		return nil, err
	}
	if altText == "" {
		altText = product.ProductName + " image"
	}
	asset.AltText = altText
	asset.DisplayOrder = displayOrder

	product.Images = append(product.Images, *asset)
	sortImages(product.Images)

	if err := uc.repo.Save(ctx, product); err != nil {
		uc.logger.Error("image uploaded but product save failed; blobs orphaned",
			zap.String("product_id", productID),
			zap.String("asset_id", asset.AssetID),
			zap.Error(err))
		return nil, err
	}

	uc.logger.Info("image added",
		zap.String("product_id", productID),
		zap.String("asset_id", asset.AssetID))
	return product, nil
}

// DeleteImage removes every blob under the asset's prefix before updating the
// product document. An unknown assetID is a no-op; the document is not
// rewritten.
func (uc *mediaUseCase) DeleteImage(ctx context.Context, orgID, productID, assetID string) (*model.Product, error) {
	product, err := uc.repo.FindByID(ctx, orgID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperr.NotFound("product %s not found", productID)
	}

	idx := -1
	for i := range product.Images {
		if product.Images[i].AssetID == assetID {
			idx = i
			break
		}
	}
	if idx < 0 {
		uc.logger.Warn("delete requested for unknown image asset",
			zap.String("product_id", productID),
			zap.String("asset_id", assetID))
		return product, nil
	}

	if err := uc.deleteAssetBlobs(ctx, orgID, productID, assetID); err != nil {
		return nil, err
	}

	product.Images = append(product.Images[:idx], product.Images[idx+1:]...)
	if err := uc.repo.Save(ctx, product); err != nil {
		uc.logger.Error("image blobs deleted but product save failed",
			zap.String("product_id", productID),
			zap.String("asset_id", assetID),
			zap.Error(err))
		return nil, err
	}
	return product, nil
}

// ReplaceImageSet applies a full edit of a product's image set in one call:
// deletions, metadata updates on kept assets, and new uploads whose bytes are
// correlated positionally with the new-image instructions. Files beyond the
// instruction list are still stored, with synthesized alt text and a display
// order after the current maximum.
func (uc *mediaUseCase) ReplaceImageSet(ctx context.Context, orgID, productID string, input *dto.ReplaceImageSetInput) (*model.Product, error) {
	product, err := uc.repo.FindByID(ctx, orgID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperr.NotFound("product %s not found", productID)
	}

	existing := make(map[string]*model.ImageAsset, len(product.Images))
	for i := range product.Images {
		existing[product.Images[i].AssetID] = &product.Images[i]
	}

	deleted := make(map[string]bool)
	var newInstructions []dto.ImageInstruction
	for _, instr := range input.Instructions {
		switch {
		case instr.Delete:
			if instr.AssetID == "" {
				continue
			}
			if _, ok := existing[instr.AssetID]; !ok {
				uc.logger.Warn("replace set references unknown asset for deletion",
					zap.String("product_id", productID),
					zap.String("asset_id", instr.AssetID))
				continue
			}
			if err := uc.deleteAssetBlobs(ctx, orgID, productID, instr.AssetID); err != nil {
				return nil, err
			}
			deleted[instr.AssetID] = true
		case instr.AssetID != "":
			asset, ok := existing[instr.AssetID]
			if !ok {
				uc.logger.Warn("replace set references unknown asset",
					zap.String("product_id", productID),
					zap.String("asset_id", instr.AssetID))
				continue
			}
			asset.AltText = instr.AltText
			asset.DisplayOrder = instr.DisplayOrder
		default:
			newInstructions = append(newInstructions, instr)
		}
	}

	kept := product.Images[:0]
	for _, img := range product.Images {
		if !deleted[img.AssetID] {
			kept = append(kept, img)
		}
	}
	product.Images = kept

	maxOrder := 0
	for _, img := range product.Images {
		if img.DisplayOrder > maxOrder {
			maxOrder = img.DisplayOrder
		}
	}

	for i, file := range input.Files {
		if file == nil || len(file.Data) == 0 {
			uc.logger.Warn("skipping empty upload in replace set",
				zap.String("product_id", productID),
				zap.Int("position", i))
			continue
		}

		asset, err := uc.uploadAsset(ctx, orgID, productID, file)
		if err != nil {
			return nil, err
		}
		if i < len(newInstructions) {
			asset.AltText = newInstructions[i].AltText
			if asset.AltText == "" {
				asset.AltText = product.ProductName + " image"
			}
			asset.DisplayOrder = newInstructions[i].DisplayOrder
		} else {
			maxOrder++
			asset.AltText = fmt.Sprintf("%s image %d", product.ProductName, len(product.Images)+1)
			asset.DisplayOrder = maxOrder
		}
		product.Images = append(product.Images, *asset)
	}

	sortImages(product.Images)

	if err := uc.repo.Save(ctx, product); err != nil {
		return nil, err
	}

	uc.logger.Info("image set replaced",
		zap.String("product_id", productID),
		zap.Int("images", len(product.Images)))
	return product, nil
}

// uploadAsset stores the original and its resized variants, returning the
// asset with all four URLs populated but no alt text or display order yet.
func (uc *mediaUseCase) uploadAsset(ctx context.Context, orgID, productID string, file *dto.UploadedFile) (*model.ImageAsset, error) {
	if file == nil || len(file.Data) == 0 {
		return nil, apperr.InvalidInput("uploaded file is empty")
	}

	src, err := imaging.Decode(bytes.NewReader(file.Data))
	if err != nil {
		return nil, apperr.InvalidInput("uploaded file is not a supported image format")
	}

	assetID := "img_" + uuid.NewString()
	basePath := fmt.Sprintf("images/%s/%s/%s/", orgID, productID, assetID)

	asset := &model.ImageAsset{AssetID: assetID}

	originalURL, err := uc.store.Put(ctx, basePath+"original."+extensionFor(file.ContentType), file.Data, file.ContentType)
	if err != nil {
		return nil, apperr.Storage("original image upload", err)
	}
	asset.OriginalURL = originalURL

	for _, v := range variants {
		resized := imaging.Fit(src, v.width, v.height, imaging.Lanczos)

		var buf bytes.Buffer
		if err := imaging.Encode(&buf, resized, imaging.JPEG); err != nil {
			uc.logger.Error("variant encoding failed; original left in place",
				zap.String("asset_id", assetID),
				zap.String("variant", v.name),
				zap.Error(err))
			return nil, apperr.Storage("image variant encoding", err)
		}

		url, err := uc.store.Put(ctx, basePath+v.name+".jpg", buf.Bytes(), "image/jpeg")
		if err != nil {
			uc.logger.Error("variant upload failed; earlier blobs orphaned",
				zap.String("asset_id", assetID),
				zap.String("variant", v.name),
				zap.Error(err))
			return nil, apperr.Storage("image variant upload", err)
		}

		switch v.name {
		case "thumb_200x200":
			asset.ThumbnailURL = url
		case "medium_600x600":
			asset.MediumURL = url
		case "large_1200x1200":
			asset.LargeURL = url
		}
	}

	return asset, nil
}

// deleteAssetBlobs removes every object under the asset's prefix so a later
// re-upload of the same path never mixes generations.
func (uc *mediaUseCase) deleteAssetBlobs(ctx context.Context, orgID, productID, assetID string) error {
	prefix := fmt.Sprintf("images/%s/%s/%s/", orgID, productID, assetID)
	refs, err := uc.store.ListPrefix(ctx, prefix)
	if err != nil {
		return apperr.Storage("image blob listing", err)
	}
	for _, ref := range refs {
		if err := uc.store.Delete(ctx, ref.Path); err != nil {
			return apperr.Storage("image blob deletion", err)
		}
	}
	return nil
}

func sortImages(images []model.ImageAsset) {
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].DisplayOrder < images[j].DisplayOrder
	})
}

func extensionFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/bmp":
		return "bmp"
	case "image/webp":
		return "webp"
	default:
		return "jpg"
	}
}
