package handler

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog"
	catalogdto "github.com/fekuna/omnipos-storefront-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/httputil"
	"github.com/fekuna/omnipos-storefront-service/internal/media"
	"github.com/fekuna/omnipos-storefront-service/internal/media/dto"
)

type MediaHandler struct {
	uc      media.UseCase
	catalog catalog.UseCase
	logger  *zap.Logger
}

func NewMediaHandler(uc media.UseCase, catalogUC catalog.UseCase, log *zap.Logger) *MediaHandler {
	return &MediaHandler{uc: uc, catalog: catalogUC, logger: log}
}

// UploadImage accepts one multipart file part named "image" with optional
// altText and displayOrder form values.
func (h *MediaHandler) UploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "multipart part 'image' is required"})
	}

	file, err := readPart(fileHeader)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not read uploaded file"})
	}

	displayOrder := 0
	if raw := c.FormValue("displayOrder"); raw != "" {
		displayOrder, _ = strconv.Atoi(raw)
	}

	product, err := h.uc.AddImage(c.Request().Context(), auth.OrgID(c), c.Param("productId"), file, c.FormValue("altText"), displayOrder)
	if err != nil {
		return httputil.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *MediaHandler) DeleteImage(c echo.Context) error {
	product, err := h.uc.DeleteImage(c.Request().Context(), auth.OrgID(c), c.Param("productId"), c.Param("assetId"))
	if err != nil {
		return httputil.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, product)
}

// fullUpdatePayload is the JSON carried in the "product" part of a full
// product update: the enrichment patch plus the image set instructions.
type fullUpdatePayload struct {
	catalogdto.EnrichProductInput
	Images []dto.ImageInstruction `json:"images"`
}

// UpdateProduct is the single-call product editor: enrichment fields and the
// complete image set edit travel together in one multipart request. The
// "product" part holds JSON; file parts named "images" arrive in the order of
// the new-image instructions.
func (h *MediaHandler) UpdateProduct(c echo.Context) error {
	raw := c.FormValue("product")
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "multipart part 'product' is required"})
	}

	var payload fullUpdatePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "malformed product payload"})
	}

	orgID := auth.OrgID(c)
	productID := c.Param("productId")

	product, err := h.catalog.EnrichProduct(c.Request().Context(), orgID, productID, &payload.EnrichProductInput)
	if err != nil {
		return httputil.RespondError(c, h.logger, err)
	}

	files, err := h.collectFiles(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not read uploaded files"})
	}

	if len(payload.Images) > 0 || len(files) > 0 {
		product, err = h.uc.ReplaceImageSet(c.Request().Context(), orgID, productID, &dto.ReplaceImageSetInput{
			Instructions: payload.Images,
			Files:        files,
		})
		if err != nil {
			return httputil.RespondError(c, h.logger, err)
		}
	}

	return c.JSON(http.StatusOK, product)
}

func (h *MediaHandler) collectFiles(c echo.Context) ([]*dto.UploadedFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	var files []*dto.UploadedFile
	for _, fh := range form.File["images"] {
		file, err := readPart(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

func readPart(fh *multipart.FileHeader) (*dto.UploadedFile, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return &dto.UploadedFile{
		Data:        data,
		ContentType: fh.Header.Get("Content-Type"),
	}, nil
}
