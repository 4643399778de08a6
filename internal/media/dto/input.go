package dto

// UploadedFile is one decoded multipart part.
type UploadedFile struct {
	Data        []byte
	ContentType string
}

// ImageInstruction describes what should happen to one slot of a product's
// image set during a full replace. An empty AssetID marks a new image whose
// bytes arrive positionally in the files list.
type ImageInstruction struct {
	AssetID      string `json:"asset_id"`
	AltText      string `json:"alt_text"`
	DisplayOrder int    `json:"display_order"`
	Delete       bool   `json:"delete"`
}

type ReplaceImageSetInput struct {
	Instructions []ImageInstruction
	Files        []*UploadedFile
}
