package dto

type SinglePresignedURLRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

type SinglePresignedURLResponse struct {
	ObjectKey string `json:"object_key"`
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}

type MultiplePresignedURLsRequest struct {
	Files []SinglePresignedURLRequest `json:"files" binding:"omitempty,dive"`
}

type MultiplePresignedURLsResponse struct {
	URLs []SinglePresignedURLResponse `json:"urls"`
}
