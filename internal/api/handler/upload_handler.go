package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/infrastructure/imagekit"
)

// UploadSigner issues short-lived direct-upload credentials.
type UploadSigner interface {
	Sign() imagekit.Credentials
}

// UploadHandler hands out CDN upload credentials so clients can upload
// images without routing the bytes through the API.
type UploadHandler struct {
	signer UploadSigner
}

func NewUploadHandler(signer UploadSigner) *UploadHandler {
	return &UploadHandler{signer: signer}
}

// Auth handles GET /posts/upload-auth.
//
// @Summary      Get direct-upload credentials for the image CDN
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  imagekit.Credentials
// @Failure      401  {object}  errorResponse
// @Router       /posts/upload-auth [get]
func (h *UploadHandler) Auth(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.signer.Sign())
}
