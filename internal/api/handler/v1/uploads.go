package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubhouse-hq/clubhouse-api/internal/api/handler/v1/response"
	"github.com/clubhouse-hq/clubhouse-api/internal/pkg/imagestore"
)

const uploadField = "image"

type ImageStore interface {
	Save(ctx context.Context, r io.Reader) (string, error)
}

type UploadHandler struct {
	store ImageStore
}

func NewUploadHandler(store ImageStore) *UploadHandler {
	return &UploadHandler{
		store: store,
	}
}

// HandleUploadImage godoc
// @Summary      Upload an image
// @Description  Stores a JPEG, PNG, GIF or WebP image and returns the URL to reference it by.
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "image file"
// @Success      201    {object}  response.Envelope{data=response.UploadedImage}
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /uploads/images [post]
// @Security     BearerAuth
func (h *UploadHandler) HandleUploadImage(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile(uploadField)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("multipart field %q is required", uploadField)))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	defer file.Close()

	url, err := h.store.Save(ctx.Request.Context(), file)
	if err != nil {
		if errors.Is(err, imagestore.ErrTooLarge) || errors.Is(err, imagestore.ErrUnsupportedType) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleUploadImage -> h.store.Save -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusCreated, "Image uploaded successfully", response.UploadedImage{URL: url})
}
