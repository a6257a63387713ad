package controllers

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/Kariqs/amexan-commerce/models"
	"github.com/Kariqs/amexan-commerce/services"
	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateProduct(ctx *gin.Context) {
	var data models.ProductData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	product, err := h.svc.Catalog.CreateProduct(ctx.Request.Context(), caller(ctx), data)
	if err != nil {
		h.fail(ctx, "Failed to create product", err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Product created successfully", "product": product})
}

func (h *Handler) GetProducts(ctx *gin.Context) {
	filter := services.ProductFilter{
		Search:     ctx.Query("search"),
		CategoryID: uint(max(queryInt(ctx, "category", 0), 0)),
		Page:       pageQuery(ctx),
	}
	products, meta, err := h.svc.Catalog.ListProducts(ctx.Request.Context(), filter)
	if err != nil {
		h.fail(ctx, "Unable to fetch products", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"products": products, "metadata": meta})
}

func (h *Handler) GetProduct(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	product, err := h.svc.Catalog.GetProduct(ctx.Request.Context(), id)
	if err != nil {
		h.fail(ctx, "Product not found", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"product": product})
}

func (h *Handler) UpdateProduct(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var data models.ProductData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	product, err := h.svc.Catalog.UpdateProduct(ctx.Request.Context(), caller(ctx), id, data)
	if err != nil {
		h.fail(ctx, "Failed to update product", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
}

func (h *Handler) DeleteProduct(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	if err := h.svc.Catalog.DeleteProduct(ctx.Request.Context(), caller(ctx), id); err != nil {
		h.fail(ctx, "Failed to delete product", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func (h *Handler) UploadProductImages(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	form, err := ctx.MultipartForm()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	files := form.File["images"]
	uploads := make([]services.ImageUpload, 0, len(files))
	for _, file := range files {
		uploads = append(uploads, imageUpload(file))
	}

	result, err := h.svc.Catalog.AddProductImages(ctx.Request.Context(), caller(ctx), id, uploads)
	if err != nil {
		h.fail(ctx, "Failed to upload images", err)
		return
	}

	response := gin.H{"message": "Upload completed", "urls": result.Urls}
	status := http.StatusOK
	if len(result.Failed) > 0 {
		response["failed"] = result.Failed
		if len(result.Urls) == 0 {
			response["message"] = "All uploads failed"
			status = http.StatusInternalServerError
		} else {
			response["message"] = "Some uploads failed"
			status = http.StatusPartialContent
		}
	}
	sendJSONResponse(ctx, status, response)
}

func imageUpload(file *multipart.FileHeader) services.ImageUpload {
	return services.ImageUpload{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
		Open: func() (io.ReadCloser, error) {
			return file.Open()
		},
	}
}

func (h *Handler) GetProductReviews(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	reviews, err := h.svc.Reviews.ListProductReviews(ctx.Request.Context(), id)
	if err != nil {
		h.fail(ctx, "Unable to fetch reviews", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"reviews": reviews})
}
