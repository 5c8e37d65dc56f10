package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

var catalogStatus = map[string]int{
	model.ErrCodeProductNotFound:   http.StatusNotFound,
	model.ErrCodeCategoryNotFound:  http.StatusNotFound,
	model.ErrCodeCategoryExists:    http.StatusConflict,
	model.ErrCodeCategoryInUse:     http.StatusConflict,
	model.ErrCodeSizeNotFound:      http.StatusBadRequest,
	model.ErrCodeInsufficientStock: http.StatusBadRequest,
	model.ErrCodeStockMismatch:     http.StatusBadRequest,
	model.ErrCodeOfferPriceMissing: http.StatusBadRequest,
	model.ErrCodeInvalidImage:      http.StatusBadRequest,
	model.ErrCodeProductInactive:   http.StatusBadRequest,
}

func handleServiceError(c *gin.Context, err error) {
	var catErr *model.CatalogError
	if errors.As(err, &catErr) {
		status, ok := catalogStatus[catErr.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		response.Error(c, status, catErr.Code, catErr.Message, nil)
		return
	}

	logger.Error("catalog request failed", err)
	response.InternalServerError(c)
}
