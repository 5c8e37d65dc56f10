package model

import "errors"

// =====================================================
// CUSTOM ERROR CODES
// =====================================================
const (
	ErrCodeProductNotFound   = "CAT001"
	ErrCodeCategoryNotFound  = "CAT002"
	ErrCodeCategoryExists    = "CAT003"
	ErrCodeSizeNotFound      = "CAT004"
	ErrCodeInsufficientStock = "CAT005"
	ErrCodeStockMismatch     = "CAT006"
	ErrCodeOfferPriceMissing = "CAT007"
	ErrCodeInvalidImage      = "CAT008"
	ErrCodeProductInactive   = "CAT009"
	ErrCodeCategoryInUse     = "CAT010"
)

// =====================================================
// ERROR DEFINITIONS
// =====================================================
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryExists    = errors.New("category already exists")
	ErrSizeNotFound      = errors.New("size not found for product")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrStockMismatch     = errors.New("sum of size stock must equal stock quantity")
	ErrOfferPriceMissing = errors.New("offer price is not set")
	ErrInvalidImage      = errors.New("invalid image")
	ErrProductInactive   = errors.New("product is not available")
	ErrCategoryInUse     = errors.New("category still has products")
)

// =====================================================
// CUSTOM ERROR TYPE
// =====================================================
type CatalogError struct {
	Code    string
	Message string
	Err     error
}

func (e *CatalogError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

func NewCatalogError(code, message string, err error) *CatalogError {
	return &CatalogError{Code: code, Message: message, Err: err}
}
