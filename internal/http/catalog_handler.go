package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"storefront-backend/internal/domain"
	"storefront-backend/internal/repository"

	"github.com/go-chi/chi/v5"
)

// CatalogHandler covers the per-store catalog surface: categories, products,
// and the promotional carousel.
type CatalogHandler struct {
	repo *repository.Repository
}

func NewCatalogHandler(repo *repository.Repository) *CatalogHandler {
	return &CatalogHandler{repo: repo}
}

// ---- categories ----

type categoryDTO struct {
	CategoryName string `json:"categoryName"`
}

// POST /api/v1/stores/{storeID}/categories
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	storeID, ok := storeIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid store id")
		return
	}
	if !authorizeStoreOwner(w, r, h.repo, storeID) {
		return
	}
	var req categoryDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.CategoryName == "" {
		respondError(w, http.StatusBadRequest, "categoryName is required")
		return
	}
	category, err := h.repo.CreateCategory(r.Context(), storeID, req.CategoryName)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

// GET /api/v1/stores/{storeID}/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	storeID, ok := storeIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid store id")
		return
	}
	categories, err := h.repo.ListCategories(r.Context(), storeID)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

// GET /api/v1/stores/{storeID}/categories/{categoryID}
func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.ParseInt(chi.URLParam(r, "categoryID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	category, rerr := h.repo.GetCategory(r.Context(), categoryID)
	if rerr != nil {
		respondRepoError(w, rerr)
		return
	}
	respondJSON(w, http.StatusOK, category)
}

// PUT /api/v1/stores/{storeID}/categories/{categoryID}
func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	storeID, ok := storeIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid store id")
		return
	}
	if !authorizeStoreOwner(w, r, h.repo, storeID) {
		return
	}
	categoryID, err := strconv.ParseInt(chi.URLParam(r, "categoryID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	var req categoryDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.CategoryName == "" {
		respondError(w, http.StatusBadRequest, "categoryName is required")
		return
	}
	category, rerr := h.repo.UpdateCategory(r.Context(), categoryID, req.CategoryName)
	if rerr != nil {
		respondRepoError(w, rerr)
		return
	}
	respondJSON(w, http.StatusOK, category)
}

// DELETE /api/v1/stores/{storeID}/categories/{categoryID}
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	storeID, ok := storeIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid store id")
		return
	}
	if !authorizeStoreOwner(w, r, h.repo, storeID) {
		return
	}
	categoryID, err := strconv.ParseInt(chi.URLParam(r, "categoryID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	if err := h.repo.DeleteCategory(r.Context(), categoryID); err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ---- products ----

type newProductDTO struct {
	CategoryName       string  `json:"categoryName"`
	ProductName        string  `json:"productName"`
	ProductDescription string  `json:"productDescription"`
	Image              string  `json:"image"`
	Price              float64 `json:"price"`
	Qty                int     `json:"qty"`
}

// POST /api/v1/stores/{storeID}/products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	storeID, ok := storeIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid store id")
		return
	}
	if !authorizeStoreOwner(w, r, h.repo, storeID) {
		return
	}
	var req newProductDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ProductName == "" || req.CategoryName == "" {
		respondError(w, http.StatusBadRequest, "productName and categoryName are required")
		return
	}
	if req.Price < 0 || req.Qty < 0 {
		respondError(w, http.StatusBadRequest, "price and qty must not be negative")
		return
	}
	productID, err := h.repo.CreateProduct(r.Context(), storeID, repository.NewProduct{
		CategoryName: req.CategoryName,
		Name:         req.ProductName,
		Description:  req.ProductDescription,
		Image:        req.Image,
		Price:        req.Price,
		Qty:          req.Qty,
	})
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]int64{"productId": productID})
}

// GET /api/v1/stores/{storeID}/products?search=&minPrice=&maxPrice=
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	storeID, ok := storeIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid store id")
		return
	}

	filter := domain.ProductFilter{Search: r.URL.Query().Get("search")}
	if v := r.URL.Query().Get("minPrice"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid minPrice")
			return
		}
		filter.MinPrice = &min
	}
	if v := r.URL.Query().Get("maxPrice"); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid maxPrice")
			return
		}
		filter.MaxPrice = &max
	}

	products, err := h.repo.ListProducts(r.Context(), storeID, filter)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// GET /api/v1/stores/{storeID}/products/{productID}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	product, rerr := h.repo.GetProduct(r.Context(), productID)
	if rerr != nil {
		respondRepoError(w, rerr)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

type updateProductDTO struct {
	ProductName        *string  `json:"productName"`
	ProductDescription *string  `json:"productDescription"`
	Image              *string  `json:"image"`
	Price              *float64 `json:"price"`
	Qty                *int     `json:"qty"`
}

// PUT /api/v1/stores/{storeID}/products/{productID}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	storeID, ok := storeIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid store id")
		return
	}
	if !authorizeStoreOwner(w, r, h.repo, storeID) {
		return
	}
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var req updateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	product, rerr := h.repo.UpdateProduct(r.Context(), productID, repository.ProductUpdate{
		Name:        req.ProductName,
		Description: req.ProductDescription,
		Image:       req.Image,
		Price:       req.Price,
		Qty:         req.Qty,
	})
	if rerr != nil {
		respondRepoError(w, rerr)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// DELETE /api/v1/stores/{storeID}/products/{productID}
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	storeID, ok := storeIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid store id")
		return
	}
	if !authorizeStoreOwner(w, r, h.repo, storeID) {
		return
	}
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	if err := h.repo.DeleteProduct(r.Context(), productID); err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ---- carousel ----

type carouselDTO struct {
	ImageOne       string `json:"imageOne"`
	ImageOneHeader string `json:"imageOneHeader"`
	ImageOneText   string `json:"imageOneText"`
	ImageTwo       string `json:"imageTwo"`
	ImageTwoHeader string `json:"imageTwoHeader"`
	ImageTwoText   string `json:"imageTwoText"`
}

// POST /api/v1/stores/{storeID}/carousel
func (h *CatalogHandler) CreateCarousel(w http.ResponseWriter, r *http.Request) {
	storeID, ok := storeIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid store id")
		return
	}
	if !authorizeStoreOwner(w, r, h.repo, storeID) {
		return
	}
	var req carouselDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	id, err := h.repo.CreateCarousel(r.Context(), domain.Carousel{
		StoreID:        storeID,
		ImageOne:       req.ImageOne,
		ImageOneHeader: req.ImageOneHeader,
		ImageOneText:   req.ImageOneText,
		ImageTwo:       req.ImageTwo,
		ImageTwoHeader: req.ImageTwoHeader,
		ImageTwoText:   req.ImageTwoText,
	})
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// GET /api/v1/stores/{storeID}/carousel
func (h *CatalogHandler) GetCarousel(w http.ResponseWriter, r *http.Request) {
	storeID, ok := storeIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid store id")
		return
	}
	carousel, err := h.repo.GetCarousel(r.Context(), storeID)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, carousel)
}

type updateCarouselDTO struct {
	ImageOne       *string `json:"imageOne"`
	ImageOneHeader *string `json:"imageOneHeader"`
	ImageOneText   *string `json:"imageOneText"`
	ImageTwo       *string `json:"imageTwo"`
	ImageTwoHeader *string `json:"imageTwoHeader"`
	ImageTwoText   *string `json:"imageTwoText"`
}

// PUT /api/v1/stores/{storeID}/carousel
func (h *CatalogHandler) UpdateCarousel(w http.ResponseWriter, r *http.Request) {
	storeID, ok := storeIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid store id")
		return
	}
	if !authorizeStoreOwner(w, r, h.repo, storeID) {
		return
	}
	var req updateCarouselDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	carousel, err := h.repo.UpdateCarousel(r.Context(), storeID, repository.CarouselUpdate{
		ImageOne:       req.ImageOne,
		ImageOneHeader: req.ImageOneHeader,
		ImageOneText:   req.ImageOneText,
		ImageTwo:       req.ImageTwo,
		ImageTwoHeader: req.ImageTwoHeader,
		ImageTwoText:   req.ImageTwoText,
	})
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, carousel)
}
