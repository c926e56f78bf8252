package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/youvit/gramedia-display-backend/internal/app/service"
	apperrors "github.com/youvit/gramedia-display-backend/internal/errors"
	"github.com/youvit/gramedia-display-backend/internal/middleware"
)

type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

type AddNameRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListStores returns the store catalog.
// GET /api/v1/stores
func (ctrl *CatalogController) ListStores(c *gin.Context) {
	ctrl.list(c, ctrl.catalogService.ListStores, "stores")
}

// ListEmployees returns the employee catalog.
// GET /api/v1/employees
func (ctrl *CatalogController) ListEmployees(c *gin.Context) {
	ctrl.list(c, ctrl.catalogService.ListEmployees, "employees")
}

// AddStore registers a new store name; adding an existing name is a no-op.
// POST /api/v1/stores
func (ctrl *CatalogController) AddStore(c *gin.Context) {
	ctrl.add(c, ctrl.catalogService.AddStore, "store")
}

// AddEmployee registers a new employee name.
// POST /api/v1/employees
func (ctrl *CatalogController) AddEmployee(c *gin.Context) {
	ctrl.add(c, ctrl.catalogService.AddEmployee, "employee")
}

func (ctrl *CatalogController) list(c *gin.Context, load func(ctx context.Context) ([]string, error), key string) {
	log := middleware.GetLoggerFromContext(c)

	names, err := load(c.Request.Context())
	if err != nil {
		log.Error("Failed to load catalog", err, map[string]interface{}{
			"catalog": key,
		})
		apperrors.BadGateway(c, apperrors.CatalogReadFailed, "Could not load "+key+". Please try again")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		key:     names,
		"count": len(names),
	})
}

func (ctrl *CatalogController) add(c *gin.Context, save func(ctx context.Context, name string) error, label string) {
	log := middleware.GetLoggerFromContext(c)

	var req AddNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid catalog add request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "A name is required")
		return
	}

	if err := save(c.Request.Context(), req.Name); err != nil {
		if errors.Is(err, service.ErrEmptyCatalogName) {
			apperrors.BadRequest(c, apperrors.CatalogEmptyName, "The "+label+" name must not be empty")
			return
		}
		log.Error("Failed to add catalog name", err, map[string]interface{}{
			"catalog": label,
		})
		apperrors.BadGateway(c, apperrors.CatalogWriteFailed, "Could not save the "+label+". Please try again")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"name": req.Name,
	})
}
