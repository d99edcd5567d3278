package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/splitledger/cmd/docs"
	"github.com/SscSPs/splitledger/internal/apperrors"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/SscSPs/splitledger/internal/middleware"
	"github.com/SscSPs/splitledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterValidators installs the decimal validations on gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return dto.RegisterValidations(v)
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", getHealth)

	setupAPIV1Routes(r, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1", middleware.UserIdentity())
	workplace := v1.Group("/workplaces/:workplace_id")

	RegisterLedgerRoutes(workplace, services.Ledger)
	RegisterInvoiceRoutes(workplace, services.Invoice)
	RegisterSettlementRoutes(workplace, services.Settlement)
	RegisterInstallmentRoutes(workplace, services.Installment)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// requestScope pulls the workplace and caller out of a request under the workplace group.
func requestScope(c *gin.Context) (workplaceID string, userID string, logger *slog.Logger, ok bool) {
	logger = middleware.GetLoggerFromContext(c)
	userID, ok = middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", logger, false
	}
	workplaceID = c.Param("workplace_id")
	if workplaceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "workplace_id is required"})
		return "", "", logger, false
	}
	return workplaceID, userID, logger.With(slog.String("workplace_id", workplaceID), slog.String("user_id", userID)), true
}

// respondServiceError maps service errors onto HTTP statuses. Unexpected errors
// are logged and reported with fallback so internals do not leak.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrDivisionByZero):
		logger.Warn("Rejected request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
