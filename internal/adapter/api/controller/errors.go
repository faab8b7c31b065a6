package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/adapter/api/dto"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/adapter/api/validation"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/adapter/repository"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/costcomponent"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/customer"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/order"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/pricing"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/procurement"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/product"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/report"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/transaction"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/service"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/logger"
)

var notFoundErrors = []error{
	repository.ErrCostComponentNotFound,
	repository.ErrProductNotFound,
	repository.ErrTransactionNotFound,
	repository.ErrCustomerNotFound,
	repository.ErrOrderNotFound,
	repository.ErrProcurementNotFound,
	order.ErrItemNotFound,
	procurement.ErrItemNotFound,
	procurement.ErrExpenseNotFound,
}

var conflictErrors = []error{
	order.ErrInvalidTransition,
	order.ErrOrderClosed,
	procurement.ErrInvalidTransition,
	procurement.ErrSessionCompleted,
	service.ErrPaidOrderDeletion,
	repository.ErrProductInUse,
	repository.ErrCustomerDuplicateKey,
}

var badRequestErrors = []error{
	costcomponent.ErrEmptyName,
	costcomponent.ErrNonPositiveCost,
	pricing.ErrNegativeBaseCost,
	pricing.ErrInvalidShrinkage,
	pricing.ErrNegativeComponent,
	product.ErrEmptyName,
	product.ErrNegativePrice,
	product.ErrNegativeStock,
	product.ErrInvalidPromoPrice,
	product.ErrNonPositiveQty,
	product.ErrNegativeTotalCost,
	transaction.ErrInvalidType,
	transaction.ErrNegativeAmount,
	transaction.ErrEmptyCategory,
	customer.ErrEmptyName,
	customer.ErrInvalidPhone,
	order.ErrEmptyCustomerName,
	order.ErrNoItems,
	order.ErrEmptyProductName,
	order.ErrNonPositiveQty,
	order.ErrNegativePrice,
	order.ErrNegativeAmount,
	order.ErrNegativeGrandTotal,
	order.ErrInvalidChannel,
	order.ErrInvalidStatus,
	procurement.ErrNoItems,
	procurement.ErrEmptyProductName,
	procurement.ErrNonPositiveQty,
	procurement.ErrNegativeCost,
	procurement.ErrEmptyExpenseName,
	procurement.ErrNonPositiveAmount,
	report.ErrInvalidMonth,
	report.ErrInvalidYear,
	service.ErrProductRequired,
	service.ErrProductInactive,
	service.ErrPriceRequired,
	repository.ErrOrderInvalidReference,
	dto.ErrInvalidDate,
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// statusFor traduz erros de domínio e repositório para o status HTTP
func statusFor(err error) int {
	switch {
	case matchesAny(err, notFoundErrors):
		return http.StatusNotFound
	case matchesAny(err, conflictErrors):
		return http.StatusConflict
	case matchesAny(err, badRequestErrors):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError escreve a resposta de erro. Erros inesperados são registrados no log.
func respondError(ctx *gin.Context, log logger.Logger, err error, message string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(message, "error", err, "path", ctx.FullPath())
	}
	ctx.JSON(status, dto.NewErrorResponse(status, message, err.Error()))
}

// bindError responde 400 para corpo inválido, com as regras violadas por
// campo quando o erro vem do validator
func bindError(ctx *gin.Context, err error) {
	resp := dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error())
	if fields := validation.ProcessValidationErrors(err); len(fields) > 0 {
		resp.Fields = fields
	}
	ctx.JSON(http.StatusBadRequest, resp)
}
