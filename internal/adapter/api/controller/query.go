package controller

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/adapter/api/dto"
)

// pagination lê page e size da query string
func pagination(ctx *gin.Context) dto.Pagination {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	return dto.GetPagination(page, size)
}

// dateRange lê from e to (inclusivos) da query string. O limite superior
// devolvido é exclusivo: o dia seguinte a "to".
func dateRange(ctx *gin.Context, loc *time.Location) (*time.Time, *time.Time, error) {
	from, err := dto.ParseDate(ctx.Query("from"), loc)
	if err != nil {
		return nil, nil, err
	}
	to, err := dto.ParseDate(ctx.Query("to"), loc)
	if err != nil {
		return nil, nil, err
	}

	var fromPtr, toPtr *time.Time
	if !from.IsZero() {
		fromPtr = &from
	}
	if !to.IsZero() {
		end := to.AddDate(0, 0, 1)
		toPtr = &end
	}
	return fromPtr, toPtr, nil
}
