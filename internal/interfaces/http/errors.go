package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
)

// InsufficientStockResponse error 409 con el contexto completo del rechazo,
// para que el cliente pueda armar un mensaje útil.
type InsufficientStockResponse struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	ProductName  string `json:"product_name"`
	CurrentStock int64  `json:"current_stock"`
	RequestedQty int64  `json:"requested_quantity"`
}

// respondDomainError traduce errores de dominio a códigos HTTP. Los errores de
// almacenamiento (no tipados) terminan en 500.
func respondDomainError(c *fiber.Ctx, err error) error {
	var notFound *domain.ProductNotFoundError
	var invalidMov *domain.InvalidMovementError
	var insufficient *domain.InsufficientStockError
	var invalidState *domain.InvalidStateError

	switch {
	case errors.As(err, &invalidMov):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_MOVEMENT", Message: err.Error()})
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.As(err, &insufficient):
		return c.Status(fiber.StatusConflict).JSON(InsufficientStockResponse{
			Code:         "INSUFFICIENT_STOCK",
			Message:      err.Error(),
			ProductName:  insufficient.ProductName,
			CurrentStock: insufficient.CurrentStock,
			RequestedQty: insufficient.Requested,
		})
	case errors.As(err, &invalidState):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicateName):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_NAME", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
