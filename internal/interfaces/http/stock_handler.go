package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/stock"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
	"github.com/tu-usuario/almacen-api/pkg/metrics"
)

// StockHandler maneja las peticiones HTTP del motor de movimientos de stock.
type StockHandler struct {
	uc *stock.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// RegisterEntry godoc
// @Summary      Registrar entrada de stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, quantity, note"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/entries [post]
func (h *StockHandler) RegisterEntry(c *fiber.Ctx) error {
	return h.register(c, entity.KindEntry)
}

// RegisterExit godoc
// @Summary      Registrar salida de stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, quantity, note"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  InsufficientStockResponse
// @Router       /api/stock/exits [post]
func (h *StockHandler) RegisterExit(c *fiber.Ctx) error {
	return h.register(c, entity.KindExit)
}

func (h *StockHandler) register(c *fiber.Ctx, kind entity.MovementKind) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	var mov *entity.Movement
	var err error
	if kind == entity.KindEntry {
		mov, err = h.uc.RegisterEntry(c.Context(), in.ProductID, in.Quantity, in.Note)
	} else {
		mov, err = h.uc.RegisterExit(c.Context(), in.ProductID, in.Quantity, in.Note)
	}
	if err != nil {
		countRejection(err)
		return respondDomainError(c, err)
	}
	metrics.MovementsRegistered.WithLabelValues(string(kind)).Inc()
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(mov))
}

// countRejection clasifica el rechazo para el contador Prometheus.
func countRejection(err error) {
	var invalidMov *domain.InvalidMovementError
	var notFound *domain.ProductNotFoundError
	var insufficient *domain.InsufficientStockError
	switch {
	case errors.As(err, &invalidMov):
		metrics.MovementsRejected.WithLabelValues(metrics.ReasonInvalid).Inc()
	case errors.As(err, &notFound):
		metrics.MovementsRejected.WithLabelValues(metrics.ReasonNotFound).Inc()
	case errors.As(err, &insufficient):
		metrics.MovementsRejected.WithLabelValues(metrics.ReasonInsufficient).Inc()
	}
}

// ListMovements godoc
// @Summary      Listar movimientos del libro (más recientes primero)
// @Tags         stock
// @Produce      json
// @Param        product_id  query  int     false  "Filtrar por producto"
// @Param        kind        query  string  false  "Filtrar por tipo (entry|exit)"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var filter repository.MovementFilter

	if raw := c.Query("product_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "product_id inválido"})
		}
		filter.ProductID = &id
	}
	if raw := c.Query("kind"); raw != "" {
		kind, err := entity.ParseMovementKind(raw)
		if err != nil {
			return respondDomainError(c, err)
		}
		filter.Kind = &kind
	}

	movements, err := h.uc.ListMovements(c.Context(), filter)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.ToMovementResponses(movements))
}

// Balance godoc
// @Summary      Saldo recalculado desde el libro (independiente del contador)
// @Tags         stock
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/products/{id}/balance [get]
func (h *StockHandler) Balance(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}
	balance, err := h.uc.BalanceFromLedger(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.BalanceResponse{ProductID: id, Balance: balance})
}

// Reconcile godoc
// @Summary      Reescribir el stock con el saldo del libro (reparación de desvíos)
// @Tags         stock
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/products/{id}/reconcile [post]
func (h *StockHandler) Reconcile(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}
	product, err := h.uc.Reconcile(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.ToProductResponse(product))
}

// Availability godoc
// @Summary      Verificar suficiencia de stock sin efectos
// @Tags         stock
// @Produce      json
// @Param        id        path   int  true  "ID del producto"
// @Param        quantity  query  int  true  "Cantidad deseada"
// @Success      200  {object}  dto.AvailabilityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/products/{id}/availability [get]
func (h *StockHandler) Availability(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}
	quantity, err := strconv.ParseInt(c.Query("quantity"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity es obligatorio y numérico"})
	}
	available, err := h.uc.HasSufficientStock(c.Context(), id, quantity)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.AvailabilityResponse{ProductID: id, Quantity: quantity, Available: available})
}

// LowStock godoc
// @Summary      Productos con stock en o bajo el umbral (inclusivo)
// @Description  El umbral lo decide siempre el caller; no hay default.
// @Tags         stock
// @Produce      json
// @Param        threshold  query  int  true  "Umbral inclusivo"
// @Success      200  {array}   dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/low [get]
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	raw := c.Query("threshold")
	if raw == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "threshold es obligatorio"})
	}
	threshold, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "threshold debe ser numérico"})
	}
	products, err := h.uc.LowStockProducts(c.Context(), threshold)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.ToProductResponses(products))
}
