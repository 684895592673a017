package purchasing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	appstock "github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var orderSortColumns = map[string]string{
	"number":     "number",
	"status":     "status",
	"total_cost": "total_cost",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// UseCase ciclo de vida de órdenes de compra: DRAFT -> ORDERED ->
// PARTIALLY_RECEIVED -> RECEIVED, con CANCELLED desde DRAFT/ORDERED.
// La recepción actualiza renglones, stock y estado en UNA transacción.
type UseCase struct {
	txRunner     appstock.TxRunner
	orderRepo    repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	pdfGen       OrderPDFGenerator
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner appstock.TxRunner,
	orderRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	pdfGen OrderPDFGenerator,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		pdfGen:       pdfGen,
	}
}

// Create crea una orden en DRAFT con sus renglones y totales calculados.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID, false)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrInvalidInput
	}
	items, err := uc.buildItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:           uuid.New().String(),
		Number:       newOrderNumber(now),
		SupplierID:   in.SupplierID,
		Status:       entity.OrderStatusDraft,
		ExpectedDate: in.ExpectedDate,
		Notes:        in.Notes,
		Items:        items,
		Audit: entity.Audit{
			CreatedBy: userID,
			CreatedAt: now,
			UpdatedBy: userID,
			UpdatedAt: now,
		},
	}
	for i := range order.Items {
		order.Items[i].ID = uuid.New().String()
		order.Items[i].OrderID = order.ID
	}
	order.RecomputeTotal()
	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// buildItems valida productos y cantidades de los renglones entrantes.
func (uc *UseCase) buildItems(ctx context.Context, in []dto.OrderItemRequest) ([]entity.PurchaseOrderItem, error) {
	if len(in) == 0 {
		return nil, domain.ErrInvalidInput
	}
	seen := make(map[string]bool, len(in))
	items := make([]entity.PurchaseOrderItem, 0, len(in))
	for _, it := range in {
		if !it.Quantity.GreaterThan(decimal.Zero) || it.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if seen[it.ProductID] {
			return nil, domain.ErrInvalidInput
		}
		seen[it.ProductID] = true
		product, err := uc.productRepo.GetByID(ctx, it.ProductID, false)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrInvalidInput
		}
		items = append(items, entity.PurchaseOrderItem{
			ProductID:        it.ProductID,
			QuantityOrdered:  it.Quantity,
			QuantityReceived: decimal.Zero,
			UnitCost:         it.UnitCost,
		})
	}
	return items, nil
}

// GetByID obtiene una orden con sus renglones.
func (uc *UseCase) GetByID(ctx context.Context, id string, includeDeleted bool) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id, includeDeleted)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return toOrderResponse(order), nil
}

// List lista órdenes con filtros y paginación.
func (uc *UseCase) List(ctx context.Context, in dto.ListPurchaseOrdersRequest) (*dto.PurchaseOrderListResponse, error) {
	in.Normalize()
	f := repository.OrderFilter{
		ListParams: repository.ListParams{
			Limit:          in.Limit,
			Offset:         in.Offset(),
			SortBy:         orderSortBy(in.SortBy),
			SortOrder:      in.SortOrder,
			IncludeDeleted: in.IncludeDeleted,
		},
		SupplierID: in.SupplierID,
		Status:     in.Status,
	}
	list, total, err := uc.orderRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.PurchaseOrderListResponse{
		Items: items,
		Page:  dto.NewPageResponse(in.Page, in.Limit, total),
	}, nil
}

// Update modifica cabecera y renglones. Solo permitido en DRAFT.
func (uc *UseCase) Update(ctx context.Context, id, userID string, in dto.UpdatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	if order.Status != entity.OrderStatusDraft {
		return nil, domain.ErrConflict
	}
	if in.SupplierID != nil {
		supplier, err := uc.supplierRepo.GetByID(ctx, *in.SupplierID, false)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.ErrInvalidInput
		}
		order.SupplierID = *in.SupplierID
	}
	if in.ExpectedDate != nil {
		order.ExpectedDate = in.ExpectedDate
	}
	if in.Notes != nil {
		order.Notes = *in.Notes
	}
	if in.Items != nil {
		items, err := uc.buildItems(ctx, in.Items)
		if err != nil {
			return nil, err
		}
		for i := range items {
			items[i].ID = uuid.New().String()
			items[i].OrderID = order.ID
		}
		order.Items = items
	}
	order.RecomputeTotal()
	order.Touch(userID, time.Now())
	if err := uc.orderRepo.UpdateHeader(ctx, order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// Approve pasa la orden de DRAFT a ORDERED.
func (uc *UseCase) Approve(ctx context.Context, id, userID string) (*dto.PurchaseOrderResponse, error) {
	return uc.transition(ctx, id, userID, entity.OrderStatusOrdered)
}

// Cancel cancela la orden (solo DRAFT u ORDERED sin recepciones).
func (uc *UseCase) Cancel(ctx context.Context, id, userID string) (*dto.PurchaseOrderResponse, error) {
	return uc.transition(ctx, id, userID, entity.OrderStatusCancelled)
}

func (uc *UseCase) transition(ctx context.Context, id, userID, to string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransition(order.Status, to) {
		return nil, domain.ErrInvalidTransition
	}
	if to == entity.OrderStatusCancelled && order.AnyReceived() {
		return nil, domain.ErrConflict
	}
	if err := uc.orderRepo.UpdateStatus(ctx, id, to, userID); err != nil {
		return nil, err
	}
	order.Status = to
	order.Touch(userID, time.Now())
	return toOrderResponse(order), nil
}

// Receive registra una recepción parcial o total. En UNA transacción:
// bloquea la cabecera, valida cantidades contra lo pendiente, incrementa
// quantity_received, aplica la entrada de stock con su asiento en el libro
// y recalcula el estado de la orden.
func (uc *UseCase) Receive(ctx context.Context, id, userID string, in dto.ReceivePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		ledgerRepo repository.StockTransactionRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		order, err := orderRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusOrdered && order.Status != entity.OrderStatusPartiallyReceived {
			return domain.ErrInvalidTransition
		}

		itemsByID := make(map[string]*entity.PurchaseOrderItem, len(order.Items))
		for i := range order.Items {
			itemsByID[order.Items[i].ID] = &order.Items[i]
		}

		for _, rcv := range in.Items {
			item, ok := itemsByID[rcv.ItemID]
			if !ok {
				return domain.ErrInvalidInput
			}
			if !rcv.Quantity.GreaterThan(decimal.Zero) || rcv.Quantity.GreaterThan(item.Outstanding()) {
				return domain.ErrInvalidInput
			}
			newReceived := item.QuantityReceived.Add(rcv.Quantity)
			if err := orderRepo.UpdateItemReceived(ctx, item.ID, newReceived); err != nil {
				return err
			}
			item.QuantityReceived = newReceived

			if err := stockRepo.Ensure(ctx, item.ProductID); err != nil {
				return err
			}
			if _, err := stockRepo.ApplyDelta(ctx, item.ProductID, rcv.Quantity, decimal.Zero); err != nil {
				return err
			}
			if err := ledgerRepo.Create(ctx, &entity.StockTransaction{
				ID:        uuid.New().String(),
				ProductID: item.ProductID,
				Type:      entity.TransactionTypeIN,
				Quantity:  rcv.Quantity,
				UnitCost:  item.UnitCost,
				Reference: order.Number,
				Note:      in.Note,
				Date:      now,
				CreatedAt: now,
				CreatedBy: userID,
			}); err != nil {
				return err
			}
		}

		newStatus := entity.OrderStatusPartiallyReceived
		if order.FullyReceived() {
			newStatus = entity.OrderStatusReceived
		}
		return orderRepo.UpdateStatus(ctx, order.ID, newStatus, userID)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id, false)
}

// SoftDelete elimina lógicamente la orden.
func (uc *UseCase) SoftDelete(ctx context.Context, id, userID string) error {
	order, err := uc.orderRepo.GetByID(ctx, id, true)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.IsDeleted() {
		return domain.ErrAlreadyDeleted
	}
	return uc.orderRepo.SoftDelete(ctx, id, userID)
}

// Restore revierte el soft delete.
func (uc *UseCase) Restore(ctx context.Context, id, userID string) error {
	order, err := uc.orderRepo.GetByID(ctx, id, true)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if !order.IsDeleted() {
		return domain.ErrNotDeleted
	}
	return uc.orderRepo.Restore(ctx, id, userID)
}

// HardDelete elimina definitivamente. Solo órdenes DRAFT o CANCELLED:
// una orden con recepciones deja asientos en el libro que la referencian.
func (uc *UseCase) HardDelete(ctx context.Context, id string) error {
	order, err := uc.orderRepo.GetByID(ctx, id, true)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status != entity.OrderStatusDraft && order.Status != entity.OrderStatusCancelled {
		return domain.ErrConflict
	}
	return uc.orderRepo.HardDelete(ctx, id)
}

// PDF genera el documento imprimible de la orden.
func (uc *UseCase) PDF(ctx context.Context, id string) ([]byte, string, error) {
	order, err := uc.orderRepo.GetByID(ctx, id, false)
	if err != nil {
		return nil, "", err
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, order.SupplierID, true)
	if err != nil {
		return nil, "", err
	}
	if supplier == nil {
		return nil, "", domain.ErrNotFound
	}
	lines := make([]OrderLineForPDF, 0, len(order.Items))
	for _, it := range order.Items {
		line := OrderLineForPDF{Item: it}
		if product, _ := uc.productRepo.GetByID(ctx, it.ProductID, true); product != nil {
			line.SKU = product.SKU
			line.ProductName = product.Name
		}
		lines = append(lines, line)
	}
	raw, err := uc.pdfGen.GenerateOrderPDF(ctx, order, supplier, lines)
	if err != nil {
		return nil, "", err
	}
	return raw, fmt.Sprintf("%s.pdf", order.Number), nil
}

func orderSortBy(requested string) string {
	if col, ok := orderSortColumns[requested]; ok {
		return col
	}
	return "created_at"
}

// newOrderNumber genera el consecutivo legible OC-AAAAMMDD-XXXXXXXX.
func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("OC-%s-%s", now.Format("20060102"), suffix)
}

func toOrderResponse(o *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			QuantityOrdered:  it.QuantityOrdered,
			QuantityReceived: it.QuantityReceived,
			UnitCost:         it.UnitCost,
			TotalCost:        it.TotalCost,
		})
	}
	return &dto.PurchaseOrderResponse{
		ID:           o.ID,
		Number:       o.Number,
		SupplierID:   o.SupplierID,
		Status:       o.Status,
		ExpectedDate: o.ExpectedDate,
		Notes:        o.Notes,
		TotalCost:    o.TotalCost,
		Items:        items,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		DeletedAt:    o.DeletedAt,
	}
}
