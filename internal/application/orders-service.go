package application

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/dagocoffee/dago-orders-service/internal/domain"
	"github.com/dagocoffee/dago-orders-service/internal/idgen"
	"github.com/dagocoffee/dago-orders-service/internal/logger"
	"github.com/dagocoffee/dago-orders-service/internal/repository"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrOrderNotPaid   = errors.New("order not paid")
	ErrAmountMismatch = errors.New("amount mismatch")
)

// TicketPublisher forwards accepted kitchen tickets to the kitchen queue.
// A nil publisher disables forwarding.
type TicketPublisher interface {
	PublishTicket(ctx context.Context, t domain.KitchenTicket) error
}

// OrdersService is the order registry and kitchen dispatch. Orders and
// idempotency records live only in memory; sale records go to the sales
// repository.
type OrdersService struct {
	sales repository.SalesRepo
	ids   *idgen.Generator
	pub   TicketPublisher

	mu      sync.RWMutex
	orders  map[string]*domain.Order
	tickets map[string]domain.KitchenTicket
}

func NewOrdersService(sales repository.SalesRepo, ids *idgen.Generator, pub TicketPublisher) *OrdersService {
	return &OrdersService{
		sales:   sales,
		ids:     ids,
		pub:     pub,
		orders:  make(map[string]*domain.Order),
		tickets: make(map[string]domain.KitchenTicket),
	}
}

// CreateOrder always succeeds: missing payload fields fall back to their
// defaults and a fresh id is assigned, never overwriting an existing order.
func (s *OrdersService) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) *domain.Order {
	ord := &domain.Order{
		OrderID:      s.ids.NextOrderID(),
		CartOrderRef: req.OrderID,
		CartID:       req.CartID,
		ProductList:  req.ProductList,
		Currency:     "IDR",
		Channel:      "CART",
		Status:       domain.StatusPendingPayment,
		CreatedAt:    utcNow(),
	}
	if ord.ProductList == nil {
		ord.ProductList = []json.RawMessage{}
	}
	if req.TotalPrice != nil {
		ord.TotalPrice = *req.TotalPrice
	}
	if req.Currency != nil {
		ord.Currency = *req.Currency
	}
	if req.Channel != nil {
		ord.Channel = *req.Channel
	}

	s.mu.Lock()
	s.orders[ord.OrderID] = ord
	s.mu.Unlock()

	logger.Info("order created", "orderId", ord.OrderID)
	return ord
}

// ConfirmPayment records the gateway callback on the order. The order
// becomes PAID only when the reported status is CAPTURED; any other status
// sets it (back) to PENDING_PAYMENT.
func (s *OrdersService) ConfirmPayment(ctx context.Context, req domain.ConfirmPaymentRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ord, ok := s.orders[strDeref(req.OrderID)]
	if !ok {
		return "", ErrOrderNotFound
	}

	if expected := ord.TotalPrice.GrandTotal; expected != nil {
		if req.Amount == nil || *req.Amount != *expected {
			return "", ErrAmountMismatch
		}
	}

	ord.Payment = &domain.Payment{
		TransactionID: req.TransactionID,
		Amount:        req.Amount,
		Method:        req.Method,
		Status:        req.Status,
		PaidAt:        req.PaidAt,
	}
	if req.Status != nil && *req.Status == domain.PaymentCaptured {
		ord.Status = domain.StatusPaid
	} else {
		ord.Status = domain.StatusPendingPayment
	}
	ord.PaidAt = req.PaidAt

	return ord.Status, nil
}

// SendToKitchen promotes a paid order into a kitchen ticket. A repeated
// idempotency key replays the recorded response with no further side
// effects; the replay takes priority over the paid-status check.
func (s *OrdersService) SendToKitchen(ctx context.Context, req domain.SendToKitchenRequest) (domain.KitchenTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orderID := strDeref(req.OrderID)
	ord, ok := s.orders[orderID]
	if !ok {
		return domain.KitchenTicket{}, ErrOrderNotFound
	}

	idem := strDeref(req.IdempotencyKey)
	if idem != "" {
		if t, seen := s.tickets[idem]; seen {
			return t, nil
		}
	}

	if ord.Status != domain.StatusPaid {
		return domain.KitchenTicket{}, ErrOrderNotPaid
	}

	ticketID := s.ids.NextKitchenTicketID()
	ord.KitchenTicketID = &ticketID

	ticket := domain.KitchenTicket{
		OrderID:         orderID,
		Accepted:        true,
		KitchenTicketID: ticketID,
	}
	if idem != "" {
		s.tickets[idem] = ticket
	}

	if err := s.sales.Append(s.saleRecord(ord, ticketID)); err != nil {
		return domain.KitchenTicket{}, err
	}

	if s.pub != nil {
		if err := s.pub.PublishTicket(ctx, ticket); err != nil {
			logger.Warn("kitchen queue publish failed", "orderId", orderID, "ticketId", ticketID, "err", err)
		}
	}

	logger.Info("order dispatched", "orderId", orderID, "ticketId", ticketID)
	return ticket, nil
}

func (s *OrdersService) saleRecord(ord *domain.Order, ticketID string) domain.SaleRecord {
	// A recorded payment amount of 0 counts as absent and falls through to
	// the grand total.
	var amount float64
	switch {
	case ord.Payment != nil && ord.Payment.Amount != nil && *ord.Payment.Amount != 0:
		amount = *ord.Payment.Amount
	case ord.TotalPrice.GrandTotal != nil:
		amount = *ord.TotalPrice.GrandTotal
	}

	var method *string
	if ord.Payment != nil {
		method = ord.Payment.Method
	}

	return domain.SaleRecord{
		OrderID:         ord.OrderID,
		PaidAt:          ord.PaidAt,
		CartID:          ord.CartID,
		Amount:          amount,
		Method:          method,
		Status:          ord.Status,
		Items:           ord.ProductList,
		KitchenTicketID: ticketID,
	}
}

func utcNow() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05Z")
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
