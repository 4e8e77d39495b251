package presentation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dagocoffee/dago-orders-service/internal/application"
	"github.com/dagocoffee/dago-orders-service/internal/domain"
	"github.com/dagocoffee/dago-orders-service/internal/presentation/helpers"
)

type Handler struct {
	orders  *application.OrdersService
	reports *application.ReportService
	finance *application.FinanceService
}

func NewHandler(orders *application.OrdersService, reports *application.ReportService, finance *application.FinanceService) *Handler {
	return &Handler{orders: orders, reports: reports, finance: finance}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.Home)

	r.Post("/api/createOrder", h.CreateOrder)
	r.Post("/api/confirmPayment", h.ConfirmPayment)
	r.Post("/api/sendToKitchen", h.SendToKitchen)
	r.Get("/api/reportSales", h.ReportSales)
	r.Get("/api/getSalesReport", h.ReportSales)

	r.Post("/api/receivePaymentGateway", h.ReceivePaymentGateway)
	r.Get("/api/generateFinanceReport", h.GenerateFinanceReport)
	r.Post("/api/createPaymentInvoice", h.CreatePaymentInvoice)
	r.Get("/api/getRawMaterialLog", h.GetRawMaterialLog)
	r.Post("/api/recordProcurement", h.RecordProcurement)
	r.Post("/api/paySupplier", h.PaySupplier)
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "running",
		"service": "Dago Coffee Integrated System (Sales + Finance)",
		"endpoints": []string{
			"/api/createOrder",
			"/api/confirmPayment",
			"/api/sendToKitchen",
			"/api/reportSales",
			"/api/receivePaymentGateway",
			"/api/getSalesReport",
			"/api/generateFinanceReport",
			"/api/createPaymentInvoice",
			"/api/getRawMaterialLog",
			"/api/recordProcurement",
			"/api/paySupplier",
		},
	})
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	helpers.DecodeLenient(r.Body, &req)

	ord := h.orders.CreateOrder(r.Context(), req)

	helpers.WriteJSON(w, http.StatusCreated, map[string]any{
		"orderId":   ord.OrderID,
		"status":    ord.Status,
		"createdAt": ord.CreatedAt,
	})
}

func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req domain.ConfirmPaymentRequest
	helpers.DecodeLenient(r.Body, &req)

	status, err := h.orders.ConfirmPayment(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	orderID := ""
	if req.OrderID != nil {
		orderID = *req.OrderID
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]any{
		"orderId":     orderID,
		"orderStatus": status,
	})
}

func (h *Handler) SendToKitchen(w http.ResponseWriter, r *http.Request) {
	var req domain.SendToKitchenRequest
	helpers.DecodeLenient(r.Body, &req)

	ticket, err := h.orders.SendToKitchen(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, ticket)
}

func (h *Handler) ReportSales(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := application.ReportFilters{
		Start:         q.Get("start"),
		End:           q.Get("end"),
		CartID:        q.Get("cartId"),
		PaymentMethod: q.Get("paymentMethod"),
		Page:          1,
		PageSize:      application.DefaultPageSize,
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		filters.Page = v
	}
	if v, err := strconv.Atoi(q.Get("pageSize")); err == nil {
		filters.PageSize = v
	}

	helpers.WriteJSON(w, http.StatusOK, h.reports.Report(filters))
}

func (h *Handler) ReceivePaymentGateway(w http.ResponseWriter, r *http.Request) {
	var req domain.GatewayReceiptRequest
	helpers.DecodeLenient(r.Body, &req)

	entry, err := h.finance.ReceiveGateway(req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, map[string]any{
		"status": "RECEIVED",
		"data":   entry,
	})
}

func (h *Handler) GenerateFinanceReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.finance.GenerateReport()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) CreatePaymentInvoice(w http.ResponseWriter, r *http.Request) {
	var req domain.InvoiceRequest
	helpers.DecodeLenient(r.Body, &req)

	invoice, err := h.finance.CreateInvoice(req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, invoice)
}

func (h *Handler) GetRawMaterialLog(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, h.finance.RawMaterialLog())
}

func (h *Handler) RecordProcurement(w http.ResponseWriter, r *http.Request) {
	var req domain.ProcurementRequest
	helpers.DecodeLenient(r.Body, &req)

	procurement, err := h.finance.RecordProcurement(req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, map[string]any{
		"status": "RECORDED",
		"data":   procurement,
	})
}

func (h *Handler) PaySupplier(w http.ResponseWriter, r *http.Request) {
	var req domain.SupplierPaymentRequest
	helpers.DecodeLenient(r.Body, &req)

	payment, err := h.finance.PaySupplier(req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, map[string]any{
		"status": "PAID",
		"data":   payment,
	})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, application.ErrOrderNotFound):
		helpers.HttpError(w, http.StatusNotFound, "ORDER_NOT_FOUND")
	case errors.Is(err, application.ErrAmountMismatch):
		helpers.HttpError(w, http.StatusBadRequest, "AMOUNT_MISMATCH")
	case errors.Is(err, application.ErrOrderNotPaid):
		helpers.HttpError(w, http.StatusBadRequest, "ORDER_NOT_PAID")
	default:
		helpers.HttpError(w, http.StatusInternalServerError, "failed to persist record")
	}
}
