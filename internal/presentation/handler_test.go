package presentation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dagocoffee/dago-orders-service/internal/application"
	"github.com/dagocoffee/dago-orders-service/internal/domain"
	"github.com/dagocoffee/dago-orders-service/internal/idgen"
	"github.com/dagocoffee/dago-orders-service/internal/logger"
	"github.com/dagocoffee/dago-orders-service/internal/repository"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) (chi.Router, string) {
	t.Helper()
	dir := t.TempDir()

	salesRepo, err := repository.NewSalesRepository(dir)
	require.NoError(t, err)
	financeRepo, err := repository.NewFinanceRepository(dir)
	require.NoError(t, err)

	ids := idgen.New()
	orders := application.NewOrdersService(salesRepo, ids, nil)
	reports := application.NewReportService(salesRepo)
	finance := application.NewFinanceService(financeRepo, ids)

	r := chi.NewRouter()
	NewHandler(orders, reports, finance).Register(r)
	return r, dir
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if len(bytes.TrimSpace(w.Body.Bytes())) > 0 && json.Valid(w.Body.Bytes()) {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w, out
}

func createPaidOrder(t *testing.T, r http.Handler, grandTotal float64) string {
	t.Helper()
	w, resp := doJSON(t, r, http.MethodPost, "/api/createOrder",
		fmt.Sprintf(`{"cartId":"cart-1","totalPrice":{"grandTotal":%v}}`, grandTotal))
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := resp["orderId"].(string)

	w, _ = doJSON(t, r, http.MethodPost, "/api/confirmPayment",
		fmt.Sprintf(`{"orderId":%q,"amount":%v,"method":"QRIS","status":"CAPTURED","paidAt":"2026-08-29T10:00:00Z"}`, orderID, grandTotal))
	require.Equal(t, http.StatusOK, w.Code)
	return orderID
}

func TestHome_ServiceDescriptor(t *testing.T) {
	r, _ := newTestServer(t)

	w, resp := doJSON(t, r, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "running", resp["status"])
	assert.Contains(t, resp["service"], "Dago Coffee")
	assert.NotEmpty(t, resp["endpoints"])
}

func TestCreateOrder_ReturnsCreated(t *testing.T) {
	r, _ := newTestServer(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/createOrder", `{"cartId":"c-1"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "PENDING_PAYMENT", resp["status"])
	assert.NotEmpty(t, resp["createdAt"])
	assert.True(t, strings.HasPrefix(resp["orderId"].(string), "ORD-"))
}

func TestCreateOrder_MalformedBodyStillCreates(t *testing.T) {
	r, _ := newTestServer(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/createOrder", `{broken`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "PENDING_PAYMENT", resp["status"])

	w, _ = doJSON(t, r, http.MethodPost, "/api/createOrder", "")
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestConfirmPayment_Errors(t *testing.T) {
	r, _ := newTestServer(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/confirmPayment", `{"orderId":"ORD-2026-01-01-00009"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ORDER_NOT_FOUND", resp["error"])

	w2, created := doJSON(t, r, http.MethodPost, "/api/createOrder", `{"totalPrice":{"grandTotal":50000}}`)
	require.Equal(t, http.StatusCreated, w2.Code)
	orderID := created["orderId"].(string)

	w, resp = doJSON(t, r, http.MethodPost, "/api/confirmPayment",
		fmt.Sprintf(`{"orderId":%q,"amount":45000,"status":"CAPTURED"}`, orderID))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "AMOUNT_MISMATCH", resp["error"])
}

func TestSendToKitchen_NotPaid(t *testing.T) {
	r, _ := newTestServer(t)

	_, created := doJSON(t, r, http.MethodPost, "/api/createOrder", `{}`)
	orderID := created["orderId"].(string)

	w, resp := doJSON(t, r, http.MethodPost, "/api/sendToKitchen", fmt.Sprintf(`{"orderId":%q}`, orderID))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ORDER_NOT_PAID", resp["error"])
}

func TestOrderLifecycleScenario(t *testing.T) {
	r, dir := newTestServer(t)

	// create -> confirm CAPTURED -> dispatch
	w, created := doJSON(t, r, http.MethodPost, "/api/createOrder", `{"totalPrice":{"grandTotal":50000}}`)
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := created["orderId"].(string)

	w, confirmed := doJSON(t, r, http.MethodPost, "/api/confirmPayment",
		fmt.Sprintf(`{"orderId":%q,"amount":50000,"status":"CAPTURED","paidAt":"2026-08-29T10:00:00Z"}`, orderID))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "PAID", confirmed["orderStatus"])

	w, dispatched := doJSON(t, r, http.MethodPost, "/api/sendToKitchen", fmt.Sprintf(`{"orderId":%q}`, orderID))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, dispatched["accepted"])
	assert.Equal(t, "KT-0001", dispatched["kitchenTicketId"])

	// the sales file gained exactly one record with the settled amount
	b, err := os.ReadFile(filepath.Join(dir, "sales.json"))
	require.NoError(t, err)
	var sales []domain.SaleRecord
	require.NoError(t, json.Unmarshal(b, &sales))
	require.Len(t, sales, 1)
	assert.Equal(t, orderID, sales[0].OrderID)
	assert.Equal(t, 50000.0, sales[0].Amount)
	assert.Equal(t, "KT-0001", sales[0].KitchenTicketID)
}

func TestSendToKitchen_IdempotencyScenario(t *testing.T) {
	r, dir := newTestServer(t)
	orderID := createPaidOrder(t, r, 50000)

	body := fmt.Sprintf(`{"orderId":%q,"idempotencyKey":"k1"}`, orderID)
	w1, first := doJSON(t, r, http.MethodPost, "/api/sendToKitchen", body)
	require.Equal(t, http.StatusOK, w1.Code)
	w2, second := doJSON(t, r, http.MethodPost, "/api/sendToKitchen", body)
	require.Equal(t, http.StatusOK, w2.Code)

	assert.Equal(t, w1.Body.String(), w2.Body.String(), "replayed response must be identical")
	assert.Equal(t, first["kitchenTicketId"], second["kitchenTicketId"])

	b, err := os.ReadFile(filepath.Join(dir, "sales.json"))
	require.NoError(t, err)
	var sales []domain.SaleRecord
	require.NoError(t, json.Unmarshal(b, &sales))
	assert.Len(t, sales, 1)
}

func TestReportSales_RoundTripAndAlias(t *testing.T) {
	r, _ := newTestServer(t)
	orderID := createPaidOrder(t, r, 50000)
	_, _ = doJSON(t, r, http.MethodPost, "/api/sendToKitchen", fmt.Sprintf(`{"orderId":%q}`, orderID))

	for _, path := range []string{"/api/reportSales", "/api/getSalesReport"} {
		w, resp := doJSON(t, r, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, w.Code, path)

		summary := resp["summary"].(map[string]any)
		assert.Equal(t, 1.0, summary["totalRows"])
		assert.Equal(t, 50000.0, summary["revenue"])
		assert.Equal(t, "IDR", summary["currency"])
		assert.Equal(t, false, resp["hasMore"])

		rows := resp["rows"].([]any)
		require.Len(t, rows, 1)
		row := rows[0].(map[string]any)
		assert.Equal(t, orderID, row["orderId"])
		assert.Equal(t, 50000.0, row["amount"])
	}
}

func TestReportSales_QueryParams(t *testing.T) {
	r, _ := newTestServer(t)
	for i := 0; i < 3; i++ {
		orderID := createPaidOrder(t, r, 10000)
		_, _ = doJSON(t, r, http.MethodPost, "/api/sendToKitchen", fmt.Sprintf(`{"orderId":%q}`, orderID))
	}

	w, resp := doJSON(t, r, http.MethodGet, "/api/reportSales?page=2&pageSize=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	summary := resp["summary"].(map[string]any)
	assert.Equal(t, 3.0, summary["totalRows"])
	assert.Equal(t, 2.0, summary["totalPages"])
	assert.Equal(t, 30000.0, summary["revenue"])
	assert.Equal(t, false, resp["hasMore"])
	assert.Len(t, resp["rows"].([]any), 1)

	w, resp = doJSON(t, r, http.MethodGet, "/api/reportSales?paymentMethod=CASH", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp["rows"])

	// explicit page=0 is echoed back and yields no rows, summary intact
	w, resp = doJSON(t, r, http.MethodGet, "/api/reportSales?page=0", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, resp["page"])
	assert.Empty(t, resp["rows"])
	assert.Equal(t, 3.0, resp["summary"].(map[string]any)["totalRows"])
}

func TestFinanceEndpoints(t *testing.T) {
	r, _ := newTestServer(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/receivePaymentGateway",
		`{"transactionId":"tx-9","amount":80000,"method":"QRIS"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "RECEIVED", resp["status"])
	data := resp["data"].(map[string]any)
	assert.Equal(t, "tx-9", data["transactionId"])
	assert.NotEmpty(t, data["receivedAt"])

	w, resp = doJSON(t, r, http.MethodPost, "/api/createPaymentInvoice",
		`{"supplierId":"sup-1","totalAmount":120000,"dueDate":"2026-09-15"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "INV-00001", resp["invoiceId"])

	w, resp = doJSON(t, r, http.MethodPost, "/api/recordProcurement",
		`{"procurementId":"pr-1","supplierId":"sup-1","totalCost":90000}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "RECORDED", resp["status"])

	w, resp = doJSON(t, r, http.MethodPost, "/api/paySupplier",
		`{"supplierId":"sup-1","procurementId":"pr-1","amount":90000}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "PAID", resp["status"])

	w, resp = doJSON(t, r, http.MethodGet, "/api/generateFinanceReport", "")
	require.Equal(t, http.StatusOK, w.Code)
	report := resp["salesSummary"].(map[string]any)
	assert.Equal(t, 1.0, report["totalPayments"])
	assert.Equal(t, 1.0, report["procurementCount"])
	assert.Equal(t, 1.0, report["supplierPayments"])
	assert.NotEmpty(t, resp["reportId"])

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/api/getRawMaterialLog", nil))
	require.Equal(t, http.StatusOK, w2.Code)
	assert.JSONEq(t, "[]", w2.Body.String())
}

func TestGenerateFinanceReport_AppendsToHistory(t *testing.T) {
	r, dir := newTestServer(t)

	_, first := doJSON(t, r, http.MethodGet, "/api/generateFinanceReport", "")
	_, second := doJSON(t, r, http.MethodGet, "/api/generateFinanceReport", "")
	assert.NotEqual(t, first["reportId"], second["reportId"])

	b, err := os.ReadFile(filepath.Join(dir, "finance_data.json"))
	require.NoError(t, err)
	var data domain.FinanceData
	require.NoError(t, json.Unmarshal(b, &data))
	assert.Len(t, data.FinanceReports, 2)
}
