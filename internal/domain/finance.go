package domain

import "encoding/json"

type GatewayLog struct {
	TransactionID *string           `json:"transactionId"`
	Orders        []json.RawMessage `json:"orders"`
	Amount        *float64          `json:"amount"`
	Method        *string           `json:"method"`
	SettledAt     *string           `json:"settledAt"`
	Reference     *string           `json:"reference"`
	ReceivedAt    string            `json:"receivedAt"`
}

type FinanceSummary struct {
	TotalPayments       int `json:"totalPayments"`
	ProcurementCount    int `json:"procurementCount"`
	SupplierPayments    int `json:"supplierPayments"`
	RawMaterialLogCount int `json:"rawMaterialLogCount"`
}

type FinanceReport struct {
	ReportID        string            `json:"reportId"`
	GeneratedAt     string            `json:"generatedAt"`
	SalesSummary    FinanceSummary    `json:"salesSummary"`
	RawMaterialLogs []json.RawMessage `json:"rawMaterialLogs"`
}

type Invoice struct {
	InvoiceID   string            `json:"invoiceId"`
	SupplierID  *string           `json:"supplierId"`
	Details     []json.RawMessage `json:"details"`
	TotalAmount *float64          `json:"totalAmount"`
	DueDate     *string           `json:"dueDate"`
	CreatedAt   string            `json:"createdAt"`
}

type ProcurementLog struct {
	ProcurementID *string           `json:"procurementId"`
	SupplierID    *string           `json:"supplierId"`
	Items         []json.RawMessage `json:"items"`
	TotalCost     *float64          `json:"totalCost"`
	Timestamp     *string           `json:"timestamp"`
	RecordedAt    string            `json:"recordedAt"`
}

type SupplierPayment struct {
	SupplierID    *string  `json:"supplierId"`
	ProcurementID *string  `json:"procurementId"`
	Amount        *float64 `json:"amount"`
	Reference     *string  `json:"reference"`
	PaidAt        string   `json:"paidAt"`
}

// FinanceData is the whole finance_data.json document: five append-only
// ledgers plus the generated report history.
type FinanceData struct {
	PaymentGatewayLogs []GatewayLog      `json:"paymentGatewayLogs"`
	FinanceReports     []FinanceReport   `json:"financeReports"`
	Invoices           []Invoice         `json:"invoices"`
	RawMaterialLogs    []json.RawMessage `json:"rawMaterialLogs"`
	ProcurementLogs    []ProcurementLog  `json:"procurementLogs"`
	SupplierPayments   []SupplierPayment `json:"supplierPayments"`
}

// EnsureDefaults backfills missing arrays so every key survives a round
// trip even when the file on disk predates one of the ledgers.
func (d *FinanceData) EnsureDefaults() {
	if d.PaymentGatewayLogs == nil {
		d.PaymentGatewayLogs = []GatewayLog{}
	}
	if d.FinanceReports == nil {
		d.FinanceReports = []FinanceReport{}
	}
	if d.Invoices == nil {
		d.Invoices = []Invoice{}
	}
	if d.RawMaterialLogs == nil {
		d.RawMaterialLogs = []json.RawMessage{}
	}
	if d.ProcurementLogs == nil {
		d.ProcurementLogs = []ProcurementLog{}
	}
	if d.SupplierPayments == nil {
		d.SupplierPayments = []SupplierPayment{}
	}
}

type GatewayReceiptRequest struct {
	TransactionID *string           `json:"transactionId"`
	Orders        []json.RawMessage `json:"orders"`
	Amount        *float64          `json:"amount"`
	Method        *string           `json:"method"`
	SettledAt     *string           `json:"settledAt"`
	Reference     *string           `json:"reference"`
}

type InvoiceRequest struct {
	SupplierID  *string           `json:"supplierId"`
	Details     []json.RawMessage `json:"details"`
	TotalAmount *float64          `json:"totalAmount"`
	DueDate     *string           `json:"dueDate"`
}

type ProcurementRequest struct {
	ProcurementID *string           `json:"procurementId"`
	SupplierID    *string           `json:"supplierId"`
	Items         []json.RawMessage `json:"items"`
	TotalCost     *float64          `json:"totalCost"`
	Timestamp     *string           `json:"timestamp"`
}

type SupplierPaymentRequest struct {
	SupplierID    *string  `json:"supplierId"`
	ProcurementID *string  `json:"procurementId"`
	Amount        *float64 `json:"amount"`
	Reference     *string  `json:"reference"`
}
