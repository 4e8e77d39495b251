package application

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/dagocoffee/dago-orders-service/internal/domain"
	"github.com/dagocoffee/dago-orders-service/internal/idgen"
	"github.com/dagocoffee/dago-orders-service/internal/repository"
)

// FinanceService appends to the finance ledgers and snapshots reports.
// Every operation is a whole-document read-modify-write on the finance
// repository; there is no branching beyond defaulting.
type FinanceService struct {
	repo repository.FinanceRepo
	ids  *idgen.Generator
}

func NewFinanceService(repo repository.FinanceRepo, ids *idgen.Generator) *FinanceService {
	return &FinanceService{repo: repo, ids: ids}
}

func (s *FinanceService) ReceiveGateway(req domain.GatewayReceiptRequest) (domain.GatewayLog, error) {
	entry := domain.GatewayLog{
		TransactionID: req.TransactionID,
		Orders:        req.Orders,
		Amount:        req.Amount,
		Method:        req.Method,
		SettledAt:     req.SettledAt,
		Reference:     req.Reference,
		ReceivedAt:    utcNow(),
	}
	if entry.Orders == nil {
		entry.Orders = []json.RawMessage{}
	}
	err := s.repo.Update(func(d *domain.FinanceData) {
		d.PaymentGatewayLogs = append(d.PaymentGatewayLogs, entry)
	})
	return entry, err
}

// GenerateReport summarizes the ledgers and appends the snapshot to the
// report history in the same write.
func (s *FinanceService) GenerateReport() (domain.FinanceReport, error) {
	var report domain.FinanceReport
	err := s.repo.Update(func(d *domain.FinanceData) {
		report = domain.FinanceReport{
			ReportID:    uuid.NewString(),
			GeneratedAt: utcNow(),
			SalesSummary: domain.FinanceSummary{
				TotalPayments:       len(d.PaymentGatewayLogs),
				ProcurementCount:    len(d.ProcurementLogs),
				SupplierPayments:    len(d.SupplierPayments),
				RawMaterialLogCount: len(d.RawMaterialLogs),
			},
			RawMaterialLogs: d.RawMaterialLogs,
		}
		d.FinanceReports = append(d.FinanceReports, report)
	})
	return report, err
}

func (s *FinanceService) CreateInvoice(req domain.InvoiceRequest) (domain.Invoice, error) {
	invoice := domain.Invoice{
		InvoiceID:   s.ids.NextInvoiceID(),
		SupplierID:  req.SupplierID,
		Details:     req.Details,
		TotalAmount: req.TotalAmount,
		DueDate:     req.DueDate,
		CreatedAt:   utcNow(),
	}
	if invoice.Details == nil {
		invoice.Details = []json.RawMessage{}
	}
	err := s.repo.Update(func(d *domain.FinanceData) {
		d.Invoices = append(d.Invoices, invoice)
	})
	return invoice, err
}

func (s *FinanceService) RawMaterialLog() []json.RawMessage {
	return s.repo.Load().RawMaterialLogs
}

func (s *FinanceService) RecordProcurement(req domain.ProcurementRequest) (domain.ProcurementLog, error) {
	procurement := domain.ProcurementLog{
		ProcurementID: req.ProcurementID,
		SupplierID:    req.SupplierID,
		Items:         req.Items,
		TotalCost:     req.TotalCost,
		Timestamp:     req.Timestamp,
		RecordedAt:    utcNow(),
	}
	if procurement.Items == nil {
		procurement.Items = []json.RawMessage{}
	}
	err := s.repo.Update(func(d *domain.FinanceData) {
		d.ProcurementLogs = append(d.ProcurementLogs, procurement)
	})
	return procurement, err
}

func (s *FinanceService) PaySupplier(req domain.SupplierPaymentRequest) (domain.SupplierPayment, error) {
	payment := domain.SupplierPayment{
		SupplierID:    req.SupplierID,
		ProcurementID: req.ProcurementID,
		Amount:        req.Amount,
		Reference:     req.Reference,
		PaidAt:        utcNow(),
	}
	err := s.repo.Update(func(d *domain.FinanceData) {
		d.SupplierPayments = append(d.SupplierPayments, payment)
	})
	return payment, err
}
