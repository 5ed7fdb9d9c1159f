package jobs

import (
	"context"
	"log"

	"stocktrack/internal/models"
	"stocktrack/internal/services"
)

// StockAlertService periodically scans the ledger for items running low
// and logs them for the operator.
type StockAlertService struct {
	stockService services.StockService
	threshold    int
}

// StockAlert describes one item at or below the low-stock threshold.
type StockAlert struct {
	StockID       int
	Name          string
	Barcode       string
	TotalQuantity int
	Status        string
}

func NewStockAlertService(stockService services.StockService, threshold int) *StockAlertService {
	if threshold <= 0 {
		threshold = models.LowStockThreshold
	}
	return &StockAlertService{
		stockService: stockService,
		threshold:    threshold,
	}
}

// CheckLowStock returns every item whose total quantity is below the
// configured threshold.
func (a *StockAlertService) CheckLowStock(ctx context.Context) ([]StockAlert, error) {
	stocks, err := a.stockService.LowStock(ctx, a.threshold)
	if err != nil {
		log.Printf("Failed to list low stock items: %v", err)
		return nil, err
	}

	var alerts []StockAlert
	for _, s := range stocks {
		alerts = append(alerts, StockAlert{
			StockID:       s.ID,
			Name:          s.Name,
			Barcode:       s.Barcode,
			TotalQuantity: s.TotalQuantity,
			Status:        s.Status,
		})
	}
	return alerts, nil
}

// LogLowStockAlerts writes the alerts to the process log.
func (a *StockAlertService) LogLowStockAlerts(alerts []StockAlert) {
	if len(alerts) == 0 {
		log.Println("No low stock alerts to log")
		return
	}

	log.Printf("Low stock alerts (threshold %d):", a.threshold)
	for _, alert := range alerts {
		log.Printf("- %q (barcode %s) has %d units: %s",
			alert.Name, alert.Barcode, alert.TotalQuantity, alert.Status)
	}
}

// ScheduledLowStockCheck is the entry point the background scheduler
// runs.
func (a *StockAlertService) ScheduledLowStockCheck(ctx context.Context) error {
	log.Println("Starting scheduled low stock check")

	alerts, err := a.CheckLowStock(ctx)
	if err != nil {
		log.Printf("Scheduled low stock check failed: %v", err)
		return err
	}
	a.LogLowStockAlerts(alerts)

	log.Println("Scheduled low stock check completed successfully")
	return nil
}
