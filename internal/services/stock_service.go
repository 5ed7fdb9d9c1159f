package services

import (
	"context"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"stocktrack/internal/apperrors"
	"stocktrack/internal/caching"
	"stocktrack/internal/models"
	"stocktrack/internal/repositories"
)

// Scan actions accepted by Scan and Adjust.
const (
	ScanActionAdd    = "add"
	ScanActionRemove = "remove"
)

const stockCacheTTL = 5 * time.Minute

// LocationQuantity is one (location, quantity) pair in a create or
// update request.
type LocationQuantity struct {
	LocationID int `json:"location_id"`
	Quantity   int `json:"quantity"`
}

// StockCreateRequest carries the attributes of a new stock item together
// with its initial ledger rows.
type StockCreateRequest struct {
	Name            string             `json:"name"`
	PartID          string             `json:"partId"`
	Category        string             `json:"category"`
	Barcode         string             `json:"barcode"`
	LotNumber       *string            `json:"lot_number"`
	BinNumbers      *string            `json:"bin_numbers"`
	Supplier        *string            `json:"supplier"`
	ProductionStage *string            `json:"production_stage"`
	Notes           *string            `json:"notes"`
	Cost            decimal.Decimal    `json:"cost"`
	Locations       []LocationQuantity `json:"locations"`
}

// StockUpdateRequest replaces every scalar field and the full set of
// ledger rows of an existing item (delete-then-reinsert, not a merge).
type StockUpdateRequest = StockCreateRequest

// StockService implements the stock registry and location-quantity
// ledger: creation with implicit assembly, filtered reads, the scan /
// scrap / transfer / adjust / assemble mutations, and the audit trail
// they leave behind.
type StockService interface {
	Create(ctx context.Context, req *StockCreateRequest) (*models.StockResponse, error)
	List(ctx context.Context, filter *models.StockSearchFilter) ([]*models.StockResponse, error)
	GetByID(ctx context.Context, id int) (*models.StockResponse, error)
	GetByBarcode(ctx context.Context, barcode string) (*models.StockResponse, error)
	Update(ctx context.Context, id int, req *StockUpdateRequest) (*models.StockResponse, error)
	Delete(ctx context.Context, id int) error
	Scrap(ctx context.Context, stockID, locationID, quantity int, reason string) (*models.StockResponse, error)
	Scan(ctx context.Context, barcode string, locationID, amount int, action string) (*models.StockResponse, error)
	Adjust(ctx context.Context, partID string, amount int, mode string) (*models.StockResponse, error)
	Transfer(ctx context.Context, stockID, fromLocationID, toLocationID, quantity int, reason string) (*models.StockResponse, error)
	Assemble(ctx context.Context, productBarcode string, quantity int) (*models.StockResponse, error)
	LowStock(ctx context.Context, threshold int) ([]*models.StockResponse, error)
	AttachImage(ctx context.Context, id int, url string) (*models.StockResponse, error)
	AttachFile(ctx context.Context, id int, url string) (*models.StockResponse, error)
}

type stockService struct {
	store        *repositories.Store
	stockRepo    repositories.StockRepository
	locationRepo repositories.LocationRepository
	bomRepo      repositories.BOMRepository
	logRepo      repositories.StockLogRepository
	cache        caching.CacheService
}

func NewStockService(
	store *repositories.Store,
	stockRepo repositories.StockRepository,
	locationRepo repositories.LocationRepository,
	bomRepo repositories.BOMRepository,
	logRepo repositories.StockLogRepository,
	cache caching.CacheService,
) StockService {
	return &stockService{
		store:        store,
		stockRepo:    stockRepo,
		locationRepo: locationRepo,
		bomRepo:      bomRepo,
		logRepo:      logRepo,
		cache:        cache,
	}
}

// response builds the API view of a stock item. Store lock required.
func (s *stockService) response(stock *models.Stock) *models.StockResponse {
	rows := s.stockRepo.RowsFor(stock.ID)
	views := make([]models.StockLocationView, 0, len(rows))
	total := 0
	for _, row := range rows {
		view := models.StockLocationView{
			LocationID: row.LocationID,
			Quantity:   row.Quantity,
		}
		if loc := s.locationRepo.GetByID(row.LocationID); loc != nil {
			view.LocationName = loc.Name
		}
		views = append(views, view)
		total += row.Quantity
	}
	return &models.StockResponse{
		Stock:         *stock,
		TotalQuantity: total,
		Locations:     views,
	}
}

// appendLog records one audit entry. Store lock required.
func (s *stockService) appendLog(action, barcode string, amount, resultingQty int, details map[string]any) {
	s.logRepo.Append(&models.StockLog{
		Timestamp:    time.Now().UTC(),
		Barcode:      barcode,
		Action:       action,
		Amount:       amount,
		ResultingQty: resultingQty,
		Details:      details,
	})
}

// refreshStatus recomputes the stored status from the item's total
// quantity. Store lock required.
func (s *stockService) refreshStatus(stock *models.Stock) {
	stock.Status = models.StatusForQuantity(s.stockRepo.TotalQuantity(stock.ID))
}

// invalidate drops cached lookups for the given barcodes. Cache failures
// are logged and ignored.
func (s *stockService) invalidate(ctx context.Context, barcodes ...string) {
	for _, code := range barcodes {
		if err := s.cache.DeleteStock(ctx, code); err != nil {
			log.Printf("Failed to invalidate stock cache for %s: %v", code, err)
		}
	}
}

// sortedComponents returns a BOM's component barcodes in a deterministic
// order, so sufficiency checks and deductions always walk the recipe the
// same way.
func sortedComponents(bom *models.BOM) []string {
	barcodes := make([]string, 0, len(bom.Components))
	for code := range bom.Components {
		barcodes = append(barcodes, code)
	}
	sort.Strings(barcodes)
	return barcodes
}

// checkComponents verifies that every component of the BOM has enough
// stock for the requested number of units. It runs before any deduction
// so composite operations stay all-or-nothing. Store lock required.
func (s *stockService) checkComponents(bom *models.BOM, units int) error {
	for _, code := range sortedComponents(bom) {
		required := bom.Components[code] * units
		available := 0
		if item := s.stockRepo.GetByBarcode(code); item != nil {
			available = s.stockRepo.TotalQuantity(item.ID)
		}
		if available < required {
			return &apperrors.InsufficientStockError{
				Component: code,
				Required:  required,
				Available: available,
			}
		}
	}
	return nil
}

// consumeComponents deducts every component's required amount, draining
// ledger rows in ascending location-id order, and appends one consume
// entry per component. Callers must have passed checkComponents first.
// Store lock required.
func (s *stockService) consumeComponents(ctx context.Context, bom *models.BOM, units int) {
	for _, code := range sortedComponents(bom) {
		required := bom.Components[code] * units
		if required == 0 {
			continue
		}
		item := s.stockRepo.GetByBarcode(code)
		remaining := required
		for _, row := range s.stockRepo.RowsFor(item.ID) {
			if remaining == 0 {
				break
			}
			take := row.Quantity
			if take > remaining {
				take = remaining
			}
			row.Quantity -= take
			remaining -= take
		}
		s.refreshStatus(item)
		s.appendLog(models.ActionConsume, code, required, s.stockRepo.TotalQuantity(item.ID), nil)
		s.invalidate(ctx, code)
	}
}

// validateRows checks a create/update request's location rows: the list
// must be non-empty, every referenced location must exist, and no row may
// carry a negative quantity.
func (s *stockService) validateRows(rows []LocationQuantity) error {
	if len(rows) == 0 {
		return apperrors.Validationf("at least one location is required")
	}
	for _, row := range rows {
		if row.Quantity < 0 {
			return apperrors.Validationf("quantity for location %d cannot be negative", row.LocationID)
		}
		if s.locationRepo.GetByID(row.LocationID) == nil {
			return apperrors.Validationf("location %d does not exist", row.LocationID)
		}
	}
	return nil
}

func (s *stockService) Create(ctx context.Context, req *StockCreateRequest) (*models.StockResponse, error) {
	s.store.Lock()
	defer s.store.Unlock()

	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.Validationf("name is required")
	}
	if strings.TrimSpace(req.Barcode) == "" {
		return nil, apperrors.Validationf("barcode is required")
	}
	if existing := s.stockRepo.GetByBarcode(req.Barcode); existing != nil {
		return nil, apperrors.Validationf("stock item with barcode %s already exists", req.Barcode)
	}
	if err := s.validateRows(req.Locations); err != nil {
		return nil, err
	}

	total := 0
	for _, row := range req.Locations {
		total += row.Quantity
	}

	// A BOM for this barcode makes creation an implicit assembly: the
	// initial quantity is built from component stock.
	if bom := s.bomRepo.GetByProductBarcode(req.Barcode); bom != nil {
		if err := s.checkComponents(bom, total); err != nil {
			return nil, err
		}
		s.consumeComponents(ctx, bom, total)
	}

	stock := &models.Stock{
		ID:              s.stockRepo.NextID(),
		Name:            req.Name,
		PartID:          req.PartID,
		Category:        req.Category,
		Barcode:         req.Barcode,
		Status:          models.StatusForQuantity(total),
		LotNumber:       req.LotNumber,
		BinNumbers:      req.BinNumbers,
		Supplier:        req.Supplier,
		ProductionStage: req.ProductionStage,
		Notes:           req.Notes,
		Cost:            req.Cost,
	}
	s.stockRepo.Insert(stock)
	for _, row := range req.Locations {
		s.stockRepo.InsertRow(&models.StockLocation{
			StockID:    stock.ID,
			LocationID: row.LocationID,
			Quantity:   row.Quantity,
		})
	}

	s.appendLog(models.ActionCreate, stock.Barcode, total, total, nil)
	s.invalidate(ctx, stock.Barcode)

	return s.response(stock), nil
}

func (s *stockService) List(ctx context.Context, filter *models.StockSearchFilter) ([]*models.StockResponse, error) {
	s.store.Lock()
	defer s.store.Unlock()

	if filter == nil {
		filter = &models.StockSearchFilter{}
	}

	// Location filters accept an id or a case-insensitive name.
	locationID := 0
	locationFilter := strings.TrimSpace(filter.Location) != ""
	if locationFilter {
		if id, err := strconv.Atoi(strings.TrimSpace(filter.Location)); err == nil {
			locationID = id
		} else if loc := s.locationRepo.GetByName(filter.Location); loc != nil {
			locationID = loc.ID
		}
	}

	var categories []string
	if strings.TrimSpace(filter.Category) != "" {
		for _, c := range strings.Split(filter.Category, ",") {
			if c = strings.TrimSpace(c); c != "" {
				categories = append(categories, c)
			}
		}
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))

	results := []*models.StockResponse{}
	for _, stock := range s.stockRepo.List() {
		total := s.stockRepo.TotalQuantity(stock.ID)

		if filter.Status != "" && models.StatusForQuantity(total) != filter.Status {
			continue
		}
		if locationFilter {
			if locationID == 0 || s.stockRepo.Row(stock.ID, locationID) == nil {
				continue
			}
		}
		if len(categories) > 0 {
			match := false
			for _, c := range categories {
				if strings.EqualFold(stock.Category, c) {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(stock.Name), search) &&
			!strings.Contains(strings.ToLower(stock.PartID), search) &&
			!strings.Contains(strings.ToLower(stock.Barcode), search) {
			continue
		}

		results = append(results, s.response(stock))
	}
	return results, nil
}

func (s *stockService) GetByID(ctx context.Context, id int) (*models.StockResponse, error) {
	s.store.Lock()
	defer s.store.Unlock()

	stock := s.stockRepo.GetByID(id)
	if stock == nil {
		return nil, apperrors.NotFoundf("stock item %d not found", id)
	}
	return s.response(stock), nil
}

func (s *stockService) GetByBarcode(ctx context.Context, barcode string) (*models.StockResponse, error) {
	if cached, err := s.cache.GetStock(ctx, barcode); cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("Cache error for stock %s: %v", barcode, err)
	}

	s.store.Lock()
	stock := s.stockRepo.GetByBarcode(barcode)
	if stock == nil {
		s.store.Unlock()
		return nil, apperrors.NotFoundf("stock item with barcode %s not found", barcode)
	}
	resp := s.response(stock)
	s.store.Unlock()

	if err := s.cache.SetStock(ctx, resp, stockCacheTTL); err != nil {
		log.Printf("Failed to cache stock %s: %v", barcode, err)
	}
	return resp, nil
}

func (s *stockService) Update(ctx context.Context, id int, req *StockUpdateRequest) (*models.StockResponse, error) {
	s.store.Lock()
	defer s.store.Unlock()

	stock := s.stockRepo.GetByID(id)
	if stock == nil {
		return nil, apperrors.NotFoundf("stock item %d not found", id)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.Validationf("name is required")
	}
	if strings.TrimSpace(req.Barcode) == "" {
		return nil, apperrors.Validationf("barcode is required")
	}
	if other := s.stockRepo.GetByBarcode(req.Barcode); other != nil && other.ID != id {
		return nil, apperrors.Validationf("stock item with barcode %s already exists", req.Barcode)
	}
	if err := s.validateRows(req.Locations); err != nil {
		return nil, err
	}

	oldBarcode := stock.Barcode
	oldTotal := s.stockRepo.TotalQuantity(id)

	stock.Name = req.Name
	stock.PartID = req.PartID
	stock.Category = req.Category
	stock.Barcode = req.Barcode
	stock.LotNumber = req.LotNumber
	stock.BinNumbers = req.BinNumbers
	stock.Supplier = req.Supplier
	stock.ProductionStage = req.ProductionStage
	stock.Notes = req.Notes
	stock.Cost = req.Cost

	// Replace the full set of ledger rows, not a merge.
	s.stockRepo.DeleteRowsFor(id)
	newTotal := 0
	for _, row := range req.Locations {
		s.stockRepo.InsertRow(&models.StockLocation{
			StockID:    id,
			LocationID: row.LocationID,
			Quantity:   row.Quantity,
		})
		newTotal += row.Quantity
	}
	stock.Status = models.StatusForQuantity(newTotal)

	s.appendLog(models.ActionUpdate, stock.Barcode, newTotal-oldTotal, newTotal, nil)
	s.invalidate(ctx, oldBarcode, stock.Barcode)

	return s.response(stock), nil
}

func (s *stockService) Delete(ctx context.Context, id int) error {
	s.store.Lock()
	defer s.store.Unlock()

	stock := s.stockRepo.GetByID(id)
	if stock == nil {
		return apperrors.NotFoundf("stock item %d not found", id)
	}

	total := s.stockRepo.TotalQuantity(id)
	s.stockRepo.DeleteRowsFor(id)
	s.stockRepo.Delete(id)

	s.appendLog(models.ActionDelete, stock.Barcode, -total, 0, nil)
	s.invalidate(ctx, stock.Barcode)
	return nil
}

func (s *stockService) Scrap(ctx context.Context, stockID, locationID, quantity int, reason string) (*models.StockResponse, error) {
	s.store.Lock()
	defer s.store.Unlock()

	stock := s.stockRepo.GetByID(stockID)
	if stock == nil {
		return nil, apperrors.NotFoundf("stock item %d not found", stockID)
	}
	if quantity <= 0 {
		return nil, apperrors.Validationf("scrap quantity must be positive")
	}
	row := s.stockRepo.Row(stockID, locationID)
	if row == nil {
		return nil, apperrors.Validationf("stock item %d has no quantity at location %d", stockID, locationID)
	}
	if row.Quantity < quantity {
		return nil, apperrors.Validationf("cannot scrap %d units: only %d at location %d", quantity, row.Quantity, locationID)
	}

	row.Quantity -= quantity
	stock.ScrapCount += quantity
	s.refreshStatus(stock)

	s.appendLog(models.ActionScrap, stock.Barcode, -quantity, s.stockRepo.TotalQuantity(stockID), map[string]any{
		"location_id": locationID,
		"reason":      reason,
	})
	s.invalidate(ctx, stock.Barcode)

	return s.response(stock), nil
}

func (s *stockService) Scan(ctx context.Context, barcode string, locationID, amount int, action string) (*models.StockResponse, error) {
	s.store.Lock()
	defer s.store.Unlock()

	if action != ScanActionAdd && action != ScanActionRemove {
		return nil, apperrors.Validationf("scan action must be %q or %q", ScanActionAdd, ScanActionRemove)
	}
	if amount <= 0 {
		return nil, apperrors.Validationf("scan amount must be positive")
	}
	stock := s.stockRepo.GetByBarcode(barcode)
	if stock == nil {
		return nil, apperrors.NotFoundf("stock item with barcode %s not found", barcode)
	}
	row := s.stockRepo.Row(stock.ID, locationID)
	if row == nil {
		return nil, apperrors.Validationf("stock item %d has no quantity at location %d", stock.ID, locationID)
	}

	if action == ScanActionRemove {
		if row.Quantity < amount {
			return nil, apperrors.Validationf("cannot remove %d units: only %d at location %d", amount, row.Quantity, locationID)
		}
		row.Quantity -= amount
		s.refreshStatus(stock)
		s.appendLog(models.ActionScanRemove, barcode, -amount, s.stockRepo.TotalQuantity(stock.ID), map[string]any{
			"location_id": locationID,
		})
		s.invalidate(ctx, barcode)
		return s.response(stock), nil
	}

	// Scan-add builds units: a BOM for this barcode consumes component
	// stock before the increment, and the whole operation fails with no
	// effect if any component is short.
	if bom := s.bomRepo.GetByProductBarcode(barcode); bom != nil {
		if err := s.checkComponents(bom, amount); err != nil {
			return nil, err
		}
		s.consumeComponents(ctx, bom, amount)
	}
	row.Quantity += amount
	s.refreshStatus(stock)
	s.appendLog(models.ActionScanAdd, barcode, amount, s.stockRepo.TotalQuantity(stock.ID), map[string]any{
		"location_id": locationID,
	})
	s.invalidate(ctx, barcode)
	return s.response(stock), nil
}

// Adjust applies a quick add/remove of stock resolved by part id, as
// triggered from the stock page. The delta lands on the item's first
// ledger row; BOM consumption is not involved.
func (s *stockService) Adjust(ctx context.Context, partID string, amount int, mode string) (*models.StockResponse, error) {
	s.store.Lock()
	defer s.store.Unlock()

	if mode != ScanActionAdd && mode != ScanActionRemove {
		return nil, apperrors.Validationf("adjust mode must be %q or %q", ScanActionAdd, ScanActionRemove)
	}
	if amount <= 0 {
		return nil, apperrors.Validationf("adjust amount must be positive")
	}
	stock := s.stockRepo.GetByPartID(partID)
	if stock == nil {
		return nil, apperrors.NotFoundf("stock item with part id %s not found", partID)
	}
	rows := s.stockRepo.RowsFor(stock.ID)
	if len(rows) == 0 {
		return nil, apperrors.Validationf("stock item %d has no storage locations", stock.ID)
	}
	row := rows[0]

	delta := amount
	if mode == ScanActionRemove {
		if row.Quantity < amount {
			return nil, apperrors.Validationf("cannot remove %d units: only %d at location %d", amount, row.Quantity, row.LocationID)
		}
		delta = -amount
	}
	row.Quantity += delta
	s.refreshStatus(stock)

	s.appendLog(models.ActionUpdate, stock.Barcode, delta, s.stockRepo.TotalQuantity(stock.ID), map[string]any{
		"mode":        mode,
		"location_id": row.LocationID,
	})
	s.invalidate(ctx, stock.Barcode)

	return s.response(stock), nil
}

func (s *stockService) Transfer(ctx context.Context, stockID, fromLocationID, toLocationID, quantity int, reason string) (*models.StockResponse, error) {
	s.store.Lock()
	defer s.store.Unlock()

	if fromLocationID == toLocationID {
		return nil, apperrors.Validationf("source and destination locations must differ")
	}
	if quantity <= 0 {
		return nil, apperrors.Validationf("transfer quantity must be positive")
	}
	stock := s.stockRepo.GetByID(stockID)
	if stock == nil {
		return nil, apperrors.NotFoundf("stock item %d not found", stockID)
	}
	if s.locationRepo.GetByID(toLocationID) == nil {
		return nil, apperrors.Validationf("location %d does not exist", toLocationID)
	}
	source := s.stockRepo.Row(stockID, fromLocationID)
	if source == nil {
		return nil, apperrors.Validationf("stock item %d has no quantity at location %d", stockID, fromLocationID)
	}
	if source.Quantity < quantity {
		return nil, apperrors.Validationf("cannot transfer %d units: only %d at location %d", quantity, source.Quantity, fromLocationID)
	}

	source.Quantity -= quantity
	dest := s.stockRepo.Row(stockID, toLocationID)
	if dest == nil {
		dest = &models.StockLocation{StockID: stockID, LocationID: toLocationID}
		s.stockRepo.InsertRow(dest)
	}
	dest.Quantity += quantity

	details := map[string]any{
		"from_location_id": fromLocationID,
		"to_location_id":   toLocationID,
		"reason":           reason,
	}
	s.appendLog(models.ActionTransferFrom, stock.Barcode, -quantity, source.Quantity, details)
	s.appendLog(models.ActionTransferTo, stock.Barcode, quantity, dest.Quantity, details)
	s.invalidate(ctx, stock.Barcode)

	return s.response(stock), nil
}

func (s *stockService) Assemble(ctx context.Context, productBarcode string, quantity int) (*models.StockResponse, error) {
	s.store.Lock()
	defer s.store.Unlock()

	if quantity <= 0 {
		return nil, apperrors.Validationf("assemble quantity must be positive")
	}
	bom := s.bomRepo.GetByProductBarcode(productBarcode)
	if bom == nil {
		return nil, apperrors.NotFoundf("no BOM for product barcode %s", productBarcode)
	}
	stock := s.stockRepo.GetByBarcode(productBarcode)
	if stock == nil {
		return nil, apperrors.NotFoundf("stock item with barcode %s not found", productBarcode)
	}
	rows := s.stockRepo.RowsFor(stock.ID)
	if len(rows) == 0 {
		return nil, apperrors.Validationf("stock item %d has no storage locations", stock.ID)
	}

	// Every component is checked before anything is deducted.
	if err := s.checkComponents(bom, quantity); err != nil {
		return nil, err
	}
	s.consumeComponents(ctx, bom, quantity)

	rows[0].Quantity += quantity
	s.refreshStatus(stock)

	s.appendLog(models.ActionAssemble, productBarcode, quantity, s.stockRepo.TotalQuantity(stock.ID), map[string]any{
		"description": bom.Description,
		"components":  bom.Components,
	})
	s.invalidate(ctx, productBarcode)

	return s.response(stock), nil
}

// LowStock lists items whose total quantity is strictly below the
// threshold, matching the Low/Out of Stock status bands when the default
// threshold is used.
func (s *stockService) LowStock(ctx context.Context, threshold int) ([]*models.StockResponse, error) {
	s.store.Lock()
	defer s.store.Unlock()

	if threshold <= 0 {
		threshold = models.LowStockThreshold
	}

	results := []*models.StockResponse{}
	for _, stock := range s.stockRepo.List() {
		if s.stockRepo.TotalQuantity(stock.ID) < threshold {
			results = append(results, s.response(stock))
		}
	}
	return results, nil
}

func (s *stockService) AttachImage(ctx context.Context, id int, url string) (*models.StockResponse, error) {
	return s.attach(ctx, id, url, true)
}

func (s *stockService) AttachFile(ctx context.Context, id int, url string) (*models.StockResponse, error) {
	return s.attach(ctx, id, url, false)
}

func (s *stockService) attach(ctx context.Context, id int, url string, image bool) (*models.StockResponse, error) {
	s.store.Lock()
	defer s.store.Unlock()

	stock := s.stockRepo.GetByID(id)
	if stock == nil {
		return nil, apperrors.NotFoundf("stock item %d not found", id)
	}
	if image {
		stock.ImageURL = &url
	} else {
		stock.FileURL = &url
	}
	s.invalidate(ctx, stock.Barcode)
	return s.response(stock), nil
}
