package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/freshveld/fulfillment-api/internal/domain/entity"
	"github.com/freshveld/fulfillment-api/internal/domain/enum"
	"github.com/freshveld/fulfillment-api/internal/domain/repository"
	"github.com/freshveld/fulfillment-api/pkg/apperror"
	"github.com/freshveld/fulfillment-api/pkg/pdf"
	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// PackingService builds pick sheets and date batches from orders and renders
// them to printable PDFs. It only ever reads from the repository.
type PackingService struct {
	orderRepo repository.OrderRepository
}

// NewPackingService creates a new packing service
func NewPackingService(orderRepo repository.OrderRepository) *PackingService {
	return &PackingService{orderRepo: orderRepo}
}

// newCollator returns the collation used for all packing-list ordering.
// Case-insensitive English collation gives the same ordering on every host,
// so regenerating a sheet or batch yields identical output between print runs.
// Collators carry internal buffers, so each sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}

// BuildSheet builds the pick sheet for a single order
func (s *PackingService) BuildSheet(ctx context.Context, orderID uuid.UUID) (*entity.PackingSheet, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	sheet := buildSheetFromOrder(order)
	return &sheet, nil
}

// buildSheetFromOrder derives a pick sheet from an already-loaded order.
// Duplicate product rows (the same product ordered on two line items) are
// merged by summing quantities so no quantity is silently dropped. An order
// with no items yields a valid sheet with an empty item list.
func buildSheetFromOrder(order *entity.Order) entity.PackingSheet {
	byProduct := make(map[uuid.UUID]int, len(order.Items))
	items := make([]entity.PackingItem, 0, len(order.Items))

	for _, li := range order.Items {
		if idx, seen := byProduct[li.ProductID]; seen {
			items[idx].Quantity += li.Quantity
			continue
		}
		byProduct[li.ProductID] = len(items)
		items = append(items, entity.PackingItem{
			ProductName: li.Product.Name,
			Quantity:    li.Quantity,
			Unit:        li.Unit,
		})
	}

	c := newCollator()
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(items[i].ProductName, items[j].ProductName) < 0
	})

	sheet := entity.PackingSheet{
		OrderID:      order.ID,
		CustomerName: order.Customer.Name,
		Address:      order.Customer.Address,
		RouteKey:     order.Customer.RouteKey,
		Items:        items,
	}
	if order.DriverNotes != nil {
		sheet.DriverNotes = *order.DriverNotes
	}
	return sheet
}

// BuildBatch builds the packing batch for every order delivered on the given
// calendar day. The day window is [date 00:00, date+1 00:00); an empty day
// yields an empty batch, not an error.
func (s *PackingService) BuildBatch(ctx context.Context, date time.Time, sortBy enum.BatchSort) (*entity.PackingBatch, error) {
	if !sortBy.IsValid() {
		return nil, apperror.NewValidationError(fmt.Sprintf("Invalid sort key %q: must be 'name' or 'route'", sortBy))
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	orders, err := s.orderRepo.FindByDeliveryDate(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	sheets := make([]entity.PackingSheet, 0, len(orders))
	for i := range orders {
		sheets = append(sheets, buildSheetFromOrder(&orders[i]))
	}

	batch := &entity.PackingBatch{
		DeliveryDate: dayStart,
		SortBy:       sortBy,
		Sheets:       sheets,
	}
	sortBatch(batch)
	return batch, nil
}

// BuildSheets builds a batch from an explicitly chosen set of orders, e.g. a
// hand-picked subset for a partial print run. Every id must resolve.
func (s *PackingService) BuildSheets(ctx context.Context, orderIDs []uuid.UUID, sortBy enum.BatchSort) (*entity.PackingBatch, error) {
	if !sortBy.IsValid() {
		return nil, apperror.NewValidationError(fmt.Sprintf("Invalid sort key %q: must be 'name' or 'route'", sortBy))
	}
	if len(orderIDs) == 0 {
		return nil, apperror.NewValidationError("Order id list must not be empty")
	}

	orders, err := s.orderRepo.GetManyWithItems(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	found := make(map[uuid.UUID]bool, len(orders))
	for i := range orders {
		found[orders[i].ID] = true
	}
	for _, id := range orderIDs {
		if !found[id] {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Order %s", id))
		}
	}

	sheets := make([]entity.PackingSheet, 0, len(orders))
	for i := range orders {
		sheets = append(sheets, buildSheetFromOrder(&orders[i]))
	}

	batch := &entity.PackingBatch{
		SortBy: sortBy,
		Sheets: sheets,
	}
	sortBatch(batch)
	return batch, nil
}

// sortBatch orders sheets into a strict total order. "name" compares customer
// names; "route" compares route keys with customer name as tiebreak. Order id
// is the final tiebreak so two orders for the same customer still sort
// deterministically between runs.
func sortBatch(batch *entity.PackingBatch) {
	c := newCollator()
	sheets := batch.Sheets

	sort.SliceStable(sheets, func(i, j int) bool {
		if batch.SortBy == enum.BatchSortRoute {
			if r := c.CompareString(sheets[i].RouteKey, sheets[j].RouteKey); r != 0 {
				return r < 0
			}
		}
		if r := c.CompareString(sheets[i].CustomerName, sheets[j].CustomerName); r != 0 {
			return r < 0
		}
		return sheets[i].OrderID.String() < sheets[j].OrderID.String()
	})
}

// Lines of page space taken by a sheet's header block (heading, address,
// route, rule, table header) plus one trailing blank line.
const sheetOverheadLines = 6

// FormatBatchPDF renders a packing batch into a paginated A4 PDF. Each sheet
// is one logical section; when a sheet's rows exceed the space left on the
// current page the sheet starts on a fresh page instead of splitting mid-item.
func FormatBatchPDF(batch *entity.PackingBatch) ([]byte, error) {
	doc := pdf.NewDocument()
	doc.AddPage()

	title := "Packing Lists"
	if !batch.DeliveryDate.IsZero() {
		title = "Packing Lists - " + batch.DeliveryDate.Format("Mon 02 Jan 2006")
	}
	doc.Title(title)
	doc.Space(1)

	for i := range batch.Sheets {
		writeSheet(doc, &batch.Sheets[i])
	}

	return doc.Output()
}

func writeSheet(doc *pdf.Document, sheet *entity.PackingSheet) {
	needed := sheetOverheadLines + len(sheet.Items)
	if sheet.DriverNotes != "" {
		needed++
	}
	if doc.RemainingLines() < needed {
		doc.AddPage()
	}

	doc.Heading(sheet.CustomerName)
	doc.KeyValue("Address:", sheet.Address)
	doc.KeyValue("Route:", sheet.RouteKey)
	if sheet.DriverNotes != "" {
		doc.KeyValue("Notes:", sheet.DriverNotes)
	}
	doc.Separator()

	doc.TableHeader([]string{"Product", "Qty", "Unit"}, []float64{0.6, 0.2, 0.2})
	for _, item := range sheet.Items {
		// Oversized sheets that cannot fit a whole page still page-break
		// between rows rather than drawing off the page edge
		if doc.RemainingLines() < 1 {
			doc.AddPage()
			doc.TableHeader([]string{"Product", "Qty", "Unit"}, []float64{0.6, 0.2, 0.2})
		}
		doc.Row(item.ProductName, fmt.Sprintf("%d", item.Quantity), item.Unit)
	}
	doc.Space(1)
}
