// Package report renders finalized order sets into a PDF document. It is a
// pure output formatter: it consumes already-expanded orders and never
// touches storage.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/oaknest/storefront/internal/domain"
)

const bottomLimit = 270 // mm; start a new page past this point

// Orders writes the report PDF to w: header, order table, a summary page
// with per-status counts and total revenue, then a detail block per order.
// gofpdf accumulates the document in memory, so any drawing error surfaces
// here before a single byte reaches w.
func Orders(w io.Writer, orders []domain.Order, query string, generatedAt time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(false, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 12, "Furniture Order Management", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 8, "Orders Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Generated on: "+generatedAt.Format("Jan 2, 2006 15:04:05"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	if query != "" {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, 6, fmt.Sprintf("Search query: %q", query), "", 1, "L", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total Orders: %d", len(orders)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	drawTableHeader(pdf)
	pdf.SetFont("Helvetica", "", 9)
	for _, order := range orders {
		if pdf.GetY() > bottomLimit {
			pdf.AddPage()
			drawTableHeader(pdf)
			pdf.SetFont("Helvetica", "", 9)
		}

		pdf.CellFormat(35, 7, shortID(order.ID.Hex()), "", 0, "L", false, 0, "")
		pdf.CellFormat(55, 7, order.Customer.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, order.CreatedAt.Format("2006-01-02"), "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, string(order.Status), "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, money(order.TotalAmount), "", 1, "R", false, 0, "")
	}

	drawSummary(pdf, orders)
	drawDetails(pdf, orders)

	if pdf.Err() {
		return pdf.Error()
	}
	return pdf.Output(w)
}

func drawTableHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(35, 7, "Order ID", "", 0, "L", false, 0, "")
	pdf.CellFormat(55, 7, "Customer", "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Date", "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Status", "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Amount", "", 1, "R", false, 0, "")

	x, y := pdf.GetX(), pdf.GetY()
	pdf.Line(x, y, x+180, y)
	pdf.Ln(2)
}

func drawSummary(pdf *gofpdf.Fpdf, orders []domain.Order) {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Order Summary", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	var revenue float64
	statusCounts := make(map[domain.OrderStatus]int)
	for _, order := range orders {
		revenue += order.TotalAmount
		statusCounts[order.Status]++
	}

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, "Total Revenue: "+money(revenue), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Orders by Status:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	// Fixed order keeps the summary stable between runs.
	for _, status := range []domain.OrderStatus{
		domain.OrderStatusPending,
		domain.OrderStatusProcessing,
		domain.OrderStatusShipped,
		domain.OrderStatusDelivered,
		domain.OrderStatusCancelled,
	} {
		if count, ok := statusCounts[status]; ok {
			pdf.CellFormat(0, 6, fmt.Sprintf("%s: %d orders", status, count), "", 1, "L", false, 0, "")
		}
	}
}

func drawDetails(pdf *gofpdf.Fpdf, orders []domain.Order) {
	if len(orders) == 0 {
		return
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Order Details", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	for _, order := range orders {
		// Keep each block on one page where possible.
		if pdf.GetY() > bottomLimit-40 {
			pdf.AddPage()
		}

		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, fmt.Sprintf("Order %s - %s - %s", order.ID.Hex(),
			order.CreatedAt.Format("Jan 2, 2006"), order.Status), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 5, fmt.Sprintf("Customer: %s <%s> %s", order.Customer.Name,
			order.Customer.Email, order.Customer.Phone), "", 1, "L", false, 0, "")
		if order.Customer.Address != "" {
			pdf.CellFormat(0, 5, "Address: "+order.Customer.Address, "", 1, "L", false, 0, "")
		}

		for _, item := range order.Items {
			name := item.ProductID.Hex()
			if item.Product != nil {
				name = item.Product.Name
			}
			pdf.CellFormat(0, 5, fmt.Sprintf("    %s  x%d @ %s = %s", name, item.Quantity,
				money(item.Price), money(item.Subtotal())), "", 1, "L", false, 0, "")
		}

		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(0, 5, "Total: "+money(order.TotalAmount), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)

		if order.Vehicle != nil {
			pdf.CellFormat(0, 5, fmt.Sprintf("Delivery: %s (%s), driver %s, %s", order.Vehicle.Name,
				order.Vehicle.Number, order.Vehicle.DriverName, order.Vehicle.DriverContact), "", 1, "L", false, 0, "")
			if order.DeliveryNotes != "" {
				pdf.CellFormat(0, 5, "Notes: "+order.DeliveryNotes, "", 1, "L", false, 0, "")
			}
		}
		pdf.Ln(3)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8] + "..."
	}
	return id
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
