package sales

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/ledgerline/ledgerline/internal/shared"
)

const exportPageSize = 500

var exportHeader = []string{"id", "customer_id", "sale_date", "total_price", "partial_payment", "owes", "notes"}

// ExportCSV streams every sale matching the filter as CSV, paging through
// the repository so the whole result set never sits in memory.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer, req ListSalesRequest) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return err
	}

	req.Page = shared.Page{Limit: exportPageSize, Skip: 0}
	for {
		page, total, err := s.repo.List(ctx, req)
		if err != nil {
			return err
		}
		for _, sale := range page {
			if err := writer.Write(saleRow(sale)); err != nil {
				return err
			}
		}
		req.Page.Skip += len(page)
		if len(page) == 0 || req.Page.Skip >= total {
			break
		}
	}

	writer.Flush()
	return writer.Error()
}

func saleRow(sale Sale) []string {
	customer := ""
	if sale.CustomerID != nil {
		customer = strconv.FormatInt(*sale.CustomerID, 10)
	}
	notes := ""
	if sale.Notes != nil {
		notes = *sale.Notes
	}
	return []string{
		strconv.FormatInt(sale.ID, 10),
		customer,
		sale.SaleDate.Format("2006-01-02"),
		shared.FormatMoney(sale.TotalPrice),
		shared.FormatMoney(sale.PartialPayment),
		strconv.FormatBool(sale.Owes),
		notes,
	}
}
