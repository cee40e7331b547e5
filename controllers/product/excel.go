package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/doughreme/bakery-api/apperr"
	"github.com/doughreme/bakery-api/schemas"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/tealeg/xlsx"
)

// Spreadsheet column order, shared by import and export.
var excelHeaders = []string{
	"ID", "Name", "Description", "Price", "Category",
	"ImageURL", "InStock", "CreatedAt", "UpdatedAt",
}

const minImportCells = 5 // ID through Category

// ImportProductsFromExcel handles POST /api/v1/products/import with a
// multipart "file" field holding an .xlsx workbook.
func ImportProductsFromExcel(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			_ = c.Error(apperr.Validation("Excel file is required"))
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			_ = c.Error(err)
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			_ = c.Error(apperr.Validation("Failed to parse Excel file"))
			return
		}
		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			_ = c.Error(apperr.Validation("Excel file is empty or missing header row"))
			return
		}

		rows, skipped := parseProductRows(xlFile.Sheets[0])
		res, err := svc.Import(c.Request.Context(), rows)
		if err != nil {
			_ = c.Error(err)
			return
		}
		res.Skipped += skipped

		log.WithFields(log.Fields{
			"created": res.Created,
			"updated": res.Updated,
			"skipped": res.Skipped,
		}).Info("📥 product import completed")
		c.JSON(http.StatusOK, res)
	}
}

// parseProductRows converts every data row after the header. Rows that cannot
// be parsed are counted, not returned.
func parseProductRows(sheet *xlsx.Sheet) ([]ImportRow, int) {
	var rows []ImportRow
	skipped := 0

	for i := 1; i < len(sheet.Rows); i++ {
		row := sheet.Rows[i]
		if row == nil || len(row.Cells) < minImportCells {
			skipped++
			continue
		}

		get := func(index int) string {
			if index < len(row.Cells) {
				return strings.TrimSpace(row.Cells[index].String())
			}
			return ""
		}

		parsed, ok := parseProductRow(get)
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, parsed)
	}
	return rows, skipped
}

func parseProductRow(get func(int) string) (ImportRow, bool) {
	var out ImportRow

	if idStr := get(0); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			return out, false
		}
		out.ID = uint(id)
	}

	price, err := decimal.NewFromString(get(3))
	if err != nil {
		return out, false
	}

	inStock := true
	if v := get(6); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return out, false
		}
		inStock = b
	}

	out.Product = schemas.ProductCreate{
		Name:        get(1),
		Description: optionalString(get(2)),
		Price:       price,
		Category:    get(4),
		ImageURL:    optionalString(get(5)),
		InStock:     &inStock,
	}
	return out, true
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
