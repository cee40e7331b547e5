package productcontroller

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

const excelTimeLayout = "2006-01-02 15:04:05"

// ExportProductsToExcel streams the whole catalog as products.xlsx.
func ExportProductsToExcel(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.All(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			_ = c.Error(err)
			return
		}

		headerRow := sheet.AddRow()
		for _, h := range excelHeaders {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()

			row.AddCell().SetInt(int(p.ID))
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(deref(p.Description))
			row.AddCell().SetValue(p.Price.StringFixed(2))
			row.AddCell().SetValue(p.Category)
			row.AddCell().SetValue(deref(p.ImageURL))
			row.AddCell().SetValue(strconv.FormatBool(p.InStock))
			row.AddCell().SetValue(p.CreatedAt.Format(excelTimeLayout))
			row.AddCell().SetValue(p.UpdatedAt.Format(excelTimeLayout))
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			_ = c.Error(err)
			return
		}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
