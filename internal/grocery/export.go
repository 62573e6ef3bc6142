package grocery

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hammamikhairi/mealcraft/internal/domain"
)

const sheet = "Sheet1"

var exportHeader = []interface{}{"Item", "Best Store", "Price", "Unit", "In Stock", "Stores Compared"}

// ExportXLSX writes the shopping list to a spreadsheet, one row per
// ingredient with its best known price, followed by a total row.
// Ingredients without a comparison are written without a price.
func ExportXLSX(path string, list domain.ShoppingList, results []Comparison) error {
	byItem := make(map[string]Comparison, len(results))
	for _, r := range results {
		byItem[r.Item] = r
	}

	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := sw.SetRow("A1", exportHeader); err != nil {
		return fmt.Errorf("export: header: %w", err)
	}

	var total float64
	row := 2
	for _, item := range list.Ingredients {
		cells := []interface{}{item, "", "", "", "", 0}
		if r, ok := byItem[item]; ok {
			cells[5] = len(r.Offers)
			if r.Found {
				cells[1] = r.Best.StoreName
				cells[2] = r.Best.Price
				cells[3] = r.Best.Unit
				cells[4] = yesNo(r.Best.InStock)
				total += r.Best.Price
			}
		}
		addr, _ := excelize.CoordinatesToCellName(1, row)
		if err := sw.SetRow(addr, cells); err != nil {
			return fmt.Errorf("export: row %d: %w", row, err)
		}
		row++
	}

	addr, _ := excelize.CoordinatesToCellName(1, row)
	if err := sw.SetRow(addr, []interface{}{"Total", "", total}); err != nil {
		return fmt.Errorf("export: total: %w", err)
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return f.SaveAs(path)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
