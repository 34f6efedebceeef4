package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"store_sales/internal/domain/sales"
)

// Header names, matching the training data columns.
const (
	colItemWeight              = "Item_Weight"
	colItemFatContent          = "Item_Fat_Content"
	colItemVisibility          = "Item_Visibility"
	colItemType                = "Item_Type"
	colItemMRP                 = "Item_MRP"
	colOutletEstablishmentYear = "Outlet_Establishment_Year"
	colOutletSize              = "Outlet_Size"
	colOutletLocationType      = "Outlet_Location_Type"
	colOutletType              = "Outlet_Type"
)

var requiredColumns = []string{
	colItemWeight,
	colItemFatContent,
	colItemVisibility,
	colItemType,
	colItemMRP,
	colOutletEstablishmentYear,
	colOutletSize,
	colOutletLocationType,
	colOutletType,
}

// Source reads raw item records from a header-named CSV file.
// Extra columns (e.g. Item_Identifier) are ignored.
type Source struct {
	path string
}

func NewSource(path string) *Source {
	return &Source{path: path}
}

func (s *Source) ReadRecords(ctx context.Context) ([]sales.RawItemRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	return Parse(ctx, f)
}

// Parse reads every record from r. Empty Item_Weight and Outlet_Size cells are absent values.
func Parse(ctx context.Context, r io.Reader) ([]sales.RawItemRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}
	for _, c := range requiredColumns {
		if _, ok := index[c]; !ok {
			return nil, fmt.Errorf("missing column %s", c)
		}
	}

	var out []sales.RawItemRecord
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseRow(row []string, index map[string]int) (sales.RawItemRecord, error) {
	cell := func(col string) string {
		return strings.TrimSpace(row[index[col]])
	}

	var rec sales.RawItemRecord
	var err error

	if v := cell(colItemWeight); v != "" {
		w, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return rec, fmt.Errorf("%s: %w", colItemWeight, err)
		}
		rec.ItemWeight = &w
	}
	if v := cell(colOutletSize); v != "" {
		rec.OutletSize = &v
	}

	if rec.ItemVisibility, err = strconv.ParseFloat(cell(colItemVisibility), 64); err != nil {
		return rec, fmt.Errorf("%s: %w", colItemVisibility, err)
	}
	if rec.ItemMRP, err = strconv.ParseFloat(cell(colItemMRP), 64); err != nil {
		return rec, fmt.Errorf("%s: %w", colItemMRP, err)
	}
	if rec.OutletEstablishmentYear, err = strconv.Atoi(cell(colOutletEstablishmentYear)); err != nil {
		return rec, fmt.Errorf("%s: %w", colOutletEstablishmentYear, err)
	}

	rec.ItemFatContent = cell(colItemFatContent)
	rec.ItemType = cell(colItemType)
	rec.OutletLocationType = cell(colOutletLocationType)
	rec.OutletType = cell(colOutletType)
	return rec, nil
}
