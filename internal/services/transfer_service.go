package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"pizza_pantry_backend/internal/models"
	"pizza_pantry_backend/pkg/utils"
)

// CSVHeader is the first row of every CSV export.
var CSVHeader = []string{"Name", "Category", "Quantity", "Unit", "Reorder Threshold", "Location", "Status"}

// TransferService converts item collections to and from CSV and JSON files.
// It does not touch storage; callers hand the parsed items to the store.
type TransferService struct {
	now func() time.Time
}

func NewTransferService() *TransferService {
	return &TransferService{now: time.Now}
}

// ExportCSV writes one row per item under CSVHeader.
func (s *TransferService) ExportCSV(items []models.InventoryItem) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(CSVHeader); err != nil {
		return nil, err
	}
	for _, item := range items {
		status := "In Stock"
		if item.IsLowStock() {
			status = "Low Stock"
		}
		row := []string{
			item.Name,
			item.Category,
			utils.FormatQuantity(item.Quantity),
			item.Unit,
			utils.FormatQuantity(item.ReorderThreshold),
			item.Location,
			status,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON writes the items as an indented JSON array.
func (s *TransferService) ExportJSON(items []models.InventoryItem) ([]byte, error) {
	if items == nil {
		items = []models.InventoryItem{}
	}
	return json.MarshalIndent(items, "", "  ")
}

// importedItem also accepts the "_id" key written by older exports.
type importedItem struct {
	models.InventoryItem
	LegacyID string `json:"_id"`
}

// ImportJSON parses a JSON array of items. Missing timestamps default to now.
func (s *TransferService) ImportJSON(data []byte) ([]models.InventoryItem, error) {
	var parsed []importedItem
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON: %v", ErrInvalidImport, err)
	}
	if parsed == nil {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrInvalidImport)
	}

	now := s.now().UTC()
	items := make([]models.InventoryItem, 0, len(parsed))
	for _, p := range parsed {
		item := p.InventoryItem
		if item.ID == "" {
			item.ID = p.LegacyID
		}
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		if item.UpdatedAt.IsZero() {
			item.UpdatedAt = now
		}
		items = append(items, item)
	}
	return items, nil
}

// ImportCSV parses a header-driven CSV. Columns are matched by header name,
// case-insensitively. Rows whose column count differs from the header, or
// whose name is empty, are skipped. Unparseable numbers read as zero.
func (s *TransferService) ImportCSV(data []byte) ([]models.InventoryItem, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var records [][]string
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse CSV: %v", ErrInvalidImport, err)
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		records = append(records, record)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: CSV must have at least a header row and one data row", ErrInvalidImport)
	}

	columns := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := columns[h]; !dup {
			columns[h] = i
		}
	}
	get := func(row []string, name string) string {
		if i, ok := columns[name]; ok {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	number := func(row []string, name string) float64 {
		f, err := utils.StrToFloat(get(row, name))
		if err != nil {
			return 0
		}
		return f
	}

	now := s.now().UTC()
	items := []models.InventoryItem{}
	for _, row := range records[1:] {
		if len(row) != len(records[0]) {
			continue
		}
		name := get(row, "name")
		if name == "" {
			continue
		}
		items = append(items, models.InventoryItem{
			Name:             name,
			Category:         get(row, "category"),
			Quantity:         number(row, "quantity"),
			Unit:             get(row, "unit"),
			ReorderThreshold: number(row, "reorder threshold"),
			Location:         get(row, "location"),
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}
	return items, nil
}

// Import picks JSON when the payload starts with '[' and CSV otherwise.
func (s *TransferService) Import(data []byte) ([]models.InventoryItem, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidImport)
	}
	if trimmed[0] == '[' {
		return s.ImportJSON(trimmed)
	}
	return s.ImportCSV(data)
}
