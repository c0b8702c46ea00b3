package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
)

// readEntries lee filas "SKU, Name, Price, InitialQty". La primera fila se toma como
// cabecera si su columna de precio no es numérica. InitialQty vacío equivale a 0.
func readEntries(r io.Reader, latin1 bool) ([]inventory.BulkEntry, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	cr.Comment = '#'

	var entries []inventory.BulkEntry
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		if isBlank(rec) {
			continue
		}
		if len(rec) < 3 || len(rec) > 4 {
			return nil, fmt.Errorf("línea %d: se esperaban 3 o 4 columnas, hay %d", line, len(rec))
		}
		price, err := decimal.NewFromString(strings.TrimSpace(rec[2]))
		if err != nil {
			if line == 1 && len(entries) == 0 {
				continue // cabecera
			}
			return nil, fmt.Errorf("línea %d: precio inválido %q", line, rec[2])
		}
		var qty int64
		if len(rec) == 4 && strings.TrimSpace(rec[3]) != "" {
			qty, err = strconv.ParseInt(strings.TrimSpace(rec[3]), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("línea %d: cantidad inválida %q", line, rec[3])
			}
		}
		entries = append(entries, inventory.BulkEntry{
			SKU:        strings.TrimSpace(rec[0]),
			Name:       strings.TrimSpace(rec[1]),
			Price:      price,
			InitialQty: qty,
		})
	}
	return entries, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
