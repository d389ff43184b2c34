package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/optica-erp/internal/application/dto"
)

// Columnas esperadas: sku;nome;categoria;marca;preco;descricao
const minColumns = 5

// readCatalog decodifica el CSV exportado por la planilla del proveedor.
// Con latin1 el contenido se convierte de ISO-8859-1 a UTF-8 antes de parsear.
func readCatalog(r io.Reader, latin1 bool) ([]dto.CreateProductRequest, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []dto.CreateProductRequest
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "sku") {
			continue
		}
		if len(rec) < minColumns {
			return nil, fmt.Errorf("línea %d: se esperaban %d columnas, hay %d", line, minColumns, len(rec))
		}
		price, err := parseBRL(rec[4])
		if err != nil {
			return nil, fmt.Errorf("línea %d: precio %q: %w", line, rec[4], err)
		}
		p := dto.CreateProductRequest{
			SKU:      strings.TrimSpace(rec[0]),
			Name:     strings.TrimSpace(rec[1]),
			Category: strings.ToLower(strings.TrimSpace(rec[2])),
			Brand:    strings.TrimSpace(rec[3]),
			Price:    price,
		}
		if len(rec) > minColumns {
			p.Description = strings.TrimSpace(rec[5])
		}
		out = append(out, p)
	}
	return out, nil
}

// parseBRL acepta "1.234,56", "R$ 89,90" o "89.90".
func parseBRL(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}
