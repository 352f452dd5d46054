// Package catalog contiene la lógica pura del catálogo de productos de la farmacia,
// sin dependencias de infraestructura.
package catalog

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCategory categoría asignada cuando la celda viene vacía.
const DefaultCategory = "Medicaments"

// Columnas posicionales de una línea de importación (separador ';').
const (
	colName = iota
	colBarcode
	colCategory
	colDosageForm
	colPurchasePrice
	colSellingPrice
	colVATRate
	colStock
	colThreshold
	colNotes
)

// Límites de almacenamiento: precios NUMERIC(14,4), IVA NUMERIC(6,3).
const (
	amountScale  = 4
	vatRateScale = 3
)

var (
	amountLimit  = decimal.New(1, 10)
	vatRateLimit = decimal.New(1, 3)
	maxQuantity  = decimal.NewFromInt(math.MaxInt64)

	plainNumber = regexp.MustCompile(`^\d+([.,]\d+)?$`)
)

// ProductDraft producto candidato obtenido de una línea de texto; aún no persistido.
type ProductDraft struct {
	Name          string          `json:"name"`
	Barcode       string          `json:"barcode"`
	Category      string          `json:"category"`
	DosageForm    string          `json:"dosage_form"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	VATRate       decimal.Decimal `json:"vat_rate"`
	Stock         int64           `json:"stock"`
	Threshold     int64           `json:"threshold"`
	Notes         string          `json:"notes"`
}

// LineError línea rechazada. Line es 1-based y cuenta también las líneas en blanco.
type LineError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ParseResult partición del lote: cada línea no vacía aporta a Items o a Errors, nunca a ambos.
// Lines[i] es el número de línea de entrada de Items[i].
type ParseResult struct {
	Items  []ProductDraft `json:"items"`
	Errors []LineError    `json:"errors"`
	Lines  []int          `json:"-"`
}

// ParseBatchProducts convierte texto "nombre;código;categoría;forma;compra;venta;tva;stock;umbral[;notas]"
// (un producto por línea) en borradores validados. Nunca falla para el lote completo:
// los problemas se reportan por línea en Errors.
func ParseBatchProducts(text string) ParseResult {
	res := ParseResult{
		Items:  []ProductDraft{},
		Errors: []LineError{},
		Lines:  []int{},
	}
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		n := i + 1
		draft, msg := parseLine(line)
		if msg != "" {
			res.Errors = append(res.Errors, LineError{Line: n, Message: fmt.Sprintf("línea %d: %s", n, msg)})
			continue
		}
		res.Items = append(res.Items, draft)
		res.Lines = append(res.Lines, n)
	}
	return res
}

// parseLine devuelve el borrador o, si la línea es inválida, el motivo del primer defecto encontrado.
func parseLine(line string) (ProductDraft, string) {
	cells := strings.Split(line, ";")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	// Las notas son texto libre: lo que siga a la décima columna pertenece a ellas.
	if len(cells) > colNotes+1 {
		cells[colNotes] = strings.Join(cells[colNotes:], ";")
		cells = cells[:colNotes+1]
	}
	cell := func(i int) string {
		if i < len(cells) {
			return cells[i]
		}
		return ""
	}

	d := ProductDraft{
		Name:       cell(colName),
		Barcode:    cell(colBarcode),
		Category:   cell(colCategory),
		DosageForm: cell(colDosageForm),
		Notes:      cell(colNotes),
	}
	if d.Name == "" {
		return ProductDraft{}, "nombre del producto requerido"
	}
	if d.Category == "" {
		d.Category = DefaultCategory
	}

	var ok bool
	if d.PurchasePrice, ok = parseAmount(cell(colPurchasePrice)); !ok {
		return ProductDraft{}, invalidField("purchasePrice", cell(colPurchasePrice))
	}
	if d.SellingPrice, ok = parseAmount(cell(colSellingPrice)); !ok {
		return ProductDraft{}, invalidField("sellingPrice", cell(colSellingPrice))
	}
	if d.VATRate, ok = parseAmount(cell(colVATRate)); !ok {
		return ProductDraft{}, invalidField("vatRate", cell(colVATRate))
	}
	if d.Stock, ok = parseQuantity(cell(colStock)); !ok {
		return ProductDraft{}, invalidField("stock", cell(colStock))
	}
	if d.Threshold, ok = parseQuantity(cell(colThreshold)); !ok {
		return ProductDraft{}, invalidField("threshold", cell(colThreshold))
	}

	if d.PurchasePrice, ok = NormalizeAmount(d.PurchasePrice); !ok {
		return ProductDraft{}, outOfRange("purchasePrice", cell(colPurchasePrice))
	}
	if d.SellingPrice, ok = NormalizeAmount(d.SellingPrice); !ok {
		return ProductDraft{}, outOfRange("sellingPrice", cell(colSellingPrice))
	}
	if d.VATRate, ok = NormalizeVATRate(d.VATRate); !ok {
		return ProductDraft{}, outOfRange("vatRate", cell(colVATRate))
	}
	return d, ""
}

func invalidField(field, value string) string {
	return fmt.Sprintf("valor numérico inválido en %s: %q", field, value)
}

func outOfRange(field, value string) string {
	return fmt.Sprintf("valor fuera de rango en %s: %q", field, value)
}

// parseAmount acepta "10.5" o "10,5"; vacío equivale a 0.
// Solo dígitos con una parte decimal opcional: sin signo ni exponente.
func parseAmount(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, true
	}
	if !plainNumber.MatchString(s) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// parseQuantity como parseAmount pero exige un entero ("20" o "20,0") que quepa en int64.
func parseQuantity(s string) (int64, bool) {
	d, ok := parseAmount(s)
	if !ok || !d.IsInteger() || d.GreaterThan(maxQuantity) {
		return 0, false
	}
	return d.IntPart(), true
}

// NormalizeAmount redondea un precio a la escala de la columna y verifica que quepa en ella.
func NormalizeAmount(d decimal.Decimal) (decimal.Decimal, bool) {
	d = d.Round(amountScale)
	if d.IsNegative() || d.GreaterThanOrEqual(amountLimit) {
		return decimal.Zero, false
	}
	return d, true
}

// NormalizeVATRate igual que NormalizeAmount para la tasa de IVA.
func NormalizeVATRate(d decimal.Decimal) (decimal.Decimal, bool) {
	d = d.Round(vatRateScale)
	if d.IsNegative() || d.GreaterThanOrEqual(vatRateLimit) {
		return decimal.Zero, false
	}
	return d, true
}

// BlankFirstLine vacía la primera línea no vacía (la cabecera) conservando la numeración del resto.
func BlankFirstLine(text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if strings.TrimSpace(l) != "" {
			lines[i] = ""
			break
		}
	}
	return strings.Join(lines, "\n")
}
