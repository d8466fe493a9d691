// seed_nfe genera un script SQL que carga el catálogo inicial de un tenant a partir
// de una NF-e de compra (proveedor + productos), útil para poblar entornos de demo.
//
// Uso: go run ./cmd/seed_nfe <tenant_id> [ruta/nota.xml]
// Por defecto busca nota.xml en el directorio actual.
// Escribe: internal/infrastructure/postgres/seeds/<tenant_id>.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Varejo-api/internal/domain/entity"
	"github.com/jhoicas/Varejo-api/internal/domain/inventory"
	"github.com/jhoicas/Varejo-api/internal/infrastructure/nfe"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: seed_nfe <tenant_id> [nota.xml]")
		os.Exit(2)
	}
	tenantID := os.Args[1]
	xmlPath := "nota.xml"
	if len(os.Args) > 2 {
		xmlPath = os.Args[2]
	}

	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	invoice, err := nfe.Parse(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer NF-e: %v\n", err)
		os.Exit(1)
	}
	if err := inventory.ValidateImport(invoice); err != nil {
		fmt.Fprintf(os.Stderr, "NF-e inválida: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outDir := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "seeds")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	outPath := filepath.Join(outDir, tenantID+".sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	fmt.Fprintf(out, "-- Catálogo inicial del tenant %s\n", tenantID)
	fmt.Fprintf(out, "-- Generado desde %s (%s)\n\n", filepath.Base(xmlPath), now)

	out.WriteString("-- 1. Proveedor\n")
	fmt.Fprintf(out, "INSERT INTO suppliers (id, tenant_id, name, document, created_at, updated_at)\n")
	fmt.Fprintf(out, "VALUES ('%s', '%s', '%s', '%s', now(), now())\n",
		uuid.New().String(), escapeSQL(tenantID), escapeSQL(invoice.Supplier.Name), escapeSQL(invoice.Supplier.Document))
	out.WriteString("ON CONFLICT (tenant_id, document) DO NOTHING;\n\n")

	// Los códigos ya vistos se omiten: la NF-e puede repetir el mismo producto en varias líneas.
	out.WriteString("-- 2. Productos\n")
	seen := make(map[string]bool)
	written := 0
	for _, item := range invoice.Items {
		code := strings.TrimSpace(item.Code)
		if code == "" {
			code = "PROD" + strings.ToUpper(uuid.New().String()[:8])
		}
		if seen[code] {
			continue
		}
		seen[code] = true
		name := strings.TrimSpace(item.Name)
		fmt.Fprintf(out, "INSERT INTO products (id, tenant_id, code, barcode, name, name_key, description, category, unit, cost_price, sale_price, stock, min_stock, status)\n")
		fmt.Fprintf(out, "VALUES ('%s', '%s', '%s', '%s', '%s', '%s', 'Importado de NFe', '%s', '%s', %s, %s, %s, %s, '%s')\n",
			uuid.New().String(), escapeSQL(tenantID), escapeSQL(code), escapeSQL(item.Barcode),
			escapeSQL(name), escapeSQL(inventory.NameKey(name)),
			entity.DefaultCategory, inventory.NormalizeUnit(item.Unit),
			item.UnitPrice.String(), inventory.SalePriceFor(item.UnitPrice).String(), item.Quantity.String(),
			inventory.DefaultMinStock.String(), entity.ProductStatusActive)
		out.WriteString("ON CONFLICT (tenant_id, code) DO NOTHING;\n")
		written++
	}

	fmt.Printf("Generado %s: proveedor %s, %d productos\n", outPath, invoice.Supplier.Name, written)
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
