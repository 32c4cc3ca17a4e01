// Command importer loads the distributor's stock spreadsheet into the
// catalog.
//
// The spreadsheet is exported as a Latin-1, semicolon-separated CSV with
// Portuguese headers ("Título", "Saldo estoque", "Preço"). Two modes:
//
//	importer -file livros.csv -mode import   # insert titles with stock, price 0
//	importer -file livros.csv -mode precos   # update prices by title
//
// Import mode never overwrites an existing title, so reruns are safe.
package main

import (
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/osantanna/livraria-pos/internal/domain/payment"
	"github.com/osantanna/livraria-pos/internal/infrastructure/config"
	"github.com/osantanna/livraria-pos/internal/infrastructure/persistence/mysql"
)

func main() {
	filePath := flag.String("file", "", "path to the Latin-1 semicolon-separated CSV export")
	mode := flag.String("mode", "import", "import: insert new titles; precos: update prices by title")
	flag.Parse()

	if *filePath == "" {
		log.Fatal("missing -file")
	}
	if *mode != "import" && *mode != "precos" {
		log.Fatalf("unknown mode %q (want import or precos)", *mode)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("initializing database: %v", err)
	}

	file, err := os.Open(*filePath)
	if err != nil {
		log.Fatalf("opening %s: %v", *filePath, err)
	}
	defer file.Close()

	// spreadsheet exports arrive Latin-1 encoded, not UTF-8
	reader := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(file))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		log.Fatalf("reading header: %v", err)
	}

	titleCol := findColumn(header, "Título", "Titulo", "titulo")
	if titleCol < 0 {
		log.Fatal("header has no title column")
	}

	switch *mode {
	case "import":
		stockCol := findColumn(header, "Saldo estoque", "Estoque", "estoque")
		runImport(db, reader, titleCol, stockCol)
	case "precos":
		priceCol := findColumn(header, "Preço", "Preco", "Valor venda", "Valor")
		if priceCol < 0 {
			log.Fatal("header has no price column")
		}
		runPriceUpdate(db, reader, titleCol, priceCol)
	}
}

// runImport inserts one catalog row per spreadsheet line. Existing titles
// are left untouched (INSERT ... ON DUPLICATE KEY means DO NOTHING here).
func runImport(db *gorm.DB, reader *csv.Reader, titleCol, stockCol int) {
	var read, inserted, skipped int

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("reading line %d: %v", read+2, err)
		}
		read++

		title := field(record, titleCol)
		if title == "" {
			skipped++
			continue
		}

		stock := 0
		if s := field(record, stockCol); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n >= 0 {
				stock = n
			}
		}

		model := mysql.BookModel{Title: title, Stock: stock}
		result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&model)
		if result.Error != nil {
			log.Fatalf("inserting %q: %v", title, result.Error)
		}
		if result.RowsAffected > 0 {
			inserted++
		} else {
			skipped++
		}
	}

	log.Printf("import done: %d lines read, %d inserted, %d skipped", read, inserted, skipped)
}

// runPriceUpdate sets prices by exact title match. Unknown titles are
// counted but not an error: the price list usually covers more books than
// the store stocks.
func runPriceUpdate(db *gorm.DB, reader *csv.Reader, titleCol, priceCol int) {
	var read, updated, missed int

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("reading line %d: %v", read+2, err)
		}
		read++

		title := field(record, titleCol)
		if title == "" {
			continue
		}

		priceCents := payment.ParseAmountBR(field(record, priceCol))

		result := db.Model(&mysql.BookModel{}).
			Where("title = ?", title).
			Update("price", priceCents)
		if result.Error != nil {
			log.Fatalf("updating %q: %v", title, result.Error)
		}
		if result.RowsAffected > 0 {
			updated++
		} else {
			missed++
		}
	}

	log.Printf("price update done: %d lines read, %d updated, %d titles not in catalog", read, updated, missed)
}

// findColumn returns the index of the first header matching any of the
// given names, -1 when absent.
func findColumn(header []string, names ...string) int {
	for i, h := range header {
		h = strings.TrimSpace(h)
		for _, name := range names {
			if strings.EqualFold(h, name) {
				return i
			}
		}
	}
	return -1
}

func field(record []string, col int) string {
	if col < 0 || col >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[col])
}
