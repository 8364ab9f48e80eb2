package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"construction-tracker-api/config"
	"construction-tracker-api/services"

	"github.com/joho/godotenv"
)

var targets = map[string]func(*services.CatalogImportService, string) (*services.ImportResult, error){
	"material-categories": (*services.CatalogImportService).ImportMaterialCategories,
	"labor-categories":    (*services.CatalogImportService).ImportLaborCategories,
	"units":               (*services.CatalogImportService).ImportUnits,
	"materials":           (*services.CatalogImportService).ImportMaterialCatalog,
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: catalog-import -target {material-categories|labor-categories|units|materials} <file>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Loads reference data from a pipe/comma delimited .txt file or an .xlsx")
	fmt.Fprintln(os.Stderr, "spreadsheet. Existing rows are skipped, never overwritten.")
	flag.PrintDefaults()
}

func main() {
	target := flag.String("target", "", "table to load: material-categories, labor-categories, units or materials")
	flag.Usage = usage
	flag.Parse()

	importer, ok := targets[*target]
	if !ok || flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	config.InitDB()
	if err := config.MigrateDB(); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	result, err := importer(services.NewCatalogImportService(config.DB), path)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	for _, warning := range result.Warnings {
		fmt.Println("  " + warning)
	}
	fmt.Printf("Done: %d created, %d skipped\n", result.Created, result.Skipped)
}
