// Command seed loads the demo product catalogue into the database.
//
// Usage:
//
//	seed                          import from https://dummyjson.com/products?limit=100
//	seed -source ./products.json  import from a local file
//	seed -delete                  remove every catalogue product (products without an owner)
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/shopwise/backend/internal/config"
	"github.com/shopwise/backend/internal/database"
)

const defaultSource = "https://dummyjson.com/products?limit=100"

func main() {
	source := flag.String("source", defaultSource, "catalogue URL or file path")
	remove := flag.Bool("delete", false, "delete imported products instead of importing")
	timeout := flag.Duration("timeout", time.Minute, "overall timeout")
	flag.Parse()

	config.Load(".env")

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db := database.InitDatabase(ctx)
	defer db.Close()

	repo := database.NewProductRepository(db)

	if *remove {
		n, err := repo.DeleteUnowned(ctx)
		if err != nil {
			log.Fatalf("[SEED] %v", err)
		}
		log.Printf("[SEED] Deleted %d products", n)
		return
	}

	products, err := loadCatalogue(ctx, *source)
	if err != nil {
		log.Fatalf("[SEED] Failed to load %s: %v", *source, err)
	}

	n, err := repo.Import(ctx, products)
	if err != nil {
		log.Fatalf("[SEED] %v", err)
	}
	log.Printf("[SEED] Imported %d of %d products", n, len(products))
}
