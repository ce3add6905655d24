package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"pizza_pantry_backend/internal/config"
	"pizza_pantry_backend/internal/database"
	"pizza_pantry_backend/internal/models"
	"pizza_pantry_backend/internal/repositories"
	"pizza_pantry_backend/internal/services"
	"pizza_pantry_backend/pkg/utils"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}

	cfg := config.Load()
	utils.InitLogger(utils.Getenv("LOG_LEVEL", "warn"))
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()
	blobs, err := database.NewBlobStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open blob store: %v", err)
	}
	defer blobs.Close()

	// The CLI never seeds; it works on whatever the server persisted.
	audit := services.NewAuditRecorder(repositories.NewAuditRepository(blobs))
	inventory := services.NewInventoryStore(repositories.NewInventoryRepository(blobs), audit, nil)
	transfer := services.NewTransferService()

	command := strings.ToLower(os.Args[1])
	args := os.Args[2:]

	switch command {
	case "export-csv", "export-json":
		items, err := inventory.Items(ctx)
		if err != nil {
			log.Fatal(err)
		}
		var out []byte
		if command == "export-csv" {
			out, err = transfer.ExportCSV(items)
		} else {
			out, err = transfer.ExportJSON(items)
		}
		if err != nil {
			log.Fatal(err)
		}
		if err := writeExport(os.Stdout, out); err != nil {
			log.Fatalf("Failed to write export: %v", err)
		}

	case "import":
		if len(args) < 1 {
			log.Fatal("Usage: pantry import <file.csv|file.json>")
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatal(err)
		}
		parsed, err := transfer.Import(data)
		if err != nil {
			log.Fatal(err)
		}
		imported, err := inventory.ImportItems(ctx, models.SystemActor, parsed)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Imported %d items\n", len(imported))

	case "audit":
		var entries []models.AuditLogEntry
		if len(args) > 0 {
			entries = audit.GetForItem(ctx, args[0])
		} else {
			entries = audit.GetAll(ctx)
		}
		printJSON(entries)

	case "clear-audit":
		if err := audit.Clear(ctx); err != nil {
			log.Fatal(err)
		}
		fmt.Println("OK")

	case "summary":
		summary, err := services.NewReportService(inventory).Summary(ctx)
		if err != nil {
			log.Fatal(err)
		}
		printJSON(summary)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// writeExport writes out, ending it with a newline when it lacks one.
func writeExport(w io.Writer, out []byte) error {
	if len(out) > 0 && out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	_, err := w.Write(out)
	return err
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	if _, err := fmt.Println(string(b)); err != nil {
		log.Fatal(err)
	}
}

func printUsage() {
	fmt.Println("Usage: pantry <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  export-csv            Print the inventory as CSV")
	fmt.Println("  export-json           Print the inventory as JSON")
	fmt.Println("  import <file>         Append items from a CSV or JSON file")
	fmt.Println("  audit [item-id]       Print the audit trail, optionally for one item")
	fmt.Println("  clear-audit           Remove the audit trail")
	fmt.Println("  summary               Print dashboard totals")
	fmt.Println("Storage is selected with STORAGE_DRIVER and friends, as for the server.")
}
