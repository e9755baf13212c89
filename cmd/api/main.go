package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	apiprojection "school_projection/pkg/api/projection"
	"school_projection/pkg/api/settings"
	coreprojection "school_projection/pkg/core/projection"
	"school_projection/pkg/core/store"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func defaultSettings() coreprojection.AdminSettings {
	return coreprojection.AdminSettings{
		CPIRate:          decimal.RequireFromString("0.03"),
		DiscountRate:     decimal.RequireFromString("0.08"),
		ZakatRate:        decimal.RequireFromString("0.025"),
		DebtRate:         decimal.RequireFromString("0.06"),
		DepositRate:      decimal.RequireFromString("0.02"),
		DepreciationRate: decimal.RequireFromString("0.05"),
		WorkingCapital: coreprojection.WorkingCapitalDays{
			ReceivableDays: 30,
			PayableDays:    45,
			DeferredDays:   60,
			AccruedDays:    15,
		},
	}
}

func main() {
	// Load environment variables
	godotenv.Load()

	// Persistence is optional: without DATABASE_URL the API still serves
	// calculations, it just cannot store runs.
	if err := store.InitDB(context.Background()); err != nil {
		fmt.Printf("[WARNING] Database unavailable, runs will not be persisted: %v\n", err)
	} else {
		defer store.Close()
	}

	settingsHandler := settings.NewHandler(defaultSettings(), nil)
	http.HandleFunc("/api/settings", settingsHandler.HandleSettings)

	http.HandleFunc("/api/projection/calculate", apiprojection.HandleCalculate)
	http.HandleFunc("/api/projection/run", apiprojection.HandleGetRun)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	fmt.Printf("API server starting on %s...\n", addr)
	fmt.Println("  - GET/PUT /api/settings")
	fmt.Println("  - POST    /api/projection/calculate")
	fmt.Println("  - GET     /api/projection/run?id=<uuid>")

	if err := http.ListenAndServe(addr, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
