package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"school_projection/pkg/core/projection"
	"school_projection/pkg/core/scenario"
	"school_projection/pkg/core/validate"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	godotenv.Load()

	scenarioPath := flag.String("scenario", "", "path to a scenario file (.json, .hjson, .yaml)")
	asJSON := flag.Bool("json", false, "emit the full result as JSON instead of a table")
	flag.Parse()

	if *scenarioPath == "" {
		fmt.Println("usage: projector -scenario <file> [-json]")
		os.Exit(2)
	}

	in, err := scenario.Load(*scenarioPath)
	if err != nil {
		fmt.Printf("[FATAL] %v\n", err)
		os.Exit(1)
	}

	res, err := projection.CalculateFullProjection(in)
	if err != nil {
		fmt.Printf("[FATAL] projection failed: %v\n", err)
		os.Exit(1)
	}

	articulation := validate.CheckResult(res, in.Settings, decimal.RequireFromString("0.01"))
	if !articulation.AllPassed {
		fmt.Printf("[WARNING] projection does not articulate for years %v\n", articulation.FailedYears)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(res)
		return
	}

	printTable(res)
}

func printTable(res *projection.Result) {
	for _, d := range res.Diagnostics {
		fmt.Printf("[NOTE] %s: %s\n", d.Code, d.Message)
	}
	if !res.Converged {
		fmt.Printf("[WARNING] solver did not converge after %d iterations (max diff %s)\n",
			res.Iterations, res.MaxDiff.StringFixed(2))
	}

	fmt.Printf("%-6s %14s %14s %12s %12s %14s %8s %14s %14s\n",
		"Year", "Revenue", "Staff", "Rent", "Opex", "EBITDA", "Mgn%", "NetResult", "CashClose")
	for _, yr := range res.Years {
		fmt.Printf("%-6d %14s %14s %12s %12s %14s %8s %14s %14s\n",
			yr.Year,
			yr.Revenue.StringFixed(0),
			yr.StaffCost.StringFixed(0),
			yr.Rent.StringFixed(0),
			yr.Opex.StringFixed(0),
			yr.EBITDA.StringFixed(0),
			yr.EBITDAMgn.StringFixed(1),
			yr.NetResult.StringFixed(0),
			yr.CashClosing.StringFixed(0),
		)
	}

	s := res.Summary
	fmt.Println()
	fmt.Printf("Total revenue:     %s\n", s.TotalRevenue.StringFixed(0))
	fmt.Printf("Avg EBITDA margin: %s%%\n", s.AvgEBITDAMargin.StringFixed(2))
	fmt.Printf("Avg rent load:     %s%%\n", s.AvgRentLoad.StringFixed(2))
	fmt.Printf("NPV of rent:       %s\n", s.NPVRent.StringFixed(0))
	fmt.Printf("Solver:            converged=%v iterations=%d\n", res.Converged, res.Iterations)
}
