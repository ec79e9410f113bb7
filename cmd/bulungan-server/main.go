package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/shopspring/decimal"

	"github.com/palengke-io/bulungan/gateway"
	"github.com/palengke-io/bulungan/house"
	"github.com/palengke-io/bulungan/money"
	"github.com/palengke-io/bulungan/settlement"
)

func main() {
	terms, err := settlementTermsFromEnv()
	if err != nil {
		log.Fatalf("ERROR: Invalid settlement configuration: %v", err)
	}
	log.Printf("INFO: Settlement terms: commission rate %s, labor fee %s",
		terms.CommissionRate.String(), money.Format(terms.LaborFee))

	h := house.New(terms, nil)
	router := gateway.NewRouter(&gateway.Handler{House: h})

	addr := getenv("HTTP_ADDR", ":8080")
	log.Printf("INFO: Auction gateway listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, router))
}

// settlementTermsFromEnv builds the platform terms, falling back to the
// reference values (6%, ₱25.00) when unset.
func settlementTermsFromEnv() (settlement.Config, error) {
	terms := settlement.DefaultConfig()

	if v := os.Getenv("COMMISSION_RATE"); v != "" {
		rate, err := decimal.NewFromString(v)
		if err != nil {
			return settlement.Config{}, fmt.Errorf("invalid COMMISSION_RATE %q: %w", v, err)
		}
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
			return settlement.Config{}, fmt.Errorf("COMMISSION_RATE %q must be within [0, 1]", v)
		}
		terms.CommissionRate = rate
	}

	if v := os.Getenv("LABOR_FEE"); v != "" {
		fee, err := money.Parse(v)
		if err != nil {
			return settlement.Config{}, fmt.Errorf("invalid LABOR_FEE: %w", err)
		}
		terms.LaborFee = fee
	}

	return terms, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
