package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/lojinha-dev/lojinha/db"
	"github.com/lojinha-dev/lojinha/internal/config"
	"github.com/lojinha-dev/lojinha/internal/logger"
	"github.com/lojinha-dev/lojinha/internal/models"
	"github.com/lojinha-dev/lojinha/internal/services"
	"github.com/lojinha-dev/lojinha/internal/store"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
)

func main() {
	var (
		period  = flag.String("periodo", services.PreviousDay(time.Now()), "report period as YYYY-MM-DD:YYYY-MM-DD")
		outDir  = flag.String("dir", "", "output directory (defaults to REPORTS_DIR)")
		timeout = flag.Duration("timeout", 2*time.Minute, "maximum time to build the report")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("Error loading .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	dir := cfg.ReportsDir
	if *outDir != "" {
		dir = *outDir
	}

	gdb, err := db.Open(db.Config{Driver: cfg.DBDriver, DSN: cfg.DatabaseURL, Debug: cfg.DBDebug})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close(gdb)

	if err := db.MigrateDatabase(gdb); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	reports := services.NewReportService(store.NewOrderStore(gdb), store.NewReportStore(gdb), dir)

	report, err := reports.Generate(ctx, *period, models.TriggerManual)

	switch {
	case errors.Is(err, services.ErrNoSales):
		fmt.Printf("Nenhuma venda encontrada em %s\n", *period)
		return
	case errors.Is(err, services.ErrInvalidPeriod):
		log.Fatalf("Período inválido %q: use AAAA-MM-DD:AAAA-MM-DD", *period)
	case err != nil:
		log.Fatalf("Failed to generate report: %v", err)
	}

	if err := printSummary(report); err != nil {
		log.Fatalf("Failed to print summary: %v", err)
	}
}

func printSummary(report *models.Report) error {
	rows := [][]string{
		{"Período", report.Period},
		{"Pedidos", fmt.Sprintf("%d", report.OrderCount)},
		{"Produtos vendidos", fmt.Sprintf("%d", report.UnitsSold)},
		{"Total de vendas", report.Revenue.StringFixed(2)},
	}

	var byStatus map[string]int
	if err := json.Unmarshal(report.StatusBreakdown, &byStatus); err != nil {
		return err
	}

	statuses := make([]string, 0, len(byStatus))
	for status := range byStatus {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)

	for _, status := range statuses {
		rows = append(rows, []string{"Status " + status, fmt.Sprintf("%d", byStatus[status])})
	}

	rows = append(rows, []string{"Arquivo", report.Path})

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Campo", "Valor")

	if err := table.Bulk(rows); err != nil {
		return err
	}

	return table.Render()
}
