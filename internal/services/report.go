package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lojinha-dev/lojinha/internal/metrics"
	"github.com/lojinha-dev/lojinha/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

var (
	ErrInvalidPeriod = errors.New("period must be YYYY-MM-DD:YYYY-MM-DD with start <= end")
	ErrNoSales       = errors.New("no sales in period")
)

const dateLayout = "2006-01-02"

var csvHeader = []string{"ID Pedido", "Data do Pedido", "Status", "Total", "Quantidade de Itens"}

// Period is an inclusive date range. End is the last instant of the end day.
type Period struct {
	Start time.Time
	End   time.Time
}

func ParsePeriod(raw string) (Period, error) {
	parts := strings.Split(raw, ":")

	if len(parts) != 2 {
		return Period{}, ErrInvalidPeriod
	}

	start, err := time.ParseInLocation(dateLayout, parts[0], time.UTC)
	if err != nil {
		return Period{}, ErrInvalidPeriod
	}

	end, err := time.ParseInLocation(dateLayout, parts[1], time.UTC)
	if err != nil {
		return Period{}, ErrInvalidPeriod
	}

	if start.After(end) {
		return Period{}, ErrInvalidPeriod
	}

	return Period{Start: start, End: end.Add(24*time.Hour - time.Millisecond)}, nil
}

func (p Period) String() string {
	return p.Start.Format(dateLayout) + ":" + p.End.Format(dateLayout)
}

// PreviousDay is the one-day period before now, in UTC.
func PreviousDay(now time.Time) string {
	day := now.UTC().AddDate(0, 0, -1).Format(dateLayout)
	return day + ":" + day
}

type ReportService struct {
	orders  OrderRepository
	reports ReportRepository
	dir     string
}

func NewReportService(orders OrderRepository, reports ReportRepository, dir string) *ReportService {
	return &ReportService{orders: orders, reports: reports, dir: dir}
}

// Generate writes the CSV for the period and records it in the report history.
// A period without orders yields ErrNoSales and writes nothing.
func (s *ReportService) Generate(ctx context.Context, raw string, trigger models.ReportTrigger) (*models.Report, error) {
	period, err := ParsePeriod(raw)

	if err != nil {
		return nil, err
	}

	orders, err := s.orders.ListBetween(ctx, period.Start, period.End)

	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	if len(orders) == 0 {
		return nil, ErrNoSales
	}

	revenue := decimal.Zero
	units := 0
	byStatus := map[models.OrderStatus]int{}

	for _, order := range orders {
		revenue = revenue.Add(order.Total)
		units += order.UnitsSold()
		byStatus[order.Status]++
	}

	path, err := s.writeCSV(period, orders, revenue, units)

	if err != nil {
		return nil, err
	}

	breakdown, err := json.Marshal(byStatus)

	if err != nil {
		return nil, fmt.Errorf("encode status breakdown: %w", err)
	}

	report := &models.Report{
		Period:          period.String(),
		StartDate:       period.Start,
		EndDate:         period.End,
		Path:            path,
		OrderCount:      len(orders),
		Revenue:         revenue,
		UnitsSold:       units,
		StatusBreakdown: datatypes.JSON(breakdown),
		Trigger:         trigger,
	}

	if err := s.reports.Create(ctx, report); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("save report: %w", err)
	}

	metrics.ReportsGenerated.WithLabelValues(string(trigger)).Inc()

	return report, nil
}

func (s *ReportService) History(ctx context.Context) ([]models.Report, error) {
	return s.reports.List(ctx)
}

// writeCSV writes the report to a fresh file under dir, so concurrent exports of
// the same period never share a file.
func (s *ReportService) writeCSV(period Period, orders []models.Order, revenue decimal.Decimal, units int) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	pattern := fmt.Sprintf("relatorio-%s_%s-*.csv", period.Start.Format(dateLayout), period.End.Format(dateLayout))

	file, err := os.CreateTemp(s.dir, pattern)

	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}

	path := file.Name()

	records := [][]string{csvHeader}

	for _, order := range orders {
		records = append(records, []string{
			order.ID.String(),
			order.OrderDate.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
			string(order.Status),
			order.Total.StringFixed(2),
			strconv.Itoa(order.UnitsSold()),
		})
	}

	records = append(records, []string{"", "", "Total", revenue.StringFixed(2), strconv.Itoa(units)})

	if err := csv.NewWriter(file).WriteAll(records); err != nil {
		file.Close()
		os.Remove(path)
		return "", fmt.Errorf("write report file: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close report file: %w", err)
	}

	return path, nil
}
