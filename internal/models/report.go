package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type ReportTrigger string

const (
	TriggerManual    ReportTrigger = "manual"
	TriggerScheduled ReportTrigger = "scheduled"
)

type Report struct {
	BaseModel

	Period          string          `gorm:"not null;index" json:"periodo"`
	StartDate       time.Time       `gorm:"not null" json:"inicio"`
	EndDate         time.Time       `gorm:"not null" json:"fim"`
	Path            string          `gorm:"not null" json:"arquivo"`
	OrderCount      int             `gorm:"not null" json:"quantidadePedidos"`
	Revenue         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalVendas"`
	UnitsSold       int             `gorm:"not null" json:"produtosVendidos"`
	StatusBreakdown datatypes.JSON  `json:"porStatus"`
	Trigger         ReportTrigger   `gorm:"type:varchar(16);not null" json:"origem"`
}

// FileName is the download name of the report, e.g. relatorio-2024-01-01_2024-01-31.csv.
func (r Report) FileName() string {
	return "relatorio-" + strings.ReplaceAll(r.Period, ":", "_") + ".csv"
}
