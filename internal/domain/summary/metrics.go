// Package summary derives dashboard metrics from a record set.
package summary

import (
	"math"

	"github.com/rpggio/reworkdesk/internal/domain/record"
	"github.com/samber/lo"
)

// ReworkMeans holds the mean rework percentages of one business unit.
type ReworkMeans struct {
	GD  float64 `json:"gd_rework"`
	POC float64 `json:"poc_rework"`
}

// StatusCount is one bar of the status chart.
type StatusCount struct {
	Status record.ContentStatus `json:"status"`
	Count  int                  `json:"count"`
}

// BURework is one group of the rework-by-BU chart.
type BURework struct {
	BU string `json:"bu"`
	ReworkMeans
}

// Metrics are the summary cards and chart data for a record set.
type Metrics struct {
	Total              int                          `json:"total"`
	Completed          int                          `json:"completed"`
	InProgress         int                          `json:"in_progress"`
	CompletionRate     float64                      `json:"completion_rate"`
	AvgGDRework        float64                      `json:"avg_gd_rework"`
	StatusDistribution map[record.ContentStatus]int `json:"status_distribution"`
	ReworkByBU         map[string]ReworkMeans       `json:"rework_by_bu"`
	StatusSeries       []StatusCount                `json:"status_series"`
	ReworkSeries       []BURework                   `json:"rework_series"`
}

// Aggregate computes metrics over records. It is total: an empty set
// yields zero values and empty, non-nil collections.
func Aggregate(records []record.Record) Metrics {
	m := Metrics{
		Total:              len(records),
		StatusDistribution: map[record.ContentStatus]int{},
		ReworkByBU:         map[string]ReworkMeans{},
		StatusSeries:       []StatusCount{},
		ReworkSeries:       []BURework{},
	}
	if m.Total == 0 {
		return m
	}

	m.Completed = lo.CountBy(records, func(rec record.Record) bool {
		return rec.ContentStatus == record.StatusCompleted
	})
	m.InProgress = lo.CountBy(records, func(rec record.Record) bool {
		return rec.ContentStatus == record.StatusInProgress
	})
	m.CompletionRate = float64(m.Completed) / float64(m.Total)
	m.AvgGDRework = roundTenth(lo.SumBy(records, func(rec record.Record) float64 {
		return rec.GDRework
	}) / float64(m.Total))

	withStatus := lo.Filter(records, func(rec record.Record, _ int) bool {
		return rec.ContentStatus != ""
	})
	byStatus := lo.GroupBy(withStatus, func(rec record.Record) record.ContentStatus {
		return rec.ContentStatus
	})
	for _, status := range lo.Uniq(lo.Map(withStatus, func(rec record.Record, _ int) record.ContentStatus {
		return rec.ContentStatus
	})) {
		count := len(byStatus[status])
		m.StatusDistribution[status] = count
		m.StatusSeries = append(m.StatusSeries, StatusCount{Status: status, Count: count})
	}

	withBU := lo.Filter(records, func(rec record.Record, _ int) bool {
		return rec.BU != ""
	})
	byBU := lo.GroupBy(withBU, func(rec record.Record) string {
		return rec.BU
	})
	for _, bu := range lo.Uniq(lo.Map(withBU, func(rec record.Record, _ int) string {
		return rec.BU
	})) {
		group := byBU[bu]
		means := ReworkMeans{
			GD:  lo.SumBy(group, func(rec record.Record) float64 { return rec.GDRework }) / float64(len(group)),
			POC: lo.SumBy(group, func(rec record.Record) float64 { return rec.POCRework }) / float64(len(group)),
		}
		m.ReworkByBU[bu] = means
		m.ReworkSeries = append(m.ReworkSeries, BURework{BU: bu, ReworkMeans: means})
	}

	return m
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
