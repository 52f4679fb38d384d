// services/report_service.go
package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yataco/dashboard/backend/config"
	"github.com/yataco/dashboard/backend/database"
	"github.com/yataco/dashboard/backend/ingest"
	"github.com/yataco/dashboard/backend/models"
	"github.com/yataco/dashboard/backend/utils"
)

// Sessions is the process-wide session store. InitSessions replaces it.
var Sessions = NewSessionStore(config.AppConfig.Report.SessionTTL)

// InitSessions resets the store with the configured idle TTL.
func InitSessions() {
	Sessions = NewSessionStore(config.AppConfig.Report.SessionTTL)
}

func aggregateOptions() AggregateOptions {
	return AggregateOptions{
		MissingCapacity: config.AppConfig.Report.MissingCapacity,
		DetailLimit:     config.AppConfig.Report.DetailLimit,
		Locale:          config.AppConfig.Report.MonthLocale,
	}
}

// AnalyzeFile runs read -> normalize -> extract for one file without creating a session.
func AnalyzeFile(name string, data []byte) (*models.Dataset, string, error) {
	table, err := ingest.Load(name, bytes.NewReader(data), config.AppConfig.Report.Sheet)
	if err != nil {
		return nil, "", err
	}

	// Headers like " Estudiantes " come straight from spreadsheet exports.
	table.Header = CleanHeader(table.Header)
	mapping := ResolveColumns(table.Header, config.AppConfig.Columns)
	for _, field := range models.LogicalFields {
		if _, ok := mapping.Column(field); !ok {
			utils.Log.Infof("Service: %s has no %s column; using defaults", name, field)
		}
	}

	ds, err := BuildDataset(name, table, mapping, config.AppConfig.Report.MonthLocale)
	if err != nil {
		return nil, "", err
	}
	return ds, table.Format, nil
}

// LoadReport reads an uploaded file, creates a session with every site and
// period selected and returns its first view.
func LoadReport(ctx context.Context, name string, r io.Reader) (models.ReportView, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		uploadsTotal.WithLabelValues("unknown", "error").Inc()
		return models.ReportView{}, fmt.Errorf("failed to read %s: %w", name, err)
	}

	ds, format, err := AnalyzeFile(name, data)
	if err != nil {
		// Still count the failure under the format we guessed from the name.
		uploadsTotal.WithLabelValues(formatLabel(name, data), "error").Inc()
		utils.Log.Errorf("Service: failed to load %s: %v", name, err)
		return models.ReportView{}, err
	}
	uploadsTotal.WithLabelValues(format, "ok").Inc()
	uploadRecords.Observe(float64(len(ds.Records)))

	// Every upload starts with all sites and all periods selected.
	sess := Sessions.Create(ds, format, DefaultSelection(ds, config.AppConfig.Report.MonthLocale))
	utils.Log.Infof("Service: loaded %s (%s, %d records) into session %s", name, format, len(ds.Records), sess.ID)

	logUpload(ctx, sess, data) // no-op when driver is "none"
	return BuildView(*sess), nil
}

// logUpload writes the upload log entry; failures only warn.
func logUpload(ctx context.Context, sess *Session, data []byte) {
	sum := sha256.Sum256(data)
	mapped := make([]string, 0, len(sess.Dataset.Mapping))
	for _, field := range models.LogicalFields {
		if _, ok := sess.Dataset.Mapping.Column(field); ok {
			mapped = append(mapped, string(field))
		}
	}

	_, err := database.LogUpload(ctx, models.UploadLog{
		SessionID:    sess.ID,
		SourceName:   sess.Dataset.SourceName,
		Format:       sess.Format,
		RowCount:     len(sess.Dataset.Records),
		SiteCount:    len(DistinctSites(sess.Dataset)),
		MappedFields: strings.Join(mapped, ","),
		DataHash:     hex.EncodeToString(sum[:]),
	})
	if err != nil && !errors.Is(err, database.ErrNotConfigured) {
		utils.Log.Warnf("Service: could not write upload log for %s: %v", sess.Dataset.SourceName, err)
	}
}

func formatLabel(name string, data []byte) string {
	format, err := ingest.DetectFormat(name, data)
	if err != nil {
		return "unsupported"
	}
	return format
}

// GetReport returns the current view of a session.
func GetReport(id string) (models.ReportView, error) {
	sess, err := Sessions.Get(id)
	if err != nil {
		return models.ReportView{}, err
	}
	return BuildView(sess), nil
}

// ApplyFilter updates a session's selection and returns the recomputed view.
// Nil lists keep the current choice; values not in the dataset are dropped.
func ApplyFilter(id string, req models.FilterRequest) (models.ReportView, error) {
	sess, err := Sessions.Get(id)
	if err != nil {
		return models.ReportView{}, err
	}

	// Start from the current selection and overwrite only what the request sent.
	sel := sess.Selection
	if req.Sites != nil {
		sel.Sites = *req.Sites
	}
	if req.Periods != nil {
		sel.Periods = *req.Periods
	}
	if req.FilterPeriods != nil {
		sel.FilterPeriods = *req.FilterPeriods
	}
	// Drop sites/periods the dataset does not have, e.g. from a stale browser tab.
	sel = RestrictSelection(sel, AvailableFilters(sess.Dataset))

	sess, err = Sessions.UpdateSelection(id, sel)
	if err != nil {
		return models.ReportView{}, err
	}
	filterRequestsTotal.Inc()
	utils.Log.Debugf("Service: session %s now filters %d sites, %d periods", id, len(sel.Sites), len(sel.Periods))
	return BuildView(sess), nil
}

// DeleteReport drops a session.
func DeleteReport(id string) error {
	return Sessions.Delete(id)
}

// AvailableFilters lists every site and period a selection may contain.
func AvailableFilters(ds *models.Dataset) models.AvailableFilters {
	return models.AvailableFilters{
		Sites:   DistinctSites(ds),
		Periods: DistinctPeriods(ds, config.AppConfig.Report.MonthLocale),
	}
}

// BuildView filters and aggregates a session. Called on every interaction;
// datasets are small enough for a full recompute.
func BuildView(sess Session) models.ReportView {
	return ComputeView(sess.ID, sess.Dataset, sess.Selection)
}

// ComputeView is BuildView for a dataset that has no session (CLI).
func ComputeView(id string, ds *models.Dataset, sel models.FilterSelection) models.ReportView {
	records := FilterRecords(ds, sel)
	return models.ReportView{
		SessionID: id,
		Source:    ds.SourceName,
		Columns:   ds.Columns,
		Mapping:   ds.Mapping,
		Available: AvailableFilters(ds),
		Selection: sel,
		Summary:   Aggregate(records, sel.Sites, aggregateOptions()),
		Records:   records,
		Empty:     len(records) == 0,
	}
}
