// Package batch scores every row of a multi-ticket Jira Excel export. Rows
// are independent, so they are classified and evaluated concurrently.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/jalvord/tickettriage/internal/classify"
	"github.com/jalvord/tickettriage/internal/score"
	"github.com/jalvord/tickettriage/internal/ticket"
)

// DefaultWorkers bounds concurrent row evaluations when no worker count is
// given.
const DefaultWorkers = 4

// Result is the outcome for one export row. Err is set when the row could
// not be classified or scored; the rest of the batch still completes.
type Result struct {
	Row       int                 `json:"row"`
	TicketID  string              `json:"ticket_id,omitempty"`
	Summary   string              `json:"summary,omitempty"`
	Breakdown *score.Breakdown    `json:"breakdown,omitempty"`
	Priority  score.Priority      `json:"priority,omitempty"`
	Estimates []classify.Estimate `json:"estimates,omitempty"`
	Err       string              `json:"error,omitempty"`
}

// Report is the full batch outcome in input order.
type Report struct {
	Source  string   `json:"source"`
	Rows    int      `json:"rows"`
	Scored  int      `json:"scored"`
	Failed  int      `json:"failed"`
	Results []Result `json:"results"`
}

// Run classifies and scores every data row of the export at path using the
// given profile. Workers bounds concurrency; zero means DefaultWorkers.
func Run(ctx context.Context, path string, profile *classify.Profile, workers int) (*Report, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	header, rows, err := ticket.ReadRows(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("batch: export %s has no data rows", path)
	}

	log.Info().Str("export", path).Int("rows", len(rows)).Int("workers", workers).
		Msg("Starting batch scoring")

	results := make([]Result, len(rows))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, row := range rows {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = scoreRow(i, header, row, profile)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}

	report := &Report{Source: path, Rows: len(rows), Results: results}
	for _, r := range results {
		if r.Err == "" {
			report.Scored++
		} else {
			report.Failed++
		}
	}

	log.Info().Int("scored", report.Scored).Int("failed", report.Failed).
		Msg("Batch scoring complete")
	return report, nil
}

func scoreRow(i int, header, row []string, profile *classify.Profile) Result {
	res := Result{Row: i + 1}

	t := ticket.FromRow(header, row)
	res.TicketID = t.ID
	res.Summary = t.Summary
	if t.Summary == "" && t.Description == "" {
		res.Err = "row has no summary or description"
		log.Warn().Int("row", res.Row).Msg("Skipping empty row")
		return res
	}

	estimates, err := classify.Classify(t, profile)
	if err != nil {
		res.Err = err.Error()
		log.Warn().Int("row", res.Row).Str("ticket", t.ID).Err(err).Msg("Classification failed")
		return res
	}

	b, err := score.Evaluate(classify.Selections(estimates), score.Multipliers{})
	if err != nil {
		res.Err = err.Error()
		log.Warn().Int("row", res.Row).Str("ticket", t.ID).Err(err).Msg("Evaluation failed")
		return res
	}

	res.Breakdown = &b
	res.Priority = score.PriorityFor(b.Total)
	res.Estimates = estimates
	log.Debug().Int("row", res.Row).Str("ticket", t.ID).Int("total", b.Total).
		Str("priority", string(res.Priority)).Msg("Row scored")
	return res
}

// WriteJSON writes the report as indented JSON to path.
func WriteJSON(report *Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("batch: write report: %w", err)
	}
	return nil
}

// WriteXLSX copies the source export and appends Impact Score, Priority, and
// Error columns to each data row.
func WriteXLSX(report *Report, srcPath, dstPath string) error {
	f, err := excelize.OpenFile(srcPath)
	if err != nil {
		return fmt.Errorf("batch: reopen export: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("batch: workbook has no sheets")
	}
	sheet := sheets[0]

	header, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("batch: read sheet %q: %w", sheet, err)
	}
	if len(header) == 0 {
		return fmt.Errorf("batch: sheet %q is empty", sheet)
	}
	base := len(header[0])

	set := func(rowIdx, colOffset int, value string) error {
		cell, err := excelize.CoordinatesToCellName(base+colOffset+1, rowIdx+1)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, value)
	}

	if err := set(0, 0, "Impact Score"); err != nil {
		return fmt.Errorf("batch: write header: %w", err)
	}
	if err := set(0, 1, "Priority"); err != nil {
		return fmt.Errorf("batch: write header: %w", err)
	}
	if err := set(0, 2, "Error"); err != nil {
		return fmt.Errorf("batch: write header: %w", err)
	}

	for _, r := range report.Results {
		if r.Err != "" {
			if err := set(r.Row, 2, r.Err); err != nil {
				return fmt.Errorf("batch: write row %d: %w", r.Row, err)
			}
			continue
		}
		if err := set(r.Row, 0, strconv.Itoa(r.Breakdown.Total)); err != nil {
			return fmt.Errorf("batch: write row %d: %w", r.Row, err)
		}
		if err := set(r.Row, 1, string(r.Priority)); err != nil {
			return fmt.Errorf("batch: write row %d: %w", r.Row, err)
		}
	}

	if err := f.SaveAs(dstPath); err != nil {
		return fmt.Errorf("batch: save report workbook: %w", err)
	}
	return nil
}
