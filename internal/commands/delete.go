package commands

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/opendatateam/ucli/internal/models"
	"github.com/opendatateam/ucli/internal/services"
)

// DefaultIDColumn is the CSV column holding identifiers unless --column says otherwise
const DefaultIDColumn = "id"

// DeleteOptions configures a bulk deletion
type DeleteOptions struct {
	Path     string
	Column   string
	ItemType models.ItemType
}

// DeleteSummary tallies the outcome of every row
type DeleteSummary struct {
	Rows           int
	Deleted        int
	AlreadyDeleted int
	NotFound       int
	Failed         int
	Skipped        int
}

// Delete removes every object listed in a CSV file.
// A failing row is logged and never stops the loop.
func Delete(ctx context.Context, env *Env, opts DeleteOptions) (*DeleteSummary, error) {
	if opts.Column == "" {
		opts.Column = DefaultIDColumn
	}
	if opts.ItemType == "" {
		opts.ItemType = models.ItemDataset
	}
	label := opts.ItemType.Label()

	env.Out.Header(fmt.Sprintf("Massive %s deletion from a CSV file", opts.ItemType.Plural()))

	table, err := services.LoadCSV(opts.Path, false)
	if err != nil {
		return nil, err
	}
	if err := table.RequireColumn(opts.Column); err != nil {
		return nil, err
	}

	summary := &DeleteSummary{Rows: len(table.Rows)}
	bar := env.progressBar(len(table.Rows), "Deleting "+opts.ItemType.Plural())

	for _, row := range table.Rows {
		id := row.Get(opts.Column)
		if id == "" {
			env.Logger.Warnf("Line %d has no %s identifier in column %s", row.Line, label, opts.Column)
			summary.Skipped++
			_ = bar.Add(1)
			continue
		}

		result, err := env.API.Delete(ctx, opts.ItemType.ObjectPath(id), services.AllowFailure())
		if err != nil {
			_ = bar.Finish()
			return summary, err
		}

		switch result.StatusCode {
		case http.StatusNoContent:
			summary.Deleted++
			env.rowInfof("Deleted %s %s", label, id)
		case http.StatusGone:
			summary.AlreadyDeleted++
			env.Logger.Infof("%s %s is already deleted", capitalize(label), id)
		case http.StatusNotFound:
			summary.NotFound++
			env.Logger.Warnf("%s %s does not exist", capitalize(label), id)
		default:
			summary.Failed++
			env.Logger.Errorf("Unable to delete %s %s: %s (%d)", label, id, http.StatusText(result.StatusCode), result.StatusCode)
			env.Logger.Detail(result.Message)
		}
		_ = bar.Add(1)
	}

	_ = bar.Finish()
	env.Out.Success(fmt.Sprintf("Deleted %d %s(s)", summary.Deleted, label))
	return summary, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
