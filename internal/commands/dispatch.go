package commands

import (
	"context"
	"fmt"

	"github.com/opendatateam/ucli/internal/models"
	"github.com/opendatateam/ucli/internal/services"
	"github.com/opendatateam/ucli/internal/ui"
)

// DispatchOptions configures a CSV-driven transfer
type DispatchOptions struct {
	Path   string
	DryRun bool
	Force  bool
}

// Dispatch transfers every item of a CSV file to the recipient named on the same row.
// Each row is independent: a row that cannot be processed is logged and skipped.
func Dispatch(ctx context.Context, env *Env, opts DispatchOptions) (*TransferSummary, error) {
	env.Out.Header("Dispatch datasets to organizations given a CSV file (with dataset and recipient IDs)")

	var me models.User
	if err := env.API.GetJSON(ctx, "me", &me); err != nil {
		return nil, err
	}

	table, err := services.LoadCSV(opts.Path, true)
	if err != nil {
		return nil, err
	}
	env.Logger.Debug("CSV loaded", "path", table.Path, "delimiter", table.Dialect, "rows", len(table.Rows))

	columns := columnOptions(table.Header)
	itemCol, err := ui.Select(env.Prompt, "Item ID column", columns)
	if err != nil {
		return nil, err
	}
	itemType, err := ui.Select(env.Prompt, "Item type", itemTypeOptions)
	if err != nil {
		return nil, err
	}
	targetCol, err := ui.Select(env.Prompt, "Target column", columns)
	if err != nil {
		return nil, err
	}
	targetType, err := ui.Select(env.Prompt, "Target type", dispatchTargetOptions)
	if err != nil {
		return nil, err
	}
	message, err := env.Prompt.Text("Please enter the transfer reason")
	if err != nil {
		return nil, err
	}

	warning := ""
	if !me.IsAdmin() {
		warning = env.Out.Warning("You are not admin, this will create a transfer request for each item " +
			"if you are not allowed to accept the transfer.\n")
	}

	env.Out.LabelArrow("Summary", fmt.Sprintf(`
Will transfer all %s (%s)
    designated by the %s column
    from %s
    to %s designated by the %s column.
The transfer reason is: %s
%s`,
		env.Out.Highlight(itemType.Plural()),
		env.Out.Highlight(len(table.Rows)),
		env.Out.Highlight(itemCol),
		env.Out.Highlight(table.Path),
		env.Out.Highlight(targetType.Plural()),
		env.Out.Highlight(targetCol),
		message,
		warning,
	))
	if !opts.Force {
		if err := env.Prompt.Confirm("Are you sure?"); err != nil {
			return nil, err
		}
	}
	env.Out.Println()

	summary := &TransferSummary{Total: len(table.Rows)}
	bar := env.progressBar(len(table.Rows), "Dispatching "+itemType.Plural())

	plan := dispatchPlan{
		itemCol:    itemCol,
		itemType:   itemType,
		targetCol:  targetCol,
		targetType: targetType,
		message:    message,
		dryRun:     opts.DryRun,
	}
	for _, row := range table.Rows {
		err := dispatchRow(ctx, env, row, plan, summary)
		_ = bar.Add(1)
		if err != nil {
			_ = bar.Finish()
			return summary, err
		}
	}

	_ = bar.Finish()
	env.Out.Success(fmt.Sprintf("Transferred %d on %d %s(s)", summary.Transferred, summary.Total, itemType.Label()))
	return summary, nil
}

type dispatchPlan struct {
	itemCol    string
	itemType   models.ItemType
	targetCol  string
	targetType models.TargetType
	message    string
	dryRun     bool
}

// dispatchRow runs fetch item → fetch target → ownership check → transfer for one row.
// Only transport errors are returned; any refused call skips the row.
func dispatchRow(ctx context.Context, env *Env, row services.CSVRow, plan dispatchPlan, summary *TransferSummary) error {
	itemLabel := plan.itemType.Label()
	targetLabel := plan.targetType.Label()

	itemID := row.Get(plan.itemCol)
	targetID := row.Get(plan.targetCol)
	if itemID == "" {
		env.Logger.Warnf("Line %d has no %s identifier in column %s", row.Line, itemLabel, plan.itemCol)
		summary.Skipped++
		return nil
	}
	if targetID == "" {
		env.Logger.Warnf("Line %d has no %s identifier in column %s", row.Line, targetLabel, plan.targetCol)
		summary.Skipped++
		return nil
	}

	result, err := env.API.Get(ctx, plan.itemType.ObjectPath(itemID),
		services.WithFields(models.ItemFields), services.AllowFailure())
	if err != nil {
		return err
	}
	if result.Failed() {
		env.Logger.Warnf("Error on line %d for %s %s: %s", row.Line, itemLabel, itemID, result.Message)
		summary.Skipped++
		return nil
	}
	var item models.Item
	if err := result.Decode(&item); err != nil {
		return err
	}

	result, err = env.API.Get(ctx, plan.targetType.ObjectPath(targetID),
		services.WithFields(plan.targetType.Fields()), services.AllowFailure())
	if err != nil {
		return err
	}
	if result.Failed() {
		env.Logger.Warnf("Error on line %d for %s %s: %s", row.Line, targetLabel, targetID, result.Message)
		summary.Skipped++
		return nil
	}

	var target party
	if plan.targetType == models.TargetOrganization {
		var org models.Organization
		if err := result.Decode(&org); err != nil {
			return err
		}
		target = party{ID: org.ID, Label: org.Name}
		// Only organization ownership is checked; a user target is never skipped.
		if item.OwnedBy(targetID) {
			env.Logger.Infof("Skipping %s %s (%s) as %s is already the owner", itemLabel, item.Title, item.ID, target.Label)
			summary.Skipped++
			return nil
		}
	} else {
		var user models.User
		if err := result.Decode(&user); err != nil {
			return err
		}
		target = party{ID: user.ID, Label: user.FullName()}
	}

	env.rowInfof("Transferring %s %s (%s) to %s", itemLabel, item.Title, item.ID, target.Label)
	if plan.dryRun {
		return nil
	}

	request := models.NewTransferRequest(plan.message, plan.itemType, item.ID, plan.targetType, target.ID)
	created, err := env.API.Post(ctx, "transfer/", request, services.AllowFailure())
	if err != nil {
		return err
	}
	if created.Failed() {
		env.Logger.Warnf("Error on line %d for %s %s: unable to create transfer to %s: %s",
			row.Line, itemLabel, item.ID, target.Label, created.Message)
		summary.Skipped++
		return nil
	}
	var transfer models.Transfer
	if err := created.Decode(&transfer); err != nil {
		return err
	}

	accept, err := acceptTransfer(ctx, env, transfer.ID)
	if err != nil {
		return err
	}
	if accept.Failed() {
		env.Logger.Warnf("Unable to complete %s %s (%s) transfer to %s: %s",
			itemLabel, item.Title, item.ID, target.Label, accept.Message)
		summary.Pending++
		return nil
	}

	env.rowInfof("Transferred %s %s (%s) to %s", itemLabel, item.Title, item.ID, target.Label)
	summary.Transferred++
	return nil
}
