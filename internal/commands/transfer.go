package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/opendatateam/ucli/internal/lib"
	"github.com/opendatateam/ucli/internal/models"
	"github.com/opendatateam/ucli/internal/services"
	"github.com/opendatateam/ucli/internal/ui"
)

// MaxPageSize is the largest page requested when listing items to transfer
const MaxPageSize = 1000

// TransferSummary tallies a transfer or dispatch run
type TransferSummary struct {
	Total       int // items considered before the write phase
	Transferred int // transfers created and accepted
	Pending     int // transfers created but not accepted
	Skipped     int // already owned by the target, or unusable rows
}

// party is a resolved transfer source or target
type party struct {
	ID    string
	Label string
}

// Transfer interactively moves every item owned by one user or organization to another
func Transfer(ctx context.Context, env *Env) (*TransferSummary, error) {
	env.Out.Header("Massive datasets or reuses transfer")

	var me models.User
	if err := env.API.GetJSON(ctx, "me", &me); err != nil {
		return nil, err
	}

	itemType, err := ui.Select(env.Prompt, "Transfer types", itemTypeOptions)
	if err != nil {
		return nil, err
	}

	scope, err := ui.Select(env.Prompt, "Transfer from ?", sourceOptions(me.IsAdmin()))
	if err != nil {
		return nil, err
	}
	source, err := resolveSource(ctx, env, me, scope)
	if err != nil {
		return nil, err
	}

	targetType, err := ui.Select(env.Prompt, "Target types", transferTargetOptions)
	if err != nil {
		return nil, err
	}
	target, err := resolveTarget(ctx, env, targetType)
	if err != nil {
		return nil, err
	}

	message, err := env.Prompt.Text("Please enter the transfer reason")
	if err != nil {
		return nil, err
	}

	spin := env.spinner("Fetching " + itemType.Plural())
	spin.Start()
	var page models.ItemPage
	err = env.API.GetJSON(ctx, itemType.Endpoint(), &page,
		services.WithQuery(scope.QueryKey(), source.ID),
		services.WithQuery("page_size", strconv.Itoa(MaxPageSize)),
		services.WithFields(models.ItemPageFields),
	)
	spin.Stop(err == nil)
	if err != nil {
		return nil, err
	}

	summary := &TransferSummary{Total: len(page.Data)}
	if page.Total > len(page.Data) {
		env.Logger.Warnf("Only the first %d of %d %s will be transferred, run the command again for the rest",
			len(page.Data), page.Total, itemType.Plural())
	}

	env.Out.LabelArrow("Summary", fmt.Sprintf("\nWill transfer all %s (%s) from %s to %s.\nThe transfer reason is: %s",
		env.Out.Highlight(itemType.Plural()),
		env.Out.Highlight(summary.Total),
		env.Out.Highlight(source.Label),
		env.Out.Highlight(target.Label),
		message,
	))
	if err := env.Prompt.Confirm("Are you sure ?"); err != nil {
		return nil, err
	}

	for _, item := range page.Data {
		if targetType == models.TargetOrganization && item.OwnedBy(target.ID) {
			env.Logger.Infof("Skipping %s %s (%s) as %s is already the owner", itemType.Label(), item.Title, item.ID, target.Label)
			summary.Skipped++
			continue
		}

		env.Logger.Infof("Transferring %s(%s)", itemType.Class(), item.ID)
		request := models.NewTransferRequest(message, itemType, item.ID, targetType, target.ID)
		accept, err := requestTransfer(ctx, env, request)
		if err != nil {
			return summary, err
		}
		if accept.Failed() {
			env.Logger.Warnf("Unable to complete %s %s (%s) transfer to %s: %s",
				itemType.Label(), item.Title, item.ID, target.Label, accept.Message)
			summary.Pending++
			continue
		}

		var accepted models.Transfer
		if err := accept.Decode(&accepted); err != nil {
			return summary, err
		}
		env.rowInfof("%s(%s) transferred to %s(%s)",
			accepted.Subject.Class, accepted.Subject.ID, accepted.Recipient.Class, accepted.Recipient.ID)
		summary.Transferred++
	}

	env.Out.Success(fmt.Sprintf("Transferred %d item(s)", summary.Total))
	return summary, nil
}

func resolveSource(ctx context.Context, env *Env, me models.User, scope models.SourceScope) (party, error) {
	switch scope {
	case models.SourceMyOrganizations:
		if len(me.Organizations) == 0 {
			return party{}, lib.ErrInvalidInput("You are not a member of any organization", nil)
		}
		org, err := ui.Select(env.Prompt, "Your organizations", organizationOptions(me.Organizations))
		if err != nil {
			return party{}, err
		}
		return organizationParty(org), nil
	case models.SourceAnyUser:
		user, err := services.SuggestUser(ctx, env.API, env.Prompt)
		if err != nil {
			return party{}, err
		}
		return userParty(user), nil
	case models.SourceAnyOrganization:
		org, err := services.SuggestOrganization(ctx, env.API, env.Prompt)
		if err != nil {
			return party{}, err
		}
		return organizationParty(org), nil
	default:
		return party{ID: me.ID, Label: "your user"}, nil
	}
}

func resolveTarget(ctx context.Context, env *Env, targetType models.TargetType) (party, error) {
	if targetType == models.TargetOrganization {
		org, err := services.SuggestOrganization(ctx, env.API, env.Prompt)
		if err != nil {
			return party{}, err
		}
		return organizationParty(org), nil
	}

	user, err := services.SuggestUser(ctx, env.API, env.Prompt)
	if err != nil {
		return party{}, err
	}
	return userParty(user), nil
}

func organizationParty(org models.Organization) party {
	return party{ID: org.ID, Label: fmt.Sprintf("%q organization", org.Name)}
}

func userParty(user models.User) party {
	return party{ID: user.ID, Label: fmt.Sprintf("%q user", user.FullName())}
}

// requestTransfer creates a transfer request then immediately accepts it.
// A failed creation is fatal; the acceptance result is returned as is.
func requestTransfer(ctx context.Context, env *Env, request models.TransferRequest) (*services.Result, error) {
	var transfer models.Transfer
	if err := env.API.PostJSON(ctx, "transfer/", request, &transfer); err != nil {
		return nil, err
	}
	return acceptTransfer(ctx, env, transfer.ID)
}

// acceptTransfer answers a pending transfer; a refusal is returned as a failed result
func acceptTransfer(ctx context.Context, env *Env, transferID string) (*services.Result, error) {
	return env.API.Post(ctx, fmt.Sprintf("transfer/%s/", transferID), models.AcceptResponse(), services.AllowFailure())
}
