package services

import (
	"context"
	"strconv"

	"github.com/opendatateam/ucli/internal/models"
	"github.com/opendatateam/ucli/internal/ui"
)

// SuggestSize is the number of candidates requested from suggest endpoints
const SuggestSize = 10

const retryKey = "r"

// SuggestUser looks up a user interactively through users/suggest/
func SuggestUser(ctx context.Context, api *Client, prompt *ui.Prompter) (models.User, error) {
	return suggest(ctx, api, prompt,
		"Enter a query to find an user (ID, name...)",
		"users/suggest/",
		func(u models.User) string { return u.FullName() },
	)
}

// SuggestOrganization looks up an organization interactively through organizations/suggest/
func SuggestOrganization(ctx context.Context, api *Client, prompt *ui.Prompter) (models.Organization, error) {
	return suggest(ctx, api, prompt,
		"Enter a query to find an organization (ID, name...)",
		"organizations/suggest/",
		func(o models.Organization) string { return o.Name },
	)
}

// suggest repeats query → candidates → choice until the operator picks a candidate
func suggest[T any](ctx context.Context, api *Client, prompt *ui.Prompter, question string, endpoint string, display func(T) string) (T, error) {
	var zero T

	for {
		query, err := prompt.Text(question)
		if err != nil {
			return zero, err
		}

		var results []T
		if err := api.GetJSON(ctx, endpoint, &results,
			WithQuery("q", query),
			WithQuery("size", strconv.Itoa(SuggestSize)),
		); err != nil {
			return zero, err
		}

		choices := make([]ui.Choice, 0, len(results)+1)
		for i, r := range results {
			choices = append(choices, ui.Choice{Key: strconv.Itoa(i + 1), Label: display(r)})
		}
		choices = append(choices, ui.Choice{Key: retryKey, Label: "Retry"})

		key, err := prompt.Choose("Which one ?", choices)
		if err != nil {
			return zero, err
		}
		if key == retryKey {
			continue
		}

		index, _ := strconv.Atoi(key)
		return results[index-1], nil
	}
}
