package commands

import (
	"github.com/opendatateam/ucli/internal/models"
	"github.com/opendatateam/ucli/internal/ui"
)

// Presentation of the domain enumerations: prompt order and labels only.

var itemTypeOptions = func() []ui.Option[models.ItemType] {
	options := make([]ui.Option[models.ItemType], len(models.ItemTypes))
	for i, itemType := range models.ItemTypes {
		options[i] = ui.Option[models.ItemType]{Label: itemType.Class(), Value: itemType}
	}
	return options
}()

var sourceLabels = map[models.SourceScope]string{
	models.SourceMine:            "Mine",
	models.SourceMyOrganizations: "My organizations",
	models.SourceAnyUser:         "Any user",
	models.SourceAnyOrganization: "Any organization",
}

func sourceOptions(isAdmin bool) []ui.Option[models.SourceScope] {
	scopes := models.SourceScopes(isAdmin)
	options := make([]ui.Option[models.SourceScope], len(scopes))
	for i, scope := range scopes {
		options[i] = ui.Option[models.SourceScope]{Label: sourceLabels[scope], Value: scope}
	}
	return options
}

var transferTargetLabels = map[models.TargetType]string{
	models.TargetUser:         "An user",
	models.TargetOrganization: "An Organization",
}

// transfer asks "who receives", user first
var transferTargetOptions = func() []ui.Option[models.TargetType] {
	options := make([]ui.Option[models.TargetType], len(models.TargetTypes))
	for i, targetType := range models.TargetTypes {
		options[i] = ui.Option[models.TargetType]{Label: transferTargetLabels[targetType], Value: targetType}
	}
	return options
}()

// dispatch asks "what the target column holds", organizations first
var dispatchTargetOptions = []ui.Option[models.TargetType]{
	{Label: "Organizations", Value: models.TargetOrganization},
	{Label: "Users", Value: models.TargetUser},
}

func columnOptions(header []string) []ui.Option[string] {
	options := make([]ui.Option[string], len(header))
	for i, column := range header {
		options[i] = ui.Option[string]{Label: column, Value: column}
	}
	return options
}

func organizationOptions(orgs []models.Organization) []ui.Option[models.Organization] {
	options := make([]ui.Option[models.Organization], len(orgs))
	for i, org := range orgs {
		options[i] = ui.Option[models.Organization]{Label: org.Name, Value: org}
	}
	return options
}
