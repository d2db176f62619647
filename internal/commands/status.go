package commands

import (
	"context"

	"github.com/opendatateam/ucli/internal/models"
)

// Status displays the instance title and metrics
func Status(ctx context.Context, env *Env, format OutputFormat) error {
	var site models.Site
	if err := env.API.GetJSON(ctx, "site", &site); err != nil {
		return err
	}

	if format != OutputText {
		return writeStructured(env.Out.Writer(), format, site)
	}

	env.Out.Header("Display current site status")
	env.Out.LabelArrow("Title", site.Title)
	env.Out.LabelArrow("Datasets", site.Metrics.Datasets)
	env.Out.LabelArrow("Reuses", site.Metrics.Reuses)
	env.Out.LabelArrow("Organizations", site.Metrics.Organizations)
	env.Out.LabelArrow("Users", site.Metrics.Users)
	env.Out.LabelArrow("Discussions", site.Metrics.Discussions)

	return nil
}
