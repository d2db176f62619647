package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/opendatateam/ucli/internal/models"
	"github.com/opendatateam/ucli/internal/ui"
)

// Me displays the account the API key belongs to
func Me(ctx context.Context, env *Env, format OutputFormat) error {
	var user models.User
	if err := env.API.GetJSON(ctx, "me", &user); err != nil {
		return err
	}

	if format != OutputText {
		return writeStructured(env.Out.Writer(), format, user)
	}

	env.Out.Header("Display my user information")
	env.Out.LabelArrow("Name", user.FullName())
	env.Out.LabelArrow("ID", user.ID)
	env.Out.LabelArrow("Email", user.Email)
	env.Out.LabelArrow("Roles", strings.Join(user.Roles, ","))

	orgs := make([]string, 0, len(user.Organizations))
	for _, org := range user.Organizations {
		orgs = append(orgs, fmt.Sprintf("    %s %s", ui.GlyphBuilding, org.Name))
	}
	env.Out.LabelArrow("Organizations", "\n"+strings.Join(orgs, "\n"))

	return nil
}
