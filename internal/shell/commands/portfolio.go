package commands

import (
	"strings"

	"github.com/Necromancer-Labs/voidshell/internal/i18n"
	"github.com/Necromancer-Labs/voidshell/internal/output"
	"github.com/Necromancer-Labs/voidshell/internal/portfolio"
	"github.com/Necromancer-Labs/voidshell/internal/session"
	"github.com/Necromancer-Labs/voidshell/internal/ui/theme"
)

// document prints the markdown behind key.
func (c *Commands) document(key string) session.Handler {
	return func(_ []string, t i18n.Func, _ session.Context) output.Renderable {
		return c.mdKey(t, key)
	}
}

func (c *Commands) project(args []string, t i18n.Func, _ session.Context) output.Renderable {
	if len(args) == 0 {
		return output.Stack{
			plain(t("project_usage", nil)),
			plain(t("project_available", i18n.Params{"projects": strings.Join(portfolio.ProjectSlugs(), ", ")})),
		}
	}
	return c.projectCard(t, args[0])
}

func (c *Commands) projectCard(t i18n.Func, slug string) output.Renderable {
	p, ok := portfolio.FindProject(slug)
	if !ok {
		return errText(t("project_not_found", i18n.Params{"projectName": slug}))
	}
	return output.Func(func(int) string {
		bold := theme.HeadingStyle
		return strings.Join([]string{
			bold.Render(p.Name),
			p.Description,
			bold.Render(t("project_tech", nil)+":") + " " + strings.Join(p.Tech, ", "),
			bold.Render("GitHub:") + " " + theme.PathStyle.Render(p.GitHubURL),
			bold.Render("Demo:") + " " + theme.PathStyle.Render(p.DemoURL),
		}, "\n")
	})
}
