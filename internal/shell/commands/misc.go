package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Necromancer-Labs/voidshell/internal/i18n"
	"github.com/Necromancer-Labs/voidshell/internal/output"
	"github.com/Necromancer-Labs/voidshell/internal/portfolio"
	"github.com/Necromancer-Labs/voidshell/internal/session"
	"github.com/Necromancer-Labs/voidshell/internal/sim"
	"github.com/Necromancer-Labs/voidshell/internal/ui/theme"
	"github.com/Necromancer-Labs/voidshell/internal/vfs"
)

func (c *Commands) help(_ []string, t i18n.Func, _ session.Context) output.Renderable {
	names := c.Table().Names()
	return output.Stack{
		plain(t("help_available_commands", nil)),
		output.Func(func(w int) string {
			cells := make([]output.Cell, len(names))
			for i, n := range names {
				cells[i] = output.Cell{Text: n, Style: theme.PromptStyle}
			}
			return output.Grid{Cells: cells, Gap: 4}.Render(w)
		}),
	}
}

func (c *Commands) clear(_ []string, _ i18n.Func, ctx session.Context) output.Renderable {
	ctx.Clear()
	return nil
}

func (c *Commands) echo(args []string, _ i18n.Func, _ session.Context) output.Renderable {
	return plain(strings.Join(args, " "))
}

func (c *Commands) history(_ []string, _ i18n.Func, ctx session.Context) output.Renderable {
	entries := ctx.History()
	if len(entries) == 0 {
		return nil
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%4d  %s", i+1, e)
	}
	return plain(strings.Join(lines, "\n"))
}

func (c *Commands) motd(_ []string, _ i18n.Func, ctx session.Context) output.Renderable {
	msgs := c.deps.Catalog.Motd(ctx.Lang())
	if len(msgs) == 0 {
		return nil
	}
	return muted(msgs[c.deps.Rand.Intn(len(msgs))])
}

func (c *Commands) cowsay(args []string, t i18n.Func, _ session.Context) output.Renderable {
	msg := strings.Join(args, " ")
	if msg == "" {
		msg = t("cowsay_default", nil)
	}
	return sim.Cowsay{Message: msg}
}

func (c *Commands) switchTheme(args []string, t i18n.Func, ctx session.Context) output.Renderable {
	name := strings.ToLower(strings.Join(args, " "))
	if name == "" {
		return output.Stack{
			plain(t("switch_usage", nil)),
			heading(t("switch_available_themes", nil) + ":"),
			plain(strings.Join(portfolio.ThemeMenu, "\n")),
		}
	}
	palette, ok := portfolio.ThemeFor(name)
	if !ok || !ctx.SetTheme(palette) {
		return errText(t("switch_theme_not_found", i18n.Params{"themeName": name}))
	}
	return success(t("switch_theme_changed", i18n.Params{"themeName": name}))
}

func (c *Commands) blog(args []string, t i18n.Func, ctx session.Context) output.Renderable {
	if len(args) == 0 {
		return c.md(t("blog_usage", nil))
	}
	posts := c.deps.Catalog.Blog(ctx.Lang())

	switch args[0] {
	case "ls":
		slugs := make([]string, 0, len(posts))
		for slug := range posts {
			slugs = append(slugs, slug)
		}
		sort.Slice(slugs, func(i, j int) bool {
			a, b := posts[slugs[i]], posts[slugs[j]]
			if a.Date != b.Date {
				return a.Date < b.Date
			}
			return slugs[i] < slugs[j]
		})
		var b strings.Builder
		for _, slug := range slugs {
			p := posts[slug]
			fmt.Fprintf(&b, "- %s - %s (`%s`)\n", p.Date, p.Title, slug)
		}
		return output.Stack{heading(t("blog_available_posts", nil) + ":"), c.md(b.String())}

	case "read":
		if len(args) < 2 {
			return plain(t("blog_read_usage", nil))
		}
		p, ok := posts[args[1]]
		if !ok {
			return errText(t("blog_post_not_found", i18n.Params{"postSlug": args[1]}))
		}
		return output.Stack{
			heading(p.Title),
			muted(t("blog_published_on", i18n.Params{"date": p.Date})),
			c.md(p.Content),
		}

	default:
		return errText(t("blog_command_not_recognized", i18n.Params{"subCommand": args[0]}))
	}
}

func (c *Commands) lang(args []string, t i18n.Func, ctx session.Context) output.Renderable {
	if len(args) == 0 {
		return plain(t("lang_usage", i18n.Params{"supported_langs": strings.Join(c.deps.Catalog.Langs(), ", ")}))
	}
	code := args[0]
	if !ctx.SetLang(code) {
		return errText(t("lang_not_supported", i18n.Params{"lang": code}))
	}
	ctx.Clear()
	// Announce in the new language.
	return plain(c.deps.Catalog.T(code, "lang_changed", i18n.Params{"lang": code}))
}

func (c *Commands) man(args []string, t i18n.Func, ctx session.Context) output.Renderable {
	if len(args) == 0 {
		return plain(t("man_usage", nil))
	}
	page, ok := c.deps.Catalog.Man(ctx.Lang())[args[0]]
	if !ok {
		return errText(t("man_not_found", i18n.Params{"command": args[0]}))
	}
	return output.Stack{
		heading(t("man_section_name", nil)),
		plain("    " + page.Name),
		heading(t("man_section_synopsis", nil)),
		plain("    " + page.Synopsis),
		heading(t("man_section_description", nil)),
		plain("    " + page.Description),
	}
}

func (c *Commands) sudo(args []string, t i18n.Func, _ session.Context) output.Renderable {
	if len(args) == 0 {
		return plain(t("sudo_usage", nil))
	}
	return c.md(t("sudo_permission_denied", nil))
}

func (c *Commands) decrypt(args []string, t i18n.Func, ctx session.Context) output.Renderable {
	if len(args) == 0 {
		return plain(t("decrypt_usage", nil))
	}
	name := args[0]
	node, ok := ctx.Lookup(name)
	if !ok || !node.IsFile() || node.Ref().Kind != vfs.RefEncrypted {
		return errText(t("decrypt_not_found", i18n.Params{"filename": name}))
	}
	return sim.NewDecrypt(name, strings.TrimRight(t(node.Ref().Value, nil), "\n"), t, c.deps.Rand)
}
