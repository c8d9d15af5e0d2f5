// Package commands builds the shell's command table.
//
// Handlers never fail: every problem is reported as a translated line. The
// table is assembled once by Table and handed to the session.
package commands

import (
	"math/rand"
	"time"

	"github.com/Necromancer-Labs/voidshell/internal/i18n"
	"github.com/Necromancer-Labs/voidshell/internal/session"
	"github.com/Necromancer-Labs/voidshell/internal/sim"
	"github.com/Necromancer-Labs/voidshell/internal/sysinfo"
	"github.com/Necromancer-Labs/voidshell/internal/ui/markdown"
	"github.com/Necromancer-Labs/voidshell/internal/vfs"
	"github.com/Necromancer-Labs/voidshell/internal/webapi"
)

// Deps are the collaborators handlers use.
type Deps struct {
	Catalog  *i18n.Catalog
	Markdown func(md string, width int) string
	Probe    sysinfo.Probe
	Weather  sim.Forecaster
	Now      func() time.Time
	Rand     sim.Rand
	Home     string
}

// Commands holds the dependencies shared by every handler.
type Commands struct {
	deps  Deps
	table *session.Table
}

// New fills unset dependencies with defaults.
func New(deps Deps) *Commands {
	if deps.Markdown == nil {
		deps.Markdown = markdown.Render
	}
	if deps.Probe == nil {
		deps.Probe = sysinfo.Host{}
	}
	if deps.Weather == nil {
		// No key configured: every lookup reports it.
		deps.Weather = &webapi.Client{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if deps.Home == "" {
		deps.Home = vfs.DefaultHome
	}
	return &Commands{deps: deps}
}

// Table returns the command table, building it on first use.
func (c *Commands) Table() *session.Table {
	if c.table != nil {
		return c.table
	}
	c.table = session.NewTable(map[string]session.Handler{
		// filesystem
		"ls":   c.ls,
		"cd":   c.cd,
		"pwd":  c.pwd,
		"cat":  c.cat,
		"tree": c.tree,

		// portfolio
		"about":        c.document("about_md"),
		"resume":       c.document("resume_md"),
		"skills":       c.document("skills_md"),
		"experience":   c.document("experience_md"),
		"education":    c.document("education_md"),
		"project-list": c.document("project-list_md"),
		"project":      c.project,
		"contact":      c.document("contact_md"),
		"social":       c.document("social_md"),

		// system
		"whoami":   c.whoami,
		"date":     c.date,
		"neofetch": c.neofetch,
		"htop":     c.htop,
		"top":      c.htop,
		"cal":      c.cal,
		"stats":    c.stats,

		// network
		"connect": c.connect,
		"scan":    c.scan,
		"wget":    c.wget,
		"weather": c.weather,

		// misc
		"help":    c.help,
		"clear":   c.clear,
		"echo":    c.echo,
		"history": c.history,
		"motd":    c.motd,
		"cowsay":  c.cowsay,
		"switch":  c.switchTheme,
		"blog":    c.blog,
		"lang":    c.lang,
		"man":     c.man,
		"sudo":    c.sudo,
		"decrypt": c.decrypt,
	})
	return c.table
}
