package commands

import (
	"github.com/Necromancer-Labs/voidshell/internal/i18n"
	"github.com/Necromancer-Labs/voidshell/internal/output"
	"github.com/Necromancer-Labs/voidshell/internal/session"
	"github.com/Necromancer-Labs/voidshell/internal/sim"
)

// Layout of JavaScript's Date.toString.
const dateLayout = "Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"

func (c *Commands) whoami([]string, i18n.Func, session.Context) output.Renderable {
	return plain("Israel Zamora - GlitchBane")
}

func (c *Commands) date([]string, i18n.Func, session.Context) output.Renderable {
	return plain(c.deps.Now().Format(dateLayout))
}

func (c *Commands) neofetch(_ []string, t i18n.Func, ctx session.Context) output.Renderable {
	return sim.NeofetchFor(t, ctx.IP())
}

func (c *Commands) htop(_ []string, t i18n.Func, ctx session.Context) output.Renderable {
	if ctx.Constrained() {
		return errText(t("htop_mobile_not_supported", nil))
	}
	ctx.AddLine(sim.NewHtop(c.deps.Probe, t, c.deps.Rand), session.LineInteractive)
	return nil
}

func (c *Commands) cal(_ []string, t i18n.Func, _ session.Context) output.Renderable {
	return sim.Cal{Now: c.deps.Now(), T: t}
}

func (c *Commands) stats(_ []string, t i18n.Func, _ session.Context) output.Renderable {
	return sim.Stats{T: t}
}
