package commands

import (
	"net/url"
	"strings"

	"github.com/Necromancer-Labs/voidshell/internal/i18n"
	"github.com/Necromancer-Labs/voidshell/internal/output"
	"github.com/Necromancer-Labs/voidshell/internal/portfolio"
	"github.com/Necromancer-Labs/voidshell/internal/session"
	"github.com/Necromancer-Labs/voidshell/internal/sim"
)

func (c *Commands) connect(args []string, t i18n.Func, ctx session.Context) output.Renderable {
	if len(args) == 0 {
		return plain(t("connect_usage", nil))
	}
	host := args[0]
	r, ok := portfolio.FindRemote(host)
	if !ok {
		return errText(t("connect_not_found", i18n.Params{"host": host}))
	}
	ctx.SetRemoteHost(host)
	return c.mdKey(t, r.WelcomeKey)
}

func (c *Commands) scan(args []string, t i18n.Func, _ session.Context) output.Renderable {
	if len(args) == 0 {
		return plain(t("scan_usage", nil))
	}
	return sim.NewScan(args[0], t, c.deps.Rand)
}

func (c *Commands) wget(args []string, t i18n.Func, ctx session.Context) output.Renderable {
	if len(args) == 0 {
		return plain(t("wget_usage", nil))
	}
	raw := args[0]
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errText(t("wget_invalid_url", i18n.Params{"url": raw}))
	}
	return sim.NewWget(raw, downloadName(u), t, c.deps.Rand, func() {
		ctx.AddFileToCurrentDir(downloadName(u))
	})
}

// downloadName is the last path segment of u, or index.html.
func downloadName(u *url.URL) string {
	p := u.Path
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	if p == "" {
		return "index.html"
	}
	return p
}

func (c *Commands) weather(args []string, t i18n.Func, _ session.Context) output.Renderable {
	city := strings.Join(args, " ")
	if city == "" {
		return plain(t("weather_usage", nil))
	}
	return sim.NewWeather(c.deps.Weather, city, t("weather_lang_code", nil), t)
}
