package sim

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Necromancer-Labs/voidshell/internal/i18n"
	"github.com/Necromancer-Labs/voidshell/internal/ui/theme"
)

var statKeys = []string{
	"stats_coffee",
	"stats_code_lines",
	"stats_bugs_fixed",
	"stats_sleep_lost",
	"stats_side_projects",
	"stats_sanity_level",
	"stats_terminals_broken",
}

// Stats is the developer stats card.
type Stats struct {
	T i18n.Func
}

// Render implements output.Renderable.
func (s Stats) Render(int) string {
	labels := make([]string, len(statKeys))
	wide := 0
	for i, k := range statKeys {
		labels[i] = s.T(k, nil) + ":"
		wide = max(wide, runewidth.StringWidth(labels[i]))
	}

	lines := []string{theme.HeadingStyle.Render(s.T("stats_title", nil))}
	for i, k := range statKeys {
		lines = append(lines, fmt.Sprintf("› %s %s",
			runewidth.FillRight(labels[i], wide), theme.PathStyle.Render(s.T(k+"_value", nil))))
	}
	return strings.Join(lines, "\n")
}

const neofetchArt = `                  ##
                 ####
                ######
               ########
              ##########
             ############
            ##############
           ################
          ##################
         ####################
        ######################
       #########      #########
      ##########      ##########
     ###########      ###########
    ##########          ##########
   #######                  #######
  ####                          ####
 ###                              ###`

// NeofetchInfo is the system card shown by neofetch and after boot.
type NeofetchInfo struct {
	User       string
	Host       string
	IP         string
	OS         string
	Kernel     string
	Uptime     string
	Shell      string
	Resolution string
	DEWM       string
	Font       string
	Memory     string
}

// NeofetchFor fills the card from the translated neofetch_* keys.
func NeofetchFor(t i18n.Func, ip string) NeofetchInfo {
	return NeofetchInfo{
		User:       "glitchbane@VoidShell",
		Host:       t("neofetch_host", nil),
		IP:         ip,
		OS:         t("neofetch_os", nil),
		Kernel:     t("neofetch_kernel", nil),
		Uptime:     t("neofetch_uptime", nil),
		Shell:      t("neofetch_shell", nil),
		Resolution: "2048 x 1080",
		DEWM:       "Django, Express, NextJS, PHP, JavaScript, Tailwind",
		Font:       t("neofetch_terminal_font", nil),
		Memory:     t("neofetch_memory", nil),
	}
}

// Render implements output.Renderable. Below 70 columns the art is
// stacked above the info instead of beside it.
func (n NeofetchInfo) Render(width int) string {
	user, _, _ := strings.Cut(n.User, "@")
	rows := [][2]string{
		{user, n.User},
		{"Host", n.Host},
		{"IP", n.IP},
		{"", ""},
		{"OS", n.OS},
		{"Kernel", n.Kernel},
		{"Uptime", n.Uptime},
		{"Shell", n.Shell},
		{"Resolution", n.Resolution},
		{"DE/WM", n.DEWM},
		{"Terminal Font", n.Font},
		{"Memory", n.Memory},
	}

	var info []string
	for _, r := range rows {
		if r[0] == "" {
			info = append(info, theme.MutedStyle.Render(strings.Repeat("-", 24)))
			continue
		}
		if r[1] == "" {
			continue
		}
		info = append(info, theme.HeadingStyle.Render(r[0])+": "+r[1])
	}

	art := theme.PromptStyle.Render(neofetchArt)
	text := strings.Join(info, "\n")
	if width > 0 && width < 70 {
		return lipgloss.JoinVertical(lipgloss.Left, art, "", text)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, art, "    ", text)
}

const cowsayWidth = 40

const cow = `        \   ^__^
         \  (oo)\_______
            (__)\       )\/\
                ||----w |
                ||     ||`

// Cowsay is a cow saying Message inside a 40-column speech bubble.
type Cowsay struct {
	Message string
}

// Render implements output.Renderable.
func (c Cowsay) Render(int) string {
	var lines []string
	cur := ""
	for _, word := range strings.Fields(c.Message) {
		if cur != "" && runewidth.StringWidth(cur)+runewidth.StringWidth(word)+1 > cowsayWidth {
			lines = append(lines, cur)
			cur = word
			continue
		}
		if cur != "" {
			cur += " "
		}
		cur += word
	}
	lines = append(lines, cur)

	pad := func(s string) string { return runewidth.FillRight(s, cowsayWidth) }
	out := []string{" " + strings.Repeat("_", cowsayWidth+2)}
	if len(lines) == 1 {
		out = append(out, "< "+pad(lines[0])+" >")
	} else {
		out = append(out, "/ "+pad(lines[0])+" \\")
		for _, l := range lines[1 : len(lines)-1] {
			out = append(out, "| "+pad(l)+" |")
		}
		out = append(out, "\\ "+pad(lines[len(lines)-1])+" /")
	}
	out = append(out, " "+strings.Repeat("-", cowsayWidth+2), cow)
	return strings.Join(out, "\n")
}
