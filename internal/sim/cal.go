package sim

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/Necromancer-Labs/voidshell/internal/i18n"
	"github.com/Necromancer-Labs/voidshell/internal/ui/theme"
)

var monthKeys = [12]string{
	"cal_month_jan", "cal_month_feb", "cal_month_mar", "cal_month_apr",
	"cal_month_may", "cal_month_jun", "cal_month_jul", "cal_month_aug",
	"cal_month_sep", "cal_month_oct", "cal_month_nov", "cal_month_dec",
}

// Cal is the month calendar around Now with today highlighted. Weeks start
// on Monday when the locale's weather code is es-ES, on Sunday otherwise.
type Cal struct {
	Now time.Time
	T   i18n.Func
}

// Render implements output.Renderable.
func (c Cal) Render(int) string {
	const cell = 3
	year, month, today := c.Now.Date()
	mondayFirst := c.T("weather_lang_code", nil) == "es-ES"

	first := time.Date(year, month, 1, 0, 0, 0, 0, c.Now.Location())
	days := first.AddDate(0, 1, -1).Day()
	offset := int(first.Weekday())
	if mondayFirst {
		offset = (offset + 6) % 7
	}

	var b strings.Builder
	title := fmt.Sprintf("%s %d", c.T(monthKeys[month-1], nil), year)
	pad := max((7*cell-runewidth.StringWidth(title))/2, 0)
	b.WriteString(strings.Repeat(" ", pad) + title + "\n")

	var head []string
	for _, d := range strings.Fields(c.T("cal_week_days", nil)) {
		head = append(head, runewidth.FillRight(d, cell))
	}
	b.WriteString(theme.HeadingStyle.Render(strings.TrimRight(strings.Join(head, ""), " ")))

	b.WriteString("\n" + strings.Repeat(" ", offset*cell))
	col := offset
	for d := 1; d <= days; d++ {
		num := fmt.Sprintf("%2d", d)
		if d == today {
			num = theme.PromptStyle.Reverse(true).Render(num)
		}
		b.WriteString(num)
		col++
		if col == 7 && d != days {
			b.WriteString("\n")
			col = 0
		} else if d != days {
			b.WriteString(" ")
		}
	}
	return b.String()
}
