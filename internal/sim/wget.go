package sim

import (
	"fmt"
	"time"

	"github.com/Necromancer-Labs/voidshell/internal/i18n"
	"github.com/Necromancer-Labs/voidshell/internal/ui/theme"
)

const (
	connectDelay  = time.Second
	downloadDelay = 200 * time.Millisecond
	wgetBarCells  = 25
)

type wgetPhase int

const (
	wgetIdle wgetPhase = iota
	wgetConnecting
	wgetDownloading
	wgetComplete
)

// Wget fakes a download of url, saved as filename.
type Wget struct {
	url        string
	filename   string
	t          i18n.Func
	rnd        Rand
	onComplete func()

	phase    wgetPhase
	progress int
}

// NewWget creates a download. onComplete runs exactly once, when the
// progress reaches 100%.
func NewWget(url, filename string, t i18n.Func, rnd Rand, onComplete func()) *Wget {
	return &Wget{url: url, filename: filename, t: t, rnd: rnd, onComplete: onComplete}
}

// Step implements Task.
func (w *Wget) Step(time.Time) (time.Duration, bool) {
	switch w.phase {
	case wgetIdle:
		w.phase = wgetConnecting
		return connectDelay, false
	case wgetConnecting:
		w.phase = wgetDownloading
		return downloadDelay, false
	case wgetDownloading:
		if w.progress >= 100 {
			w.progress = 100
			w.phase = wgetComplete
			if w.onComplete != nil {
				w.onComplete()
				w.onComplete = nil
			}
			return 0, true
		}
		w.progress += 1 + w.rnd.Intn(10)
		return downloadDelay, false
	default:
		return 0, true
	}
}

// Progress returns the download percentage, capped at 100.
func (w *Wget) Progress() int {
	return min(w.progress, 100)
}

// Render implements output.Renderable.
func (w *Wget) Render(int) string {
	p := i18n.Params{"url": w.url, "filename": w.filename}
	switch w.phase {
	case wgetIdle, wgetConnecting:
		return w.t("wget_connecting", p)
	case wgetDownloading:
		pct := w.Progress()
		return fmt.Sprintf("%s\n[%s] %d%%", w.t("wget_downloading", p), bar(float64(pct), wgetBarCells), pct)
	default:
		return fmt.Sprintf("%s\n[%s] 100%%\n%s", w.t("wget_downloading", p), bar(100, wgetBarCells),
			theme.SuccessStyle.Render(w.t("wget_complete", p)))
	}
}
