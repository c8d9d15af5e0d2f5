package sim

import (
	"fmt"
	"time"

	"github.com/Necromancer-Labs/voidshell/internal/i18n"
)

const (
	bootBarCells = 25
	bootBarStep  = 4
	bootBarDelay = 30 * time.Millisecond
	bootSettle   = 300 * time.Millisecond
)

type bootLine struct {
	tone   tone
	tag    string
	key    string
	params i18n.Params
	wait   time.Duration // pause after the line
}

var bootScript = []bootLine{
	{toneInfo, "[INFO]", "boot_sequence_start", nil, 500 * time.Millisecond},
	{toneInfo, "[INFO]", "boot_sequence_loading_modules", nil, 300 * time.Millisecond},
	{toneOK, "[OK]", "boot_sequence_module_ok", i18n.Params{"module": "core"}, 150 * time.Millisecond},
	{toneOK, "[OK]", "boot_sequence_module_ok", i18n.Params{"module": "net"}, 150 * time.Millisecond},
	{toneWarn, "[WARN]", "boot_sequence_module_warn", i18n.Params{"old": "gfx_legacy", "new": "gfx_stream"}, 300 * time.Millisecond},
	{toneInfo, "[INFO]", "boot_sequence_checking_fs", nil, 500 * time.Millisecond},
	{toneOK, "[OK]", "boot_sequence_fs_ok", nil, 200 * time.Millisecond},
	{toneInfo, "[INFO]", "boot_sequence_connecting", nil, bootBarDelay},
}

// Boot is the startup sequence: a scripted kernel log followed by an
// uplink progress bar.
type Boot struct {
	t i18n.Func

	line     int // next script line
	progress int // -1 until the bar appears
	out      transcript
}

// NewBoot creates a boot sequence.
func NewBoot(t i18n.Func) *Boot {
	return &Boot{t: t, progress: -1}
}

// Step implements Task.
func (b *Boot) Step(time.Time) (time.Duration, bool) {
	if b.line < len(bootScript) {
		l := bootScript[b.line]
		b.out.addTagged(l.tone, l.tag, b.t(l.key, l.params))
		b.line++
		if b.line == len(bootScript) {
			b.progress = 0
		}
		return l.wait, false
	}
	if b.progress < 100 {
		b.progress = min(b.progress+bootBarStep, 100)
		if b.progress == 100 {
			return bootSettle, false
		}
		return bootBarDelay, false
	}
	return 0, true
}

// Render implements output.Renderable.
func (b *Boot) Render(int) string {
	log := b.out.render()
	if b.progress < 0 {
		return log
	}
	return fmt.Sprintf("%s\n[%s] %d%%", log, bar(float64(b.progress), bootBarCells), b.progress)
}
