package sim

import (
	"time"
	"unicode"

	"github.com/Necromancer-Labs/voidshell/internal/i18n"
	"github.com/Necromancer-Labs/voidshell/internal/ui/theme"
)

// Glyphs shown in place of characters not yet revealed.
const scrambleCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*()_+-=[]{}|;:,.<>?"

const revealInterval = 50 * time.Millisecond

type decryptStage struct {
	key   string
	delay time.Duration // wait before the line is printed
}

var decryptStages = []decryptStage{
	{"decrypt_starting", 100 * time.Millisecond},
	{"decrypt_analyzing", 500 * time.Millisecond},
	{"decrypt_bruteforce", 500 * time.Millisecond},
	{"decrypt_success", 1000 * time.Millisecond},
	{"decrypt_rendering", 500 * time.Millisecond},
}

// Decrypt prints a cracking log and then reveals content one character at
// a time.
type Decrypt struct {
	filename string
	content  []rune
	t        i18n.Func
	rnd      Rand

	stage    int // next stage to print; len(decryptStages) means revealing
	started  bool
	revealed int
	shown    string
	out      transcript
}

// NewDecrypt creates a decryption of filename whose plaintext is content.
func NewDecrypt(filename, content string, t i18n.Func, rnd Rand) *Decrypt {
	return &Decrypt{filename: filename, content: []rune(content), t: t, rnd: rnd}
}

// Step implements Task.
func (d *Decrypt) Step(time.Time) (time.Duration, bool) {
	if !d.started {
		d.started = true
		return decryptStages[0].delay, false
	}
	if d.stage < len(decryptStages) {
		st := decryptStages[d.stage]
		d.out.add(toneOK, d.t(st.key, i18n.Params{"filename": d.filename}))
		d.stage++
		if d.stage < len(decryptStages) {
			return decryptStages[d.stage].delay, false
		}
		d.scramble()
		return revealInterval, false
	}

	if d.revealed < len(d.content) {
		d.revealed++
	}
	d.scramble()
	if d.revealed >= len(d.content) {
		return 0, true
	}
	return revealInterval, false
}

// Done reports whether the content is fully revealed.
func (d *Decrypt) Done() bool {
	return d.stage >= len(decryptStages) && d.revealed >= len(d.content)
}

func (d *Decrypt) scramble() {
	out := make([]rune, len(d.content))
	copy(out, d.content[:d.revealed])
	for i := d.revealed; i < len(d.content); i++ {
		if unicode.IsSpace(d.content[i]) {
			out[i] = d.content[i]
			continue
		}
		out[i] = rune(scrambleCharset[d.rnd.Intn(len(scrambleCharset))])
	}
	d.shown = string(out)
}

// Render implements output.Renderable.
func (d *Decrypt) Render(width int) string {
	log := d.out.render()
	if d.stage < len(decryptStages) {
		return log
	}
	box := theme.BoxStyle
	if width > 4 {
		box = box.MaxWidth(width)
	}
	return log + "\n" + box.Render(d.shown)
}
