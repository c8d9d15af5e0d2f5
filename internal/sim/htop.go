package sim

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/Necromancer-Labs/voidshell/internal/i18n"
	"github.com/Necromancer-Labs/voidshell/internal/sysinfo"
	"github.com/Necromancer-Labs/voidshell/internal/ui/theme"
)

const (
	htopRefresh   = 2 * time.Second
	sampleTimeout = 500 * time.Millisecond
)

// Process is one row of the process table.
type Process struct {
	PID     int
	User    string
	CPU     float64
	Mem     float64
	Time    time.Duration
	Command string
}

func cpuTime(s string) time.Duration {
	// m:ss.cc
	mins, rest, _ := strings.Cut(s, ":")
	m, _ := strconv.Atoi(mins)
	sec, _ := strconv.ParseFloat(rest, 64)
	return time.Duration(m)*time.Minute + time.Duration(math.Round(sec*100))*10*time.Millisecond
}

func seedProcesses() []Process {
	rows := []struct {
		pid       int
		user      string
		cpu, mem  float64
		t, command string
	}{
		{1, "root", 0.1, 0.5, "1:25.32", "/sbin/init"},
		{123, "root", 0.0, 0.2, "0:05.11", "kthreadd"},
		{456, "glitchbane", 2.5, 1.5, "12:45.67", "node /usr/bin/voidshell"},
		{789, "www-data", 0.3, 2.1, "2:10.98", "nginx: worker process"},
		{101, "root", 0.7, 0.8, "0:55.23", "sshd: /usr/sbin/sshd"},
		{212, "glitchbane", 95.8, 5.3, "0:01.55", "gcc -O2 -pipe main.c -o a.out"},
		{323, "postgres", 0.0, 3.2, "4:30.12", "postgres: logger"},
		{434, "root", 1.2, 0.9, "0:15.77", "dockerd"},
		{545, "glitchbane", 5.1, 2.8, "1:02.43", "zsh"},
		{656, "root", 0.0, 0.1, "25:11.34", "systemd-journald"},
		{767, "glitchbane", 0.9, 1.2, "0:08.19", "neovim"},
		{878, "root", 0.3, 0.4, "3:21.88", "cron"},
		{989, "root", 15.2, 1.1, "0:02.12", "kernel_panic --force"},
		{1100, "glitchbane", 0.0, 15.2, "0:00.50", "cat /dev/urandom"},
	}
	procs := make([]Process, len(rows))
	for i, r := range rows {
		procs[i] = Process{PID: r.pid, User: r.user, CPU: r.cpu, Mem: r.mem, Time: cpuTime(r.t), Command: r.command}
	}
	return procs
}

// Htop is the interactive process monitor. It never finishes on its own;
// the q key ends it.
type Htop struct {
	t     i18n.Func
	rnd   Rand
	probe sysinfo.Probe

	started time.Time
	now     time.Time
	procs   []Process
	host    sysinfo.Snapshot
}

// NewHtop creates a monitor whose header meters come from probe. A nil
// probe, or one that cannot read anything, falls back to synthetic values.
func NewHtop(probe sysinfo.Probe, t i18n.Func, rnd Rand) *Htop {
	if probe == nil {
		probe = sysinfo.Synthetic
	}
	return &Htop{t: t, rnd: rnd, probe: probe, procs: seedProcesses()}
}

// Step implements Task.
func (h *Htop) Step(now time.Time) (time.Duration, bool) {
	if h.started.IsZero() {
		h.started = now
	} else {
		h.refresh()
	}
	h.now = now
	h.sample()
	return htopRefresh, false
}

// HandleKey implements KeyHandler.
func (h *Htop) HandleKey(key string) bool {
	return key == "q" || key == "Q"
}

// Processes returns the current table, hottest first after a refresh.
func (h *Htop) Processes() []Process {
	out := make([]Process, len(h.procs))
	copy(out, h.procs)
	return out
}

func (h *Htop) refresh() {
	for i := range h.procs {
		p := &h.procs[i]
		if strings.Contains(p.Command, "gcc") || strings.Contains(p.Command, "kernel_panic") {
			p.CPU = 80 + h.rnd.Float64()*20
		} else {
			p.CPU = h.rnd.Float64() * 5
		}
		p.Mem += (h.rnd.Float64() - 0.5) * 0.1
		if p.Mem < 0 {
			p.Mem = 0
		}
		p.Time += htopRefresh
	}
	sort.SliceStable(h.procs, func(i, j int) bool { return h.procs[i].CPU > h.procs[j].CPU })
}

func (h *Htop) sample() {
	ctx, cancel := context.WithTimeout(context.Background(), sampleTimeout)
	defer cancel()
	snap := h.probe.Sample(ctx)
	if !snap.OK {
		snap = sysinfo.Synthetic.Sample(ctx)
	}
	h.host = snap
}

func (h *Htop) running() int {
	n := 0
	for _, p := range h.procs {
		if p.CPU > 1 {
			n++
		}
	}
	return n
}

// Render implements output.Renderable.
func (h *Htop) Render(width int) string {
	if width <= 0 {
		width = 80
	}
	var lines []string

	// Meters, two CPUs per row.
	meterWidth := max((width-4)/2-12, 10)
	cpus := h.host.CPU
	for i := 0; i < len(cpus); i += 2 {
		row := meter(strconv.Itoa(i+1), cpus[i], fmt.Sprintf("%.1f%%", cpus[i]), meterWidth)
		if i+1 < len(cpus) {
			row += "  " + meter(strconv.Itoa(i+2), cpus[i+1], fmt.Sprintf("%.1f%%", cpus[i+1]), meterWidth)
		}
		lines = append(lines, row)
	}
	lines = append(lines,
		meter(h.t("htop_mem", nil), percent(h.host.MemUsed, h.host.MemTotal),
			humanBytes(h.host.MemUsed)+"/"+humanBytes(h.host.MemTotal), meterWidth*2),
		meter(h.t("htop_swp", nil), percent(h.host.SwapUsed, h.host.SwapTotal),
			humanBytes(h.host.SwapUsed)+"/"+humanBytes(h.host.SwapTotal), meterWidth*2),
	)

	n, running := len(h.procs), h.running()
	lines = append(lines,
		fmt.Sprintf("%s: %d, %d %s; %s: %d", h.t("htop_tasks", nil), n, running,
			h.t("htop_running", nil), h.t("htop_threads", nil), n*2+running),
		fmt.Sprintf("%s: %.2f %.2f %.2f", h.t("htop_load_avg", nil), h.host.Load[0], h.host.Load[1], h.host.Load[2]),
		fmt.Sprintf("%s: %s", h.t("htop_uptime", nil), clock(h.uptime())),
	)

	header := fmt.Sprintf("%-7s %-11s %6s %6s %10s  %s",
		h.t("htop_pid", nil), h.t("htop_user", nil), h.t("htop_cpu", nil),
		h.t("htop_mem_perc", nil), h.t("htop_time", nil), h.t("htop_command", nil))
	lines = append(lines, theme.BarStyle.Render(runewidth.FillRight(header, width)))

	for _, p := range h.procs {
		row := fmt.Sprintf("%-7d %-11s %6.1f %6.1f %10s  %s",
			p.PID, runewidth.Truncate(p.User, 11, ""), p.CPU, p.Mem, procTime(p.Time), p.Command)
		row = runewidth.Truncate(row, width, "")
		switch {
		case p.CPU > 80:
			row = theme.HotRow.Render(runewidth.FillRight(row, width))
		case p.CPU > 5:
			row = theme.WarmRow.Render(runewidth.FillRight(row, width))
		}
		lines = append(lines, row)
	}

	footer := h.t("htop_press_q", nil)
	pad := max((width-runewidth.StringWidth(footer))/2, 0)
	lines = append(lines, theme.BarStyle.Render(runewidth.FillRight(strings.Repeat(" ", pad)+footer, width)))
	return strings.Join(lines, "\n")
}

func (h *Htop) uptime() time.Duration {
	if h.host.Uptime > 0 {
		return h.host.Uptime
	}
	return h.now.Sub(h.started)
}

func meter(label string, pct float64, value string, cells int) string {
	filled := int(pct / 100 * float64(cells))
	filled = min(max(filled, 0), cells)
	gauge := theme.SuccessStyle.Render(strings.Repeat("|", filled))
	rest := runewidth.FillLeft(value, cells-filled)
	return fmt.Sprintf("%3s [%s%s]", label, gauge, theme.MutedStyle.Render(rest))
}

func percent(used, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100
}

func humanBytes(b uint64) string {
	const (
		kib = 1 << 10
		mib = 1 << 20
		gib = 1 << 30
	)
	switch {
	case b >= gib:
		return fmt.Sprintf("%.2fG", float64(b)/gib)
	case b >= mib:
		return fmt.Sprintf("%.0fM", float64(b)/mib)
	default:
		return fmt.Sprintf("%dK", b/kib)
	}
}

// clock formats d as HH:MM:SS.
func clock(d time.Duration) string {
	s := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s%3600/60, s%60)
}

// procTime formats d as m:ss.cc like top's TIME+ column.
func procTime(d time.Duration) string {
	cs := int(d / (10 * time.Millisecond))
	return fmt.Sprintf("%d:%02d.%02d", cs/6000, cs/100%60, cs%100)
}
