package sim

import (
	"time"

	"github.com/Necromancer-Labs/voidshell/internal/i18n"
)

// Port is one probed service.
type Port struct {
	Number  int
	Service string
}

// ScanPorts are probed in this order.
var ScanPorts = []Port{
	{21, "FTP"},
	{22, "SSH"},
	{25, "SMTP"},
	{80, "HTTP"},
	{110, "POP3"},
	{143, "IMAP"},
	{443, "HTTPS"},
	{3306, "MySQL"},
	{5432, "PostgreSQL"},
	{8080, "HTTP-Alt"},
}

// Probability that a port reports open.
const openChance = 0.6

type scanPhase int

const (
	scanIdle scanPhase = iota
	scanStarted
	scanResolving
	scanDiscovering
	scanProbing
	scanFinished
)

// Scan fakes a TCP port scan of target.
type Scan struct {
	target string
	t      i18n.Func
	rnd    Rand

	phase scanPhase
	next  int // index into ScanPorts
	out   transcript
}

// NewScan creates a scan of target.
func NewScan(target string, t i18n.Func, rnd Rand) *Scan {
	return &Scan{target: target, t: t, rnd: rnd}
}

// Step implements Task.
func (s *Scan) Step(time.Time) (time.Duration, bool) {
	switch s.phase {
	case scanIdle:
		s.phase = scanStarted
		return 100 * time.Millisecond, false
	case scanStarted:
		s.out.add(tonePlain, s.t("scan_start", i18n.Params{"target": s.target}))
		s.phase = scanResolving
		return 500 * time.Millisecond, false
	case scanResolving:
		s.out.add(tonePlain, s.t("scan_resolving", nil))
		s.phase = scanDiscovering
		return 500 * time.Millisecond, false
	case scanDiscovering:
		s.out.add(tonePlain, s.t("scan_discovery", nil))
		s.phase = scanProbing
		return s.probeDelay(), false
	case scanProbing:
		p := ScanPorts[s.next]
		s.next++
		if s.rnd.Float64() < openChance {
			s.out.addTagged(toneOK, "[+]", s.t("scan_port_open", i18n.Params{"port": p.Number, "service": p.Service}))
		} else {
			s.out.addTagged(toneError, "[-]", s.t("scan_port_closed", i18n.Params{"port": p.Number}))
		}
		if s.next < len(ScanPorts) {
			return s.probeDelay(), false
		}
		s.phase = scanFinished
		return 500 * time.Millisecond, false
	default:
		s.out.add(toneOK, s.t("scan_complete", nil))
		return 0, true
	}
}

// 50-250ms between ports.
func (s *Scan) probeDelay() time.Duration {
	return time.Duration(50+s.rnd.Intn(201)) * time.Millisecond
}

// Render implements output.Renderable.
func (s *Scan) Render(int) string {
	return s.out.render()
}
