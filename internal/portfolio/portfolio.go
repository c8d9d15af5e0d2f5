// Package portfolio holds the static records behind the project, connect
// and switch commands.
package portfolio

import (
	"sort"
	"strings"
)

// Project is one entry shown by `project <slug>`.
type Project struct {
	Slug        string
	Name        string
	Description string
	GitHubURL   string
	DemoURL     string
	Tech        []string
}

// Remote is a host reachable with `connect`.
type Remote struct {
	Host       string
	WelcomeKey string   // translation key printed on connect
	Files      []string // what `ls` shows while connected
}

var projects = map[string]Project{
	"quimera": {
		Slug:        "quimera",
		Name:        "Proyecto Quimera",
		Description: "Motor de análisis predictivo impulsado por IA para la detección de anomalías en redes. [CLASIFICADO]",
		GitHubURL:   "https://github.com/isradev-git/quimera",
		DemoURL:     "#",
		Tech:        []string{"Python", "TensorFlow", "FastAPI", "Next.js"},
	},
	"anochecer": {
		Slug:        "anochecer",
		Name:        "Operación Anochecer",
		Description: "Protocolo de comunicación descentralizado e irrastreable basado en una red P2P. [TOP SECRET]",
		GitHubURL:   "https://github.com/isradev-git/anochecer",
		DemoURL:     "#",
		Tech:        []string{"Go", "Libp2p", "React"},
	},
	"daemons": {
		Slug:        "daemons",
		Name:        "SystemDaemons",
		Description: "Colección de agentes autónomos para la monitorización y automatización de infraestructuras. [CONFIDENCIAL]",
		GitHubURL:   "https://github.com/isradev-git/daemons",
		DemoURL:     "#",
		Tech:        []string{"Rust", "Docker", "gRPC"},
	},
}

var remotes = map[string]Remote{
	"quimera": {
		Host:       "quimera",
		WelcomeKey: "connect_welcome_quimera",
		Files:      []string{"analyzer.log", "config.json", "main.py", "output.dat"},
	},
	"anochecer": {
		Host:       "anochecer",
		WelcomeKey: "connect_welcome_anochecer",
		Files:      []string{"node_list.txt", "p2p_daemon", "comm_protocol.spec"},
	},
}

// Theme names as accepted by `switch`, mapped to palette names.
var themeAliases = map[string]string{
	"1":                   "cyberpunk",
	"cyberpunk":           "cyberpunk",
	"cyberpunk 2077":      "cyberpunk",
	"2":                   "witcher",
	"witcher":             "witcher",
	"the witcher 3":       "witcher",
	"3":                   "hollow",
	"hollow":              "hollow",
	"hollow knight":       "hollow",
	"4":                   "reddead",
	"reddead":             "reddead",
	"red dead redemption": "reddead",
	"default":             "default",
}

// ThemeMenu is the listing printed by a bare `switch`.
var ThemeMenu = []string{
	"1. Cyberpunk 2077",
	"2. The Witcher 3",
	"3. Hollow Knight",
	"4. Red Dead Redemption",
	"default",
}

// FindProject looks a project up by slug, case-insensitively.
func FindProject(slug string) (Project, bool) {
	p, ok := projects[strings.ToLower(slug)]
	return p, ok
}

// ProjectSlugs returns the known project slugs, sorted.
func ProjectSlugs() []string {
	slugs := make([]string, 0, len(projects))
	for slug := range projects {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// FindRemote looks a remote system up by host name.
func FindRemote(host string) (Remote, bool) {
	r, ok := remotes[host]
	return r, ok
}

// Remotes returns a copy of the remote table, for injection into a session.
func Remotes() map[string]Remote {
	out := make(map[string]Remote, len(remotes))
	for k, v := range remotes {
		out[k] = v
	}
	return out
}

// ThemeFor maps a user-typed theme name (already joined from args) to a
// palette name. Matching ignores case.
func ThemeFor(name string) (string, bool) {
	t, ok := themeAliases[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}
