// Package shell provides the plain line-mode surface of voidshell, built on
// gocmd2.
//
// It is the fallback for terminals that cannot host the full-screen UI
// (dumb terminals, pipes, screen readers). The shell offers:
//   - Command history (persisted to the configured history file)
//   - Tab completion for command names and virtual filesystem paths
//   - Every session command, with animations played to completion before
//     their final frame is printed
//
// The surface is always constrained: htop, which needs a full screen,
// refuses to start here.
package shell

import (
	"fmt"
	"os"
	"strings"

	"github.com/Necromancerlabs/gocmd2/pkg/shell"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/Necromancer-Labs/voidshell/internal/i18n"
	"github.com/Necromancer-Labs/voidshell/internal/session"
	"github.com/Necromancer-Labs/voidshell/internal/ui/theme"
)

// RunShell runs the gocmd2 shell until the user exits ('exit' or Ctrl+D).
func RunShell(s *session.Session, cat *i18n.Catalog, historyFile string) error {
	s.SetConstrained(true)

	sh, err := shell.NewShell("voidshell", formatBanner())
	if err != nil {
		return fmt.Errorf("failed to create shell: %w", err)
	}
	defer sh.Close()

	if historyFile != "" {
		sh.SetHistoryFile(historyFile)
	}
	sh.SetState("session", s)

	module := NewModule(s, cat, os.Stdout)
	module.width = screenWidth

	// Drop core commands whose names the session owns, then register ours.
	removeCommands(sh.GetRootCmd(), s.Table().Names())
	sh.RegisterModule(module)
	sh.GetRootCmd().SetHelpCommand(module.HelpCommand())
	routeUnknown(sh.GetRootCmd(), module)

	setupPathCompletion(sh, s)
	overrideExitCommand(sh, module)

	module.Boot()
	module.UpdatePrompt()

	// Run the REPL - blocks until user exits
	sh.Run()
	return nil
}

// removeCommands drops root's children named in names.
func removeCommands(root *cobra.Command, names []string) {
	owned := make(map[string]bool, len(names))
	for _, n := range names {
		owned[n] = true
	}
	for _, cmd := range root.Commands() {
		if owned[cmd.Name()] {
			root.RemoveCommand(cmd)
		}
	}
}

// routeUnknown makes root run any line that names no command, so the
// session answers it: a translated "command not found" locally, the remote
// dispatcher while connected. Either way the line lands in the history.
func routeUnknown(root *cobra.Command, module *Module) {
	root.Args = cobra.ArbitraryArgs
	root.DisableFlagParsing = true
	root.Run = func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			return
		}
		module.Exec(strings.Join(args, " "))
	}
}

// overrideExitCommand replaces gocmd2's core exit command.
//
// While connected to a remote host, exit closes that connection like it
// does in the full-screen UI. Otherwise it closes readline, which makes
// sh.Run() return instead of calling os.Exit.
func overrideExitCommand(sh *shell.Shell, module *Module) {
	rootCmd := sh.GetRootCmd()
	rl := sh.GetReadline()

	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "exit" {
			rootCmd.RemoveCommand(cmd)
			break
		}
	}

	exitCmd := &cobra.Command{
		Use:     "exit",
		Aliases: []string{"quit"},
		Short:   "Close the remote connection or leave voidshell",
		Run: func(cmd *cobra.Command, args []string) {
			if module.session.RemoteHost() != "" {
				module.Exec("exit")
				return
			}
			rl.Close() // Causes sh.Run() to return
		},
	}
	rootCmd.AddCommand(exitCmd)
}

// formatBanner creates the welcome banner shown when the shell starts.
func formatBanner() string {
	title := theme.TitleStyle.Render(" VOIDSHELL ")
	return fmt.Sprintf("\n%s plain mode\n\nType 'help' for commands, 'exit' to leave.\n", title)
}

// setupPathCompletion wraps the default command completer with a
// PathCompleter for the filesystem commands.
func setupPathCompletion(sh *shell.Shell, s *session.Session) {
	rl := sh.GetReadline()
	rl.Config.AutoComplete = NewPathCompleter(s, rl.Config.AutoComplete)
}

func screenWidth() int {
	if w := readline.GetScreenWidth(); w > 0 {
		return w
	}
	return 80
}
