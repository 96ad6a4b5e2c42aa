package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jkuschner/Document-Storage-App/internal/client/session"
)

// commandSurface is the minimal command set the REPL dispatches to. The real
// App satisfies it; tests can provide a lightweight stub.
type commandSurface interface {
	state() session.AuthState
	statusLine() string
	Login(ctx context.Context) error
	SignUp(ctx context.Context) error
	Confirm(ctx context.Context) error
	Reset(ctx context.Context) error
	ConfirmReset(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context) error
	Upload(ctx context.Context) error
	Download(ctx context.Context) error
	Delete(ctx context.Context) error
	Share(ctx context.Context) error
	Summary(ctx context.Context) error
}

func (a *App) state() session.AuthState {
	return a.authState
}

func (a *App) statusLine() string {
	if p := a.resolver.Profile(); p != nil {
		return fmt.Sprintf("(%s)", p.Email)
	}
	return ""
}

// protectedCommands need a signed-in session; anonymousCommands only make
// sense signed out. Everything else (help, exit) is always available.
var protectedCommands = map[string]func(commandSurface, context.Context) error{
	"l":        commandSurface.List,
	"list":     commandSurface.List,
	"upload":   commandSurface.Upload,
	"download": commandSurface.Download,
	"delete":   commandSurface.Delete,
	"share":    commandSurface.Share,
	"summary":  commandSurface.Summary,
	"whoami":   commandSurface.WhoAmI,
	"logout":   commandSurface.Logout,
}

var anonymousCommands = map[string]func(commandSurface, context.Context) error{
	"login":         commandSurface.Login,
	"signup":        commandSurface.SignUp,
	"confirm":       commandSurface.Confirm,
	"reset":         commandSurface.Reset,
	"confirm-reset": commandSurface.ConfirmReset,
}

// Root runs the interactive loop until EOF or an exit command.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Document storage CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(a.reader)
	runREPL(ctx, a, scanner, a.out)
}

// runREPL reads one line at a time, takes the first token as the command and
// dispatches it through the guards: protected commands run only for a live
// session, anonymous ones only without one. A command blocked by a guard
// prints where to go instead of running. All output goes to out, the same
// writer the command handlers use; the prompt carries no newline so input is
// typed on the prompt line.
func runREPL(ctx context.Context, a commandSurface, scanner *bufio.Scanner, out io.Writer) {
	for {
		fmt.Fprintf(out, "docs %s> ", a.statusLine())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			printHelp(out, a.state())
			continue
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		}

		if handler, ok := protectedCommands[cmd]; ok {
			switch (session.RequireAuth{}).Decide(a.state()) {
			case session.DecisionRender:
				_ = handler(a, ctx)
			case session.DecisionRedirectToLogin:
				fmt.Fprintln(out, "Please log in first (try 'login' or 'signup').")
			default:
				fmt.Fprintln(out, "Checking session, try again in a moment.")
			}
			continue
		}

		if handler, ok := anonymousCommands[cmd]; ok {
			switch (session.RequireAnonymous{}).Decide(a.state()) {
			case session.DecisionRender:
				_ = handler(a, ctx)
			case session.DecisionRedirectToFiles:
				fmt.Fprintln(out, "Already signed in (try 'list' or 'logout').")
			default:
				fmt.Fprintln(out, "Checking session, try again in a moment.")
			}
			continue
		}

		fmt.Fprintln(out, "Unknown command:", cmd)
	}
}

func printHelp(out io.Writer, state session.AuthState) {
	if state == session.StateAuthenticated {
		fmt.Fprintln(out, "Available commands: (l)ist, upload, download, delete, share, summary, whoami, logout, exit")
	} else {
		fmt.Fprintln(out, "Available commands: login, signup, confirm, reset, confirm-reset, exit")
	}
}
