package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// commander is the command surface the REPL drives. App satisfies it; tests
// provide a stub.
type commander interface {
	isLoggedIn() bool
	status() string
	Go(ctx context.Context, path string) error
	Back(ctx context.Context) error
	ListRoutes(w io.Writer)
	WhoAmI(w io.Writer)
	Logout(ctx context.Context) error
	renderIfChanged(ctx context.Context)
}

// runREPL reads one command per line and dispatches it. Command errors are
// printed and the loop continues; it returns on EOF, "exit" or "quit".
//
//	help             show available commands
//	go <path>        open a page, e.g. go /questionnaire/edit/42
//	back             return to the previous page
//	routes           list the route table
//	whoami           show the current user and token expiry
//	login | register open the login or registration page
//	logout           end the session
//	exit | quit      leave the program
//
// After every command the current page is rendered if navigation happened.
func runREPL(ctx context.Context, a commander, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "qcli %s> ", a.status())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		var cmdErr error
		switch cmd := parts[0]; cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: go <path>, back, routes, whoami, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: login, register, go <path>, back, routes, exit")
			}
		case "go":
			if len(parts) < 2 {
				fmt.Fprintln(w, "Usage: go <path>")
				continue
			}
			cmdErr = a.Go(ctx, parts[1])
		case "back":
			cmdErr = a.Back(ctx)
		case "routes":
			a.ListRoutes(w)
		case "whoami":
			a.WhoAmI(w)
		case "login":
			cmdErr = a.Go(ctx, LoginPath)
		case "register":
			cmdErr = a.Go(ctx, RegisterPath)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(w, "error:", cmdErr)
		}
		a.renderIfChanged(ctx)
	}
}
