package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the shell needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Passwd(ctx context.Context) error
	Add(ctx context.Context) error
	List(ctx context.Context) error
	Update(ctx context.Context) error
	Delete(ctx context.Context) error
	Logs(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Investify CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not signed in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — sign in
//	  - exit | quit    — leave the program
//
//	Signed in:
//	  - help           — show available commands
//	  - add            — add an asset to the portfolio
//	  - list           — list positions with current valuation
//	  - update         — change a position's quantity or manual price
//	  - delete         — remove a position
//	  - passwd         — change the account password
//	  - logs           — show the account's activity log
//	  - logout         — sign out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("investify %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: add, (l)ist, update, delete, passwd, logs, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "add":
			_ = a.Add(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "update":
			_ = a.Update(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "passwd":
			_ = a.Passwd(ctx)

		case "logs":
			_ = a.Logs(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
