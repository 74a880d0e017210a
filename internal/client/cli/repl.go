package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Groups(ctx context.Context) error
	Items(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Qty(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	NewGroup(ctx context.Context) error
	DeleteGroup(ctx context.Context, args []string) error
	Import(ctx context.Context) error
	Refresh(ctx context.Context) error
	Demo(ctx context.Context, args []string) error
}

// runREPL starts a simple read-eval-print loop for the Stockroom CLI.
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
//	Not logged in:
//	  - help                      — show available commands
//	  - register                  — create an account
//	  - login                     — authenticate
//	  - demo [group]              — browse the local snapshot (bundled demo
//	                                data on a fresh install)
//	  - exit | quit               — leave the program
//
//	Logged in:
//	  - help                      — show available commands
//	  - groups | (l)ist           — list inventory groups
//	  - items <group>             — list the items of one group
//	  - show <group> <item>       — show one item
//	  - add <group>               — add an item (interactive prompts)
//	  - edit <group> <item>       — edit an item (interactive prompts)
//	  - qty <group> <item> <n>    — adjust quantity by n (may be negative)
//	  - del <group> [item]        — delete an item, or the whole group
//	  - newgroup                  — create an empty group
//	  - import                    — create a group from pasted lines
//	  - refresh                   — force a full refetch
//	  - logout                    — log out
//	  - exit | quit               — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sr> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: groups, (l)ist, items, show, add, edit, qty, del, newgroup, delgroup, import, refresh, logout, exit")
			} else {
				printlnFn("Available commands: register, login, demo, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "list", "groups":
			_ = a.Groups(ctx)

		case "items":
			_ = a.Items(ctx, args)

		case "show":
			_ = a.Show(ctx, args)

		case "add":
			_ = a.Add(ctx, args)

		case "edit":
			_ = a.Edit(ctx, args)

		case "qty":
			_ = a.Qty(ctx, args)

		case "del", "delete":
			_ = a.Delete(ctx, args)

		case "newgroup":
			_ = a.NewGroup(ctx)

		case "delgroup":
			_ = a.DeleteGroup(ctx, args)

		case "import":
			_ = a.Import(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "demo":
			_ = a.Demo(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
