package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = func(a ...any) { fmt.Println(a...) }

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Save(ctx context.Context, arg string) error
	Remove(ctx context.Context, bookID string) error
	List(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the Bookshelf CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands:
//
//	help               — show available commands
//	search <query>     — search the books catalog
//	save <n>           — save result n from the last search
//	remove <bookId>    — remove a saved book
//	list               — list saved books
//	register           — create an account
//	login              — authenticate
//	logout             — log out
//	whoami             — show the logged-in user
//	exit | quit        — leave the program
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("bookshelf %s> ", statusFn()))
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
				printlnFn("Available commands: search <query>, save <n>, remove <bookId>, (l)ist, whoami, logout, exit")
			} else {
				printlnFn("Available commands: search <query>, register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "search":
			if len(args) == 0 {
				printlnFn("Usage: search <query>")
				continue
			}
			_ = a.Search(ctx, strings.Join(args, " "))

		case "save":
			if len(args) != 1 {
				printlnFn("Usage: save <n>")
				continue
			}
			_ = a.Save(ctx, args[0])

		case "remove":
			if len(args) != 1 {
				printlnFn("Usage: remove <bookId>")
				continue
			}
			_ = a.Remove(ctx, args[0])

		case "l", "list":
			_ = a.List(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
