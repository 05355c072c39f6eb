package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
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
	WhoAmI(ctx context.Context) error
	Rename(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context) error
	Delete(ctx context.Context) error
	Export(ctx context.Context) error
	Logout(ctx context.Context) error
}

func (a *App) getStatus() string {
	if a.userName != "" {
		return fmt.Sprintf("(%s)", a.userName)
	}
	if a.isLoggedIn() {
		return "(logged in)"
	}
	return ""
}

// Root prints a greeting and runs the REPL on the app's input.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to gophnotes CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

// runREPL starts a simple read-eval-print loop.
//
// It reads a line, parses the first token as the command, and dispatches to
// methods on 'a'. Command errors are printed and the loop continues. The
// loop exits on EOF or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help           - show available commands
//	  - register       - create an account
//	  - login          - authenticate
//	  - exit | quit    - leave the program
//
//	Logged in:
//	  - whoami         - show the current account
//	  - rename         - change name and/or email
//	  - (l)ist         - list notes
//	  - add            - add a note
//	  - edit           - change a note (empty input keeps a field)
//	  - delete         - delete a note
//	  - export         - download all notes as JSON into the export dir
//	  - logout         - forget the session token
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gn %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, rename, (l)ist, add, edit, delete, export, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "rename":
			cmdErr = a.Rename(ctx)

		case "l", "list":
			cmdErr = a.List(ctx)

		case "add":
			cmdErr = a.Add(ctx)

		case "edit":
			cmdErr = a.Edit(ctx)

		case "delete":
			cmdErr = a.Delete(ctx)

		case "export":
			cmdErr = a.Export(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}

		if err != nil {
			return
		}
	}
}
