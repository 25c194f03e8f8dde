package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isReady() bool
	Login(ctx context.Context, args []string) error
	Demo(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Summary(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Filter(ctx context.Context, args []string) error
	Years(ctx context.Context) error
	Months(ctx context.Context) error
	Categories(ctx context.Context) error
	AddCategory(ctx context.Context) error
	Seed(ctx context.Context) error
	Profile(ctx context.Context) error
}

// runREPL reads commands from reader and dispatches them to a until EOF,
// "exit" or "quit". Command errors are printed and the loop continues.
// Commands that prompt for input read from the same reader, so it must be
// the one the App uses.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("finanzas %s> ", statusFn()))
		line, ok := readCommand(reader)
		if !ok {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isReady() {
				printlnFn("Available commands: summary, (l)ist, add, edit, delete, filter, years, months, categories, addcategory, seed, profile, status, logout, exit")
			} else {
				printlnFn("Available commands: login, demo, status, exit")
			}

		case "login":
			err = a.Login(ctx, args)
		case "demo":
			err = a.Demo(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "status":
			err = a.Status(ctx)
		case "summary":
			err = a.Summary(ctx)
		case "l", "list":
			err = a.List(ctx)
		case "add":
			err = a.Add(ctx)
		case "edit":
			err = a.Edit(ctx, args)
		case "delete":
			err = a.Delete(ctx, args)
		case "filter":
			err = a.Filter(ctx, args)
		case "years":
			err = a.Years(ctx)
		case "months":
			err = a.Months(ctx)
		case "categories":
			err = a.Categories(ctx)
		case "addcategory":
			err = a.AddCategory(ctx)
		case "seed":
			err = a.Seed(ctx)
		case "profile":
			err = a.Profile(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

// readCommand returns the next line, including a final unterminated one.
func readCommand(reader *bufio.Reader) (string, bool) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return line, true
		}
		return "", false
	}
	return line, true
}
