package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

type fakeExec struct {
	ready bool

	calls []string
	args  [][]string
	fail  string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	if f.fail == name {
		return errors.New(name + " failed")
	}
	return nil
}

func (f *fakeExec) isReady() bool { return f.ready }
func (f *fakeExec) Login(ctx context.Context, args []string) error {
	f.ready = true
	return f.record("login", args)
}
func (f *fakeExec) Demo(ctx context.Context) error { f.ready = true; return f.record("demo", nil) }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.ready = false
	return f.record("logout", nil)
}
func (f *fakeExec) Status(ctx context.Context) error  { return f.record("status", nil) }
func (f *fakeExec) Summary(ctx context.Context) error { return f.record("summary", nil) }
func (f *fakeExec) List(ctx context.Context) error    { return f.record("list", nil) }
func (f *fakeExec) Add(ctx context.Context) error     { return f.record("add", nil) }
func (f *fakeExec) Edit(ctx context.Context, args []string) error {
	return f.record("edit", args)
}
func (f *fakeExec) Delete(ctx context.Context, args []string) error {
	return f.record("delete", args)
}
func (f *fakeExec) Filter(ctx context.Context, args []string) error {
	return f.record("filter", args)
}
func (f *fakeExec) Years(ctx context.Context) error       { return f.record("years", nil) }
func (f *fakeExec) Months(ctx context.Context) error      { return f.record("months", nil) }
func (f *fakeExec) Categories(ctx context.Context) error  { return f.record("categories", nil) }
func (f *fakeExec) AddCategory(ctx context.Context) error { return f.record("addcategory", nil) }
func (f *fakeExec) Seed(ctx context.Context) error        { return f.record("seed", nil) }
func (f *fakeExec) Profile(ctx context.Context) error     { return f.record("profile", nil) }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	out := captureOutput(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login tok",
		"help",
		"",
		"summary",
		"l",
		"add",
		"edit abc",
		"delete abc",
		"filter month 3",
		"years",
		"months",
		"categories",
		"addcategory",
		"seed",
		"profile",
		"status",
		"foobar",
		"logout",
		"exit",
		"list",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(status)" }, bufio.NewReader(input))

	want := []string{"login", "summary", "list", "add", "edit", "delete", "filter", "years", "months",
		"categories", "addcategory", "seed", "profile", "status", "logout"}
	if strings.Join(exec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}
	if got := exec.args[0]; len(got) != 1 || got[0] != "tok" {
		t.Fatalf("login args = %v", got)
	}
	if got := exec.args[6]; strings.Join(got, " ") != "month 3" {
		t.Fatalf("filter args = %v", got)
	}

	joined := strings.Join(*out, "\n")
	for _, s := range []string{"Available commands: login, demo", "Available commands: summary", "Unknown command: foobar", "Bye!", "finanzas (status)>"} {
		if !strings.Contains(joined, s) {
			t.Fatalf("output missing %q:\n%s", s, joined)
		}
	}
}

func TestRunREPL_PrintsCommandErrors(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{fail: "summary"}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("summary\n")))

	joined := strings.Join(*out, "\n")
	if !strings.Contains(joined, "Error: summary failed") {
		t.Fatalf("error not printed:\n%s", joined)
	}
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("")))
	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
