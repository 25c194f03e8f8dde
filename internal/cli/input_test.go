package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("hello world\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
	if out.String() != "Name?\n> " {
		t.Fatalf("prompt = %q", out.String())
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextEmptyEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader(""))
	var out bytes.Buffer
	_, err := GetSimpleText(in, "Name?", &out)
	if err == nil {
		t.Fatal("expected EOF error")
	}
}

func TestGetTextOrDefault(t *testing.T) {
	var out bytes.Buffer

	got, err := GetTextOrDefault(bufio.NewReader(strings.NewReader("\n")), "Email", "a@x.com", &out)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", got)
	require.Contains(t, out.String(), "Email [a@x.com]")

	got, err = GetTextOrDefault(bufio.NewReader(strings.NewReader("b@x.com\n")), "Email", "a@x.com", &out)
	require.NoError(t, err)
	require.Equal(t, "b@x.com", got)
}

func TestGetSecret(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()

	readPassword = func(int) ([]byte, error) { return []byte(" token \n"), nil }
	var out bytes.Buffer
	got, err := GetSecret("Enter access token", &out)
	require.NoError(t, err)
	require.Equal(t, "token", got)
	require.Equal(t, "Enter access token: \n", out.String())
}

func TestGetSecret_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetSecret("Enter access token", &out)
	require.Error(t, err)
}
