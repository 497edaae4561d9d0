// Command usertoken encodes and decodes the user tokens carried in mini-app
// links.
//
//	usertoken encode 123456789
//	usertoken decode MTIzNDU2Nzg5
//	usertoken link -base https://example.com/app -page create.html 42
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/maya-florenko/miniappbot/internal/miniapp"
	"github.com/maya-florenko/miniappbot/internal/token"
)

var errUsage = errors.New("usage: usertoken encode <id> | decode <token> | link [-base URL] [-page PAGE] <id>")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, w io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "encode":
		if len(args) != 2 {
			return errUsage
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(w, token.Encode(id))
	case "decode":
		if len(args) != 2 {
			return errUsage
		}
		id, err := token.Decode(args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(w, id)
	case "link":
		fs := flag.NewFlagSet("link", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		base := fs.String("base", os.Getenv("WEBAPP_URL"), "mini-app base URL")
		page := fs.String("page", "", "sub-page, e.g. create.html")
		if err := fs.Parse(args[1:]); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		if fs.NArg() != 1 || *base == "" {
			return errUsage
		}
		id, err := parseID(fs.Arg(0))
		if err != nil {
			return err
		}
		fmt.Fprintln(w, miniapp.BuildLink(*base, id, *page))
	default:
		return errUsage
	}
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid user id %q", s)
	}
	return id, nil
}
