// Command access-cli inspects the compiled-in access policy and tries logins
// against it without starting the server.
//
//	access-cli matrix                 role × permission table and route table
//	access-cli validate               check the policy tables for gaps
//	access-cli check <role> <perm>    strict single permission check
//	access-cli login                  prompt for credentials and show what the account may do
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/stemsi/schoolhealth-backend/internal/access"
	"github.com/stemsi/schoolhealth-backend/internal/config"
	"github.com/stemsi/schoolhealth-backend/internal/logger"
	"github.com/stemsi/schoolhealth-backend/internal/model"
	"github.com/stemsi/schoolhealth-backend/internal/service"
	"golang.org/x/term"
)

const usage = `usage: access-cli <command>

commands:
  matrix                  print the role and route policies
  validate                check the policy tables
  check <role> <perm>     check one permission for one role
  login                   log in and print the account's access`

var errUsage = errors.New(usage)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := run(os.Args[1:], os.Stdin, os.Stdout, log); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		log.Error().Err(err).Msg("access-cli failed")
		os.Exit(1)
	}
}

func run(args []string, in io.Reader, out io.Writer, log zerolog.Logger) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "matrix":
		printMatrix(out)
		return nil
	case "validate":
		if err := access.ValidatePolicy(); err != nil {
			return err
		}
		fmt.Fprintln(out, "policy ok")
		return nil
	case "check":
		if len(args) != 3 {
			return errUsage
		}
		return check(out, args[1], args[2])
	case "login":
		return login(in, out, log)
	default:
		return errUsage
	}
}

func printMatrix(out io.Writer) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	header := []string{"PERMISSION"}
	for _, role := range model.AllRoles {
		header = append(header, strings.ToUpper(string(role)))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, p := range model.AllPermissions {
		row := []string{string(p)}
		for _, role := range model.AllRoles {
			mark := "-"
			if access.HasPermission(role, p) {
				mark = "x"
			}
			row = append(row, mark)
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	fmt.Fprintln(tw)

	routes := access.RoutePolicyTable()
	paths := make([]string, 0, len(routes))
	for path := range routes {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	fmt.Fprintln(tw, "ROUTE\tANY OF\tROLES")
	for _, path := range paths {
		var roles []string
		for _, role := range model.AllRoles {
			if access.CanAccessRoute(role, path) {
				roles = append(roles, string(role))
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", path, joinPermissions(routes[path]), strings.Join(roles, ","))
	}
	tw.Flush()
}

func check(out io.Writer, rawRole, rawPerm string) error {
	role, err := model.ParseRole(rawRole)
	if err != nil {
		return err
	}
	ok, err := access.CheckPermission(role, model.Permission(rawPerm))
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintf(out, "%s has %s\n", role, rawPerm)
	} else {
		fmt.Fprintf(out, "%s lacks %s\n", role, rawPerm)
	}
	return nil
}

func login(in io.Reader, out io.Writer, log zerolog.Logger) error {
	reader := bufio.NewReader(in)

	fmt.Fprint(out, "Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email is required")
	}

	fmt.Fprint(out, "Password: ")
	password, err := readPassword(in, reader)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	fmt.Fprintln(out)

	sess := service.NewSession(service.NewStaticAuthenticator())
	ok, err := sess.Login(context.Background(), email, password)
	if err != nil {
		return err
	}
	if !ok {
		log.Warn().Str("email", email).Msg("Login rejected")
		return errors.New("invalid credentials")
	}

	identity := sess.Identity()
	fmt.Fprintf(out, "\n%s <%s> (%s)\n\n", identity.Name, identity.Email, identity.Role.Label())

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PERMISSION\tDESCRIPTION")
	for _, p := range sess.Permissions() {
		desc, _ := model.Describe(p)
		fmt.Fprintf(tw, "%s\t%s\n", p, desc)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "MENU\tPATH\tACCESS")
	for _, item := range access.Navigation {
		mark := "denied"
		if sess.CanAccessRoute(item.Path) {
			mark = "allowed"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", item.Label, item.Path, mark)
	}
	return tw.Flush()
}

// readPassword reads without echo from a terminal and falls back to a plain
// line for piped input.
func readPassword(in io.Reader, reader *bufio.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && f == os.Stdin && term.IsTerminal(int(syscall.Stdin)) {
		b, err := term.ReadPassword(int(syscall.Stdin))
		return string(b), err
	}
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func joinPermissions(perms []model.Permission) string {
	parts := make([]string, 0, len(perms))
	for _, p := range perms {
		parts = append(parts, string(p))
	}
	return strings.Join(parts, ",")
}
