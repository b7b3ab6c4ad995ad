package main

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/edublog/edublog-client/internal/core/domain"
	"github.com/edublog/edublog-client/internal/core/ports"
	"github.com/edublog/edublog-client/internal/core/service"
)

const usage = `Commands:
  login <email> <password>
  register <name> | <email> | <username> | <password>
  logout
  whoami
  posts                         list all posts
  filter <text>                 filter the last listed posts by title
  search <text>                 live search (debounced); empty text lists everything
  post <id>
  create <title> | <content> | <author>
  edit <id> <title> | <content> | <author>
  delete <id>
  teachers | students           list users by role
  find <text>                   filter the last listed users
  user <id>
  rename <id> <name>
  remove <teacher|student> <id>
  help
  quit`

type shellDeps struct {
	auth     *service.AuthService
	posts    *service.PostService
	users    *service.UserService
	search   ports.PostReader
	debounce time.Duration
	log      zerolog.Logger
	con      *console
}

// shell is the read-eval-print loop over the panel services.
type shell struct {
	shellDeps
	searcher *service.SearchController
}

func newShell(d shellDeps) *shell {
	sh := &shell{shellDeps: d}
	sh.searcher = service.NewSearchController(d.search, d.debounce, func(posts []domain.Post) {
		sh.con.Printf("search %q: %d result(s)\n", sh.searcher.Query(), len(posts))
		sh.printPosts(posts)
	}, d.log)
	return sh
}

func (sh *shell) Close() {
	sh.searcher.Close()
}

// Run reads commands from in until EOF, "quit" or ctx is done.
func (sh *shell) Run(ctx context.Context, in io.Reader) error {
	lines := readLines(ctx, in)

	sh.con.Printf("%s\n> ", usage)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := sh.exec(ctx, strings.TrimSpace(line)); quit {
				return nil
			}
			sh.con.Printf("> ")
		}
	}
}

// readLines streams the lines of in until EOF or until ctx is done. The
// channel is closed in both cases.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

// exec runs one command line and reports whether the shell should exit.
// Failures were already alerted by the services, so errors are dropped here.
func (sh *shell) exec(ctx context.Context, line string) bool {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "":
	case "quit", "exit":
		return true
	case "help":
		sh.con.Printf("%s\n", usage)

	case "login":
		email, password, _ := strings.Cut(rest, " ")
		if u, err := sh.auth.Login(ctx, email, strings.TrimSpace(password)); err == nil {
			sh.con.Printf("Welcome, %s\n", u.Name)
		}
	case "register":
		f := fields(rest, 4)
		_, _ = sh.auth.Register(ctx, domain.Registration{Name: f[0], Email: f[1], Username: f[2], Password: f[3]})
	case "logout":
		if err := sh.auth.Logout(ctx); err != nil {
			sh.con.Alert("Error", err.Error())
		}
	case "whoami":
		role, ok, err := sh.auth.Role(ctx)
		switch {
		case err != nil:
			sh.con.Alert("Error", err.Error())
		case !ok:
			sh.con.Printf("not logged in\n")
		default:
			sh.con.Printf("role: %s\n", role)
		}

	case "posts":
		if posts, err := sh.posts.Load(ctx); err == nil {
			sh.printPosts(posts)
		}
	case "filter":
		sh.printPosts(service.FilterByTitle(sh.posts.Posts(), rest))
	case "search":
		sh.searcher.SetQuery(rest)
	case "post":
		if p, err := sh.posts.Get(ctx, rest); err == nil {
			sh.con.Printf("%s\n  by %s [%s]\n\n%s\n\n%d comment(s)\n", p.Title, p.Author, p.Status, p.Content, len(p.Comments))
		}
	case "create":
		f := fields(rest, 3)
		_, _ = sh.posts.Create(ctx, domain.PostInput{Title: f[0], Content: f[1], Author: f[2]})
	case "edit":
		id, body, _ := strings.Cut(rest, " ")
		f := fields(body, 3)
		_, _ = sh.posts.Update(ctx, id, domain.PostInput{Title: f[0], Content: f[1], Author: f[2]})
	case "delete":
		if err := sh.posts.Delete(ctx, rest); err == nil {
			sh.printPosts(sh.posts.Posts())
		}

	case "teachers", "students":
		if users, err := sh.users.LoadByRole(ctx, roleFor(cmd)); err == nil {
			sh.printUsers(users)
		}
	case "find":
		sh.printUsers(service.FilterUsers(sh.users.Users(), rest))
	case "user":
		if u, err := sh.users.Get(ctx, rest); err == nil {
			sh.printUsers([]domain.User{*u})
		}
	case "rename":
		id, name, _ := strings.Cut(rest, " ")
		u, err := sh.users.Get(ctx, id)
		if err != nil {
			break
		}
		_ = sh.users.Update(ctx, id, domain.UserUpdate{Name: name, Email: u.Email, Username: u.Username})
	case "remove":
		kind, id, _ := strings.Cut(rest, " ")
		if kind != "teacher" && kind != "student" {
			sh.con.Printf("remove: kind must be teacher or student, got %q\n", kind)
			break
		}
		if err := sh.users.Delete(ctx, roleFor(kind+"s"), strings.TrimSpace(id)); err == nil {
			sh.printUsers(sh.users.Users())
		}

	default:
		sh.con.Printf("unknown command %q, try help\n", cmd)
	}
	return false
}

func roleFor(group string) string {
	if group == "teachers" {
		return domain.RoleAdmin
	}
	return domain.RoleUser
}

// fields splits s on "|" into exactly n trimmed parts, padding with "".
func fields(s string, n int) []string {
	parts := strings.SplitN(s, "|", n)
	out := make([]string, n)
	for i := range out {
		if i < len(parts) {
			out[i] = strings.TrimSpace(parts[i])
		}
	}
	return out
}

func (sh *shell) printPosts(posts []domain.Post) {
	if len(posts) == 0 {
		sh.con.Printf("  (no posts)\n")
		return
	}
	for _, p := range posts {
		sh.con.Printf("  %-36s  %-10s  %s (%s)\n", p.ID, p.Status, p.Title, p.Author)
	}
}

func (sh *shell) printUsers(users []domain.User) {
	if len(users) == 0 {
		sh.con.Printf("  (no users)\n")
		return
	}
	for _, u := range users {
		sh.con.Printf("  %-36s  %-6s  %s <%s> @%s\n", u.ID, u.Role, u.Name, u.Email, u.Username)
	}
}
