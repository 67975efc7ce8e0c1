// Command todo is a terminal client for the todo API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"todod/internal/client"
)

const usage = `usage: todo [-server URL] <command> [args]

Commands:
  list              show all todos
  add <title...>    create a todo
  done <id>         toggle a todo's completed flag
  edit <id> <title...>  replace a todo's title
  rm <id>           delete a todo
  status            show counts
`

// Exit codes: 0 success, 1 server/API error, 2 usage error.
func main() {
	server := flag.String("server", envOr("TODO_SERVER", "http://localhost:8080"), "API base URL")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	cmd := "list"
	if len(args) > 0 {
		cmd = args[0]
		args = args[1:]
	}

	ctx := context.Background()
	c := client.New(*server)

	code, err := run(ctx, c, cmd, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(code)
}

func run(ctx context.Context, c *client.Client, cmd string, args []string) (int, error) {
	switch cmd {
	case "list":
		return runList(ctx, c)
	case "add":
		if len(args) == 0 {
			return 2, fmt.Errorf("add needs a title")
		}
		t, err := c.Create(ctx, strings.Join(args, " "))
		if err != nil {
			return 1, err
		}
		fmt.Printf("added %d: %s\n", t.ID, t.Title)
		return 0, nil
	case "done":
		id, err := parseID(args)
		if err != nil {
			return 2, err
		}
		t, err := c.Toggle(ctx, id)
		if err != nil {
			return 1, err
		}
		fmt.Printf("%s %d: %s\n", mark(t.Completed), t.ID, t.Title)
		return 0, nil
	case "edit":
		id, err := parseID(args)
		if err != nil {
			return 2, err
		}
		if len(args) < 2 {
			return 2, fmt.Errorf("edit needs a new title")
		}
		t, err := c.Update(ctx, id, strings.Join(args[1:], " "))
		if err != nil {
			return 1, err
		}
		fmt.Printf("edited %d: %s\n", t.ID, t.Title)
		return 0, nil
	case "rm":
		id, err := parseID(args)
		if err != nil {
			return 2, err
		}
		if err := c.Delete(ctx, id); err != nil {
			return 1, err
		}
		fmt.Printf("deleted %d\n", id)
		return 0, nil
	case "status":
		s, err := c.Status(ctx)
		if err != nil {
			return 1, err
		}
		fmt.Printf("%d todos, %d completed, %d pending\n", s.Todos, s.Completed, s.Pending)
		return 0, nil
	case "help", "-h", "--help":
		fmt.Print(usage)
		return 0, nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return 2, fmt.Errorf("unknown command: %s", cmd)
	}
}

func runList(ctx context.Context, c *client.Client) (int, error) {
	todos, err := c.List(ctx)
	if err != nil {
		return 1, err
	}
	if len(todos) == 0 {
		fmt.Println("nothing to do")
		return 0, nil
	}
	for _, t := range todos {
		fmt.Printf("%s %3d  %s\n", mark(t.Completed), t.ID, t.Title)
	}
	return 0, nil
}

func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id: %s", args[0])
	}
	return id, nil
}

func mark(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
