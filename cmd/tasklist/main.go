// Package main implements the tasklist command.
//
// It serves the task form pages over HTTP and manages the stored lists from
// the shell.
//
// Exit codes:
//   - 0: Success
//   - 1: Error (invalid arguments, rejected submission, storage failure)
//
// Environment variables:
//   - TASKLIST_STORAGE_BACKEND: Optional. "json" (default), "sqlite", "postgres", "mysql" or "memory".
//   - TASKLIST_JSON_DIR / TASKLIST_SQLITE_PATH: Optional. Custom local storage paths inside --dir.
//   - TASKLIST_POSTGRES_URL / TASKLIST_MYSQL_DSN: Required for those backends.
//   - TASKLIST_LAYOUT: Optional. Page layout YAML file.
//   - TASKLIST_ADDR: Optional. Listen address for serve (default ":8080").
//   - DEBUG: Optional. Enable debug logging to stderr.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JamesPrial/tasklist/internal/form"
	"github.com/JamesPrial/tasklist/internal/tasklist"
	"github.com/JamesPrial/tasklist/internal/web"
)

const defaultAddr = ":8080"

type app struct {
	dir    string
	layout string
	page   string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// run contains the main logic, returning an exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tasklist",
		Short:         "Task form pages with validation and persistent lists",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.dir, "dir", ".", "base directory for local storage and the default layout file")
	root.PersistentFlags().StringVar(&a.layout, "layout", "", "page layout YAML file (default $TASKLIST_LAYOUT or <dir>/tasklist.yaml)")
	root.PersistentFlags().StringVar(&a.page, "page", "", "page slug (default: first page)")

	root.AddCommand(
		a.serveCmd(),
		a.listCmd(),
		a.addCmd(),
		a.rmCmd(),
		a.importCmd(),
		a.pagesCmd(),
	)
	return root
}

func (a *app) logger() *log.Logger {
	return log.New(a.stderr, "[tasklist] ", log.LstdFlags)
}

func (a *app) openBoard() (*tasklist.Board, error) {
	dir, err := filepath.Abs(strings.TrimSpace(a.dir))
	if err != nil {
		return nil, fmt.Errorf("invalid --dir: %w", err)
	}
	return tasklist.OpenBoard(dir, a.layout, tasklist.WithLogger(a.logger(), tasklist.DebugEnabled()))
}

// withController opens the board, resolves --page and runs fn.
func (a *app) withController(fn func(*tasklist.Controller) error) error {
	board, err := a.openBoard()
	if err != nil {
		return err
	}
	defer board.Close()

	c, err := board.Controller(a.page)
	if err != nil {
		return err
	}
	return fn(c)
}

func (a *app) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the task pages over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := a.openBoard()
			if err != nil {
				return err
			}
			defer board.Close()

			srv, err := web.NewServer(board, a.logger())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, addr)
		},
	}

	def := strings.TrimSpace(os.Getenv("TASKLIST_ADDR"))
	if def == "" {
		def = defaultAddr
	}
	cmd.Flags().StringVar(&addr, "addr", def, "listen address")
	return cmd
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the page's tasks with their indices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withController(func(c *tasklist.Controller) error {
				tasks, err := c.Tasks(cmd.Context())
				if err != nil {
					return err
				}
				return tasklist.WriteTable(a.stdout, c.Page(), tasklist.RowsOf(tasks))
			})
		},
	}
}

func (a *app) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME1 NAME2 DATE",
		Short: "Validate and add one task",
		Long: `Validate and add one task, as if submitted through the page's form.

For select and radio fields pass the option value. For a checkbox pass any
non-empty value to check it. DATE is YYYY-MM-DD and must be today or later.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withController(func(c *tasklist.Controller) error {
				values := submissionOf(args[0], args[1], args[2])
				out, err := c.Submit(cmd.Context(), values)
				if err != nil {
					return err
				}
				if !out.Accepted {
					return out.Error
				}
				fmt.Fprintln(a.stdout, out.Notice)
				return nil
			})
		},
	}
}

func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm INDEX",
		Short: "Delete the task at INDEX, as shown by list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q", args[0])
			}
			return a.withController(func(c *tasklist.Controller) error {
				deleted, err := c.Delete(cmd.Context(), index)
				if err != nil {
					return err
				}
				if !deleted {
					return fmt.Errorf("no task at index %d", index)
				}
				fmt.Fprintf(a.stdout, "Deleted task %d\n", index)
				return nil
			})
		},
	}
}

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Submit a JSON array of tasks read from stdin",
		Long: `Read a JSON array of objects keyed by field (name1, name2, date) from
stdin and submit each one in order. Every entry is validated like a form
submission; rejected entries are reported and skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			submissions, err := tasklist.DecodeSubmissions(a.stdin)
			if err != nil {
				return err
			}

			return a.withController(func(c *tasklist.Controller) error {
				added := 0
				for i, values := range submissions {
					out, err := c.Submit(cmd.Context(), values)
					if err != nil {
						return err
					}
					if !out.Accepted {
						fmt.Fprintf(a.stderr, "entry %d rejected: %v\n", i, out.Error)
						continue
					}
					added++
				}

				fmt.Fprintf(a.stdout, "Imported %d of %d tasks\n", added, len(submissions))
				if added < len(submissions) {
					return errors.New("some entries were rejected")
				}
				return nil
			})
		},
	}
}

func (a *app) pagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "List the pages of the layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := a.openBoard()
			if err != nil {
				return err
			}
			defer board.Close()

			return tasklist.WritePages(a.stdout, board.Pages())
		},
	}
}

// submissionOf builds form values, leaving empty arguments unset like an
// unchecked box.
func submissionOf(name1, name2, date string) url.Values {
	values := url.Values{}
	for k, v := range map[string]string{form.FieldName1: name1, form.FieldName2: name2, form.FieldDate: date} {
		if v != "" {
			values.Set(k, v)
		}
	}
	return values
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
