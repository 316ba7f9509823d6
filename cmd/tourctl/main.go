// Command tourctl runs the aggregators once against the configured upstream
// and prints the result.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	"tourapi/internal/app"
	"tourapi/internal/config"
	"tourapi/internal/course"
	"tourapi/internal/httpx"
	"tourapi/internal/logger"
	"tourapi/internal/tour"
)

var version = "dev"

// CLI is the top-level command structure for tourctl.
type CLI struct {
	Version  kong.VersionFlag `help:"Show version." short:"V"`
	LogLevel string           `help:"Log level." default:"warn" enum:"debug,info,warn,error"`

	List       ListCmd       `cmd:"" help:"Fetch one enriched page of a category."`
	Courses    CoursesCmd    `cmd:"" help:"Fetch travel courses with their places."`
	Categories CategoriesCmd `cmd:"" help:"Print the known categories."`
}

// runtime carries what every command needs. It is bound into kong so Run
// methods receive it as an argument.
type runtime struct {
	ctx context.Context
	app *app.App
	out io.Writer
}

type ListCmd struct {
	Category string `arg:"" help:"Category name, e.g. trip or food."`
	Page     int    `help:"Page number." default:"1"`
	Rows     int    `help:"Items per page." default:"20"`
	Format   string `help:"Output format." default:"json" enum:"json,yaml"`
}

func (c *ListCmd) Run(rt *runtime) error {
	q := tour.Query{Type: c.Category, PageNo: c.Page, NumOfRows: c.Rows}
	if err := validate(q); err != nil {
		return err
	}

	items, err := rt.app.Tours.List(rt.ctx, q)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	return write(rt.out, c.Format, items)
}

type CoursesCmd struct {
	Rows   int    `help:"Number of courses." default:"20"`
	Format string `help:"Output format." default:"json" enum:"json,yaml"`
}

func (c *CoursesCmd) Run(rt *runtime) error {
	q := course.Query{NumOfRows: c.Rows}
	if err := validate(q); err != nil {
		return err
	}

	courses, err := rt.app.Courses.List(rt.ctx, q)
	if err != nil {
		return fmt.Errorf("courses: %w", err)
	}
	return write(rt.out, c.Format, courses)
}

type CategoriesCmd struct{}

func (c *CategoriesCmd) Run(rt *runtime) error {
	for _, name := range tour.Categories() {
		cat, _ := tour.LookupCategory(name)
		fmt.Fprintf(rt.out, "%-8s %s\n", cat.Name, cat.Endpoint)
	}
	return nil
}

func validate(s any) error {
	details := httpx.ValidateStruct(s)
	if len(details) == 0 {
		return nil
	}
	msgs := make([]string, len(details))
	for i, d := range details {
		msgs[i] = d.Field + ": " + d.Message
	}
	return fmt.Errorf("invalid arguments: %s", strings.Join(msgs, "; "))
}

func write(w io.Writer, format string, v any) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func main() {
	var cli CLI
	parser := kong.Must(&cli,
		kong.Name("tourctl"),
		kong.Description("Query the tourism aggregators from the command line."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
	)
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	cfg, err := config.Load()
	parser.FatalIfErrorf(err)

	log := logger.New(logger.Config{Level: cli.LogLevel, Format: "console", Output: "stderr"})
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rt := &runtime{ctx: ctx, app: app.New(cfg, log, nil), out: os.Stdout}
	if err := kctx.Run(rt); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
