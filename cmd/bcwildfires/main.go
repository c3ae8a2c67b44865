package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/lox/bcwildfires/internal/api"
	"github.com/lox/bcwildfires/internal/config"
	"github.com/lox/bcwildfires/internal/httputil"
	"github.com/lox/bcwildfires/internal/imagegen"
	"github.com/lox/bcwildfires/internal/ingest"
	"github.com/lox/bcwildfires/internal/layout"
	"github.com/lox/bcwildfires/internal/scene"
)

type Globals struct {
	Fires     string `help:"Fire perimeter dataset: a path, file://, http(s):// or ftp:// URI." env:"BCWF_FIRES" default:"${fires}"`
	Provinces string `help:"Province boundary dataset: a path, file://, http(s):// or ftp:// URI." env:"BCWF_PROVINCES" default:"${provinces}"`
	Settings  string `help:"YAML file overriding the default visualization settings." env:"BCWF_SETTINGS"`
}

type CLI struct {
	Globals

	Serve  ServeCmd  `cmd:"" default:"1" help:"Serve the visualization page."`
	Render RenderCmd `cmd:"" help:"Write both surfaces as SVG files for a viewport."`
	Series SeriesCmd `cmd:"" help:"Print fire count and burned area per year."`
}

type ServeCmd struct {
	Port string `help:"HTTP server port." env:"PORT" default:"8080"`
}

func (c *ServeCmd) Run(g *Globals) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	controller, err := load(ctx, g)
	if err != nil {
		return err
	}

	server := api.NewServer(controller, c.Port)
	log.Printf("starting server on :%s", c.Port)
	return server.Run(ctx)
}

type RenderCmd struct {
	Out       string  `help:"Output directory." default:"out" type:"path"`
	Width     float64 `help:"Viewport width in pixels." default:"1280"`
	Height    float64 `help:"Viewport height in pixels." default:"800"`
	Container float64 `help:"Map container width in pixels, defaults to the viewport width."`
	Preview   bool    `help:"Also write a PNG preview of the map."`
}

func (c *RenderCmd) Run(g *Globals) error {
	controller, err := load(context.Background(), g)
	if err != nil {
		return err
	}

	out, err := controller.Rebuild(layout.Viewport{Width: c.Width, Height: c.Height, ContainerWidth: c.Container})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(c.Out, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	files := map[string][]byte{
		"map.svg":      out.Map.Bytes(),
		"temporal.svg": out.Temporal.Bytes(),
	}
	if c.Preview {
		data, err := imagegen.RenderMapPNG(controller.Scene(), controller.Settings(), imagegen.OGWidth, imagegen.OGHeight)
		if err != nil {
			return err
		}
		files["map.png"] = data
	}
	for name, data := range files {
		path := filepath.Join(c.Out, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		log.Printf("wrote %s", path)
	}
	return nil
}

type SeriesCmd struct{}

func (c *SeriesCmd) Run(g *Globals) error {
	controller, err := load(context.Background(), g)
	if err != nil {
		return err
	}

	sc := controller.Scene()
	sizes := sc.Sizes()
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "YEAR\tFIRES\tAREA (sq m)\t")
	for i, p := range sc.Counts() {
		fmt.Fprintf(tw, "%d\t%.0f\t%.0f\t\n", p.Year, p.Value, sizes[i].Value)
	}
	return tw.Flush()
}

// load fetches both datasets and builds the scene every command draws from.
func load(ctx context.Context, g *Globals) (*layout.Controller, error) {
	settings, err := config.LoadSettings(g.Settings)
	if err != nil {
		return nil, err
	}

	loader, err := ingest.NewLoader(g.Fires, g.Provinces, httputil.NewClient(0))
	if err != nil {
		return nil, err
	}
	ds, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	sc := scene.New(ds, settings)
	log.Printf("scene ready: %d fires over %d years", len(sc.Fires), len(sc.Groups))
	return layout.NewController(sc, settings), nil
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("bcwildfires"),
		kong.Description("Historical wildfire map and timeline for British Columbia."),
		kong.UsageOnError(),
		kong.Vars{
			"fires":     ingest.DefaultFiresPath,
			"provinces": ingest.DefaultProvincesPath,
		},
	)
	if err := ctx.Run(&cli.Globals); err != nil {
		log.Fatalf("%v", err)
	}
}
