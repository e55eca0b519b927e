package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/spf13/cobra"

	"github.com/novvoo/pdfnote/internal/app"
	"github.com/novvoo/pdfnote/internal/config"
	"github.com/novvoo/pdfnote/pkg/annot"
)

// cli 保存一次命令执行期间的依赖
type cli struct {
	configPath string
	verbose    bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfg    config.Config
	logger *slog.Logger
	engine *annot.Engine
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "pdfnote [file.pdf]",
		Short: "Read and write free-text notes stored in PDF files",
		Long: `pdfnote maps free-text annotations of a PDF to simple records
(page, x, y, content, fontSize) in a top-left-origin page space and back.

When started with a single PDF path it prints that file's notes, which is
how a desktop host passes the file it was opened with.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			startup := app.FromArgs(args)
			if _, ok := startup.Path(); !ok {
				return cmd.Help()
			}
			return c.openStartup(startup)
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "Path to a YAML config file (default $"+config.EnvPath+")")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(newReadCmd(c), newWriteCmd(c), newStripCmd(c))
	return root
}

// setup 加载配置并初始化日志与引擎
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	opts := &slog.HandlerOptions{Level: cfg.SlogLevel(c.verbose)}
	c.logger = slog.New(slog.NewTextHandler(c.stderr, opts))
	slog.SetDefault(c.logger)
	annot.SetLogger(c.logger)

	if !cfg.PDFCPUConfigDir {
		api.DisableConfigDir()
	}

	c.engine = annot.NewEngine(
		annot.WithLogger(c.logger),
		annot.WithPathLocking(cfg.LockPaths),
	)
	return nil
}

// startupView 启动文件及其注释
type startupView struct {
	File        string         `json:"file"`
	Annotations []annot.Record `json:"annotations"`
}

func (c *cli) openStartup(startup app.StartupFile) error {
	path, _ := startup.Path()
	records, err := c.engine.ReadAnnotations(path)
	if err != nil {
		return err
	}
	return c.printJSON(startupView{File: path, Annotations: records})
}

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", c.cfg.JSONIndent)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
