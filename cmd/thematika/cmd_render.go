package main

import (
	"errors"
	"os"

	"github.com/shimizu/thematika"
	"github.com/shimizu/thematika/log"
	"github.com/shimizu/thematika/utils"

	"go.uber.org/zap"
)

type CmdRender struct {
	Spec string `short:"s" long:"spec" description:"Map spec yaml (required)"`
	Out  string `short:"o" long:"out" description:"Output SVG path (default: spec name with .svg)"`
}

func init() {
	_, err := parser.AddCommand("render",
		"Render a map",
		"Render a yaml map spec and its referenced data files into an SVG file",
		&CmdRender{})
	if err != nil {
		panic(err)
	}
}

func (c *CmdRender) Execute(args []string) error {
	if c.Spec == "" {
		return errors.New("--spec is required")
	}
	if c.Out == "" {
		c.Out = utils.GetFilenameWithoutExt(c.Spec) + thematika.FILE_EXT_SVG
	}
	if globalOpts.Verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			log.SetLogger(l)
		}
	}
	spec, err := thematika.LoadMapSpec(c.Spec)
	if err != nil {
		return err
	}
	atlas, err := spec.Build()
	if err != nil {
		return err
	}
	f, err := os.Create(c.Out)
	if err != nil {
		return err
	}
	defer f.Close()
	if err = atlas.Render(f); err != nil {
		return err
	}
	log.Info("render done", zap.String("spec", c.Spec), zap.String("out", c.Out))
	return f.Sync()
}
