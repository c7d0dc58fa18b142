package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/vultisig/safe-api-plugin/plugin"
	"github.com/vultisig/safe-api-plugin/plugin/safe"
)

func main() {
	app := &cli.App{
		Name:  "safecli",
		Usage: "invoke the Safe transaction service plugin from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-path",
				Usage:   "directory containing safe.yaml",
				EnvVars: []string{"SAFE_CONFIG_PATH"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log debug output to stderr",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "methods",
				Usage:  "list the plugin methods",
				Action: listMethods,
			},
			{
				Name:      "invoke",
				Usage:     "invoke a plugin method",
				ArgsUsage: "<method>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "args",
						Usage: "argument record as JSON, - reads it from stdin",
						Value: "{}",
					},
				},
				Action: invoke,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newPlugin(c *cli.Context) (plugin.Plugin, error) {
	logger := logrus.New()
	logger.SetOutput(c.App.ErrWriter)
	if c.Bool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}

	pluginConfig, err := safe.LoadPluginConfig(c.String("config-path"))
	if err != nil {
		return nil, err
	}
	cfg, err := safe.BuildConfig(c.Context, *pluginConfig)
	if err != nil {
		return nil, err
	}
	return safe.NewSafePlugin(cfg, logger)
}

func listMethods(c *cli.Context) error {
	p, err := newPlugin(c)
	if err != nil {
		return err
	}
	for _, method := range p.Methods() {
		fmt.Fprintln(c.App.Writer, method)
	}
	return nil
}

func invoke(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: safecli invoke <method> --args '{...}'", 2)
	}
	args, err := readArgs(c.String("args"), os.Stdin)
	if err != nil {
		return err
	}
	p, err := newPlugin(c)
	if err != nil {
		return err
	}
	result, err := p.Invoke(c.Context, c.Args().First(), args)
	if err != nil {
		return cli.Exit(plugin.ErrorMessage(err), exitCode(err))
	}
	return printJSON(c.App.Writer, result)
}

func readArgs(value string, stdin io.Reader) (json.RawMessage, error) {
	if value != "-" {
		return json.RawMessage(value), nil
	}
	buf, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("fail to read args from stdin, err: %w", err)
	}
	return buf, nil
}

func printJSON(w io.Writer, raw json.RawMessage) error {
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return fmt.Errorf("fail to format result, err: %w", err)
	}
	out.WriteByte('\n')
	_, err := out.WriteTo(w)
	return err
}

// exitCode keeps the HTTP status classes apart: 1 for caller errors, 3 for
// remote failures.
func exitCode(err error) int {
	if plugin.StatusCode(err) < 500 {
		return 1
	}
	return 3
}

