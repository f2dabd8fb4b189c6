package main

import (
	"context"
	"os"
	"time"

	"github.com/delaneyj/slotparty/app/loancalc"
	"github.com/delaneyj/slotparty/cmd/loancalc/internal/config"
	"github.com/delaneyj/slotparty/dom"
	"github.com/delaneyj/slotparty/kernel"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

const (
	amountKey  = "amount"
	yearsKey   = "years"
	rateKey    = "rate"
	titleKey   = "title"
	hydrateKey = "hydrate"
	configKey  = "config"
	setKey     = "set"
	pageKey    = "page"
	verboseKey = "verbose"
)

func main() {
	cmd := &cli.Command{
		Name:  "loancalc",
		Usage: "Mount the mortgage calculator, type into it and print the result",
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:  amountKey,
				Usage: "Loan amount",
				Value: loancalc.DefaultAmount,
			},
			&cli.IntFlag{
				Name:  yearsKey,
				Usage: "Term in years",
				Value: loancalc.DefaultYears,
			},
			&cli.IntFlag{
				Name:  rateKey,
				Usage: "Interest rate in hundredths of a percent",
				Value: loancalc.DefaultRateInput,
			},
			&cli.StringFlag{
				Name:  titleKey,
				Usage: "Page title",
				Value: loancalc.DefaultTitle,
			},
			&cli.BoolFlag{
				Name:  hydrateKey,
				Usage: "Pre-render the page and hydrate it instead of creating nodes",
			},
			&cli.StringFlag{
				Name:      configKey,
				Usage:     "YAML config file, defaults to ./" + config.DefaultFile + " when present",
				TakesFile: true,
			},
			&cli.StringSliceFlag{
				Name:  setKey,
				Usage: "Type value into an input after mounting (amount=, years=, rate=), repeatable",
			},
			&cli.StringFlag{
				Name:      pageKey,
				Usage:     "Write the final page markup to this file",
				TakesFile: true,
			},
			&cli.BoolFlag{
				Name:  verboseKey,
				Usage: "Log flushes and hydration",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logrus.Fatal(err)
	}
}

// settings merges the config file with the flags that were set explicitly.
func settings(cmd *cli.Command) (*config.Config, []config.Input, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.LoadOptional(wd, cmd.String(configKey))
	if err != nil {
		return nil, nil, err
	}

	if cmd.IsSet(amountKey) || cfg.Amount == 0 {
		cfg.Amount = cmd.Float(amountKey)
	}
	if cmd.IsSet(yearsKey) || cfg.Years == 0 {
		cfg.Years = int(cmd.Int(yearsKey))
	}
	if cmd.IsSet(rateKey) || cfg.Rate == 0 {
		cfg.Rate = int(cmd.Int(rateKey))
	}
	if cmd.IsSet(titleKey) || cfg.Title == "" {
		cfg.Title = cmd.String(titleKey)
	}
	if cmd.IsSet(hydrateKey) {
		cfg.Hydrate = cmd.Bool(hydrateKey)
	}
	if cmd.IsSet(pageKey) {
		cfg.Page = cmd.String(pageKey)
	}

	set, err := config.ParseInputs(cmd.StringSlice(setKey))
	if err != nil {
		return nil, nil, err
	}
	return cfg, append(cfg.SortedInputs(), set...), nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)
	if cmd.Bool(verboseKey) {
		log.SetLevel(logrus.DebugLevel)
	}

	start := time.Now()
	log.Info("loancalc started")
	defer func() {
		log.WithField("took", time.Since(start)).Info("loancalc finished")
	}()

	cfg, inputs, err := settings(cmd)
	if err != nil {
		return err
	}
	props := kernel.Props{
		"pageTitle":         cfg.Title,
		"loanAmount":        cfg.Amount,
		"years":             cfg.Years,
		"interestRateInput": cfg.Rate,
	}

	rt := kernel.NewRuntime(
		kernel.WithLogger(log),
		kernel.WithOnError(func(err error) {
			log.WithError(err).Warn("update failed")
		}),
	)
	target := dom.Body()
	if cfg.Hydrate {
		if err := prerender(target, props); err != nil {
			return err
		}
	}

	h, err := loancalc.Mount(rt, target, props, cfg.Hydrate)
	if err != nil {
		return err
	}
	defer h.Destroy()

	for _, input := range inputs {
		slot, ok := loancalc.InputName(input.Name)
		if !ok {
			return errors.Errorf("unknown input %q", input.Name)
		}
		if err := loancalc.Input(h, slot, input.Value); err != nil {
			return errors.Wrapf(err, "input %s", input.Name)
		}
	}

	log.WithFields(logrus.Fields{
		"hydrated": cfg.Hydrate,
		"moves":    rt.Hydration().Moves(),
		"flushes":  rt.Flushes(),
	}).Info("calculator settled")

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"", "Value"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, row := range loancalc.Summary(h.Instance()) {
		table.Append([]string{row[0], row[1]})
	}
	table.Render()

	if cfg.Page != "" {
		return writePage(cfg.Page, h.Instance())
	}
	return nil
}

// prerender fills target with the server markup for props, the way a page
// arrives in the browser before hydration.
func prerender(target *dom.Node, props kernel.Props) error {
	server := kernel.NewRuntime()
	h, err := kernel.Instantiate(server, loancalc.Definition(), kernel.Options{Props: props})
	if err != nil {
		return err
	}
	defer h.Destroy()
	return dom.ParseInto(target, loancalc.Body(loancalc.ViewOf(h.Instance())))
}

func writePage(path string, in *kernel.Instance) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create page")
	}
	defer f.Close()
	loancalc.WritePage(f, loancalc.ViewOf(in))
	return nil
}
