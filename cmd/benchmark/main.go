package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/slotparty/app/loancalc"
	"github.com/delaneyj/slotparty/dirty"
	"github.com/delaneyj/slotparty/dom"
	"github.com/delaneyj/slotparty/hydrate"
	"github.com/delaneyj/slotparty/kernel"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

const (
	itersKey   = "iters"
	profileKey = "profile"
)

var (
	components = []int{1, 10, 100, 1_000}
	slots      = []int{1, 10, 100}
	children   = []int{10, 100, 1_000, 10_000}
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Time flushes, reconciliation and the calculator",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  itersKey,
				Usage: "Samples per benchmark",
				Value: 100,
			},
			&cli.StringFlag{
				Name:      profileKey,
				Usage:     "Write a CPU profile to this file",
				Value:     "default.pgo",
				TakesFile: true,
			},
		},
		Action: benchmark,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func benchmark(ctx context.Context, cmd *cli.Command) error {
	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	iters := int(cmd.Int(itersKey))
	logrus.Info("warming up")
	benchmarkFlush(iters, false)
	benchmarkReconcile(iters, false)

	benchmarkFlush(iters, true)
	benchmarkReconcile(iters, true)
	return benchmarkCalculator(iters, true)
}

func newTable(title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})
	return tbl
}

func appendCalc(tbl table.Writer, name string, calc *tachymeter.Metrics) {
	tbl.AppendRows([]table.Row{
		{
			name,
			calc.Time.Avg,
			calc.Time.Min,
			calc.Time.P75,
			calc.Time.P99,
			calc.Time.Max,
		},
	})
}

func noop(changed dirty.Mask) error {
	return nil
}

func benchmarkFlush(iters int, shouldRender bool) {
	tbl := newTable("Flush")

	for _, c := range components {
		for _, s := range slots {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rt := kernel.NewRuntime()
			def := kernel.Definition{
				Setup: func(in *kernel.Instance, props kernel.Props, invalidate kernel.Invalidator) []any {
					return make([]any, s)
				},
				Fragment: func(in *kernel.Instance) kernel.Fragment {
					return &kernel.Block{P: noop}
				},
			}
			instances := make([]*kernel.Instance, c)
			for i := range instances {
				h, err := kernel.Instantiate(rt, def, kernel.Options{Target: dom.Body()})
				if err != nil {
					logrus.Fatal(err)
				}
				instances[i] = h.Instance()
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				for _, in := range instances {
					for slot := 0; slot < s; slot++ {
						in.Invalidate(slot, i)
					}
				}
				if err := rt.Tick(); err != nil {
					logrus.Fatal(err)
				}
				tach.AddTime(time.Since(start))
			}

			appendCalc(tbl, fmt.Sprintf("flush: %d components * %d slots", c, s), tach.Calc())
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

func benchmarkReconcile(iters int, shouldRender bool) {
	tbl := newTable("Reconcile")
	rnd := rand.New(rand.NewSource(1))

	for _, n := range children {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})
		moves := 0

		for i := 0; i < iters; i++ {
			parent := dom.Body()
			orders := make(map[*dom.Node]int, n)
			for _, order := range rnd.Perm(n) {
				node := dom.Text("")
				orders[node] = order
				dom.Append(parent, node)
			}

			start := time.Now()
			moves += hydrate.Reconcile(parent, func(node *dom.Node) int {
				return orders[node]
			})
			tach.AddTime(time.Since(start))
		}

		appendCalc(tbl, fmt.Sprintf("reconcile: %d children, %d avg moves", n, moves/iters), tach.Calc())
	}

	if shouldRender {
		tbl.Render()
	}
}

func benchmarkCalculator(iters int, shouldRender bool) error {
	tbl := newTable("Calculator")

	for _, hydrated := range []bool{false, true} {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})
		markup := ""
		if hydrated {
			rt := kernel.NewRuntime()
			h, err := kernel.Instantiate(rt, loancalc.Definition(), kernel.Options{})
			if err != nil {
				return err
			}
			markup = loancalc.Body(loancalc.ViewOf(h.Instance()))
		}

		for i := 0; i < iters; i++ {
			target := dom.Body()
			if hydrated {
				if err := dom.ParseInto(target, markup); err != nil {
					return err
				}
			}

			start := time.Now()
			h, err := loancalc.Mount(kernel.NewRuntime(), target, nil, hydrated)
			if err != nil {
				return err
			}
			if err := loancalc.Input(h, loancalc.Years, fmt.Sprint(1+i%50)); err != nil {
				return err
			}
			tach.AddTime(time.Since(start))
			h.Destroy()
		}

		name := "mount + input"
		if hydrated {
			name = "hydrate + input"
		}
		appendCalc(tbl, name, tach.Calc())
	}

	if shouldRender {
		tbl.Render()
	}
	return nil
}
