package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/delaneyj/slotparty/hub"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const itersKey = "iters"

var (
	listenerCounts = []int{1, 10, 100, 1_000}
	signalCounts   = []int{1, 10, 100}
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure emission latency across signal and listener counts",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  itersKey,
				Usage: "Emissions per cell",
				Value: 1_000,
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

type emitter struct{ id int }
type sink struct{ id int }

func run(ctx context.Context, cmd *cli.Command) error {
	iters := int(cmd.Uint(itersKey))
	log.Printf("warming up")

	tbl := table.NewWriter()
	tbl.SetTitle("Slotparty Emission")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "emissions", "avg", "min", "p75", "p99", "max"})

	for _, nSignals := range signalCounts {
		for _, nListeners := range listenerCounts {
			r := hub.New()
			e := &emitter{}
			fired := mapset.NewSet[string]()

			for s := 0; s < nSignals; s++ {
				if err := r.Register(e, s); err != nil {
					return err
				}
			}
			for l := 0; l < nListeners; l++ {
				snk := &sink{id: l}
				for s := 0; s < nSignals; s++ {
					key := fmt.Sprintf("%d/%d", s, l)
					err := r.Connect(e, s, snk, "on_fire", hub.WithCallback(func(args ...any) {
						fired.Add(key)
					}))
					if err != nil {
						return err
					}
				}
			}

			tach := tachymeter.New(&tachymeter.Config{Size: iters})
			for i := 0; i < iters; i++ {
				fired.Clear()
				start := time.Now()
				for s := 0; s < nSignals; s++ {
					if err := r.Emit(e, s, i); err != nil {
						return err
					}
				}
				tach.AddTime(time.Since(start))

				if got, want := fired.Cardinality(), nSignals*nListeners; got != want {
					return fmt.Errorf("emission sweep fired %d connections, want %d", got, want)
				}
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("emit: %d signals * %d listeners", nSignals, nListeners),
					humanize.Comma(int64(iters)),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	tbl.Render()
	return nil
}
