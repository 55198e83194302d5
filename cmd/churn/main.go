package main

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/delaneyj/slotparty/hub"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

// Soak test for the registry bookkeeping. Random connect, disconnect,
// emit, deregister and cleanup traffic runs against a pool of actors,
// then the invariants are audited: a connect/disconnect pair restores
// the fingerprint, and cleaning every actor leaves the registry empty.
func main() {
	log.Print("Starting slotparty churn, please wait...")
	defer log.Print("Finished slotparty churn")

	cfgs := []churnConfig{
		{
			name:            "small",
			actors:          10,
			signalsPerActor: 2,
			ops:             100_000,
			seed:            1,
		},
		{
			name:            "medium",
			actors:          100,
			signalsPerActor: 4,
			ops:             500_000,
			seed:            2,
		},
		{
			name:            "large",
			actors:          1_000,
			signalsPerActor: 8,
			ops:             1_000_000,
			seed:            3,
		},
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"config", "actors", "signals", "ops",
		"connects", "disconnects", "emits", "callbacks",
		"time", "opRate",
	})

	for _, cfg := range cfgs {
		log.Printf("Running '%s' config", cfg.name)
		res, err := runChurn(cfg)
		if err != nil {
			log.Fatalf("'%s' config failed: %v", cfg.name, err)
		}

		opRate := float64(cfg.ops) / (float64(res.duration) / float64(time.Millisecond))
		table.Append([]string{
			cfg.name,
			humanize.Comma(int64(cfg.actors)),
			humanize.Comma(int64(cfg.actors * cfg.signalsPerActor)),
			humanize.Comma(cfg.ops),
			humanize.Comma(res.connects),
			humanize.Comma(res.disconnects),
			humanize.Comma(res.emits),
			humanize.Comma(res.callbacks),
			fmt.Sprint(res.duration),
			humanize.Comma(int64(opRate)),
		})
	}
	table.Render()
}

type churnConfig struct {
	name            string
	actors          int
	signalsPerActor int
	ops             int64
	seed            int64
}

type churnResults struct {
	connects    int64
	disconnects int64
	emits       int64
	callbacks   int64
	duration    time.Duration
}

type actor struct {
	id    int
	pings int64
}

// OnPing is resolved by name when a connection is made without an
// explicit callback.
func (a *actor) OnPing(n int) {
	a.pings++
}

func runChurn(cfg churnConfig) (*churnResults, error) {
	random := rand.New(rand.NewSource(cfg.seed))
	r := hub.New()
	res := &churnResults{}

	actors := make([]*actor, cfg.actors)
	for i := range actors {
		actors[i] = &actor{id: i}
	}

	register := func(a *actor) error {
		for s := 0; s < cfg.signalsPerActor; s++ {
			if err := r.Register(a, s); err != nil {
				return err
			}
		}
		return nil
	}
	for _, a := range actors {
		if err := register(a); err != nil {
			return nil, err
		}
	}

	var closureCalls int64
	expected := func(err error) bool {
		return errors.Is(err, hub.ErrDuplicateConnection) ||
			errors.Is(err, hub.ErrSignalNotFound) ||
			errors.Is(err, hub.ErrDuplicateSignal)
	}

	start := time.Now()
	for i := int64(0); i < cfg.ops; i++ {
		em := actors[random.Intn(len(actors))]
		li := actors[random.Intn(len(actors))]
		sig := random.Intn(cfg.signalsPerActor)

		switch random.Intn(10) {
		case 0, 1, 2, 3: // connect
			var err error
			if random.Intn(2) == 0 {
				err = r.Connect(em, sig, li, "OnPing")
			} else {
				err = r.Connect(em, sig, li, "slot", hub.WithCallback(func(args ...any) {
					closureCalls++
				}))
			}
			if err == nil {
				res.connects++
			} else if !expected(err) {
				return nil, err
			}
		case 4, 5: // disconnect
			connID := any("OnPing")
			if random.Intn(2) == 0 {
				connID = "slot"
			}
			if err := r.Disconnect(em, sig, li, connID); err != nil {
				if !expected(err) {
					return nil, err
				}
			} else {
				res.disconnects++
			}
		case 6, 7, 8: // emit
			if err := r.Emit(em, sig, int(i)); err != nil {
				if !expected(err) {
					return nil, err
				}
			} else {
				res.emits++
			}
		case 9: // tear the actor down and bring it back
			if random.Intn(2) == 0 {
				r.Deregister(em, sig)
				if err := r.Register(em, sig); err != nil {
					return nil, err
				}
			} else {
				if err := r.Cleanup(em); err != nil {
					return nil, err
				}
				if err := register(em); err != nil {
					return nil, err
				}
			}
		}
	}
	res.duration = time.Since(start)

	for _, a := range actors {
		res.callbacks += a.pings
	}
	res.callbacks += closureCalls

	// Audit: a connect/disconnect pair leaves no trace.
	before := r.Fingerprint()
	probe := &actor{id: -1}
	if err := r.Connect(actors[0], 0, probe, "OnPing"); err != nil {
		return nil, err
	}
	if err := r.Disconnect(actors[0], 0, probe, "OnPing"); err != nil {
		return nil, err
	}
	if after := r.Fingerprint(); after != before {
		return nil, fmt.Errorf("fingerprint drifted: %d != %d", after, before)
	}

	// Audit: cleaning every actor empties the registry.
	for _, a := range actors {
		if err := r.Cleanup(a); err != nil {
			return nil, err
		}
	}
	if n := r.Objects().Cardinality(); n != 0 {
		return nil, fmt.Errorf("%d objects left after full cleanup", n)
	}
	if fp := r.Fingerprint(); fp != 0 {
		return nil, fmt.Errorf("nonzero fingerprint %d after full cleanup", fp)
	}

	return res, nil
}
