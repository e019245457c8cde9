package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/baxromumarov/semchan"
	"github.com/baxromumarov/semchan/chanx"
)

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(2)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := logrus.ParseLevel(opts.LogLevel)
	if err != nil {
		log.WithError(err).Fatal("bad log level")
	}
	log.SetLevel(level)

	if opts.ConfigFile != "" {
		if err := opts.Demo.loadFile(opts.ConfigFile); err != nil {
			log.WithError(err).Fatal("load config")
		}
	}
	if err := opts.Demo.validate(); err != nil {
		log.WithError(err).Fatal("invalid options")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, log, opts.Demo); err != nil {
		log.WithError(err).Fatal("run failed")
	}
}

// run starts one producer per input channel, merges the inputs into a
// single channel with chanx.Merge and sums everything on the consumer
// side. Counters are reported through a Prometheus registry at the end.
func run(ctx context.Context, log *logrus.Logger, d Demo) error {
	col := semchan.NewCollector(d.Namespace)
	reg := prometheus.NewRegistry()
	if err := reg.Register(col); err != nil {
		return err
	}

	ins := make([]*semchan.Channel[int], d.Channels)
	for i := range ins {
		ins[i] = semchan.New[int](d.Capacity,
			semchan.WithName(fmt.Sprintf("producer-%d", i)),
			semchan.WithLogger(log))
		col.Add(ins[i])
	}
	merged := semchan.New[int](d.Capacity, semchan.WithName("merged"), semchan.WithLogger(log))
	col.Add(merged)

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for i, in := range ins {
		g.Go(func() error {
			for v := range d.Messages {
				if err := in.SendContext(ctx, v); err != nil {
					return fmt.Errorf("producer %d: %w", i, err)
				}
			}
			return in.Close()
		})
	}
	g.Go(func() error { return chanx.Merge(ctx, merged, ins...) })

	var count, sum int
	g.Go(func() error {
		for {
			v, ok, err := chanx.Recv(ctx, merged)
			if err != nil || !ok {
				return err
			}
			count++
			sum += v
		}
	})

	err := g.Wait()
	log.WithFields(logrus.Fields{
		"received": count,
		"sum":      sum,
		"elapsed":  time.Since(start).Round(time.Microsecond),
	}).Info("fan-in finished")

	report(log, reg)

	for _, ch := range append(ins, merged) {
		if cerr := ch.Close(); cerr != nil && !errors.Is(cerr, semchan.ErrClosed) {
			return cerr
		}
		if derr := ch.Destroy(); derr != nil {
			return derr
		}
	}
	return err
}

// report logs every gathered sample.
func report(log *logrus.Logger, reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		log.WithError(err).Warn("gather metrics")
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			fields := logrus.Fields{"metric": mf.GetName()}
			for _, lp := range m.GetLabel() {
				fields[lp.GetName()] = lp.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				fields["value"] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				fields["value"] = m.GetGauge().GetValue()
			}
			log.WithFields(fields).Debug("metric")
		}
	}
}
