package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/gosuri/uilive"
	"github.com/grafana/bincount"
	"github.com/grafana/bincount/logger"
	"github.com/grafana/globalconf"
	log "github.com/sirupsen/logrus"
)

var (
	version     = "(none)"
	showVersion = flag.Bool("version", false, "print version string")
	confFile    = flag.String("config", "/etc/bincount/bc-demo.ini", "configuration file path")
	logLevel    = flag.String("log-level", "info", "log level. panic|fatal|error|warning|info|debug")

	numBins      = flag.Int("bins", 40, "number of bins")
	rangeMin     = flag.Float64("range-min", -4, "lower edge of the binned range")
	rangeMax     = flag.Float64("range-max", 4, "upper edge of the binned range")
	observations = flag.Int("observations", 1000000, "how many observations to log")
	mean         = flag.Float64("mean", 0, "mean of the generated normal distribution")
	stddev       = flag.Float64("stddev", 1, "standard deviation of the generated normal distribution")
	outliers     = flag.Int("outliers", 25, "how many deliberate out-of-range observations to log on each side")
	seed         = flag.Int64("seed", 0, "random seed. 0 means seed from the clock")

	live = flag.Bool("live", false, "render the in-progress histogram to the terminal while logging")

	graphiteAddr     = flag.String("graphite-addr", "", "graphite address to report the final counter to. empty means don't report")
	graphitePrefix   = flag.String("graphite-prefix", "bincount.demo", "prefix for graphite metrics (will add trailing dot automatically if needed)")
	graphiteInterval = flag.Int("graphite-interval", 10, "interval in seconds between graphite reports")
	graphiteTimeout  = flag.Duration("graphite-timeout", time.Second*10, "timeout after which a graphite write is considered not successful")
)

func init() {
	formatter := &logger.TextFormatter{}
	formatter.TimestampFormat = "2006-01-02 15:04:05.000"
	log.SetFormatter(formatter)
}

func main() {
	flag.Usage = func() {
		fmt.Println("bc-demo")
		fmt.Println("Logs a normal distribution plus outliers into a BinCounter and renders the histogram")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println()
		fmt.Println("	bc-demo [flags]")
		fmt.Println()
		fmt.Println("Flags:")
		flag.PrintDefaults()
	}

	// Only try and parse the conf file if it exists
	path := ""
	if _, err := os.Stat(*confFile); err == nil {
		path = *confFile
	}
	conf, err := globalconf.NewWithOptions(&globalconf.Options{
		Filename:  path,
		EnvPrefix: "BC_",
	})
	if err != nil {
		log.Fatalf("error with configuration file: %s", err)
	}
	conf.ParseAll()

	lvl, err := log.ParseLevel(*logLevel)
	if err != nil {
		log.Fatalf("failed to parse log-level, %s", err.Error())
	}
	log.SetLevel(lvl)

	if *showVersion {
		fmt.Printf("bc-demo (version: %s - runtime: %s)\n", version, runtime.Version())
		return
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	bc := bincount.New(*numBins, float32(*rangeMin), float32(*rangeMax))
	log.Infof("logging %d observations (mean %g, stddev %g) into %d bins over [%g, %g]",
		*observations, *mean, *stddev, *numBins, *rangeMin, *rangeMax)

	var writer *uilive.Writer
	if *live {
		writer = uilive.New()
		writer.Start()
	}
	renderEvery := *observations / 100
	if renderEvery == 0 {
		renderEvery = 1
	}

	pre := time.Now()
	for i := 0; i < *observations; i++ {
		v := rng.NormFloat64()*(*stddev) + *mean
		if err := bc.LogFloat64(v, 1); err != nil {
			log.Fatalf("log failed: %s", err.Error())
		}
		if *live && (i+1)%renderEvery == 0 {
			fmt.Fprint(writer, bc.GetHistogram(false))
			writer.Flush()
		}
	}
	// deliberate outliers strictly beyond both edges, landing in the catch-all bins
	span := *rangeMax - *rangeMin
	for i := 0; i < *outliers; i++ {
		off := span * (0.01 + rng.Float64())
		if err := bc.LogFloat64(*rangeMin-off, 1); err != nil {
			log.Fatalf("log failed: %s", err.Error())
		}
		if err := bc.LogFloat64(*rangeMax+off, 1); err != nil {
			log.Fatalf("log failed: %s", err.Error())
		}
	}
	if *live {
		fmt.Fprint(writer, bc.GetHistogram(false))
		writer.Stop()
	}
	log.Infof("logged %d observations in %s", bc.TotalObservations(), time.Since(pre))

	fmt.Printf("observations:  %d\n", bc.TotalObservations())
	fmt.Printf("below range:   %d\n", bc.CountBelowRangeMin())
	fmt.Printf("above range:   %d\n", bc.CountAboveRangeMax())
	fmt.Printf("min:           %.3f\n", bc.MinObservation())
	fmt.Printf("max:           %.3f\n", bc.MaxObservation())
	fmt.Printf("mean:          %.3f\n", bc.Mean())
	fmt.Printf("median bin:    %d\n", bc.MedianBinIdx())
	fmt.Println()
	fmt.Print(bc.GetHistogram(true))

	if *graphiteAddr != "" {
		// all writes are done, the reporter only reads from here on
		g := bincount.NewGraphite(*graphitePrefix, *graphiteAddr, *graphiteInterval, *graphiteTimeout, bc)
		g.Flush(time.Now())
		g.Stop()
	}
}
