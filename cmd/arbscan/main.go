package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/quantora/fxcore/cross"
	"github.com/quantora/fxcore/currency"
)

type rateJSON struct {
	Base  string  `json:"base"`
	Quote string  `json:"quote"`
	Rate  float64 `json:"rate"`
}

type scanInput struct {
	TaskID       string     `json:"task_id,omitempty"`
	Rates        []rateJSON `json:"rates"`
	ThresholdPct float64    `json:"threshold_pct,omitempty"`

	// Optional conversion query over the same snapshot.
	ConvertFrom   string  `json:"convert_from,omitempty"`
	ConvertTo     string  `json:"convert_to,omitempty"`
	ConvertAmount float64 `json:"convert_amount,omitempty"`
	HalfSpread    float64 `json:"half_spread,omitempty"`
}

type opportunityJSON struct {
	Cycle     string  `json:"cycle"`
	Synthetic float64 `json:"synthetic"`
	Market    float64 `json:"market"`
	ProfitPct float64 `json:"profit_pct"`
}

type conversionJSON struct {
	Route       []string `json:"route"`
	FinalAmount float64  `json:"final_amount"`
	TotalCost   float64  `json:"total_cost"`
}

type scanOutput struct {
	TaskID        string            `json:"task_id,omitempty"`
	Opportunities []opportunityJSON `json:"opportunities"`
	Conversion    *conversionJSON   `json:"conversion,omitempty"`
	Error         string            `json:"error,omitempty"`
}

func main() {
	inputPath := flag.String("input", "", "JSON input path (reads stdin if omitted)")
	verbose := flag.Bool("v", false, "Verbose diagnostics on stderr")
	help := flag.Bool("h", false, "Show help")
	flag.BoolVar(help, "help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Fprintln(os.Stderr, "Usage: arbscan -input <path>")
		fmt.Fprintln(os.Stderr, "Scan a rate snapshot for triangular-arbitrage opportunities.")
		return
	}

	log := newLogger(*verbose)

	path := strings.TrimSpace(*inputPath)
	if path == "" {
		if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			fmt.Fprintln(os.Stderr, "Usage: arbscan -input <path>")
			os.Exit(2)
		}
	}

	raw, err := readInput(path)
	if err != nil {
		exitError(fmt.Sprintf("read input: %v", err))
	}

	inputs, isArray, err := parseInputs(raw)
	if err != nil {
		exitError(fmt.Sprintf("parse JSON: %v", err))
	}

	hadError := false
	outputs := make([]scanOutput, 0, len(inputs))
	for _, in := range inputs {
		out, err := process(in, log)
		if err != nil {
			hadError = true
			log.Warn().Str("task_id", in.TaskID).Err(err).Msg("scan failed")
			outputs = append(outputs, scanOutput{TaskID: in.TaskID, Error: err.Error()})
			continue
		}
		outputs = append(outputs, *out)
	}

	if isArray {
		b, _ := json.Marshal(outputs)
		fmt.Println(string(b))
	} else {
		b, _ := json.Marshal(outputs[0])
		fmt.Println(string(b))
	}

	if hadError {
		os.Exit(1)
	}
}

func process(in scanInput, log zerolog.Logger) (*scanOutput, error) {
	if len(in.Rates) == 0 {
		return nil, fmt.Errorf("empty rate snapshot")
	}

	table := currency.NewRateTable()
	for _, r := range in.Rates {
		base, err := currency.ParseCode(r.Base)
		if err != nil {
			return nil, err
		}
		quote, err := currency.ParseCode(r.Quote)
		if err != nil {
			return nil, err
		}
		if r.Rate <= 0 {
			return nil, fmt.Errorf("rate %s/%s must be positive, got %g", base, quote, r.Rate)
		}
		table.Set(base, quote, r.Rate)
	}

	threshold := in.ThresholdPct
	if threshold == 0 {
		threshold = cross.DefaultArbThresholdPct
	}

	opps, err := cross.ScanTriangles(table, threshold)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("rates", len(in.Rates)).Int("opportunities", len(opps)).Msg("scan complete")

	out := &scanOutput{
		TaskID:        in.TaskID,
		Opportunities: make([]opportunityJSON, 0, len(opps)),
	}
	for _, o := range opps {
		out.Opportunities = append(out.Opportunities, opportunityJSON{
			Cycle:     fmt.Sprintf("%s-%s-%s", o.A, o.B, o.C),
			Synthetic: o.Synthetic,
			Market:    o.Market,
			ProfitPct: o.ProfitPct,
		})
	}

	if in.ConvertFrom != "" && in.ConvertTo != "" {
		conv, err := convert(in, table)
		if err != nil {
			return nil, err
		}
		out.Conversion = conv
	}
	return out, nil
}

func convert(in scanInput, table currency.RateTable) (*conversionJSON, error) {
	from, err := currency.ParseCode(in.ConvertFrom)
	if err != nil {
		return nil, err
	}
	to, err := currency.ParseCode(in.ConvertTo)
	if err != nil {
		return nil, err
	}
	amount := in.ConvertAmount
	if amount == 0 {
		amount = 1
	}

	path, err := cross.OptimalPath(from, to, table, amount, in.HalfSpread)
	if err != nil {
		return nil, err
	}

	route := make([]string, 0, len(path.Route))
	for _, c := range path.Route {
		route = append(route, string(c))
	}
	return &conversionJSON{
		Route:       route,
		FinalAmount: path.FinalAmount,
		TotalCost:   path.TotalCost,
	}, nil
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func readInput(path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(os.Stdin)
}

func parseInputs(raw []byte) ([]scanInput, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}
	if trimmed[0] == '[' {
		var inputs []scanInput
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, true, err
		}
		if len(inputs) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return inputs, true, nil
	}
	var input scanInput
	if err := json.Unmarshal(trimmed, &input); err != nil {
		return nil, false, err
	}
	return []scanInput{input}, false, nil
}

func exitError(msg string) {
	b, _ := json.Marshal(scanOutput{Error: msg})
	fmt.Println(string(b))
	os.Exit(1)
}
