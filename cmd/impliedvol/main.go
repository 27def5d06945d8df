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

	"github.com/quantora/fxcore/currency"
	"github.com/quantora/fxcore/option"
)

type ivInput struct {
	TaskID        string  `json:"task_id,omitempty"`
	Base          string  `json:"base"`
	Quote         string  `json:"quote"`
	Type          string  `json:"type"`
	Strike        float64 `json:"strike"`
	Spot          float64 `json:"spot"`
	ExpiryYears   float64 `json:"expiry_years"`
	DomesticRate  float64 `json:"domestic_rate"`
	ForeignRate   float64 `json:"foreign_rate"`
	MarketPrice   float64 `json:"market_price"`
	Tolerance     float64 `json:"tolerance,omitempty"`
	MaxIterations int     `json:"max_iterations,omitempty"`
}

type ivOutput struct {
	TaskID     string  `json:"task_id,omitempty"`
	Pair       string  `json:"pair,omitempty"`
	Type       string  `json:"type,omitempty"`
	ImpliedVol float64 `json:"implied_vol"`
	Iterations int     `json:"iterations"`
	Error      string  `json:"error,omitempty"`
}

func main() {
	inputPath := flag.String("input", "", "JSON input path (reads stdin if omitted)")
	verbose := flag.Bool("v", false, "Verbose diagnostics on stderr")
	help := flag.Bool("h", false, "Show help")
	flag.BoolVar(help, "help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Fprintln(os.Stderr, "Usage: impliedvol -input <path>")
		fmt.Fprintln(os.Stderr, "Invert FX option premiums to implied volatility via Newton-Raphson.")
		return
	}

	log := newLogger(*verbose)

	path := strings.TrimSpace(*inputPath)
	if path == "" {
		if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			fmt.Fprintln(os.Stderr, "Usage: impliedvol -input <path>")
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
	outputs := make([]ivOutput, 0, len(inputs))
	for _, in := range inputs {
		out, err := process(in)
		if err != nil {
			hadError = true
			log.Warn().Str("task_id", in.TaskID).Err(err).Msg("inversion failed")
			outputs = append(outputs, ivOutput{TaskID: in.TaskID, Error: err.Error()})
			continue
		}
		log.Debug().Str("task_id", in.TaskID).Float64("vol", out.ImpliedVol).Int("iterations", out.Iterations).Msg("converged")
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

func process(in ivInput) (*ivOutput, error) {
	base, err := currency.ParseCode(in.Base)
	if err != nil {
		return nil, err
	}
	quote, err := currency.ParseCode(in.Quote)
	if err != nil {
		return nil, err
	}
	pair, err := currency.NewPair(currency.PairParams{Base: base, Quote: quote})
	if err != nil {
		return nil, err
	}

	typ := option.Call
	switch strings.ToLower(strings.TrimSpace(in.Type)) {
	case "call", "":
	case "put":
		typ = option.Put
	default:
		return nil, fmt.Errorf("unknown option type %q (want call or put)", in.Type)
	}

	res, err := option.ImpliedVol(option.Option{
		Pair:         pair,
		Type:         typ,
		Strike:       in.Strike,
		Spot:         in.Spot,
		TimeToExpiry: in.ExpiryYears,
		DomesticRate: in.DomesticRate,
		ForeignRate:  in.ForeignRate,
	}, option.IVParams{
		MarketPrice:   in.MarketPrice,
		Tolerance:     in.Tolerance,
		MaxIterations: in.MaxIterations,
	})
	if err != nil {
		return nil, err
	}

	return &ivOutput{
		TaskID:     in.TaskID,
		Pair:       pair.Symbol,
		Type:       typ.String(),
		ImpliedVol: res.Vol,
		Iterations: res.Iterations,
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

func parseInputs(raw []byte) ([]ivInput, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}
	if trimmed[0] == '[' {
		var inputs []ivInput
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, true, err
		}
		if len(inputs) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return inputs, true, nil
	}
	var input ivInput
	if err := json.Unmarshal(trimmed, &input); err != nil {
		return nil, false, err
	}
	return []ivInput{input}, false, nil
}

func exitError(msg string) {
	b, _ := json.Marshal(ivOutput{Error: msg})
	fmt.Println(string(b))
	os.Exit(1)
}
