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

type optionInput struct {
	TaskID        string  `json:"task_id,omitempty"`
	Base          string  `json:"base"`
	Quote         string  `json:"quote"`
	Type          string  `json:"type"`
	Strike        float64 `json:"strike"`
	Spot          float64 `json:"spot"`
	ExpiryYears   float64 `json:"expiry_years"`
	Volatility    float64 `json:"volatility"`
	DomesticRate  float64 `json:"domestic_rate"`
	ForeignRate   float64 `json:"foreign_rate"`
	DigitalPayout float64 `json:"digital_payout,omitempty"`
}

type optionOutput struct {
	TaskID         string  `json:"task_id,omitempty"`
	Pair           string  `json:"pair,omitempty"`
	Type           string  `json:"type,omitempty"`
	Premium        float64 `json:"premium"`
	Delta          float64 `json:"delta"`
	Gamma          float64 `json:"gamma"`
	Vega           float64 `json:"vega"`
	Theta          float64 `json:"theta"`
	Rho            float64 `json:"rho"`
	RhoForeign     float64 `json:"rho_foreign"`
	D1             float64 `json:"d1"`
	D2             float64 `json:"d2"`
	DigitalPremium float64 `json:"digital_premium,omitempty"`
	Error          string  `json:"error,omitempty"`
}

func main() {
	inputPath := flag.String("input", "", "JSON input path (reads stdin if omitted)")
	verbose := flag.Bool("v", false, "Verbose diagnostics on stderr")
	help := flag.Bool("h", false, "Show help")
	flag.BoolVar(help, "help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Fprintln(os.Stderr, "Usage: fxoption -input <path>")
		fmt.Fprintln(os.Stderr, "Price FX options (Garman-Kohlhagen) with full Greeks from JSON.")
		return
	}

	log := newLogger(*verbose)

	path := strings.TrimSpace(*inputPath)
	if path == "" {
		if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			fmt.Fprintln(os.Stderr, "Usage: fxoption -input <path>")
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
	log.Debug().Int("count", len(inputs)).Msg("pricing option book")

	hadError := false
	outputs := make([]optionOutput, 0, len(inputs))
	for _, in := range inputs {
		out, err := process(in)
		if err != nil {
			hadError = true
			log.Warn().Str("task_id", in.TaskID).Err(err).Msg("option rejected")
			outputs = append(outputs, optionOutput{TaskID: in.TaskID, Error: err.Error()})
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

func process(in optionInput) (*optionOutput, error) {
	opt, err := buildOption(in)
	if err != nil {
		return nil, err
	}

	price, err := option.PriceOption(opt)
	if err != nil {
		return nil, err
	}

	out := &optionOutput{
		TaskID:     in.TaskID,
		Pair:       opt.Pair.Symbol,
		Type:       opt.Type.String(),
		Premium:    price.Premium,
		Delta:      price.Greeks.Delta,
		Gamma:      price.Greeks.Gamma,
		Vega:       price.Greeks.Vega,
		Theta:      price.Greeks.Theta,
		Rho:        price.Greeks.Rho,
		RhoForeign: price.Greeks.RhoForeign,
		D1:         price.D1,
		D2:         price.D2,
	}

	if in.DigitalPayout != 0 {
		digital, err := option.Digital(opt, in.DigitalPayout)
		if err != nil {
			return nil, err
		}
		out.DigitalPremium = digital
	}
	return out, nil
}

func buildOption(in optionInput) (option.Option, error) {
	base, err := currency.ParseCode(in.Base)
	if err != nil {
		return option.Option{}, err
	}
	quote, err := currency.ParseCode(in.Quote)
	if err != nil {
		return option.Option{}, err
	}
	pair, err := currency.NewPair(currency.PairParams{Base: base, Quote: quote})
	if err != nil {
		return option.Option{}, err
	}

	typ, err := parseType(in.Type)
	if err != nil {
		return option.Option{}, err
	}

	return option.Option{
		Pair:         pair,
		Type:         typ,
		Strike:       in.Strike,
		Spot:         in.Spot,
		TimeToExpiry: in.ExpiryYears,
		Volatility:   in.Volatility,
		DomesticRate: in.DomesticRate,
		ForeignRate:  in.ForeignRate,
	}, nil
}

func parseType(s string) (option.Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "":
		return option.Call, nil
	case "put":
		return option.Put, nil
	}
	return option.Call, fmt.Errorf("unknown option type %q (want call or put)", s)
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

func parseInputs(raw []byte) ([]optionInput, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}
	if trimmed[0] == '[' {
		var inputs []optionInput
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, true, err
		}
		if len(inputs) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return inputs, true, nil
	}
	var input optionInput
	if err := json.Unmarshal(trimmed, &input); err != nil {
		return nil, false, err
	}
	return []optionInput{input}, false, nil
}

func exitError(msg string) {
	b, _ := json.Marshal(optionOutput{Error: msg})
	fmt.Println(string(b))
	os.Exit(1)
}
