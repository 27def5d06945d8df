package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/quantora/fxcore/currency"
	"github.com/quantora/fxcore/forward"
)

type forwardInput struct {
	TaskID       string  `json:"task_id,omitempty"`
	Base         string  `json:"base"`
	Quote        string  `json:"quote"`
	Spot         float64 `json:"spot"`
	DomesticRate float64 `json:"domestic_rate"`
	ForeignRate  float64 `json:"foreign_rate"`
	TenorDays    int     `json:"tenor_days"`
	FarTenorDays int     `json:"far_tenor_days,omitempty"`
	TradeDate    string  `json:"trade_date,omitempty"`
}

type forwardOutput struct {
	TaskID          string  `json:"task_id,omitempty"`
	Pair            string  `json:"pair,omitempty"`
	Spot            float64 `json:"spot,omitempty"`
	Points          float64 `json:"points"`
	Outright        float64 `json:"outright"`
	PremiumPct      float64 `json:"premium_pct"`
	SettlementDate  string  `json:"settlement_date,omitempty"`
	SwapPoints      float64 `json:"swap_points,omitempty"`
	FarOutright     float64 `json:"far_outright,omitempty"`
	FarSettlement   string  `json:"far_settlement,omitempty"`
	SwapImpliedRate float64 `json:"swap_implied_rate,omitempty"`
	Error           string  `json:"error,omitempty"`
}

func main() {
	inputPath := flag.String("input", "", "JSON input path (reads stdin if omitted)")
	verbose := flag.Bool("v", false, "Verbose diagnostics on stderr")
	help := flag.Bool("h", false, "Show help")
	flag.BoolVar(help, "help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Fprintln(os.Stderr, "Usage: fxforward -input <path>")
		fmt.Fprintln(os.Stderr, "Price outright forwards and FX swaps from interest-rate parity.")
		fmt.Fprintln(os.Stderr, "Set far_tenor_days to price a swap (tenor_days becomes the near leg).")
		return
	}

	log := newLogger(*verbose)

	path := strings.TrimSpace(*inputPath)
	if path == "" {
		if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			fmt.Fprintln(os.Stderr, "Usage: fxforward -input <path>")
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
	outputs := make([]forwardOutput, 0, len(inputs))
	for _, in := range inputs {
		out, err := process(in)
		if err != nil {
			hadError = true
			log.Warn().Str("task_id", in.TaskID).Err(err).Msg("forward rejected")
			outputs = append(outputs, forwardOutput{TaskID: in.TaskID, Error: err.Error()})
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

func process(in forwardInput) (*forwardOutput, error) {
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

	var tradeDate time.Time
	if in.TradeDate != "" {
		tradeDate, err = time.Parse("2006-01-02", in.TradeDate)
		if err != nil {
			return nil, fmt.Errorf("invalid trade_date: %v", err)
		}
	}

	if in.FarTenorDays > 0 {
		return processSwap(in, pair, tradeDate)
	}

	q, err := forward.NewQuote(pair, in.Spot, in.DomesticRate, in.ForeignRate, in.TenorDays, tradeDate)
	if err != nil {
		return nil, err
	}
	premium, err := forward.PremiumDiscount(q.Outright, q.SpotRate)
	if err != nil {
		return nil, err
	}

	out := &forwardOutput{
		TaskID:     in.TaskID,
		Pair:       pair.Symbol,
		Spot:       q.SpotRate,
		Points:     float64(q.Points),
		Outright:   q.Outright,
		PremiumPct: premium,
	}
	if !q.SettlementDate.IsZero() {
		out.SettlementDate = q.SettlementDate.Format("2006-01-02")
	}
	return out, nil
}

func processSwap(in forwardInput, pair currency.Pair, tradeDate time.Time) (*forwardOutput, error) {
	sq, err := forward.NewSwapQuote(pair, in.Spot, in.DomesticRate, in.ForeignRate, in.TenorDays, in.FarTenorDays, tradeDate)
	if err != nil {
		return nil, err
	}
	implied, err := forward.SwapImpliedRate(sq.NearRate, sq.FarRate, in.ForeignRate, sq.NearTenorDays, sq.FarTenorDays)
	if err != nil {
		return nil, err
	}

	out := &forwardOutput{
		TaskID:          in.TaskID,
		Pair:            pair.Symbol,
		Spot:            sq.SpotRate,
		Outright:        sq.NearRate,
		SwapPoints:      float64(sq.SwapPoints),
		FarOutright:     sq.FarRate,
		SwapImpliedRate: implied,
	}
	if !sq.NearSettlement.IsZero() {
		out.SettlementDate = sq.NearSettlement.Format("2006-01-02")
		out.FarSettlement = sq.FarSettlement.Format("2006-01-02")
	}
	return out, nil
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

func parseInputs(raw []byte) ([]forwardInput, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}
	if trimmed[0] == '[' {
		var inputs []forwardInput
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, true, err
		}
		if len(inputs) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return inputs, true, nil
	}
	var input forwardInput
	if err := json.Unmarshal(trimmed, &input); err != nil {
		return nil, false, err
	}
	return []forwardInput{input}, false, nil
}

func exitError(msg string) {
	b, _ := json.Marshal(forwardOutput{Error: msg})
	fmt.Println(string(b))
	os.Exit(1)
}
