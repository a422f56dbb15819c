package regime

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"tax-engine/internal/model"
)

// regimeDoc is the on-disk form of a Regime. The same shape is accepted as
// YAML, TOML or JSON; amounts may be written as numbers or strings.
type regimeDoc struct {
	Name                     string    `yaml:"name" toml:"name" json:"name"`
	StandardDeduction        number    `yaml:"standard_deduction" toml:"standard_deduction" json:"standard_deduction"`
	RebateIncomeLimit        number    `yaml:"rebate_income_limit" toml:"rebate_income_limit" json:"rebate_income_limit"`
	MaxRebate                number    `yaml:"max_rebate" toml:"max_rebate" json:"max_rebate"`
	CessRate                 number    `yaml:"cess_rate" toml:"cess_rate" json:"cess_rate"`
	PresumptiveIncomeRate    number    `yaml:"presumptive_income_rate" toml:"presumptive_income_rate" json:"presumptive_income_rate"`
	PresumptiveTurnoverLimit number    `yaml:"presumptive_turnover_limit" toml:"presumptive_turnover_limit" json:"presumptive_turnover_limit"`
	Slabs                    []slabDoc `yaml:"slabs" toml:"slabs" json:"slabs"`
}

type slabDoc struct {
	Lower number `yaml:"lower" toml:"lower" json:"lower"`
	Upper number `yaml:"upper" toml:"upper" json:"upper"`
	Rate  number `yaml:"rate" toml:"rate" json:"rate"`
}

// number keeps the literal text of an amount so it reaches decimal parsing
// without a float64 round trip.
type number string

func (n *number) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", node.Line)
	}
	if node.Tag == "!!null" {
		*n = ""
		return nil
	}
	*n = number(node.Value)
	return nil
}

func (n *number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = ""
		return nil
	}
	*n = number(strings.Trim(s, `"`))
	return nil
}

func (n *number) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case string:
		*n = number(x)
	case int64:
		*n = number(strconv.FormatInt(x, 10))
	case float64:
		*n = number(strconv.FormatFloat(x, 'f', -1, 64))
	default:
		return fmt.Errorf("expected a number, got %T", v)
	}
	return nil
}

var client = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:    4,
		IdleConnTimeout: 30 * time.Second,
	},
}

// Load resolves a regime from source: empty means Default, an http(s) URL is
// fetched, anything else is read as a file path.
func Load(ctx context.Context, source string) (Regime, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return Default(), nil
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return fetch(ctx, source)
	}
	return LoadFile(source)
}

func LoadFile(path string) (Regime, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Regime{}, &model.OpError{
			Op:   "regime.load_file",
			Kind: model.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	return Parse(path, b)
}

func fetch(ctx context.Context, url string) (Regime, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Regime{}, &model.OpError{Op: "regime.fetch", Kind: model.KindInvalidConfig, Path: url, Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return Regime{}, &model.OpError{Op: "regime.fetch", Kind: model.KindNotFound, Path: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return Regime{}, &model.OpError{
			Op:   "regime.fetch",
			Kind: model.KindNotFound,
			Path: url,
			Err:  fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Regime{}, &model.OpError{Op: "regime.fetch", Kind: model.KindNotFound, Path: url, Err: err}
	}
	return Parse(url, b)
}

// Parse decodes a regime document and validates the result. The format
// follows the extension of path: .toml, .json, otherwise YAML.
func Parse(path string, b []byte) (Regime, error) {
	var dto regimeDoc
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(b, &dto)
	case ".json":
		err = json.Unmarshal(b, &dto)
	default:
		err = yaml.Unmarshal(b, &dto)
	}
	if err != nil {
		return Regime{}, invalid(path, err)
	}

	r, err := mapRegime(dto)
	if err != nil {
		return Regime{}, invalid(path, err)
	}
	if err := r.Validate(); err != nil {
		return Regime{}, invalid(path, err)
	}
	return r, nil
}

func invalid(path string, err error) error {
	return &model.OpError{Op: "regime.parse", Kind: model.KindInvalidConfig, Path: path, Err: err}
}

func mapRegime(dto regimeDoc) (Regime, error) {
	if strings.TrimSpace(dto.Name) == "" {
		return Regime{}, fmt.Errorf("name is required")
	}

	r := Regime{Name: dto.Name, Slabs: make([]Slab, 0, len(dto.Slabs))}

	fields := []struct {
		name string
		raw  number
		dst  *decimal.Decimal
	}{
		{"standard_deduction", dto.StandardDeduction, &r.StandardDeduction},
		{"rebate_income_limit", dto.RebateIncomeLimit, &r.RebateIncomeLimit},
		{"max_rebate", dto.MaxRebate, &r.MaxRebate},
		{"cess_rate", dto.CessRate, &r.CessRate},
		{"presumptive_income_rate", dto.PresumptiveIncomeRate, &r.PresumptiveIncomeRate},
		{"presumptive_turnover_limit", dto.PresumptiveTurnoverLimit, &r.PresumptiveTurnoverLimit},
	}
	for _, f := range fields {
		v, err := parseAmount(f.name, f.raw)
		if err != nil {
			return Regime{}, err
		}
		*f.dst = v
	}

	for i, s := range dto.Slabs {
		prefix := fmt.Sprintf("slabs[%d]", i)
		lower, err := parseAmount(prefix+".lower", s.Lower)
		if err != nil {
			return Regime{}, err
		}
		rate, err := parseAmount(prefix+".rate", s.Rate)
		if err != nil {
			return Regime{}, err
		}
		slab := Slab{Lower: lower, Rate: rate}
		if strings.TrimSpace(string(s.Upper)) != "" {
			upper, err := parseAmount(prefix+".upper", s.Upper)
			if err != nil {
				return Regime{}, err
			}
			slab.Upper = &upper
		}
		r.Slabs = append(r.Slabs, slab)
	}
	return r, nil
}

func parseAmount(field string, n number) (decimal.Decimal, error) {
	raw := strings.TrimSpace(string(n))
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%s is required", field)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", field, err)
	}
	return v, nil
}
