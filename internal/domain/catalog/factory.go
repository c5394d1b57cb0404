package catalog

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"

	"github.com/xenking/cafepos/internal/domain/money"
)

// ErrEmptyRecipe is returned when a recipe is empty or whitespace-only.
var ErrEmptyRecipe = errors.New("recipe required")

// UnknownBaseError indicates the first recipe token is not a known base code.
type UnknownBaseError struct {
	Code string
}

func (e *UnknownBaseError) Error() string {
	return fmt.Sprintf("unknown base product %q", e.Code)
}

// UnknownAddonError indicates an addon token is not a known addon code.
type UnknownAddonError struct {
	Code string
}

func (e *UnknownAddonError) Error() string {
	return fmt.Sprintf("unknown addon %q", e.Code)
}

// BaseInfo describes one base product of the fixed catalog.
type BaseInfo struct {
	Code  string
	ID    string
	Name  string
	Price money.Money
}

// AddonInfo describes one addon of the fixed catalog.
type AddonInfo struct {
	Code  string
	Name  string
	Delta money.Money
}

// Catalog order is stable so listings are deterministic.
var baseCatalog = []BaseInfo{
	{Code: "ESP", ID: "P-ESP", Name: "Espresso", Price: money.MustParse("2.50")},
	{Code: "LAT", ID: "P-LAT", Name: "Latte", Price: money.MustParse("3.20")},
	{Code: "CAP", ID: "P-CAP", Name: "Cappuccino", Price: money.MustParse("3.00")},
}

var addonCatalog = []AddonInfo{
	{Code: "SHOT", Name: "Extra Shot", Delta: money.MustParse("0.80")},
	{Code: "OAT", Name: "Oat Milk", Delta: money.MustParse("0.50")},
	{Code: "SYRUP", Name: "Syrup", Delta: money.MustParse("0.40")},
	{Code: "L", Name: "Large", Delta: money.MustParse("0.70")},
}

var addonCtors = map[string]func(Product) (Product, error){
	"SHOT":  NewExtraShot,
	"OAT":   NewOatMilk,
	"SYRUP": NewSyrup,
	"L":     NewSizeLarge,
}

var baseByCode = func() map[string]BaseInfo {
	m := make(map[string]BaseInfo, len(baseCatalog))
	for _, b := range baseCatalog {
		m[b.Code] = b
	}
	return m
}()

// Factory parses recipe strings of the form BASE[+ADDON]* into fully
// decorated products. Tokens are case-insensitive and whitespace around them
// is ignored. Addons are applied strictly in written order, which determines
// the rendered name but never the price.
type Factory struct{}

// NewFactory returns a Factory over the fixed catalog.
func NewFactory() *Factory {
	return &Factory{}
}

// Bases lists the base products available in the catalog.
func (f *Factory) Bases() []BaseInfo {
	out := make([]BaseInfo, len(baseCatalog))
	copy(out, baseCatalog)
	return out
}

// Addons lists the addons available in the catalog.
func (f *Factory) Addons() []AddonInfo {
	out := make([]AddonInfo, len(addonCatalog))
	copy(out, addonCatalog)
	return out
}

// Create builds the product described by recipe. It fails fast: no product is
// returned if any token is unknown.
func (f *Factory) Create(recipe string) (Product, error) {
	if strings.TrimSpace(recipe) == "" {
		return nil, ErrEmptyRecipe
	}

	tokens := strings.Split(recipe, "+")
	for i := range tokens {
		tokens[i] = strings.ToUpper(strings.TrimSpace(tokens[i]))
	}

	base, ok := baseByCode[tokens[0]]
	if !ok {
		return nil, &UnknownBaseError{Code: tokens[0]}
	}

	p := NewBase(base.ID, base.Name, base.Price)
	for _, tok := range tokens[1:] {
		ctor, ok := addonCtors[tok]
		if !ok {
			return nil, &UnknownAddonError{Code: tok}
		}

		wrapped, err := ctor(p)
		if err != nil {
			return nil, errors.Wrapf(err, "apply addon %q", tok)
		}
		p = wrapped
	}

	return p, nil
}
