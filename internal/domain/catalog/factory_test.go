package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/cafepos/internal/domain/money"
)

func TestFactory_CreateBases(t *testing.T) {
	tests := []struct {
		recipe    string
		wantName  string
		wantPrice string
	}{
		{recipe: "ESP", wantName: "Espresso", wantPrice: "2.50"},
		{recipe: "LAT", wantName: "Latte", wantPrice: "3.20"},
		{recipe: "CAP", wantName: "Cappuccino", wantPrice: "3.00"},
	}

	f := NewFactory()
	for _, tt := range tests {
		t.Run(tt.recipe, func(t *testing.T) {
			p, err := f.Create(tt.recipe)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
			assert.Equal(t, tt.wantPrice, p.Price().String())
		})
	}
}

func TestFactory_CreateDecorated(t *testing.T) {
	f := NewFactory()

	p, err := f.Create("ESP+SHOT+OAT+L")
	require.NoError(t, err)
	assert.Equal(t, "Espresso + Extra Shot + Oat Milk (Large)", p.Name())
	assert.Equal(t, "4.50", p.Price().String())

	large, err := f.Create("LAT+L")
	require.NoError(t, err)
	assert.Equal(t, "Latte (Large)", large.Name())
	assert.Equal(t, "3.90", large.Price().String())
}

func TestFactory_MatchesManualNesting(t *testing.T) {
	f := NewFactory()

	viaFactory, err := f.Create("ESP+SHOT+OAT+L")
	require.NoError(t, err)

	manual := NewBase("P-ESP", "Espresso", money.MustParse("2.50"))
	for _, ctor := range []func(Product) (Product, error){NewExtraShot, NewOatMilk, NewSizeLarge} {
		manual, err = ctor(manual)
		require.NoError(t, err)
	}

	assert.Equal(t, manual.Name(), viaFactory.Name())
	assert.True(t, manual.Price().Equal(viaFactory.Price()))
}

func TestFactory_CaseAndWhitespaceInsensitive(t *testing.T) {
	f := NewFactory()

	canonical, err := f.Create("ESP+SHOT+OAT")
	require.NoError(t, err)

	for _, recipe := range []string{"esp+shot+oat", "ESP + SHOT + OAT", "  esp +Shot+ oat "} {
		p, err := f.Create(recipe)
		require.NoError(t, err, "recipe %q", recipe)
		assert.Equal(t, canonical.Name(), p.Name())
		assert.True(t, canonical.Price().Equal(p.Price()))
	}
}

func TestFactory_Errors(t *testing.T) {
	f := NewFactory()

	_, err := f.Create("")
	require.ErrorIs(t, err, ErrEmptyRecipe)

	_, err = f.Create("   ")
	require.ErrorIs(t, err, ErrEmptyRecipe)

	_, err = f.Create("UNKNOWN")
	var baseErr *UnknownBaseError
	require.ErrorAs(t, err, &baseErr)
	assert.Equal(t, "UNKNOWN", baseErr.Code)

	_, err = f.Create("ESP+UNKNOWN")
	var addonErr *UnknownAddonError
	require.ErrorAs(t, err, &addonErr)
	assert.Equal(t, "UNKNOWN", addonErr.Code)
}

func TestFactory_Listings(t *testing.T) {
	f := NewFactory()

	bases := f.Bases()
	require.Len(t, bases, 3)
	assert.Equal(t, "ESP", bases[0].Code)

	addons := f.Addons()
	require.Len(t, addons, 4)
	assert.Equal(t, "SHOT", addons[0].Code)
	assert.Equal(t, "0.80", addons[0].Delta.String())
}
