package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/cafepos/internal/domain/money"
)

func espresso() Product {
	return NewBase("P-ESP", "Espresso", money.MustParse("2.50"))
}

func TestDecorator_SingleAddon(t *testing.T) {
	tests := []struct {
		name      string
		ctor      func(Product) (Product, error)
		wantName  string
		wantPrice string
	}{
		{name: "extra shot", ctor: NewExtraShot, wantName: "Espresso + Extra Shot", wantPrice: "3.30"},
		{name: "oat milk", ctor: NewOatMilk, wantName: "Espresso + Oat Milk", wantPrice: "3.00"},
		{name: "syrup", ctor: NewSyrup, wantName: "Espresso + Syrup", wantPrice: "2.90"},
		{name: "size large", ctor: NewSizeLarge, wantName: "Espresso (Large)", wantPrice: "3.20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.ctor(espresso())
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
			assert.Equal(t, tt.wantPrice, p.Price().String())
		})
	}
}

func TestDecorator_Stacks(t *testing.T) {
	withShot, err := NewExtraShot(espresso())
	require.NoError(t, err)
	withOat, err := NewOatMilk(withShot)
	require.NoError(t, err)
	large, err := NewSizeLarge(withOat)
	require.NoError(t, err)

	assert.Equal(t, "Espresso + Extra Shot + Oat Milk (Large)", large.Name())
	assert.Equal(t, "4.50", large.Price().String())
}

func TestDecorator_PriceCommutesNameDoesNot(t *testing.T) {
	build := func(ctors ...func(Product) (Product, error)) Product {
		p := espresso()
		for _, ctor := range ctors {
			var err error
			p, err = ctor(p)
			require.NoError(t, err)
		}
		return p
	}

	a := build(NewExtraShot, NewOatMilk, NewSizeLarge)
	b := build(NewOatMilk, NewSizeLarge, NewExtraShot)

	assert.True(t, a.Price().Equal(b.Price()))
	assert.NotEqual(t, a.Name(), b.Name())
}

func TestDecorator_PreservesBaseIdentity(t *testing.T) {
	p, err := NewExtraShot(espresso())
	require.NoError(t, err)
	p, err = NewOatMilk(p)
	require.NoError(t, err)
	p, err = NewSizeLarge(p)
	require.NoError(t, err)

	assert.Equal(t, "P-ESP", p.ID())
	assert.Equal(t, "2.50", p.BasePrice().String())
}

func TestDecorator_NilInner(t *testing.T) {
	for _, ctor := range []func(Product) (Product, error){
		NewExtraShot, NewOatMilk, NewSyrup, NewSizeLarge,
	} {
		_, err := ctor(nil)
		require.ErrorIs(t, err, ErrNilProduct)
	}
}
