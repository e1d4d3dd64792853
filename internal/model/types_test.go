package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoin(t *testing.T) {
	cases := map[string]Coin{
		"QUARTER": Quarter,
		"dime":    Dime,
		"Nickle":  Nickle,
		"nickel":  Nickle,
		" penny ": Penny,
	}
	for in, want := range cases {
		got, err := ParseCoin(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseCoin("DOLLAR")
	assert.ErrorIs(t, err, ErrUnknownCoin)
}

func TestParseItem(t *testing.T) {
	got, err := ParseItem("coke")
	require.NoError(t, err)
	assert.Equal(t, Coke, got)

	_, err = ParseItem("WATER")
	assert.ErrorIs(t, err, ErrUnknownItem)
	_, err = ParseItem("")
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestCoinValues(t *testing.T) {
	assert.Equal(t, int64(25), Quarter.Value())
	assert.Equal(t, int64(10), Dime.Value())
	assert.Equal(t, int64(5), Nickle.Value())
	assert.Equal(t, int64(1), Penny.Value())
	assert.False(t, Coin(3).Valid())
	assert.Equal(t, "Coin(3)", Coin(3).String())
}

func TestBucketJSON(t *testing.T) {
	b := Bucket{Item: Coke, Coins: []Coin{Dime, Nickle, Penny}}
	out, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{"item":"COKE","coins":["DIME","NICKLE","PENNY"]}`, string(out))

	var back Bucket
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, b, back)

	_, err = json.Marshal([]Coin{Coin(7)})
	assert.Error(t, err)
}
