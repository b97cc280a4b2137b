package coin

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockstead/timevault/errors"
)

func TestCoinAdd(t *testing.T) {
	cases := map[string]struct {
		a, b    Coin
		want    Coin
		wantErr *errors.Error
	}{
		"plain addition": {
			a:    NewCoin(1, 2, "TVLT"),
			b:    NewCoin(3, 4, "TVLT"),
			want: NewCoin(4, 6, "TVLT"),
		},
		"fractional carry": {
			a:    NewCoin(1, FracUnit-1, "TVLT"),
			b:    NewCoin(0, 2, "TVLT"),
			want: NewCoin(2, 1, "TVLT"),
		},
		"zero coin with no ticker is neutral": {
			a:    NewCoin(0, 0, ""),
			b:    NewCoin(7, 0, "TVLT"),
			want: NewCoin(7, 0, "TVLT"),
		},
		"currency mismatch": {
			a:       NewCoin(1, 0, "TVLT"),
			b:       NewCoin(1, 0, "USDX"),
			wantErr: errors.ErrCurrency,
		},
		"overflow": {
			a:       NewCoin(MaxInt, 0, "TVLT"),
			b:       NewCoin(1, 0, "TVLT"),
			wantErr: errors.ErrOverflow,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := tc.a.Add(tc.b)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err))
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Equals(got), "got %s", got)
		})
	}
}

func TestCoinSubtract(t *testing.T) {
	a := NewCoin(5, 0, "TVLT")
	b := NewCoin(2, 1, "TVLT")

	got, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, NewCoin(2, FracUnit-1, "TVLT").Equals(got), "got %s", got)

	// going below zero is fine here, business logic decides
	neg, err := b.Subtract(a)
	require.NoError(t, err)
	assert.True(t, neg.Compare(Coin{}) < 0)

	sum, err := neg.Add(neg.Negative())
	require.NoError(t, err)
	assert.True(t, sum.IsZero())
}

func TestCoinCompare(t *testing.T) {
	a := NewCoin(5, 0, "TVLT")
	b := NewCoin(5, 1, "TVLT")

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))

	assert.True(t, b.IsGTE(a))
	assert.True(t, a.IsGTE(a))
	assert.False(t, a.IsGTE(b))
	// different currencies never compare as greater-or-equal
	assert.False(t, a.IsGTE(NewCoin(1, 0, "USDX")))
}

func TestCoinPredicates(t *testing.T) {
	assert.True(t, NewCoin(0, 0, "TVLT").IsZero())
	assert.True(t, NewCoin(0, 1, "TVLT").IsPositive())
	assert.False(t, NewCoin(0, -1, "TVLT").IsPositive())
	assert.True(t, NewCoin(0, 0, "TVLT").IsNonNegative())
	assert.False(t, NewCoin(-1, 0, "TVLT").IsNonNegative())
	assert.True(t, IsEmpty(nil))
	assert.True(t, IsEmpty(&Coin{Ticker: "TVLT"}))
}

func TestCoinValidate(t *testing.T) {
	cases := map[string]struct {
		coin    Coin
		wantErr *errors.Error
	}{
		"valid coin":        {coin: NewCoin(42, 0, "TVLT")},
		"valid negative":    {coin: NewCoin(-42, -1, "TVLT")},
		"bad ticker":        {coin: NewCoin(1, 0, "this-is-wrong"), wantErr: errors.ErrCurrency},
		"missing ticker":    {coin: NewCoin(1, 0, ""), wantErr: errors.ErrCurrency},
		"whole overflow":    {coin: NewCoin(MaxInt+1, 0, "TVLT"), wantErr: errors.ErrOverflow},
		"frac out of range": {coin: NewCoin(1, FracUnit, "TVLT"), wantErr: errors.ErrOverflow},
		"mismatched signs":  {coin: NewCoin(1, -1, "TVLT"), wantErr: errors.ErrState},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.coin.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
			}
		})
	}
}

func TestCoinString(t *testing.T) {
	assert.Equal(t, "7 TVLT", NewCoin(7, 0, "TVLT").String())
	assert.Equal(t, "7.0005 TVLT", NewCoin(7, 500000, "TVLT").String())
	assert.Equal(t, "-1.5 TVLT", NewCoin(-1, -FracUnit/2, "TVLT").String())
}

func TestParseHumanFormat(t *testing.T) {
	c, err := ParseHumanFormat("7.0005 TVLT")
	require.NoError(t, err)
	assert.True(t, NewCoin(7, 500000, "TVLT").Equals(c), "got %#v", c)

	c, err = ParseHumanFormat("-2 TVLT")
	require.NoError(t, err)
	assert.True(t, NewCoin(-2, 0, "TVLT").Equals(c))

	_, err = ParseHumanFormat("TVLT 5")
	assert.Error(t, err)
}

func TestCoinUnmarshalJSON(t *testing.T) {
	var c Coin
	require.NoError(t, json.Unmarshal([]byte(`"1.5 TVLT"`), &c))
	assert.True(t, NewCoin(1, FracUnit/2, "TVLT").Equals(c))

	var d Coin
	require.NoError(t, json.Unmarshal([]byte(`{"whole": 3, "ticker": "TVLT"}`), &d))
	assert.True(t, NewCoin(3, 0, "TVLT").Equals(d))
}
