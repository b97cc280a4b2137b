package vault

import (
	"testing"

	"github.com/lockstead/timevault"
	"github.com/lockstead/timevault/coin"
	"github.com/lockstead/timevault/errors"
	"github.com/lockstead/timevault/tvtest"
)

func TestMsgValidate(t *testing.T) {
	alice := tvtest.SeqAddr(1)

	cases := map[string]struct {
		msg     timevault.Msg
		path    string
		wantErr *errors.Error
	}{
		"valid admit": {
			msg:  &AdmitMsg{Address: alice},
			path: "vault/admit",
		},
		"admit without address": {
			msg:     &AdmitMsg{},
			wantErr: errors.ErrInput,
		},
		"admit with truncated address": {
			msg:     &AdmitMsg{Address: []byte{1, 2, 3}},
			wantErr: errors.ErrInput,
		},
		"valid deposit": {
			msg:  &DepositMsg{Source: alice, Amount: tvlt(5)},
			path: "vault/deposit",
		},
		"deposit of nothing": {
			msg:     &DepositMsg{Source: alice, Amount: coin.NewCoin(0, 0, "TVLT")},
			wantErr: errors.ErrAmount,
		},
		"deposit without currency": {
			msg:     &DepositMsg{Source: alice, Amount: coin.NewCoin(5, 0, "")},
			wantErr: errors.ErrCurrency,
		},
		"valid withdrawal": {
			msg:  &WithdrawMsg{Source: alice, Amount: tvlt(5)},
			path: "vault/withdraw",
		},
		"negative withdrawal": {
			msg:     &WithdrawMsg{Source: alice, Amount: coin.NewCoin(-5, 0, "TVLT")},
			wantErr: errors.ErrAmount,
		},
		"valid extension": {
			msg:  &ExtendLockMsg{Source: alice, AdditionalDays: 14},
			path: "vault/extend_lock",
		},
		"zero extension": {
			msg:     &ExtendLockMsg{Source: alice},
			wantErr: errors.ErrInput,
		},
		"negative extension": {
			msg:     &ExtendLockMsg{Source: alice, AdditionalDays: -1},
			wantErr: errors.ErrInput,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %+v", err)
				}
				if got := tc.msg.Path(); got != tc.path {
					t.Fatalf("unexpected path: %q", got)
				}
			} else if !tc.wantErr.Is(err) {
				t.Fatalf("want %q, got %+v", tc.wantErr, err)
			}
		})
	}
}
