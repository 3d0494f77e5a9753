package bank

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/club_ledger_app/internal/apperrors"
	"github.com/SscSPs/club_ledger_app/internal/core/ports/gateways"
)

func newBankServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-1","token_type":"bearer","expires_in":3600}`))
	})
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer tok-1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			h(w, r)
		}
	}
	mux.HandleFunc("/accounts/110-123/transactions", authed(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2026-03-01", r.URL.Query().Get("from"))
		assert.Equal(t, "2026-03-15", r.URL.Query().Get("to"))
		_, _ = w.Write([]byte(`{"transactions":[
			{"occurredAt":"2026-03-02T10:15:00Z","amount":"20000","balanceAfter":"120000","description":"KIM MINSU"},
			{"occurredAt":"2026-03-03T08:00:00Z","amount":-5000,"balanceAfter":"115000","description":"COURT","uniqueKey":"tx-9"}
		]}`))
	}))
	mux.HandleFunc("/accounts/110-123/owner", authed(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"accountNumber":"110-123","holderName":"Tennis Club"}`))
	}))
	mux.HandleFunc("/accounts/999/owner", authed(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	mux.HandleFunc("/transfers", authed(func(w http.ResponseWriter, r *http.Request) {
		var body transferBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Amount.GreaterThan(decimal.NewFromInt(100000)) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte("insufficient funds"))
			return
		}
		_, _ = w.Write([]byte(`{"transactionID":"tr-77","occurredAt":"2026-03-18T09:00:00Z","balanceAfter":"107500","description":"REFUND LEE"}`))
	}))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestHTTPGateway(srv *httptest.Server) *HTTPGateway {
	return NewHTTPGateway(context.Background(), HTTPConfig{
		BaseURL:      srv.URL + "/",
		TokenURL:     srv.URL + "/oauth/token",
		ClientID:     "club-ledger",
		ClientSecret: "secret",
		Timeout:      5 * time.Second,
	})
}

func TestHTTPGateway_GetTransactions(t *testing.T) {
	g := newTestHTTPGateway(newBankServer(t))
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	txs, err := g.GetTransactions(context.Background(), "110-123", from, to)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.True(t, txs[0].Amount.Equal(decimal.NewFromInt(20000)))
	assert.Equal(t, "KIM MINSU", txs[0].Description)
	assert.Empty(t, txs[0].UniqueKey)
	assert.True(t, txs[1].Amount.Equal(decimal.NewFromInt(-5000)))
	assert.Equal(t, "tx-9", txs[1].UniqueKey)
}

func TestHTTPGateway_InquireAccountOwner(t *testing.T) {
	g := newTestHTTPGateway(newBankServer(t))

	owner, err := g.InquireAccountOwner(context.Background(), "110-123")
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, "Tennis Club", owner.HolderName)

	unknown, err := g.InquireAccountOwner(context.Background(), "999")
	require.NoError(t, err)
	assert.Nil(t, unknown)
}

func TestHTTPGateway_Refund(t *testing.T) {
	g := newTestHTTPGateway(newBankServer(t))

	res, err := g.Refund(context.Background(), gateways.RefundRequest{
		FromAccountNumber: "110-123",
		ToAccountNumber:   "220-555",
		ToBankCode:        "004",
		Amount:            decimal.NewFromInt(7500),
		Description:       "REFUND LEE",
	})
	require.NoError(t, err)
	assert.Equal(t, "tr-77", res.UniqueKey)
	assert.True(t, res.BalanceAfter.Equal(decimal.NewFromInt(107500)))
}

func TestHTTPGateway_ProviderErrorIsBadGateway(t *testing.T) {
	g := newTestHTTPGateway(newBankServer(t))

	_, err := g.Refund(context.Background(), gateways.RefundRequest{Amount: decimal.NewFromInt(500000)})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadGateway, appErr.Code)
	assert.Contains(t, err.Error(), "insufficient funds")
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	g := NewStatementGateway(t.TempDir(), nil)
	r.Register("088", g)

	got, ok := r.Gateway(" 088 ")
	assert.True(t, ok)
	assert.Same(t, g, got)

	_, ok = r.Gateway("004")
	assert.False(t, ok)
	assert.Panics(t, func() { r.Register("088", g) })
	assert.Equal(t, []string{"088"}, r.Codes())
}
