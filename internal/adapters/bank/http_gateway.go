package bank

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/SscSPs/club_ledger_app/internal/apperrors"
	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	"github.com/SscSPs/club_ledger_app/internal/core/ports/gateways"
)

const apiDateFormat = "2006-01-02"

// HTTPConfig describes a bank open-API endpoint secured with OAuth2 client credentials.
type HTTPConfig struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// HTTPGateway talks JSON to a bank open API.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

var _ gateways.BankGateway = (*HTTPGateway)(nil)

// NewHTTPGateway creates a gateway whose requests carry a client-credentials bearer token.
// The token is fetched lazily and refreshed by the oauth2 transport.
func NewHTTPGateway(ctx context.Context, cfg HTTPConfig) *HTTPGateway {
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}
	client := cc.Client(ctx)
	if cfg.Timeout > 0 {
		client.Timeout = cfg.Timeout
	}
	return &HTTPGateway{baseURL: strings.TrimRight(cfg.BaseURL, "/"), client: client}
}

type transactionsResponse struct {
	Transactions []domain.RawTransaction `json:"transactions"`
}

type createAccountBody struct {
	ClubID     string `json:"clubID"`
	HolderName string `json:"holderName"`
}

type accountResponse struct {
	AccountNumber string `json:"accountNumber"`
	HolderName    string `json:"holderName"`
}

type transferBody struct {
	FromAccountNumber string          `json:"fromAccountNumber"`
	ToAccountNumber   string          `json:"toAccountNumber"`
	ToBankCode        string          `json:"toBankCode"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
}

type transferResponse struct {
	TransactionID string          `json:"transactionID"`
	OccurredAt    time.Time       `json:"occurredAt"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	Description   string          `json:"description"`
}

// GetTransactions lists the account history between from and to, both dates inclusive.
func (g *HTTPGateway) GetTransactions(ctx context.Context, accountNumber string, from, to time.Time) ([]domain.RawTransaction, error) {
	q := url.Values{}
	q.Set("from", from.Format(apiDateFormat))
	q.Set("to", to.Format(apiDateFormat))
	path := "/accounts/" + url.PathEscape(accountNumber) + "/transactions?" + q.Encode()

	var resp transactionsResponse
	if _, err := g.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}

func (g *HTTPGateway) CreateAccount(ctx context.Context, req gateways.CreateAccountRequest) (*gateways.AccountResult, error) {
	var resp accountResponse
	if _, err := g.do(ctx, http.MethodPost, "/accounts", createAccountBody{ClubID: req.ClubID, HolderName: req.HolderName}, &resp); err != nil {
		return nil, err
	}
	return &gateways.AccountResult{AccountNumber: resp.AccountNumber, HolderName: resp.HolderName}, nil
}

func (g *HTTPGateway) Refund(ctx context.Context, req gateways.RefundRequest) (*gateways.RefundResult, error) {
	body := transferBody{
		FromAccountNumber: req.FromAccountNumber,
		ToAccountNumber:   req.ToAccountNumber,
		ToBankCode:        req.ToBankCode,
		Amount:            req.Amount,
		Description:       req.Description,
	}
	var resp transferResponse
	if _, err := g.do(ctx, http.MethodPost, "/transfers", body, &resp); err != nil {
		return nil, err
	}
	return &gateways.RefundResult{
		OccurredAt:   resp.OccurredAt,
		BalanceAfter: resp.BalanceAfter,
		Description:  resp.Description,
		UniqueKey:    resp.TransactionID,
	}, nil
}

// InquireAccountOwner returns nil when the provider does not know the account.
func (g *HTTPGateway) InquireAccountOwner(ctx context.Context, accountNumber string) (*gateways.OwnerResult, error) {
	var resp accountResponse
	status, err := g.do(ctx, http.MethodGet, "/accounts/"+url.PathEscape(accountNumber)+"/owner", nil, &resp)
	if status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &gateways.OwnerResult{AccountNumber: resp.AccountNumber, HolderName: resp.HolderName}, nil
}

// do sends one JSON request and decodes a 2xx body into out. Provider failures come back as
// AppError 502 so callers can tell them apart from local faults.
func (g *HTTPGateway) do(ctx context.Context, method, path string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("failed to encode bank request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("failed to build bank request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, apperrors.NewAppError(http.StatusBadGateway, "bank provider unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return resp.StatusCode, apperrors.NewAppError(http.StatusBadGateway,
			fmt.Sprintf("bank provider returned %d for %s %s", resp.StatusCode, method, path),
			errors.New(strings.TrimSpace(string(msg))))
	}
	if out == nil {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, apperrors.NewAppError(http.StatusBadGateway, "failed to decode bank response", err)
	}
	return resp.StatusCode, nil
}
