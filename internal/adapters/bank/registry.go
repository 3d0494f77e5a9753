// Package bank holds the bank provider gateways and the registry that picks one per bank code.
package bank

import (
	"strings"

	"github.com/SscSPs/club_ledger_app/internal/core/ports/gateways"
)

// Registry maps bank codes to gateways.
type Registry struct {
	gateways map[string]gateways.BankGateway
}

var _ gateways.GatewayResolver = (*Registry)(nil)

// NewRegistry creates an empty gateway registry.
func NewRegistry() *Registry {
	return &Registry{gateways: make(map[string]gateways.BankGateway)}
}

// Register adds a gateway for bankCode. Panics on a duplicate code.
func (r *Registry) Register(bankCode string, g gateways.BankGateway) {
	key := strings.TrimSpace(bankCode)
	if _, ok := r.gateways[key]; ok {
		panic("duplicate bank code: " + key)
	}
	r.gateways[key] = g
}

// Gateway returns the gateway serving bankCode.
func (r *Registry) Gateway(bankCode string) (gateways.BankGateway, bool) {
	g, ok := r.gateways[strings.TrimSpace(bankCode)]
	return g, ok
}

// Codes lists the registered bank codes.
func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.gateways))
	for code := range r.gateways {
		codes = append(codes, code)
	}
	return codes
}
