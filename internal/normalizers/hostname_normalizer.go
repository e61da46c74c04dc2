package normalizers

import (
	"strings"
)

// Delegation rewrites identities under a delegated naming sub-system (e.g. a testnet
// registrar living under a mainnet name) to that sub-system's own canonical suffix.
type Delegation struct {
	Suffix      string
	Replacement string
}

// Rules configures hostname normalization.
//
// A hostname is in domain only when it ends with one of GatewaySuffixes. The matching
// suffix is replaced with CanonicalSuffix; when the result then ends with a Delegation
// suffix it is rewritten to the delegation's Replacement. Rewriting happens once, so
// every produced identity is a fixed point.
type Rules struct {
	GatewaySuffixes []string
	CanonicalSuffix string
	Delegations     []Delegation
	// PrimaryGateway is the gateway suffix used to link back to a site.
	PrimaryGateway string
}

// DefaultRules returns the ENS gateway rules: *.eth.link and *.eth.limo collapse to
// *.eth, and names delegated under s.raffy.eth are Sepolia testnet names.
func DefaultRules() Rules {
	return Rules{
		GatewaySuffixes: []string{".eth.link", ".eth.limo"},
		CanonicalSuffix: ".eth",
		Delegations: []Delegation{
			{Suffix: ".s.raffy.eth", Replacement: ".sepoliaens.eth"},
		},
		PrimaryGateway: ".eth.link",
	}
}

type HostnameNormalizer interface {
	// Normalize returns the canonical identity for hostname, or ok=false when the
	// hostname is not served through a recognized gateway.
	Normalize(hostname string) (identity string, ok bool)
	// IsTestnet reports whether identity was produced by a delegation rewrite.
	IsTestnet(identity string) bool
	// GatewayURL returns a browsable URL for identity.
	GatewayURL(identity string) string
}

type hostnameNormalizer struct {
	rules Rules
}

func NewHostnameNormalizer(rules Rules) HostnameNormalizer {
	return &hostnameNormalizer{rules: rules}
}

func (n *hostnameNormalizer) Normalize(hostname string) (string, bool) {
	host := strings.ToLower(strings.TrimSpace(hostname))

	for _, gateway := range n.rules.GatewaySuffixes {
		base, found := strings.CutSuffix(host, gateway)
		if !found {
			continue
		}
		if base == "" || strings.HasSuffix(base, ".") {
			return "", false
		}
		return n.canonicalize(base + n.rules.CanonicalSuffix), true
	}

	return "", false
}

// canonicalize applies the first matching delegation. Delegations take priority so that
// a delegated name never collides with a production name sharing its base label.
func (n *hostnameNormalizer) canonicalize(identity string) string {
	for _, delegation := range n.rules.Delegations {
		if base, found := strings.CutSuffix(identity, delegation.Suffix); found && base != "" {
			return base + delegation.Replacement
		}
	}
	return identity
}

func (n *hostnameNormalizer) IsTestnet(identity string) bool {
	for _, delegation := range n.rules.Delegations {
		if strings.HasSuffix(identity, delegation.Replacement) {
			return true
		}
	}
	return false
}

func (n *hostnameNormalizer) GatewayURL(identity string) string {
	name := identity
	if base, found := strings.CutSuffix(identity, n.rules.CanonicalSuffix); found {
		name = base + n.rules.PrimaryGateway
	}
	return "https://" + name
}
