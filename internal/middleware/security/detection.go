package security

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync/atomic"

	applog "myspace/internal/log"
)

// DetectionMetrics tracks security detection events
type DetectionMetrics struct {
	SuspiciousRequests int64
	BlockedRequests    int64
	InvalidIPAttempts  int64
}

// Finding describes why a request looked suspicious
type Finding struct {
	Rule   string
	Detail string
	Block  bool
}

var (
	probePatterns = []string{
		"../", "..\\", ".env", ".git", ".ssh", "wp-admin", "wp-login",
		"phpmyadmin", ".php", "etc/passwd", "cmd.exe",
		"<script", "javascript:", "union select", "eval(",
	}
	scannerAgents = []string{
		"sqlmap", "nmap", "nikto", "gobuster", "dirb", "masscan", "zgrab",
	}
	blockedMethods = map[string]bool{
		"TRACE": true, "TRACK": true, "DEBUG": true, "CONNECT": true,
	}
)

const maxURLLength = 2048

// Detector handles suspicious request detection
type Detector struct {
	metrics        *DetectionMetrics
	trustedProxies []*net.IPNet
	logger         *applog.Logger
}

// NewDetector creates a detector trusting loopback and private networks as
// reverse proxies
func NewDetector(logger *applog.Logger) *Detector {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Detector{
		metrics: &DetectionMetrics{},
		trustedProxies: []*net.IPNet{
			mustCIDR("127.0.0.0/8"),
			mustCIDR("::1/128"),
			mustCIDR("10.0.0.0/8"),
			mustCIDR("172.16.0.0/12"),
			mustCIDR("192.168.0.0/16"),
		},
		logger: logger.WithComponent(applog.ComponentSecurity),
	}
}

func mustCIDR(cidr string) *net.IPNet {
	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		panic(fmt.Sprintf("failed to parse trusted proxy CIDR %s: %v", cidr, err))
	}
	return network
}

// Inspect returns the findings for r, empty when nothing looks wrong
func (d *Detector) Inspect(r *http.Request) []Finding {
	var out []Finding

	if blockedMethods[r.Method] {
		out = append(out, Finding{Rule: "method", Detail: r.Method, Block: true})
	}

	target := strings.ToLower(r.URL.Path + "?" + r.URL.RawQuery)
	for _, p := range probePatterns {
		if strings.Contains(target, p) {
			out = append(out, Finding{Rule: "probe", Detail: p})
			break
		}
	}

	ua := strings.ToLower(r.Header.Get("User-Agent"))
	for _, a := range scannerAgents {
		if strings.Contains(ua, a) {
			out = append(out, Finding{Rule: "scanner", Detail: a})
			break
		}
	}

	if len(r.URL.String()) > maxURLLength {
		out = append(out, Finding{Rule: "url_length", Detail: fmt.Sprint(len(r.URL.String())), Block: true})
	}

	if xff := r.Header.Get("X-Forwarded-For"); strings.Count(xff, ",") > 5 {
		out = append(out, Finding{Rule: "proxy_hops", Detail: xff})
	}

	return out
}

// Middleware logs suspicious requests and rejects those with blocking
// findings. Everything else passes through; the dashboard is read-only.
func (d *Detector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		findings := d.Inspect(r)
		if len(findings) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		atomic.AddInt64(&d.metrics.SuspiciousRequests, 1)
		block := false
		rules := make([]string, 0, len(findings))
		for _, f := range findings {
			rules = append(rules, f.Rule+"="+f.Detail)
			block = block || f.Block
		}
		d.logger.WarnContext(r.Context(), "Suspicious request",
			applog.FieldClientIP, d.ExtractClientIP(r),
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			"rules", strings.Join(rules, ","),
			"blocked", block)

		if block {
			atomic.AddInt64(&d.metrics.BlockedRequests, 1)
			status := http.StatusBadRequest
			if blockedMethods[r.Method] {
				status = http.StatusMethodNotAllowed
			}
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ExtractClientIP returns the client address, honouring X-Forwarded-For and
// X-Real-IP only when the direct peer is a trusted proxy
func (d *Detector) ExtractClientIP(r *http.Request) string {
	directIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		directIP = r.RemoteAddr
	}

	parsed := net.ParseIP(directIP)
	if parsed == nil || !d.isTrustedProxy(parsed) {
		return directIP
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(first) != nil {
			return first
		}
		atomic.AddInt64(&d.metrics.InvalidIPAttempts, 1)
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		if net.ParseIP(xri) != nil {
			return xri
		}
		atomic.AddInt64(&d.metrics.InvalidIPAttempts, 1)
	}

	return directIP
}

func (d *Detector) isTrustedProxy(ip net.IP) bool {
	for _, network := range d.trustedProxies {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// GetMetrics returns current security metrics
func (d *Detector) GetMetrics() DetectionMetrics {
	return DetectionMetrics{
		SuspiciousRequests: atomic.LoadInt64(&d.metrics.SuspiciousRequests),
		BlockedRequests:    atomic.LoadInt64(&d.metrics.BlockedRequests),
		InvalidIPAttempts:  atomic.LoadInt64(&d.metrics.InvalidIPAttempts),
	}
}

// AddTrustedProxy adds a trusted proxy network
func (d *Detector) AddTrustedProxy(cidr string) error {
	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		return fmt.Errorf("invalid CIDR %s: %w", cidr, err)
	}
	d.trustedProxies = append(d.trustedProxies, network)
	return nil
}
