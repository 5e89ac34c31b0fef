package edge

import (
	"context"
	"net/http"
	"strings"
	"time"

	"dmphub/internal/platform/logger"
	pnet "dmphub/internal/platform/net"
	"dmphub/internal/platform/net/http/bind"

	"github.com/google/uuid"
)

// RefreshKind tags the outcome of a refresh attempt
type RefreshKind int

const (
	// RefreshEstablished means the endpoint issued a new session; replay the
	// original URL with the new cookies attached
	RefreshEstablished RefreshKind = iota

	// RefreshDenied means the refresh credential itself is invalid or
	// expired; clear it and send the user to login
	RefreshDenied

	// RefreshIndeterminate covers network errors, timeouts, and unparsable
	// responses. Treated as denied with cookie clearing so a permanently
	// broken refresh path cannot turn into a retry storm
	RefreshIndeterminate
)

// String names the outcome for logs and metrics
func (k RefreshKind) String() string {
	switch k {
	case RefreshEstablished:
		return "established"
	case RefreshDenied:
		return "denied"
	default:
		return "indeterminate"
	}
}

// RefreshOutcome is the tagged result of one refresh attempt. It is a value,
// never an error: every failure mode of the exchange collapses into a kind
type RefreshOutcome struct {
	Kind RefreshKind

	// SetCookies holds raw Set-Cookie values from the endpoint, forwarded
	// verbatim onto the replay redirect when Kind is RefreshEstablished
	SetCookies []string

	// ClearRefreshCookie is set for denied/indeterminate outcomes; clearing
	// is what stops subsequent requests from re-attempting a doomed refresh
	ClearRefreshCookie bool
}

// Refresher exchanges the request's cookie set for a new session
type Refresher interface {
	AttemptRefresh(ctx context.Context, cookieHeader string) RefreshOutcome
}

// refreshReply is the refresh endpoint's success/failure indicator
type refreshReply struct {
	Status string `json:"status" validate:"required,oneof=ok expired invalid"`
}

// HTTPRefresher calls the authentication backend's refresh endpoint
type HTTPRefresher struct {
	url    string
	client *http.Client
}

// NewHTTPRefresher builds a refresher for the given endpoint URL.
// timeout <= 0 defaults to 5s; an unbounded call here would stall every
// gated request behind a dead backend
func NewHTTPRefresher(url string, timeout time.Duration) *HTTPRefresher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPRefresher{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// AttemptRefresh implements Refresher. It never returns an error: denial,
// unreachability, and garbage responses are all tagged outcomes
func (h *HTTPRefresher) AttemptRefresh(ctx context.Context, cookieHeader string) RefreshOutcome {
	log := logger.C(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, nil)
	if err != nil {
		log.Error().Err(err).Str("url", h.url).Msg("refresh request build failed")
		return RefreshOutcome{Kind: RefreshIndeterminate, ClearRefreshCookie: true}
	}
	req.Header.Set("Cookie", cookieHeader)
	reqID := pnet.RequestID(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", reqID)

	resp, err := h.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("refresh endpoint unreachable")
		return RefreshOutcome{Kind: RefreshIndeterminate, ClearRefreshCookie: true}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		log.Info().Int("status", resp.StatusCode).Msg("refresh credential rejected")
		return RefreshOutcome{Kind: RefreshDenied, ClearRefreshCookie: true}

	case resp.StatusCode < 200 || resp.StatusCode > 299:
		log.Warn().Int("status", resp.StatusCode).Msg("unexpected refresh status")
		return RefreshOutcome{Kind: RefreshIndeterminate, ClearRefreshCookie: true}
	}

	reply, err := bind.DecodeJSON[refreshReply](resp.Body)
	if err != nil {
		log.Warn().Err(err).Msg("unparsable refresh response")
		return RefreshOutcome{Kind: RefreshIndeterminate, ClearRefreshCookie: true}
	}
	if !strings.EqualFold(reply.Status, "ok") {
		return RefreshOutcome{Kind: RefreshDenied, ClearRefreshCookie: true}
	}

	cookies := resp.Header.Values("Set-Cookie")
	if len(cookies) == 0 {
		// success indicator without session cookies is a contract violation
		log.Warn().Msg("refresh succeeded without session cookies")
		return RefreshOutcome{Kind: RefreshIndeterminate, ClearRefreshCookie: true}
	}
	return RefreshOutcome{Kind: RefreshEstablished, SetCookies: cookies}
}
