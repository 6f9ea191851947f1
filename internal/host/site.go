package host

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// The host renders the logged-in user's info in page chrome rather
// than exposing an API, so both reads scrape the index page markup.
var (
	// creditAnchorPattern finds the credits link, e.g.
	// <a href="/mycredits.php">12,345.67 cr.</a>
	creditAnchorPattern = regexp.MustCompile(`<a[^>]*href="[^"]*mycredits\.php[^"]*"[^>]*>([^<]+)</a>`)
	// creditAmountPattern extracts the amount out of the link text.
	creditAmountPattern = regexp.MustCompile(`(?i)(\d[\d,]*\.?\d*)\s*cr\.`)
	// usernamePattern matches the bolded username link in the user bar.
	usernamePattern = regexp.MustCompile(`<a[^>]*style="[^"]*font-weight:\s*bold;?[^"]*"[^>]*>([^<]+)</a>`)
	// avatarPattern matches the user bar avatar, when present.
	avatarPattern = regexp.MustCompile(`<img[^>]*class="[^"]*avatar[^"]*"[^>]*src="([^"]+)"`)
)

// SiteAdapter reads the starting balance and player identity off the
// host site's index page.
type SiteAdapter struct {
	client  *http.Client
	baseURL string
	logger  *log.Logger
}

// NewSiteAdapter creates an adapter for the host at baseURL.
func NewSiteAdapter(logger *log.Logger, baseURL string) *SiteAdapter {
	return &SiteAdapter{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.WithPrefix("host"),
	}
}

// ReadBalance implements BalanceSource by scraping the credits link.
func (a *SiteAdapter) ReadBalance(ctx context.Context) (float64, error) {
	page, err := a.fetchIndex(ctx)
	if err != nil {
		return 0, err
	}

	anchor := creditAnchorPattern.FindStringSubmatch(page)
	if anchor == nil {
		return 0, fmt.Errorf("no credits link found in host page")
	}
	amount := creditAmountPattern.FindStringSubmatch(anchor[1])
	if amount == nil {
		return 0, fmt.Errorf("credit amount not found in %q", anchor[1])
	}

	balance, err := strconv.ParseFloat(strings.ReplaceAll(amount[1], ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("parse credit amount %q: %w", amount[1], err)
	}
	a.logger.Debug("Read balance from host page", "balance", balance)
	return balance, nil
}

// ReadIdentity implements IdentitySource by scraping the username and
// avatar out of the user bar.
func (a *SiteAdapter) ReadIdentity(ctx context.Context) (Identity, error) {
	page, err := a.fetchIndex(ctx)
	if err != nil {
		return Identity{}, err
	}

	name := usernamePattern.FindStringSubmatch(page)
	if name == nil {
		return Identity{}, fmt.Errorf("no username found in host page")
	}
	identity := Identity{Name: strings.TrimSpace(name[1])}
	if avatar := avatarPattern.FindStringSubmatch(page); avatar != nil {
		identity.AvatarRef = avatar[1]
	}
	return identity, nil
}

func (a *SiteAdapter) fetchIndex(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/index.php", nil)
	if err != nil {
		return "", fmt.Errorf("build host request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch host page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("host page returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read host page: %w", err)
	}
	return string(body), nil
}
