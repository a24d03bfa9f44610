package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/calperm/calperm/internal/logging"
	"github.com/calperm/calperm/internal/permission"
)

const (
	// DefaultEndpoint is the Exchange Online admin API host
	DefaultEndpoint = "https://outlook.office365.com"

	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 60 * time.Second

	// DefaultMaxRetries is the default number of retries for read-only cmdlets
	DefaultMaxRetries = 2

	// DefaultRetryDelay is the default delay between retry attempts
	DefaultRetryDelay = 1 * time.Second

	// DefaultMaxRetryDelay is the maximum delay for exponential backoff
	DefaultMaxRetryDelay = 10 * time.Second

	// maxPages bounds @odata.nextLink paging
	maxPages = 50
)

// Client invokes admin cmdlets over the InvokeCommand REST endpoint.
type Client struct {
	// Endpoint is the API host (e.g., "https://outlook.office365.com")
	Endpoint string

	// Tenant is the tenant domain or ID. Empty means the admin's domain.
	Tenant string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// Tokens supplies the bearer token at Connect
	Tokens TokenSource

	// MaxRetries is the maximum number of retries for read-only cmdlets
	MaxRetries int

	// RetryDelay is the initial delay between retry attempts
	RetryDelay time.Duration

	// MaxRetryDelay is the maximum delay for exponential backoff
	MaxRetryDelay time.Duration

	// UseExponentialBackoff doubles the delay after each retry
	UseExponentialBackoff bool

	admin  string
	tenant string
	token  string
}

// NewClient creates a client for endpoint. An empty endpoint uses DefaultEndpoint.
func NewClient(endpoint, tenant string, tokens TokenSource) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		Endpoint:              strings.TrimRight(endpoint, "/"),
		Tenant:                tenant,
		HTTPClient:            &http.Client{Timeout: DefaultTimeout},
		Tokens:                tokens,
		MaxRetries:            DefaultMaxRetries,
		RetryDelay:            DefaultRetryDelay,
		MaxRetryDelay:         DefaultMaxRetryDelay,
		UseExponentialBackoff: true,
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// SetRetry configures retry behavior
func (c *Client) SetRetry(maxRetries int, retryDelay time.Duration) {
	c.MaxRetries = maxRetries
	c.RetryDelay = retryDelay
}

// Connect obtains a token for admin and verifies it with Get-OrganizationConfig.
func (c *Client) Connect(ctx context.Context, admin string) (*Session, error) {
	if c.Tokens == nil {
		return nil, NewAuthError("no token source configured")
	}
	token, err := c.Tokens.Token(ctx, admin)
	if err != nil {
		return nil, err
	}

	tenant := c.Tenant
	if tenant == "" {
		if at := strings.LastIndex(admin, "@"); at >= 0 {
			tenant = admin[at+1:]
		}
	}
	if tenant == "" {
		return nil, fmt.Errorf("cannot determine tenant for %q: set exchange.tenant or --tenant", admin)
	}

	c.admin, c.tenant, c.token = admin, tenant, token

	records, err := c.InvokeCommand(ctx, "Get-OrganizationConfig", nil)
	if err != nil {
		c.token = ""
		return nil, err
	}

	session := &Session{Admin: admin, Tenant: tenant, ConnectedAt: time.Now()}
	if len(records) > 0 {
		var org struct {
			DisplayName string `json:"DisplayName"`
			Name        string `json:"Name"`
		}
		if err := json.Unmarshal(records[0], &org); err == nil {
			session.Organization = org.DisplayName
			if session.Organization == "" {
				session.Organization = org.Name
			}
		}
	}
	logging.Info("Session connected", zap.String("admin", admin), zap.String("tenant", tenant))
	return session, nil
}

// Disconnect forgets the token. No remote call is made.
func (c *Client) Disconnect(s *Session) error {
	c.token = ""
	if s != nil {
		logging.Info("Session disconnected", zap.String("admin", s.Admin))
	}
	return nil
}

// ResolveMailbox looks up a mailbox by address or identity.
func (c *Client) ResolveMailbox(ctx context.Context, identity string) (*Mailbox, error) {
	records, err := c.InvokeCommand(ctx, "Get-Mailbox", map[string]any{"Identity": identity})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, withCmdlet(NewNotFoundError(fmt.Sprintf("mailbox %s couldn't be found", identity)), "Get-Mailbox")
	}
	var mb Mailbox
	if err := json.Unmarshal(records[0], &mb); err != nil {
		return nil, NewParseError("failed to parse mailbox", err)
	}
	return &mb, nil
}

// ListCalendars returns the calendar folders of mailbox.
func (c *Client) ListCalendars(ctx context.Context, mailbox string) ([]Calendar, error) {
	records, err := c.InvokeCommand(ctx, "Get-MailboxFolderStatistics", map[string]any{
		"Identity":    mailbox,
		"FolderScope": "Calendar",
	})
	if err != nil {
		return nil, err
	}

	calendars := make([]Calendar, 0, len(records))
	for _, raw := range records {
		var f folderStatistics
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, NewParseError("failed to parse folder statistics", err)
		}
		// FolderScope Calendar also returns sub-folders of other types
		// (e.g. Birthdays); keep calendars only.
		if f.FolderType != "" && !strings.Contains(strings.ToLower(f.FolderType), "calendar") && f.FolderType != "User Created" {
			continue
		}
		calendars = append(calendars, f.calendar())
	}
	return calendars, nil
}

// ListPermissions returns the permission entries of a calendar folder.
func (c *Client) ListPermissions(ctx context.Context, calendarPath string) ([]Permission, error) {
	records, err := c.InvokeCommand(ctx, "Get-MailboxFolderPermission", map[string]any{"Identity": calendarPath})
	if err != nil {
		return nil, err
	}

	perms := make([]Permission, 0, len(records))
	for _, raw := range records {
		var f folderPermission
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, NewParseError("failed to parse folder permission", err)
		}
		perms = append(perms, f.permission())
	}
	return perms, nil
}

// GrantPermission adds a permission entry. Mutating cmdlets are never retried.
func (c *Client) GrantPermission(ctx context.Context, change PermissionChange) error {
	_, err := c.InvokeCommand(ctx, "Add-MailboxFolderPermission", change.parameters())
	return err
}

// ModifyPermission changes an existing permission entry.
func (c *Client) ModifyPermission(ctx context.Context, change PermissionChange) error {
	_, err := c.InvokeCommand(ctx, "Set-MailboxFolderPermission", change.parameters())
	return err
}

// RevokePermission removes the entry of user from the folder.
func (c *Client) RevokePermission(ctx context.Context, calendarPath, user string) error {
	_, err := c.InvokeCommand(ctx, "Remove-MailboxFolderPermission", map[string]any{
		"Identity": calendarPath,
		"User":     user,
		"Confirm":  false,
	})
	return err
}

func (p PermissionChange) parameters() map[string]any {
	params := map[string]any{
		"Identity":               p.CalendarPath,
		"User":                   p.User,
		"AccessRights":           p.AccessRight.String(),
		"SendNotificationToUser": p.Notify,
	}
	if p.AccessRight == permission.Editor && p.Sharing != permission.SharingNone {
		params["SharingPermissionFlags"] = p.Sharing.String()
	}
	return params
}

type commandRequest struct {
	CmdletInput cmdletInput `json:"CmdletInput"`
}

type cmdletInput struct {
	CmdletName string         `json:"CmdletName"`
	Parameters map[string]any `json:"Parameters,omitempty"`
}

type commandResponse struct {
	Value    []json.RawMessage `json:"value"`
	NextLink string            `json:"@odata.nextLink"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// InvokeCommand runs one cmdlet and returns its output records. Read-only
// (Get-*) cmdlets are retried on retryable errors.
func (c *Client) InvokeCommand(ctx context.Context, cmdlet string, params map[string]any) ([]json.RawMessage, error) {
	if c.token == "" {
		return nil, ErrNotConnected
	}
	identity, _ := params["Identity"].(string)
	start := time.Now()

	retries := 0
	if strings.HasPrefix(cmdlet, "Get-") {
		retries = c.MaxRetries
	}

	var records []json.RawMessage
	var lastErr error
	currentDelay := c.RetryDelay

	// Retry loop with exponential backoff
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, currentDelay); err != nil {
				lastErr = err
				break
			}
			if c.UseExponentialBackoff {
				currentDelay *= 2
				if currentDelay > c.MaxRetryDelay {
					currentDelay = c.MaxRetryDelay
				}
			}
		}

		records, lastErr = c.invokeAllPages(ctx, cmdlet, params)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		logging.Debug("Retrying remote call", zap.String("cmdlet", cmdlet), zap.Int("attempt", attempt+1))
	}

	if apiErr, ok := asAPIError(lastErr); ok && apiErr.Cmdlet == "" {
		apiErr.Cmdlet = cmdlet
	}
	logging.LogRemoteCall(cmdlet, identity, time.Since(start), lastErr)
	if lastErr != nil {
		return nil, lastErr
	}
	return records, nil
}

func (c *Client) invokeAllPages(ctx context.Context, cmdlet string, params map[string]any) ([]json.RawMessage, error) {
	body, err := json.Marshal(commandRequest{CmdletInput: cmdletInput{CmdletName: cmdlet, Parameters: params}})
	if err != nil {
		return nil, NewParseError("failed to encode request", err)
	}

	url := c.commandURL()
	var all []json.RawMessage
	for page := 0; url != "" && page < maxPages; page++ {
		resp, err := c.invokeOnce(ctx, url, body)
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Value...)
		url = resp.NextLink
	}
	return all, nil
}

func (c *Client) invokeOnce(ctx context.Context, url string, body []byte) (*commandResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, NewNetworkError("failed to create request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-AnchorMailbox", "UPN:"+c.admin)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, NewNetworkError("request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkError("failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var er errorResponse
		_ = json.Unmarshal(data, &er)
		message := er.Error.Message
		if message == "" {
			message = fmt.Sprintf("unexpected status code: %d", resp.StatusCode)
		}
		return nil, classifyServiceError(resp.StatusCode, er.Error.Code, message)
	}

	var out commandResponse
	if len(bytes.TrimSpace(data)) == 0 {
		return &out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, NewParseError("failed to parse JSON response", err)
	}
	return &out, nil
}

func (c *Client) commandURL() string {
	return fmt.Sprintf("%s/adminapi/beta/%s/InvokeCommand", c.Endpoint, c.tenant)
}

func withCmdlet(e *APIError, cmdlet string) *APIError {
	e.Cmdlet = cmdlet
	return e
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
