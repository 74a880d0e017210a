package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/dberzins/stockroom/internal/client/models"
	"github.com/dberzins/stockroom/internal/client/session"
	"github.com/dberzins/stockroom/internal/common"
	"github.com/dberzins/stockroom/internal/logging"
	"github.com/google/uuid"
)

const (
	itemsPath       = "/rest/v1/items"
	quantityRPCPath = "/rest/v1/rpc/update_item_quantity"
	signupPath      = "/auth/v1/signup"
	tokenPath       = "/auth/v1/token"

	requestIDHeader = "X-Request-Id"
)

// RESTClient talks to the backend's REST surface: PostgREST-style filtered
// reads/writes on the items table, an RPC endpoint for quantity deltas, and
// the auth endpoints for credential/token exchange.
//
// The access token is read from the session store at send time, and a request
// rejected with 401 is retried exactly once after a transparent token
// refresh. Beyond that there are no retries and no timeouts of its own.
type RESTClient struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	session *session.Store
	logger  logging.Logger
}

// NewRESTClient constructs a client for the given backend base URL and
// project API key. The session store supplies bearer tokens; it may start
// empty (auth calls do not need it).
func NewRESTClient(baseURL, apiKey string, sess *session.Store, logger logging.Logger) *RESTClient {
	return &RESTClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{},
		session: sess,
		logger:  logger,
	}
}

func (c *RESTClient) Close() error {
	c.httpc.CloseIdleConnections()
	return nil
}

// eq renders a PostgREST equality filter value.
func eq(v string) string { return "eq." + v }

type authResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		OrganizationID   string `json:"organization_id"`
		OrganizationName string `json:"organization_name"`
	} `json:"user"`
}

func (r *authResponse) session() *models.Session {
	return &models.Session{
		AccessToken:      r.AccessToken,
		RefreshToken:     r.RefreshToken,
		OrganizationID:   r.User.OrganizationID,
		OrganizationName: r.User.OrganizationName,
	}
}

func (c *RESTClient) Register(ctx context.Context, email, password string) (*models.Session, error) {
	body := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, signupPath, nil, body, &resp, false); err != nil {
		return nil, err
	}
	return resp.session(), nil
}

func (c *RESTClient) Login(ctx context.Context, email, password string) (*models.Session, error) {
	q := url.Values{"grant_type": []string{"password"}}
	body := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, tokenPath, q, body, &resp, false); err != nil {
		return nil, err
	}
	return resp.session(), nil
}

func (c *RESTClient) RefreshSession(ctx context.Context, refreshToken string) (*models.Session, error) {
	q := url.Values{"grant_type": []string{"refresh_token"}}
	body := map[string]string{"refresh_token": refreshToken}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, tokenPath, q, body, &resp, false); err != nil {
		return nil, err
	}
	return resp.session(), nil
}

func (c *RESTClient) FetchOrganizationRecords(ctx context.Context, organizationID string) ([]models.Record, error) {
	q := url.Values{"organization_id": []string{eq(organizationID)}}
	var records []models.Record
	if err := c.do(ctx, http.MethodGet, itemsPath, q, nil, &records, true); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *RESTClient) FetchGroupRecords(ctx context.Context, organizationName, groupID string) ([]models.Record, error) {
	q := url.Values{
		"organization_name": []string{eq(organizationName)},
		"database_id":       []string{eq(groupID)},
	}
	var records []models.Record
	if err := c.do(ctx, http.MethodGet, itemsPath, q, nil, &records, true); err != nil {
		return nil, err
	}
	return records, nil
}

// FetchGroups lists the distinct groups of an organization. The backend
// returns one (id, name) pair per record; duplicates are dropped client-side
// by id, first occurrence wins.
func (c *RESTClient) FetchGroups(ctx context.Context, organizationName string) ([]models.Group, error) {
	q := url.Values{
		"organization_name": []string{eq(organizationName)},
		"select":            []string{"database_id,database_name"},
	}
	var rows []models.Group
	if err := c.do(ctx, http.MethodGet, itemsPath, q, nil, &rows, true); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(rows))
	groups := make([]models.Group, 0, len(rows))
	for _, g := range rows {
		if _, ok := seen[g.ID]; ok {
			continue
		}
		seen[g.ID] = struct{}{}
		groups = append(groups, g)
	}
	return groups, nil
}

func (c *RESTClient) InsertRecords(ctx context.Context, records []models.Record) ([]models.Record, error) {
	var created []models.Record
	if err := c.do(ctx, http.MethodPost, itemsPath, nil, records, &created, true); err != nil {
		return nil, err
	}
	return created, nil
}

func (c *RESTClient) UpdateRecord(ctx context.Context, groupID, itemID string, record models.Record) (*models.Record, error) {
	q := url.Values{
		"database_id": []string{eq(groupID)},
		"item_id":     []string{eq(itemID)},
	}
	var updated []models.Record
	if err := c.do(ctx, http.MethodPatch, itemsPath, q, record, &updated, true); err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return nil, common.ErrorNotFound
	}
	return &updated[0], nil
}

func (c *RESTClient) AdjustQuantity(ctx context.Context, groupID, itemID string, delta int) error {
	body := map[string]any{
		"database_id":     groupID,
		"item_id":         itemID,
		"quantity_change": delta,
	}
	return c.do(ctx, http.MethodPost, quantityRPCPath, nil, body, nil, true)
}

func (c *RESTClient) DeleteRecord(ctx context.Context, groupID, itemID string) error {
	q := url.Values{"database_id": []string{eq(groupID)}}
	if itemID != "" {
		q.Set("item_id", eq(itemID))
	}
	return c.do(ctx, http.MethodDelete, itemsPath, q, nil, nil, true)
}

// do performs one request/response cycle: marshal body, send, map the
// outcome, decode into out when non-nil. Authenticated requests read the
// bearer token from the session store at send time; a token whose exp claim
// already passed is refreshed up front to skip the guaranteed 401, and a 401
// answer still gets a single retry after a refresh.
func (c *RESTClient) do(ctx context.Context, method, path string, query url.Values, body, out any, authed bool) error {
	if authed && c.session.TokenExpired() {
		if rerr := c.refreshTokens(ctx); rerr != nil {
			c.logger.Debug(ctx, "proactive token refresh failed", "error", rerr)
		}
	}

	status, data, err := c.send(ctx, method, path, query, body, authed)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && authed {
		if rerr := c.refreshTokens(ctx); rerr == nil {
			status, data, err = c.send(ctx, method, path, query, body, authed)
			if err != nil {
				return err
			}
		}
	}

	if status < 200 || status > 299 {
		return mapStatus(status, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (c *RESTClient) send(ctx context.Context, method, path string, query url.Values, body any, authed bool) (int, []byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return 0, nil, err
	}

	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)
	req.Header.Set(common.APIKeyHeaderName, c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost || method == http.MethodPatch {
		req.Header.Set("Prefer", "return=representation")
	}
	if authed {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+c.session.AccessToken())
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return 0, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c.logger.Debug(ctx, "request completed", "method", method, "path", path,
		"status", resp.StatusCode, "request_id", requestID)

	return resp.StatusCode, data, nil
}

// refreshTokens exchanges the stored refresh token for a new token pair and
// saves it, so the retried request picks the fresh access token up from the
// store.
func (c *RESTClient) refreshTokens(ctx context.Context) error {
	sess, ok := c.session.Get()
	if !ok || sess.RefreshToken == "" {
		return common.ErrNoSession
	}

	refreshed, err := c.RefreshSession(ctx, sess.RefreshToken)
	if err != nil {
		return err
	}

	c.session.UpdateTokens(refreshed.AccessToken, refreshed.RefreshToken)
	c.logger.Info(ctx, "access token refreshed")
	return nil
}

// errorBody covers the two error shapes the backend produces: PostgREST's
// {"message": ...} and the auth endpoints' {"error_description": ...}.
type errorBody struct {
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

func mapStatus(status int, data []byte) error {
	var eb errorBody
	_ = json.Unmarshal(data, &eb)
	msg := eb.Message
	if msg == "" {
		msg = eb.ErrorDescription
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		if msg != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
		}
		return ErrUnauthorized
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		return &APIError{Status: status, Message: msg}
	}
}
