package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/feedbackboard/internal/client/domain"
	"github.com/dmitrijs2005/feedbackboard/internal/common"
	"github.com/dmitrijs2005/feedbackboard/internal/logging"
	"github.com/dmitrijs2005/feedbackboard/internal/netx"
)

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

type options struct {
	timeout   time.Duration
	rateLimit float64
	tokens    netx.TokenSource
	base      http.RoundTripper
	log       logging.Logger
}

type Option func(*options)

// WithTimeout bounds each request, including reading the response body.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithRateLimit caps outbound requests per second. Zero disables the cap.
func WithRateLimit(rps float64) Option {
	return func(o *options) { o.rateLimit = rps }
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts netx.TokenSource) Option {
	return func(o *options) { o.tokens = ts }
}

// WithBaseTransport replaces http.DefaultTransport beneath the client's own
// transport.
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.base = rt }
}

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.log = l }
}

// NewHTTPClient returns a client for the API rooted at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse api url: unsupported scheme %q", u.Scheme)
	}

	o := options{log: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	return &HTTPClient{
		baseURL: u,
		http: &http.Client{
			Timeout: o.timeout,
			Transport: &netx.Transport{
				Base:    o.base,
				Tokens:  o.tokens,
				Limiter: netx.NewLimiter(o.rateLimit),
			},
		},
		log: o.log,
	}, nil
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	// fail is the message reported when the server does not supply one.
	fail string
}

func (c *HTTPClient) do(ctx context.Context, r request, out any) error {
	u := c.baseURL.JoinPath(r.path)
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, reqID)
	req.Header.Set("Accept", common.ContentTypeJSON)
	if body != nil {
		req.Header.Set("Content-Type", common.ContentTypeJSON)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.log.Debug(ctx, "request failed", "method", r.method, "path", r.path, "request_id", reqID, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readAPIError(resp, r.fail, reqID)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", r.fail, err)
	}
	return nil
}

// readAPIError builds an APIError from resp. The server's JSON "message" or
// "error" field wins, then the first non-blank line of a plain-text body,
// then fallback.
func readAPIError(resp *http.Response, fallback, reqID string) *APIError {
	e := &APIError{Status: resp.StatusCode, Message: fallback, RequestID: reqID}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(bytes.TrimSpace(b)) == 0 {
		return e
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(b, &payload) == nil {
		switch {
		case strings.TrimSpace(payload.Message) != "":
			e.Message = strings.TrimSpace(payload.Message)
		case strings.TrimSpace(payload.Error) != "":
			e.Message = strings.TrimSpace(payload.Error)
		}
		return e
	}

	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			e.Message = line
			break
		}
	}
	return e
}

func (c *HTTPClient) GoogleLoginURL(ctx context.Context) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	err := c.do(ctx, request{method: http.MethodGet, path: "/auth/google/login", fail: "Failed to start sign-in"}, &out)
	if err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", errors.New("start sign-in: empty url in response")
	}
	return out.URL, nil
}

// principalPayload is the identity document returned by the auth endpoints.
// The callback names the ID "userId", the profile endpoint "id".
type principalPayload struct {
	ID         int64                      `json:"id"`
	UserID     int64                      `json:"userId"`
	Name       string                     `json:"name"`
	Email      string                     `json:"email"`
	Picture    string                     `json:"picture"`
	Token      string                     `json:"token"`
	Role       domain.Role                `json:"role"`
	BoardRoles map[int64]domain.BoardRole `json:"boardRoles"`
}

func (p principalPayload) principal() domain.Principal {
	id := p.ID
	if p.UserID != 0 {
		id = p.UserID
	}
	role := p.Role
	if role == "" {
		role = domain.RoleUser
	}
	boardRoles := p.BoardRoles
	if boardRoles == nil {
		boardRoles = make(map[int64]domain.BoardRole)
	}
	return domain.Principal{
		ID:         id,
		Name:       p.Name,
		Email:      p.Email,
		Picture:    p.Picture,
		Token:      p.Token,
		Role:       role,
		BoardRoles: boardRoles,
	}
}

func (c *HTTPClient) GoogleCallback(ctx context.Context, code string) (domain.Principal, error) {
	var out principalPayload
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/auth/google/callback",
		query:  url.Values{"code": {code}},
		fail:   "Authentication failed",
	}, &out)
	if err != nil {
		return domain.Principal{}, err
	}
	if out.Token == "" {
		return domain.Principal{}, errors.New("authentication failed: no token issued")
	}
	return out.principal(), nil
}

func (c *HTTPClient) Profile(ctx context.Context) (domain.Principal, error) {
	var out principalPayload
	err := c.do(ctx, request{method: http.MethodGet, path: "/auth/profile", fail: "Failed to refresh user profile"}, &out)
	if err != nil {
		return domain.Principal{}, err
	}
	p := out.principal()
	p.Token = ""
	return p, nil
}

func (c *HTTPClient) ListBoards(ctx context.Context) ([]domain.Board, error) {
	var out []domain.Board
	err := c.do(ctx, request{method: http.MethodGet, path: "/boards", fail: "Failed to fetch boards"}, &out)
	return out, err
}

func (c *HTTPClient) CreateBoard(ctx context.Context, name string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   "/boards",
		body:   map[string]string{"name": name},
		fail:   "Failed to create board",
	}, nil)
}

func (c *HTTPClient) GetBoard(ctx context.Context, boardID int64) (domain.Board, error) {
	var out domain.Board
	err := c.do(ctx, request{method: http.MethodGet, path: boardPath(boardID), fail: "Failed to fetch board details"}, &out)
	return out, err
}

func (c *HTTPClient) ListMembers(ctx context.Context, boardID int64) ([]domain.BoardMember, error) {
	var out []domain.BoardMember
	err := c.do(ctx, request{method: http.MethodGet, path: boardPath(boardID) + "/members", fail: "Failed to fetch board members"}, &out)
	return out, err
}

func (c *HTTPClient) InviteMember(ctx context.Context, boardID int64, email string, role domain.BoardRole) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   boardPath(boardID) + "/members",
		body: struct {
			Email string           `json:"email"`
			Role  domain.BoardRole `json:"role"`
		}{email, role},
		fail: "Failed to invite user",
	}, nil)
}

func (c *HTTPClient) RemoveMember(ctx context.Context, boardID, userID int64) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   boardPath(boardID) + "/members/" + strconv.FormatInt(userID, 10),
		fail:   "Failed to remove user from board",
	}, nil)
}

func (c *HTTPClient) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	err := c.do(ctx, request{method: http.MethodGet, path: "/categories", fail: "Failed to fetch categories"}, &out)
	return out, err
}

func (c *HTTPClient) ListFeedback(ctx context.Context, boardID int64) ([]domain.Feedback, error) {
	var out []domain.Feedback
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/feedbacks",
		query:  url.Values{"boardId": {strconv.FormatInt(boardID, 10)}},
		fail:   "Failed to fetch feedbacks",
	}, &out)
	if err != nil {
		return nil, err
	}
	for i := range out {
		normalizeFeedback(&out[i])
	}
	return out, nil
}

func (c *HTTPClient) SubmitFeedback(ctx context.Context, s domain.FeedbackSubmission) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/feedback", body: s, fail: "Failed to submit feedback"}, nil)
}

func (c *HTTPClient) GetFeedback(ctx context.Context, feedbackID int64) (domain.Feedback, error) {
	var out domain.Feedback
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/feedback/" + strconv.FormatInt(feedbackID, 10),
		fail:   "Failed to fetch feedback details",
	}, &out)
	if err != nil {
		return domain.Feedback{}, err
	}
	normalizeFeedback(&out)
	return out, nil
}

// normalizeFeedback fills in the status the API omits for new items.
func normalizeFeedback(f *domain.Feedback) {
	if f.Status == "" {
		f.Status = domain.StatusPending
	}
}

func (c *HTTPClient) UpdateFeedbackStatus(ctx context.Context, feedbackID int64, status domain.FeedbackStatus) error {
	return c.do(ctx, request{
		method: http.MethodPut,
		path:   "/feedbacks/" + strconv.FormatInt(feedbackID, 10) + "/status",
		body:   map[string]domain.FeedbackStatus{"status": status},
		fail:   "Failed to update feedback status",
	}, nil)
}

func (c *HTTPClient) Vote(ctx context.Context, feedbackID int64, vote domain.VoteType) error {
	if vote == domain.VoteNone {
		return fmt.Errorf("%w: vote type required", domain.ErrUnknownVoteType)
	}
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   "/vote",
		body: struct {
			FeedbackID int64           `json:"feedbackId"`
			VoteType   domain.VoteType `json:"voteType"`
		}{feedbackID, vote},
		fail: "Failed to vote on feedback",
	}, nil)
}

func (c *HTTPClient) ListComments(ctx context.Context, feedbackID int64) ([]domain.Comment, error) {
	var out []domain.Comment
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/comments",
		query:  url.Values{"feedbackId": {strconv.FormatInt(feedbackID, 10)}},
		fail:   "Failed to fetch comments",
	}, &out)
	return out, err
}

type idResponse struct {
	ID int64 `json:"id"`
}

func (c *HTTPClient) AddComment(ctx context.Context, feedbackID int64, content string) (int64, error) {
	var out idResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/comment",
		body: struct {
			FeedbackID int64  `json:"feedbackId"`
			Content    string `json:"content"`
		}{feedbackID, content},
		fail: "Failed to add comment",
	}, &out)
	return out.ID, err
}

func (c *HTTPClient) AddReply(ctx context.Context, commentID int64, content string) (int64, error) {
	var out idResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/reply",
		body: struct {
			CommentID int64  `json:"commentId"`
			Content   string `json:"content"`
		}{commentID, content},
		fail: "Failed to add reply",
	}, &out)
	return out.ID, err
}

func (c *HTTPClient) LikeComment(ctx context.Context, commentID int64, like bool) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   "/comment-like",
		body: struct {
			CommentID int64 `json:"commentId"`
			IsLike    bool  `json:"isLike"`
		}{commentID, like},
		fail: "Failed to like/dislike comment",
	}, nil)
}

func (c *HTTPClient) LikeReply(ctx context.Context, replyID int64, like bool) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   "/comment-like",
		body: struct {
			ReplyID int64 `json:"replyId"`
			IsLike  bool  `json:"isLike"`
		}{replyID, like},
		fail: "Failed to like/dislike reply",
	}, nil)
}

func boardPath(id int64) string {
	return "/boards/" + strconv.FormatInt(id, 10)
}
