package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Dosada05/tournament-dashboard/models"
)

const (
	defaultTimeout  = 15 * time.Second
	maxResponseSize = 10 << 20 // 10MB
)

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client ходит в веб-приложение Apps Script: GET для чтения, POST с form-телом для записи.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

var _ MatchGateway = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("gateway base URL is required")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid gateway base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid gateway base URL scheme %q", base.Scheme)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    base,
		httpClient: httpClient,
		logger:     logger.With(slog.String("component", "gateway")),
	}, nil
}

func (c *Client) ListMatches(ctx context.Context, stage models.Stage) ([]models.Match, error) {
	if stage != "" && !stage.Valid() {
		return nil, &FetchError{Stage: stage, Reason: ErrUnknownStage.Error(), Err: ErrUnknownStage}
	}

	u := *c.baseURL
	query := u.Query()
	query.Set("action", "listMatches")
	if stage != "" {
		query.Set("stage", string(stage))
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &FetchError{Stage: stage, Reason: defaultFetchReason, Err: fmt.Errorf("%w: %w", ErrTransport, err)}
	}

	var env listEnvelope
	if err := c.do(req, &env); err != nil {
		c.logger.Warn("list matches failed", slog.String("stage", string(stage)), slog.Any("error", err))
		return nil, &FetchError{Stage: stage, Reason: defaultFetchReason, Err: err}
	}
	if !env.OK {
		reason := reasonOr(env.Error, defaultFetchReason)
		c.logger.Warn("list matches rejected", slog.String("stage", string(stage)), slog.String("reason", reason))
		return nil, &FetchError{Stage: stage, Reason: reason, Err: ErrRemoteRejection}
	}

	return decodeMatches(env.Matches, c.logger), nil
}

func (c *Client) UpdateMatch(ctx context.Context, update models.MatchUpdate) (*Result, error) {
	form := url.Values{}
	form.Set("action", "updateMatch")
	form.Set("pin", update.Pin)
	form.Set("match_id", update.MatchID)
	form.Set("status", update.Status.Label())
	setScore(form, "score1", update.Scores.Score1)
	setScore(form, "score2", update.Scores.Score2)
	setScore(form, "black_team1_score", update.Scores.BlackTeam1Score)
	setScore(form, "black_team2_score", update.Scores.BlackTeam2Score)
	setScore(form, "white_team1_score", update.Scores.WhiteTeam1Score)
	setScore(form, "white_team2_score", update.Scores.WhiteTeam2Score)

	env, err := c.post(ctx, form)
	if err != nil {
		c.logger.Warn("update match failed", slog.String("match_id", update.MatchID), slog.Any("error", err))
		return nil, &UpdateError{MatchID: update.MatchID, Reason: defaultUpdateReason, Err: err}
	}
	if !env.OK {
		reason := reasonOr(env.Error, defaultUpdateReason)
		c.logger.Warn("update match rejected", slog.String("match_id", update.MatchID), slog.String("reason", reason))
		return nil, &UpdateError{MatchID: update.MatchID, Reason: reason, Err: ErrRemoteRejection}
	}

	c.logger.Info("match updated",
		slog.String("match_id", update.MatchID),
		slog.String("status", string(update.Status)),
	)
	return &Result{Message: strings.TrimSpace(string(env.Message))}, nil
}

func (c *Client) Invoke(ctx context.Context, action models.AdminAction) (*Result, error) {
	if !action.Valid() {
		return nil, &InvokeError{Action: action, Reason: ErrUnknownAction.Error(), Err: ErrUnknownAction}
	}

	form := url.Values{}
	form.Set("action", string(action))

	env, err := c.post(ctx, form)
	if err != nil {
		c.logger.Warn("admin action failed", slog.String("action", string(action)), slog.Any("error", err))
		return nil, &InvokeError{Action: action, Reason: defaultInvokeReason, Err: err}
	}
	if !env.OK {
		reason := reasonOr(env.Error, defaultInvokeReason)
		return nil, &InvokeError{Action: action, Reason: reason, Err: ErrRemoteRejection}
	}

	c.logger.Info("admin action completed", slog.String("action", string(action)))
	return &Result{Message: reasonOr(env.Message, defaultInvokeOK)}, nil
}

func (c *Client) post(ctx context.Context, form url.Values) (*writeEnvelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var env writeEnvelope
	if err := c.do(req, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// do выполняет запрос и декодирует JSON-конверт. Любой сбой до разбора
// конверта считается транспортной ошибкой.
func (c *Client) do(req *http.Request, dst interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: unexpected response (HTTP %d): %w", ErrTransport, resp.StatusCode, err)
	}
	return nil
}

func setScore(form url.Values, key string, v *int) {
	if v == nil {
		return
	}
	form.Set(key, strconv.Itoa(*v))
}

func reasonOr(c cell, fallback string) string {
	if s := strings.TrimSpace(string(c)); s != "" {
		return s
	}
	return fallback
}
