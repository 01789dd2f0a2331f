package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"hostelmeals/internal/config"
	"hostelmeals/internal/domain"
	"hostelmeals/internal/nav"
	"hostelmeals/internal/session"
	"hostelmeals/internal/utils"
)

// Gateway is the one door to the backend. It injects credentials, tags
// every call with a request id, and turns 401/403 into the global
// redirect policy so no individual caller can bypass it. Callers only
// supply path, method and body.
type Gateway struct {
	client *resty.Client
	sess   *session.Store
	nav    *nav.History
}

func New(env config.Env, sess *session.Store, history *nav.History) *Gateway {
	g := &Gateway{sess: sess, nav: history}

	client := resty.New().
		SetBaseURL(env.APIBaseURL).
		SetTimeout(env.RequestTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(env.RetryCount).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second)

	client.AddRetryCondition(retryCondition)
	client.OnBeforeRequest(g.attachCredentials)
	client.OnAfterResponse(g.interceptAuthFailures)
	if env.Debug {
		client.SetDebug(true)
	}

	g.client = client
	return g
}

func (g *Gateway) attachCredentials(_ *resty.Client, r *resty.Request) error {
	r.SetHeader("X-Request-ID", utils.NewRequestID())
	if token := g.sess.AccessToken(r.Context()); token != "" {
		r.SetHeader("Authorization", "Bearer "+token)
	}
	return nil
}

// interceptAuthFailures applies the global policy: 403 sends the user to
// the forbidden screen, 401 signs out and sends them to login with the
// interrupted path preserved. All other statuses pass through for the
// per-call mapping.
func (g *Gateway) interceptAuthFailures(_ *resty.Client, r *resty.Response) error {
	switch r.StatusCode() {
	case http.StatusForbidden:
		g.nav.GoForbidden()
		return domain.ForbiddenError{Path: r.Request.URL}
	case http.StatusUnauthorized:
		from := g.nav.Location()
		g.sess.SignOut(r.Request.Context())
		g.nav.GoLogin(from)
		return domain.SessionExpiredError{Path: from}
	default:
		return nil
	}
}

// retryCondition retries transport failures and transient server errors,
// never auth failures.
func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		var forbidden domain.ForbiddenError
		var expired domain.SessionExpiredError
		if errors.As(err, &forbidden) || errors.As(err, &expired) {
			return false
		}
		return true
	}
	if r == nil {
		return false
	}
	code := r.StatusCode()
	return code >= 500 || code == http.StatusTooManyRequests || code == http.StatusRequestTimeout
}

func (g *Gateway) Get(ctx context.Context, path string, params url.Values, out any) error {
	r := g.client.R().SetContext(ctx)
	if params != nil {
		r.SetQueryParamsFromValues(params)
	}
	if out != nil {
		r.SetResult(out)
	}
	resp, err := r.Get(path)
	return g.finish("GET", path, resp, err)
}

func (g *Gateway) Post(ctx context.Context, path string, body, out any) error {
	r := g.client.R().SetContext(ctx)
	if body != nil {
		r.SetBody(body)
	}
	if out != nil {
		r.SetResult(out)
	}
	resp, err := r.Post(path)
	return g.finish("POST", path, resp, err)
}

func (g *Gateway) Patch(ctx context.Context, path string, body, out any) error {
	r := g.client.R().SetContext(ctx)
	if body != nil {
		r.SetBody(body)
	}
	if out != nil {
		r.SetResult(out)
	}
	resp, err := r.Patch(path)
	return g.finish("PATCH", path, resp, err)
}

func (g *Gateway) Put(ctx context.Context, path string, body, out any) error {
	r := g.client.R().SetContext(ctx)
	if body != nil {
		r.SetBody(body)
	}
	if out != nil {
		r.SetResult(out)
	}
	resp, err := r.Put(path)
	return g.finish("PUT", path, resp, err)
}

func (g *Gateway) Delete(ctx context.Context, path string) error {
	resp, err := g.client.R().SetContext(ctx).Delete(path)
	return g.finish("DELETE", path, resp, err)
}

// finish maps the raw outcome onto the error taxonomy. Recognized auth
// errors pass through untouched; anything without a response becomes a
// NetworkError for the calling screen to surface non-blockingly.
func (g *Gateway) finish(method, path string, resp *resty.Response, err error) error {
	op := method + " " + path
	if err != nil {
		if domain.IsForbidden(err) || domain.IsSessionExpired(err) {
			return err
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return domain.NetworkError{Op: op, Err: err}
	}
	if resp == nil {
		return domain.NetworkError{Op: op, Err: errors.New("no response")}
	}
	if !resp.IsError() {
		return nil
	}
	msg := serverMessage(resp.Body())
	switch resp.StatusCode() {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ValidationError{Msg: msg}
	case http.StatusNotFound:
		return domain.NotFoundError{Resource: path}
	default:
		if msg == "" {
			msg = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("%s: %s (status %d)", op, msg, resp.StatusCode())
	}
}

func serverMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}
