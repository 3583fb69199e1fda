package dataapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/mobishop/mobishop-backend/pkg/config"
	pkgerrors "github.com/mobishop/mobishop-backend/pkg/errors"
	"github.com/mobishop/mobishop-backend/pkg/types"
)

// Client talks to the data API on behalf of the storefront.
type Client struct {
	http *resty.Client
}

type envelope[T any] struct {
	Data T `json:"data"`
}

// New builds a client with the configured base URL and timeout.
func New(cfg config.StorefrontConfig) *Client {
	r := resty.New().
		SetBaseURL(strings.TrimRight(cfg.DataAPIURL, "/")).
		SetTimeout(cfg.DataAPITimeout).
		SetDebug(cfg.DataAPIDebug).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "mobishop-storefront/1.0")
	return &Client{http: r}
}

// NewWithResty wraps an already configured resty client.
func NewWithResty(r *resty.Client) *Client {
	return &Client{http: r}
}

func call[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (T, error) {
	var out envelope[T]
	req := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&types.ErrorEnvelope{})
	if query != nil {
		req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return out.Data, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "data api unreachable")
	}
	if resp.IsError() {
		return out.Data, remoteError(resp)
	}
	return out.Data, nil
}

// remoteError keeps the data API's error code so callers can branch on it.
func remoteError(resp *resty.Response) error {
	env, _ := resp.Error().(*types.ErrorEnvelope)
	if env == nil || env.Error.Code == "" {
		code := pkgerrors.CodeDependency
		if resp.StatusCode() == http.StatusNotFound {
			code = pkgerrors.CodeNotFound
		}
		return pkgerrors.New(code, "data api returned "+resp.Status())
	}
	return pkgerrors.New(pkgerrors.Code(env.Error.Code), env.Error.Message).WithDetails(env.Error.Details)
}
