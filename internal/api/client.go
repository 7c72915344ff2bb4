package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hibried/SportNow/internal/domain"
)

// Client talks to the remote sport-reservation REST API. It owns no state
// beyond the base URL; the bearer token is passed per call because it lives
// in the caller's session.
type Client struct {
	base string
	hc   *http.Client
}

func New(base string) *Client {
	return &Client{base: base, hc: &http.Client{}}
}

// NewWithHTTPClient is used by tests to inject a transport.
func NewWithHTTPClient(base string, hc *http.Client) *Client {
	return &Client{base: base, hc: hc}
}

func (c *Client) do(ctx context.Context, method, path, token string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return networkErr(err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return networkErr(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusErr(resp.StatusCode, apiMessage(resp))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindRejected, Status: resp.StatusCode, Message: "malformed response", Err: err}
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &Error{Kind: KindRejected, Message: "encode request", Err: err}
		}
		body = bytes.NewReader(b)
	}
	return c.do(ctx, method, path, token, body, "application/json", out)
}

func apiMessage(resp *http.Response) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil && body.Message != "" {
		return body.Message
	}
	return http.StatusText(resp.StatusCode)
}

// Login exchanges credentials for an API token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	in := map[string]string{"email": email, "password": password}
	var out struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/login", "", in, &out); err != nil {
		return "", err
	}
	if out.Data.Token == "" {
		return "", &Error{Kind: KindRejected, Message: "login response carried no token"}
	}
	return out.Data.Token, nil
}

type RegisterInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"c_password"`
	PhoneNumber     string `json:"phone_number"`
	Role            string `json:"role"`
}

func (c *Client) Register(ctx context.Context, in RegisterInput) error {
	return c.doJSON(ctx, http.MethodPost, "/api/v1/register", "", in, nil)
}

// Me returns the authenticated user's display identity.
func (c *Client) Me(ctx context.Context, token string) (domain.User, error) {
	var out struct {
		Data domain.User `json:"data"`
	}
	err := c.do(ctx, http.MethodGet, "/api/v1/me", token, nil, "", &out)
	return out.Data, err
}

func (c *Client) SportCategories(ctx context.Context, token string) ([]domain.SportCategory, error) {
	var out struct {
		Result struct {
			Data []domain.SportCategory `json:"data"`
		} `json:"result"`
	}
	err := c.do(ctx, http.MethodGet, "/api/v1/sport-categories", token, nil, "", &out)
	return out.Result.Data, err
}

// SportActivities fetches one page of activities, optionally filtered by
// category. The returned Page echoes the server's pagination window, which
// callers must treat as authoritative.
func (c *Client) SportActivities(ctx context.Context, token string, page, perPage int, categoryID domain.ID) ([]domain.Activity, domain.Page, error) {
	q := url.Values{}
	q.Set("is_paginate", "true")
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("page", strconv.Itoa(page))
	if categoryID != "" {
		q.Set("sport_category_id", categoryID.String())
	}
	var out struct {
		Result struct {
			Data []domain.Activity `json:"data"`
			domain.Page
		} `json:"result"`
	}
	err := c.do(ctx, http.MethodGet, "/api/v1/sport-activities?"+q.Encode(), token, nil, "", &out)
	return out.Result.Data, out.Result.Page, err
}

func (c *Client) SportActivity(ctx context.Context, token string, id domain.ID) (domain.Activity, error) {
	var out struct {
		Result domain.Activity `json:"result"`
	}
	err := c.do(ctx, http.MethodGet, "/api/v1/sport-activities/"+url.PathEscape(id.String()), token, nil, "", &out)
	return out.Result, err
}

func (c *Client) PaymentMethods(ctx context.Context, token string) ([]domain.PaymentMethod, error) {
	var out struct {
		Result []domain.PaymentMethod `json:"result"`
	}
	err := c.do(ctx, http.MethodGet, "/api/v1/payment-methods", token, nil, "", &out)
	return out.Result, err
}

// CreateTransaction books one slot on an activity and returns the new
// transaction id.
func (c *Client) CreateTransaction(ctx context.Context, token string, activityID, methodID domain.ID) (domain.ID, error) {
	in := map[string]domain.ID{
		"sport_activity_id": activityID,
		"payment_method_id": methodID,
	}
	var out struct {
		Result struct {
			ID domain.ID `json:"id"`
		} `json:"result"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/transaction/create", token, in, &out); err != nil {
		return "", err
	}
	if out.Result.ID == "" {
		return "", &Error{Kind: KindRejected, Message: "transaction response carried no id"}
	}
	return out.Result.ID, nil
}

func (c *Client) MyTransactions(ctx context.Context, token string, page, perPage int) ([]domain.Transaction, domain.Page, error) {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("page", strconv.Itoa(page))
	var out struct {
		Result struct {
			Data []domain.Transaction `json:"data"`
			domain.Page
		} `json:"result"`
	}
	err := c.do(ctx, http.MethodGet, "/api/v1/my-transaction?"+q.Encode(), token, nil, "", &out)
	return out.Result.Data, out.Result.Page, err
}

func (c *Client) Transaction(ctx context.Context, token string, id domain.ID) (domain.Transaction, error) {
	var out struct {
		Result domain.Transaction `json:"result"`
	}
	err := c.do(ctx, http.MethodGet, "/api/v1/transaction/"+url.PathEscape(id.String()), token, nil, "", &out)
	return out.Result, err
}

func (c *Client) CancelTransaction(ctx context.Context, token string, id domain.ID) error {
	return c.do(ctx, http.MethodPost, "/api/v1/transaction/cancel/"+url.PathEscape(id.String()), token, nil, "", nil)
}

// UploadProof submits a proof-of-payment image. The bearer token is
// attached like every other authenticated call.
func (c *Client) UploadProof(ctx context.Context, token, filename string, file io.Reader) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return &Error{Kind: KindRejected, Message: "encode upload", Err: err}
	}
	if _, err := io.Copy(part, file); err != nil {
		return &Error{Kind: KindRejected, Message: fmt.Sprintf("read %s", filename), Err: err}
	}
	if err := w.Close(); err != nil {
		return &Error{Kind: KindRejected, Message: "encode upload", Err: err}
	}
	return c.do(ctx, http.MethodPost, "/api/v1/upload-image", token, &buf, w.FormDataContentType(), nil)
}
