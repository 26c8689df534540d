// Package client is a Go consumer of the wardrobe API. It mirrors the three
// pieces a frontend carries: an HTTP gateway that injects bearer credentials
// (Client), an observable session state holder (Store), and a route guard
// (Guard).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenPair mirrors the server's token bundle.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// User is the public profile shape returned by the API.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  *string   `json:"username"`
	AvatarURL *string   `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthResponse pairs the profile with fresh tokens.
type AuthResponse struct {
	User   User      `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

// APIError is the error half of the response envelope, surfaced as a Go error.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnauthorized reports whether err is an API error with a 401 status.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusUnauthorized
}

// TokenSource supplies the bearer token for outgoing requests. The Store
// implements it; a fixed token works too.
type TokenSource interface {
	AccessToken() string
}

// StaticToken is a TokenSource holding one fixed token.
type StaticToken string

func (t StaticToken) AccessToken() string { return string(t) }

// Client talks to the wardrobe API. All authenticated calls pull the current
// access token from the TokenSource at request time, so a refresh mid-flight
// is picked up automatically.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTokenSource attaches the bearer token supplier.
func WithTokenSource(src TokenSource) Option {
	return func(c *Client) { c.tokens = src }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register creates an account and returns the resulting session.
func (c *Client) Register(ctx context.Context, email, password, username string) (AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": password,
		"username": username,
	}, &out)
	return out, err
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	return out, err
}

// Refresh trades a refresh token for a new pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/refresh", map[string]string{
		"refreshToken": refreshToken,
	}, &out)
	return out, err
}

// Logout tells the server the session is over. The server keeps no session
// state, so this is an acknowledgement only.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// Me fetches the authenticated profile.
func (c *Client) Me(ctx context.Context) (User, error) {
	var out User
	err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &out)
	return out, err
}

// UpdateProfile applies partial profile changes.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]any) (User, error) {
	var out User
	err := c.do(ctx, http.MethodPut, "/api/users/me", fields, &out)
	return out, err
}

// Seasons returns the fixed season catalog.
func (c *Client) Seasons(ctx context.Context) ([]Season, error) {
	var out []Season
	err := c.do(ctx, http.MethodGet, "/api/seasons", nil, &out)
	return out, err
}

// Season is one entry of the fixed catalog.
type Season struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Icon         string `json:"icon"`
	DisplayOrder int    `json:"displayOrder"`
}

// Room is a storage location.
type Room struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Icon         *string   `json:"icon"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Rooms lists the caller's rooms.
func (c *Client) Rooms(ctx context.Context) ([]Room, error) {
	var out []Room
	err := c.do(ctx, http.MethodGet, "/api/rooms", nil, &out)
	return out, err
}

// CreateRoom adds a room.
func (c *Client) CreateRoom(ctx context.Context, fields map[string]any) (Room, error) {
	var out Room
	err := c.do(ctx, http.MethodPost, "/api/rooms", fields, &out)
	return out, err
}

// UpdateRoom applies partial changes to a room.
func (c *Client) UpdateRoom(ctx context.Context, roomID string, fields map[string]any) (Room, error) {
	var out Room
	err := c.do(ctx, http.MethodPut, "/api/rooms/"+url.PathEscape(roomID), fields, &out)
	return out, err
}

// DeleteRoom removes a room.
func (c *Client) DeleteRoom(ctx context.Context, roomID string) error {
	return c.do(ctx, http.MethodDelete, "/api/rooms/"+url.PathEscape(roomID), nil, nil)
}

// Clothing is one wardrobe item.
type Clothing struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	Name         string     `json:"name"`
	Description  *string    `json:"description"`
	Color        *string    `json:"color"`
	Size         *string    `json:"size"`
	Brand        *string    `json:"brand"`
	PurchaseDate *time.Time `json:"purchaseDate"`
	ImageURL     *string    `json:"imageUrl"`
	RoomID       *string    `json:"roomId"`
	Room         *Room      `json:"room"`
	Seasons      []Season   `json:"seasons"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// PaginationMeta describes the filtered result set.
type PaginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// ClothingPage is one page of items.
type ClothingPage struct {
	Items      []Clothing     `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

// ListFilter narrows a clothing listing. Zero value lists everything.
type ListFilter struct {
	// RoomID filters by room; the literal "null" selects unassigned items.
	RoomID    string
	SeasonIDs []string
	Search    string
	Sort      string
	Order     string
	Page      int
	Limit     int
}

func (f ListFilter) query() string {
	values := url.Values{}
	if f.RoomID != "" {
		values.Set("roomId", f.RoomID)
	}
	if len(f.SeasonIDs) > 0 {
		values.Set("seasonIds", strings.Join(f.SeasonIDs, ","))
	}
	if f.Search != "" {
		values.Set("search", f.Search)
	}
	if f.Sort != "" {
		values.Set("sort", f.Sort)
	}
	if f.Order != "" {
		values.Set("order", f.Order)
	}
	if f.Page > 0 {
		values.Set("page", fmt.Sprintf("%d", f.Page))
	}
	if f.Limit > 0 {
		values.Set("limit", fmt.Sprintf("%d", f.Limit))
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// ListClothing fetches a filtered page of items.
func (c *Client) ListClothing(ctx context.Context, filter ListFilter) (ClothingPage, error) {
	var out ClothingPage
	err := c.do(ctx, http.MethodGet, "/api/clothing"+filter.query(), nil, &out)
	return out, err
}

// GetClothing fetches one item.
func (c *Client) GetClothing(ctx context.Context, id string) (Clothing, error) {
	var out Clothing
	err := c.do(ctx, http.MethodGet, "/api/clothing/"+url.PathEscape(id), nil, &out)
	return out, err
}

// CreateClothing adds an item.
func (c *Client) CreateClothing(ctx context.Context, fields map[string]any) (Clothing, error) {
	var out Clothing
	err := c.do(ctx, http.MethodPost, "/api/clothing", fields, &out)
	return out, err
}

// UpdateClothing applies partial changes; a nil map value clears the field.
func (c *Client) UpdateClothing(ctx context.Context, id string, fields map[string]any) (Clothing, error) {
	var out Clothing
	err := c.do(ctx, http.MethodPut, "/api/clothing/"+url.PathEscape(id), fields, &out)
	return out, err
}

// DeleteClothing removes an item.
func (c *Client) DeleteClothing(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/clothing/"+url.PathEscape(id), nil, nil)
}

// UploadImage stages a standalone image and returns its public URL.
func (c *Client) UploadImage(ctx context.Context, filename string, content io.Reader) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	err := c.doMultipart(ctx, http.MethodPost, "/api/clothing/upload", filename, content, &out)
	return out.URL, err
}

// UploadAvatar replaces the profile picture and returns the updated profile.
func (c *Client) UploadAvatar(ctx context.Context, filename string, content io.Reader) (User, error) {
	var out User
	err := c.doMultipart(ctx, http.MethodPut, "/api/users/me/avatar", filename, content, &out)
	return out, err
}

// doMultipart sends one file under the "image" field and decodes the envelope.
func (c *Client) doMultipart(ctx context.Context, method, path, filename string, content io.Reader, out any) error {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("image", filename)
	if err != nil {
		return fmt.Errorf("build multipart form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("copy file into form: %w", err)
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("finish multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	if c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeEnvelope(resp, out)
}

// do executes one request/response cycle against the envelope protocol.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeEnvelope(resp, out)
}

// decodeEnvelope unwraps the response envelope into out, or surfaces the error
// half as an *APIError carrying the HTTP status.
func decodeEnvelope(resp *http.Response, out any) error {
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *APIError       `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if !envelope.Success {
		apiErr := envelope.Error
		if apiErr == nil {
			apiErr = &APIError{Code: "INTERNAL_ERROR", Message: "unknown error"}
		}
		apiErr.Status = resp.StatusCode
		return apiErr
	}

	if out != nil && envelope.Data != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}
