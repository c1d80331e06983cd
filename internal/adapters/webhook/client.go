package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"imghook/internal/adapters/file"
	"imghook/internal/core/domain"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/rs/zerolog/log"
)

// DefaultMaxErrorBody bounds how much of a failed response is quoted back to the user.
const DefaultMaxErrorBody = 4096

// Client posts images to user supplied webhooks.
type Client struct {
	httpClient   *http.Client
	userAgent    string
	maxErrorBody int64
}

func NewClient(httpClient *http.Client, userAgent string, maxErrorBody int64) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	if maxErrorBody <= 0 {
		maxErrorBody = DefaultMaxErrorBody
	}

	return &Client{
		httpClient:   httpClient,
		userAgent:    userAgent,
		maxErrorBody: maxErrorBody,
	}
}

type imageResponse struct {
	ImageURL string `json:"image_url"`
}

func (c *Client) Post(ctx context.Context, url string, image domain.Image, prompt string) (string, error) {
	payloadBuf, contentType, err := encodeForm(image, prompt)
	if err != nil {
		return "", &domain.TransportError{Err: fmt.Errorf("error encoding multipart form: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, payloadBuf)
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("error creating POST request for webhook")
		return "", &domain.TransportError{Err: err}
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", &domain.TransportError{Err: err}
	}

	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		text, _ := io.ReadAll(io.LimitReader(res.Body, c.maxErrorBody))
		return "", &domain.StatusError{Code: res.StatusCode, Body: strings.TrimSpace(string(text))}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", &domain.TransportError{Err: fmt.Errorf("error reading webhook response: %w", err)}
	}

	log.Debug().Bytes("body", body).Msg("webhook response")

	var result imageResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &domain.ContractError{Err: err}
	}

	if result.ImageURL == "" {
		return "", &domain.ContractError{}
	}

	return result.ImageURL, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func encodeForm(image domain.Image, prompt string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	name := image.Name
	if name == "" {
		name = domain.FieldImage
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, domain.FieldImage, quoteEscaper.Replace(name)))
	header.Set("Content-Type", file.ContentType(image.ContentType, image.Data))

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create image part: %w", err)
	}

	if _, err := part.Write(image.Data); err != nil {
		return nil, "", fmt.Errorf("failed to write image: %w", err)
	}

	if err := writer.WriteField(domain.FieldPrompt, prompt); err != nil {
		return nil, "", fmt.Errorf("failed to write prompt: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close writer: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}
