// Package uploader pushes images to the Cloudinary API and returns their
// delivery URL. The store never serves image bytes itself.
package uploader

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

const uploadURLFormat = "https://api.cloudinary.com/v1_1/%s/image/upload"

// CloudinaryClient represents HTTP client for signed image uploads
type CloudinaryClient struct {
	client    *http.Client
	cloudName string
	apiKey    string
	apiSecret string
}

// NewCloudinaryClient creates new CloudinaryClient instance
func NewCloudinaryClient(cloudName, apiKey, apiSecret string) *CloudinaryClient {
	return &CloudinaryClient{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
	}
}

// Upload sends one image and returns its secure delivery URL.
func (c *CloudinaryClient) Upload(ctx context.Context, filename string, file io.Reader, folder string) (string, error) {
	timestamp := time.Now().Unix()
	signature := c.sign(fmt.Sprintf("folder=%s&timestamp=%d", folder, timestamp))

	body, contentType, err := buildForm(filename, file, map[string]string{
		"api_key":   c.apiKey,
		"folder":    folder,
		"signature": signature,
		"timestamp": fmt.Sprintf("%d", timestamp),
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf(uploadURLFormat, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("cloudinary: status %d: %s", resp.StatusCode, string(raw))
	}

	var uploadResp struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return "", err
	}
	if uploadResp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary: no secure_url in response")
	}

	return uploadResp.SecureURL, nil
}

// sign produces the SHA-1 hex digest of paramsToSign concatenated with the
// API secret, the signature scheme Cloudinary expects for signed uploads.
func (c *CloudinaryClient) sign(paramsToSign string) string {
	sum := sha1.Sum([]byte(paramsToSign + c.apiSecret))
	return hex.EncodeToString(sum[:])
}

func buildForm(filename string, file io.Reader, fields map[string]string) (io.Reader, string, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		var err error
		defer func() {
			pw.CloseWithError(err)
		}()

		for name, value := range fields {
			if err = mw.WriteField(name, value); err != nil {
				return
			}
		}

		var part io.Writer
		part, err = mw.CreateFormFile("file", filename)
		if err != nil {
			return
		}
		if _, err = io.Copy(part, file); err != nil {
			return
		}

		err = mw.Close()
	}()

	return pr, mw.FormDataContentType(), nil
}
