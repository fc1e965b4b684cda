package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alimikegami/storefront-service/config"
	circuitbreaker "github.com/alimikegami/storefront-service/internal/infrastructure/circuit-breaker"
	"github.com/alimikegami/storefront-service/pkg/httpclient"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Transformation applied to every hosted product image.
const Transformation = "tr:h-400,w-400,c-maintain_ratio"

var ErrNotConfigured = errors.New("image host credentials are not configured")

type Image struct {
	FileID string
	URL    string
}

type uploadResponse struct {
	FileID   string `json:"fileId"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	FilePath string `json:"filePath"`
}

// ImageKit talks to the ImageKit upload and media APIs. Uploads and deletes sit behind separate
// circuit breakers so failing cleanups never block new uploads.
type ImageKit struct {
	cfg      config.ImageKitConfig
	client   *httpclient.Client
	uploadCB *gobreaker.CircuitBreaker[[]byte]
	deleteCB *gobreaker.CircuitBreaker[[]byte]
}

func NewImageKit(cfg config.ImageKitConfig) *ImageKit {
	return newImageKit(cfg, otelhttp.NewTransport(http.DefaultTransport))
}

func newImageKit(cfg config.ImageKitConfig, transport http.RoundTripper) *ImageKit {
	return &ImageKit{
		cfg:      cfg,
		client:   httpclient.New(transport, 30*time.Second),
		uploadCB: circuitbreaker.CreateCircuitBreaker("imagekit-upload"),
		deleteCB: circuitbreaker.CreateCircuitBreaker("imagekit-delete"),
	}
}

func (k *ImageKit) configured() bool {
	return k.cfg.PrivateKey != "" && k.cfg.URLEndpoint != ""
}

// Upload sends file, either base64 or a data URI, and returns the transformed delivery URL.
func (k *ImageKit) Upload(ctx context.Context, file, fileName string) (Image, error) {
	if !k.configured() {
		return Image{}, ErrNotConfigured
	}

	body, contentType, err := uploadForm(file, fileName, k.cfg.Folder)
	if err != nil {
		return Image{}, err
	}

	raw, err := k.uploadCB.Execute(func() ([]byte, error) {
		status, respBody, err := k.client.SendRequest(ctx, httpclient.HttpRequest{
			URL:      k.cfg.UploadURL,
			Method:   http.MethodPost,
			Body:     body,
			Headers:  map[string]string{"Content-Type": contentType},
			Username: k.cfg.PrivateKey,
		})
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			return nil, &httpclient.StatusError{Op: "imagekit upload", StatusCode: status, Body: truncate(respBody)}
		}
		return respBody, nil
	})
	if err != nil {
		return Image{}, err
	}

	var uploaded uploadResponse
	if err := json.Unmarshal(raw, &uploaded); err != nil {
		return Image{}, fmt.Errorf("imagekit upload: decode response: %w", err)
	}

	return Image{FileID: uploaded.FileID, URL: k.deliveryURL(uploaded)}, nil
}

func (k *ImageKit) Delete(ctx context.Context, fileID string) error {
	if !k.configured() {
		return ErrNotConfigured
	}

	_, err := k.deleteCB.Execute(func() ([]byte, error) {
		status, respBody, err := k.client.SendRequest(ctx, httpclient.HttpRequest{
			URL:      fmt.Sprintf("%s/files/%s", strings.TrimRight(k.cfg.APIURL, "/"), url.PathEscape(fileID)),
			Method:   http.MethodDelete,
			Username: k.cfg.PrivateKey,
		})
		if err != nil {
			return nil, err
		}
		// already gone counts as deleted
		if status != http.StatusNoContent && status != http.StatusOK && status != http.StatusNotFound {
			return nil, &httpclient.StatusError{Op: "imagekit delete", StatusCode: status, Body: truncate(respBody)}
		}
		return respBody, nil
	})

	return err
}

func (k *ImageKit) deliveryURL(uploaded uploadResponse) string {
	if uploaded.FilePath == "" {
		return uploaded.URL
	}

	endpoint := strings.TrimRight(k.cfg.URLEndpoint, "/")
	return fmt.Sprintf("%s/%s/%s", endpoint, Transformation, strings.TrimLeft(uploaded.FilePath, "/"))
}

func uploadForm(file, fileName, folder string) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := [][2]string{
		{"file", file},
		{"fileName", fileName},
		{"useUniqueFileName", "false"},
	}
	if folder != "" {
		fields = append(fields, [2]string{"folder", folder})
	}

	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}

func truncate(b []byte) string {
	const max = 200
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
