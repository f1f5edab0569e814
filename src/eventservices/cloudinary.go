package eventservices

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jiaming2012/daily-stock-update/src/utils"
)

const (
	CloudinaryBaseURL        = "https://api.cloudinary.com"
	DailyStockUpdatePublicID = "daily_stock_update"
)

type CloudinaryCredentials struct {
	CloudName string
	APIKey    string
	APISecret string
}

// UploadError is returned when the host answers with anything but 200.
type UploadError struct {
	StatusCode int
	Body       string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed, http code %d: %s", e.StatusCode, e.Body)
}

type cloudinaryUploadResponse struct {
	SecureURL string `json:"secure_url"`
}

type CloudinaryPublisher struct {
	Credentials CloudinaryCredentials
	PublicID    string
	BaseURL     string
	Client      *resty.Client
	Now         func() time.Time
}

type CloudinaryPublisherOption func(*CloudinaryPublisher)

func WithCloudinaryBaseURL(baseURL string) CloudinaryPublisherOption {
	return func(p *CloudinaryPublisher) { p.BaseURL = baseURL }
}

func WithCloudinaryClock(now func() time.Time) CloudinaryPublisherOption {
	return func(p *CloudinaryPublisher) { p.Now = now }
}

func NewCloudinaryPublisher(creds CloudinaryCredentials, opts ...CloudinaryPublisherOption) *CloudinaryPublisher {
	client := resty.New().
		SetTransport(otelhttp.NewTransport(http.DefaultTransport)).
		SetTimeout(60 * time.Second)

	p := &CloudinaryPublisher{
		Credentials: creds,
		PublicID:    DailyStockUpdatePublicID,
		BaseURL:     CloudinaryBaseURL,
		Client:      client,
		Now:         time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *CloudinaryPublisher) UploadURL() string {
	return fmt.Sprintf("%s/v1_1/%s/image/upload", p.BaseURL, p.Credentials.CloudName)
}

// SignedParams returns the form fields of an upload issued at ts, signature and api_key included.
func (p *CloudinaryPublisher) SignedParams(ts time.Time) map[string]string {
	params := map[string]string{
		"overwrite": "true",
		"public_id": p.PublicID,
		"timestamp": strconv.FormatInt(ts.Unix(), 10),
	}

	params["signature"] = utils.SignParams(params, p.Credentials.APISecret)
	params["api_key"] = p.Credentials.APIKey

	return params
}

// Publish uploads the image at imagePath and returns its hosted https URL.
func (p *CloudinaryPublisher) Publish(ctx context.Context, imagePath string) (string, error) {
	tracer := otel.Tracer("CloudinaryPublisher")
	ctx, span := tracer.Start(ctx, "Publish")
	defer span.End()

	url := p.UploadURL()
	span.SetAttributes(attribute.String("image_path", imagePath))

	log.WithContext(ctx).Infof("uploading %s to %s", imagePath, url)

	resp, err := p.Client.R().
		SetContext(ctx).
		SetFormData(p.SignedParams(p.Now())).
		SetFile("file", imagePath).
		Post(url)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("Publish: failed to upload %s: %w", imagePath, err)
	}

	if resp.StatusCode() != http.StatusOK {
		uploadErr := &UploadError{StatusCode: resp.StatusCode(), Body: resp.String()}
		span.RecordError(uploadErr)
		return "", uploadErr
	}

	var dto cloudinaryUploadResponse
	if err := json.Unmarshal(resp.Body(), &dto); err != nil {
		return "", fmt.Errorf("Publish: failed to decode json: %w", err)
	}

	if dto.SecureURL == "" {
		return "", fmt.Errorf("Publish: response has no secure_url: %s", resp.String())
	}

	return dto.SecureURL, nil
}
