// Package carrier implements the CarrierClient port against the external
// carrier's HTTP API.
//
// The vendor contract is unversioned and brittle: a create-shipment call is
// successful only when the response message equals an exact documented string.
// All knowledge of the vendor's shapes and markers is confined to this
// package; the rest of the system sees only typed results and the errs
// carrier taxonomy. The client never retries.
package carrier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"parcel/internal/core/ports"
	"parcel/internal/pkg/errs"
)

// successMessage is the carrier's documented success marker for addcolis.php.
// Success is recognized only by the message exactly matching this string.
const successMessage = "Colis ajouté avec succès"

const defaultTimeout = 15 * time.Second

// Config holds the carrier endpoint and credentials.
type Config struct {
	// BaseURL is the root of the carrier's HTTP API, without trailing slash.
	BaseURL string

	// Token and SecretKey authenticate list and create calls.
	Token     string
	SecretKey string
}

// Client is the thin HTTP adapter over the carrier's endpoints.
// It implements ports.CarrierClient.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a carrier client. When httpClient is nil a default client
// with a per-call timeout is used; the timeout keeps one slow carrier
// response from stalling a whole reconciliation window.
func NewClient(config Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		config:     config,
		httpClient: httpClient,
	}
}

// trackEventDocument mirrors one element of the carrier's track.php response.
type trackEventDocument struct {
	Etat          string `json:"Etat"`
	DateEvenement string `json:"Date_Evenement"`
}

// createShipmentDocument mirrors the carrier's addcolis.php response.
type createShipmentDocument struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// FetchEvents returns the carrier's tracking events for an external tracking
// id. The carrier reports event times as integer seconds since epoch encoded
// as strings; they are converted to UTC instants here.
func (c *Client) FetchEvents(ctx context.Context, externalTrackingID string) ([]ports.CarrierEvent, error) {
	query := url.Values{}
	query.Set("code", externalTrackingID)

	body, err := c.get(ctx, "track", "/track.php", query)
	if err != nil {
		return nil, err
	}

	var documents []trackEventDocument
	if err = json.Unmarshal(body, &documents); err != nil {
		return nil, errs.NewCarrierMalformedResponseError("track", err)
	}

	events := make([]ports.CarrierEvent, 0, len(documents))
	for _, doc := range documents {
		seconds, parseErr := strconv.ParseInt(doc.DateEvenement, 10, 64)
		if parseErr != nil {
			return nil, errs.NewCarrierMalformedResponseError("track", parseErr)
		}

		events = append(events, ports.CarrierEvent{
			Status:     doc.Etat,
			OccurredAt: time.Unix(seconds, 0).UTC(),
		})
	}

	return events, nil
}

// ListShipments returns all shipment records registered with the carrier as
// opaque documents.
func (c *Client) ListShipments(ctx context.Context) ([]json.RawMessage, error) {
	query := url.Values{}
	query.Set("tk", c.config.Token)
	query.Set("sk", c.config.SecretKey)

	body, err := c.get(ctx, "list", "/colislist.php", query)
	if err != nil {
		return nil, err
	}

	var records []json.RawMessage
	if err = json.Unmarshal(body, &records); err != nil {
		return nil, errs.NewCarrierMalformedResponseError("list", err)
	}

	return records, nil
}

// CreateShipment registers a shipment with the carrier and returns the
// external tracking id it assigned. Anything but the exact success marker in
// the response message is a rejection.
func (c *Client) CreateShipment(ctx context.Context, request ports.ShipmentRequest) (string, error) {
	query := url.Values{}
	query.Set("tk", c.config.Token)
	query.Set("sk", c.config.SecretKey)
	query.Set("fullname", request.FullName)
	query.Set("phone", request.Phone)
	query.Set("city", request.City)
	query.Set("address", request.Address)
	query.Set("price", request.Price.String())
	query.Set("product", request.Product)
	query.Set("qty", strconv.Itoa(request.Quantity))
	query.Set("note", request.Note)
	query.Set("change", "0")
	query.Set("openpackage", boolParam(request.OpenPackage))

	body, err := c.get(ctx, "create", "/addcolis.php", query)
	if err != nil {
		return "", err
	}

	var document createShipmentDocument
	if err = json.Unmarshal(body, &document); err != nil {
		return "", errs.NewCarrierMalformedResponseError("create", err)
	}

	if document.Message != successMessage {
		return "", errs.NewCarrierRejectedError(document.Message)
	}
	if document.Code == "" {
		return "", errs.NewCarrierMalformedResponseError("create", fmt.Errorf("success response is missing the tracking code"))
	}

	return document.Code, nil
}

// get performs one GET call against the carrier and returns the raw body.
// Transport errors and non-200 statuses are classified as carrier-unavailable.
func (c *Client) get(ctx context.Context, operation, path string, query url.Values) ([]byte, error) {
	endpoint := c.config.BaseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errs.NewCarrierUnavailableError(operation, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.NewCarrierUnavailableError(operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errs.NewCarrierUnavailableError(operation, fmt.Errorf("unexpected HTTP status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.NewCarrierUnavailableError(operation, err)
	}

	return body, nil
}

func boolParam(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
