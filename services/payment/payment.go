// Package payment starts package purchases with the payment gateway.
package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrPaymentCancelled is returned when the customer backs out. Callers
	// treat it as a no-op.
	ErrPaymentCancelled = errors.New("payment cancelled")
	ErrGateway          = errors.New("payment gateway error")
)

// cancelledMessage is how the gateway reports a cancelled checkout.
const cancelledMessage = "Payment cancelled"

// Order is what a package purchase sends to the gateway.
type Order struct {
	Receipt          string  `json:"receipt"`
	PackageID        uint    `json:"packageId"`
	PackageName      string  `json:"packageName"`
	RegistrationType string  `json:"registrationType"`
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency"`
	CustomerName     string  `json:"customerName"`
	CustomerEmail    string  `json:"customerEmail"`
	CustomerMobile   string  `json:"customerMobile"`
}

// Result tells the client what to do next.
type Result struct {
	Success   bool   `json:"success"`
	Redirect  string `json:"redirect,omitempty"`
	ShowPopup bool   `json:"showPopup,omitempty"`
	OrderID   string `json:"orderId,omitempty"`
	PaymentID string `json:"paymentId,omitempty"`
}

// Gateway starts a payment.
type Gateway interface {
	InitPayment(ctx context.Context, o Order) (Result, error)
}

// Default is the gateway the HTTP layer uses; main wires it.
var Default Gateway = Offline{}

type gatewayResponse struct {
	Result
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Client talks to the gateway's REST API.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimSuffix(baseURL, "/")).
			SetHeader("x-api-key", apiKey).
			SetHeader("Content-Type", "application/json").
			SetTimeout(20 * time.Second),
	}
}

func (c *Client) InitPayment(ctx context.Context, o Order) (Result, error) {
	var ok, failed gatewayResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(o).
		SetResult(&ok).
		SetError(&failed).
		Post("/orders")
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if resp.IsError() {
		return Result{}, classify(failed, resp.StatusCode())
	}
	if !ok.Success {
		return Result{}, classify(ok, resp.StatusCode())
	}
	return ok.Result, nil
}

func classify(r gatewayResponse, status int) error {
	if r.Message == cancelledMessage || strings.EqualFold(r.Status, "cancelled") {
		return ErrPaymentCancelled
	}
	if r.Message == "" {
		r.Message = http.StatusText(status)
	}
	return fmt.Errorf("%w: %s", ErrGateway, r.Message)
}

// Offline confirms every order without calling out. It is used when no
// gateway is configured.
type Offline struct{}

func (Offline) InitPayment(_ context.Context, o Order) (Result, error) {
	return Result{Success: true, ShowPopup: true, OrderID: "offline-" + o.Receipt}, nil
}
