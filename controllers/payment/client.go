package paymentControllers

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// PaymentIntent is the subset of the gateway's payment-intent object this
// backend reads.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type gatewayError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func gatewayConfig() (apiURL, secretKey string, err error) {
	apiURL = os.Getenv("STRIPE_API_URL")
	if apiURL == "" {
		apiURL = "https://api.stripe.com/v1"
	}
	secretKey = os.Getenv("STRIPE_SECRET_KEY")
	if secretKey == "" {
		return "", "", fmt.Errorf("stripe configuration missing")
	}
	return apiURL, secretKey, nil
}

// CreatePaymentIntent creates an intent for the given amount. The
// idempotency key ties retries of the same order to one intent, so a client
// retry after a timeout cannot charge twice.
func CreatePaymentIntent(amount float64, currency, orderRef, idempotencyKey string) (*PaymentIntent, error) {
	apiURL, secretKey, err := gatewayConfig()
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(int64(math.Round(amount*100)), 10)) // minor units
	form.Set("currency", currency)
	form.Set("metadata[order_ref]", orderRef)
	form.Set("automatic_payment_methods[enabled]", "true")

	req, err := http.NewRequest(http.MethodPost, apiURL+"/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+secretKey)
	req.Header.Set("Idempotency-Key", idempotencyKey)

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		var gwErr gatewayError
		if err := json.Unmarshal(body, &gwErr); err == nil && gwErr.Error.Message != "" {
			return nil, fmt.Errorf("gateway error: %s", gwErr.Error.Message)
		}
		return nil, fmt.Errorf("gateway error (%d)", resp.StatusCode)
	}

	var intent PaymentIntent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %w", err)
	}
	if intent.ClientSecret == "" {
		return nil, fmt.Errorf("gateway returned empty client secret")
	}

	return &intent, nil
}
