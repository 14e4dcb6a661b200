package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const webhookTolerance = 5 * time.Minute

// StripeWebhookAuth verifies the Stripe-Signature header
// (t=<unix>,v1=<hmac-sha256 of "<t>.<body>">), skips the check in
// sandbox/dev mode.
func StripeWebhookAuth() gin.HandlerFunc {
	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if secret == "" {
		panic("STRIPE_WEBHOOK_SECRET is not set")
	}

	mode := strings.ToLower(os.Getenv("STRIPE_MODE"))

	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "failed to read webhook body"})
			return
		}
		// Handlers downstream read the body again.
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		if mode == "sandbox" || mode == "dev" {
			log.Println("Sandbox/dev mode: skipping webhook signature verification")
			c.Next()
			return
		}

		header := c.GetHeader("Stripe-Signature")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "missing signature header"})
			return
		}

		var timestamp int64
		var signature string
		for _, part := range strings.Split(header, ",") {
			k, v, found := strings.Cut(strings.TrimSpace(part), "=")
			if !found {
				continue
			}
			switch k {
			case "t":
				timestamp, _ = strconv.ParseInt(v, 10, 64)
			case "v1":
				signature = v
			}
		}
		if timestamp == 0 || signature == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "malformed signature header"})
			return
		}

		if d := time.Since(time.Unix(timestamp, 0)); d > webhookTolerance || d < -webhookTolerance {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "signature timestamp outside tolerance"})
			return
		}

		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
		mac.Write([]byte("."))
		mac.Write(body)
		expected := hex.EncodeToString(mac.Sum(nil))

		if !hmac.Equal([]byte(expected), []byte(signature)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid webhook signature"})
			return
		}

		c.Next()
	}
}
