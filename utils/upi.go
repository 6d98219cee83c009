// utils/upi.go
package utils

import (
	"fmt"
	"net/url"
)

// Payee name shown in the payer's UPI app
const upiPayeeName = "DSA"

// BuildUPIIntent formats a upi://pay request URI for QR rendering.
// This is a payment request payload only, not a gateway call.
func BuildUPIIntent(upiID string, amount float64) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&cu=INR",
		url.QueryEscape(upiID),
		upiPayeeName,
		formatUPIAmount(amount))
}

func formatUPIAmount(amount float64) string {
	if amount == float64(int64(amount)) {
		return fmt.Sprintf("%d", int64(amount))
	}
	return fmt.Sprintf("%.2f", amount)
}
