package payments

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/anjiri1684/omnilearn/models"
)

const qrServiceURL = "https://api.qrserver.com/v1/create-qr-code/"

// ManualUPIReference marks transactions the buyer confirmed paying by UPI
// themselves. They always need a manual bank statement check.
const ManualUPIReference = "MANUAL-UPI-VERIFY"

type PaymentLinks struct {
	Payee     string  `json:"payee"`
	UpiID     string  `json:"upi_id"`
	Amount    float64 `json:"amount"`
	GPay      string  `json:"gpay"`
	PhonePe   string  `json:"phonepe"`
	Paytm     string  `json:"paytm"`
	UPI       string  `json:"upi"`
	QRCodeURL string  `json:"qr_code_url"`
}

// UPIParams builds the shared query string used by every UPI app scheme.
func UPIParams(upiID, payee string, amount float64) string {
	return fmt.Sprintf("pa=%s&pn=%s&am=%.2f&cu=INR&tn=CoursePayment", upiID, escapeComponent(payee), amount)
}

func BuildPaymentLinks(merchant models.MerchantSettings, amount float64) PaymentLinks {
	params := UPIParams(strings.TrimSpace(merchant.UpiID), merchant.Name, amount)
	generic := "upi://pay?" + params

	return PaymentLinks{
		Payee:     merchant.Name,
		UpiID:     merchant.UpiID,
		Amount:    amount,
		GPay:      "tez://upi/pay?" + params,
		PhonePe:   "phonepe://pay?" + params,
		Paytm:     "paytmmp://pay?" + params,
		UPI:       generic,
		QRCodeURL: qrServiceURL + "?size=200x200&data=" + url.QueryEscape(generic),
	}
}

func GatewayReference(method string, unixMilli int64) string {
	return fmt.Sprintf("%s-GATEWAY-%d", strings.ToUpper(method), unixMilli)
}

// escapeComponent encodes spaces as %20, which every UPI app accepts.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
