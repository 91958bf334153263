package payments

import (
	"testing"

	"github.com/anjiri1684/omnilearn/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPaymentLinks(t *testing.T) {
	links := BuildPaymentLinks(models.DefaultMerchantSettings(), 899.5)

	params := "pa=paytmqr13jawpo6eg@paytm&pn=Ekbal%20Singh&am=899.50&cu=INR&tn=CoursePayment"
	assert.Equal(t, "tez://upi/pay?"+params, links.GPay)
	assert.Equal(t, "phonepe://pay?"+params, links.PhonePe)
	assert.Equal(t, "paytmmp://pay?"+params, links.Paytm)
	assert.Equal(t, "upi://pay?"+params, links.UPI)
	assert.Equal(t,
		"https://api.qrserver.com/v1/create-qr-code/?size=200x200&data=upi%3A%2F%2Fpay%3Fpa%3Dpaytmqr13jawpo6eg%40paytm%26pn%3DEkbal%2520Singh%26am%3D899.50%26cu%3DINR%26tn%3DCoursePayment",
		links.QRCodeURL)
}

func TestGatewayReference(t *testing.T) {
	assert.Equal(t, "CARD-GATEWAY-1700000000000", GatewayReference("card", 1700000000000))
}

func TestSanitizePhone(t *testing.T) {
	got, err := SanitizePhone("+91 98765-43210")
	require.NoError(t, err)
	assert.Equal(t, "919876543210", got)

	for _, bad := range []string{"", "12345", "98765abcde", "call me"} {
		_, err := SanitizePhone(bad)
		assert.ErrorIs(t, err, ErrInvalidPhone, bad)
	}
}

func TestCardDetailsValidate(t *testing.T) {
	ok := CardDetails{Number: "4111 1111 1111 1111", Name: "A Buyer", Expiry: "09/29", CVV: "123"}
	assert.NoError(t, ok.Validate())

	cases := map[string]CardDetails{
		"short number": {Number: "4111", Name: "A", Expiry: "09/29", CVV: "123"},
		"no name":      {Number: "4111111111111111", Expiry: "09/29", CVV: "123"},
		"bad month":    {Number: "4111111111111111", Name: "A", Expiry: "13/29", CVV: "123"},
		"bad cvv":      {Number: "4111111111111111", Name: "A", Expiry: "09/29", CVV: "12a"},
	}
	for name, card := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, card.Validate(), ErrInvalidCard)
		})
	}
}

func TestMaskCard(t *testing.T) {
	assert.Equal(t, "************1111", MaskCard("4111-1111-1111-1111"))
	assert.Equal(t, "****", MaskCard("12"))
}

func TestEMITenure(t *testing.T) {
	months, err := EMITenure(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultEMITenure, months)

	for _, want := range EMITenures {
		got, err := EMITenure(want)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = EMITenure(5)
	assert.ErrorIs(t, err, ErrInvalidTenure)
}

func TestEMIInstallment(t *testing.T) {
	assert.Equal(t, 2683.0, EMIInstallment(7000, 3))
	assert.Equal(t, 1342.0, EMIInstallment(7000, 6))
	assert.Zero(t, EMIInstallment(7000, 0))
}
