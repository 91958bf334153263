package services

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"log"
	"strings"
	"time"

	"github.com/anjiri1684/omnilearn/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:embed templates/receipt.html
var receiptTemplateSource string

var receiptTemplate = template.Must(template.New("receipt").Parse(receiptTemplateSource))

const receiptFolder = "omnilearn_receipts"

var paymentMethodLabels = map[string]string{
	models.PaymentUPI:        "UPI",
	models.PaymentCard:       "Card",
	models.PaymentEMI:        "EMI",
	models.PaymentNetbanking: "Net Banking",
}

// ReceiptIssuer renders approved transactions to PDF and stores them.
type ReceiptIssuer struct {
	db            *gorm.DB
	cloudinaryURL string
	render        func(ctx context.Context, html string) ([]byte, error)
	upload        func(ctx context.Context, pdf []byte, publicID string) (string, error)
}

func NewReceiptIssuer(db *gorm.DB, cloudinaryURL string) *ReceiptIssuer {
	r := &ReceiptIssuer{db: db, cloudinaryURL: cloudinaryURL, render: generatePDFFromHTML}
	r.upload = r.uploadToCloudinary
	return r
}

func RenderReceiptHTML(txn models.Transaction, merchant models.MerchantSettings) (string, error) {
	paid := decimal.NewFromFloat(txn.Amount)
	original := decimal.NewFromFloat(txn.OriginalAmount)
	if original.IsZero() {
		original = paid
	}

	method := paymentMethodLabels[txn.PaymentMethod]
	if method == "" {
		method = strings.ToUpper(txn.PaymentMethod)
	}
	coupon := ""
	if txn.CouponCode != nil {
		coupon = *txn.CouponCode
	}

	data := struct {
		Txn      models.Transaction
		Merchant models.MerchantSettings
		Date     string
		Method   string
		Coupon   string
		Original string
		Discount string
		Paid     string
	}{
		Txn:      txn,
		Merchant: merchant,
		Date:     txn.Date.Format("January 2, 2006 15:04"),
		Method:   method,
		Coupon:   coupon,
		Original: "₹" + original.StringFixed(2),
		Discount: "₹" + original.Sub(paid).StringFixed(2),
		Paid:     "₹" + paid.StringFixed(2),
	}

	var rendered bytes.Buffer
	if err := receiptTemplate.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

// Issue renders, uploads and records the receipt for an approved transaction.
func (r *ReceiptIssuer) Issue(ctx context.Context, txn models.Transaction) (string, error) {
	if txn.ApprovalStatus != models.ApprovalApproved {
		return "", fmt.Errorf("transaction %s is not approved", txn.OrderID)
	}

	merchant, err := GetMerchantSettings(r.db)
	if err != nil {
		return "", err
	}
	html, err := RenderReceiptHTML(txn, merchant)
	if err != nil {
		return "", fmt.Errorf("render receipt: %w", err)
	}
	pdf, err := r.render(ctx, html)
	if err != nil {
		return "", fmt.Errorf("generate receipt pdf: %w", err)
	}

	url, err := r.upload(ctx, pdf, fmt.Sprintf("receipts/%s_%s", txn.OrderID, uuid.NewString()))
	if err != nil {
		return "", fmt.Errorf("upload receipt: %w", err)
	}

	if err := r.db.Model(&models.Transaction{}).Where("txn_key = ?", txn.Key).Update("receipt_url", url).Error; err != nil {
		return "", fmt.Errorf("save receipt url: %w", err)
	}
	log.Printf("✅ Receipt issued for order %s", txn.OrderID)
	return url, nil
}

func generatePDFFromHTML(parent context.Context, htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(parent)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, 30*time.Second)
	defer cancelTimeout()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func (r *ReceiptIssuer) uploadToCloudinary(parent context.Context, pdf []byte, publicID string) (string, error) {
	if r.cloudinaryURL == "" {
		return "", fmt.Errorf("CLOUDINARY_URL is not configured")
	}
	cld, err := cloudinary.NewFromURL(r.cloudinaryURL)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(parent, 10*time.Second)
	defer cancel()

	result, err := cld.Upload.Upload(ctx, bytes.NewReader(pdf), uploader.UploadParams{
		PublicID:     publicID,
		Folder:       receiptFolder,
		ResourceType: "raw",
	})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}
